package account

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert writes one account row. Rows that already carry a store id keep
// it (the delete-then-reinsert persist path relies on this); fresh rows
// get a new id back from the store.
func (w *Writer) Insert(ctx context.Context, row *Row) (int64, error) {
	var q bob.BaseQuery[*dialect.InsertQuery]
	if row.ID != 0 {
		q = sqlite.Insert(
			im.OrReplace(),
			im.Into("accounts", "id", "balance", "type", "member_id", "r", "term"),
			im.Values(sqlite.Arg(row.ID, row.Balance, row.Type, row.MemberID, row.R, row.Term)),
		)
	} else {
		q = sqlite.Insert(
			im.Into("accounts", "balance", "type", "member_id", "r", "term"),
			im.Values(sqlite.Arg(row.Balance, row.Type, row.MemberID, row.R, row.Term)),
		)
	}

	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	if row.ID != 0 {
		return row.ID, nil
	}
	return res.LastInsertId()
}

// DeleteByMember removes every account row owned by the member. Persist
// replaces the full set afterwards, so closed accounts disappear.
func (w *Writer) DeleteByMember(ctx context.Context, memberID string) error {
	q := sqlite.Delete(
		dm.From("accounts"),
		dm.Where(sqlite.Quote("member_id").EQ(sqlite.Arg(memberID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
