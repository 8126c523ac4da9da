package transaction

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
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

// Upsert writes one canonical transaction row. New rows (id 0) are
// assigned an id by the store and the id is returned; existing rows are
// replaced in place, which keeps re-saves of a member idempotent.
func (w *Writer) Upsert(ctx context.Context, row *Row) (int64, error) {
	var q bob.BaseQuery[*dialect.InsertQuery]
	if row.ID != 0 {
		q = sqlite.Insert(
			im.OrReplace(),
			im.Into("transactions", "id", "amount", "payer_id", "recipient_id", "date"),
			im.Values(sqlite.Arg(row.ID, row.Amount, row.PayerID, row.RecipientID, row.Date)),
		)
	} else {
		q = sqlite.Insert(
			im.Into("transactions", "amount", "payer_id", "recipient_id", "date"),
			im.Values(sqlite.Arg(row.Amount, row.PayerID, row.RecipientID, row.Date)),
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
