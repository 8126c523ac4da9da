// Package loan provides storage access for the loans table. It is small
// enough that reader, writer and model share one file.
package loan

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors one loans-table row.
type Row struct {
	ID        int64           `db:"id"`
	Principal decimal.Decimal `db:"principal"`
	Rate      float64         `db:"rate"`
	MemberID  string          `db:"member_id"`
}

func (r *Row) ToLoan() *ledger.Loan {
	return &ledger.Loan{
		ID:        r.ID,
		Principal: r.Principal,
		Rate:      r.Rate,
		MemberID:  r.MemberID,
	}
}

func RowFromLoan(l *ledger.Loan) *Row {
	return &Row{
		ID:        l.ID,
		Principal: l.Principal,
		Rate:      l.Rate,
		MemberID:  l.MemberID,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByMember(ctx context.Context, memberID string) ([]*Row, error) {
	q := sqlite.Select(
		sm.Columns("id", "principal", "rate", "member_id"),
		sm.From("loans"),
		sm.Where(sqlite.Quote("member_id").EQ(sqlite.Arg(memberID))),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	result := make([]*Row, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

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

func (w *Writer) Insert(ctx context.Context, row *Row) (int64, error) {
	var q bob.BaseQuery[*dialect.InsertQuery]
	if row.ID != 0 {
		q = sqlite.Insert(
			im.OrReplace(),
			im.Into("loans", "id", "principal", "rate", "member_id"),
			im.Values(sqlite.Arg(row.ID, row.Principal, row.Rate, row.MemberID)),
		)
	} else {
		q = sqlite.Insert(
			im.Into("loans", "principal", "rate", "member_id"),
			im.Values(sqlite.Arg(row.Principal, row.Rate, row.MemberID)),
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

func (w *Writer) DeleteByMember(ctx context.Context, memberID string) error {
	q := sqlite.Delete(
		dm.From("loans"),
		dm.Where(sqlite.Quote("member_id").EQ(sqlite.Arg(memberID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
