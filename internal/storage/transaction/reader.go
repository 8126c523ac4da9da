package transaction

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByPayer(ctx context.Context, memberID string) ([]*Row, error) {
	return r.list(ctx, "payer_id", memberID)
}

func (r *Reader) ListByRecipient(ctx context.Context, memberID string) ([]*Row, error) {
	return r.list(ctx, "recipient_id", memberID)
}

func (r *Reader) list(ctx context.Context, column, memberID string) ([]*Row, error) {
	q := sqlite.Select(
		sm.Columns("id", "amount", "payer_id", "recipient_id", "date"),
		sm.From("transactions"),
		sm.Where(sqlite.Quote(column).EQ(sqlite.Arg(memberID))),
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
