package account

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

// ListByMember returns the member's accounts in creation (row id) order.
func (r *Reader) ListByMember(ctx context.Context, memberID string) ([]*Row, error) {
	q := sqlite.Select(
		sm.Columns("id", "balance", "type", "member_id", "r", "term"),
		sm.From("accounts"),
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
