package member

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

// IDs returns every member id in the store.
func (r *Reader) IDs(ctx context.Context) ([]string, error) {
	q := sqlite.Select(
		sm.Columns("id"),
		sm.From("members"),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.SingleColumnMapper[string])
}

// FindByID loads one member identity row.
func (r *Reader) FindByID(ctx context.Context, id string) (*Row, error) {
	q := sqlite.Select(
		sm.Columns("id", "f_name", "l_name", "credit_score", "pass_hash", "pin_hash"),
		sm.From("members"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PoolIDs returns the remaining unallocated member-identifier pool.
func (r *Reader) PoolIDs(ctx context.Context) ([]int64, error) {
	q := sqlite.Select(
		sm.Columns("id"),
		sm.From("id_space"),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}
