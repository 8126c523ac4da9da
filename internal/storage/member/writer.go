package member

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
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

// Upsert writes the member identity row, replacing any existing row for
// the same id.
func (w *Writer) Upsert(ctx context.Context, row *Row) error {
	q := sqlite.Insert(
		im.OrReplace(),
		im.Into("members", "id", "f_name", "l_name", "credit_score", "pass_hash", "pin_hash"),
		im.Values(sqlite.Arg(row.ID, row.FName, row.LName, row.CreditScore, row.PassHash, row.PinHash)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// RemovePoolID deletes one identifier from the allocation pool.
func (w *Writer) RemovePoolID(ctx context.Context, id int64) error {
	q := sqlite.Delete(
		dm.From("id_space"),
		dm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
