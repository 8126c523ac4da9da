package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors one transactions-table row. Exactly one row exists per
// charge; the amount is stored from the recipient's (positive) point of
// view and the date as RFC3339 text.
type Row struct {
	ID          int64           `db:"id"`
	Amount      decimal.Decimal `db:"amount"`
	PayerID     string          `db:"payer_id"`
	RecipientID string          `db:"recipient_id"`
	Date        string          `db:"date"`
}

// ToTransaction reconstructs the transaction as seen by viewerID: the
// stored amount for the recipient, negated for the payer.
func (r *Row) ToTransaction(viewerID string) *ledger.Transaction {
	amount := r.Amount
	if viewerID == r.PayerID {
		amount = amount.Neg()
	}
	date, err := time.Parse(time.RFC3339Nano, r.Date)
	if err != nil {
		date = time.Time{}
	}
	return &ledger.Transaction{
		ID:          r.ID,
		Amount:      amount,
		PayerID:     r.PayerID,
		RecipientID: r.RecipientID,
		Date:        date,
	}
}

// RowFromTransaction builds the canonical (recipient-side, positive) row.
func RowFromTransaction(t *ledger.Transaction) *Row {
	return &Row{
		ID:          t.ID,
		Amount:      t.Amount.Abs(),
		PayerID:     t.PayerID,
		RecipientID: t.RecipientID,
		Date:        t.Date.UTC().Format(time.RFC3339Nano),
	}
}
