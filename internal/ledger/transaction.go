package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of one completed charge, viewed from
// one party's side: negative Amount for the payer, positive for the
// recipient. Only the recipient's view is persisted; the payer's view is
// reconstructed with the sign flipped at hydration.
type Transaction struct {
	ID          int64 // 0 until first persisted; the store assigns it
	Amount      decimal.Decimal
	PayerID     string
	RecipientID string
	Date        time.Time
}
