package ledger

import (
	"github.com/shopspring/decimal"
)

// Loan is an outstanding loan owned by one member.
type Loan struct {
	ID        int64
	Principal decimal.Decimal
	Rate      float64
	MemberID  string
}

// Pay applies a payment: the interest portion (amount × rate) is consumed
// first and the remainder reduces principal. The rate itself never moves.
func (l *Loan) Pay(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	interest := amount.Mul(decimal.NewFromFloat(l.Rate))
	l.Principal = l.Principal.Sub(amount.Sub(interest))
	return nil
}
