package ledger

import (
	"github.com/shopspring/decimal"
)

// AccountKind is the stored account discriminator.
type AccountKind string

const (
	AccountChecking AccountKind = "checking"
	AccountSavings  AccountKind = "savings"
	AccountCD       AccountKind = "cd"
)

// Account is one account owned by exactly one member. Rate is present for
// savings and cd accounts, Term for cd accounts only; the constructors
// enforce that shape so an invalid combination cannot exist in memory.
type Account struct {
	ID       int64 // 0 until first persisted; the store assigns it
	Balance  decimal.Decimal
	Kind     AccountKind
	MemberID string
	Rate     *float64
	Term     *float64
}

// NewCheckingAccount creates a zero-balance checking account.
func NewCheckingAccount(memberID string) *Account {
	return &Account{
		Balance:  decimal.Zero,
		Kind:     AccountChecking,
		MemberID: memberID,
	}
}

func NewSavingsAccount(memberID string, balance decimal.Decimal, rate *float64) (*Account, error) {
	if rate == nil {
		return nil, ErrRateRequired
	}
	if balance.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Account{
		Balance:  balance,
		Kind:     AccountSavings,
		MemberID: memberID,
		Rate:     rate,
	}, nil
}

func NewCDAccount(memberID string, balance decimal.Decimal, rate *float64, term *float64) (*Account, error) {
	if rate == nil {
		return nil, ErrRateRequired
	}
	if term == nil {
		return nil, ErrTermRequired
	}
	if balance.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Account{
		Balance:  balance,
		Kind:     AccountCD,
		MemberID: memberID,
		Rate:     rate,
		Term:     term,
	}, nil
}

// Liquid reports whether the account counts toward the member's derived
// balance. CD balances are locked up for the term and excluded.
func (a *Account) Liquid() bool {
	return a.Kind != AccountCD
}
