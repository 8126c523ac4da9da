package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// PayLoan applies a payment from the member's primary checking account
// against one of their loans.
type PayLoan struct {
	MemberID string
	LoanID   int64
	Amount   decimal.Decimal

	IAction
}

func (a *PayLoan) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	return deps.Engine.PayLoan(ctx, m, a.LoanID, a.Amount)
}
