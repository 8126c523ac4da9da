package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// TakeLoan issues a loan at the member's derived loan rate; the principal
// is deposited into the member's primary checking account.
type TakeLoan struct {
	MemberID  string
	Principal decimal.Decimal

	LoanID int64

	IAction
}

func (a *TakeLoan) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	id, err := deps.Engine.TakeLoan(ctx, m, a.Principal)
	if err != nil {
		return err
	}

	a.LoanID = id
	return nil
}
