package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// OpenAccount opens a new account for a member, funded from the member's
// primary checking account.
type OpenAccount struct {
	MemberID       string
	Kind           ledger.AccountKind
	StartingAmount decimal.Decimal
	Rate           *float64
	Term           *float64

	AccountID int64

	IAction
}

func (a *OpenAccount) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	id, err := deps.Engine.OpenAccount(ctx, m, a.Kind, a.StartingAmount, a.Rate, a.Term)
	if err != nil {
		return err
	}

	a.AccountID = id
	return nil
}
