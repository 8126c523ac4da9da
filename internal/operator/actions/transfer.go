package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transfer moves money between two accounts owned by one member.
type Transfer struct {
	MemberID      string
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal

	IAction
}

func (a *Transfer) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	return deps.Engine.TransferBetweenOwnAccounts(ctx, m, a.FromAccountID, a.ToAccountID, a.Amount)
}
