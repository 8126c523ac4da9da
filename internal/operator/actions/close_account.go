package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// CloseAccount removes a zero-balance account from a member.
type CloseAccount struct {
	MemberID  string
	AccountID int64

	IAction
}

func (a *CloseAccount) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	return deps.Engine.CloseAccount(ctx, m, a.AccountID)
}
