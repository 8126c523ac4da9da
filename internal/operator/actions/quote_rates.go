package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/engine"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// QuoteRates reads the rates a member currently qualifies for. It runs
// through the queue like every other operation so the member aggregate is
// never read while the worker mutates it.
type QuoteRates struct {
	MemberID string

	Result engine.RateQuote

	IAction
}

func (a *QuoteRates) Perform(ctx context.Context, deps *Deps) error {
	m, ok := deps.Registry.Lookup(a.MemberID)
	if !ok {
		return ledger.ErrUnknownMember
	}

	a.Result = deps.Engine.QuoteRates(m)
	return nil
}
