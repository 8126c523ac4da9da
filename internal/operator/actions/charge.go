package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/engine"
)

// Charge runs a PIN-gated charge between two members. Result is filled in
// after a successful Perform, including the bounced case.
type Charge struct {
	PayerID     string
	RecipientID string
	Amount      decimal.Decimal
	Taxable     bool
	PIN         string

	Result engine.ChargeResult

	IAction
}

func (c *Charge) Perform(ctx context.Context, deps *Deps) error {
	result, err := deps.Engine.ChargeWithPIN(ctx, c.PayerID, c.RecipientID, c.Amount, c.Taxable, c.PIN)
	if err != nil {
		return err
	}

	c.Result = result
	return nil
}
