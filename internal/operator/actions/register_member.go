package actions

import (
	"context"
)

// RegisterMember creates a new member with a pool-allocated id and a
// zero-balance primary checking account.
type RegisterMember struct {
	FName    string
	LName    string
	PassHash []byte

	MemberID string

	IAction
}

func (a *RegisterMember) Perform(ctx context.Context, deps *Deps) error {
	m, err := deps.Registry.Register(ctx, a.FName, a.LName, a.PassHash)
	if err != nil {
		return err
	}

	a.MemberID = m.ID
	return nil
}
