package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/engine"
	"github.com/carson-networks/ledger-server/internal/registry"
)

// Deps is what an action gets to work with when its turn comes up.
type Deps struct {
	Engine   *engine.Engine
	Registry *registry.Registry
}

type IAction interface {
	Perform(ctx context.Context, deps *Deps) error
}
