package operator

import (
	"context"
	"sync"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// OperatorDelegator manages the queue, starts/stops the Operator, and
// enqueues items. Exactly one worker drains the queue: member aggregates
// carry no locks, so serializing every mutating ledger operation through
// a single owner is what makes multi-step charges atomic in memory.
type OperatorDelegator struct {
	deps     *actions.Deps
	queue    chan ActionItem
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(deps *actions.Deps) *OperatorDelegator {
	return &OperatorDelegator{
		deps:  deps,
		queue: make(chan ActionItem, 1000),
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.deps, d.queue)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
