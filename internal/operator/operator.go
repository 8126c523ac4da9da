package operator

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	deps  *actions.Deps
	queue chan ActionItem
}

func NewOperator(deps *actions.Deps, queue chan ActionItem) *Operator {
	return &Operator{
		deps:  deps,
		queue: queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is
// closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	err := item.action.Perform(item.ctx, o.deps)
	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
