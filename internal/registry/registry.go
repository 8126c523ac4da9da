// Package registry owns the set of hydrated Member aggregates for the
// process. It is constructed once at startup and passed to everything
// that needs member lookup; there is no package-level state.
package registry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Gateway is the slice of the persistence layer the registry needs.
type Gateway interface {
	HydrateAll(ctx context.Context) ([]*ledger.Member, error)
	PersistAll(ctx context.Context, members ...*ledger.Member) error
	LoadPool(ctx context.Context) ([]int64, error)
	ClaimPoolID(ctx context.Context, id int64) error
	Close() error
}

type Registry struct {
	gateway Gateway
	logger  *logrus.Logger

	members map[string]*ledger.Member
	pool    []int64

	// pickIndex selects the pool slot for a new registration; overridden
	// in tests to make id allocation deterministic.
	pickIndex func(n int) int
}

func NewRegistry(gateway Gateway, logger *logrus.Logger) *Registry {
	return &Registry{
		gateway:   gateway,
		logger:    logger,
		members:   make(map[string]*ledger.Member),
		pickIndex: rand.IntN,
	}
}

// Hydrate loads every member and the identifier pool from the store.
func (r *Registry) Hydrate(ctx context.Context) error {
	members, err := r.gateway.HydrateAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		r.members[m.ID] = m
	}

	pool, err := r.gateway.LoadPool(ctx)
	if err != nil {
		return err
	}
	r.pool = pool

	r.logger.WithFields(logrus.Fields{
		"members":  len(r.members),
		"poolSize": len(r.pool),
	}).Info("Registry.Hydrate.complete")
	return nil
}

// Register creates a new member: an identifier is drawn uniformly at
// random from the remaining pool and its removal is committed before the
// member exists, so a crash in between can never reissue the id. The new
// member starts with a zero-balance primary checking account.
func (r *Registry) Register(ctx context.Context, fName, lName string, passHash []byte) (*ledger.Member, error) {
	if len(r.pool) == 0 {
		return nil, ledger.ErrIDSpaceExhausted
	}

	slot := r.pickIndex(len(r.pool))
	rawID := r.pool[slot]
	if err := r.gateway.ClaimPoolID(ctx, rawID); err != nil {
		return nil, err
	}
	r.pool = append(r.pool[:slot], r.pool[slot+1:]...)

	m := ledger.NewMember(FormatID(rawID), fName, lName, passHash)
	if err := r.gateway.PersistAll(ctx, m); err != nil {
		return nil, err
	}
	r.members[m.ID] = m

	r.logger.WithField("memberID", m.ID).Info("Registry.Register.complete")
	return m, nil
}

// EnsureReserved creates a member under a fixed well-known id (outside
// the allocation pool) if it does not exist yet. Used for the
// tax-collector member at startup.
func (r *Registry) EnsureReserved(ctx context.Context, id, fName, lName string) (*ledger.Member, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	m := ledger.NewMember(id, fName, lName, nil)
	if err := r.gateway.PersistAll(ctx, m); err != nil {
		return nil, err
	}
	r.members[id] = m
	return m, nil
}

// Lookup finds a member by id. A miss is a normal outcome, not an error.
func (r *Registry) Lookup(id string) (*ledger.Member, bool) {
	m, ok := r.members[id]
	return m, ok
}

// Members returns every hydrated member in id order.
func (r *Registry) Members() []*ledger.Member {
	out := make([]*ledger.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PoolSize reports how many identifiers remain unissued.
func (r *Registry) PoolSize() int {
	return len(r.pool)
}

// Close flushes every member and releases the store handle.
func (r *Registry) Close(ctx context.Context) error {
	for _, m := range r.Members() {
		if err := r.gateway.PersistAll(ctx, m); err != nil {
			r.logger.WithError(err).WithField("memberID", m.ID).Error("Registry.Close.flush")
			return err
		}
	}
	return r.gateway.Close()
}

// FormatID renders a pool identifier as the ten-digit member id string.
func FormatID(id int64) string {
	return fmt.Sprintf("%010d", id)
}
