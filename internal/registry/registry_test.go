package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) HydrateAll(ctx context.Context) ([]*ledger.Member, error) {
	args := m.Called(ctx)
	members, _ := args.Get(0).([]*ledger.Member)
	return members, args.Error(1)
}

func (m *mockGateway) PersistAll(ctx context.Context, members ...*ledger.Member) error {
	args := m.Called(ctx, members)
	return args.Error(0)
}

func (m *mockGateway) LoadPool(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	pool, _ := args.Get(0).([]int64)
	return pool, args.Error(1)
}

func (m *mockGateway) ClaimPoolID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGateway) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestRegistry(t *testing.T, pool []int64) (*Registry, *mockGateway) {
	t.Helper()
	gateway := new(mockGateway)
	r := NewRegistry(gateway, logging.SetupLogging())
	r.pool = pool
	r.pickIndex = func(n int) int { return 0 }
	return r, gateway
}

func TestHydrate(t *testing.T) {
	gateway := new(mockGateway)
	r := NewRegistry(gateway, logging.SetupLogging())

	m := ledger.NewMember("0000000042", "Ada", "Lovelace", []byte("hash"))
	gateway.On("HydrateAll", mock.Anything).Return([]*ledger.Member{m}, nil)
	gateway.On("LoadPool", mock.Anything).Return([]int64{7, 8}, nil)

	err := r.Hydrate(context.Background())
	assert.NoError(t, err)

	found, ok := r.Lookup("0000000042")
	assert.True(t, ok)
	assert.Same(t, m, found)
	assert.Equal(t, 2, r.PoolSize())
}

func TestRegister_AllocatesFromPool(t *testing.T) {
	r, gateway := newTestRegistry(t, []int64{42, 43})

	gateway.On("ClaimPoolID", mock.Anything, int64(42)).Return(nil)
	gateway.On("PersistAll", mock.Anything, mock.Anything).Return(nil)

	m, err := r.Register(context.Background(), "Ada", "Lovelace", []byte("hash"))
	assert.NoError(t, err)
	assert.Equal(t, "0000000042", m.ID)

	// The new member starts with a zero-balance primary checking account.
	assert.Len(t, m.Accounts, 1)
	assert.Equal(t, ledger.AccountChecking, m.Checking.Kind)
	assert.True(t, m.Checking.Balance.IsZero())

	// Pool and live members stay disjoint: the issued id is gone.
	assert.Equal(t, 1, r.PoolSize())
	found, ok := r.Lookup(m.ID)
	assert.True(t, ok)
	assert.Same(t, m, found)

	gateway.AssertCalled(t, "ClaimPoolID", mock.Anything, int64(42))
}

func TestRegister_PoolExhausted(t *testing.T) {
	r, gateway := newTestRegistry(t, nil)

	_, err := r.Register(context.Background(), "Ada", "Lovelace", []byte("hash"))
	assert.ErrorIs(t, err, ledger.ErrIDSpaceExhausted)
	gateway.AssertNotCalled(t, "PersistAll", mock.Anything, mock.Anything)
}

func TestRegister_ClaimFailureKeepsPool(t *testing.T) {
	r, gateway := newTestRegistry(t, []int64{42})

	claimErr := &ledger.PersistenceError{Op: "claim pool id", Err: assert.AnError}
	gateway.On("ClaimPoolID", mock.Anything, int64(42)).Return(claimErr)

	_, err := r.Register(context.Background(), "Ada", "Lovelace", []byte("hash"))
	assert.Error(t, err)
	assert.Equal(t, 1, r.PoolSize())
	gateway.AssertNotCalled(t, "PersistAll", mock.Anything, mock.Anything)
}

func TestEnsureReserved(t *testing.T) {
	r, gateway := newTestRegistry(t, nil)

	gateway.On("PersistAll", mock.Anything, mock.Anything).Return(nil)

	collector, err := r.EnsureReserved(context.Background(), "0000000000", "Sales", "Tax")
	assert.NoError(t, err)
	assert.Equal(t, "0000000000", collector.ID)

	// Second call is a no-op returning the live aggregate.
	again, err := r.EnsureReserved(context.Background(), "0000000000", "Sales", "Tax")
	assert.NoError(t, err)
	assert.Same(t, collector, again)
	gateway.AssertNumberOfCalls(t, "PersistAll", 1)
}

func TestLookup_MissIsNotAnError(t *testing.T) {
	r, _ := newTestRegistry(t, nil)

	m, ok := r.Lookup("9999999999")
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestClose_FlushesEveryMember(t *testing.T) {
	r, gateway := newTestRegistry(t, nil)
	a := ledger.NewMember("0000000001", "A", "A", nil)
	b := ledger.NewMember("0000000002", "B", "B", nil)
	r.members[a.ID] = a
	r.members[b.ID] = b

	gateway.On("PersistAll", mock.Anything, mock.Anything).Return(nil)
	gateway.On("Close").Return(nil)

	err := r.Close(context.Background())
	assert.NoError(t, err)
	gateway.AssertNumberOfCalls(t, "PersistAll", 2)
	gateway.AssertCalled(t, "Close")
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "0000000042", FormatID(42))
	assert.Equal(t, "0000099999", FormatID(99999))
}
