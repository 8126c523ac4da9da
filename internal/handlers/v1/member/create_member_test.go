package member

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/engine"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/rate"
	"github.com/carson-networks/ledger-server/internal/registry"
)

type fakeGateway struct {
	pool    []int64
	members []*ledger.Member
}

func (g *fakeGateway) HydrateAll(ctx context.Context) ([]*ledger.Member, error) {
	return g.members, nil
}

func (g *fakeGateway) PersistAll(ctx context.Context, members ...*ledger.Member) error {
	return nil
}

func (g *fakeGateway) LoadPool(ctx context.Context) ([]int64, error) {
	return g.pool, nil
}

func (g *fakeGateway) ClaimPoolID(ctx context.Context, id int64) error {
	return nil
}

func (g *fakeGateway) Close() error {
	return nil
}

type stubVerifier struct{}

func (stubVerifier) Verify(hash []byte, presented string) bool { return true }

func newMemberTestAPI(t *testing.T, pool []int64, members ...*ledger.Member) humatest.TestAPI {
	t.Helper()

	gateway := &fakeGateway{pool: pool, members: members}
	memberRegistry := registry.NewRegistry(gateway, logging.SetupLogging())
	require.NoError(t, memberRegistry.Hydrate(context.Background()))

	rates := rate.NewPolicy(config.BaseRates{
		Savings: 0.02,
		Loan:    0.08,
		CD:      map[string]float64{"6": 0.03, "12": 0.04},
	})
	ledgerEngine := engine.NewEngine(memberRegistry, gateway, stubVerifier{}, rates, 0.05, "0000000000")

	delegator := operator.NewOperatorDelegator(&actions.Deps{
		Engine:   ledgerEngine,
		Registry: memberRegistry,
	})
	delegator.Start()
	t.Cleanup(delegator.Stop)

	_, api := humatest.New(t)
	NewCreateMemberHandler(delegator).Register(api)
	NewListRatesHandler(delegator).Register(api)
	return api
}

func TestHTTP_CreateMember_Success(t *testing.T) {
	api := newMemberTestAPI(t, []int64{42})

	resp := api.Post("/v1/member", CreateMemberBody{
		FName:    "Ada",
		LName:    "Lovelace",
		Password: "hunter2",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		MemberID string `json:"memberID"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0000000042", body.MemberID)
}

func TestHTTP_CreateMember_PoolExhausted(t *testing.T) {
	api := newMemberTestAPI(t, nil)

	resp := api.Post("/v1/member", CreateMemberBody{
		FName:    "Ada",
		LName:    "Lovelace",
		Password: "hunter2",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}
