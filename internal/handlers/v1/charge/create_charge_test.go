package charge

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
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

// fakeGateway keeps everything in memory; handler tests only care about
// the operation outcomes, not durability.
type fakeGateway struct {
	members []*ledger.Member
}

func (g *fakeGateway) HydrateAll(ctx context.Context) ([]*ledger.Member, error) {
	return g.members, nil
}

func (g *fakeGateway) PersistAll(ctx context.Context, members ...*ledger.Member) error {
	return nil
}

func (g *fakeGateway) LoadPool(ctx context.Context) ([]int64, error) {
	return nil, nil
}

func (g *fakeGateway) ClaimPoolID(ctx context.Context, id int64) error {
	return nil
}

func (g *fakeGateway) Close() error {
	return nil
}

type stubVerifier struct {
	accept string
}

func (v stubVerifier) Verify(hash []byte, presented string) bool {
	return presented == v.accept
}

// newChargeTestAPI wires the full stack behind the handler: registry and
// engine over an in-memory gateway, fronted by a running delegator.
func newChargeTestAPI(t *testing.T, members ...*ledger.Member) humatest.TestAPI {
	t.Helper()

	gateway := &fakeGateway{members: members}
	memberRegistry := registry.NewRegistry(gateway, logging.SetupLogging())
	require.NoError(t, memberRegistry.Hydrate(context.Background()))

	ledgerEngine := engine.NewEngine(memberRegistry, gateway, stubVerifier{accept: "1234"}, rate.NewPolicy(config.BaseRates{}), 0.05, "0000000000")

	delegator := operator.NewOperatorDelegator(&actions.Deps{
		Engine:   ledgerEngine,
		Registry: memberRegistry,
	})
	delegator.Start()
	t.Cleanup(delegator.Stop)

	_, api := humatest.New(t)
	NewCreateChargeHandler(delegator).Register(api)
	return api
}

func debitMember(id, checking string) *ledger.Member {
	m := ledger.NewMember(id, "Test", "Member", []byte("hash"))
	m.PINHash = []byte("pin-hash")
	m.Checking.Balance = decimal.RequireFromString(checking)
	m.SyncBalance()
	return m
}

func TestHTTP_CreateCharge_Success(t *testing.T) {
	payer := debitMember("1111111111", "100.00")
	recipient := debitMember("2222222222", "0.00")
	collector := debitMember("0000000000", "0.00")
	api := newChargeTestAPI(t, payer, recipient, collector)

	resp := api.Post("/v1/charge", CreateChargeBody{
		PayerID:     "1111111111",
		RecipientID: "2222222222",
		Amount:      "30.00",
		Taxable:     true,
		PIN:         "1234",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CreateChargeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Bounced)
	assert.True(t, decimal.RequireFromString(body.PayerBalance).Equal(decimal.RequireFromString("68.50")))
	assert.True(t, decimal.RequireFromString(body.SalesTax).Equal(decimal.RequireFromString("1.50")))
	assert.True(t, payer.Checking.Balance.Equal(decimal.RequireFromString("68.50")))
	assert.True(t, recipient.Checking.Balance.Equal(decimal.RequireFromString("28.50")))
	assert.True(t, collector.Checking.Balance.Equal(decimal.RequireFromString("1.50")))
}

func TestHTTP_CreateCharge_Bounced(t *testing.T) {
	payer := debitMember("1111111111", "5.00")
	recipient := debitMember("2222222222", "0.00")
	collector := debitMember("0000000000", "0.00")
	api := newChargeTestAPI(t, payer, recipient, collector)

	resp := api.Post("/v1/charge", CreateChargeBody{
		PayerID:     "1111111111",
		RecipientID: "2222222222",
		Amount:      "30.00",
		Taxable:     true,
		PIN:         "1234",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CreateChargeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Bounced)
	assert.True(t, decimal.RequireFromString(body.Shortfall).Equal(decimal.RequireFromString("-25.00")))
	assert.True(t, payer.Checking.Balance.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, recipient.Checking.Balance.IsZero())
}

func TestHTTP_CreateCharge_UnknownMember(t *testing.T) {
	api := newChargeTestAPI(t)

	resp := api.Post("/v1/charge", CreateChargeBody{
		PayerID:     "1111111111",
		RecipientID: "2222222222",
		Amount:      "30.00",
		PIN:         "1234",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_CreateCharge_WrongPIN(t *testing.T) {
	payer := debitMember("1111111111", "100.00")
	recipient := debitMember("2222222222", "0.00")
	api := newChargeTestAPI(t, payer, recipient)

	resp := api.Post("/v1/charge", CreateChargeBody{
		PayerID:     "1111111111",
		RecipientID: "2222222222",
		Amount:      "30.00",
		PIN:         "9999",
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHTTP_CreateCharge_InvalidAmount(t *testing.T) {
	payer := debitMember("1111111111", "100.00")
	recipient := debitMember("2222222222", "0.00")
	api := newChargeTestAPI(t, payer, recipient)

	resp := api.Post("/v1/charge", CreateChargeBody{
		PayerID:     "1111111111",
		RecipientID: "2222222222",
		Amount:      "not-a-number",
		PIN:         "1234",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
