package member

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

func TestHTTP_ListRates_WithCreditScore(t *testing.T) {
	m := ledger.NewMember("1111111111", "Ada", "Lovelace", []byte("hash"))
	score := 700
	m.CreditScore = &score
	api := newMemberTestAPI(t, nil, m)

	resp := api.Get("/v1/member/1111111111/rates")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListRatesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.NotNil(t, body.Savings)
	assert.InDelta(t, 0.02*700.0/850.0, *body.Savings, 1e-9)
	require.NotNil(t, body.Loan)
	assert.InDelta(t, 0.08, *body.Loan, 1e-9)

	// One CD rate per configured term, scaled by the score.
	require.Len(t, body.CD, 2)
	assert.InDelta(t, 0.03*700.0/850.0, body.CD["6"], 1e-9)
	assert.InDelta(t, 0.04*700.0/850.0, body.CD["12"], 1e-9)
}

func TestHTTP_ListRates_NoCreditScore(t *testing.T) {
	m := ledger.NewMember("1111111111", "Ada", "Lovelace", []byte("hash"))
	api := newMemberTestAPI(t, nil, m)

	resp := api.Get("/v1/member/1111111111/rates")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListRatesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Nil(t, body.Savings)
	assert.Nil(t, body.Loan)
	assert.Empty(t, body.CD)
}

func TestHTTP_ListRates_UnknownMember(t *testing.T) {
	api := newMemberTestAPI(t, nil)

	resp := api.Get("/v1/member/9999999999/rates")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
