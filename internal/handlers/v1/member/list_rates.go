package member

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// ListRatesInput is the Huma input for the rate-quote endpoint.
type ListRatesInput struct {
	MemberID string `path:"memberID" doc:"Member id"`
}

// ListRatesResponse lists the rates the member currently qualifies for.
// Savings and loan are absent for a member with no credit score; cd maps
// each configured term length in months to its rate.
type ListRatesResponse struct {
	Savings *float64           `json:"savings,omitempty" doc:"Savings rate"`
	Loan    *float64           `json:"loan,omitempty" doc:"Flat loan rate"`
	CD      map[string]float64 `json:"cd" doc:"CD rate per term length in months"`
}

// ListRatesOutput is the Huma output for the rate-quote endpoint.
type ListRatesOutput struct {
	Body ListRatesResponse
}

// ListRatesHandler handles GET /v1/member/{memberID}/rates.
type ListRatesHandler struct {
	Operator *operator.OperatorDelegator
}

func NewListRatesHandler(op *operator.OperatorDelegator) *ListRatesHandler {
	return &ListRatesHandler{Operator: op}
}

// Register registers the rate-quote endpoint with the Huma API.
func (h *ListRatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-member-rates",
		Method:      http.MethodGet,
		Path:        "/v1/member/{memberID}/rates",
		Summary:     "List member rates",
		Description: "Lists the savings, loan and per-term CD rates the member qualifies for at their current credit score.",
		Tags:        []string{"Members"},
	}, h.handle)
}

func (h *ListRatesHandler) handle(ctx context.Context, input *ListRatesInput) (*ListRatesOutput, error) {
	action := &actions.QuoteRates{MemberID: input.MemberID}

	if err := h.Operator.Process(ctx, action); err != nil {
		if errors.Is(err, ledger.ErrUnknownMember) {
			return nil, huma.NewError(http.StatusNotFound, "unknown member", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list rates", err)
	}

	return &ListRatesOutput{
		Body: ListRatesResponse{
			Savings: action.Result.Savings,
			Loan:    action.Result.Loan,
			CD:      action.Result.CD,
		},
	}, nil
}
