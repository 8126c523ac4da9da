package charge

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// CreateChargeBody is the request body for the debit charge endpoint.
type CreateChargeBody struct {
	PayerID     string `json:"payerID" required:"true" doc:"Paying member id"`
	RecipientID string `json:"recipientID" required:"true" doc:"Receiving member id"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount"`
	Taxable     bool   `json:"taxable" doc:"Whether sales tax applies"`
	PIN         string `json:"pin" required:"true" doc:"Payer debit PIN"`
}

// CreateChargeInput is the Huma input for the debit charge endpoint.
type CreateChargeInput struct {
	Body CreateChargeBody
}

// CreateChargeResponse reports the charge outcome. A bounced charge is a
// 200 with Bounced set and the shortfall filled in; nothing moved.
type CreateChargeResponse struct {
	Requested    string `json:"requested" doc:"Requested decimal amount"`
	SalesTax     string `json:"salesTax" doc:"Sales tax withheld"`
	PayerBalance string `json:"payerBalance" doc:"Payer liquid balance after the charge"`
	Shortfall    string `json:"shortfall,omitempty" doc:"How far checking fell below the amount, when bounced"`
	Bounced      bool   `json:"bounced" doc:"True when the charge was rejected for insufficient funds"`
}

// CreateChargeOutput is the Huma output for the debit charge endpoint.
type CreateChargeOutput struct {
	Body CreateChargeResponse
}

// CreateChargeHandler handles POST /v1/charge.
type CreateChargeHandler struct {
	Operator *operator.OperatorDelegator
}

func NewCreateChargeHandler(op *operator.OperatorDelegator) *CreateChargeHandler {
	return &CreateChargeHandler{Operator: op}
}

// Register registers the charge endpoint with the Huma API.
func (h *CreateChargeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-charge",
		Method:      http.MethodPost,
		Path:        "/v1/charge",
		Summary:     "Charge a member",
		Description: "Runs a PIN-gated charge between two members' checking accounts.",
		Tags:        []string{"Charges"},
	}, h.handle)
}

func (h *CreateChargeHandler) handle(ctx context.Context, input *CreateChargeInput) (*CreateChargeOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	action := &actions.Charge{
		PayerID:     input.Body.PayerID,
		RecipientID: input.Body.RecipientID,
		Amount:      amount,
		Taxable:     input.Body.Taxable,
		PIN:         input.Body.PIN,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnknownMember):
			return nil, huma.NewError(http.StatusNotFound, "unknown member", err)
		case errors.Is(err, ledger.ErrDebitNotEnabled), errors.Is(err, ledger.ErrWrongPIN):
			return nil, huma.NewError(http.StatusForbidden, "pin verification failed", err)
		case errors.Is(err, ledger.ErrNegativeAmount):
			return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		default:
			return nil, huma.NewError(http.StatusInternalServerError, "failed to create charge", err)
		}
	}

	result := action.Result
	out := &CreateChargeOutput{
		Body: CreateChargeResponse{
			Requested:    result.Requested.String(),
			SalesTax:     result.SalesTax.String(),
			PayerBalance: result.PayerBalance.String(),
			Bounced:      result.Bounced,
		},
	}
	if result.Bounced {
		out.Body.Shortfall = result.Shortfall.String()
	}
	return out, nil
}
