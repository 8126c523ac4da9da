package member

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// CreateMemberBody is the request body for registering a member.
type CreateMemberBody struct {
	FName    string `json:"fName" required:"true" doc:"First name"`
	LName    string `json:"lName" required:"true" doc:"Last name"`
	Password string `json:"password" required:"true" doc:"Login password"`
}

// CreateMemberInput is the Huma input for registering a member.
type CreateMemberInput struct {
	Body CreateMemberBody
}

// CreateMemberOutput is the Huma output for registering a member.
type CreateMemberOutput struct {
	Body struct {
		MemberID string `json:"memberID" doc:"Allocated member id"`
	}
}

// CreateMemberHandler handles POST /v1/member.
type CreateMemberHandler struct {
	Operator *operator.OperatorDelegator
}

func NewCreateMemberHandler(op *operator.OperatorDelegator) *CreateMemberHandler {
	return &CreateMemberHandler{Operator: op}
}

// Register registers the member creation endpoint with the Huma API.
func (h *CreateMemberHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-member",
		Method:      http.MethodPost,
		Path:        "/v1/member",
		Summary:     "Register member",
		Description: "Registers a new member with a pool-allocated id and a zero-balance checking account.",
		Tags:        []string{"Members"},
	}, h.handle)
}

func (h *CreateMemberHandler) handle(ctx context.Context, input *CreateMemberInput) (*CreateMemberOutput, error) {
	passHash, err := auth.Hash(input.Body.Password)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to hash password", err)
	}

	action := &actions.RegisterMember{
		FName:    input.Body.FName,
		LName:    input.Body.LName,
		PassHash: passHash,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		if errors.Is(err, ledger.ErrIDSpaceExhausted) {
			return nil, huma.NewError(http.StatusConflict, "no member ids left", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to register member", err)
	}

	out := &CreateMemberOutput{}
	out.Body.MemberID = action.MemberID
	return out, nil
}
