// Package authorization enforces role-based access on the API surface.
// Discount-authority checks live with the approval policy; this layer
// only answers whether a role may reach an operation at all.
package authorization

import (
	"context"
	"errors"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
)

const (
	ObjectQuotation         = "quotation"
	ObjectAgentRegistration = "agent_registration"
	ObjectPricing           = "pricing"
	ObjectUser              = "user"
)

const (
	ActionView      = "view"
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionDecide    = "decide"
	ActionCalculate = "calculate"
)

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)

// Service answers authorization questions for an authenticated actor.
type Service interface {
	Authorize(ctx context.Context, actor authdomain.Actor, object, action string) error
}
