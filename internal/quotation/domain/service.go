package domain

import (
	"context"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
)

// CreateRequest carries the identity fields of a new quotation. Service
// selection and pricing arrive through later updates.
type CreateRequest struct {
	DeveloperType   string   `json:"developerType"`
	ProjectRegion   string   `json:"projectRegion"`
	PlotArea        *float64 `json:"plotArea"`
	DeveloperName   string   `json:"developerName"`
	ProjectName     string   `json:"projectName"`
	ContactMobile   string   `json:"contactMobile"`
	ContactEmail    string   `json:"contactEmail"`
	Validity        string   `json:"validity"`
	PaymentSchedule string   `json:"paymentSchedule"`
	RERANumber      string   `json:"reraNumber"`
	ServiceSummary  string   `json:"serviceSummary"`
}

// UpdateRequest patches service selection fields. Nil members are left
// untouched.
type UpdateRequest struct {
	Headers        *[]pricingdomain.Header `json:"headers"`
	ServiceSummary *string                 `json:"serviceSummary"`
}

// PricingPatch patches committed pricing. Nil members are left untouched.
type PricingPatch struct {
	PricingBreakdown *[]pricingdomain.PricedHeader `json:"pricingBreakdown"`
	TotalAmount      *float64                      `json:"totalAmount"`
	DiscountAmount   *float64                      `json:"discountAmount"`
	DiscountPercent  *float64                      `json:"discountPercent"`
}

// TermsUpdate replaces the terms block of a quotation.
type TermsUpdate struct {
	TermsAccepted   bool     `json:"termsAccepted"`
	ApplicableTerms []string `json:"applicableTerms"`
	CustomTerms     []string `json:"customTerms"`
}

// DecisionRequest carries a moderator's verdict on a pending quotation.
// Any action other than "reject" approves.
type DecisionRequest struct {
	Action string `json:"action"`
}

// AgentCreateRequest opens an agent registration record.
type AgentCreateRequest struct {
	AgentName     string `json:"agentName"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	AgentType     string `json:"agentType"`
	ProjectRegion string `json:"projectRegion"`
}

// AgentService is one priced line of an agent registration.
type AgentService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AgentServicesUpdate replaces the selected services of an agent
// registration.
type AgentServicesUpdate struct {
	Services []AgentService `json:"services"`
}

// AgentCompletion finalizes an agent registration.
type AgentCompletion struct {
	TermsAccepted bool `json:"termsAccepted"`
}

// ListRequest filters and pages the quotation listing.
type ListRequest struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// ListResult is one page of quotations with the total match count.
type ListResult struct {
	Items []Quotation
	Total int64
	Page  int
	Limit int
}

// Pages is the page count at the result's limit.
func (r *ListResult) Pages() int64 {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + int64(r.Limit) - 1) / int64(r.Limit)
}

// Service manages the quotation lifecycle. Every mutation re-runs the
// approval policy for the acting user, so a quotation's status always
// reflects its latest content.
type Service interface {
	Create(ctx context.Context, actor authdomain.Actor, req CreateRequest) (*Quotation, error)
	List(ctx context.Context, actor authdomain.Actor, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, actor authdomain.Actor, id string) (*Quotation, error)
	Update(ctx context.Context, actor authdomain.Actor, id string, req UpdateRequest) (*Quotation, error)
	UpdatePricing(ctx context.Context, actor authdomain.Actor, id string, patch PricingPatch) (*Quotation, error)
	UpdateTerms(ctx context.Context, actor authdomain.Actor, id string, terms TermsUpdate) (*Quotation, error)
	Decide(ctx context.Context, actor authdomain.Actor, id string, req DecisionRequest) (*Quotation, error)
	Delete(ctx context.Context, actor authdomain.Actor, id string) error

	CreateAgentRegistration(ctx context.Context, actor authdomain.Actor, req AgentCreateRequest) (*Quotation, error)
	ListAgentRegistrations(ctx context.Context, actor authdomain.Actor) ([]Quotation, error)
	GetAgentRegistration(ctx context.Context, actor authdomain.Actor, id string) (*Quotation, error)
	UpdateAgentServices(ctx context.Context, actor authdomain.Actor, id string, req AgentServicesUpdate) (*Quotation, error)
	CompleteAgentRegistration(ctx context.Context, actor authdomain.Actor, id string, req AgentCompletion) (*Quotation, error)
	UpdateAgentPricing(ctx context.Context, actor authdomain.Actor, id string, patch PricingPatch) (*Quotation, error)
	DeleteAgentRegistration(ctx context.Context, actor authdomain.Actor, id string) error
}

// ListFilter narrows a repository listing.
type ListFilter struct {
	Search        string
	Status        string
	DeveloperType string
	CreatedBy     string
	Offset        int
	Limit         int
}

// Repository persists quotations.
type Repository interface {
	Insert(ctx context.Context, q *Quotation) error
	FindByID(ctx context.Context, id string) (*Quotation, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Quotation, error)
	List(ctx context.Context, filter ListFilter) ([]Quotation, int64, error)
	Update(ctx context.Context, q *Quotation) error
	Delete(ctx context.Context, id string) error
	Transaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
