package service

import (
	"context"
	"fmt"
	"strings"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	agentDeveloperType   = "agent"
	agentDefaultRegion   = "Maharashtra"
	agentValidity        = "30 days"
	agentPaymentSchedule = "100%"
	agentServicesHeader  = "Agent Registration Services"
)

// CreateAgentRegistration opens an agent registration record. Agents
// carry no plot area; their record lives in the same table keyed by an
// AGENT-prefixed id.
func (s *Service) CreateAgentRegistration(ctx context.Context, actor authdomain.Actor, req domain.AgentCreateRequest) (*domain.Quotation, error) {
	if err := validateAgentCreate(req); err != nil {
		return nil, err
	}

	agentName := strings.TrimSpace(req.AgentName)
	agentType := strings.TrimSpace(req.AgentType)

	q := &domain.Quotation{
		ID:              newAgentID(),
		DeveloperType:   agentDeveloperType,
		ProjectRegion:   orDefault(req.ProjectRegion, agentDefaultRegion),
		PlotArea:        0,
		DeveloperName:   agentName,
		ProjectName:     fmt.Sprintf("Agent Registration - %s", agentType),
		ContactMobile:   strings.TrimSpace(req.Mobile),
		ContactEmail:    strings.TrimSpace(req.Email),
		Validity:        agentValidity,
		PaymentSchedule: agentPaymentSchedule,
		ServiceSummary:  fmt.Sprintf("Agent Registration - %s - %s", agentType, agentName),
		ApplicableTerms: datatypes.JSONSlice[string]{},
		CustomTerms:     datatypes.JSONSlice[string]{},
		Status:          domain.StatusDraft,
		CreatedBy:       actor.Username,
		CreatedAt:       s.now().UTC(),
		UpdatedAt:       s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("agent registration created",
		zap.String("quotation_id", q.ID),
		zap.String("agent_type", agentType),
		zap.String("created_by", q.CreatedBy),
	)
	return q, nil
}

func (s *Service) ListAgentRegistrations(ctx context.Context, actor authdomain.Actor) ([]domain.Quotation, error) {
	filter := domain.ListFilter{DeveloperType: agentDeveloperType}
	if !actor.CanModerate() {
		filter.CreatedBy = actor.Username
	}
	items, _, err := s.repo.List(ctx, filter)
	return items, err
}

func (s *Service) GetAgentRegistration(ctx context.Context, actor authdomain.Actor, id string) (*domain.Quotation, error) {
	q, err := s.findAgent(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModerate() && q.CreatedBy != actor.Username {
		return nil, domain.ErrAccessDenied
	}
	return q, nil
}

// UpdateAgentServices replaces the selected services. Each service is a
// priced line already, so the selection and the breakdown are written
// together and the total is their sum.
func (s *Service) UpdateAgentServices(ctx context.Context, actor authdomain.Actor, id string, req domain.AgentServicesUpdate) (*domain.Quotation, error) {
	if len(req.Services) == 0 {
		return nil, domain.ErrMissingServices
	}
	return s.mutateAgent(ctx, actor, id, func(q *domain.Quotation) {
		services := make([]pricingdomain.SelectedService, 0, len(req.Services))
		priced := make([]pricingdomain.PricedService, 0, len(req.Services))
		total := 0.0
		for _, svc := range req.Services {
			serviceID := svc.ID
			if serviceID == "" {
				serviceID = svc.Name
			}
			services = append(services, pricingdomain.SelectedService{ID: serviceID, Label: svc.Name})
			priced = append(priced, pricingdomain.PricedService{
				ID:          serviceID,
				Name:        svc.Name,
				BaseAmount:  svc.Price,
				TotalAmount: svc.Price,
				SubServices: []pricingdomain.PricedSubService{},
			})
			total += svc.Price
		}

		q.Headers = datatypes.NewJSONType([]pricingdomain.Header{
			{Header: agentServicesHeader, Services: services},
		})
		q.PricingBreakdown = datatypes.NewJSONType([]pricingdomain.PricedHeader{
			{Header: agentServicesHeader, Services: priced, HeaderTotal: total},
		})
		q.TotalAmount = total
	})
}

// CompleteAgentRegistration finalizes the registration on the acting
// user's authority.
func (s *Service) CompleteAgentRegistration(ctx context.Context, actor authdomain.Actor, id string, req domain.AgentCompletion) (*domain.Quotation, error) {
	return s.mutateAgent(ctx, actor, id, func(q *domain.Quotation) {
		q.TermsAccepted = req.TermsAccepted
		s.finalizeAgent(q, actor)
	})
}

func (s *Service) UpdateAgentPricing(ctx context.Context, actor authdomain.Actor, id string, patch domain.PricingPatch) (*domain.Quotation, error) {
	return s.mutateAgent(ctx, actor, id, func(q *domain.Quotation) {
		applyPricingPatch(q, patch)
		s.finalizeAgent(q, actor)
	})
}

func (s *Service) DeleteAgentRegistration(ctx context.Context, actor authdomain.Actor, id string) error {
	if !actor.CanModerate() {
		return domain.ErrAccessDenied
	}
	q, err := s.findAgent(ctx, s.repo, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, q.ID)
}

// mutateAgent is the agent counterpart of mutate. Agent registrations
// never run the developer approval policy; finalization is explicit.
func (s *Service) mutateAgent(ctx context.Context, actor authdomain.Actor, id string, apply func(q *domain.Quotation)) (*domain.Quotation, error) {
	var updated *domain.Quotation
	err := s.repo.Transaction(ctx, func(ctx context.Context, repo domain.Repository) error {
		q, err := s.findAgentForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if !actor.CanModerate() && q.CreatedBy != actor.Username {
			return domain.ErrAccessDenied
		}
		if q.Status.Terminal() {
			return domain.ErrQuotationFinalized
		}

		apply(q)
		q.UpdatedAt = s.now().UTC()

		if err := repo.Update(ctx, q); err != nil {
			return err
		}
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) finalizeAgent(q *domain.Quotation, actor authdomain.Actor) {
	now := s.now().UTC()
	q.Status = domain.StatusCompleted
	q.ApprovedBy = &actor.Username
	q.ApprovedAt = &now
}

func (s *Service) findAgent(ctx context.Context, repo domain.Repository, id string) (*domain.Quotation, error) {
	q, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return requireAgent(q)
}

func (s *Service) findAgentForUpdate(ctx context.Context, repo domain.Repository, id string) (*domain.Quotation, error) {
	q, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return requireAgent(q)
}

func requireAgent(q *domain.Quotation) (*domain.Quotation, error) {
	if q == nil || pricingdomain.ParseCategory(q.DeveloperType) != pricingdomain.CategoryAgent {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func validateAgentCreate(req domain.AgentCreateRequest) error {
	if strings.TrimSpace(req.AgentName) == "" {
		return domain.ErrMissingDeveloperName
	}
	if strings.TrimSpace(req.AgentType) == "" {
		return domain.ErrMissingAgentType
	}
	if !mobilePattern.MatchString(strings.TrimSpace(req.Mobile)) {
		return domain.ErrInvalidMobile
	}
	if email := strings.TrimSpace(req.Email); email != "" && !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	return nil
}

func newAgentID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "AGENT-" + strings.ToUpper(hex[:8])
}
