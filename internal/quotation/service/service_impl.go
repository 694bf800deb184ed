// Package service implements the quotation lifecycle.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ParthhMahajann/rera-quotation-system/internal/approval"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const (
	defaultValidity        = "7 days"
	defaultPaymentSchedule = "50%"
	defaultListLimit       = 10
	maxListLimit           = 100
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
	now  func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("quotation.service"),
		repo: p.Repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor authdomain.Actor, req domain.CreateRequest) (*domain.Quotation, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	q := &domain.Quotation{
		ID:               newQuotationID(s.now()),
		DeveloperType:    strings.TrimSpace(req.DeveloperType),
		ProjectRegion:    strings.TrimSpace(req.ProjectRegion),
		PlotArea:         *req.PlotArea,
		DeveloperName:    strings.TrimSpace(req.DeveloperName),
		ProjectName:      strings.TrimSpace(req.ProjectName),
		ContactMobile:    strings.TrimSpace(req.ContactMobile),
		ContactEmail:     strings.TrimSpace(req.ContactEmail),
		Validity:         orDefault(req.Validity, defaultValidity),
		PaymentSchedule:  orDefault(req.PaymentSchedule, defaultPaymentSchedule),
		RERANumber:       strings.TrimSpace(req.RERANumber),
		ServiceSummary:   strings.TrimSpace(req.ServiceSummary),
		ApplicableTerms:  datatypes.JSONSlice[string]{},
		CustomTerms:      datatypes.JSONSlice[string]{},
		Status:           domain.StatusDraft,
		RequiresApproval: false,
		CreatedBy:        actor.Username,
		CreatedAt:        s.now().UTC(),
		UpdatedAt:        s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quotation created",
		zap.String("quotation_id", q.ID),
		zap.String("developer_type", q.DeveloperType),
		zap.String("created_by", q.CreatedBy),
	)
	return q, nil
}

func (s *Service) List(ctx context.Context, actor authdomain.Actor, req domain.ListRequest) (*domain.ListResult, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := domain.ListFilter{
		Search: req.Search,
		Status: req.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if !actor.CanModerate() {
		filter.CreatedBy = actor.Username
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Get(ctx context.Context, actor authdomain.Actor, id string) (*domain.Quotation, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanModerate() && q.CreatedBy != actor.Username {
		return nil, domain.ErrAccessDenied
	}
	return q, nil
}

func (s *Service) Update(ctx context.Context, actor authdomain.Actor, id string, req domain.UpdateRequest) (*domain.Quotation, error) {
	return s.mutate(ctx, actor, id, func(q *domain.Quotation) error {
		if req.Headers != nil {
			q.Headers = datatypes.NewJSONType(*req.Headers)
		}
		if req.ServiceSummary != nil {
			q.ServiceSummary = strings.TrimSpace(*req.ServiceSummary)
		}
		return nil
	})
}

func (s *Service) UpdatePricing(ctx context.Context, actor authdomain.Actor, id string, patch domain.PricingPatch) (*domain.Quotation, error) {
	return s.mutate(ctx, actor, id, func(q *domain.Quotation) error {
		applyPricingPatch(q, patch)
		return nil
	})
}

func (s *Service) UpdateTerms(ctx context.Context, actor authdomain.Actor, id string, terms domain.TermsUpdate) (*domain.Quotation, error) {
	return s.mutate(ctx, actor, id, func(q *domain.Quotation) error {
		q.TermsAccepted = terms.TermsAccepted
		q.ApplicableTerms = datatypes.JSONSlice[string](trimTerms(terms.ApplicableTerms))
		q.CustomTerms = datatypes.JSONSlice[string](trimTerms(terms.CustomTerms))
		return nil
	})
}

// Decide applies an explicit moderator verdict to a pending quotation.
// Rejection needs only the role; approval also needs discount authority.
func (s *Service) Decide(ctx context.Context, actor authdomain.Actor, id string, req domain.DecisionRequest) (*domain.Quotation, error) {
	var decided *domain.Quotation
	err := s.repo.Transaction(ctx, func(ctx context.Context, repo domain.Repository) error {
		q, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Status != domain.StatusPendingApproval {
			return domain.ErrNotPendingApproval
		}

		if strings.EqualFold(strings.TrimSpace(req.Action), "reject") {
			if err := approval.CanReject(actor); err != nil {
				return err
			}
			q.Status = domain.StatusRejected
			q.RequiresApproval = false
			q.ApprovedBy = nil
			q.ApprovedAt = nil
		} else {
			if err := approval.CanApprove(actor, q); err != nil {
				return err
			}
			now := s.now().UTC()
			q.Status = domain.StatusApproved
			q.RequiresApproval = false
			q.ApprovedBy = &actor.Username
			q.ApprovedAt = &now
		}
		q.UpdatedAt = s.now().UTC()

		if err := repo.Update(ctx, q); err != nil {
			return err
		}
		decided = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("quotation decided",
		zap.String("quotation_id", decided.ID),
		zap.String("status", string(decided.Status)),
		zap.String("decided_by", actor.Username),
	)
	return decided, nil
}

func (s *Service) Delete(ctx context.Context, actor authdomain.Actor, id string) error {
	if !actor.CanModerate() {
		return domain.ErrAccessDenied
	}
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if q == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// mutate loads a quotation under lock, applies the edit, re-runs the
// approval policy over the result and persists it. Terminal quotations
// refuse every edit.
func (s *Service) mutate(ctx context.Context, actor authdomain.Actor, id string, apply func(q *domain.Quotation) error) (*domain.Quotation, error) {
	var updated *domain.Quotation
	err := s.repo.Transaction(ctx, func(ctx context.Context, repo domain.Repository) error {
		q, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if !actor.CanModerate() && q.CreatedBy != actor.Username {
			return domain.ErrAccessDenied
		}
		if q.Status.Terminal() {
			return domain.ErrQuotationFinalized
		}
		if err := apply(q); err != nil {
			return err
		}

		s.applyPolicy(q, actor)
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

// applyPolicy resolves the quotation's status from its current content.
// A firing trigger escalates and clears any earlier approver stamp; a
// clean evaluation finalizes on the actor's own authority.
func (s *Service) applyPolicy(q *domain.Quotation, actor authdomain.Actor) {
	verdict := approval.Evaluate(q, actor)
	if verdict.RequiresApproval {
		q.Status = domain.StatusPendingApproval
		q.RequiresApproval = true
		q.ApprovedBy = nil
		q.ApprovedAt = nil
		s.log.Info("quotation escalated",
			zap.String("quotation_id", q.ID),
			zap.Any("triggers", verdict.Triggers),
			zap.String("actor", actor.Username),
		)
		return
	}
	now := s.now().UTC()
	q.Status = domain.StatusCompleted
	q.RequiresApproval = false
	q.ApprovedBy = &actor.Username
	q.ApprovedAt = &now
}

func applyPricingPatch(q *domain.Quotation, patch domain.PricingPatch) {
	if patch.PricingBreakdown != nil {
		q.PricingBreakdown = datatypes.NewJSONType(*patch.PricingBreakdown)
	}
	if patch.TotalAmount != nil {
		q.TotalAmount = *patch.TotalAmount
	}
	if patch.DiscountAmount != nil {
		q.DiscountAmount = *patch.DiscountAmount
	}
	if patch.DiscountPercent != nil {
		q.DiscountPercent = *patch.DiscountPercent
	}
}

func validateCreate(req domain.CreateRequest) error {
	if strings.TrimSpace(req.DeveloperType) == "" {
		return domain.ErrMissingDeveloperType
	}
	if strings.TrimSpace(req.ProjectRegion) == "" {
		return domain.ErrMissingProjectRegion
	}
	if req.PlotArea == nil {
		return domain.ErrMissingPlotArea
	}
	if *req.PlotArea < 0 {
		return domain.ErrInvalidPlotArea
	}
	if strings.TrimSpace(req.DeveloperName) == "" {
		return domain.ErrMissingDeveloperName
	}

	mobile := strings.TrimSpace(req.ContactMobile)
	isAgent := pricingdomain.ParseCategory(req.DeveloperType) == pricingdomain.CategoryAgent
	if isAgent && !mobilePattern.MatchString(mobile) {
		return domain.ErrInvalidMobile
	}
	if !isAgent && mobile != "" && !mobilePattern.MatchString(mobile) {
		return domain.ErrInvalidMobile
	}

	if email := strings.TrimSpace(req.ContactEmail); email != "" && !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	return nil
}

func trimTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, term := range in {
		if t := strings.TrimSpace(term); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return page, limit
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func newQuotationID(now time.Time) string {
	return fmt.Sprintf("QUO-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
