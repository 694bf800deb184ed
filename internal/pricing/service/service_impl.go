package service

import (
	"context"

	"github.com/ParthhMahajann/rera-quotation-system/internal/catalog"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog *catalog.Holder
}

type Service struct {
	log     *zap.Logger
	catalog *catalog.Holder
}

func New(p Params) pricingdomain.Service {
	return &Service{
		log:     p.Log.Named("pricing.service"),
		catalog: p.Catalog,
	}
}

func (s *Service) Calculate(ctx context.Context, req pricingdomain.Request) (*pricingdomain.Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	category := pricingdomain.ParseCategory(req.Category)
	if category == pricingdomain.CategoryAgent {
		return agentResult(req.Selection), nil
	}

	band := pricingdomain.Band(*req.PlotArea)
	snapshot := s.catalog.Snapshot()

	breakdown := make([]pricingdomain.PricedHeader, 0, len(req.Selection))
	subtotal := decimal.Zero
	totalServices := 0

	for _, header := range req.Selection {
		services := make([]pricingdomain.PricedService, 0, len(header.Services))
		headerTotal := decimal.Zero

		for _, svc := range header.Services {
			base, ok := snapshot.Lookup(string(category), req.Region, band, svc.Label)
			if !ok {
				base = pricingdomain.FallbackBaseAmount
			}

			// Each sub-service adds a flat 10% of the base amount.
			multiplier := decimal.NewFromInt(1).
				Add(decimal.New(int64(len(svc.SubServices)), -1))
			lineTotal := decimal.NewFromFloat(base).Mul(multiplier).Round(2)

			services = append(services, pricingdomain.PricedService{
				ID:          svc.ID,
				Name:        svc.Label,
				BaseAmount:  base,
				TotalAmount: lineTotal.InexactFloat64(),
				SubServices: echoSubServices(svc.SubServices),
			})

			headerTotal = headerTotal.Add(lineTotal)
			totalServices++
		}

		// Rounded per line, then per header, then once more for the
		// subtotal, so the persisted breakdown matches exactly.
		headerTotal = headerTotal.Round(2)
		breakdown = append(breakdown, pricingdomain.PricedHeader{
			Header:      header.Header,
			Services:    services,
			HeaderTotal: headerTotal.InexactFloat64(),
		})
		subtotal = subtotal.Add(headerTotal)
	}

	return &pricingdomain.Result{
		Breakdown: breakdown,
		Summary: pricingdomain.Summary{
			Subtotal:      subtotal.Round(2).InexactFloat64(),
			TotalServices: totalServices,
		},
	}, nil
}

// agentResult prices agent registrations on the flat-fee schedule: a fixed
// registration fee plus a fixed per-service fee, catalog bypassed.
// Sub-services are enumerated but contribute nothing to price.
func agentResult(selection []pricingdomain.Header) *pricingdomain.Result {
	breakdown := make([]pricingdomain.PricedHeader, 0, len(selection))
	totalServices := 0

	for _, header := range selection {
		services := make([]pricingdomain.PricedService, 0, len(header.Services))
		for _, svc := range header.Services {
			services = append(services, pricingdomain.PricedService{
				ID:          svc.ID,
				Name:        svc.Label,
				BaseAmount:  pricingdomain.AgentPerServiceFee,
				TotalAmount: pricingdomain.AgentPerServiceFee,
				SubServices: echoSubServices(svc.SubServices),
			})
			totalServices++
		}
		breakdown = append(breakdown, pricingdomain.PricedHeader{
			Header:      header.Header,
			Services:    services,
			HeaderTotal: float64(len(services) * pricingdomain.AgentPerServiceFee),
		})
	}

	return &pricingdomain.Result{
		Breakdown: breakdown,
		Summary: pricingdomain.Summary{
			Subtotal:      float64(pricingdomain.AgentRegistrationFee + totalServices*pricingdomain.AgentPerServiceFee),
			TotalServices: totalServices,
		},
	}
}

func echoSubServices(in []pricingdomain.SubService) []pricingdomain.PricedSubService {
	out := make([]pricingdomain.PricedSubService, 0, len(in))
	for _, sub := range in {
		out = append(out, pricingdomain.PricedSubService{
			Name:     sub.Name,
			Included: true,
		})
	}
	return out
}

func validate(req pricingdomain.Request) error {
	if req.Category == "" {
		return pricingdomain.ErrMissingCategory
	}
	if req.Region == "" {
		return pricingdomain.ErrMissingRegion
	}
	if req.PlotArea == nil {
		return pricingdomain.ErrMissingPlotArea
	}
	if *req.PlotArea < 0 {
		return pricingdomain.ErrInvalidPlotArea
	}
	return nil
}
