// Package domain contains the pricing engine types.
package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// Category selects the catalog partition and pricing mode.
type Category string

const (
	CategoryOne   Category = "Category 1"
	CategoryTwo   Category = "Category 2"
	CategoryThree Category = "Category 3"
	CategoryAgent Category = "Agent"
)

// ParseCategory maps external category spellings ("cat1", "category 1",
// "agent", ...) onto the canonical form. Unknown values pass through
// unchanged: they simply never match the catalog and price on fallback.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "")) {
	case "cat1", "category1":
		return CategoryOne
	case "cat2", "category2":
		return CategoryTwo
	case "cat3", "category3":
		return CategoryThree
	case "agent":
		return CategoryAgent
	default:
		return Category(strings.TrimSpace(raw))
	}
}

// Plot-area bands used as catalog lookup keys. Upper bounds are inclusive.
const (
	BandUpTo500  = "0-500"
	BandUpTo2000 = "500-2000"
	BandUpTo4000 = "2000-4000"
	BandUpTo6500 = "4000-6500"
	BandAbove    = "6500+"
)

// Band buckets a plot area into its catalog band. Banding is independent
// of category.
func Band(plotArea float64) string {
	switch {
	case plotArea <= 500:
		return BandUpTo500
	case plotArea <= 2000:
		return BandUpTo2000
	case plotArea <= 4000:
		return BandUpTo4000
	case plotArea <= 6500:
		return BandUpTo6500
	default:
		return BandAbove
	}
}

// Agent-category pricing is a flat fee, the catalog is bypassed entirely.
const (
	AgentRegistrationFee = 25000
	AgentPerServiceFee   = 5000
)

// FallbackBaseAmount prices any service absent from the catalog. Pricing
// never fails on a catalog miss.
const FallbackBaseAmount = 50000

// SubServiceSurcharge is the per-sub-service multiplier increment: each
// sub-service adds a flat 10% of the base amount.
const SubServiceSurcharge = 0.1

// SubService is one included line under a selected service. The original
// clients send either bare strings or objects with a "text" or "name" key,
// so it unmarshals from both.
type SubService struct {
	Name string `json:"name"`
}

func (s *SubService) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		s.Name = asString
		return nil
	}
	var asObject struct {
		Text string `json:"text"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	if asObject.Text != "" {
		s.Name = asObject.Text
	} else {
		s.Name = asObject.Name
	}
	return nil
}

// SelectedService is one selected service under a header.
type SelectedService struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	SubServices []SubService `json:"subServices"`
}

// Header groups selected services. Ordering is significant and preserved
// through the whole calculation.
type Header struct {
	Header   string    `json:"header"`
	Services []SelectedService `json:"services"`
}

// Request is the input of a pricing calculation.
type Request struct {
	Category  string   `json:"developerType"`
	Region    string   `json:"projectRegion"`
	PlotArea  *float64 `json:"plotArea"`
	Selection []Header `json:"headers"`
}

// PricedSubService mirrors an input sub-service in the breakdown output.
type PricedSubService struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// PricedService is one priced line of the breakdown.
type PricedService struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	BaseAmount  float64            `json:"baseAmount"`
	TotalAmount float64            `json:"totalAmount"`
	SubServices []PricedSubService `json:"subServices"`
}

// PricedHeader mirrors one input header with its per-line totals.
type PricedHeader struct {
	Header      string          `json:"header"`
	Services    []PricedService `json:"services"`
	HeaderTotal float64         `json:"headerTotal"`
}

// Summary aggregates the whole breakdown.
type Summary struct {
	Subtotal      float64 `json:"subtotal"`
	TotalServices int     `json:"totalServices"`
}

// Result is the output of a pricing calculation. It is not persisted by
// the calculator; callers commit it separately.
type Result struct {
	Breakdown []PricedHeader `json:"breakdown"`
	Summary   Summary        `json:"summary"`
}

var (
	ErrMissingCategory = errors.New("missing_developer_type")
	ErrMissingRegion   = errors.New("missing_project_region")
	ErrMissingPlotArea = errors.New("missing_plot_area")
	ErrInvalidPlotArea = errors.New("invalid_plot_area")
)
