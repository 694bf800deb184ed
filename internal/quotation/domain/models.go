// Package domain contains core types for the quotation service.
package domain

import (
	"time"

	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"gorm.io/datatypes"
)

// Status is the lifecycle state of a quotation.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusCompleted       Status = "completed"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Terminal reports whether the status admits no further edits. Completed
// quotations stay editable: any later edit re-runs the approval policy.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Quotation is the persisted quotation record.
type Quotation struct {
	ID              string  `gorm:"primaryKey;type:text"`
	DeveloperType   string  `gorm:"type:text;not null"`
	ProjectRegion   string  `gorm:"type:text;not null"`
	PlotArea        float64 `gorm:"not null;default:0"`
	DeveloperName   string  `gorm:"type:text;not null;index"`
	ProjectName     string  `gorm:"type:text;index"`
	ContactMobile   string  `gorm:"type:text"`
	ContactEmail    string  `gorm:"type:text"`
	Validity        string  `gorm:"type:text;default:'7 days'"`
	PaymentSchedule string  `gorm:"type:text;default:'50%'"`
	RERANumber      string  `gorm:"column:rera_number;type:text"`

	Headers          datatypes.JSONType[[]pricingdomain.Header]       `gorm:"column:headers"`
	PricingBreakdown datatypes.JSONType[[]pricingdomain.PricedHeader] `gorm:"column:pricing_breakdown"`

	TotalAmount     float64 `gorm:"not null;default:0"`
	DiscountAmount  float64 `gorm:"not null;default:0"`
	DiscountPercent float64 `gorm:"not null;default:0"`

	ServiceSummary  string                      `gorm:"type:text"`
	TermsAccepted   bool                        `gorm:"not null;default:false"`
	ApplicableTerms datatypes.JSONSlice[string] `gorm:"column:applicable_terms"`
	CustomTerms     datatypes.JSONSlice[string] `gorm:"column:custom_terms"`

	Status           Status     `gorm:"type:text;not null;default:'draft';index"`
	RequiresApproval bool       `gorm:"not null;default:false"`
	ApprovedBy       *string    `gorm:"type:text"`
	ApprovedAt       *time.Time `gorm:""`

	CreatedBy string    `gorm:"type:text;index"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Quotation) TableName() string { return "quotations" }

// EffectiveDiscountPercent derives the single reconciled discount used for
// every policy decision.
func (q *Quotation) EffectiveDiscountPercent() float64 {
	return EffectiveDiscountPercent(q.TotalAmount, q.DiscountAmount, q.DiscountPercent)
}

// ToResponse builds the client projection, deriving the plot-area band
// and the reconciled discount.
func (q *Quotation) ToResponse() Response {
	return Response{
		ID:                       q.ID,
		DeveloperType:            q.DeveloperType,
		ProjectRegion:            q.ProjectRegion,
		PlotArea:                 q.PlotArea,
		PlotAreaBand:             pricingdomain.Band(q.PlotArea),
		DeveloperName:            q.DeveloperName,
		ProjectName:              q.ProjectName,
		ContactMobile:            q.ContactMobile,
		ContactEmail:             q.ContactEmail,
		Validity:                 q.Validity,
		PaymentSchedule:          q.PaymentSchedule,
		RERANumber:               q.RERANumber,
		Headers:                  q.Headers.Data(),
		PricingBreakdown:         q.PricingBreakdown.Data(),
		TotalAmount:              q.TotalAmount,
		DiscountAmount:           q.DiscountAmount,
		DiscountPercent:          q.DiscountPercent,
		EffectiveDiscountPercent: q.EffectiveDiscountPercent(),
		ServiceSummary:           q.ServiceSummary,
		TermsAccepted:            q.TermsAccepted,
		ApplicableTerms:          q.ApplicableTerms,
		CustomTerms:              q.CustomTerms,
		Status:                   q.Status,
		RequiresApproval:         q.RequiresApproval,
		ApprovedBy:               q.ApprovedBy,
		ApprovedAt:               q.ApprovedAt,
		CreatedBy:                q.CreatedBy,
		CreatedAt:                q.CreatedAt,
	}
}

// Response is the full client projection of a quotation.
type Response struct {
	ID                       string                       `json:"id"`
	DeveloperType            string                       `json:"developerType"`
	ProjectRegion            string                       `json:"projectRegion"`
	PlotArea                 float64                      `json:"plotArea"`
	PlotAreaBand             string                       `json:"plotAreaBand"`
	DeveloperName            string                       `json:"developerName"`
	ProjectName              string                       `json:"projectName,omitempty"`
	ContactMobile            string                       `json:"contactMobile,omitempty"`
	ContactEmail             string                       `json:"contactEmail,omitempty"`
	Validity                 string                       `json:"validity"`
	PaymentSchedule          string                       `json:"paymentSchedule"`
	RERANumber               string                       `json:"reraNumber,omitempty"`
	Headers                  []pricingdomain.Header       `json:"headers"`
	PricingBreakdown         []pricingdomain.PricedHeader `json:"pricingBreakdown"`
	TotalAmount              float64                      `json:"totalAmount"`
	DiscountAmount           float64                      `json:"discountAmount"`
	DiscountPercent          float64                      `json:"discountPercent"`
	EffectiveDiscountPercent float64                      `json:"effectiveDiscountPercent"`
	ServiceSummary           string                       `json:"serviceSummary,omitempty"`
	TermsAccepted            bool                         `json:"termsAccepted"`
	ApplicableTerms          []string                     `json:"applicableTerms"`
	CustomTerms              []string                     `json:"customTerms"`
	Status                   Status                       `json:"status"`
	RequiresApproval         bool                         `json:"requiresApproval"`
	ApprovedBy               *string                      `json:"approvedBy,omitempty"`
	ApprovedAt               *time.Time                   `json:"approvedAt,omitempty"`
	CreatedBy                string                       `json:"createdBy"`
	CreatedAt                time.Time                    `json:"createdAt"`
}
