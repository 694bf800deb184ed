// Package approval decides whether an edited quotation may finalize
// automatically or must escalate to a higher-privileged approver.
package approval

import (
	"strings"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
)

// Trigger names one escalation condition that fired.
type Trigger string

const (
	// TriggerPackageHeader: discretionary package offerings always need
	// sign-off regardless of discount.
	TriggerPackageHeader Trigger = "package_header"
	// TriggerCustomizedHeader: negotiated service groupings likewise.
	TriggerCustomizedHeader Trigger = "customized_header"
	// TriggerDiscountAboveThreshold: the effective discount exceeds the
	// acting user's delegated authority.
	TriggerDiscountAboveThreshold Trigger = "discount_above_threshold"
	// TriggerCustomTerms: bespoke legal terms need human review.
	TriggerCustomTerms Trigger = "custom_terms"
)

// Verdict is the outcome of a policy evaluation.
type Verdict struct {
	RequiresApproval bool
	Triggers         []Trigger
}

// Evaluate runs every escalation predicate over the quotation and the
// acting user. Any firing trigger forces approval; with none the caller
// may auto-finalize on the actor's authority.
func Evaluate(q *quotationdomain.Quotation, actor authdomain.Actor) Verdict {
	var triggers []Trigger

	for _, header := range q.Headers.Data() {
		if len(header.Services) == 0 {
			continue
		}
		name := strings.ToLower(header.Header)
		if strings.Contains(name, "package") {
			triggers = append(triggers, TriggerPackageHeader)
		}
		if strings.Contains(name, "customized header") {
			triggers = append(triggers, TriggerCustomizedHeader)
		}
	}

	if q.EffectiveDiscountPercent() > actor.DiscountLimit() {
		triggers = append(triggers, TriggerDiscountAboveThreshold)
	}

	if len(q.CustomTerms) > 0 {
		triggers = append(triggers, TriggerCustomTerms)
	}

	return Verdict{
		RequiresApproval: len(triggers) > 0,
		Triggers:         triggers,
	}
}
