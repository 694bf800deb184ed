package approval

import (
	"testing"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func quotationWithHeaders(headers ...pricingdomain.Header) *quotationdomain.Quotation {
	return &quotationdomain.Quotation{
		Headers: datatypes.NewJSONType(headers),
	}
}

func manager(threshold float64) authdomain.Actor {
	return authdomain.Actor{Username: "meera", Role: authdomain.RoleManager, Threshold: threshold}
}

func TestPackageHeaderTriggers(t *testing.T) {
	q := quotationWithHeaders(pricingdomain.Header{
		Header:   "Premium Package",
		Services: []pricingdomain.SelectedService{{ID: "s1", Label: "Project Registration"}},
	})

	verdict := Evaluate(q, manager(50))
	assert.True(t, verdict.RequiresApproval)
	assert.Contains(t, verdict.Triggers, TriggerPackageHeader)
}

func TestEmptyPackageHeaderDoesNotTrigger(t *testing.T) {
	q := quotationWithHeaders(pricingdomain.Header{Header: "Premium Package"})

	verdict := Evaluate(q, manager(50))
	assert.False(t, verdict.RequiresApproval)
}

func TestCustomizedHeaderTriggersCaseInsensitive(t *testing.T) {
	q := quotationWithHeaders(pricingdomain.Header{
		Header:   "CUSTOMIZED HEADER - Legal",
		Services: []pricingdomain.SelectedService{{ID: "s1", Label: "Legal Vetting"}},
	})

	verdict := Evaluate(q, manager(50))
	assert.True(t, verdict.RequiresApproval)
	assert.Contains(t, verdict.Triggers, TriggerCustomizedHeader)
}

func TestDiscountThresholdTrigger(t *testing.T) {
	q := &quotationdomain.Quotation{TotalAmount: 75000, DiscountPercent: 25}

	verdict := Evaluate(q, manager(20))
	assert.True(t, verdict.RequiresApproval)
	assert.Contains(t, verdict.Triggers, TriggerDiscountAboveThreshold)

	verdict = Evaluate(q, manager(30))
	assert.False(t, verdict.RequiresApproval)
}

func TestAdminDiscountLimitIsUnbounded(t *testing.T) {
	q := &quotationdomain.Quotation{TotalAmount: 75000, DiscountPercent: 90}
	admin := authdomain.Actor{Username: "root", Role: authdomain.RoleAdmin}

	verdict := Evaluate(q, admin)
	assert.False(t, verdict.RequiresApproval)
}

func TestCustomTermsTrigger(t *testing.T) {
	q := &quotationdomain.Quotation{
		CustomTerms: []string{"payment due within 15 days"},
	}

	verdict := Evaluate(q, manager(50))
	assert.True(t, verdict.RequiresApproval)
	assert.Contains(t, verdict.Triggers, TriggerCustomTerms)
}

func TestDerivedDiscountFeedsThresholdTrigger(t *testing.T) {
	// 20000 off an 80000 total is 20% of the reconstructed base.
	q := &quotationdomain.Quotation{TotalAmount: 80000, DiscountAmount: 20000}

	verdict := Evaluate(q, manager(15))
	assert.True(t, verdict.RequiresApproval)

	verdict = Evaluate(q, manager(25))
	assert.False(t, verdict.RequiresApproval)
}
