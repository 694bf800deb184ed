package service

import (
	"context"
	"strings"
	"testing"

	"github.com/ParthhMahajann/rera-quotation-system/internal/approval"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/quotation/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Quotation{}))
	return New(Params{
		Log:  zap.NewNop(),
		Repo: repository.Provide(db),
	})
}

func user(name string) authdomain.Actor {
	return authdomain.Actor{Username: name, Role: authdomain.RoleUser}
}

func managerActor(threshold float64) authdomain.Actor {
	return authdomain.Actor{Username: "meera", Role: authdomain.RoleManager, Threshold: threshold}
}

func adminActor() authdomain.Actor {
	return authdomain.Actor{Username: "root", Role: authdomain.RoleAdmin}
}

func plotArea(v float64) *float64 { return &v }

func createDraft(t *testing.T, svc domain.Service, actor authdomain.Actor) *domain.Quotation {
	t.Helper()
	q, err := svc.Create(context.Background(), actor, domain.CreateRequest{
		DeveloperType: "cat1",
		ProjectRegion: "Mumbai City",
		PlotArea:      plotArea(1200),
		DeveloperName: "Skyline Builders",
		ProjectName:   "Skyline Heights",
	})
	require.NoError(t, err)
	return q
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	svc := newTestService(t)
	q := createDraft(t, svc, user("dev"))

	assert.True(t, strings.HasPrefix(q.ID, "QUO-"))
	assert.Equal(t, domain.StatusDraft, q.Status)
	assert.Equal(t, "7 days", q.Validity)
	assert.Equal(t, "50%", q.PaymentSchedule)
	assert.Equal(t, "dev", q.CreatedBy)
	assert.False(t, q.RequiresApproval)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, user("dev"), domain.CreateRequest{
		ProjectRegion: "Pune", PlotArea: plotArea(100), DeveloperName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrMissingDeveloperType)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "cat1", PlotArea: plotArea(100), DeveloperName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrMissingProjectRegion)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "cat1", ProjectRegion: "Pune", DeveloperName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrMissingPlotArea)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "cat1", ProjectRegion: "Pune", PlotArea: plotArea(-5), DeveloperName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPlotArea)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "cat1", ProjectRegion: "Pune", PlotArea: plotArea(100),
	})
	assert.ErrorIs(t, err, domain.ErrMissingDeveloperName)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "agent", ProjectRegion: "Pune", PlotArea: plotArea(0), DeveloperName: "A",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMobile)

	_, err = svc.Create(ctx, user("dev"), domain.CreateRequest{
		DeveloperType: "cat1", ProjectRegion: "Pune", PlotArea: plotArea(100),
		DeveloperName: "X", ContactEmail: "not-an-email",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestPlainEditAutoCompletes(t *testing.T) {
	svc := newTestService(t)
	actor := user("dev")
	q := createDraft(t, svc, actor)

	headers := []pricingdomain.Header{{
		Header:   "Project Registration",
		Services: []pricingdomain.SelectedService{{ID: "reg", Label: "Project Registration"}},
	}}
	updated, err := svc.Update(context.Background(), actor, q.ID, domain.UpdateRequest{Headers: &headers})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.False(t, updated.RequiresApproval)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, "dev", *updated.ApprovedBy)
	assert.NotNil(t, updated.ApprovedAt)
}

func TestDiscountAboveThresholdEscalates(t *testing.T) {
	svc := newTestService(t)
	actor := user("dev")
	q := createDraft(t, svc, actor)

	total, percent := 100000.0, 10.0
	updated, err := svc.UpdatePricing(context.Background(), actor, q.ID, domain.PricingPatch{
		TotalAmount:     &total,
		DiscountPercent: &percent,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingApproval, updated.Status)
	assert.True(t, updated.RequiresApproval)
	assert.Nil(t, updated.ApprovedBy)
	assert.Nil(t, updated.ApprovedAt)
}

func TestPackageHeaderEscalatesWithoutDiscount(t *testing.T) {
	svc := newTestService(t)
	actor := managerActor(50)
	q := createDraft(t, svc, actor)

	headers := []pricingdomain.Header{{
		Header:   "Premium Package",
		Services: []pricingdomain.SelectedService{{ID: "pkg", Label: "Bundle"}},
	}}
	updated, err := svc.Update(context.Background(), actor, q.ID, domain.UpdateRequest{Headers: &headers})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, updated.Status)
}

func TestCustomTermsEscalateAndWhitespaceIsDropped(t *testing.T) {
	svc := newTestService(t)
	actor := user("dev")
	ctx := context.Background()

	q := createDraft(t, svc, actor)
	updated, err := svc.UpdateTerms(ctx, actor, q.ID, domain.TermsUpdate{
		TermsAccepted: true,
		CustomTerms:   []string{"  ", "\t", "payment due in 15 days "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"payment due in 15 days"}, []string(updated.CustomTerms))
	assert.Equal(t, domain.StatusPendingApproval, updated.Status)

	q2 := createDraft(t, svc, actor)
	updated, err = svc.UpdateTerms(ctx, actor, q2.ID, domain.TermsUpdate{
		TermsAccepted: true,
		CustomTerms:   []string{"   ", ""},
	})
	require.NoError(t, err)
	assert.Empty(t, []string(updated.CustomTerms))
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func escalate(t *testing.T, svc domain.Service, actor authdomain.Actor, percent float64) *domain.Quotation {
	t.Helper()
	q := createDraft(t, svc, actor)
	total := 100000.0
	updated, err := svc.UpdatePricing(context.Background(), actor, q.ID, domain.PricingPatch{
		TotalAmount:     &total,
		DiscountPercent: &percent,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingApproval, updated.Status)
	return updated
}

func TestDecideApprove(t *testing.T) {
	svc := newTestService(t)
	q := escalate(t, svc, user("dev"), 10)

	decided, err := svc.Decide(context.Background(), managerActor(25), q.ID, domain.DecisionRequest{Action: "approve"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, decided.Status)
	assert.False(t, decided.RequiresApproval)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, "meera", *decided.ApprovedBy)
}

func TestDecideDefaultsToApprove(t *testing.T) {
	svc := newTestService(t)
	q := escalate(t, svc, user("dev"), 10)

	decided, err := svc.Decide(context.Background(), adminActor(), q.ID, domain.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)
}

func TestDecideManagerOverLimit(t *testing.T) {
	svc := newTestService(t)
	q := escalate(t, svc, user("dev"), 30)

	_, err := svc.Decide(context.Background(), managerActor(20), q.ID, domain.DecisionRequest{Action: "approve"})
	var limitErr *approval.LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 20.0, limitErr.Limit)

	got, err := svc.Get(context.Background(), adminActor(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, got.Status)
}

func TestDecideReject(t *testing.T) {
	svc := newTestService(t)
	q := escalate(t, svc, user("dev"), 30)

	decided, err := svc.Decide(context.Background(), managerActor(0), q.ID, domain.DecisionRequest{Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, decided.Status)
	assert.False(t, decided.RequiresApproval)
	assert.Nil(t, decided.ApprovedBy)
}

func TestDecideByUserDenied(t *testing.T) {
	svc := newTestService(t)
	q := escalate(t, svc, user("dev"), 10)

	_, err := svc.Decide(context.Background(), user("dev"), q.ID, domain.DecisionRequest{Action: "approve"})
	assert.ErrorIs(t, err, approval.ErrApprovalRole)
}

func TestDecideRequiresPendingStatus(t *testing.T) {
	svc := newTestService(t)
	q := createDraft(t, svc, user("dev"))

	_, err := svc.Decide(context.Background(), adminActor(), q.ID, domain.DecisionRequest{Action: "approve"})
	assert.ErrorIs(t, err, domain.ErrNotPendingApproval)
}

func TestTerminalQuotationRefusesEdits(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := escalate(t, svc, user("dev"), 10)

	_, err := svc.Decide(ctx, adminActor(), q.ID, domain.DecisionRequest{Action: "approve"})
	require.NoError(t, err)

	summary := "late edit"
	_, err = svc.Update(ctx, user("dev"), q.ID, domain.UpdateRequest{ServiceSummary: &summary})
	assert.ErrorIs(t, err, domain.ErrQuotationFinalized)

	total := 1.0
	_, err = svc.UpdatePricing(ctx, user("dev"), q.ID, domain.PricingPatch{TotalAmount: &total})
	assert.ErrorIs(t, err, domain.ErrQuotationFinalized)
}

func TestCompletedStaysEditable(t *testing.T) {
	svc := newTestService(t)
	actor := user("dev")
	ctx := context.Background()

	q := createDraft(t, svc, actor)
	summary := "standard registration"
	updated, err := svc.Update(ctx, actor, q.ID, domain.UpdateRequest{ServiceSummary: &summary})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, updated.Status)

	updated, err = svc.UpdateTerms(ctx, actor, q.ID, domain.TermsUpdate{
		CustomTerms: []string{"bespoke clause"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, updated.Status)
	assert.Nil(t, updated.ApprovedBy)
}

func TestGetScopesNonModerators(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := createDraft(t, svc, user("dev"))

	_, err := svc.Get(ctx, user("other"), q.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	got, err := svc.Get(ctx, managerActor(0), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	_, err = svc.Get(ctx, adminActor(), "QUO-00000000-MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListScopesAndPages(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createDraft(t, svc, user("dev"))
	createDraft(t, svc, user("dev"))
	createDraft(t, svc, user("other"))

	res, err := svc.List(ctx, user("dev"), domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(ctx, adminActor(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)

	res, err = svc.List(ctx, adminActor(), domain.ListRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Pages())
}

func TestListSearchMatchesNameAndID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := createDraft(t, svc, user("dev"))

	res, err := svc.List(ctx, adminActor(), domain.ListRequest{Search: "skyline"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	res, err = svc.List(ctx, adminActor(), domain.ListRequest{Search: strings.ToLower(q.ID[:12])})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestDeleteIsModeratorOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := createDraft(t, svc, user("dev"))

	err := svc.Delete(ctx, user("dev"), q.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, adminActor(), q.ID))

	_, err = svc.Get(ctx, adminActor(), q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
