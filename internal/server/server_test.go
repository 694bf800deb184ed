package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	authrepository "github.com/ParthhMahajann/rera-quotation-system/internal/auth/repository"
	authservice "github.com/ParthhMahajann/rera-quotation-system/internal/auth/service"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/session"
	"github.com/ParthhMahajann/rera-quotation-system/internal/authorization"
	"github.com/ParthhMahajann/rera-quotation-system/internal/catalog"
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	obsmetrics "github.com/ParthhMahajann/rera-quotation-system/internal/observability/metrics"
	pricingservice "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/service"
	"github.com/ParthhMahajann/rera-quotation-system/internal/providers/pdf"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	quotationrepository "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/repository"
	quotationservice "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/service"
)

var (
	metricsOnce sync.Once
	httpMetrics *obsmetrics.HTTPMetrics
)

func sharedMetrics() *obsmetrics.HTTPMetrics {
	metricsOnce.Do(func() {
		httpMetrics = obsmetrics.NewHTTPMetrics()
	})
	return httpMetrics
}

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&quotationdomain.Quotation{},
	))

	log := zap.NewNop()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{HTTPAddr: ":0"}

	authSvc := authservice.New(authservice.Params{
		Log:   log,
		GenID: node,
		Repo:  authrepository.Provide(db),
	})

	enforcer, err := authorization.NewEnforcer(db)
	require.NoError(t, err)
	authzSvc := authorization.NewService(authorization.Params{Log: log, Enforcer: enforcer})

	pricingSvc := pricingservice.New(pricingservice.Params{
		Log:     log,
		Catalog: catalog.NewStaticHolder(catalog.Catalog{}),
	})

	quotationSvc := quotationservice.New(quotationservice.Params{
		Log:  log,
		Repo: quotationrepository.Provide(db),
	})

	engine := NewEngine(sharedMetrics())
	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		Log:          log,
		Authsvc:      authSvc,
		Sessions:     session.NewManager(cfg),
		AuthzSvc:     authzSvc,
		PricingSvc:   pricingSvc,
		QuotationSvc: quotationSvc,
		PDFProvider:  pdf.New(),
	})
	registerRoutes(srv)

	return &testEnv{engine: engine, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, cookie string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}

func (e *testEnv) promote(t *testing.T, username string, role authdomain.Role, threshold float64) {
	t.Helper()
	err := e.db.Model(&authdomain.User{}).
		Where("username = ?", username).
		Updates(map[string]any{"role": role, "discount_threshold": threshold}).Error
	require.NoError(t, err)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodGet, "/api/auth/me", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "dev", data["username"])
	assert.Equal(t, "user", data["role"])

	rec = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/logout", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/auth/me", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCalculatePricingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodPost, "/api/quotations/calculate-pricing", cookie, gin.H{
		"developerType": "cat1",
		"projectRegion": "Mumbai City",
		"plotArea":      1200,
		"headers": []gin.H{{
			"header": "Project Registration",
			"services": []gin.H{{
				"id":          "reg",
				"label":       "Project Registration",
				"subServices": []string{"Form A", "Form B"},
			}},
		}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decode(t, rec)
	summary := payload["summary"].(map[string]any)
	// Empty catalog prices on fallback: 50000 * 1.2.
	assert.InDelta(t, 60000, summary["subtotal"].(float64), 0.001)
}

func TestQuotationLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	devCookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodPost, "/api/quotations", devCookie, gin.H{
		"developerType": "cat1",
		"projectRegion": "Pune",
		"plotArea":      900,
		"developerName": "Crest Homes",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)["data"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, "500-2000", created["plotAreaBand"])

	// A discount beyond the creator's authority escalates.
	rec = env.do(t, http.MethodPut, "/api/quotations/"+id+"/pricing", devCookie, gin.H{
		"totalAmount":     100000,
		"discountPercent": 15,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "pending_approval", updated["status"])

	// The creator cannot decide its own escalation.
	rec = env.do(t, http.MethodPost, "/api/quotations/"+id+"/decision", devCookie, gin.H{"action": "approve"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminCookie := env.signup(t, "boss")
	env.promote(t, "boss", authdomain.RoleAdmin, 100)

	rec = env.do(t, http.MethodPost, "/api/quotations/"+id+"/decision", adminCookie, gin.H{"action": "approve"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decided := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "approved", decided["status"])
	assert.Equal(t, "boss", decided["approvedBy"])

	// Terminal quotations refuse edits.
	rec = env.do(t, http.MethodPut, "/api/quotations/"+id, devCookie, gin.H{"serviceSummary": "late"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidationErrorShape(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodPost, "/api/quotations", cookie, gin.H{
		"projectRegion": "Pune",
		"plotArea":      900,
		"developerName": "Crest Homes",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decode(t, rec)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "validation_error", errObj["type"])
}

func TestQuotationPDFDownload(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodPost, "/api/quotations", cookie, gin.H{
		"developerType": "cat1",
		"projectRegion": "Pune",
		"plotArea":      400,
		"developerName": "Crest Homes",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.do(t, http.MethodGet, "/api/quotations/"+id+"/pdf", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestAgentRegistrationOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "dev")

	rec := env.do(t, http.MethodPost, "/api/agent-registrations", cookie, gin.H{
		"agentName": "Priya Deshmukh",
		"mobile":    "9876543210",
		"agentType": "Individual",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["quotationId"].(string)

	rec = env.do(t, http.MethodPut, "/api/agent-registrations/"+id+"/services", cookie, gin.H{
		"services": []gin.H{
			{"id": "reg", "name": "Agent Registration", "price": 25000},
			{"id": "support", "name": "Renewal Support", "price": 5000},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]any)
	assert.InDelta(t, 30000, data["totalAmount"].(float64), 0.001)

	rec = env.do(t, http.MethodPut, "/api/agent-registrations/"+id+"/complete", cookie, gin.H{"termsAccepted": true})
	require.Equal(t, http.StatusOK, rec.Code)
	data = decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "completed", data["status"])

	// Deleting registrations needs a moderator role.
	rec = env.do(t, http.MethodDelete, "/api/agent-registrations/"+id, cookie, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
