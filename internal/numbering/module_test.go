package numbering

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"numbering_backend/internal/events"
	apphttp "numbering_backend/internal/http"
	"numbering_backend/internal/http/router"
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/service"
	"numbering_backend/internal/numbering/transport"
	"numbering_backend/platform/logger"
	"numbering_backend/platform/metrics"
	"numbering_backend/platform/validator"
)

const testSecret = "test-secret"

type testConfig struct{}

func (testConfig) GetHTTPAddr() string        { return ":0" }
func (testConfig) GetCORSAllowAll() bool      { return false }
func (testConfig) GetCORSOrigins() []string   { return []string{"http://localhost:4200"} }
func (testConfig) GetCORSAllowCreds() bool    { return false }
func (testConfig) GetRateLimitRPS() float64   { return 1000 }
func (testConfig) GetRateLimitBurst() int     { return 1000 }
func (testConfig) GetJWTAccessSecret() string { return testSecret }

type testServer struct {
	engine  *gin.Engine
	reg     *registry.Registry
	bus     *events.InMemoryBus
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, strategy service.Strategy) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	reg := registry.New(registry.Default())
	bus := events.NewInMemoryBus(log)
	m := metrics.New()

	module := NewModule(ModuleConfig{
		Registry:         reg,
		Bus:              bus,
		Metrics:          m,
		Logger:           log,
		Validator:        validator.New(),
		Strategy:         strategy,
		DefaultTerritory: "FR",
	})
	module.RegisterHandlers(bus)

	engine := router.New(&apphttp.App{
		Config:   testConfig{},
		Logger:   log,
		Metrics:  m,
		EventBus: bus,
		Modules:  []apphttp.Module{module},
	})
	return &testServer{engine: engine, reg: reg, bus: bus, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return out
}

func adminToken(t *testing.T, roles ...string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.NewString(),
		"type":  "access",
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	rec := s.do(t, http.MethodPost, "/api/v1/numbering/validate", gin.H{"number": "06 12 34 56 78", "territory": "fr"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[transport.ValidationResponse](t, rec)
	if !resp.IsValid || resp.FormattedNumber != "+330612345678" || resp.Display != "06 12 34 56 78" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if got := testutil.ToFloat64(s.metrics.Validations.WithLabelValues("single", "valid")); got != 1 {
		t.Fatalf("expected one valid validation counted, got %v", got)
	}
}

func TestValidateEndpointUsesDefaultTerritory(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	resp := decode[transport.ValidationResponse](t, s.do(t, http.MethodPost, "/api/v1/numbering/validate", gin.H{"number": "0612345678"}, ""))
	if !resp.IsValid || resp.Country == nil || resp.Country.Code != "FR" {
		t.Fatalf("expected FR default, got %+v", resp)
	}
}

func TestInvalidNumberIsNotATransportError(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	rec := s.do(t, http.MethodPost, "/api/v1/numbering/validate", gin.H{"number": "0600691801", "territory": "MA"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[transport.ValidationResponse](t, rec)
	if resp.IsValid || resp.ErrorKind != "pattern_mismatch" || len(resp.Suggestions) == 0 {
		t.Fatalf("expected mismatch with hints, got %+v", resp)
	}
}

func TestValidateEndpointRejectsBadRequests(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	cases := []any{
		gin.H{"number": "0612345678", "territory": "F1"},
		gin.H{"number": strings.Repeat("6", 65), "territory": "FR"},
	}
	for _, body := range cases {
		if rec := s.do(t, http.MethodPost, "/api/v1/numbering/validate", body, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestEmptyNumberIsAnInvalidResult(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	rec := s.do(t, http.MethodPost, "/api/v1/numbering/validate", gin.H{"territory": "FR"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[transport.ValidationResponse](t, rec)
	if resp.IsValid || resp.ErrorKind != "pattern_mismatch" {
		t.Fatalf("expected pattern mismatch, got %+v", resp)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/numbering/validate-complete", gin.H{"number": ""}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp = decode[transport.ValidationResponse](t, rec)
	if resp.IsValid || resp.ErrorKind != "calling_code_missing" {
		t.Fatalf("expected calling_code_missing, got %+v", resp)
	}
}

func TestValidateCompleteEndpointStrategies(t *testing.T) {
	first := newTestServer(t, service.StrategyFirstMatch)
	resp := decode[transport.ValidationResponse](t, first.do(t, http.MethodPost, "/api/v1/numbering/validate-complete", gin.H{"number": "+212528812345"}, ""))
	if resp.IsValid || resp.Country == nil || resp.Country.Code != "MA" {
		t.Fatalf("first match: expected MA mismatch, got %+v", resp)
	}

	all := newTestServer(t, service.StrategyAllCandidates)
	resp = decode[transport.ValidationResponse](t, all.do(t, http.MethodPost, "/api/v1/numbering/validate-complete", gin.H{"number": "+212528812345"}, ""))
	if !resp.IsValid || resp.Country.Code != "EH" || resp.FormattedNumber != "+212528812345" {
		t.Fatalf("all candidates: expected EH, got %+v", resp)
	}
}

func TestTerritoryEndpoints(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	list := decode[transport.TerritoryListResponse](t, s.do(t, http.MethodGet, "/api/v1/numbering/territories?q=Mo&limit=2", nil, ""))
	if list.Total != 2 || list.Items[0].Code != "MC" || list.Items[1].Code != "MA" {
		t.Fatalf("unexpected search result %+v", list)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/numbering/territories/ma", nil, "")
	if rec.Code != http.StatusOK || decode[transport.TerritoryResponse](t, rec).CallingCode != "+212" {
		t.Fatalf("expected MA, got %d %s", rec.Code, rec.Body.String())
	}

	if rec := s.do(t, http.MethodGet, "/api/v1/numbering/territories/ZZ", nil, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	byCode := decode[transport.TerritoryListResponse](t, s.do(t, http.MethodGet, "/api/v1/numbering/calling-codes/590", nil, ""))
	if byCode.Total != 3 || byCode.Items[0].Code != "GP" {
		t.Fatalf("unexpected +590 territories %+v", byCode)
	}

	if rec := s.do(t, http.MethodGet, "/api/v1/numbering/calling-codes/999", nil, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminAppendAndReplace(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)
	body := gin.H{"territories": []gin.H{{
		"code": "XA", "name": "Atlantis", "callingCode": "+999", "pattern": `\d{8}`, "example": "12345678",
	}}}

	if rec := s.do(t, http.MethodPost, "/api/v1/admin/numbering/territories", body, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/api/v1/admin/numbering/territories", body, adminToken(t, "viewer")); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", rec.Code)
	}

	token := adminToken(t, "admin")
	rec := s.do(t, http.MethodPost, "/api/v1/admin/numbering/territories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	appended := decode[transport.BulkTerritoriesResponse](t, rec)
	if appended.Version != 2 || appended.Size != len(registry.Default())+1 {
		t.Fatalf("unexpected append result %+v", appended)
	}
	s.bus.Wait()

	resp := decode[transport.ValidationResponse](t, s.do(t, http.MethodPost, "/api/v1/numbering/validate-complete", gin.H{"number": "+999 1234 5678"}, ""))
	if !resp.IsValid || resp.Country.Code != "XA" {
		t.Fatalf("expected appended territory to validate, got %+v", resp)
	}

	if rec := s.do(t, http.MethodPost, "/api/v1/admin/numbering/territories", body, token); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate append, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPut, "/api/v1/admin/numbering/territories", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if s.reg.Snapshot().Len() != 1 {
		t.Fatalf("expected replaced registry of 1, got %d", s.reg.Snapshot().Len())
	}

	s.bus.Wait()
	if got := testutil.ToFloat64(s.metrics.RegistryVersion); got != 3 {
		t.Fatalf("expected registry version gauge 3, got %v", got)
	}
	if got := testutil.ToFloat64(s.metrics.RegistrySize); got != 1 {
		t.Fatalf("expected registry size gauge 1, got %v", got)
	}
}

func TestRegistryGaugesIgnoreStaleEvents(t *testing.T) {
	log := logger.Nop()
	reg := registry.New(registry.Default())
	m := metrics.New()
	module := NewModule(ModuleConfig{
		Registry:  reg,
		Bus:       events.NewInMemoryBus(log),
		Metrics:   m,
		Logger:    log,
		Validator: validator.New(),
	})

	fr, ok := reg.Snapshot().FindByCode("FR")
	if !ok {
		t.Fatal("expected FR in default registry")
	}
	reg.ReplaceAll(registry.Default())
	latest := reg.ReplaceAll([]registry.CountryRecord{fr})

	// the newer change lands first, then the older one
	ctx := context.Background()
	_ = module.Handle(ctx, events.RegistryChanged{Operation: "replace", Version: latest.Version(), Size: 1, Source: events.SourceAdmin})
	_ = module.Handle(ctx, events.RegistryChanged{Operation: "replace", Version: latest.Version() - 1, Size: 200, Source: events.SourceAdmin})

	if got := testutil.ToFloat64(m.RegistryVersion); got != float64(latest.Version()) {
		t.Fatalf("expected version gauge %d, got %v", latest.Version(), got)
	}
	if got := testutil.ToFloat64(m.RegistrySize); got != 1 {
		t.Fatalf("expected size gauge 1, got %v", got)
	}
}

func TestAdminRejectsInvalidTerritories(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)
	token := adminToken(t, "admin")

	badExample := gin.H{"territories": []gin.H{{
		"code": "XA", "name": "Atlantis", "callingCode": "+999", "pattern": `\d{8}`, "example": "123",
	}}}
	if rec := s.do(t, http.MethodPut, "/api/v1/admin/numbering/territories", badExample, token); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for example not matching pattern, got %d", rec.Code)
	}

	badCallingCode := gin.H{"territories": []gin.H{{
		"code": "XA", "name": "Atlantis", "callingCode": "999", "pattern": `\d{8}`, "example": "12345678",
	}}}
	if rec := s.do(t, http.MethodPut, "/api/v1/admin/numbering/territories", badCallingCode, token); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for calling code without +, got %d", rec.Code)
	}

	if s.reg.Snapshot().Version() != 1 {
		t.Fatal("expected registry untouched")
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t, service.StrategyFirstMatch)

	if rec := s.do(t, http.MethodGet, "/api/health", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", rec.Code)
	}
	rec := s.do(t, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("numbering_registry_territories")) {
		t.Fatalf("expected metrics output, got %d", rec.Code)
	}
}
