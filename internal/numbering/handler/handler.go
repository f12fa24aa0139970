package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"numbering_backend/internal/numbering/service"
	"numbering_backend/internal/numbering/transport"
	"numbering_backend/platform/apperr"
	"numbering_backend/platform/httpkit"
	"numbering_backend/platform/logger"
	"numbering_backend/platform/metrics"
	"numbering_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	modeSingle   = "single"
	modeComplete = "complete"
)

// Handler handles HTTP requests for number validation and territories.
type Handler struct {
	svc              *service.Service
	admin            *service.Admin
	val              *validator.Validator
	metrics          *metrics.Metrics
	log              *logger.Logger
	defaultTerritory string
}

// Config groups the handler's collaborators.
type Config struct {
	Service          *service.Service
	Admin            *service.Admin
	Validator        *validator.Validator
	Metrics          *metrics.Metrics
	Logger           *logger.Logger
	DefaultTerritory string
}

// New creates a numbering handler.
func New(cfg Config) *Handler {
	return &Handler{
		svc:              cfg.Service,
		admin:            cfg.Admin,
		val:              cfg.Validator,
		metrics:          cfg.Metrics,
		log:              cfg.Logger,
		defaultTerritory: cfg.DefaultTerritory,
	}
}

// Validate checks a national number against one territory.
// POST /api/v1/numbering/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	territory := strings.ToUpper(strings.TrimSpace(req.Territory))
	if territory == "" {
		territory = h.defaultTerritory
	}

	result := h.svc.Validate(req.Number, territory)
	h.observe(c, modeSingle, territory, result)
	httpkit.OK(c, transport.ToValidationResponse(result, req.Number))
}

// ValidateComplete checks a number written with its calling code.
// POST /api/v1/numbering/validate-complete
func (h *Handler) ValidateComplete(c *gin.Context) {
	var req transport.ValidateCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := h.svc.ValidateComplete(req.Number)
	territory := ""
	if result.Country != nil {
		territory = result.Country.Code
	}
	h.observe(c, modeComplete, territory, result)
	httpkit.OK(c, transport.ToValidationResponse(result, req.Number))
}

// SearchTerritories ranks territories for a picker.
// GET /api/v1/numbering/territories?q=&limit=
func (h *Handler) SearchTerritories(c *gin.Context) {
	var req transport.SearchTerritoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	version := h.svc.Snapshot().Version()
	results := h.svc.Search(req.Query, req.Limit)
	h.metrics.ObserveSearch()
	httpkit.OK(c, transport.ToTerritoryList(results, version))
}

// GetTerritory returns one territory by code, case-insensitively.
// GET /api/v1/numbering/territories/:code
func (h *Handler) GetTerritory(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if err := h.val.Var(code, "territory_code"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid territory code", nil)
		return
	}

	rec, ok := h.svc.Territory(code)
	if !ok {
		httpkit.HandleError(c, apperr.NotFound("territory not found").WithDetails(gin.H{"code": code}))
		return
	}
	httpkit.OK(c, transport.ToTerritoryResponse(rec))
}

// ListByCallingCode returns every territory sharing a calling code, in
// registry order. The leading "+" is optional in the path.
// GET /api/v1/numbering/calling-codes/:callingCode
func (h *Handler) ListByCallingCode(c *gin.Context) {
	callingCode := strings.TrimSpace(c.Param("callingCode"))
	if !strings.HasPrefix(callingCode, "+") {
		callingCode = "+" + callingCode
	}
	if err := h.val.Var(callingCode, "calling_code"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid calling code", nil)
		return
	}

	snap := h.svc.Snapshot()
	records := snap.FindAllByCallingCode(callingCode)
	if len(records) == 0 {
		httpkit.HandleError(c, apperr.NotFound("calling code not recognized").WithDetails(gin.H{"callingCode": callingCode}))
		return
	}
	httpkit.OK(c, transport.ToTerritoryList(records, snap.Version()))
}

// ReplaceTerritories installs a new territory table.
// PUT /api/v1/admin/numbering/territories
func (h *Handler) ReplaceTerritories(c *gin.Context) {
	req, ok := h.bindBulk(c)
	if !ok {
		return
	}

	snap, err := h.admin.ReplaceTerritories(c.Request.Context(), req.Records())
	if httpkit.HandleError(c, err) {
		return
	}
	h.logAdmin(c, "replace", snap.Version(), snap.Len())
	httpkit.OK(c, transport.BulkTerritoriesResponse{Version: snap.Version(), Size: snap.Len()})
}

// AppendTerritories adds territories after the existing ones.
// POST /api/v1/admin/numbering/territories
func (h *Handler) AppendTerritories(c *gin.Context) {
	req, ok := h.bindBulk(c)
	if !ok {
		return
	}

	snap, err := h.admin.AppendTerritories(c.Request.Context(), req.Records())
	if httpkit.HandleError(c, err) {
		return
	}
	h.logAdmin(c, "append", snap.Version(), snap.Len())
	httpkit.JSON(c, http.StatusCreated, transport.BulkTerritoriesResponse{Version: snap.Version(), Size: snap.Len()})
}

func (h *Handler) bindBulk(c *gin.Context) (transport.BulkTerritoriesRequest, bool) {
	var req transport.BulkTerritoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) observe(c *gin.Context, mode, territory string, result service.ValidationResult) {
	outcome := "valid"
	if !result.IsValid {
		outcome = string(result.Kind)
	}
	h.metrics.ObserveValidation(mode, outcome)
	h.log.WithContext(c.Request.Context()).ValidationOutcome(mode, territory, result.IsValid, string(result.Kind))
}

func (h *Handler) logAdmin(c *gin.Context, op string, version int64, size int) {
	actor := "unknown"
	if id := httpkit.GetIdentity(c); id.IsAuthenticated() {
		actor = id.UserID().String()
	}
	h.log.WithContext(c.Request.Context()).WithUserID(actor).Info("territory bulk update", "operation", op, "version", version, "size", size)
}
