// Package numbering provides the phone-number validation bounded context:
// territory registry, validation engine, admin bulk updates and their HTTP
// surface.
package numbering

import (
	"context"

	"numbering_backend/internal/events"
	apphttp "numbering_backend/internal/http"
	"numbering_backend/internal/numbering/handler"
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/repository"
	"numbering_backend/internal/numbering/service"
	"numbering_backend/platform/logger"
	"numbering_backend/platform/metrics"
	"numbering_backend/platform/validator"
)

// Module is the numbering bounded context module implementing http.Module.
type Module struct {
	reg     *registry.Registry
	handler *handler.Handler
	service *service.Service
	admin   *service.Admin
	metrics *metrics.Metrics
	log     *logger.Logger
}

// ModuleConfig groups the module's dependencies.
type ModuleConfig struct {
	Registry         *registry.Registry
	Store            repository.Store
	Bus              events.Bus
	Metrics          *metrics.Metrics
	Logger           *logger.Logger
	Validator        *validator.Validator
	Strategy         service.Strategy
	DefaultTerritory string
}

// NewModule creates and initializes the numbering module with all its dependencies.
func NewModule(cfg ModuleConfig) *Module {
	store := cfg.Store
	if store == nil {
		store = repository.NopStore{}
	}

	svc := service.New(cfg.Registry, service.WithStrategy(cfg.Strategy))
	admin := service.NewAdmin(cfg.Registry, store, cfg.Bus, cfg.Logger)
	h := handler.New(handler.Config{
		Service:          svc,
		Admin:            admin,
		Validator:        cfg.Validator,
		Metrics:          cfg.Metrics,
		Logger:           cfg.Logger,
		DefaultTerritory: cfg.DefaultTerritory,
	})

	snap := cfg.Registry.Snapshot()
	cfg.Metrics.SetRegistry(snap.Len(), snap.Version())

	return &Module{
		reg:     cfg.Registry,
		handler: h,
		service: svc,
		admin:   admin,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "numbering"
}

// Service returns the validation engine for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts numbering routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/numbering")
	group.POST("/validate", m.handler.Validate)
	group.POST("/validate-complete", m.handler.ValidateComplete)
	group.GET("/territories", m.handler.SearchTerritories)
	group.GET("/territories/:code", m.handler.GetTerritory)
	group.GET("/calling-codes/:callingCode", m.handler.ListByCallingCode)

	adminGroup := ctx.Admin.Group("/numbering")
	adminGroup.PUT("/territories", m.handler.ReplaceTerritories)
	adminGroup.POST("/territories", m.handler.AppendTerritories)
}

// RegisterHandlers subscribes to registry changes to keep metrics and logs
// in step with the published snapshot.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.RegistryChanged{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.RegistryChanged:
		// Events are delivered asynchronously and may arrive out of order;
		// the gauges follow the live snapshot rather than the event payload.
		snap := m.reg.Snapshot()
		m.metrics.SetRegistry(snap.Len(), snap.Version())
		m.log.RegistryChanged(e.Operation, e.Version, e.Size, e.Source)
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
