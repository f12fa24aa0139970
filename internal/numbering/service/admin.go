package service

import (
	"context"
	"fmt"
	"sync"

	"numbering_backend/internal/events"
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/repository"
	"numbering_backend/platform/apperr"
	"numbering_backend/platform/logger"
	"numbering_backend/platform/phone"
)

// snapshotsKept is how many stored snapshots survive a prune.
const snapshotsKept = 20

// pruner is implemented by stores that can drop old snapshots.
type pruner interface {
	Prune(ctx context.Context, keep int) (int64, error)
}

// Admin applies bulk registry updates. Each update is checked, persisted,
// installed and announced on the event bus, in that order.
type Admin struct {
	mu    sync.Mutex
	reg   *registry.Registry
	store repository.Store
	bus   events.Bus
	log   *logger.Logger
}

// NewAdmin creates the bulk update service.
func NewAdmin(reg *registry.Registry, store repository.Store, bus events.Bus, log *logger.Logger) *Admin {
	return &Admin{reg: reg, store: store, bus: bus, log: log}
}

// ReplaceTerritories discards the current table and installs records.
func (a *Admin) ReplaceTerritories(ctx context.Context, records []registry.CountryRecord) (*registry.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	incoming, err := canonical(records)
	if err != nil {
		return nil, err
	}
	if err := registry.CheckAll(incoming); err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("admin.ReplaceTerritories")
	}
	a.crossCheck(incoming)

	if _, err := a.store.Save(ctx, repository.OperationReplace, incoming); err != nil {
		return nil, err
	}
	snap := a.reg.ReplaceAll(incoming)
	a.afterUpdate(ctx, repository.OperationReplace, snap)
	return snap, nil
}

// AppendTerritories adds records after the current ones. A code already in
// the registry is a conflict.
func (a *Admin) AppendTerritories(ctx context.Context, records []registry.CountryRecord) (*registry.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	incoming, err := canonical(records)
	if err != nil {
		return nil, err
	}
	if err := registry.CheckAll(incoming); err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("admin.AppendTerritories")
	}
	a.crossCheck(incoming)

	current := a.reg.Snapshot()
	for _, rec := range incoming {
		if _, exists := current.FindByCode(rec.Code); exists {
			return nil, apperr.Conflict(fmt.Sprintf("territory %s already exists", rec.Code)).
				WithOp("admin.AppendTerritories").
				WithDetails(map[string]string{"code": rec.Code})
		}
	}

	merged := append(current.Records(), incoming...)
	if _, err := a.store.Save(ctx, repository.OperationAppend, merged); err != nil {
		return nil, err
	}
	snap := a.reg.AppendAll(incoming)
	a.afterUpdate(ctx, repository.OperationAppend, snap)
	return snap, nil
}

func (a *Admin) afterUpdate(ctx context.Context, op string, snap *registry.Snapshot) {
	if p, ok := a.store.(pruner); ok {
		if _, err := p.Prune(ctx, snapshotsKept); err != nil {
			a.log.DatabaseError("prune registry snapshots", err)
		}
	}

	a.bus.Publish(ctx, events.RegistryChanged{
		BaseEvent: events.NewBaseEvent(),
		Operation: op,
		Version:   snap.Version(),
		Size:      snap.Len(),
		Source:    events.SourceAdmin,
	})
}

// crossCheck warns about calling codes libphonenumber disagrees with. The
// curated table stays authoritative; custom codes unknown to it are skipped.
func (a *Admin) crossCheck(records []registry.CountryRecord) {
	for _, rec := range records {
		want := phone.RegionCallingCode(rec.Code)
		if want != "" && want != rec.CallingCode {
			a.log.Warn("territory calling code differs from libphonenumber",
				"code", rec.Code, "callingCode", rec.CallingCode, "libphonenumber", want)
		}
	}
}

func canonical(records []registry.CountryRecord) ([]registry.CountryRecord, error) {
	if len(records) == 0 {
		return nil, apperr.Validation("at least one territory is required")
	}
	out := make([]registry.CountryRecord, len(records))
	for i, rec := range records {
		out[i] = rec.Canonical()
	}
	return out, nil
}
