// Package repository persists registry snapshots so bulk updates made through
// the admin API survive restarts and can be picked up by other instances.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"numbering_backend/internal/numbering/registry"
	"numbering_backend/platform/apperr"
)

// Operation names recorded with each snapshot.
const (
	OperationReplace = "replace"
	OperationAppend  = "append"
)

// Store persists full registry snapshots.
type Store interface {
	// Latest returns the most recently saved snapshot, or false when none exists.
	Latest(ctx context.Context) ([]registry.CountryRecord, bool, error)
	// Save records the complete registry contents produced by op.
	Save(ctx context.Context, op string, records []registry.CountryRecord) (int64, error)
}

// querier is the subset of *pgxpool.Pool the repository uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repo stores snapshots in PostgreSQL.
type Repo struct {
	db querier
}

// New creates a Postgres-backed store. pool is usually a *pgxpool.Pool.
func New(pool querier) *Repo {
	return &Repo{db: pool}
}

// Compile-time check that Repo implements Store.
var _ Store = (*Repo)(nil)

const latestSnapshotQuery = `
		SELECT records
		FROM territory_snapshots
		ORDER BY id DESC
		LIMIT 1`

const insertSnapshotQuery = `
		INSERT INTO territory_snapshots (operation, records, record_count)
		VALUES ($1, $2, $3)
		RETURNING id`

// Latest loads the newest snapshot.
func (r *Repo) Latest(ctx context.Context) ([]registry.CountryRecord, bool, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, latestSnapshotQuery).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperr.Wrap(apperr.KindUnavailable, "load registry snapshot", err).WithOp("repository.Latest")
	}

	var records []registry.CountryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, apperr.Wrap(apperr.KindInternal, "decode registry snapshot", err).WithOp("repository.Latest")
	}
	return records, true, nil
}

// Save inserts a snapshot and returns its id.
func (r *Repo) Save(ctx context.Context, op string, records []registry.CountryRecord) (int64, error) {
	if op != OperationReplace && op != OperationAppend {
		return 0, apperr.Validation(fmt.Sprintf("unknown snapshot operation %q", op)).WithOp("repository.Save")
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "encode registry snapshot", err).WithOp("repository.Save")
	}

	var id int64
	if err := r.db.QueryRow(ctx, insertSnapshotQuery, op, raw, len(records)).Scan(&id); err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "save registry snapshot", err).WithOp("repository.Save")
	}
	return id, nil
}

// Prune deletes all but the newest keep snapshots.
func (r *Repo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM territory_snapshots
		WHERE id NOT IN (
			SELECT id FROM territory_snapshots ORDER BY id DESC LIMIT $1
		)`, keep)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "prune registry snapshots", err).WithOp("repository.Prune")
	}
	return tag.RowsAffected(), nil
}

// NopStore is used when no database is configured. Nothing is persisted.
type NopStore struct{}

var _ Store = NopStore{}

// Latest always reports no snapshot.
func (NopStore) Latest(context.Context) ([]registry.CountryRecord, bool, error) {
	return nil, false, nil
}

// Save discards records.
func (NopStore) Save(context.Context, string, []registry.CountryRecord) (int64, error) {
	return 0, nil
}
