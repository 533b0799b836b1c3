package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/app"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type appRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewAppRepository builds a sqlx-backed app.Repository.
func NewAppRepository(db *postgres.DB, log *logger.Logger) app.Repository {
	return &appRepository{db: db, log: log}
}

func (r *appRepository) Create(ctx context.Context, a *app.App) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO apps (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create app").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *appRepository) Get(ctx context.Context, id string) (*app.App, error) {
	q := r.db.GetQuerier(ctx)
	var a app.App
	err := q.GetContext(ctx, &a, `
		SELECT id, name, status, created_at, updated_at FROM apps WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, app.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get app").Mark(ierr.ErrSystem)
	}
	return &a, nil
}

func (r *appRepository) List(ctx context.Context, limit, offset int) ([]*app.App, int, error) {
	q := r.db.GetQuerier(ctx)
	var apps []*app.App
	err := q.SelectContext(ctx, &apps, `
		SELECT id, name, status, created_at, updated_at
		FROM apps ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, ierr.WithError(err).WithMessage("list apps").Mark(ierr.ErrSystem)
	}

	var total int
	if err := q.GetContext(ctx, &total, `SELECT count(*) FROM apps`); err != nil {
		return nil, 0, ierr.WithError(err).WithMessage("count apps").Mark(ierr.ErrSystem)
	}
	return apps, total, nil
}

func (r *appRepository) Update(ctx context.Context, a *app.App) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE apps SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Name, a.Status, a.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("update app").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrNotFound(a.ID)
	}
	return nil
}
