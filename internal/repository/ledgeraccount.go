package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/ledgeraccount"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/flexprice/billing-engine/internal/types"
)

type ledgerAccountRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewLedgerAccountRepository builds a sqlx-backed ledgeraccount.Repository.
func NewLedgerAccountRepository(db *postgres.DB, log *logger.Logger) ledgeraccount.Repository {
	return &ledgerAccountRepository{db: db, log: log}
}

// GetOrCreate reads the (appId, billToId, type) account, creating it on
// first reference. A unique-violation race on the insert means another
// caller won; re-read picks up their row, per §4.L.
func (r *ledgerAccountRepository) GetOrCreate(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (*ledgeraccount.LedgerAccount, error) {
	q := r.db.GetQuerier(ctx)

	get := func() (*ledgeraccount.LedgerAccount, error) {
		var a ledgeraccount.LedgerAccount
		err := q.GetContext(ctx, &a, `
			SELECT id, app_id, bill_to_id, type
			FROM ledger_accounts WHERE app_id = $1 AND bill_to_id = $2 AND type = $3`,
			appID, billToID, accountType)
		if err != nil {
			return nil, err
		}
		return &a, nil
	}

	if a, err := get(); err == nil {
		return a, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.WithError(err).WithMessage("get ledger account").Mark(ierr.ErrSystem)
	}

	id := types.GenerateUUID()
	_, err := q.ExecContext(ctx, `
		INSERT INTO ledger_accounts (id, app_id, bill_to_id, type) VALUES ($1, $2, $3, $4)`,
		id, appID, billToID, accountType)
	if err != nil && !isUniqueViolation(err) {
		return nil, ierr.WithError(err).WithMessage("create ledger account").Mark(ierr.ErrSystem)
	}

	a, err := get()
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get ledger account after create").Mark(ierr.ErrSystem)
	}
	return a, nil
}
