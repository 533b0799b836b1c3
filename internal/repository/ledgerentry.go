package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type ledgerEntryRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewLedgerEntryRepository builds a sqlx-backed ledgerentry.Repository.
func NewLedgerEntryRepository(db *postgres.DB, log *logger.Logger) ledgerentry.Repository {
	return &ledgerEntryRepository{db: db, log: log}
}

// AcquireAccountLock serializes every writer of one (appId, billToId,
// accountType) ledger account behind a single postgres advisory lock, per
// §4.L and §5. Held for the lifetime of the current transaction; the
// caller is expected to already be inside db.WithTx.
func AcquireAccountLock(ctx context.Context, db *postgres.DB, appID, billToID, accountType string) error {
	q := db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, appID+":"+billToID+":"+accountType)
	if err != nil {
		return ierr.WithError(err).WithMessage("acquire ledger account lock").Mark(ierr.ErrSystem)
	}
	return nil
}

// Create inserts the entry. The caller must already hold the account's
// advisory lock within the current transaction (see AcquireAccountLock);
// Create itself only performs the insert and reports the dedup outcome.
func (r *ledgerEntryRepository) Create(ctx context.Context, e *ledgerentry.LedgerEntry) (bool, error) {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO ledger_entries
			(id, app_id, bill_to_id, ledger_account_id, type, amount_minor, currency,
			 reference_type, reference_id, idempotency_key, metadata, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.AppID, e.BillToID, e.LedgerAccountID, e.Type, e.AmountMinor, e.Currency,
		e.ReferenceType, e.ReferenceID, e.IdempotencyKey, e.Metadata, e.Timestamp,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, ierr.WithError(err).WithMessage("create ledger entry").Mark(ierr.ErrSystem)
	}
	return true, nil
}

func (r *ledgerEntryRepository) Balance(ctx context.Context, appID, billToID, accountType string) (int64, error) {
	q := r.db.GetQuerier(ctx)
	var balance sql.NullInt64
	err := q.GetContext(ctx, &balance, `
		SELECT coalesce(sum(le.amount_minor), 0) FROM ledger_entries le
		JOIN ledger_accounts la ON la.id = le.ledger_account_id
		WHERE la.app_id = $1 AND la.bill_to_id = $2 AND la.type = $3`,
		appID, billToID, accountType)
	if err != nil {
		return 0, ierr.WithError(err).WithMessage("get ledger balance").Mark(ierr.ErrSystem)
	}
	return balance.Int64, nil
}

func (r *ledgerEntryRepository) List(ctx context.Context, filter ledgerentry.ListFilter) ([]*ledgerentry.LedgerEntry, int, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT le.id, le.app_id, le.bill_to_id, le.ledger_account_id, le.type,
			le.amount_minor, le.currency, le.reference_type, le.reference_id,
			le.idempotency_key, le.metadata, le.timestamp
		FROM ledger_entries le
		JOIN ledger_accounts la ON la.id = le.ledger_account_id
		WHERE la.app_id = $1 AND la.bill_to_id = $2`
	countQuery := `
		SELECT count(*) FROM ledger_entries le
		JOIN ledger_accounts la ON la.id = le.ledger_account_id
		WHERE la.app_id = $1 AND la.bill_to_id = $2`

	args := []any{filter.AppID, filter.BillToID}
	n := 2
	if filter.Type != "" {
		n++
		clause := fmt.Sprintf(" AND le.type = $%d", n)
		query += clause
		countQuery += clause
		args = append(args, filter.Type)
	}
	if filter.From != nil {
		n++
		clause := fmt.Sprintf(" AND le.timestamp >= $%d", n)
		query += clause
		countQuery += clause
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		clause := fmt.Sprintf(" AND le.timestamp < $%d", n)
		query += clause
		countQuery += clause
		args = append(args, *filter.To)
	}

	var total int
	if err := q.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, ierr.WithError(err).WithMessage("count ledger entries").Mark(ierr.ErrSystem)
	}

	query += " ORDER BY le.timestamp DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	var entries []*ledgerentry.LedgerEntry
	if err := q.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, ierr.WithError(err).WithMessage("list ledger entries").Mark(ierr.ErrSystem)
	}
	return entries, total, nil
}
