package service

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/ledgeraccount"
	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/repository"
	"github.com/flexprice/billing-engine/internal/types"
)

// LedgerService implements the append-only ledger of §4.L: every credit or
// debit against a (app, billTo, accountType) account is a new LedgerEntry,
// never an update.
type LedgerService interface {
	GetOrCreateAccount(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (*ledgeraccount.LedgerAccount, error)
	// CreateEntry posts one entry under the account's advisory lock.
	// accountType identifies the account e.LedgerAccountID belongs to, so
	// the lock key matches the account without a redundant lookup.
	// Returns false, nil if idempotencyKey was already posted.
	CreateEntry(ctx context.Context, accountType types.LedgerAccountType, e *ledgerentry.LedgerEntry) (bool, error)
	GetBalance(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (int64, error)
	GetEntries(ctx context.Context, filter ledgerentry.ListFilter) ([]*ledgerentry.LedgerEntry, int, error)
}

type ledgerService struct {
	ServiceParams
}

func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

func (s *ledgerService) GetOrCreateAccount(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (*ledgeraccount.LedgerAccount, error) {
	return s.LedgerAccountRepo.GetOrCreate(ctx, appID, billToID, accountType)
}

// CreateEntry acquires the account's advisory lock inside a transaction so
// concurrent posters against the same account serialize, then inserts the
// entry and swallows an idempotencyKey collision per §7.
func (s *ledgerService) CreateEntry(ctx context.Context, accountType types.LedgerAccountType, e *ledgerentry.LedgerEntry) (bool, error) {
	var created bool
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := repository.AcquireAccountLock(ctx, s.DB, e.AppID, e.BillToID, string(accountType)); err != nil {
			return err
		}

		var txErr error
		created, txErr = s.LedgerEntryRepo.Create(ctx, e)
		return txErr
	})
	if err != nil {
		return false, err
	}
	if !created {
		s.Logger.With("idempotency_key", e.IdempotencyKey).Debug("ledger entry already posted, skipping")
	}
	return created, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (int64, error) {
	return s.LedgerEntryRepo.Balance(ctx, appID, billToID, string(accountType))
}

func (s *ledgerService) GetEntries(ctx context.Context, filter ledgerentry.ListFilter) ([]*ledgerentry.LedgerEntry, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = types.DefaultLedgerLimit
	}
	entries, total, err := s.LedgerEntryRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, ierr.WithError(err).WithMessage("list ledger entries").Mark(ierr.ErrSystem)
	}
	return entries, total, nil
}
