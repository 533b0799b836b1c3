package temporal

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/service"
)

// Activities groups the two scheduled jobs §6's job-scheduler contract
// names: wallet-debit-daily and period-close. Each activity delegates
// straight to its service method; the workflow layer only owns
// scheduling and retry.
type Activities struct {
	WalletDebiter  service.WalletDebiter
	InvoiceService service.InvoiceService
}

func NewActivities(walletDebiter service.WalletDebiter, invoiceService service.InvoiceService) *Activities {
	return &Activities{WalletDebiter: walletDebiter, InvoiceService: invoiceService}
}

// RunWalletDebitBatch backs the wallet-debit-daily queue.
func (a *Activities) RunWalletDebitBatch(ctx context.Context) error {
	return a.WalletDebiter.DebitBatch(ctx)
}

// RunPeriodClose backs the period-close queue.
func (a *Activities) RunPeriodClose(ctx context.Context) (*service.PeriodCloseResult, error) {
	return a.InvoiceService.RunPeriodClose(ctx, time.Now().UTC())
}
