package temporal

import (
	"time"

	temporalsdk "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

var retryPolicy = &temporalsdk.RetryPolicy{
	InitialInterval:    time.Second,
	BackoffCoefficient: 2.0,
	MaximumInterval:    time.Minute,
	MaximumAttempts:    3,
}

// WalletDebitDailyWorkflow runs the wallet-debit-daily job: sweep every
// undebited WALLET-mode line item and charge it in per-team batches.
func WalletDebitDailyWorkflow(ctx workflow.Context) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy:         retryPolicy,
	})

	var a *Activities
	return workflow.ExecuteActivity(ctx, a.RunWalletDebitBatch).Get(ctx, nil)
}

// PeriodCloseWorkflow runs the period-close job: close every contract
// period that has come due and issue its invoice.
func PeriodCloseWorkflow(ctx workflow.Context) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		RetryPolicy:         retryPolicy,
	})

	logger := workflow.GetLogger(ctx)
	var a *Activities
	var result struct {
		Processed int
		Skipped   int
		Failed    int
	}
	if err := workflow.ExecuteActivity(ctx, a.RunPeriodClose).Get(ctx, &result); err != nil {
		return err
	}
	logger.Info("period close run complete", "processed", result.Processed, "skipped", result.Skipped, "failed", result.Failed)
	return nil
}
