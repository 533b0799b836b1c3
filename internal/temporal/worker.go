package temporal

import (
	"context"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"go.temporal.io/sdk/worker"
	"go.uber.org/fx"
)

// Worker hosts both scheduled-job workflows and their activities on a
// single task queue.
type Worker struct {
	worker worker.Worker
	log    *logger.Logger
}

// NewWorker creates a worker listening on cfg's shared task queue and
// registers both workflows and their activities against it.
func NewWorker(client *TemporalClient, cfg config.TemporalConfig, activities *Activities, log *logger.Logger) *Worker {
	w := worker.New(client.Client, cfg.TaskQueue, worker.Options{})

	w.RegisterWorkflow(WalletDebitDailyWorkflow)
	w.RegisterWorkflow(PeriodCloseWorkflow)
	w.RegisterActivity(activities)

	return &Worker{worker: w, log: log}
}

func (w *Worker) Start() error {
	w.log.Info("starting temporal worker")
	return w.worker.Start()
}

func (w *Worker) Stop() {
	w.log.Info("stopping temporal worker")
	if w.worker != nil {
		w.worker.Stop()
	}
}

// RegisterWithLifecycle starts the worker on fx OnStart and stops it,
// bounded by ctx's deadline, on OnStop.
func (w *Worker) RegisterWithLifecycle(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start()
		},
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				w.Stop()
				close(done)
			}()
			select {
			case <-done:
				w.log.Info("temporal worker stopped")
			case <-ctx.Done():
				w.log.Error("timed out stopping temporal worker")
			}
			return nil
		},
	})
}
