package temporal

import (
	"context"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"go.temporal.io/sdk/client"
	"go.uber.org/fx"
)

// Scheduler implements §6's job-scheduler contract: createQueue(name),
// work(name, opts, handler), schedule(name, cronExpr). Temporal already
// gives us durable, at-least-once execution and cron scheduling, so
// createQueue/work collapse into worker registration (see Worker) and
// schedule becomes a cron-scheduled workflow start kept running for the
// lifetime of the process.
type Scheduler struct {
	client *TemporalClient
	cfg    config.TemporalConfig
	log    *logger.Logger
}

func NewScheduler(client *TemporalClient, cfg config.TemporalConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{client: client, cfg: cfg, log: log}
}

// jobs enumerates the two queues §6 names, each bound to its cron
// expression and workflow.
func (s *Scheduler) jobs() map[string]struct {
	cron     string
	workflow interface{}
} {
	return map[string]struct {
		cron     string
		workflow interface{}
	}{
		s.cfg.WalletDebitQueue: {cron: "0 0 * * *", workflow: WalletDebitDailyWorkflow},
		s.cfg.PeriodCloseQueue: {cron: "0 1 * * *", workflow: PeriodCloseWorkflow},
	}
}

// Start schedules both jobs as cron workflows on the shared task queue.
// Each workflow ID is the queue name itself, so re-running Start (e.g.
// on process restart) reuses the same cron schedule instead of
// duplicating it.
func (s *Scheduler) Start(ctx context.Context) error {
	for name, job := range s.jobs() {
		opts := client.StartWorkflowOptions{
			ID:           name,
			TaskQueue:    s.cfg.TaskQueue,
			CronSchedule: job.cron,
		}
		if _, err := s.client.Client.ExecuteWorkflow(ctx, opts, job.workflow); err != nil {
			s.log.With("queue", name, "error", err).Error("failed to schedule job")
			return err
		}
		s.log.With("queue", name, "cron", job.cron).Info("scheduled job")
	}
	return nil
}

// RegisterWithLifecycle schedules both jobs on fx OnStart. Scheduling is
// idempotent per workflow ID, so no corresponding OnStop action is
// needed; the cron schedule simply stops being renewed once the last
// run completes after the worker shuts down.
func (s *Scheduler) RegisterWithLifecycle(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
	})
}
