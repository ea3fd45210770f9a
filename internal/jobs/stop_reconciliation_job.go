package jobs

import (
	"context"
	"errors"
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// ActiveLoadLister lists loads that are not COMPLETED.
type ActiveLoadLister interface {
	ListActiveIDs(ctx context.Context) ([]kernel.UUID, error)
}

// StopReconciler rewrites one load's stop list from its stop rows.
type StopReconciler interface {
	Handle(ctx context.Context, command commands.ReconcileStopsCommand) (bool, error)
}

// scheduleParser accepts five or six field expressions and descriptors such
// as "@every 15m".
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// StopReconciliationJob periodically repairs the stop list of every active
// load. It is disabled when the schedule is empty.
type StopReconciliationJob struct {
	loads    ActiveLoadLister
	handler  StopReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStopReconciliationJob(
	loads ActiveLoadLister,
	handler StopReconciler,
	schedule string,
	logger *slog.Logger,
) *StopReconciliationJob {
	return &StopReconciliationJob{
		loads:    loads,
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "stop_reconciliation_job"),
	}
}

func (j *StopReconciliationJob) Name() string { return "stop reconciliation" }

// Start registers the schedule and starts the scheduler. An invalid schedule
// is returned as an error.
func (j *StopReconciliationJob) Start() error {
	ctx := context.Background()
	if j.schedule == "" {
		j.logger.InfoContext(ctx, "Stop reconciliation job disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.ErrorContext(ctx, "Stop reconciliation job failed", "error", err)
		}
	})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("stop_reconcile_cron", err)
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Stop reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *StopReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stop reconciliation job stopped")
}

// Run reconciles every active load once and returns how many stop lists
// changed. A failing load is logged and skipped; loads deleted since listing
// are ignored.
func (j *StopReconciliationJob) Run(ctx context.Context) (int, error) {
	ids, err := j.loads.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	changed, failed := 0, 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}

		cmd, err := commands.NewReconcileStopsCommand(id)
		if err != nil {
			return changed, err
		}
		ok, err := j.handler.Handle(ctx, cmd)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			continue
		case err != nil:
			failed++
			j.logger.WarnContext(ctx, "Failed to reconcile stops", "load_id", id.String(), "error", err)
		case ok:
			changed++
		}
	}

	j.logger.InfoContext(ctx, "Stop reconciliation pass finished",
		"loads", len(ids),
		"changed", changed,
		"failed", failed,
	)
	return changed, nil
}
