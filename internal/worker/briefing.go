package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/services"
)

// BriefingWorker runs the daily briefing on a cron schedule.
type BriefingWorker struct {
	briefingService *services.BriefingService
	schedule        string
	cron            *cron.Cron
	logger          *logger.Logger
}

// NewBriefingWorker creates a new briefing worker. schedule is a standard
// five-field cron expression, for example "0 8 * * *" for eight in the
// morning server time.
func NewBriefingWorker(svc *services.BriefingService, schedule string, log *logger.Logger) *BriefingWorker {
	return &BriefingWorker{
		briefingService: svc,
		schedule:        schedule,
		logger:          log,
	}
}

// Start registers the cron entry and begins scheduling. It returns an error
// when the schedule expression does not parse.
func (w *BriefingWorker) Start(ctx context.Context) error {
	w.cron = cron.New()

	_, err := w.cron.AddFunc(w.schedule, func() {
		w.run(ctx)
	})
	if err != nil {
		return err
	}

	w.logger.WithFields(map[string]interface{}{
		"schedule": w.schedule,
	}).Info("Starting briefing worker")

	w.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running briefing to finish.
func (w *BriefingWorker) Stop() {
	if w.cron == nil {
		return
	}
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("Briefing worker stopped")
}

// RunNow triggers a briefing outside the schedule, used by the CLI.
func (w *BriefingWorker) RunNow(ctx context.Context) error {
	return w.briefingService.RunAll(ctx)
}

func (w *BriefingWorker) run(ctx context.Context) {
	w.logger.Info("Starting daily briefing run")
	if err := w.briefingService.RunAll(ctx); err != nil {
		w.logger.ErrorWithErr(err, "Briefing run failed")
		return
	}
	w.logger.Info("Daily briefing run finished")
}
