// Package jobs holds the asynq task definitions and the worker that runs
// them: nightly report cache warmup and session/activity maintenance.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/studio-kirana/kirana-erp/internal/activity"
	"github.com/studio-kirana/kirana-erp/internal/adsreport"
	"github.com/studio-kirana/kirana-erp/internal/auth"
	"github.com/studio-kirana/kirana-erp/internal/finance"
	"github.com/studio-kirana/kirana-erp/internal/ledger"
)

const (
	// QueueDefault is the queue every job runs on.
	QueueDefault = "default"
	// TaskReportWarmup precomputes the common report summaries into the
	// cache so the first dashboard hit of the day is warm.
	TaskReportWarmup = "reports:warmup"
	// TaskMaintenance prunes stale activity log rows.
	TaskMaintenance = "store:maintenance"
)

// ReportWarmupPayload narrows the warmup to one period, or everything when
// empty.
type ReportWarmupPayload struct {
	Period string `json:"period,omitempty"`
}

// NewReportWarmupTask constructs the warmup task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// NewMaintenanceTask constructs the maintenance task.
func NewMaintenanceTask() *asynq.Task {
	return asynq.NewTask(TaskMaintenance, nil)
}

// Tasks bundles the services the handlers run against.
type Tasks struct {
	Finance   *finance.Service
	Ads       *adsreport.Service
	Activity  *activity.Repository
	Logins    auth.Repository
	Retention time.Duration
	Logger    *slog.Logger
}

// HandleReportWarmup recomputes the headline summaries through the report
// cache, so the recomputed values land under the current cache version.
func (t *Tasks) HandleReportWarmup(ctx context.Context, task *asynq.Task) error {
	var payload ReportWarmupPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	criteria := ledger.Criteria{Period: payload.Period, Kind: ledger.KindAll}
	if _, err := t.Finance.Summary(ctx, criteria); err != nil {
		return err
	}
	if _, err := t.Ads.Summary(ctx, ledger.Criteria{Period: payload.Period}); err != nil {
		return err
	}
	t.Logger.Info("report warmup done", slog.String("period", payload.Period))
	return nil
}

// HandleMaintenance prunes old activity and login-trail rows. Redis bearer
// tokens expire on their own TTL and need no sweeping.
func (t *Tasks) HandleMaintenance(ctx context.Context, task *asynq.Task) error {
	retention := t.Retention
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	removed, err := t.Activity.Prune(ctx, retention)
	if err != nil {
		return err
	}
	var logins int64
	if t.Logins != nil {
		logins, err = t.Logins.PruneLogins(ctx, retention)
		if err != nil {
			return err
		}
	}
	t.Logger.Info("maintenance prune done",
		slog.Int64("activity", removed),
		slog.Int64("logins", logins))
	return nil
}
