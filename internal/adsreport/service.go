package adsreport

import (
	"context"
	"log/slog"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/platform/cache"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Service runs the aggregation over the stored reports and applies
// mutations. Derived figures are recomputed server-side on every write; a
// row's visible economics never drift from its inputs.
type Service struct {
	repo     Repository
	reports  *cache.ReportCache
	policy   ledger.TaxPolicy
	activity *shared.ActivityLogger
	logger   *slog.Logger
}

// NewService wires the repository with the report cache and tax policy.
func NewService(repo Repository, reports *cache.ReportCache, policy ledger.TaxPolicy, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, reports: reports, policy: policy, activity: activity, logger: logger}
}

// List returns the filtered reports, their summary and the month options.
func (s *Service) List(ctx context.Context, criteria ledger.Criteria) (ListView, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return ListView{}, err
	}

	filtered := ledger.FilterAds(entries, criteria)
	responses := make([]ReportResponse, 0, len(filtered))
	for _, e := range filtered {
		responses = append(responses, toResponse(e))
	}

	return ListView{
		Reports: responses,
		Summary: s.policy.SummarizeAds(filtered),
		Months:  monthOptions(entries),
	}, nil
}

// Filtered returns the raw filtered reports plus their summary for exports.
func (s *Service) Filtered(ctx context.Context, criteria ledger.Criteria) ([]ledger.AdEntry, ledger.AdsSummary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, ledger.AdsSummary{}, err
	}
	filtered := ledger.FilterAds(entries, criteria)
	return filtered, s.policy.SummarizeAds(filtered), nil
}

// Summary serves the period summary through the report cache. Every
// criteria field participates in the key so differently filtered requests
// never share an entry.
func (s *Service) Summary(ctx context.Context, criteria ledger.Criteria) (ledger.AdsSummary, error) {
	key, err := s.reports.Key(ctx, "ads", "summary", criteria.Period, string(criteria.Kind), criteria.Search)
	if err != nil {
		return ledger.AdsSummary{}, err
	}
	var summary ledger.AdsSummary
	err = s.reports.Fetch(ctx, key, &summary, func(ctx context.Context) (any, error) {
		_, fresh, err := s.Filtered(ctx, criteria)
		return fresh, err
	})
	return summary, err
}

// Create derives and stores a new daily report. Nothing reaches the store
// when validation fails.
func (s *Service) Create(ctx context.Context, actorID int64, req ReportRequest) (ledger.AdEntry, error) {
	entry, err := s.policy.ComputeAd(req.Input())
	if err != nil {
		return ledger.AdEntry{}, err
	}
	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return ledger.AdEntry{}, err
	}
	s.afterMutation(ctx, actorID, "ads.create", created.ID)
	return created, nil
}

// Update replaces the inputs of an existing report and rederives the rest.
func (s *Service) Update(ctx context.Context, actorID int64, id string, req ReportRequest) (ledger.AdEntry, error) {
	entry, err := s.policy.ComputeAd(req.Input())
	if err != nil {
		return ledger.AdEntry{}, err
	}
	if err := s.repo.Update(ctx, id, entry); err != nil {
		return ledger.AdEntry{}, err
	}
	entry.ID = id
	s.afterMutation(ctx, actorID, "ads.update", id)
	return entry, nil
}

// Delete removes a report permanently.
func (s *Service) Delete(ctx context.Context, actorID int64, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, actorID, "ads.delete", id)
	return nil
}

func (s *Service) afterMutation(ctx context.Context, actorID int64, action, entityID string) {
	if err := s.reports.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate report cache", slog.Any("error", err))
	}
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "ad_reports",
		EntityID: entityID,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}

// monthOptions lists the distinct month labels newest first, parsing the
// Indonesian labels to order them chronologically.
func monthOptions(entries []ledger.AdEntry) []string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Month)
	}
	return ledger.MonthOptions(labels)
}
