package finance

import (
	"context"
	"log/slog"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/platform/cache"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Service runs the ledger aggregation over the stored entries and applies
// mutations. The visible list only changes after the store confirms a
// mutation and the report cache is invalidated; there is no optimistic
// local update.
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

// List returns the filtered entries, their summary and the period options.
func (s *Service) List(ctx context.Context, criteria ledger.Criteria) (ListView, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return ListView{}, err
	}

	filtered := ledger.FilterFinance(entries, criteria)
	responses := make([]EntryResponse, 0, len(filtered))
	for _, e := range filtered {
		responses = append(responses, toResponse(e))
	}

	return ListView{
		Entries: responses,
		Summary: s.policy.SummarizeFinance(filtered),
		Periods: periodOptions(entries),
	}, nil
}

// Filtered returns the raw filtered entries plus their summary for exports.
func (s *Service) Filtered(ctx context.Context, criteria ledger.Criteria) ([]ledger.FinanceEntry, ledger.FinanceSummary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, ledger.FinanceSummary{}, err
	}
	filtered := ledger.FilterFinance(entries, criteria)
	return filtered, s.policy.SummarizeFinance(filtered), nil
}

// Summary serves the period summary through the report cache. Every
// criteria field participates in the key so differently filtered requests
// never share an entry.
func (s *Service) Summary(ctx context.Context, criteria ledger.Criteria) (ledger.FinanceSummary, error) {
	key, err := s.reports.Key(ctx, "finance", "summary", criteria.Period, string(criteria.Kind), criteria.Search)
	if err != nil {
		return ledger.FinanceSummary{}, err
	}
	var summary ledger.FinanceSummary
	err = s.reports.Fetch(ctx, key, &summary, func(ctx context.Context) (any, error) {
		_, fresh, err := s.Filtered(ctx, criteria)
		return fresh, err
	})
	return summary, err
}

// Create validates and stores a new entry. Nothing reaches the store when
// validation fails.
func (s *Service) Create(ctx context.Context, actorID int64, req EntryRequest) (ledger.FinanceEntry, error) {
	entry, err := ledger.ValidateFinance(req.Input())
	if err != nil {
		return ledger.FinanceEntry{}, err
	}
	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return ledger.FinanceEntry{}, err
	}
	s.afterMutation(ctx, actorID, "finance.create", created.ID)
	return created, nil
}

// Update replaces every field of an existing entry.
func (s *Service) Update(ctx context.Context, actorID int64, id string, req EntryRequest) (ledger.FinanceEntry, error) {
	entry, err := ledger.ValidateFinance(req.Input())
	if err != nil {
		return ledger.FinanceEntry{}, err
	}
	if err := s.repo.Update(ctx, id, entry); err != nil {
		return ledger.FinanceEntry{}, err
	}
	entry.ID = id
	s.afterMutation(ctx, actorID, "finance.update", id)
	return entry, nil
}

// Delete removes an entry permanently; there is no soft delete.
func (s *Service) Delete(ctx context.Context, actorID int64, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, actorID, "finance.delete", id)
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
		Entity:   "finances",
		EntityID: entityID,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}

// periodOptions lists the distinct month-year keys newest first. Entries
// arrive newest first already, so insertion order is the sort order.
func periodOptions(entries []ledger.FinanceEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	options := make([]string, 0, len(entries))
	for _, e := range entries {
		key := e.PeriodKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, key)
	}
	return options
}
