package workorders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studio-kirana/kirana-erp/internal/masterdata/companies"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Service struct {
	repo      Repository
	companies *companies.Service
	activity  *shared.ActivityLogger
	logger    *slog.Logger
}

func NewService(repo Repository, companySvc *companies.Service, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, companies: companySvc, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]SPK, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (SPK, error) {
	if id <= 0 {
		return SPK{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Issue creates a work order numbered within the current month.
func (s *Service) Issue(ctx context.Context, actorID int64, form SPKForm) (SPK, error) {
	spk := form.Model(SPK{})
	spk.IssuedAt = time.Now().UTC()

	number, err := s.repo.GenerateNumber(ctx, spk.IssuedAt)
	if err != nil {
		return SPK{}, err
	}
	spk.Number = number

	created, err := s.repo.Create(ctx, spk)
	if err != nil {
		return SPK{}, err
	}
	s.record(ctx, actorID, "spks.create", created.ID, map[string]any{"number": created.Number})
	return created, nil
}

// Update changes the assignment without renumbering; the number records
// when the order was issued, not its current content.
func (s *Service) Update(ctx context.Context, actorID, id int64, form SPKForm) (SPK, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return SPK{}, err
	}
	updated := form.Model(current)
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return SPK{}, err
	}
	s.record(ctx, actorID, "spks.update", id, nil)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "spks.delete", id, nil)
	return nil
}

// Letterhead resolves the company profile for rendered documents.
func (s *Service) Letterhead(ctx context.Context) (companies.Company, error) {
	if s.companies == nil {
		return companies.Company{}, fmt.Errorf("workorders: company profile unavailable")
	}
	return s.companies.Default(ctx)
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "spks",
		EntityID: shared.FormatID(id),
		Meta:     meta,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
