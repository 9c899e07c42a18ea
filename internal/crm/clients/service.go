package clients

import (
	"context"
	"log/slog"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Service struct {
	repo     Repository
	activity *shared.ActivityLogger
	logger   *slog.Logger
}

func NewService(repo Repository, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Client, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actorID int64, form ClientForm) (Client, error) {
	created, err := s.repo.Create(ctx, form.Model(Client{}))
	if err != nil {
		return Client{}, err
	}
	s.record(ctx, actorID, "clients.create", created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, form ClientForm) (Client, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	updated := form.Model(current)
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Client{}, err
	}
	s.record(ctx, actorID, "clients.update", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "clients.delete", id)
	return nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "clients",
		EntityID: shared.FormatID(id),
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
