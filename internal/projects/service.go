package projects

import (
	"context"
	"fmt"
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

func (s *Service) List(ctx context.Context, filters shared.ListFilters, status Status) ([]Project, int, error) {
	if status != "" && !status.Known() {
		return nil, 0, fmt.Errorf("unknown project status %q", status)
	}
	return s.repo.List(ctx, filters, status)
}

func (s *Service) Get(ctx context.Context, id int64) (Project, error) {
	if id <= 0 {
		return Project{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actorID int64, form ProjectForm) (Project, error) {
	p := form.Model(Project{})
	if !p.Status.Known() {
		return Project{}, fmt.Errorf("unknown project status %q", p.Status)
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Project{}, err
	}
	s.record(ctx, actorID, "projects.create", created.ID, nil)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, form ProjectForm) (Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	updated := form.Model(current)
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Project{}, err
	}
	s.record(ctx, actorID, "projects.update", id, nil)
	return updated, nil
}

// SetStatus moves the build stage. Stages are not ordered strictly; a
// cancelled build can be requeued, so only the stage name is validated.
func (s *Service) SetStatus(ctx context.Context, actorID, id int64, status Status) (Project, error) {
	if !status.Known() {
		return Project{}, fmt.Errorf("unknown project status %q", status)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return Project{}, err
	}
	current.Status = status
	s.record(ctx, actorID, "projects.status", id, map[string]any{"to": string(status)})
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "projects.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "projects",
		EntityID: shared.FormatID(id),
		Meta:     meta,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
