package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/studio-kirana/kirana-erp/internal/auth"
	"github.com/studio-kirana/kirana-erp/internal/rbac"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Service administers profiles and their roles. Role reads go through the
// rbac repository so the gate and this listing always agree.
type Service struct {
	repo     Repository
	roles    *rbac.Repository
	activity *shared.ActivityLogger
	logger   *slog.Logger
}

func NewService(repo Repository, roles *rbac.Repository, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, roles: roles, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Profile, int, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Roles = s.rolesFor(ctx, items[i].ID)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Profile, error) {
	if id <= 0 {
		return Profile{}, shared.ErrNotFound
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.Roles = s.rolesFor(ctx, id)
	return p, nil
}

func (s *Service) Create(ctx context.Context, actorID int64, form ProfileForm) (Profile, error) {
	if form.Password == "" {
		return Profile{}, errors.New("password is required for new accounts")
	}
	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Email: form.Email, FullName: form.FullName, IsActive: true}
	if form.IsActive != nil {
		p.IsActive = *form.IsActive
	}
	created, err := s.repo.Create(ctx, p, hash)
	if err != nil {
		return Profile{}, err
	}
	s.record(ctx, actorID, "users.create", created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, form ProfileForm) (Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	current.Email = form.Email
	current.FullName = form.FullName
	if form.IsActive != nil {
		current.IsActive = *form.IsActive
	}
	var hash string
	if form.Password != "" {
		if hash, err = auth.HashPassword(form.Password); err != nil {
			return Profile{}, err
		}
	}
	if err := s.repo.Update(ctx, id, current, hash); err != nil {
		return Profile{}, err
	}
	s.record(ctx, actorID, "users.update", id)
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return errors.New("an account cannot delete itself")
	}
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "users.delete", id)
	return nil
}

// AssignRole grants a role, idempotently.
func (s *Service) AssignRole(ctx context.Context, actorID, id int64, raw string) (Profile, error) {
	role, ok := rbac.ParseRole(raw)
	if !ok {
		return Profile{}, errors.New("unknown role " + raw)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return Profile{}, err
	}
	if err := s.roles.Assign(ctx, id, role); err != nil {
		return Profile{}, err
	}
	s.record(ctx, actorID, "users.role.assign", id)
	return s.Get(ctx, id)
}

// RemoveRole revokes a role.
func (s *Service) RemoveRole(ctx context.Context, actorID, id int64, raw string) (Profile, error) {
	role, ok := rbac.ParseRole(raw)
	if !ok {
		return Profile{}, errors.New("unknown role " + raw)
	}
	if err := s.roles.Remove(ctx, id, role); err != nil {
		return Profile{}, err
	}
	s.record(ctx, actorID, "users.role.remove", id)
	return s.Get(ctx, id)
}

func (s *Service) rolesFor(ctx context.Context, id int64) []rbac.Role {
	if s.roles == nil {
		return nil
	}
	roles, err := s.roles.RolesFor(ctx, id)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("resolve roles", slog.Int64("user_id", id), slog.Any("error", err))
		}
		return nil
	}
	return roles
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "profiles",
		EntityID: shared.FormatID(id),
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
