package packages

import (
	"context"
	"errors"
	"strings"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Package, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Package, error) {
	if id <= 0 {
		return Package{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, pkg Package) (Package, error) {
	if err := validate(pkg); err != nil {
		return Package{}, err
	}
	return s.repo.Create(ctx, pkg)
}

func (s *Service) Update(ctx context.Context, id int64, pkg Package) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := validate(pkg); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, pkg)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(pkg Package) error {
	if strings.TrimSpace(pkg.Name) == "" {
		return errors.New("package name is required")
	}
	if pkg.Price < 0 {
		return errors.New("package price must not be negative")
	}
	return nil
}
