package companies

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

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	if id <= 0 {
		return Company{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Default resolves the letterhead profile for rendered documents.
func (s *Service) Default(ctx context.Context) (Company, error) {
	return s.repo.Default(ctx)
}

func (s *Service) Create(ctx context.Context, c Company) (Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Company{}, errors.New("company name is required")
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Company) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("company name is required")
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
