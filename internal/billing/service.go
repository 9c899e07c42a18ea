package billing

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters, status Status) ([]Invoice, int, error) {
	if status != "" && !status.Known() {
		return nil, 0, fmt.Errorf("unknown invoice status %q", status)
	}
	return s.repo.List(ctx, filters, status)
}

func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create drafts an invoice with a generated number. The number is assigned
// at creation so drafts already occupy their slot in the yearly sequence.
func (s *Service) Create(ctx context.Context, actorID int64, form InvoiceForm) (Invoice, error) {
	inv := form.Model(Invoice{})
	inv.IssuedAt = time.Now().UTC()

	number, err := s.repo.GenerateNumber(ctx, inv.IssuedAt.Year())
	if err != nil {
		return Invoice{}, err
	}
	inv.Number = number

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return Invoice{}, err
	}
	s.record(ctx, actorID, "invoices.create", created.ID, map[string]any{"number": created.Number})
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, form InvoiceForm) (Invoice, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if current.Status == StatusPaid || current.Status == StatusVoid {
		return Invoice{}, fmt.Errorf("invoice %s is %s and can no longer change", current.Number, current.Status)
	}
	updated := form.Model(current)
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Invoice{}, err
	}
	s.record(ctx, actorID, "invoices.update", id, nil)
	return updated, nil
}

// SetStatus moves the lifecycle: draft → issued → paid, or void from any
// non-paid stage. Paying stamps paid_at.
func (s *Service) SetStatus(ctx context.Context, actorID, id int64, status Status) (Invoice, error) {
	if !status.Known() {
		return Invoice{}, fmt.Errorf("unknown invoice status %q", status)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if !allowedMove(current.Status, status) {
		return Invoice{}, fmt.Errorf("invoice status %s cannot move to %s", current.Status, status)
	}

	var paidAt *time.Time
	if status == StatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	}
	if err := s.repo.SetStatus(ctx, id, status, paidAt); err != nil {
		return Invoice{}, err
	}
	current.Status = status
	current.PaidAt = paidAt
	s.record(ctx, actorID, "invoices.status", id, map[string]any{"to": string(status)})
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusDraft {
		return fmt.Errorf("only draft invoices can be deleted; void %s instead", current.Number)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "invoices.delete", id, map[string]any{"number": current.Number})
	return nil
}

// Letterhead resolves the company profile for rendered documents.
func (s *Service) Letterhead(ctx context.Context) (companies.Company, error) {
	if s.companies == nil {
		return companies.Company{}, fmt.Errorf("billing: company profile unavailable")
	}
	return s.companies.Default(ctx)
}

func allowedMove(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusIssued || to == StatusVoid
	case StatusIssued:
		return to == StatusPaid || to == StatusVoid
	}
	return false
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "invoices",
		EntityID: shared.FormatID(id),
		Meta:     meta,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
