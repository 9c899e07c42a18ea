package leads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studio-kirana/kirana-erp/internal/crm/clients"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Service runs the pipeline. Converting a closing lead creates the client
// record through the clients service so both sides log consistently.
type Service struct {
	repo     Repository
	clients  *clients.Service
	activity *shared.ActivityLogger
	logger   *slog.Logger
}

func NewService(repo Repository, clientSvc *clients.Service, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, clients: clientSvc, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters, status Status) ([]Lead, int, error) {
	if status != "" && !status.Known() {
		return nil, 0, fmt.Errorf("unknown lead status %q", status)
	}
	return s.repo.List(ctx, filters, status)
}

func (s *Service) Get(ctx context.Context, id int64) (Lead, error) {
	if id <= 0 {
		return Lead{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actorID int64, form LeadForm) (Lead, error) {
	created, err := s.repo.Create(ctx, form.Model(Lead{}))
	if err != nil {
		return Lead{}, err
	}
	s.record(ctx, actorID, "leads.create", created.ID, nil)
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, form LeadForm) (Lead, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Lead{}, err
	}
	updated := form.Model(current)
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Lead{}, err
	}
	s.record(ctx, actorID, "leads.update", id, nil)
	return updated, nil
}

// MoveStatus advances the pipeline. Moving to closing converts the lead
// into a client and links it; every other move just records the stage.
func (s *Service) MoveStatus(ctx context.Context, actorID, id int64, next Status) (Lead, error) {
	if !next.Known() {
		return Lead{}, fmt.Errorf("unknown lead status %q", next)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Lead{}, err
	}
	if !current.Status.CanMoveTo(next) {
		return Lead{}, fmt.Errorf("lead status %s cannot move to %s", current.Status, next)
	}

	var clientID *int64
	if next == StatusClosing && s.clients != nil {
		client, err := s.clients.Create(ctx, actorID, clients.ClientForm{
			Name:  current.Name,
			Phone: current.Phone,
			Email: current.Email,
		})
		if err != nil {
			return Lead{}, fmt.Errorf("convert lead to client: %w", err)
		}
		clientID = &client.ID
	}

	if err := s.repo.SetStatus(ctx, id, next, clientID); err != nil {
		return Lead{}, err
	}
	current.Status = next
	if clientID != nil {
		current.ClientID = clientID
	}
	s.record(ctx, actorID, "leads.status", id, map[string]any{"to": string(next)})
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "leads.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "leads",
		EntityID: shared.FormatID(id),
		Meta:     meta,
	}); err != nil && s.logger != nil {
		s.logger.Warn("record activity", slog.Any("error", err))
	}
}
