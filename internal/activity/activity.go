// Package activity serves the mutation trail written by the shared
// activity logger.
package activity

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/platform/httpx"
	"github.com/studio-kirana/kirana-erp/internal/rbac"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Entry is one recorded mutation, joined with the actor's name.
type Entry struct {
	ID         int64          `json:"id"`
	ActorID    int64          `json:"actor_id"`
	ActorName  string         `json:"actor_name,omitempty"`
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entity_id,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Repository reads activity_logs.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns entries newest first, optionally narrowed to one entity.
func (r *Repository) List(ctx context.Context, filters shared.ListFilters, entity string) ([]Entry, int, error) {
	query := `SELECT a.id, a.actor_id, COALESCE(u.full_name, ''), a.action, a.entity,
	            COALESCE(a.entity_id, ''), a.meta, a.occurred_at
	          FROM activity_logs a LEFT JOIN profiles u ON u.id = a.actor_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM activity_logs a WHERE 1=1`
	args := []any{}
	argCount := 0

	if entity != "" {
		argCount++
		clause := ` AND a.entity = $` + strconv.Itoa(argCount)
		query += clause
		countQuery += clause
		args = append(args, entity)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY a.occurred_at DESC, a.id DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.Action,
			&e.Entity, &e.EntityID, &e.Meta, &e.OccurredAt); err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

// Prune deletes entries older than the retention window, returning the
// number removed. Run from the nightly maintenance job.
func (r *Repository) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM activity_logs WHERE occurred_at < NOW() - make_interval(hours => $1)`,
		int(olderThan.Hours()))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Handler serves the admin-only listing endpoint.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
	gate   rbac.Middleware
}

func NewHandler(logger *slog.Logger, repo *Repository, gate rbac.Middleware) *Handler {
	return &Handler{logger: logger, repo: repo, gate: gate}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireRole(rbac.RoleAdmin))
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, total, err := h.repo.List(r.Context(), filters, r.URL.Query().Get("entity"))
	if err != nil {
		h.logger.Error("list activity", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"activity":   items,
		"pagination": shared.NewPagination(filters.Page, filters.Limit, total),
	})
}
