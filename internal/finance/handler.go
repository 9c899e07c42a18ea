package finance

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/platform/httpx"
	"github.com/studio-kirana/kirana-erp/internal/rbac"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Handler wires the finance endpoints. Reads are open to any authenticated
// session; mutations require the finance or admin role.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	exporter *Exporter
	gate     rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, exporter *Exporter, gate rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, exporter: exporter, gate: gate}
}

// MountRoutes registers the finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireRole())
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/export.xlsx", h.exportXLSX)
	r.Get("/export.pdf", h.exportPDF)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireRole(rbac.RoleFinance, rbac.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

func criteriaFromQuery(r *http.Request) ledger.Criteria {
	return ledger.Criteria{
		Period: r.URL.Query().Get("period"),
		Kind:   ledger.Kind(r.URL.Query().Get("kind")),
		Search: r.URL.Query().Get("search"),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.List(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.logger.Error("list finances", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.logger.Error("finance summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	actorID, _ := shared.UserFromContext(r.Context())
	created, err := h.service.Create(r.Context(), actorID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	actorID, _ := shared.UserFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), actorID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	actorID, _ := shared.UserFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	entries, summary, err := h.service.Filtered(r.Context(), criteriaFromQuery(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+strconv.Quote("keuangan_"+time.Now().Format("20060102")+".xlsx"))
	if err := h.exporter.WriteXLSX(w, entries, summary); err != nil {
		// Headers are gone at this point; all we can do is log.
		h.logger.Error("write finance xlsx", slog.Any("error", err))
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	entries, summary, err := h.service.Filtered(r.Context(), criteriaFromQuery(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.exporter.RenderPDF(r.Context(), criteriaFromQuery(r).Period, entries, summary)
	if err != nil {
		h.logger.Error("render finance pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export Failed", "PDF rendering unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+strconv.Quote("keuangan_"+time.Now().Format("20060102")+".pdf"))
	_, _ = w.Write(pdf)
}
