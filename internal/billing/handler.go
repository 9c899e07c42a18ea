package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/studio-kirana/kirana-erp/internal/platform/httpx"
	"github.com/studio-kirana/kirana-erp/internal/rbac"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Handler wires the invoice endpoints. Mutations are finance or admin.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	exporter  *Exporter
	gate      rbac.Middleware
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, exporter *Exporter, gate rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, exporter: exporter, gate: gate, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireRole())
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/pdf", h.exportPDF)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireRole(rbac.RoleFinance, rbac.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/status", h.setStatus)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (InvoiceForm, bool) {
	var form InvoiceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return form, false
	}
	if err := h.validator.Struct(form); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				fields[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
			}
		}
		httpx.ValidationProblem(w, fields)
		return form, false
	}
	return form, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	status := Status(r.URL.Query().Get("status"))
	items, total, err := h.service.List(r.Context(), filters, status)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"invoices":   items,
		"pagination": shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	actorID, _ := shared.UserFromContext(r.Context())
	created, err := h.service.Create(r.Context(), actorID, form)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	actorID, _ := shared.UserFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), actorID, id, form)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, err)
			return
		}
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid State", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status Status `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	actorID, _ := shared.UserFromContext(r.Context())
	moved, err := h.service.SetStatus(r.Context(), actorID, id, req.Status)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, err)
			return
		}
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Transition", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, moved)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	actorID, _ := shared.UserFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actorID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, err)
			return
		}
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid State", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	company, err := h.service.Letterhead(r.Context())
	if err != nil {
		h.logger.Warn("resolve letterhead", slog.Any("error", err))
	}
	pdf, err := h.exporter.RenderPDF(r.Context(), inv, company)
	if err != nil {
		h.logger.Error("render invoice pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export Failed", "PDF rendering unavailable")
		return
	}
	filename := strings.ReplaceAll(inv.Number, "/", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	_, _ = w.Write(pdf)
}
