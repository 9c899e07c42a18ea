package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/studio-kirana/kirana-erp/internal/activity"
	"github.com/studio-kirana/kirana-erp/internal/adsreport"
	"github.com/studio-kirana/kirana-erp/internal/auth"
	"github.com/studio-kirana/kirana-erp/internal/billing"
	"github.com/studio-kirana/kirana-erp/internal/crm/clients"
	"github.com/studio-kirana/kirana-erp/internal/crm/leads"
	"github.com/studio-kirana/kirana-erp/internal/finance"
	"github.com/studio-kirana/kirana-erp/internal/masterdata/companies"
	"github.com/studio-kirana/kirana-erp/internal/masterdata/packages"
	"github.com/studio-kirana/kirana-erp/internal/projects"
	"github.com/studio-kirana/kirana-erp/internal/shared"
	"github.com/studio-kirana/kirana-erp/internal/users"
	"github.com/studio-kirana/kirana-erp/internal/workorders"
	"github.com/studio-kirana/kirana-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config
	Tokens *shared.TokenManager

	AuthHandler      *auth.Handler
	FinanceHandler   *finance.Handler
	AdsHandler       *adsreport.Handler
	ClientHandler    *clients.Handler
	LeadHandler      *leads.Handler
	ProjectHandler   *projects.Handler
	InvoiceHandler   *billing.Handler
	SPKHandler       *workorders.Handler
	PackageHandler   *packages.Handler
	CompanyHandler   *companies.Handler
	UsersHandler     *users.Handler
	ActivityHandler  *activity.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Kirana defaults. Everything
// lives under /api; the only unauthenticated surfaces are /healthz and
// the login endpoint.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
		Tokens: params.Tokens,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/finances", params.FinanceHandler.MountRoutes)
		r.Route("/ads-reports", params.AdsHandler.MountRoutes)
		r.Route("/clients", params.ClientHandler.MountRoutes)
		r.Route("/leads", params.LeadHandler.MountRoutes)
		r.Route("/projects", params.ProjectHandler.MountRoutes)
		r.Route("/invoices", params.InvoiceHandler.MountRoutes)
		r.Route("/spks", params.SPKHandler.MountRoutes)
		r.Route("/packages", params.PackageHandler.MountRoutes)
		r.Route("/companies", params.CompanyHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/activity", params.ActivityHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
