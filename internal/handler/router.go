package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velais/sprintgate/internal/boards"
	"github.com/velais/sprintgate/pkg/respcache"
	"github.com/velais/sprintgate/pkg/secretguard"
	"github.com/velais/sprintgate/pkg/tenant"
)

// SprintService is the slice of the boards client the handlers use.
// Narrowed to an interface so tests can fake the upstream.
type SprintService interface {
	CurrentIteration(ctx context.Context, project, team string) (*boards.Iteration, error)
	QueryWorkItemIDs(ctx context.Context, project, iterationPath string) ([]int, error)
	WorkItems(ctx context.Context, ids []int) ([]boards.WorkItem, error)
}

// Handlers bundles the dependencies shared across routes.
type Handlers struct {
	Sprints   SprintService
	Directory *tenant.Directory
	AppDomain string
	Cache     *respcache.Store
	Logger    *slog.Logger
}

// Routes assembles the /api subtree. The admission and cache middleware are
// applied by the caller so their ordering stays in one place.
func (h *Handlers) Routes(refreshSecret string) chi.Router {
	if h.Logger == nil {
		h.Logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/health/boards", h.HealthBoards)
	r.Get("/tenants", h.Tenants)

	r.Get("/summary", h.Summary)
	r.Get("/stories", h.Stories)
	r.Get("/iterations", h.Iterations)

	r.Route("/internal", func(internal chi.Router) {
		internal.Use(secretguard.Middleware(refreshSecret))
		internal.Post("/flush", h.FlushCache)
	})

	return r
}

// FlushCache drops every cached response. Guarded by the shared secret;
// used by scheduled jobs after bulk board updates.
func (h *Handlers) FlushCache(w http.ResponseWriter, r *http.Request) {
	if h.Cache != nil {
		h.Cache.Clear()
	}
	h.Logger.InfoContext(r.Context(), "response cache flushed")
	respondJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}
