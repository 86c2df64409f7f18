package handler

import (
	"net/http"
	"time"

	"github.com/velais/sprintgate/internal/boards"
	"github.com/velais/sprintgate/pkg/tenant"
)

// sprintStories resolves the tenant's current iteration and returns its
// transformed stories. A nil iteration with nil error means the tenant has
// no active sprint.
func (h *Handlers) sprintStories(r *http.Request, tc tenant.Context) (*boards.Iteration, []boards.Story, error) {
	ctx := r.Context()

	iter, err := h.Sprints.CurrentIteration(ctx, tc.Tenant.Project, tc.Tenant.Team)
	if err != nil || iter == nil {
		return iter, nil, err
	}

	ids, err := h.Sprints.QueryWorkItemIDs(ctx, tc.Tenant.Project, iter.Path)
	if err != nil {
		return nil, nil, err
	}

	items, err := h.Sprints.WorkItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	stories := make([]boards.Story, 0, len(items))
	for _, item := range items {
		stories = append(stories, boards.TransformWorkItem(item, now))
	}
	return iter, stories, nil
}

// requireConfiguredTenant fetches the request's tenant context and rejects
// tenants without routing attributes. Lookups admit incomplete tenants, so
// the check belongs here where routing is actually needed.
func (h *Handlers) requireConfiguredTenant(w http.ResponseWriter, r *http.Request) (tenant.Context, bool) {
	tc, ok := tenant.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return tenant.Context{}, false
	}
	if !tc.Tenant.Configured() {
		respondError(w, http.StatusServiceUnavailable, "Tenant not configured")
		return tenant.Context{}, false
	}
	return tc, true
}

// Summary aggregates the current sprint into the dashboard report.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	tc, ok := h.requireConfiguredTenant(w, r)
	if !ok {
		return
	}

	iter, stories, err := h.sprintStories(r, tc)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "summary fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, "Failed to fetch summary from the board service")
		return
	}
	if iter == nil {
		respondError(w, http.StatusNotFound, "No active sprint found")
		return
	}

	respondJSON(w, http.StatusOK, boards.BuildSummary(stories, tc.Tenant.Project, iter, time.Now()))
}

// Stories lists the current sprint's stories. A tenant with no active
// sprint gets an empty list rather than an error.
func (h *Handlers) Stories(w http.ResponseWriter, r *http.Request) {
	tc, ok := h.requireConfiguredTenant(w, r)
	if !ok {
		return
	}

	iter, stories, err := h.sprintStories(r, tc)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "stories fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, "Failed to fetch stories from the board service")
		return
	}
	if iter == nil {
		respondJSON(w, http.StatusOK, []boards.Story{})
		return
	}

	respondJSON(w, http.StatusOK, stories)
}

// Iterations reports the current sprint's timing.
func (h *Handlers) Iterations(w http.ResponseWriter, r *http.Request) {
	tc, ok := h.requireConfiguredTenant(w, r)
	if !ok {
		return
	}

	iter, err := h.Sprints.CurrentIteration(r.Context(), tc.Tenant.Project, tc.Tenant.Team)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "iterations fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, "Failed to fetch iterations from the board service")
		return
	}
	if iter == nil {
		respondError(w, http.StatusNotFound, "No active sprint found")
		return
	}

	respondJSON(w, http.StatusOK, boards.BuildIterationInfo(iter, time.Now()))
}
