package handler

import (
	"net/http"
)

// Health is the liveness endpoint; it is allow-listed past admission.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthBoards verifies upstream connectivity using the first fully
// configured tenant as a probe. Deployments with no configured tenant
// cannot probe anything and report 503.
func (h *Handlers) HealthBoards(w http.ResponseWriter, r *http.Request) {
	probes := h.Directory.List()
	if len(probes) == 0 {
		respondError(w, http.StatusServiceUnavailable, "No configured tenant to probe")
		return
	}
	probe := probes[0]

	iter, err := h.Sprints.CurrentIteration(r.Context(), probe.Project, probe.Team)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "boards health probe failed", "error", err)
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"status": "error",
			"error":  "Board service unreachable",
		})
		return
	}

	current := ""
	if iter != nil {
		current = iter.Name
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":           "ok",
		"project":          probe.Project,
		"currentIteration": current,
	})
}
