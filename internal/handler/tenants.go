package handler

import (
	"fmt"
	"net/http"
)

// tenantListItem is the public directory listing entry.
type tenantListItem struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
	OrgID       string `json:"orgId"`
	URL         string `json:"url"`
}

// Tenants lists the fully configured tenants with their dashboard URLs.
// Incomplete entries resolve for admission but are never advertised here.
func (h *Handlers) Tenants(w http.ResponseWriter, r *http.Request) {
	configured := h.Directory.List()

	items := make([]tenantListItem, 0, len(configured))
	for _, t := range configured {
		items = append(items, tenantListItem{
			Slug:        t.Slug,
			DisplayName: t.DisplayName,
			OrgID:       t.OrgID,
			URL:         fmt.Sprintf("https://%s.%s", t.Slug, h.AppDomain),
		})
	}

	respondJSON(w, http.StatusOK, items)
}
