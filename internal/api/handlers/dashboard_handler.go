package handlers

import (
	"net/http"

	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/services"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary serves the aggregated rollup, optionally scoped by subscription_id,
// resource_group_id, location, and environment query parameters.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	scope := query.Scope{
		SubscriptionID:  queryInt64(r, "subscription_id"),
		ResourceGroupID: queryInt64(r, "resource_group_id"),
		Location:        queryString(r, "location"),
		Environment:     queryString(r, "environment"),
	}

	summary, err := h.svc.Summary(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}
