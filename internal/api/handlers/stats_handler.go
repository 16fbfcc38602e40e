package handlers

import (
	"net/http"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/repository"
)

// StatsHandler reports total row counts per entity.
type StatsHandler struct {
	resources     repository.ResourceRepository
	subscriptions repository.SubscriptionRepository
	groups        repository.ResourceGroupRepository
	applications  repository.ApplicationRepository
}

func NewStatsHandler(
	resources repository.ResourceRepository,
	subscriptions repository.SubscriptionRepository,
	groups repository.ResourceGroupRepository,
	applications repository.ApplicationRepository,
) *StatsHandler {
	return &StatsHandler{
		resources:     resources,
		subscriptions: subscriptions,
		groups:        groups,
		applications:  applications,
	}
}

func (h *StatsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resources, err := h.resources.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	subscriptions, err := h.subscriptions.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	groups, err := h.groups.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	applications, err := h.applications.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, types.StatsResponse{
		TotalResources:      resources,
		TotalSubscriptions:  subscriptions,
		TotalResourceGroups: groups,
		TotalApplications:   applications,
	})
}
