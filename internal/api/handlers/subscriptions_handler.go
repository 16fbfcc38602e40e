package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/services"
)

type SubscriptionsHandler struct {
	svc       services.SubscriptionService
	resources services.ResourceService
	groups    services.ResourceGroupService
	validate  *validator.Validate
}

func NewSubscriptionsHandler(
	svc services.SubscriptionService,
	resources services.ResourceService,
	groups services.ResourceGroupService,
	v *validator.Validate,
) *SubscriptionsHandler {
	return &SubscriptionsHandler{svc: svc, resources: resources, groups: groups, validate: v}
}

func (h *SubscriptionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	sub, err := h.svc.CreateSubscription(r.Context(), &services.CreateSubscriptionInput{
		Name:     req.Name,
		TenantID: req.TenantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sub)
}

func (h *SubscriptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, pagination, err := h.svc.ListSubscriptions(r.Context(), pageParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, subs, pagination)
}

func (h *SubscriptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.svc.GetSubscription(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sub)
}

func (h *SubscriptionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	sub, err := h.svc.UpdateSubscription(r.Context(), id, &services.UpdateSubscriptionInput{
		Name:     req.Name,
		TenantID: req.TenantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sub)
}

func (h *SubscriptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteSubscription(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubscriptionsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := h.resources.ListBySubscription(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}

func (h *SubscriptionsHandler) ResourceGroups(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := h.groups.ListBySubscription(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}
