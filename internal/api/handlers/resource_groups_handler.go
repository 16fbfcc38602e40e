package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/services"
)

type ResourceGroupsHandler struct {
	svc       services.ResourceGroupService
	resources services.ResourceService
	validate  *validator.Validate
}

func NewResourceGroupsHandler(
	svc services.ResourceGroupService,
	resources services.ResourceService,
	v *validator.Validate,
) *ResourceGroupsHandler {
	return &ResourceGroupsHandler{svc: svc, resources: resources, validate: v}
}

func (h *ResourceGroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResourceGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	g, err := h.svc.CreateResourceGroup(r.Context(), &services.CreateResourceGroupInput{
		Name:           req.Name,
		SubscriptionID: req.SubscriptionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, g)
}

func (h *ResourceGroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, pagination, err := h.svc.ListResourceGroups(r.Context(), pageParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, groups, pagination)
}

func (h *ResourceGroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := h.svc.GetResourceGroup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, g)
}

func (h *ResourceGroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateResourceGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	g, err := h.svc.UpdateResourceGroup(r.Context(), id, &services.UpdateResourceGroupInput{
		Name:           req.Name,
		SubscriptionID: req.SubscriptionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, g)
}

func (h *ResourceGroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteResourceGroup(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceGroupsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := h.resources.ListByResourceGroup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}
