package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/services"
)

type ResourcesHandler struct {
	svc      services.ResourceService
	validate *validator.Validate
}

func NewResourcesHandler(svc services.ResourceService, v *validator.Validate) *ResourcesHandler {
	return &ResourcesHandler{svc: svc, validate: v}
}

func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResourceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	res, err := h.svc.CreateResource(r.Context(), &services.CreateResourceInput{
		ExternalID:       req.ExternalID,
		Name:             req.Name,
		Type:             req.ResourceType,
		Kind:             req.Kind,
		Location:         req.Location,
		SubscriptionID:   req.SubscriptionID,
		ResourceGroupID:  req.ResourceGroupID,
		Tags:             req.Tags,
		ExtendedLocation: req.ExtendedLocation,
		Vendor:           req.Vendor,
		Environment:      req.Environment,
		Provisioner:      req.Provisioner,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *ResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := query.Filters{
		Type:            queryString(r, "resource_type"),
		Location:        queryString(r, "location"),
		Environment:     queryString(r, "environment"),
		Vendor:          queryString(r, "vendor"),
		SubscriptionID:  queryInt64(r, "subscription_id"),
		ResourceGroupID: queryInt64(r, "resource_group_id"),
		Search:          queryString(r, "search"),
		Tags:            queryString(r, "tags"),
	}
	sort := query.SortParams{Field: queryString(r, "sort_field")}
	if d := queryString(r, "sort_direction"); d != nil && *d == "desc" {
		desc := query.Descending
		sort.Direction = &desc
	}

	records, pagination, err := h.svc.ListResources(r.Context(), filters, sort, pageParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, records, pagination)
}

func (h *ResourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *ResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateResourceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	res, err := h.svc.UpdateResource(r.Context(), id, &services.UpdateResourceInput{
		ExternalID:       req.ExternalID,
		Name:             req.Name,
		Type:             req.ResourceType,
		Kind:             req.Kind,
		Location:         req.Location,
		SubscriptionID:   req.SubscriptionID,
		ResourceGroupID:  req.ResourceGroupID,
		Tags:             req.Tags,
		ExtendedLocation: req.ExtendedLocation,
		Vendor:           req.Vendor,
		Environment:      req.Environment,
		Provisioner:      req.Provisioner,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *ResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteResource(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourcesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *ResourcesHandler) ListByApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := h.svc.ListByApplication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}
