package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/services"
)

type ApplicationsHandler struct {
	svc       services.ApplicationService
	resources services.ResourceService
	validate  *validator.Validate
}

func NewApplicationsHandler(
	svc services.ApplicationService,
	resources services.ResourceService,
	v *validator.Validate,
) *ApplicationsHandler {
	return &ApplicationsHandler{svc: svc, resources: resources, validate: v}
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	a, err := h.svc.CreateApplication(r.Context(), &services.CreateApplicationInput{
		Code:       req.Code,
		Name:       req.Name,
		OwnerTeam:  req.OwnerTeam,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, pagination, err := h.svc.ListApplications(r.Context(), pageParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, apps, pagination)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.svc.GetApplication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *ApplicationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	a, err := h.svc.UpdateApplication(r.Context(), id, &services.UpdateApplicationInput{
		Code:       req.Code,
		Name:       req.Name,
		OwnerTeam:  req.OwnerTeam,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteApplication(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApplicationsHandler) Resources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.svc.GetApplication(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	records, err := h.resources.ListByApplication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, records)
}
