package handlers

import (
	"net/http"
	"strings"

	"github.com/techstock/engine/internal/services"
)

type TagsHandler struct {
	svc services.TagService
}

func NewTagsHandler(svc services.TagService) *TagsHandler {
	return &TagsHandler{svc: svc}
}

func (h *TagsHandler) Available(w http.ResponseWriter, r *http.Request) {
	index, err := h.svc.AvailableTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, index)
}

func (h *TagsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeInvalid(w, "query parameter q is required")
		return
	}
	suggestions, err := h.svc.Suggestions(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, suggestions)
}
