package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/query"
	appErr "github.com/techstock/engine/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.APIResponse{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, p query.Pagination) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: data, Meta: types.MetaFromPagination(p)})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.StatusFromError(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeInvalid(w http.ResponseWriter, msg string) {
	writeError(w, appErr.InvalidInput(msg))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, appErr.InvalidInput("id must be an integer")
	}
	return id, nil
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string) *int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func queryInt64(r *http.Request, key string) *int64 {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func pageParams(r *http.Request) query.PageParams {
	return query.PageParams{Page: queryInt(r, "page"), Size: queryInt(r, "size")}
}

func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return appErr.InvalidInput("invalid json body")
	}
	return nil
}
