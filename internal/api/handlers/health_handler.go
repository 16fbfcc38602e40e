package handlers

import (
	"net/http"

	"gorm.io/gorm"

	appErr "github.com/techstock/engine/pkg/errors"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports ready only when the database answers a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeUnavailable, "database not reachable"))
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ready"})
}
