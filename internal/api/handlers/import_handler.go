package handlers

import (
	"net/http"

	"github.com/hibiken/asynq"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/queue/tasks"
	appErr "github.com/techstock/engine/pkg/errors"
	"github.com/techstock/engine/pkg/logger"
	"go.uber.org/zap"
)

// ImportHandler enqueues catalog import runs. The work itself happens on the
// worker; the API only hands the path off to the queue.
type ImportHandler struct {
	client      *asynq.Client
	defaultPath string
}

func NewImportHandler(client *asynq.Client, defaultPath string) *ImportHandler {
	return &ImportHandler{client: client, defaultPath: defaultPath}
}

func (h *ImportHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	path := req.Path
	if path == "" {
		path = h.defaultPath
	}

	task, err := tasks.NewCatalogImportTask(path)
	if err != nil {
		writeError(w, appErr.Internal(err, "build import task failed"))
		return
	}
	info, err := h.client.EnqueueContext(r.Context(), task)
	if err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeUnavailable, "enqueue import task failed"))
		return
	}

	logger.L().Info("catalog import enqueued", zap.String("task_id", info.ID), zap.String("path", path))
	writeData(w, http.StatusAccepted, map[string]string{
		"task_id": info.ID,
		"path":    path,
		"state":   info.State.String(),
	})
}
