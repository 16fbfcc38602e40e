package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/techstock/engine/internal/services"
	"github.com/techstock/engine/pkg/logger"
	"go.uber.org/zap"
)

// TypeCatalogImport is the task type for full catalog CSV imports.
const TypeCatalogImport = "catalog:import"

// ImportPayload is the task payload for catalog import tasks.
type ImportPayload struct {
	Path string `json:"path"`
}

// NewCatalogImportTask builds the asynq task for importing the CSV at path.
func NewCatalogImportTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImportPayload{Path: path})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCatalogImport, payload), nil
}

// ImportTaskHandler handles catalog import tasks.
type ImportTaskHandler struct {
	importSvc services.ImportService
}

func NewImportTaskHandler(importSvc services.ImportService) *ImportTaskHandler {
	return &ImportTaskHandler{importSvc: importSvc}
}

func (h *ImportTaskHandler) HandleImport(ctx context.Context, t *asynq.Task) error {
	var p ImportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid import task payload", zap.Error(err))
		return err
	}

	logger.L().Info("handling catalog import task", zap.String("path", p.Path))

	report, err := h.importSvc.ImportCSV(ctx, p.Path)
	if err != nil {
		logger.L().Error("catalog import failed", zap.String("path", p.Path), zap.Error(err))
		return err
	}

	logger.L().Info("catalog import task done",
		zap.String("path", p.Path),
		zap.Int("records", report.Records),
		zap.Int("applications", report.Applications),
		zap.Int("linked", report.Linked))
	return nil
}
