package repository

import (
	"context"
	"errors"

	"github.com/techstock/engine/internal/models"
	appErr "github.com/techstock/engine/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	BaseRepository[models.Application]
	List(ctx context.Context, offset, limit int) ([]models.Application, int64, error)
	GetByCode(ctx context.Context, code string) (*models.Application, error)
	Count(ctx context.Context) (int64, error)
	// LinkResource records the (resource, application, relation) association,
	// ignoring duplicates.
	LinkResource(ctx context.Context, resourceID, applicationID int64, relationType string) error
}

type applicationRepository struct {
	BaseRepository[models.Application]
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository[models.Application](db), db: db}
}

func (r *applicationRepository) List(ctx context.Context, offset, limit int) ([]models.Application, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&total).Error; err != nil {
		return nil, 0, appErr.Database(err, "count applications failed")
	}
	var out []models.Application
	err := r.db.WithContext(ctx).Order("code").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, 0, appErr.Database(err, "list applications failed")
	}
	return out, total, nil
}

// GetByCode returns nil without error when no application has the code.
func (r *applicationRepository) GetByCode(ctx context.Context, code string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.Database(err, "get application by code failed")
	}
	return &a, nil
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&n).Error; err != nil {
		return 0, appErr.Database(err, "count applications failed")
	}
	return n, nil
}

func (r *applicationRepository) LinkResource(ctx context.Context, resourceID, applicationID int64, relationType string) error {
	link := models.ResourceApplicationLink{
		ResourceID:    resourceID,
		ApplicationID: applicationID,
		RelationType:  relationType,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return appErr.Database(err, "link resource to application failed")
	}
	return nil
}
