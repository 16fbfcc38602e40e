package repository

import (
	"context"
	"errors"

	"github.com/techstock/engine/internal/models"
	appErr "github.com/techstock/engine/pkg/errors"
	"gorm.io/gorm"
)

type ResourceGroupRepository interface {
	BaseRepository[models.ResourceGroup]
	List(ctx context.Context, offset, limit int) ([]models.ResourceGroup, int64, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error)
	GetByNameAndSubscription(ctx context.Context, name string, subscriptionID int64) (*models.ResourceGroup, error)
	Count(ctx context.Context) (int64, error)
	CountBySubscription(ctx context.Context, subscriptionID int64) (int64, error)
}

type resourceGroupRepository struct {
	BaseRepository[models.ResourceGroup]
	db *gorm.DB
}

func NewResourceGroupRepository(db *gorm.DB) ResourceGroupRepository {
	return &resourceGroupRepository{BaseRepository: NewBaseRepository[models.ResourceGroup](db), db: db}
}

func (r *resourceGroupRepository) List(ctx context.Context, offset, limit int) ([]models.ResourceGroup, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ResourceGroup{}).Count(&total).Error; err != nil {
		return nil, 0, appErr.Database(err, "count resource groups failed")
	}
	var out []models.ResourceGroup
	err := r.db.WithContext(ctx).Order("name").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, 0, appErr.Database(err, "list resource groups failed")
	}
	return out, total, nil
}

func (r *resourceGroupRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error) {
	var out []models.ResourceGroup
	err := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).Order("name").Find(&out).Error
	if err != nil {
		return nil, appErr.Database(err, "list resource groups by subscription failed")
	}
	return out, nil
}

// GetByNameAndSubscription returns nil without error when no group matches.
func (r *resourceGroupRepository) GetByNameAndSubscription(ctx context.Context, name string, subscriptionID int64) (*models.ResourceGroup, error) {
	var g models.ResourceGroup
	err := r.db.WithContext(ctx).
		Where("name = ? AND subscription_id = ?", name, subscriptionID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.Database(err, "get resource group by name failed")
	}
	return &g, nil
}

func (r *resourceGroupRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ResourceGroup{}).Count(&n).Error; err != nil {
		return 0, appErr.Database(err, "count resource groups failed")
	}
	return n, nil
}

func (r *resourceGroupRepository) CountBySubscription(ctx context.Context, subscriptionID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ResourceGroup{}).
		Where("subscription_id = ?", subscriptionID).Count(&n).Error
	if err != nil {
		return 0, appErr.Database(err, "count resource groups by subscription failed")
	}
	return n, nil
}
