package repository

import (
	"context"
	"errors"

	"github.com/techstock/engine/internal/models"
	appErr "github.com/techstock/engine/pkg/errors"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	BaseRepository[models.Subscription]
	List(ctx context.Context, offset, limit int) ([]models.Subscription, int64, error)
	GetByName(ctx context.Context, name string) (*models.Subscription, error)
	Count(ctx context.Context) (int64, error)
}

type subscriptionRepository struct {
	BaseRepository[models.Subscription]
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{BaseRepository: NewBaseRepository[models.Subscription](db), db: db}
}

func (r *subscriptionRepository) List(ctx context.Context, offset, limit int) ([]models.Subscription, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&total).Error; err != nil {
		return nil, 0, appErr.Database(err, "count subscriptions failed")
	}
	var out []models.Subscription
	err := r.db.WithContext(ctx).Order("name").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, 0, appErr.Database(err, "list subscriptions failed")
	}
	return out, total, nil
}

// GetByName returns nil without error when no subscription has the name.
func (r *subscriptionRepository) GetByName(ctx context.Context, name string) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.Database(err, "get subscription by name failed")
	}
	return &s, nil
}

func (r *subscriptionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&n).Error; err != nil {
		return 0, appErr.Database(err, "count subscriptions failed")
	}
	return n, nil
}
