package services

import (
	"context"
	"strings"

	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/repository"
	appErr "github.com/techstock/engine/pkg/errors"
	"github.com/techstock/engine/pkg/logger"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, input *CreateSubscriptionInput) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, page query.PageParams) ([]models.Subscription, query.Pagination, error)
	UpdateSubscription(ctx context.Context, id int64, input *UpdateSubscriptionInput) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

type CreateSubscriptionInput struct {
	Name     string
	TenantID *string
}

type UpdateSubscriptionInput struct {
	Name     *string
	TenantID *string
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions}
}

var _ SubscriptionService = (*subscriptionService)(nil)

func (s *subscriptionService) CreateSubscription(ctx context.Context, input *CreateSubscriptionInput) (*models.Subscription, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, appErr.InvalidInput("subscription name cannot be empty")
	}

	existing, err := s.subscriptions.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErr.AlreadyExists("Subscription", "name", input.Name)
	}

	sub := &models.Subscription{Name: input.Name, TenantID: input.TenantID}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}
	logger.L().Info("subscription created", zap.Int64("subscription_id", sub.ID), zap.String("name", sub.Name))
	return sub, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.subscriptions.GetByID(ctx, id, &sub); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.NotFound("Subscription", id)
		}
		return nil, err
	}
	return &sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, page query.PageParams) ([]models.Subscription, query.Pagination, error) {
	p, size := query.NormalizePage(page)
	subs, total, err := s.subscriptions.List(ctx, (p-1)*size, size)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return subs, query.NewPagination(p, size, total), nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, id int64, input *UpdateSubscriptionInput) (*models.Subscription, error) {
	sub, err := s.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, appErr.InvalidInput("subscription name cannot be empty")
		}
		existing, err := s.subscriptions.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, appErr.AlreadyExists("Subscription", "name", *input.Name)
		}
		sub.Name = *input.Name
	}
	if input.TenantID != nil {
		sub.TenantID = input.TenantID
	}

	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}
	logger.L().Info("subscription updated", zap.Int64("subscription_id", id))
	return sub, nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, id int64) error {
	if _, err := s.GetSubscription(ctx, id); err != nil {
		return err
	}
	if err := s.subscriptions.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("subscription deleted", zap.Int64("subscription_id", id))
	return nil
}
