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

type ResourceGroupService interface {
	CreateResourceGroup(ctx context.Context, input *CreateResourceGroupInput) (*models.ResourceGroup, error)
	GetResourceGroup(ctx context.Context, id int64) (*models.ResourceGroup, error)
	ListResourceGroups(ctx context.Context, page query.PageParams) ([]models.ResourceGroup, query.Pagination, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error)
	UpdateResourceGroup(ctx context.Context, id int64, input *UpdateResourceGroupInput) (*models.ResourceGroup, error)
	DeleteResourceGroup(ctx context.Context, id int64) error
}

type CreateResourceGroupInput struct {
	Name           string
	SubscriptionID int64
}

type UpdateResourceGroupInput struct {
	Name           *string
	SubscriptionID *int64
}

type resourceGroupService struct {
	groups        repository.ResourceGroupRepository
	subscriptions repository.SubscriptionRepository
}

func NewResourceGroupService(
	groups repository.ResourceGroupRepository,
	subscriptions repository.SubscriptionRepository,
) ResourceGroupService {
	return &resourceGroupService{groups: groups, subscriptions: subscriptions}
}

var _ ResourceGroupService = (*resourceGroupService)(nil)

func (s *resourceGroupService) CreateResourceGroup(ctx context.Context, input *CreateResourceGroupInput) (*models.ResourceGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, appErr.InvalidInput("resource group name cannot be empty")
	}
	if err := s.checkSubscription(ctx, input.SubscriptionID); err != nil {
		return nil, err
	}

	// Name is unique per subscription, not globally.
	existing, err := s.groups.GetByNameAndSubscription(ctx, input.Name, input.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErr.AlreadyExists("ResourceGroup", "name in subscription", input.Name)
	}

	g := &models.ResourceGroup{Name: input.Name, SubscriptionID: input.SubscriptionID}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	logger.L().Info("resource group created", zap.Int64("resource_group_id", g.ID), zap.String("name", g.Name))
	return g, nil
}

func (s *resourceGroupService) GetResourceGroup(ctx context.Context, id int64) (*models.ResourceGroup, error) {
	var g models.ResourceGroup
	if err := s.groups.GetByID(ctx, id, &g); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.NotFound("ResourceGroup", id)
		}
		return nil, err
	}
	return &g, nil
}

func (s *resourceGroupService) ListResourceGroups(ctx context.Context, page query.PageParams) ([]models.ResourceGroup, query.Pagination, error) {
	p, size := query.NormalizePage(page)
	groups, total, err := s.groups.List(ctx, (p-1)*size, size)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return groups, query.NewPagination(p, size, total), nil
}

func (s *resourceGroupService) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error) {
	if err := s.checkSubscription(ctx, subscriptionID); err != nil {
		return nil, err
	}
	return s.groups.ListBySubscription(ctx, subscriptionID)
}

func (s *resourceGroupService) UpdateResourceGroup(ctx context.Context, id int64, input *UpdateResourceGroupInput) (*models.ResourceGroup, error) {
	g, err := s.GetResourceGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, appErr.InvalidInput("resource group name cannot be empty")
	}

	subscriptionID := g.SubscriptionID
	if input.SubscriptionID != nil {
		subscriptionID = *input.SubscriptionID
	}
	if err := s.checkSubscription(ctx, subscriptionID); err != nil {
		return nil, err
	}

	name := g.Name
	if input.Name != nil {
		name = *input.Name
	}
	if input.Name != nil || input.SubscriptionID != nil {
		conflicting, err := s.groups.GetByNameAndSubscription(ctx, name, subscriptionID)
		if err != nil {
			return nil, err
		}
		if conflicting != nil && conflicting.ID != id {
			return nil, appErr.AlreadyExists("ResourceGroup", "name in subscription", name)
		}
	}
	g.Name = name
	g.SubscriptionID = subscriptionID

	if err := s.groups.Update(ctx, g); err != nil {
		return nil, err
	}
	logger.L().Info("resource group updated", zap.Int64("resource_group_id", id))
	return g, nil
}

func (s *resourceGroupService) DeleteResourceGroup(ctx context.Context, id int64) error {
	if _, err := s.GetResourceGroup(ctx, id); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("resource group deleted", zap.Int64("resource_group_id", id))
	return nil
}

func (s *resourceGroupService) checkSubscription(ctx context.Context, id int64) error {
	var sub models.Subscription
	if err := s.subscriptions.GetByID(ctx, id, &sub); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.NotFound("Subscription", id)
		}
		return err
	}
	return nil
}
