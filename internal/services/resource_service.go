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

type ResourceService interface {
	CreateResource(ctx context.Context, input *CreateResourceInput) (*models.Resource, error)
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	ListResources(ctx context.Context, filters query.Filters, sort query.SortParams, page query.PageParams) ([]models.Resource, query.Pagination, error)
	UpdateResource(ctx context.Context, id int64, input *UpdateResourceInput) (*models.Resource, error)
	DeleteResource(ctx context.Context, id int64) error

	ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error)
	ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error)

	Statistics(ctx context.Context) (*ResourceStatistics, error)
}

type CreateResourceInput struct {
	ExternalID       *string
	Name             string
	Type             string
	Kind             *string
	Location         string
	SubscriptionID   int64
	ResourceGroupID  int64
	Tags             map[string]string
	ExtendedLocation *string
	Vendor           *string
	Environment      *string
	Provisioner      *string
}

// UpdateResourceInput is a partial patch: present fields overwrite, absent
// fields are left untouched.
type UpdateResourceInput struct {
	ExternalID       *string
	Name             *string
	Type             *string
	Kind             *string
	Location         *string
	SubscriptionID   *int64
	ResourceGroupID  *int64
	Tags             map[string]string
	ExtendedLocation *string
	Vendor           *string
	Environment      *string
	Provisioner      *string
}

// ResourceStatistics holds the grouped counts per dimension.
type ResourceStatistics struct {
	ByType        []repository.Bucket `json:"by_type"`
	ByLocation    []repository.Bucket `json:"by_location"`
	ByEnvironment []repository.Bucket `json:"by_environment"`
}

type resourceService struct {
	resources     repository.ResourceRepository
	subscriptions repository.SubscriptionRepository
	groups        repository.ResourceGroupRepository
}

func NewResourceService(
	resources repository.ResourceRepository,
	subscriptions repository.SubscriptionRepository,
	groups repository.ResourceGroupRepository,
) ResourceService {
	return &resourceService{resources: resources, subscriptions: subscriptions, groups: groups}
}

var _ ResourceService = (*resourceService)(nil)

func (s *resourceService) CreateResource(ctx context.Context, input *CreateResourceInput) (*models.Resource, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, appErr.InvalidInput("resource name cannot be empty")
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, appErr.InvalidInput("resource type cannot be empty")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, appErr.InvalidInput("location cannot be empty")
	}

	if err := s.checkSubscription(ctx, input.SubscriptionID); err != nil {
		return nil, err
	}
	if err := s.checkResourceGroup(ctx, input.ResourceGroupID); err != nil {
		return nil, err
	}

	r := &models.Resource{
		ExternalID:       input.ExternalID,
		Name:             input.Name,
		Type:             input.Type,
		Kind:             input.Kind,
		Location:         input.Location,
		SubscriptionID:   input.SubscriptionID,
		ResourceGroupID:  input.ResourceGroupID,
		ExtendedLocation: input.ExtendedLocation,
		Vendor:           input.Vendor,
		Environment:      input.Environment,
		Provisioner:      input.Provisioner,
	}
	if err := r.SetTags(input.Tags); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid tags")
	}

	if err := s.resources.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := s.resources.UpsertTags(ctx, r.ID, input.Tags); err != nil {
		logger.L().Warn("mirroring resource tags failed", zap.Int64("resource_id", r.ID), zap.Error(err))
	}

	logger.L().Info("resource created", zap.Int64("resource_id", r.ID), zap.String("name", r.Name))
	return r, nil
}

func (s *resourceService) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	var r models.Resource
	if err := s.resources.GetByID(ctx, id, &r); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.NotFound("Resource", id)
		}
		return nil, err
	}
	return &r, nil
}

func (s *resourceService) ListResources(ctx context.Context, filters query.Filters, sort query.SortParams, page query.PageParams) ([]models.Resource, query.Pagination, error) {
	d := query.Compile(filters, sort, page)
	records, total, err := s.resources.List(ctx, d)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return records, query.NewPagination(d.Page, d.Size, total), nil
}

func (s *resourceService) UpdateResource(ctx context.Context, id int64, input *UpdateResourceInput) (*models.Resource, error) {
	r, err := s.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, appErr.InvalidInput("resource name cannot be empty")
		}
		r.Name = *input.Name
	}
	if input.Type != nil {
		if strings.TrimSpace(*input.Type) == "" {
			return nil, appErr.InvalidInput("resource type cannot be empty")
		}
		r.Type = *input.Type
	}
	if input.Location != nil {
		if strings.TrimSpace(*input.Location) == "" {
			return nil, appErr.InvalidInput("location cannot be empty")
		}
		r.Location = *input.Location
	}
	if input.SubscriptionID != nil {
		if err := s.checkSubscription(ctx, *input.SubscriptionID); err != nil {
			return nil, err
		}
		r.SubscriptionID = *input.SubscriptionID
	}
	if input.ResourceGroupID != nil {
		if err := s.checkResourceGroup(ctx, *input.ResourceGroupID); err != nil {
			return nil, err
		}
		r.ResourceGroupID = *input.ResourceGroupID
	}
	if input.ExternalID != nil {
		r.ExternalID = input.ExternalID
	}
	if input.Kind != nil {
		r.Kind = input.Kind
	}
	if input.ExtendedLocation != nil {
		r.ExtendedLocation = input.ExtendedLocation
	}
	if input.Vendor != nil {
		r.Vendor = input.Vendor
	}
	if input.Environment != nil {
		r.Environment = input.Environment
	}
	if input.Provisioner != nil {
		r.Provisioner = input.Provisioner
	}
	if input.Tags != nil {
		if err := r.SetTags(input.Tags); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid tags")
		}
	}

	if err := s.resources.Update(ctx, r); err != nil {
		return nil, err
	}
	if input.Tags != nil {
		if err := s.resources.UpsertTags(ctx, r.ID, input.Tags); err != nil {
			logger.L().Warn("mirroring resource tags failed", zap.Int64("resource_id", r.ID), zap.Error(err))
		}
	}

	logger.L().Info("resource updated", zap.Int64("resource_id", r.ID))
	return r, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, id int64) error {
	if _, err := s.GetResource(ctx, id); err != nil {
		return err
	}
	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("resource deleted", zap.Int64("resource_id", id))
	return nil
}

func (s *resourceService) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	if err := s.checkSubscription(ctx, subscriptionID); err != nil {
		return nil, err
	}
	return s.resources.ListBySubscription(ctx, subscriptionID)
}

func (s *resourceService) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	if err := s.checkResourceGroup(ctx, resourceGroupID); err != nil {
		return nil, err
	}
	return s.resources.ListByResourceGroup(ctx, resourceGroupID)
}

func (s *resourceService) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	return s.resources.ListByApplication(ctx, applicationID)
}

func (s *resourceService) Statistics(ctx context.Context) (*ResourceStatistics, error) {
	byType, err := s.resources.CountByType(ctx, query.Scope{})
	if err != nil {
		return nil, err
	}
	byLocation, err := s.resources.CountByLocation(ctx, query.Scope{})
	if err != nil {
		return nil, err
	}
	byEnvironment, err := s.resources.CountByEnvironment(ctx, query.Scope{})
	if err != nil {
		return nil, err
	}
	return &ResourceStatistics{ByType: byType, ByLocation: byLocation, ByEnvironment: byEnvironment}, nil
}

func (s *resourceService) checkSubscription(ctx context.Context, id int64) error {
	var sub models.Subscription
	if err := s.subscriptions.GetByID(ctx, id, &sub); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.NotFound("Subscription", id)
		}
		return err
	}
	return nil
}

func (s *resourceService) checkResourceGroup(ctx context.Context, id int64) error {
	var g models.ResourceGroup
	if err := s.groups.GetByID(ctx, id, &g); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.NotFound("ResourceGroup", id)
		}
		return err
	}
	return nil
}
