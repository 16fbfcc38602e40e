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

type ApplicationService interface {
	CreateApplication(ctx context.Context, input *CreateApplicationInput) (*models.Application, error)
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	ListApplications(ctx context.Context, page query.PageParams) ([]models.Application, query.Pagination, error)
	UpdateApplication(ctx context.Context, id int64, input *UpdateApplicationInput) (*models.Application, error)
	DeleteApplication(ctx context.Context, id int64) error
}

type CreateApplicationInput struct {
	Code       *string
	Name       *string
	OwnerTeam  *string
	OwnerEmail *string
}

type UpdateApplicationInput struct {
	Code       *string
	Name       *string
	OwnerTeam  *string
	OwnerEmail *string
}

type applicationService struct {
	applications repository.ApplicationRepository
}

func NewApplicationService(applications repository.ApplicationRepository) ApplicationService {
	return &applicationService{applications: applications}
}

var _ ApplicationService = (*applicationService)(nil)

func (s *applicationService) CreateApplication(ctx context.Context, input *CreateApplicationInput) (*models.Application, error) {
	if input.Code != nil {
		if strings.TrimSpace(*input.Code) == "" {
			return nil, appErr.InvalidInput("application code cannot be empty")
		}
		existing, err := s.applications.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, appErr.AlreadyExists("Application", "code", *input.Code)
		}
	}
	if err := checkOwnerEmail(input.OwnerEmail); err != nil {
		return nil, err
	}

	a := &models.Application{
		Code:       input.Code,
		Name:       input.Name,
		OwnerTeam:  input.OwnerTeam,
		OwnerEmail: input.OwnerEmail,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		return nil, err
	}
	logger.L().Info("application created", zap.Int64("application_id", a.ID))
	return a, nil
}

func (s *applicationService) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	var a models.Application
	if err := s.applications.GetByID(ctx, id, &a); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.NotFound("Application", id)
		}
		return nil, err
	}
	return &a, nil
}

func (s *applicationService) ListApplications(ctx context.Context, page query.PageParams) ([]models.Application, query.Pagination, error) {
	p, size := query.NormalizePage(page)
	apps, total, err := s.applications.List(ctx, (p-1)*size, size)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return apps, query.NewPagination(p, size, total), nil
}

func (s *applicationService) UpdateApplication(ctx context.Context, id int64, input *UpdateApplicationInput) (*models.Application, error) {
	a, err := s.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		if strings.TrimSpace(*input.Code) == "" {
			return nil, appErr.InvalidInput("application code cannot be empty")
		}
		existing, err := s.applications.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, appErr.AlreadyExists("Application", "code", *input.Code)
		}
		a.Code = input.Code
	}
	if err := checkOwnerEmail(input.OwnerEmail); err != nil {
		return nil, err
	}
	if input.Name != nil {
		a.Name = input.Name
	}
	if input.OwnerTeam != nil {
		a.OwnerTeam = input.OwnerTeam
	}
	if input.OwnerEmail != nil {
		a.OwnerEmail = input.OwnerEmail
	}

	if err := s.applications.Update(ctx, a); err != nil {
		return nil, err
	}
	logger.L().Info("application updated", zap.Int64("application_id", id))
	return a, nil
}

func (s *applicationService) DeleteApplication(ctx context.Context, id int64) error {
	if _, err := s.GetApplication(ctx, id); err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("application deleted", zap.Int64("application_id", id))
	return nil
}

func checkOwnerEmail(email *string) error {
	if email == nil {
		return nil
	}
	if !strings.Contains(*email, "@") {
		return appErr.InvalidInput("owner email must be a valid email address")
	}
	return nil
}
