package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type subjectAreaRepo interface {
	List(ctx context.Context) ([]models.SubjectArea, error)
	FindByID(ctx context.Context, id string) (*models.SubjectArea, error)
	Create(ctx context.Context, area *models.SubjectArea) error
	Update(ctx context.Context, area *models.SubjectArea) error
	Delete(ctx context.Context, id string) error
}

// SubjectAreaRequest is the subject-area create/update payload.
type SubjectAreaRequest struct {
	Name string `json:"name" validate:"required"`
}

// SubjectAreaService manages the subject-area catalog.
type SubjectAreaService struct {
	areas     subjectAreaRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectAreaService constructs SubjectAreaService.
func NewSubjectAreaService(areas subjectAreaRepo, validate *validator.Validate, logger *zap.Logger) *SubjectAreaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectAreaService{areas: areas, validator: validate, logger: logger}
}

// List returns every subject area.
func (s *SubjectAreaService) List(ctx context.Context) ([]models.SubjectArea, error) {
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject areas")
	}
	if areas == nil {
		areas = []models.SubjectArea{}
	}
	return areas, nil
}

// Get fetches one subject area.
func (s *SubjectAreaService) Get(ctx context.Context, id string) (*models.SubjectArea, error) {
	area, err := s.areas.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject area not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject area")
	}
	return area, nil
}

// Create registers a subject area.
func (s *SubjectAreaService) Create(ctx context.Context, req SubjectAreaRequest) (*models.SubjectArea, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject area payload")
	}
	area := &models.SubjectArea{Name: req.Name}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject area")
	}
	return area, nil
}

// Update renames a subject area.
func (s *SubjectAreaService) Update(ctx context.Context, id string, req SubjectAreaRequest) (*models.SubjectArea, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject area payload")
	}
	area, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	area.Name = req.Name
	if err := s.areas.Update(ctx, area); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject area")
	}
	return area, nil
}

// Delete removes a subject area.
func (s *SubjectAreaService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.areas.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject area")
	}
	return nil
}
