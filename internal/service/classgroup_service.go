package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type classGroupRepo interface {
	List(ctx context.Context) ([]models.ClassGroup, error)
	FindByID(ctx context.Context, id string) (*models.ClassGroup, error)
	Create(ctx context.Context, group *models.ClassGroup) error
	Update(ctx context.Context, group *models.ClassGroup) error
	Delete(ctx context.Context, id string) error
	ActiveStudents(ctx context.Context, classGroupID string) ([]models.StudentDetail, error)
}

// ClassGroupRequest is the class-group create/update payload.
type ClassGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// ClassGroupService manages class groups and their rosters.
type ClassGroupService struct {
	groups    classGroupRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassGroupService constructs ClassGroupService.
func NewClassGroupService(groups classGroupRepo, validate *validator.Validate, logger *zap.Logger) *ClassGroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassGroupService{groups: groups, validator: validate, logger: logger}
}

// List returns every class group.
func (s *ClassGroupService) List(ctx context.Context) ([]models.ClassGroup, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class groups")
	}
	if groups == nil {
		groups = []models.ClassGroup{}
	}
	return groups, nil
}

// Get fetches one class group.
func (s *ClassGroupService) Get(ctx context.Context, id string) (*models.ClassGroup, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class group")
	}
	return group, nil
}

// Detail returns the group together with its ACTIVE students ordered by
// name, the shape class-detail screens consume.
func (s *ClassGroupService) Detail(ctx context.Context, id string) (*models.ClassGroupDetail, error) {
	group, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	students, err := s.groups.ActiveStudents(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class group students")
	}
	if students == nil {
		students = []models.StudentDetail{}
	}
	return &models.ClassGroupDetail{ClassGroup: *group, Students: students}, nil
}

// Create registers a class group.
func (s *ClassGroupService) Create(ctx context.Context, req ClassGroupRequest) (*models.ClassGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class group payload")
	}
	group := &models.ClassGroup{Name: req.Name}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class group")
	}
	return group, nil
}

// Update renames a class group.
func (s *ClassGroupService) Update(ctx context.Context, id string, req ClassGroupRequest) (*models.ClassGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class group payload")
	}
	group, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Name = req.Name
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class group")
	}
	return group, nil
}

// Delete removes a class group.
func (s *ClassGroupService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class group")
	}
	return nil
}
