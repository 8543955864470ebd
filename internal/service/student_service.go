package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/scope"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type studentRepo interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// CreateStudentRequest is the student-profile creation payload.
type CreateStudentRequest struct {
	UserID       string                  `json:"user_id" validate:"required"`
	ClassGroupID *string                 `json:"class_group_id"`
	Status       models.EnrollmentStatus `json:"status"`
}

// UpdateStudentRequest moves a student between class groups or changes
// their enrollment status.
type UpdateStudentRequest struct {
	ClassGroupID *string                 `json:"class_group_id"`
	Status       models.EnrollmentStatus `json:"status" validate:"required"`
}

// StudentService manages the student roster. Roster visibility is limited
// to the administrative tier; other roles receive empty listings.
type StudentService struct {
	students  studentRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(students studentRepo, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, validator: validate, logger: logger}
}

// List returns student details visible to the caller.
func (s *StudentService) List(ctx context.Context, ident models.Identity, filter models.StudentFilter) ([]models.StudentDetail, error) {
	if scope.For(ident, scope.KindStudent) != scope.AccessAll {
		return []models.StudentDetail{}, nil
	}
	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.StudentDetail{}
	}
	return students, nil
}

// Get fetches one student profile. A student may fetch their own profile;
// anything else requires full roster access.
func (s *StudentService) Get(ctx context.Context, ident models.Identity, id string) (*models.StudentDetail, error) {
	if scope.For(ident, scope.KindStudent) != scope.AccessAll && ident.StudentProfileID != id {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "student not found or outside your scope")
	}
	detail, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "student not found or outside your scope")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return detail, nil
}

// Create registers a student profile for an existing user account.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown enrollment status")
	}
	student := &models.Student{UserID: req.UserID, ClassGroupID: req.ClassGroupID, Status: status}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update changes a student's class group and enrollment status.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown enrollment status")
	}
	detail, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student := detail.Student
	student.ClassGroupID = req.ClassGroupID
	student.Status = req.Status
	if err := s.students.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return &student, nil
}

// Delete removes a student profile.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.students.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
