package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/scope"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type subjectRepo interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
	TeacherIDs(ctx context.Context, subjectID string) ([]string, error)
}

// SubjectRequest is the subject create/update payload.
type SubjectRequest struct {
	Name          string   `json:"name" validate:"required"`
	SubjectAreaID string   `json:"subject_area_id" validate:"required"`
	ClassGroupID  string   `json:"class_group_id" validate:"required"`
	TeacherIDs    []string `json:"teacher_ids"`
}

// SubjectService exposes visibility-scoped subject reads and
// coordinator-gated mutation.
type SubjectService struct {
	subjects  subjectRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(subjects subjectRepo, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{subjects: subjects, validator: validate, logger: logger}
}

// List returns the subjects visible to the caller. The class-group filter
// narrows the result before any role narrowing so grade-entry UIs can scope
// to one class.
func (s *SubjectService) List(ctx context.Context, ident models.Identity, filter models.SubjectFilter) ([]models.Subject, error) {
	switch scope.For(ident, scope.KindSubject) {
	case scope.AccessNone:
		return []models.Subject{}, nil
	case scope.AccessOwnClassGroup:
		filter.OwnClassGroupID = ident.ClassGroupID
	case scope.AccessTaughtSubjects:
		filter.TaughtByUserID = ident.UserID
	}
	subjects, err := s.subjects.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

// Get fetches one subject when it falls inside the caller's visibility.
// Out-of-scope and nonexistent subjects are indistinguishable.
func (s *SubjectService) Get(ctx context.Context, ident models.Identity, id string) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "subject not found or outside your scope")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	switch scope.For(ident, scope.KindSubject) {
	case scope.AccessAll:
	case scope.AccessOwnClassGroup:
		if subject.ClassGroupID != ident.ClassGroupID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "subject not found or outside your scope")
		}
	case scope.AccessTaughtSubjects:
		teacherIDs, err := s.subjects.TeacherIDs(ctx, subject.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject teachers")
		}
		if !contains(teacherIDs, ident.UserID) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "subject not found or outside your scope")
		}
		subject.TeacherIDs = teacherIDs
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "subject not found or outside your scope")
	}

	return subject, nil
}

// Create registers a new subject with its teacher assignments.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{
		Name:          req.Name,
		SubjectAreaID: req.SubjectAreaID,
		ClassGroupID:  req.ClassGroupID,
		TeacherIDs:    req.TeacherIDs,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update rewrites a subject and replaces its teacher assignments.
func (s *SubjectService) Update(ctx context.Context, id string, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	existing, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	existing.Name = req.Name
	existing.SubjectAreaID = req.SubjectAreaID
	existing.ClassGroupID = req.ClassGroupID
	existing.TeacherIDs = req.TeacherIDs
	if err := s.subjects.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return existing, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.subjects.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
