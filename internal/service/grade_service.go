package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/scope"
	"github.com/escola-dev/escola-api/pkg/database"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type gradeRepo interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error)
	FindForTeacher(ctx context.Context, id, teacherUserID string) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id string) error
}

type subjectTeacherChecker interface {
	TeachesSubject(ctx context.Context, userID, subjectID string) (bool, error)
}

// CreateGradeRequest is the single-grade creation payload.
type CreateGradeRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	SubjectID string  `json:"subject_id" validate:"required"`
	Value     float64 `json:"value" validate:"gte=0,lte=10"`
	Period    int     `json:"period" validate:"required,min=1,max=4"`
}

// UpdateGradeRequest is the single-grade update payload.
type UpdateGradeRequest struct {
	Value  float64 `json:"value" validate:"gte=0,lte=10"`
	Period int     `json:"period" validate:"required,min=1,max=4"`
}

// BulkGradeItem is one row of the bulk grade-entry payload. A missing ID
// means creation; a blank value means the row is skipped.
type BulkGradeItem struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	SubjectID string     `json:"subject_id"`
	Period    int        `json:"period"`
	Value     GradeValue `json:"value"`
}

// BulkGradesResult carries applied grades and per-item error strings, both
// in input order.
type BulkGradesResult struct {
	Applied []models.Grade `json:"applied"`
	Errors  []string       `json:"errors"`
}

// Partial reports whether at least one item failed.
func (r *BulkGradesResult) Partial() bool {
	return len(r.Errors) > 0
}

// GradeService orchestrates grade reads, single writes and the bulk
// grade-entry flow.
type GradeService struct {
	grades    gradeRepo
	teachers  subjectTeacherChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(grades gradeRepo, teachers subjectTeacherChecker, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{grades: grades, teachers: teachers, validator: validate, logger: logger}
}

// List returns the grades visible to the caller. Insufficient scope yields
// an empty list, never an error.
func (s *GradeService) List(ctx context.Context, ident models.Identity, filter models.GradeFilter) ([]models.Grade, error) {
	switch scope.For(ident, scope.KindGrade) {
	case scope.AccessNone:
		return []models.Grade{}, nil
	case scope.AccessOwnStudent:
		filter.OwnStudentID = ident.StudentProfileID
	case scope.AccessTaughtSubjects:
		filter.TaughtByUserID = ident.UserID
	}
	grades, err := s.grades.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	if grades == nil {
		grades = []models.Grade{}
	}
	return grades, nil
}

// Create records a single grade for a subject the caller teaches.
func (s *GradeService) Create(ctx context.Context, ident models.Identity, req CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if err := s.requireTeaches(ctx, ident, req.SubjectID); err != nil {
		return nil, err
	}
	grade := &models.Grade{StudentID: req.StudentID, SubjectID: req.SubjectID, Value: req.Value, Period: req.Period}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, s.translatePersistError(err, req.SubjectID)
	}
	return grade, nil
}

// Update rewrites a grade owned by the caller. A grade outside the caller's
// teaching scope is reported as not found.
func (s *GradeService) Update(ctx context.Context, ident models.Identity, id string, req UpdateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade, err := s.findOwned(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	grade.Value = req.Value
	grade.Period = req.Period
	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, s.translatePersistError(err, grade.SubjectID)
	}
	return grade, nil
}

// Delete removes a grade owned by the caller.
func (s *GradeService) Delete(ctx context.Context, ident models.Identity, id string) error {
	grade, err := s.findOwned(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := s.grades.Delete(ctx, grade.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade")
	}
	return nil
}

// BulkUpsert applies a batch of grade writes with per-item isolation. One
// item's failure never aborts its siblings; the applied and error lists
// keep input order. The caller must hold the teacher role.
func (s *GradeService) BulkUpsert(ctx context.Context, ident models.Identity, items []BulkGradeItem) (*BulkGradesResult, error) {
	if ident.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers may submit grades in bulk")
	}

	result := &BulkGradesResult{Applied: []models.Grade{}, Errors: []string{}}
	for _, item := range items {
		s.applyItem(ctx, ident, item, result)
	}
	return result, nil
}

func (s *GradeService) applyItem(ctx context.Context, ident models.Identity, item BulkGradeItem, result *BulkGradesResult) {
	label := item.ID
	if label == "" {
		label = "new"
	}

	// Blank cell: no change intended.
	if item.Value.Empty() {
		return
	}

	teaches, err := s.teachers.TeachesSubject(ctx, ident.UserID, item.SubjectID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: %v", label, err))
		return
	}
	if !teaches {
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: you do not have permission for this subject", label))
		return
	}

	if item.Value.Invalid() {
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: invalid grade value %q", label, item.Value.Raw()))
		return
	}

	if item.ID != "" {
		s.applyUpdate(ctx, ident, item, result)
		return
	}
	s.applyCreate(ctx, item, result, label)
}

func (s *GradeService) applyUpdate(ctx context.Context, ident models.Identity, item BulkGradeItem, result *BulkGradesResult) {
	grade, err := s.grades.FindForTeacher(ctx, item.ID, ident.UserID)
	if err != nil {
		if isNoRows(err) {
			// Outside the caller's scope is indistinguishable from missing.
			result.Errors = append(result.Errors, fmt.Sprintf("grade %s not found or not yours", item.ID))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: %v", item.ID, err))
		return
	}

	grade.Value = item.Value.Float()
	if item.Period != 0 {
		grade.Period = item.Period
	}
	req := UpdateGradeRequest{Value: grade.Value, Period: grade.Period}
	if err := s.validator.Struct(req); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: invalid grade data", item.ID))
		return
	}
	if err := s.grades.Update(ctx, grade); err != nil {
		result.Errors = append(result.Errors, s.itemErrorString(err, item.ID, item.SubjectID))
		return
	}
	result.Applied = append(result.Applied, *grade)
}

func (s *GradeService) applyCreate(ctx context.Context, item BulkGradeItem, result *BulkGradesResult, label string) {
	req := CreateGradeRequest{StudentID: item.StudentID, SubjectID: item.SubjectID, Value: item.Value.Float(), Period: item.Period}
	if err := s.validator.Struct(req); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("ID %s: invalid grade data", label))
		return
	}

	grade := &models.Grade{StudentID: item.StudentID, SubjectID: item.SubjectID, Value: item.Value.Float(), Period: item.Period}
	if err := s.grades.Create(ctx, grade); err != nil {
		result.Errors = append(result.Errors, s.itemErrorString(err, label, item.SubjectID))
		return
	}
	result.Applied = append(result.Applied, *grade)
}

func (s *GradeService) itemErrorString(err error, label, subjectID string) string {
	if database.IsUniqueViolation(err) {
		return fmt.Sprintf("subject %s: a grade for this student and period has already been recorded", subjectID)
	}
	s.logger.Warn("grade persist failed", zap.String("item", label), zap.Error(err))
	return fmt.Sprintf("ID %s: %v", label, err)
}

func (s *GradeService) translatePersistError(err error, subjectID string) error {
	if database.IsUniqueViolation(err) {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("subject %s: a grade for this student and period has already been recorded", subjectID))
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist grade")
}

func (s *GradeService) requireTeaches(ctx context.Context, ident models.Identity, subjectID string) error {
	if ident.Role != models.RoleTeacher {
		return appErrors.Clone(appErrors.ErrForbidden, "only teachers may record grades")
	}
	teaches, err := s.teachers.TeachesSubject(ctx, ident.UserID, subjectID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject assignment")
	}
	if !teaches {
		return appErrors.Clone(appErrors.ErrForbidden, "you do not have permission for this subject")
	}
	return nil
}

func (s *GradeService) findOwned(ctx context.Context, ident models.Identity, id string) (*models.Grade, error) {
	if ident.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers may modify grades")
	}
	grade, err := s.grades.FindForTeacher(ctx, id, ident.UserID)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("grade %s not found or not yours", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	return grade, nil
}
