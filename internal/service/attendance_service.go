package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/scope"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type attendanceRepo interface {
	ListAbsences(ctx context.Context, filter models.AbsenceFilter) ([]models.Absence, error)
	FindAbsenceByID(ctx context.Context, id string) (*models.Absence, error)
	CreateAbsence(ctx context.Context, absence *models.Absence) error
	UpdateAbsence(ctx context.Context, absence *models.Absence) error
	DeleteAbsence(ctx context.Context, id string) error
}

// AbsenceRequest is the absence create/update payload.
type AbsenceRequest struct {
	StudentID string    `json:"student_id" validate:"required"`
	SubjectID string    `json:"subject_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
}

// AttendanceService exposes scoped absence reads and teacher-gated
// absence mutation.
type AttendanceService struct {
	attendance attendanceRepo
	teachers   subjectTeacherChecker
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(attendance attendanceRepo, teachers subjectTeacherChecker, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{attendance: attendance, teachers: teachers, validator: validate, logger: logger}
}

// ListAbsences returns the absences visible to the caller. Insufficient
// scope yields an empty list, never an error.
func (s *AttendanceService) ListAbsences(ctx context.Context, ident models.Identity, filter models.AbsenceFilter) ([]models.Absence, error) {
	switch scope.For(ident, scope.KindAbsence) {
	case scope.AccessNone:
		return []models.Absence{}, nil
	case scope.AccessOwnStudent:
		filter.OwnStudentID = ident.StudentProfileID
	case scope.AccessTaughtSubjects:
		filter.TaughtByUserID = ident.UserID
	}
	absences, err := s.attendance.ListAbsences(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list absences")
	}
	if absences == nil {
		absences = []models.Absence{}
	}
	return absences, nil
}

// CreateAbsence records an absence for a subject the caller teaches.
func (s *AttendanceService) CreateAbsence(ctx context.Context, ident models.Identity, req AbsenceRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}
	if err := s.requireTeaches(ctx, ident, req.SubjectID); err != nil {
		return nil, err
	}
	absence := &models.Absence{StudentID: req.StudentID, SubjectID: req.SubjectID, Date: req.Date}
	if err := s.attendance.CreateAbsence(ctx, absence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create absence")
	}
	return absence, nil
}

// UpdateAbsence rewrites an absence within the caller's teaching scope.
func (s *AttendanceService) UpdateAbsence(ctx context.Context, ident models.Identity, id string, req AbsenceRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}
	absence, err := s.findOwnedAbsence(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if req.SubjectID != absence.SubjectID {
		if err := s.requireTeaches(ctx, ident, req.SubjectID); err != nil {
			return nil, err
		}
	}
	absence.StudentID = req.StudentID
	absence.SubjectID = req.SubjectID
	absence.Date = req.Date
	if err := s.attendance.UpdateAbsence(ctx, absence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update absence")
	}
	return absence, nil
}

// DeleteAbsence removes an absence within the caller's teaching scope.
func (s *AttendanceService) DeleteAbsence(ctx context.Context, ident models.Identity, id string) error {
	absence, err := s.findOwnedAbsence(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := s.attendance.DeleteAbsence(ctx, absence.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete absence")
	}
	return nil
}

func (s *AttendanceService) requireTeaches(ctx context.Context, ident models.Identity, subjectID string) error {
	if ident.Role != models.RoleTeacher {
		return appErrors.Clone(appErrors.ErrForbidden, "only teachers may record absences")
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

func (s *AttendanceService) findOwnedAbsence(ctx context.Context, ident models.Identity, id string) (*models.Absence, error) {
	absence, err := s.attendance.FindAbsenceByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "absence not found or not yours")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load absence")
	}
	if err := s.requireTeaches(ctx, ident, absence.SubjectID); err != nil {
		// Outside the caller's scope is indistinguishable from missing.
		return nil, appErrors.Clone(appErrors.ErrForbidden, "absence not found or not yours")
	}
	return absence, nil
}
