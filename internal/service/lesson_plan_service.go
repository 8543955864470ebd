package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

type lessonPlanRepo interface {
	ListByTeacher(ctx context.Context, teacherUserID string) ([]models.LessonPlan, error)
	Create(ctx context.Context, plan *models.LessonPlan) error
}

type teacherSubjectLister interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
}

// LessonPlanRequest is the lesson-plan creation payload.
type LessonPlanRequest struct {
	SubjectID string    `json:"subject_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}

// LessonPlanService serves teachers their own lesson plans.
type LessonPlanService struct {
	plans     lessonPlanRepo
	subjects  teacherSubjectLister
	teachers  subjectTeacherChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonPlanService constructs LessonPlanService.
func NewLessonPlanService(plans lessonPlanRepo, subjects teacherSubjectLister, teachers subjectTeacherChecker, validate *validator.Validate, logger *zap.Logger) *LessonPlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonPlanService{plans: plans, subjects: subjects, teachers: teachers, validator: validate, logger: logger}
}

// Mine returns the caller's lesson plans ordered by date, together with the
// subjects they teach.
func (s *LessonPlanService) Mine(ctx context.Context, ident models.Identity) (*models.TeacherLessonPlans, error) {
	if ident.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers have lesson plans")
	}
	plans, err := s.plans.ListByTeacher(ctx, ident.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson plans")
	}
	subjects, err := s.subjects.List(ctx, models.SubjectFilter{TaughtByUserID: ident.UserID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if plans == nil {
		plans = []models.LessonPlan{}
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return &models.TeacherLessonPlans{LessonPlans: plans, Subjects: subjects}, nil
}

// Create records a lesson plan for a subject the caller teaches.
func (s *LessonPlanService) Create(ctx context.Context, ident models.Identity, req LessonPlanRequest) (*models.LessonPlan, error) {
	if ident.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers may record lesson plans")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson plan payload")
	}
	teaches, err := s.teachers.TeachesSubject(ctx, ident.UserID, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject assignment")
	}
	if !teaches {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not have permission for this subject")
	}
	plan := &models.LessonPlan{SubjectID: req.SubjectID, Date: req.Date, Content: req.Content}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson plan")
	}
	return plan, nil
}
