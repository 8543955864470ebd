package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

// PassThreshold is the minimum overall grade average counted as passing.
const PassThreshold = 6.0

const managementReportCacheKey = "reports:management"

type reportRepo interface {
	AreaAverages(ctx context.Context, studentID string) ([]models.SubjectAreaAverage, error)
	AbsenceSummary(ctx context.Context) ([]models.AbsenceSummaryRow, error)
	StatusCounts(ctx context.Context) ([]models.ClassGroupStatusCounts, error)
	CountPassing(ctx context.Context, classGroupID string, threshold float64) (int, error)
}

type attendanceCounter interface {
	CountAbsences(ctx context.Context, studentID string) (int, error)
	CountPresences(ctx context.Context, studentID string) (int, error)
}

type reportStudentFinder interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

type reportClassGroupLister interface {
	List(ctx context.Context) ([]models.ClassGroup, error)
}

// ReportService runs the read-only aggregate reports.
type ReportService struct {
	reports    reportRepo
	attendance attendanceCounter
	students   reportStudentFinder
	groups     reportClassGroupLister
	cache      *CacheService
	logger     *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(reports reportRepo, attendance attendanceCounter, students reportStudentFinder, groups reportClassGroupLister, cache *CacheService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, attendance: attendance, students: students, groups: groups, cache: cache, logger: logger}
}

// StudentPerformance aggregates one student's grade averages per subject
// area plus attendance counts. A student may only request their own report;
// teachers and the administrative tier may request anyone's.
func (s *ReportService) StudentPerformance(ctx context.Context, ident models.Identity, studentID string) (*models.StudentPerformanceReport, error) {
	if err := s.authorizeStudentReport(ident, studentID); err != nil {
		return nil, err
	}

	detail, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	averages, err := s.reports.AreaAverages(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute grade averages")
	}
	if averages == nil {
		averages = []models.SubjectAreaAverage{}
	}
	absences, err := s.attendance.CountAbsences(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count absences")
	}
	presences, err := s.attendance.CountPresences(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count presences")
	}

	return &models.StudentPerformanceReport{
		StudentID:      detail.ID,
		FullName:       detail.FullName,
		ClassGroupID:   detail.ClassGroupID,
		ClassGroupName: detail.ClassGroupName,
		Status:         detail.Status,
		AreaAverages:   averages,
		AbsenceCount:   absences,
		PresenceCount:  presences,
	}, nil
}

// AbsenceSummary groups every absence by (student, subject area). Reserved
// for the administrative tier.
func (s *ReportService) AbsenceSummary(ctx context.Context, ident models.Identity) ([]models.AbsenceSummaryRow, error) {
	if !ident.Elevated() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "absence summary is restricted to coordination staff")
	}
	rows, err := s.reports.AbsenceSummary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise absences")
	}
	if rows == nil {
		rows = []models.AbsenceSummaryRow{}
	}
	return rows, nil
}

// Management produces one row per class group with dropout and pass rates
// as two-decimal percentage strings. The result is cached when a cache
// backend is configured.
func (s *ReportService) Management(ctx context.Context, ident models.Identity) ([]models.ManagementReportRow, error) {
	if !ident.Elevated() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "management report is restricted to coordination staff")
	}

	var cached []models.ManagementReportRow
	if s.cache.Get(ctx, managementReportCacheKey, &cached) {
		return cached, nil
	}

	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class groups")
	}
	counts, err := s.reports.StatusCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollment statuses")
	}
	countsByGroup := make(map[string]models.ClassGroupStatusCounts, len(counts))
	for _, c := range counts {
		countsByGroup[c.ClassGroupID] = c
	}

	rows := make([]models.ManagementReportRow, 0, len(groups))
	for _, group := range groups {
		c := countsByGroup[group.ID]

		passing := 0
		if c.Active+c.Completed > 0 {
			passing, err = s.reports.CountPassing(ctx, group.ID, PassThreshold)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count passing students")
			}
		}

		rows = append(rows, models.ManagementReportRow{
			ClassGroup:  group,
			DropoutRate: formatRate(c.DroppedOut, c.Countable()),
			PassRate:    formatRate(passing, c.Active+c.Completed),
		})
	}

	s.cache.Set(ctx, managementReportCacheKey, rows)
	return rows, nil
}

func formatRate(numerator, denominator int) string {
	if denominator == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(numerator)/float64(denominator)*100)
}

func (s *ReportService) authorizeStudentReport(ident models.Identity, studentID string) error {
	if ident.Elevated() || ident.Role == models.RoleTeacher {
		return nil
	}
	if ident.Role == models.RoleStudent && ident.StudentProfileID == studentID {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "you may only view your own performance report")
}
