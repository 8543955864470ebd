package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escola-dev/escola-api/internal/models"
)

// ReportRepository runs the read-only aggregate queries behind the report
// endpoints.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// AreaAverages computes a student's grade average per subject area.
func (r *ReportRepository) AreaAverages(ctx context.Context, studentID string) ([]models.SubjectAreaAverage, error) {
	const query = `SELECT sa.name AS area_name, AVG(g.value) AS average
        FROM grades g
        JOIN subjects s ON s.id = g.subject_id
        JOIN subject_areas sa ON sa.id = s.subject_area_id
        WHERE g.student_id = $1
        GROUP BY sa.name
        ORDER BY sa.name`
	var averages []models.SubjectAreaAverage
	if err := r.db.SelectContext(ctx, &averages, query, studentID); err != nil {
		return nil, fmt.Errorf("area averages: %w", err)
	}
	return averages, nil
}

// AbsenceSummary groups all absences by (student, subject area), ordered by
// student name.
func (r *ReportRepository) AbsenceSummary(ctx context.Context) ([]models.AbsenceSummaryRow, error) {
	const query = `SELECT u.full_name AS student_name, sa.name AS area_name, COUNT(a.id) AS total
        FROM absences a
        JOIN students st ON st.id = a.student_id
        JOIN users u ON u.id = st.user_id
        JOIN subjects s ON s.id = a.subject_id
        JOIN subject_areas sa ON sa.id = s.subject_area_id
        GROUP BY u.full_name, sa.name
        ORDER BY u.full_name`
	var rows []models.AbsenceSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("absence summary: %w", err)
	}
	return rows, nil
}

// StatusCounts returns per-status roster counts for every class group,
// including groups with no students at all.
func (r *ReportRepository) StatusCounts(ctx context.Context) ([]models.ClassGroupStatusCounts, error) {
	const query = `SELECT cg.id AS class_group_id,
        COUNT(*) FILTER (WHERE s.status = 'ACTIVE') AS active,
        COUNT(*) FILTER (WHERE s.status = 'DROPPED_OUT') AS dropped_out,
        COUNT(*) FILTER (WHERE s.status = 'TRANSFERRED') AS transferred,
        COUNT(*) FILTER (WHERE s.status = 'COMPLETED') AS completed
        FROM class_groups cg
        LEFT JOIN students s ON s.class_group_id = cg.id
        GROUP BY cg.id`
	var counts []models.ClassGroupStatusCounts
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	return counts, nil
}

// CountPassing counts the group's ACTIVE or COMPLETED students whose overall
// grade average meets the threshold.
func (r *ReportRepository) CountPassing(ctx context.Context, classGroupID string, threshold float64) (int, error) {
	const query = `SELECT COUNT(*) FROM (
        SELECT st.id
        FROM students st
        JOIN grades g ON g.student_id = st.id
        WHERE st.class_group_id = $1 AND st.status IN ('ACTIVE', 'COMPLETED')
        GROUP BY st.id
        HAVING AVG(g.value) >= $2
    ) passing`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classGroupID, threshold); err != nil {
		return 0, fmt.Errorf("count passing: %w", err)
	}
	return count, nil
}
