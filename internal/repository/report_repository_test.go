package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestReportRepositoryAreaAverages(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"area_name", "average"}).
		AddRow("Mathematics", 7.25).
		AddRow("Portuguese", 5.5)
	mock.ExpectQuery(`(?s)SELECT sa\.name AS area_name, AVG\(g\.value\) AS average.+GROUP BY sa\.name`).
		WithArgs("st1").
		WillReturnRows(rows)

	averages, err := repo.AreaAverages(context.Background(), "st1")
	require.NoError(t, err)
	require.Len(t, averages, 2)
	assert.Equal(t, "Mathematics", averages[0].AreaName)
	assert.InDelta(t, 7.25, averages[0].Average, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryAbsenceSummary(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"student_name", "area_name", "total"}).
		AddRow("Ana", "Mathematics", 3).
		AddRow("Bruno", "History", 1)
	mock.ExpectQuery(`(?s)SELECT u\.full_name AS student_name, sa\.name AS area_name, COUNT\(a\.id\) AS total.+ORDER BY u\.full_name`).
		WillReturnRows(rows)

	summary, err := repo.AbsenceSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, 3, summary[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryStatusCountsIncludesEmptyGroups(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"class_group_id", "active", "dropped_out", "transferred", "completed"}).
		AddRow("cg1", 20, 2, 1, 5).
		AddRow("cg-empty", 0, 0, 0, 0)
	mock.ExpectQuery(`(?s)SELECT cg\.id AS class_group_id,.+LEFT JOIN students s ON s\.class_group_id = cg\.id.+GROUP BY cg\.id`).
		WillReturnRows(rows)

	counts, err := repo.StatusCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 28, counts[0].Countable())
	assert.Equal(t, 0, counts[1].Countable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryCountPassing(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) FROM \(.+HAVING AVG\(g\.value\) >= \$2`).
		WithArgs("cg1", 6.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := repo.CountPassing(context.Background(), "cg1", 6.0)
	require.NoError(t, err)
	assert.Equal(t, 17, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
