package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

func newMockRepo(t *testing.T) (*CompanyRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewCompanyRepository(db), mock, func() { db.Close() }
}

var companyRows = []string{"id", "user_id", "name", "industry", "url", "interest", "memo", "next_deadline", "created_at"}

func TestCompanyRepository_FindByID_ScopedToOwner(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	// The query carries both id and user id; an empty result set means the
	// row is missing or foreign, and both surface the same way.
	mock.ExpectQuery(`FROM companies WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows(companyRows))

	_, err := repo.FindByID(context.Background(), 2, 5)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_FindByID_NullableColumns(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM companies WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows(companyRows).
			AddRow(int64(5), int64(1), "Acme", "", "", nil, "", nil, created))

	company, err := repo.FindByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Nil(t, company.Interest)
	assert.Nil(t, company.NextDeadline)
	assert.Equal(t, "Acme", company.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_List_SortModes(t *testing.T) {
	tests := []struct {
		name    string
		filter  ports.ListCompaniesFilter
		pattern string
		args    []any
	}{
		{
			name:    "default id order",
			filter:  ports.ListCompaniesFilter{UserID: 1},
			pattern: `WHERE user_id = \$1 ORDER BY id ASC`,
			args:    []any{int64(1)},
		},
		{
			name:    "interest descending keeps unrated last",
			filter:  ports.ListCompaniesFilter{UserID: 1, Sort: domain.SortInterestDesc},
			pattern: `ORDER BY interest DESC NULLS LAST, id ASC`,
			args:    []any{int64(1)},
		},
		{
			name:    "deadline ascending drops past deadlines",
			filter:  ports.ListCompaniesFilter{UserID: 1, Sort: domain.SortDeadlineAsc},
			pattern: `AND next_deadline >= CURRENT_DATE ORDER BY next_deadline ASC, id ASC`,
			args:    []any{int64(1)},
		},
		{
			name:    "industry filter parameterized",
			filter:  ports.ListCompaniesFilter{UserID: 1, Industry: "Tech"},
			pattern: `AND industry = \$2 ORDER BY id ASC`,
			args:    []any{int64(1), "Tech"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := newMockRepo(t)
			defer closeDB()

			args := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = a
			}
			mock.ExpectQuery(tt.pattern).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows(companyRows))

			companies, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, companies)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCompanyRepository_DeleteMany_ReturnsOwnedCount(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ids := []int64{3, 4, 9}
	mock.ExpectExec(`DELETE FROM companies WHERE user_id = \$1 AND id = ANY\(\$2\)`).
		WithArgs(int64(1), pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteMany(context.Background(), 1, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_UpsertSelection(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	entry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM companies WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(`INSERT INTO selections`).
		WithArgs(int64(5), entry, "in_progress", "screening").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.UpsertSelection(context.Background(), 1, 5, &domain.Selection{
		EntryDate: &entry, Status: domain.SelectionInProgress, Phase: "screening",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_UpsertSelection_NotOwned(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM companies WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.UpsertSelection(context.Background(), 2, 5, &domain.Selection{
		Status: domain.SelectionRejected,
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_FindSelection_AbsentIsNil(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`FROM selections s JOIN companies c`).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "entry_date", "status", "phase"}))

	sel, err := repo.FindSelection(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_AddSchedule(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	eventDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO schedules .+ FROM companies c WHERE c.id = \$1 AND c.user_id = \$2`).
		WithArgs(int64(5), int64(1), "Interview", "on-site", eventDate, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	schedule, err := repo.AddSchedule(context.Background(), 1, &domain.Schedule{
		CompanyID: 5, EventName: "Interview", EventContent: "on-site", EventDate: eventDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), schedule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_AddSchedule_ForeignCompany(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	// The conditional insert selects zero parent rows, so RETURNING yields
	// no row at all.
	mock.ExpectQuery(`INSERT INTO schedules`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.AddSchedule(context.Background(), 2, &domain.Schedule{
		CompanyID: 5, EventName: "Interview", EventDate: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_UpdateSchedule_NotOwned(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE schedules s .+ FROM companies c`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSchedule(context.Background(), 2, &domain.Schedule{
		ID: 11, EventName: "Interview", EventDate: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_DeleteSchedule(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec(`DELETE FROM schedules s USING companies c`).
		WithArgs(int64(11), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteSchedule(context.Background(), 1, 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}
