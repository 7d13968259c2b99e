package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// CompanyRepository persists companies and their owned selection and schedule
// rows. Every query carries the owning user id, so a row belonging to another
// user is indistinguishable from a missing one.
type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, user_id, name, COALESCE(industry, ''), COALESCE(url, ''), interest, memo, next_deadline, created_at`

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	query := `
		INSERT INTO companies (user_id, name, industry, url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Industry, c.URL).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, userID, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND user_id = $2`

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) UpdateBasic(ctx context.Context, userID, id int64, name, industry, url string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies
		SET name = $3, industry = NULLIF($4, ''), url = NULLIF($5, '')
		WHERE id = $1 AND user_id = $2`,
		id, userID, name, industry, url)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireRow(res, domain.ErrCompanyNotFound)
}

func (r *CompanyRepository) UpdateDetail(ctx context.Context, userID, id int64, interest *int, memo string, nextDeadline *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies
		SET interest = $3, memo = $4, next_deadline = $5
		WHERE id = $1 AND user_id = $2`,
		id, userID, nullInt(interest), memo, nullDate(nextDeadline))
	if err != nil {
		return fmt.Errorf("update company detail: %w", err)
	}
	return requireRow(res, domain.ErrCompanyNotFound)
}

// DeleteMany deletes only the rows owned by userID; foreign keys cascade to
// selections and schedules within the same statement's transaction.
func (r *CompanyRepository) DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM companies WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("delete companies: %w", err)
	}
	return res.RowsAffected()
}

func (r *CompanyRepository) List(ctx context.Context, filter ports.ListCompaniesFilter) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1`
	args := []any{filter.UserID}

	if filter.Industry != "" {
		args = append(args, filter.Industry)
		query += fmt.Sprintf(" AND industry = $%d", len(args))
	}

	switch filter.Sort {
	case domain.SortInterestDesc:
		query += " ORDER BY interest DESC NULLS LAST, id ASC"
	case domain.SortDeadlineAsc:
		// Combined filter and sort: only upcoming deadlines, soonest first.
		query += " AND next_deadline >= CURRENT_DATE ORDER BY next_deadline ASC, id ASC"
	default:
		query += " ORDER BY id ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) DistinctIndustries(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT industry FROM companies
		WHERE user_id = $1 AND industry IS NOT NULL AND industry <> ''
		ORDER BY industry ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("distinct industries: %w", err)
	}
	defer rows.Close()

	industries := make([]string, 0)
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		industries = append(industries, industry)
	}
	return industries, rows.Err()
}

// UpsertSelection verifies ownership and writes the selection in one
// transaction, creating the row on first edit.
func (r *CompanyRepository) UpsertSelection(ctx context.Context, userID, companyID int64, sel *domain.Selection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert selection: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var owned int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM companies WHERE id = $1 AND user_id = $2`,
		companyID, userID).Scan(&owned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("check company ownership: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO selections (company_id, entry_date, status, phase)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE
		SET entry_date = EXCLUDED.entry_date,
		    status     = EXCLUDED.status,
		    phase      = EXCLUDED.phase`,
		companyID, nullDate(sel.EntryDate), string(sel.Status), sel.Phase)
	if err != nil {
		return fmt.Errorf("upsert selection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert selection: %w", err)
	}
	committed = true
	return nil
}

func (r *CompanyRepository) FindSelection(ctx context.Context, userID, companyID int64) (*domain.Selection, error) {
	var (
		sel       domain.Selection
		entryDate sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.company_id, s.entry_date, s.status, s.phase
		FROM selections s
		JOIN companies c ON c.id = s.company_id
		WHERE s.company_id = $1 AND c.user_id = $2`,
		companyID, userID).Scan(&sel.ID, &sel.CompanyID, &entryDate, &sel.Status, &sel.Phase)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No selection yet; the caller has already established ownership.
			return nil, nil
		}
		return nil, fmt.Errorf("find selection: %w", err)
	}

	if entryDate.Valid {
		d := entryDate.Time
		sel.EntryDate = &d
	}
	return &sel, nil
}

// AddSchedule inserts a schedule only when the parent company belongs to
// userID; the conditional insert makes the ownership check and the write a
// single atomic statement.
func (r *CompanyRepository) AddSchedule(ctx context.Context, userID int64, s *domain.Schedule) (*domain.Schedule, error) {
	query := `
		INSERT INTO schedules (company_id, event_name, event_content, event_date, event_memo)
		SELECT c.id, $3, $4, $5, $6
		FROM companies c
		WHERE c.id = $1 AND c.user_id = $2
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		s.CompanyID, userID, s.EventName, s.EventContent, s.EventDate, s.EventMemo,
	).Scan(&s.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	return s, nil
}

func (r *CompanyRepository) FindScheduleByID(ctx context.Context, userID, scheduleID int64) (*domain.Schedule, error) {
	var s domain.Schedule
	err := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.company_id, s.event_name, s.event_content, s.event_date, s.event_memo
		FROM schedules s
		JOIN companies c ON c.id = s.company_id
		WHERE s.id = $1 AND c.user_id = $2`,
		scheduleID, userID).Scan(&s.ID, &s.CompanyID, &s.EventName, &s.EventContent, &s.EventDate, &s.EventMemo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return &s, nil
}

func (r *CompanyRepository) UpdateSchedule(ctx context.Context, userID int64, s *domain.Schedule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedules s
		SET event_name = $3, event_content = $4, event_date = $5, event_memo = $6
		FROM companies c
		WHERE s.id = $1 AND s.company_id = c.id AND c.user_id = $2`,
		s.ID, userID, s.EventName, s.EventContent, s.EventDate, s.EventMemo)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return requireRow(res, domain.ErrScheduleNotFound)
}

func (r *CompanyRepository) DeleteSchedule(ctx context.Context, userID, scheduleID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM schedules s
		USING companies c
		WHERE s.id = $1 AND s.company_id = c.id AND c.user_id = $2`,
		scheduleID, userID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return requireRow(res, domain.ErrScheduleNotFound)
}

func (r *CompanyRepository) ListSchedules(ctx context.Context, userID, companyID int64) ([]*domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.company_id, s.event_name, s.event_content, s.event_date, s.event_memo
		FROM schedules s
		JOIN companies c ON c.id = s.company_id
		WHERE s.company_id = $1 AND c.user_id = $2
		ORDER BY s.event_date DESC, s.id DESC`,
		companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.EventName, &s.EventContent, &s.EventDate, &s.EventMemo); err != nil {
			return nil, err
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var (
		c        domain.Company
		interest sql.NullInt64
		deadline sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Industry, &c.URL, &interest, &c.Memo, &deadline, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if interest.Valid {
		v := int(interest.Int64)
		c.Interest = &v
	}
	if deadline.Valid {
		d := deadline.Time
		c.NextDeadline = &d
	}
	return &c, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
