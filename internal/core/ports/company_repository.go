package ports

import (
	"context"
	"time"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// ListCompaniesFilter carries the query parameters for listing companies.
// UserID is always enforced; every row returned belongs to that user.
type ListCompaniesFilter struct {
	UserID   int64
	Sort     domain.SortMode
	Industry string // optional: exact match
}

// CompanyRepository defines persistence for companies and their owned
// selection and schedule rows. Every operation is scoped to the acting user:
// rows owned by someone else behave exactly like missing rows.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, userID, id int64) (*domain.Company, error)
	UpdateBasic(ctx context.Context, userID, id int64, name, industry, url string) error
	UpdateDetail(ctx context.Context, userID, id int64, interest *int, memo string, nextDeadline *time.Time) error
	// DeleteMany removes the given companies and, via cascade, their
	// selection and schedules. Ids that do not exist or are not owned by
	// userID are skipped silently; the number of companies actually deleted
	// is returned.
	DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error)
	List(ctx context.Context, filter ListCompaniesFilter) ([]*domain.Company, error)
	// DistinctIndustries returns the sorted, deduplicated industries of all
	// companies owned by userID, excluding empty values.
	DistinctIndustries(ctx context.Context, userID int64) ([]string, error)

	// UpsertSelection creates the company's selection row if absent,
	// otherwise updates it in place.
	UpsertSelection(ctx context.Context, userID, companyID int64, sel *domain.Selection) error
	// FindSelection returns (nil, nil) when the company exists but has no
	// selection yet.
	FindSelection(ctx context.Context, userID, companyID int64) (*domain.Selection, error)

	AddSchedule(ctx context.Context, userID int64, s *domain.Schedule) (*domain.Schedule, error)
	FindScheduleByID(ctx context.Context, userID, scheduleID int64) (*domain.Schedule, error)
	UpdateSchedule(ctx context.Context, userID int64, s *domain.Schedule) error
	DeleteSchedule(ctx context.Context, userID, scheduleID int64) error
	// ListSchedules returns the company's schedules ordered by event date
	// descending.
	ListSchedules(ctx context.Context, userID, companyID int64) ([]*domain.Schedule, error)
}
