package ports

import (
	"context"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// ListCompaniesInput carries the raw sort/filter parameters from the
// transport layer.
type ListCompaniesInput struct {
	Sort     string
	Industry string
}

// CompanyDetailResult aggregates everything the detail page shows. Selection
// is nil when the company has none yet.
type CompanyDetailResult struct {
	Company   *domain.Company
	Selection *domain.Selection
	Schedules []*domain.Schedule
}

// ViewService composes the read views consumed by presentation.
type ViewService interface {
	ListCompanies(ctx context.Context, userID int64, input ListCompaniesInput) ([]*domain.Company, error)
	// ListIndustries always derives from the full owned set, regardless of
	// any active filter, so the filter options stay complete.
	ListIndustries(ctx context.Context, userID int64) ([]string, error)
	CompanyDetail(ctx context.Context, userID, companyID int64) (*CompanyDetailResult, error)
}
