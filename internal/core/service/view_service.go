package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// ViewService composes the read views: the sorted/filtered company list, the
// industry facet and the per-company detail aggregation.
type ViewService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
}

func NewViewService(repo ports.CompanyRepository, logger zerolog.Logger) *ViewService {
	return &ViewService{repo: repo, logger: logger}
}

func (s *ViewService) ListCompanies(ctx context.Context, userID int64, input ports.ListCompaniesInput) ([]*domain.Company, error) {
	sort := domain.SortMode(input.Sort)
	if !sort.Valid() {
		return nil, domain.NewValidationError("sort", "must be one of: interest_desc, deadline_asc")
	}

	return s.repo.List(ctx, ports.ListCompaniesFilter{
		UserID:   userID,
		Sort:     sort,
		Industry: input.Industry,
	})
}

// ListIndustries ignores any active list filter on purpose: the facet has to
// offer every industry the user owns.
func (s *ViewService) ListIndustries(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.DistinctIndustries(ctx, userID)
}

func (s *ViewService) CompanyDetail(ctx context.Context, userID, companyID int64) (*ports.CompanyDetailResult, error) {
	company, err := s.repo.FindByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	selection, err := s.repo.FindSelection(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.ListSchedules(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	return &ports.CompanyDetailResult{
		Company:   company,
		Selection: selection,
		Schedules: schedules,
	}, nil
}
