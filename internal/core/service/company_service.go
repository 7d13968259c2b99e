package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// CompanyService implements the ownership-scoped write operations over
// companies, selections and schedules. Scope enforcement itself lives in the
// repository queries; this layer validates input and keeps the invariant that
// nothing is written when validation fails.
type CompanyService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

func (s *CompanyService) CreateCompany(ctx context.Context, userID int64, input ports.CreateCompanyInput) (*domain.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	company := &domain.Company{
		UserID:   userID,
		Name:     input.Name,
		Industry: input.Industry,
		URL:      input.URL,
	}

	created, err := s.repo.Create(ctx, company)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create company")
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("company_id", created.ID).Msg("company created")
	return created, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, userID, id int64) (*domain.Company, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *CompanyService) UpdateCompanyBasic(ctx context.Context, userID, id int64, input ports.UpdateCompanyBasicInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.NewValidationError("name", "is required")
	}
	return s.repo.UpdateBasic(ctx, userID, id, input.Name, input.Industry, input.URL)
}

func (s *CompanyService) UpsertSelection(ctx context.Context, userID, companyID int64, input ports.UpsertSelectionInput) error {
	status := domain.SelectionStatus(input.Status)
	if !status.Valid() {
		return domain.NewValidationError("status", "must be one of: in_progress, informal_offer, rejected, withdrawn")
	}

	sel := &domain.Selection{
		CompanyID: companyID,
		EntryDate: input.EntryDate,
		Status:    status,
		Phase:     input.Phase,
	}
	return s.repo.UpsertSelection(ctx, userID, companyID, sel)
}

func (s *CompanyService) UpdateCompanyDetail(ctx context.Context, userID, id int64, input ports.UpdateCompanyDetailInput) error {
	if input.Interest != nil && *input.Interest < 1 {
		return domain.NewValidationError("interest", "must be at least 1")
	}
	return s.repo.UpdateDetail(ctx, userID, id, input.Interest, input.Memo, input.NextDeadline)
}

// DeleteCompanies removes the owned subset of ids and reports how many rows
// went away. Ids that are missing or owned by someone else are not an error.
func (s *CompanyService) DeleteCompanies(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, err := s.repo.DeleteMany(ctx, userID, ids)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to delete companies")
		return 0, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("deleted", deleted).Int("requested", len(ids)).Msg("companies deleted")
	return deleted, nil
}

func (s *CompanyService) AddSchedule(ctx context.Context, userID, companyID int64, input ports.AddScheduleInput) (*domain.Schedule, error) {
	if strings.TrimSpace(input.EventName) == "" {
		return nil, domain.NewValidationError("event_name", "is required")
	}
	if input.EventDate.IsZero() {
		return nil, domain.NewValidationError("event_date", "is required")
	}

	schedule := &domain.Schedule{
		CompanyID:    companyID,
		EventName:    input.EventName,
		EventContent: input.EventContent,
		EventDate:    input.EventDate,
		EventMemo:    input.EventMemo,
	}

	created, err := s.repo.AddSchedule(ctx, userID, schedule)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("company_id", companyID).Int64("schedule_id", created.ID).Msg("schedule added")
	return created, nil
}

func (s *CompanyService) GetSchedule(ctx context.Context, userID, scheduleID int64) (*domain.Schedule, error) {
	return s.repo.FindScheduleByID(ctx, userID, scheduleID)
}

func (s *CompanyService) UpdateSchedule(ctx context.Context, userID, scheduleID int64, input ports.UpdateScheduleInput) error {
	if strings.TrimSpace(input.EventName) == "" {
		return domain.NewValidationError("event_name", "is required")
	}
	if input.EventDate.IsZero() {
		return domain.NewValidationError("event_date", "is required")
	}

	return s.repo.UpdateSchedule(ctx, userID, &domain.Schedule{
		ID:           scheduleID,
		EventName:    input.EventName,
		EventContent: input.EventContent,
		EventDate:    input.EventDate,
		EventMemo:    input.EventMemo,
	})
}

func (s *CompanyService) DeleteSchedule(ctx context.Context, userID, scheduleID int64) error {
	return s.repo.DeleteSchedule(ctx, userID, scheduleID)
}
