package ports

import (
	"context"
	"time"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// CreateCompanyInput carries the fields of the registration form.
type CreateCompanyInput struct {
	Name     string
	Industry string
	URL      string
}

// UpdateCompanyBasicInput updates the identifying fields of a company.
type UpdateCompanyBasicInput struct {
	Name     string
	Industry string
	URL      string
}

// UpsertSelectionInput sets the hiring-process status of a company, creating
// the selection row on first edit.
type UpsertSelectionInput struct {
	EntryDate *time.Time
	Status    string
	Phase     string
}

// UpdateCompanyDetailInput replaces the free-form detail fields. Interest and
// NextDeadline are cleared when nil.
type UpdateCompanyDetailInput struct {
	Interest     *int
	Memo         string
	NextDeadline *time.Time
}

// AddScheduleInput creates one dated event under a company.
type AddScheduleInput struct {
	EventName    string
	EventContent string
	EventDate    time.Time
	EventMemo    string
}

// UpdateScheduleInput replaces the fields of an existing schedule entry.
type UpdateScheduleInput struct {
	EventName    string
	EventContent string
	EventDate    time.Time
	EventMemo    string
}

// CompanyService defines the use-case operations over a user's companies.
// The acting user id is explicit on every call; no operation runs without one.
type CompanyService interface {
	CreateCompany(ctx context.Context, userID int64, input CreateCompanyInput) (*domain.Company, error)
	GetCompany(ctx context.Context, userID, id int64) (*domain.Company, error)
	UpdateCompanyBasic(ctx context.Context, userID, id int64, input UpdateCompanyBasicInput) error
	UpsertSelection(ctx context.Context, userID, companyID int64, input UpsertSelectionInput) error
	UpdateCompanyDetail(ctx context.Context, userID, id int64, input UpdateCompanyDetailInput) error
	DeleteCompanies(ctx context.Context, userID int64, ids []int64) (int64, error)

	AddSchedule(ctx context.Context, userID, companyID int64, input AddScheduleInput) (*domain.Schedule, error)
	GetSchedule(ctx context.Context, userID, scheduleID int64) (*domain.Schedule, error)
	UpdateSchedule(ctx context.Context, userID, scheduleID int64, input UpdateScheduleInput) error
	DeleteSchedule(ctx context.Context, userID, scheduleID int64) error
}
