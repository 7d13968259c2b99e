package domain

import (
	"errors"
	"time"
)

// SelectionStatus represents where a company's hiring process currently stands.
type SelectionStatus string

const (
	SelectionInProgress    SelectionStatus = "in_progress"
	SelectionInformalOffer SelectionStatus = "informal_offer"
	SelectionRejected      SelectionStatus = "rejected"
	SelectionWithdrawn     SelectionStatus = "withdrawn"
)

// Valid reports whether s is one of the known selection statuses.
func (s SelectionStatus) Valid() bool {
	switch s {
	case SelectionInProgress, SelectionInformalOffer, SelectionRejected, SelectionWithdrawn:
		return true
	}
	return false
}

// SortMode controls the ordering of the company list view.
type SortMode string

const (
	SortNone SortMode = ""
	// SortInterestDesc orders by interest descending, companies without an
	// interest value last.
	SortInterestDesc SortMode = "interest_desc"
	// SortDeadlineAsc restricts the list to companies whose next deadline is
	// today or later and orders them by that date ascending.
	SortDeadlineAsc SortMode = "deadline_asc"
)

// Valid reports whether m is a recognised sort mode.
func (m SortMode) Valid() bool {
	switch m {
	case SortNone, SortInterestDesc, SortDeadlineAsc:
		return true
	}
	return false
}

// ErrCompanyNotFound covers both a missing company and a company owned by
// someone else, so a caller cannot probe for ids they do not own.
var ErrCompanyNotFound = errors.New("company not found")

// ErrScheduleNotFound mirrors ErrCompanyNotFound for schedule entries.
var ErrScheduleNotFound = errors.New("schedule not found")

// Company is the core aggregate root: one employer under consideration.
type Company struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"-"`
	Name         string     `json:"name"`
	Industry     string     `json:"industry,omitempty"`
	URL          string     `json:"url,omitempty"`
	Interest     *int       `json:"interest,omitempty"`
	Memo         string     `json:"memo,omitempty"`
	NextDeadline *time.Time `json:"next_deadline,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Selection is the hiring-process status of a company. Each company has at
// most one; it is created on first edit.
type Selection struct {
	ID        int64           `json:"id"`
	CompanyID int64           `json:"company_id"`
	EntryDate *time.Time      `json:"entry_date,omitempty"`
	Status    SelectionStatus `json:"status"`
	Phase     string          `json:"phase,omitempty"`
}

// Schedule is a dated event (interview, deadline) tied to a company.
type Schedule struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	EventName    string    `json:"event_name"`
	EventContent string    `json:"event_content,omitempty"`
	EventDate    time.Time `json:"event_date"`
	EventMemo    string    `json:"event_memo,omitempty"`
}
