package handler

import (
	"strconv"
	"time"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// dateLayout is the wire format for all date-only fields.
const dateLayout = "2006-01-02"

// --- Request types ---

type createCompanyRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Industry string `json:"industry" form:"industry"`
	URL      string `json:"url" form:"url"`
}

type updateCompanyBasicRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Industry string `json:"industry" form:"industry"`
	URL      string `json:"url" form:"url"`
}

type upsertSelectionRequest struct {
	EntryDate string `json:"entry_date" form:"entry_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status" form:"status" validate:"required,oneof=in_progress informal_offer rejected withdrawn"`
	Phase     string `json:"phase" form:"phase"`
}

type updateCompanyDetailRequest struct {
	Interest     *int   `json:"interest" form:"interest" validate:"omitempty,min=1"`
	Memo         string `json:"memo" form:"memo"`
	NextDeadline string `json:"next_deadline" form:"next_deadline" validate:"omitempty,datetime=2006-01-02"`
}

type deleteCompaniesRequest struct {
	IDs []int64 `json:"ids" form:"ids" validate:"required,min=1"`
}

type scheduleRequest struct {
	EventName    string `json:"event_name" form:"event_name" validate:"required"`
	EventContent string `json:"event_content" form:"event_content"`
	EventDate    string `json:"event_date" form:"event_date" validate:"required,datetime=2006-01-02"`
	EventMemo    string `json:"event_memo" form:"event_memo"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type companyLinks struct {
	Self      string `json:"self"`
	Schedules string `json:"schedules"`
}

type companyResponse struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Industry     string       `json:"industry,omitempty"`
	URL          string       `json:"url,omitempty"`
	Interest     *int         `json:"interest,omitempty"`
	Memo         string       `json:"memo,omitempty"`
	NextDeadline string       `json:"next_deadline,omitempty"`
	Links        companyLinks `json:"_links"`
}

type selectionResponse struct {
	EntryDate string `json:"entry_date,omitempty"`
	Status    string `json:"status"`
	Phase     string `json:"phase,omitempty"`
}

type scheduleResponse struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"company_id"`
	EventName    string `json:"event_name"`
	EventContent string `json:"event_content,omitempty"`
	EventDate    string `json:"event_date"`
	EventMemo    string `json:"event_memo,omitempty"`
}

// listCompaniesResponse echoes the active sort and filter back to the caller
// so presentation can render its current state.
type listCompaniesResponse struct {
	Data     []companyResponse `json:"data"`
	Sort     string            `json:"sort,omitempty"`
	Industry string            `json:"industry,omitempty"`
}

type industriesResponse struct {
	Industries []string `json:"industries"`
}

type companyDetailResponse struct {
	Company   companyResponse    `json:"company"`
	Selection *selectionResponse `json:"selection,omitempty"`
	Schedules []scheduleResponse `json:"schedules"`
}

type deleteCompaniesResponse struct {
	Deleted int64 `json:"deleted"`
}

// --- Mapping helpers ---

func toCompanyResponse(c *domain.Company) companyResponse {
	resp := companyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Industry: c.Industry,
		URL:      c.URL,
		Interest: c.Interest,
		Memo:     c.Memo,
		Links:    newCompanyLinks(c.ID),
	}
	if c.NextDeadline != nil {
		resp.NextDeadline = c.NextDeadline.Format(dateLayout)
	}
	return resp
}

func toSelectionResponse(s *domain.Selection) *selectionResponse {
	if s == nil {
		return nil
	}
	resp := &selectionResponse{
		Status: string(s.Status),
		Phase:  s.Phase,
	}
	if s.EntryDate != nil {
		resp.EntryDate = s.EntryDate.Format(dateLayout)
	}
	return resp
}

func toScheduleResponse(s *domain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		EventName:    s.EventName,
		EventContent: s.EventContent,
		EventDate:    s.EventDate.Format(dateLayout),
		EventMemo:    s.EventMemo,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newCompanyLinks(id int64) companyLinks {
	idStr := formatID(id)
	return companyLinks{
		Self:      "/v1/companies/" + idStr,
		Schedules: "/v1/companies/" + idStr + "/schedules",
	}
}

// parseOptionalDate turns an optional "2006-01-02" string into a time pointer.
// Format errors are caught earlier by the datetime validation tag.
func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
