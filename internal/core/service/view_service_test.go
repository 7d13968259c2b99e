package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// seedCompanies inserts a fixed roster for user 1 plus one row for user 2,
// returning the ids in insertion order.
func seedCompanies(t *testing.T, repo *stubCompanyRepo) []int64 {
	t.Helper()
	svc := NewCompanyService(repo, discardLogger)
	ctx := context.Background()

	seeds := []struct {
		input    ports.CreateCompanyInput
		interest *int
		deadline *time.Time
	}{
		{input: ports.CreateCompanyInput{Name: "Acme", Industry: "Tech"}, interest: intp(2), deadline: date(2025, 6, 10)},
		{input: ports.CreateCompanyInput{Name: "Globex", Industry: "Finance"}, interest: intp(5), deadline: date(2025, 5, 1)},
		{input: ports.CreateCompanyInput{Name: "Initech", Industry: "Tech"}, interest: nil, deadline: date(2025, 6, 1)},
		{input: ports.CreateCompanyInput{Name: "Umbrella"}, interest: intp(5), deadline: nil},
	}

	var ids []int64
	for _, seed := range seeds {
		company, err := svc.CreateCompany(ctx, 1, seed.input)
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		if err := svc.UpdateCompanyDetail(ctx, 1, company.ID, ports.UpdateCompanyDetailInput{
			Interest: seed.interest, NextDeadline: seed.deadline,
		}); err != nil {
			t.Fatalf("seed detail failed: %v", err)
		}
		ids = append(ids, company.ID)
	}

	if _, err := svc.CreateCompany(ctx, 2, ports.CreateCompanyInput{Name: "Hooli", Industry: "Tech"}); err != nil {
		t.Fatalf("seed other user failed: %v", err)
	}
	return ids
}

func names(companies []*domain.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Name
	}
	return out
}

func TestViewService_ListCompanies_DefaultOrder(t *testing.T) {
	repo := newStubCompanyRepo()
	seedCompanies(t, repo)
	svc := NewViewService(repo, discardLogger)

	companies, err := svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"Acme", "Globex", "Initech", "Umbrella"}
	if got := names(companies); !reflect.DeepEqual(got, want) {
		t.Fatalf("default order = %v, want %v", got, want)
	}
}

func TestViewService_ListCompanies_InterestDesc(t *testing.T) {
	repo := newStubCompanyRepo()
	seedCompanies(t, repo)
	svc := NewViewService(repo, discardLogger)

	companies, err := svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{Sort: "interest_desc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// Ties keep insertion order, unrated companies sink to the bottom.
	want := []string{"Globex", "Umbrella", "Acme", "Initech"}
	if got := names(companies); !reflect.DeepEqual(got, want) {
		t.Fatalf("interest order = %v, want %v", got, want)
	}
}

func TestViewService_ListCompanies_DeadlineAsc(t *testing.T) {
	repo := newStubCompanyRepo()
	seedCompanies(t, repo)
	svc := NewViewService(repo, discardLogger)

	// Globex's deadline is already past and Umbrella has none; both drop out.
	companies, err := svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{Sort: "deadline_asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"Initech", "Acme"}
	if got := names(companies); !reflect.DeepEqual(got, want) {
		t.Fatalf("deadline order = %v, want %v", got, want)
	}
}

func TestViewService_ListCompanies_IndustryFilter(t *testing.T) {
	repo := newStubCompanyRepo()
	seedCompanies(t, repo)
	svc := NewViewService(repo, discardLogger)

	companies, err := svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{Industry: "Tech"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// User 2's Tech company must not leak in.
	want := []string{"Acme", "Initech"}
	if got := names(companies); !reflect.DeepEqual(got, want) {
		t.Fatalf("filtered list = %v, want %v", got, want)
	}

	// Filter and sort compose.
	companies, err = svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{Industry: "Tech", Sort: "interest_desc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want = []string{"Acme", "Initech"}
	if got := names(companies); !reflect.DeepEqual(got, want) {
		t.Fatalf("filtered+sorted list = %v, want %v", got, want)
	}
}

func TestViewService_ListCompanies_RejectsUnknownSort(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewViewService(repo, discardLogger)

	var ve *domain.ValidationError
	if _, err := svc.ListCompanies(context.Background(), 1, ports.ListCompaniesInput{Sort: "name_asc"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown sort, got %v", err)
	}
}

func TestViewService_ListIndustries(t *testing.T) {
	repo := newStubCompanyRepo()
	seedCompanies(t, repo)
	svc := NewViewService(repo, discardLogger)

	industries, err := svc.ListIndustries(context.Background(), 1)
	if err != nil {
		t.Fatalf("industries failed: %v", err)
	}
	// Deduped, alphabetical, blanks excluded, scoped to the user.
	want := []string{"Finance", "Tech"}
	if !reflect.DeepEqual(industries, want) {
		t.Fatalf("industries = %v, want %v", industries, want)
	}

	industries, err = svc.ListIndustries(context.Background(), 3)
	if err != nil {
		t.Fatalf("industries failed: %v", err)
	}
	if len(industries) != 0 {
		t.Fatalf("expected empty facet for fresh user, got %v", industries)
	}
}

func TestViewService_CompanyDetail(t *testing.T) {
	repo := newStubCompanyRepo()
	ids := seedCompanies(t, repo)
	companySvc := NewCompanyService(repo, discardLogger)
	svc := NewViewService(repo, discardLogger)
	ctx := context.Background()

	// Detail before any selection edit: selection is simply absent.
	detail, err := svc.CompanyDetail(ctx, 1, ids[0])
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Company.Name != "Acme" || detail.Selection != nil || len(detail.Schedules) != 0 {
		t.Fatalf("unexpected fresh detail: %+v", detail)
	}

	if err := companySvc.UpsertSelection(ctx, 1, ids[0], ports.UpsertSelectionInput{Status: "in_progress", Phase: "screening"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	for _, day := range []int{5, 20, 12} {
		if _, err := companySvc.AddSchedule(ctx, 1, ids[0], ports.AddScheduleInput{
			EventName: "Event", EventDate: time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("add schedule failed: %v", err)
		}
	}

	detail, err = svc.CompanyDetail(ctx, 1, ids[0])
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Selection == nil || detail.Selection.Phase != "screening" {
		t.Fatalf("selection missing from detail: %+v", detail.Selection)
	}
	if len(detail.Schedules) != 3 {
		t.Fatalf("expected 3 schedules, got %d", len(detail.Schedules))
	}
	// Newest event first.
	for i := 1; i < len(detail.Schedules); i++ {
		if detail.Schedules[i].EventDate.After(detail.Schedules[i-1].EventDate) {
			t.Fatalf("schedules out of order: %v", detail.Schedules)
		}
	}

	if _, err := svc.CompanyDetail(ctx, 2, ids[0]); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound for non-owner, got %v", err)
	}
}
