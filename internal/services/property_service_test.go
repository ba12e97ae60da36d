package services

import (
	"errors"
	"testing"
	"time"

	"imoveisBack/internal/models"
)

func validProperty() models.Property {
	return models.Property{
		Title:           "Vivenda T3 no Bairro Académico",
		Price:           150000,
		TransactionType: models.TransactionRent,
		PropertyType:    "house",
		Municipality:    "Huambo",
		UserID:          42,
	}
}

func TestValidateProperty(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.Property)
		wantErr bool
	}{
		{"valid", func(p *models.Property) {}, false},
		{"valid without images", func(p *models.Property) { p.Images = nil }, false},
		{"missing title", func(p *models.Property) { p.Title = "  " }, true},
		{"zero price", func(p *models.Property) { p.Price = 0 }, true},
		{"negative price", func(p *models.Property) { p.Price = -10 }, true},
		{"bad transaction type", func(p *models.Property) { p.TransactionType = "lease" }, true},
		{"sale is valid", func(p *models.Property) { p.TransactionType = models.TransactionSale }, false},
		{"missing property type", func(p *models.Property) { p.PropertyType = "" }, true},
		{"missing municipality", func(p *models.Property) { p.Municipality = "" }, true},
		{"missing owner", func(p *models.Property) { p.UserID = 0 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prop := validProperty()
			tc.mutate(&prop)
			err := ValidateProperty(prop)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNormalizeFilter(t *testing.T) {
	cases := []struct {
		name      string
		in        models.PropertyFilterRequest
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", models.PropertyFilterRequest{}, 1, DefaultPageSize},
		{"negative page clamped", models.PropertyFilterRequest{Page: -3, Limit: 10}, 1, 10},
		{"oversized limit clamped", models.PropertyFilterRequest{Page: 2, Limit: 500}, 2, maxPageSize},
		{"valid passes through", models.PropertyFilterRequest{Page: 4, Limit: 20}, 4, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeFilter(tc.in)
			if got.Page != tc.wantPage {
				t.Errorf("page = %d, want %d", got.Page, tc.wantPage)
			}
			if got.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", got.Limit, tc.wantLimit)
			}
		})
	}
}

func TestNormalizeFilterKeepsPredicates(t *testing.T) {
	in := models.PropertyFilterRequest{
		Query:           "casa",
		Location:        "Huambo",
		PropertyType:    "apartment",
		TransactionType: "sale",
		PriceFrom:       1000,
		PriceTo:         9000,
	}

	got := NormalizeFilter(in)

	if got.Query != in.Query || got.Location != in.Location ||
		got.PropertyType != in.PropertyType || got.TransactionType != in.TransactionType ||
		got.PriceFrom != in.PriceFrom || got.PriceTo != in.PriceTo {
		t.Fatalf("predicates changed during normalization: %+v", got)
	}
}

func TestModerationTransition(t *testing.T) {
	cases := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{"approve pending", models.StatusPending, models.StatusActive, nil},
		{"reject pending", models.StatusPending, models.StatusRejected, nil},
		{"approve sold listing", models.StatusSold, models.StatusActive, ErrBadTransition},
		{"approve archived listing", models.StatusArchived, models.StatusActive, ErrBadTransition},
		{"re-approve active listing", models.StatusActive, models.StatusActive, ErrBadTransition},
		{"reject rented listing", models.StatusRented, models.StatusRejected, ErrBadTransition},
		{"moderate to sold", models.StatusPending, models.StatusSold, models.ErrInvalidStatus},
		{"moderate to garbage", models.StatusPending, "approved", models.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := moderationTransition(tc.current, tc.target); !errors.Is(err, tc.wantErr) {
				t.Fatalf("moderationTransition(%q, %q) = %v, want %v", tc.current, tc.target, err, tc.wantErr)
			}
		})
	}
}

func TestClosingTransition(t *testing.T) {
	cases := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{"rent out active", models.StatusActive, models.StatusRented, nil},
		{"sell active", models.StatusActive, models.StatusSold, nil},
		{"close pending", models.StatusPending, models.StatusSold, ErrBadTransition},
		{"close rejected", models.StatusRejected, models.StatusRented, ErrBadTransition},
		{"re-close sold", models.StatusSold, models.StatusRented, ErrBadTransition},
		{"close to active", models.StatusActive, models.StatusActive, models.ErrInvalidStatus},
		{"close to garbage", models.StatusActive, "closed", models.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := closingTransition(tc.current, tc.target); !errors.Is(err, tc.wantErr) {
				t.Fatalf("closingTransition(%q, %q) = %v, want %v", tc.current, tc.target, err, tc.wantErr)
			}
		})
	}
}

func TestHistoryCutoff(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	cutoff := HistoryCutoff(now)

	want := now.Add(-10 * 24 * time.Hour)
	if !cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", cutoff, want)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty", 0, 7, 0},
		{"exact page", 7, 7, 1},
		{"partial last page", 8, 7, 2},
		{"many pages", 50, 7, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pageCount(tc.total, tc.limit); got != tc.want {
				t.Fatalf("pageCount(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
			}
		})
	}
}
