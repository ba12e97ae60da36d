package repositories

import (
	"strings"
	"testing"

	"imoveisBack/internal/models"
)

func TestBuildPropertyFilterEmptyIsIdentity(t *testing.T) {
	conditions, params := buildPropertyFilter(models.PropertyFilterRequest{}, 1)

	if len(conditions) != 0 {
		t.Fatalf("expected no conditions for empty filter, got %v", conditions)
	}
	if len(params) != 0 {
		t.Fatalf("expected no params for empty filter, got %v", params)
	}
}

func TestBuildPropertyFilterAnyTreatedAsUnset(t *testing.T) {
	filter := models.PropertyFilterRequest{
		PropertyType:    "Any",
		TransactionType: " any ",
	}

	conditions, params := buildPropertyFilter(filter, 1)

	if len(conditions) != 0 {
		t.Fatalf("expected 'any' selections to be skipped, got %v", conditions)
	}
	if len(params) != 0 {
		t.Fatalf("expected no params, got %v", params)
	}
}

func TestBuildPropertyFilterAllFields(t *testing.T) {
	filter := models.PropertyFilterRequest{
		Query:           "casa",
		Location:        "Huambo",
		PropertyType:    "Apartment",
		TransactionType: "rent",
		PriceFrom:       50000,
		PriceTo:         200000,
	}

	conditions, params := buildPropertyFilter(filter, 3)

	if len(conditions) != 6 {
		t.Fatalf("expected 6 conditions, got %d: %v", len(conditions), conditions)
	}
	if len(params) != 6 {
		t.Fatalf("expected 6 params, got %d: %v", len(params), params)
	}

	if !strings.Contains(conditions[0], "p.title ILIKE $3") {
		t.Errorf("query condition should start numbering at startIdx: %s", conditions[0])
	}
	if params[0] != "%casa%" {
		t.Errorf("expected wrapped query param, got %v", params[0])
	}

	if !strings.Contains(conditions[1], "p.municipality ILIKE $4") {
		t.Errorf("unexpected location condition: %s", conditions[1])
	}

	if conditions[2] != "p.property_type = $5" {
		t.Errorf("unexpected property type condition: %s", conditions[2])
	}
	if params[2] != "apartment" {
		t.Errorf("property type should be lowercased, got %v", params[2])
	}

	if conditions[4] != "p.price >= $7" {
		t.Errorf("price lower bound should be inclusive: %s", conditions[4])
	}
	if conditions[5] != "p.price <= $8" {
		t.Errorf("price upper bound should be inclusive: %s", conditions[5])
	}
}

func TestBuildPropertyFilterZeroPricesSkipped(t *testing.T) {
	filter := models.PropertyFilterRequest{PriceFrom: 0, PriceTo: 0}

	conditions, _ := buildPropertyFilter(filter, 1)

	for _, c := range conditions {
		if strings.Contains(c, "p.price") {
			t.Fatalf("zero price bounds must not produce predicates: %s", c)
		}
	}
}

func TestBuildPropertyFilterQueryReusesOnePlaceholder(t *testing.T) {
	conditions, params := buildPropertyFilter(models.PropertyFilterRequest{Query: "vivenda"}, 1)

	if len(conditions) != 1 {
		t.Fatalf("expected one combined condition, got %v", conditions)
	}
	if len(params) != 1 {
		t.Fatalf("the query predicate should bind a single param, got %v", params)
	}
	if strings.Count(conditions[0], "$1") != 4 {
		t.Fatalf("expected $1 reused across title/description/municipality/bairro: %s", conditions[0])
	}
}

func TestIsSet(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"any", false},
		{"Any", false},
		{" ANY ", false},
		{"house", true},
	}

	for _, tc := range cases {
		if got := isSet(tc.value); got != tc.want {
			t.Errorf("isSet(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
