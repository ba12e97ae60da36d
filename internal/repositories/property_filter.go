package repositories

import (
	"fmt"
	"strings"

	"imoveisBack/internal/models"
)

// anyValue matches the browse form's "Any" option; it is treated the same as
// an unset field.
const anyValue = "any"

func isSet(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v != "" && v != anyValue
}

// buildPropertyFilter turns the search form into SQL conditions over the
// aliased properties table `p`. Placeholders are numbered starting at
// startIdx so the caller can prepend its own parameters. All predicates are
// conjunctive; zero values contribute nothing, so an empty filter selects
// every row the base query allows.
func buildPropertyFilter(f models.PropertyFilterRequest, startIdx int) ([]string, []interface{}) {
	var (
		conditions []string
		params     []interface{}
	)

	next := func() int { return startIdx + len(params) }

	if q := strings.TrimSpace(f.Query); q != "" {
		n := next()
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.description ILIKE $%d OR p.municipality ILIKE $%d OR p.bairro ILIKE $%d)",
			n, n, n, n))
		params = append(params, "%"+q+"%")
	}

	if loc := strings.TrimSpace(f.Location); loc != "" {
		n := next()
		conditions = append(conditions, fmt.Sprintf(
			"(p.municipality ILIKE $%d OR p.bairro ILIKE $%d)", n, n))
		params = append(params, "%"+loc+"%")
	}

	if isSet(f.PropertyType) {
		conditions = append(conditions, fmt.Sprintf("p.property_type = $%d", next()))
		params = append(params, strings.ToLower(strings.TrimSpace(f.PropertyType)))
	}

	if isSet(f.TransactionType) {
		conditions = append(conditions, fmt.Sprintf("p.transaction_type = $%d", next()))
		params = append(params, strings.ToLower(strings.TrimSpace(f.TransactionType)))
	}

	// Inclusive bounds; zero means the bound was left empty on the form.
	if f.PriceFrom > 0 {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", next()))
		params = append(params, f.PriceFrom)
	}
	if f.PriceTo > 0 {
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", next()))
		params = append(params, f.PriceTo)
	}

	return conditions, params
}
