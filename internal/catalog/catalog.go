// Package catalog holds the fixed table of Treasury security descriptions
// grouped by category, and validates user-supplied descriptions against it.
package catalog

import (
	"fmt"
	"strings"
)

// Category names in display order.
const (
	CategoryMarketable    = "Marketable"
	CategoryNonMarketable = "Non-marketable"
	CategoryInterestDebt  = "Interest-bearing Debt"
)

var categoryOrder = []string{
	CategoryMarketable,
	CategoryNonMarketable,
	CategoryInterestDebt,
}

// securities maps each category to its descriptions, in the order the
// FiscalData documentation lists them. Never mutated after init.
var securities = map[string][]string{
	CategoryMarketable: {
		"Treasury Bills",
		"Treasury Notes",
		"Treasury Bonds",
		"Treasury Inflation-Protected Securities (TIPS)",
		"Treasury Floating Rate Notes (FRN)",
		"Federal Financing Bank",
		"Total Marketable",
	},
	CategoryNonMarketable: {
		"Domestic Series",
		"Foreign Series",
		"State and Local Government Series",
		"United States Savings Securities",
		"United States Savings Inflation Securities",
		"Government Account Series",
		"Government Account Series Inflation Securities",
		"Total Non-marketable",
		"Special Purpose Vehicle",
	},
	CategoryInterestDebt: {
		"Total Interest-bearing Debt",
	},
}

// ErrUnknownSecurity is returned when a description matches no catalog entry.
type ErrUnknownSecurity struct {
	Input string
}

func (e *ErrUnknownSecurity) Error() string {
	return fmt.Sprintf("unknown security description %q (run list-securities for valid options)", e.Input)
}

// ErrDuplicateSecurity is returned when two requested securities resolve to
// the same catalog entry.
type ErrDuplicateSecurity struct {
	Description string
}

func (e *ErrDuplicateSecurity) Error() string {
	return fmt.Sprintf("security 1 and security 2 are both %q", e.Description)
}

// Categories returns the category names in display order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Descriptions returns the security descriptions for a category, in catalog
// order. Unknown categories yield nil.
func Descriptions(category string) []string {
	descs, ok := securities[category]
	if !ok {
		return nil
	}
	out := make([]string, len(descs))
	copy(out, descs)
	return out
}

// Resolve matches a description case-insensitively against the catalog and
// returns the canonically cased entry.
func Resolve(desc string) (string, error) {
	trimmed := strings.TrimSpace(desc)
	for _, cat := range categoryOrder {
		for _, valid := range securities[cat] {
			if strings.EqualFold(trimmed, valid) {
				return valid, nil
			}
		}
	}
	return "", &ErrUnknownSecurity{Input: desc}
}

// ResolvePair resolves a required first security and an optional second one
// (pass "" to omit). The two must not resolve to the same entry.
func ResolvePair(first, second string) ([]string, error) {
	s1, err := Resolve(first)
	if err != nil {
		return nil, err
	}
	if second == "" {
		return []string{s1}, nil
	}
	s2, err := Resolve(second)
	if err != nil {
		return nil, err
	}
	if s1 == s2 {
		return nil, &ErrDuplicateSecurity{Description: s1}
	}
	return []string{s1, s2}, nil
}

// CategoryOf returns the category a canonical description belongs to, or
// "Unknown" for descriptions outside the catalog.
func CategoryOf(desc string) string {
	for _, cat := range categoryOrder {
		for _, valid := range securities[cat] {
			if valid == desc {
				return cat
			}
		}
	}
	return "Unknown"
}
