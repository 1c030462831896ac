// Package loanterms maps arbitrary loan terms onto the standard auto loan terms.
package loanterms

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
)

// StandardTerms lists the industry-standard auto loan terms in months, shortest first.
var StandardTerms = []int{36, 48, 60, 72, 84}

// Info describes how a single term was normalized.
type Info struct {
	Original    int  `json:"original"`
	Normalized  int  `json:"normalized"`
	Distance    int  `json:"distance"`
	WasModified bool `json:"was_modified"`
}

// Range is a normalized term range with its display label.
type Range struct {
	Min   int    `json:"term_range_min"`
	Max   int    `json:"term_range_max"`
	Label string `json:"term_label"`
}

// Normalize returns the nearest standard term. Zero maps to the shortest term and
// ties resolve to the shorter term.
func Normalize(term int) (int, error) {
	if term < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid term %d: must be non-negative", term))
	}
	if term == 0 {
		return StandardTerms[0], nil
	}

	nearest := StandardTerms[0]
	best := distance(term, nearest)
	for _, standard := range StandardTerms[1:] {
		if d := distance(term, standard); d < best {
			best = d
			nearest = standard
		}
	}
	return nearest, nil
}

// NormalizeRange normalizes both ends of a term range.
func NormalizeRange(minTerm, maxTerm int) (Range, error) {
	if minTerm > maxTerm {
		return Range{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid range: min (%d) > max (%d)", minTerm, maxTerm))
	}
	lo, err := Normalize(minTerm)
	if err != nil {
		return Range{}, err
	}
	hi, err := Normalize(maxTerm)
	if err != nil {
		return Range{}, err
	}
	return Range{Min: lo, Max: hi, Label: Label(lo, hi)}, nil
}

// IsStandard reports whether term is already a standard term.
func IsStandard(term int) bool {
	for _, standard := range StandardTerms {
		if term == standard {
			return true
		}
	}
	return false
}

// Describe normalizes term and reports the adjustment.
func Describe(term int) (Info, error) {
	normalized, err := Normalize(term)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Original:    term,
		Normalized:  normalized,
		Distance:    distance(term, normalized),
		WasModified: !IsStandard(term),
	}, nil
}

// Label renders "60 Months" or "60-72 Months".
func Label(minTerm, maxTerm int) string {
	if minTerm == maxTerm {
		return fmt.Sprintf("%d Months", minTerm)
	}
	return fmt.Sprintf("%d-%d Months", minTerm, maxTerm)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
