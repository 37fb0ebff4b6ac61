// Package catalog owns the product catalog: kit items students may be
// entitled to, with optional eligibility narrowings.
package catalog

import "github.com/shopspring/decimal"

// Item is a catalog entry. Years, Semesters, and Branches are optional
// narrowings: an empty list means the item applies to every year, semester, or
// branch of its course. Year is the legacy single-year field, consulted only
// when Years is empty.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Course    string          `json:"course"`
	Price     decimal.Decimal `json:"price"`
	Years     []int           `json:"years,omitempty"`
	Year      *int            `json:"year,omitempty"`
	Semesters []int           `json:"semesters,omitempty"`
	Branches  []string        `json:"branches,omitempty"`
}

// EligibleYears resolves the year constraint, folding the legacy single-year
// field into list form. An empty result means unconstrained.
func (i Item) EligibleYears() []int {
	if len(i.Years) > 0 {
		return i.Years
	}
	if i.Year != nil {
		return []int{*i.Year}
	}
	return nil
}

// Clone returns a deep copy so snapshot consumers can never observe catalog
// mutations mid-computation.
func (i Item) Clone() Item {
	out := i
	if i.Year != nil {
		y := *i.Year
		out.Year = &y
	}
	if i.Years != nil {
		out.Years = append([]int(nil), i.Years...)
	}
	if i.Semesters != nil {
		out.Semesters = append([]int(nil), i.Semesters...)
	}
	if i.Branches != nil {
		out.Branches = append([]string(nil), i.Branches...)
	}
	return out
}
