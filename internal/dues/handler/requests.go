package handler

import (
	"strings"

	"kitledger/internal/dues"
	domainerrors "kitledger/pkg/domain-errors"
)

const (
	maxSearchLength = 100
	maxPageSize     = 200
)

// QueryFilters mirrors dues.Filters on the wire. All fields are optional.
type QueryFilters struct {
	Search   string `json:"search,omitempty"`
	Course   string `json:"course,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Semester *int   `json:"semester,omitempty"`
}

// QueryRequest is the body of POST /dues/query.
type QueryRequest struct {
	Filters  QueryFilters `json:"filters"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

func (r *QueryRequest) Validate() error {
	if len(strings.TrimSpace(r.Filters.Search)) > maxSearchLength {
		return domainerrors.New(domainerrors.CodeValidation, "search must be at most 100 characters")
	}
	if r.PageSize > maxPageSize {
		return domainerrors.New(domainerrors.CodeValidation, "page_size must be at most 200")
	}
	if r.Filters.Year != nil && *r.Filters.Year < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "year must not be negative")
	}
	if r.Filters.Semester != nil && *r.Filters.Semester < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "semester must not be negative")
	}
	return nil
}

func (r *QueryRequest) toServiceRequest() dues.QueryRequest {
	return dues.QueryRequest{
		Filters: dues.Filters{
			Search:   r.Filters.Search,
			Course:   r.Filters.Course,
			Year:     r.Filters.Year,
			Branch:   r.Filters.Branch,
			Semester: r.Filters.Semester,
		},
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}
