package handler

import "kitledger/internal/dues"

// QueryResponse is the body of a successful POST /dues/query. Records carry
// one page; stats, total and page_count describe the whole filtered set.
type QueryResponse struct {
	Records   []dues.MatchRecord `json:"records"`
	Stats     dues.DueStats      `json:"stats"`
	Total     int                `json:"total"`
	PageCount int                `json:"page_count"`
}

func FromResult(result dues.QueryResult) QueryResponse {
	records := result.Records
	if records == nil {
		records = []dues.MatchRecord{}
	}
	return QueryResponse{
		Records:   records,
		Stats:     result.Stats,
		Total:     result.Total,
		PageCount: result.PageCount,
	}
}
