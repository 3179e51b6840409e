package httputil

import (
	"net/http"
	"strconv"
)

const maxPageLimit = 100

// ListEnvelope is the body of collection responses. Paged collections also
// carry total, page and pages.
type ListEnvelope struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Total   *int `json:"total,omitempty"`
	Page    *int `json:"page,omitempty"`
	Pages   *int `json:"pages,omitempty"`
	Data    any  `json:"data"`
}

// PageRequest is a 1-based page number and page size
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage reads page and limit query parameters, falling back to page 1
// and defaultLimit for missing or invalid values
func ParsePage(r *http.Request, defaultLimit int) PageRequest {
	p := PageRequest{Page: 1, Limit: defaultLimit}

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		p.Limit = min(v, maxPageLimit)
	}

	return p
}

// RespondList sends an unpaged collection
func RespondList(w http.ResponseWriter, data any, count int) {
	RespondJSON(w, ListEnvelope{Success: true, Count: count, Data: data}, http.StatusOK)
}

// RespondPage sends one page of a collection
func RespondPage(w http.ResponseWriter, data any, count, total int, p PageRequest) {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	page := p.Page
	RespondJSON(w, ListEnvelope{
		Success: true,
		Count:   count,
		Total:   &total,
		Page:    &page,
		Pages:   &pages,
		Data:    data,
	}, http.StatusOK)
}
