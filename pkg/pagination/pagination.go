// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads ?page=&limit= for the roster and party lists and
// builds the "meta" block of a paginated response.
package pagination

import (
	"net/http"

	"github.com/taibuivan/talento/pkg/convert"
)

const (
	DefaultLimit = 20
	// MaxLimit caps a page; larger requests are clamped to it.
	MaxLimit = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// FromRequest reads "page" and "limit". Missing or malformed values use page 1
// and [DefaultLimit]; a limit above [MaxLimit] is clamped.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{
		Page:  convert.IntOr(query.Get("page"), 1),
		Limit: convert.IntOr(query.Get("limit"), DefaultLimit),
	}
	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.Limit < 1:
		params.Limit = DefaultLimit
	case params.Limit > MaxLimit:
		params.Limit = MaxLimit
	}
	return params
}

// Offset is the number of rows before this page.
func (params Params) Offset() int {
	return (max(params.Page, 1) - 1) * params.Limit
}

// Meta describes where a page sits in the full result.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// Meta builds the metadata for this page out of total matching rows.
func (params Params) Meta(total int) Meta {
	pages := 0
	if params.Limit > 0 {
		pages = (total + params.Limit - 1) / params.Limit
	}
	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    params.Page < pages,
	}
}
