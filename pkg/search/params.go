package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
)

// Sort modes accepted by the search and listing endpoints.
const (
	SortInstalls = "installs"
	SortWeekly   = "weekly"
	SortName     = "name"
)

// Pagination bounds. The bulk listing endpoint allows larger pages than
// interactive search.
const (
	DefaultPageSize   = 12
	MaxSearchPageSize = 50
	MaxListPageSize   = 200

	minQueryLen = 2
	maxQueryLen = 100
)

// Variant selects the validation profile: interactive search requires a
// query, the bulk listing tolerates an empty one.
type Variant int

const (
	VariantSearch Variant = iota
	VariantList
)

// Params are the normalized request parameters shared by both query
// endpoints.
type Params struct {
	Query        string
	Sort         string
	Page         int
	PageSize     int
	SnapshotDate string
}

// ParamsFromQuery validates and coerces raw query values into Params.
// Validation happens before any storage access: a bad request never
// costs a durable read.
//
// Page and page size are coerced, not rejected: non-numeric or
// non-positive values fall back to their defaults, and page size is
// clamped to the variant's maximum.
func ParamsFromQuery(values url.Values, variant Variant) (Params, error) {
	p := Params{
		Query:        strings.TrimSpace(values.Get("q")),
		Sort:         values.Get("sort"),
		SnapshotDate: values.Get("snapshot_date"),
	}

	if variant == VariantSearch && len(p.Query) < minQueryLen {
		return Params{}, errors.New(errors.ErrCodeInvalidRequest, "q must be at least 2 characters")
	}
	if len(p.Query) > maxQueryLen {
		return Params{}, errors.New(errors.ErrCodeInvalidRequest, "q must be <= 100 characters")
	}

	if p.Sort == "" {
		p.Sort = SortInstalls
	}
	switch p.Sort {
	case SortInstalls, SortWeekly, SortName:
	default:
		return Params{}, errors.New(errors.ErrCodeInvalidRequest, "sort must be one of installs, weekly, name")
	}

	if p.SnapshotDate != "" && !snapshot.ValidDate(p.SnapshotDate) {
		return Params{}, errors.New(errors.ErrCodeInvalidRequest, "snapshot_date must be YYYY-MM-DD")
	}

	p.Page = 1
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = n
	}

	maxSize := MaxSearchPageSize
	if variant == VariantList {
		maxSize = MaxListPageSize
	}
	p.PageSize = DefaultPageSize
	if n, err := strconv.Atoi(values.Get("page_size")); err == nil && n > 0 {
		p.PageSize = n
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}

	return p, nil
}
