package pagination

// DefaultLimit is the standard page size when a limit is not provided.
const DefaultLimit = 12

// MaxLimit caps how many rows any listing query can request.
const MaxLimit = 100

// Params holds page/limit pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Page describes a materialized page of results for response envelopes.
type Page struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Normalize clamps page and limit to sane bounds.
func Normalize(params Params) Params {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	return params
}

// Offset converts normalized params into a SQL offset.
func (p Params) Offset() int {
	normalized := Normalize(p)
	return (normalized.Page - 1) * normalized.Limit
}

// NewPage computes page metadata for the given total row count.
func NewPage(params Params, total int64) Page {
	normalized := Normalize(params)
	totalPages := int((total + int64(normalized.Limit) - 1) / int64(normalized.Limit))
	if totalPages < 1 && total > 0 {
		totalPages = 1
	}
	return Page{
		Total:      total,
		Page:       normalized.Page,
		Limit:      normalized.Limit,
		TotalPages: totalPages,
		HasNext:    normalized.Page < totalPages,
		HasPrev:    normalized.Page > 1 && total > 0,
	}
}
