package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 10
	// MaxPerPage caps how many rows any page query can request.
	MaxPerPage = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Meta describes the page window returned alongside a listing.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// Normalize clamps the params to sane bounds.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.PerPage
}

// NewMeta computes page metadata for a total row count.
func NewMeta(p Params, total int64) Meta {
	n := Normalize(p)
	pages := int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	if pages < 1 {
		pages = 1
	}
	return Meta{
		Page:    n.Page,
		PerPage: n.PerPage,
		Total:   total,
		Pages:   pages,
	}
}

// HasNext reports whether another page follows the current one.
func (m Meta) HasNext() bool { return m.Page < m.Pages }

// HasPrev reports whether a page precedes the current one.
func (m Meta) HasPrev() bool { return m.Page > 1 }
