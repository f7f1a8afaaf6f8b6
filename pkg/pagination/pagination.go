package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can request per page.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside every listing.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Normalize enforces the configured default and maximum limits and a
// one-based page number.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset converts the normalized page/limit pair into a row offset.
func (p Params) Offset() int {
	norm := Normalize(p)
	return (norm.Page - 1) * norm.Limit
}

// BuildMeta assembles the pagination block for a total row count.
func BuildMeta(p Params, total int64) Meta {
	norm := Normalize(p)
	pages := int(total) / norm.Limit
	if int(total)%norm.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return Meta{
		Page:       norm.Page,
		Limit:      norm.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
