package pagination

// DefaultLimit is the default number of entries per page.
const DefaultLimit = 20

// MaxLimit is the maximum number of entries per page.
const MaxLimit = 100

// Params holds the raw pagination query parameters.
type Params struct {
	Cursor string `query:"cursor"`
	Limit  int    `query:"limit"  validate:"omitempty,min=1,max=100"`
}

// EffectiveLimit returns the limit, defaulting when zero or negative and
// clamping to MaxLimit.
func (p Params) EffectiveLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}
