package pagination

import (
	"net/url"
	"slices"
)

// Page is one slice of a listing plus the cursors around it.
type Page[T any] struct {
	Items      []T
	Total      int
	NextCursor string
	PrevCursor string
	LinkHeader string
}

// Paginate returns the page of entries that follows cursor. keyOf yields the
// stable key stored in cursors. A cursor whose key is unknown restarts from
// the first entry; callers that must reject it check with Contains first.
func Paginate[T any](
	entries []T,
	cursor Cursor,
	limit int,
	cursorType string,
	keyOf func(T) string,
	path string,
	query url.Values,
) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := 0
	if cursor.Value != "" {
		if idx := indexOf(entries, cursor.Value, keyOf); idx >= 0 {
			start = idx + 1
		}
	}
	end := min(start+limit, len(entries))

	page := Page[T]{
		Items: slices.Clone(entries[start:end]),
		Total: len(entries),
	}
	if page.Items == nil {
		page.Items = []T{}
	}

	if end < len(entries) && end > start {
		page.NextCursor = Cursor{Type: cursorType, Value: keyOf(entries[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Type: cursorType}
		if prevStart := start - limit; prevStart > 0 {
			prev.Value = keyOf(entries[prevStart-1])
		}
		page.PrevCursor = prev.Encode()
	}

	page.LinkHeader = BuildLinkHeader(path, query, page.NextCursor, page.PrevCursor)
	return page
}

// Contains reports whether key names one of the entries.
func Contains[T any](entries []T, key string, keyOf func(T) string) bool {
	return indexOf(entries, key, keyOf) >= 0
}

func indexOf[T any](entries []T, key string, keyOf func(T) string) int {
	return slices.IndexFunc(entries, func(e T) bool { return keyOf(e) == key })
}
