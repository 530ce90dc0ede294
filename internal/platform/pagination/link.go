package pagination

import (
	"net/url"
	"strings"
)

// BuildLinkHeader renders an RFC 8288 Link header with next and prev
// relations. Existing query parameters are preserved; cursor is replaced.
func BuildLinkHeader(path string, query url.Values, next, prev string) string {
	var links []string
	if next != "" {
		links = append(links, link(path, query, next, "next"))
	}
	if prev != "" {
		links = append(links, link(path, query, prev, "prev"))
	}
	return strings.Join(links, ", ")
}

func link(path string, query url.Values, cursor, rel string) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("cursor", cursor)
	return "<" + path + "?" + q.Encode() + `>; rel="` + rel + `"`
}
