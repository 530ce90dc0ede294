package respond

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"
)

type format int

const (
	formatJSON format = iota
	formatCBOR
	formatHTML
)

// mediaRange is one parsed Accept header entry.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept parses an Accept header value into media ranges per RFC 9110.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		mr := mediaRange{q: 1.0}
		mediaType, params, hasParams := strings.Cut(part, ";")
		if hasParams {
			for param := range strings.SplitSeq(params, ";") {
				key, val, _ := strings.Cut(strings.TrimSpace(param), "=")
				if !strings.EqualFold(key, "q") {
					continue
				}
				if q, err := strconv.ParseFloat(val, 64); err == nil && q >= 0 && q <= 1 {
					mr.q = q
				}
			}
		}

		typ, subtype, ok := strings.Cut(strings.ToLower(strings.TrimSpace(mediaType)), "/")
		if !ok {
			subtype = "*"
		}
		mr.typ = strings.TrimSpace(typ)
		mr.subtype = strings.TrimSpace(subtype)
		ranges = append(ranges, mr)
	}
	return ranges
}

// matchSpecificity reports how specifically mr names f; zero means no match.
func matchSpecificity(mr mediaRange, f format) int {
	switch f {
	case formatHTML:
		switch {
		case mr.typ == "text" && mr.subtype == "html":
			return 3
		case mr.typ == "application" && mr.subtype == "xhtml+xml":
			return 3
		case mr.typ == "text" && mr.subtype == "*":
			return 2
		}
		return 0
	case formatCBOR:
		switch {
		case mr.typ == "application" && mr.subtype == "problem+cbor":
			return 4
		case mr.typ == "application" && (mr.subtype == "cbor" || strings.HasSuffix(mr.subtype, "+cbor")):
			return 3
		}
	case formatJSON:
		switch {
		case mr.typ == "application" && mr.subtype == "problem+json":
			return 4
		case mr.typ == "application" && (mr.subtype == "json" || strings.HasSuffix(mr.subtype, "+json")):
			return 3
		}
	}
	switch {
	case mr.typ == "application" && mr.subtype == "*":
		return 2
	case mr.typ == "*" && mr.subtype == "*":
		return 1
	}
	return 0
}

// quality returns the q-value of the most specific range matching f,
// or -1 when nothing matches.
func quality(ranges []mediaRange, f format) (float64, int) {
	q, best := -1.0, 0
	for _, mr := range ranges {
		s := matchSpecificity(mr, f)
		if s == 0 {
			continue
		}
		if s > best || (s == best && mr.q > q) {
			q, best = mr.q, s
		}
	}
	return q, best
}

// selectFormat picks the response format among the candidates. q-value ranks
// first, specificity breaks ties, and candidate order breaks the rest. The
// first candidate is the default when the header is empty or nothing matches.
func selectFormat(header string, candidates ...format) format {
	ranges := parseAccept(header)
	chosen := candidates[0]
	if len(ranges) == 0 {
		return chosen
	}

	bestQ, bestS := 0.0, 0
	for _, f := range candidates {
		q, s := quality(ranges, f)
		if q <= 0 {
			continue
		}
		if q > bestQ || (q == bestQ && s > bestS) {
			chosen, bestQ, bestS = f, q, s
		}
	}
	return chosen
}

// ensureVary adds values to the Vary header without duplicating existing entries.
func ensureVary(h http.Header, values ...string) {
	existing := make(map[string]struct{})
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			existing[strings.TrimSpace(part)] = struct{}{}
		}
	}
	for _, v := range values {
		if _, ok := existing[v]; !ok {
			h.Add("Vary", v)
			existing[v] = struct{}{}
		}
	}
}

// Negotiate writes a response using content negotiation (JSON or CBOR).
func Negotiate(c *echo.Context, status int, data any) error {
	if selectFormat(c.Request().Header.Get("Accept"), formatJSON, formatCBOR) == formatCBOR {
		b, err := cbor.Marshal(data)
		if err != nil {
			return err
		}
		return c.Blob(status, "application/cbor", b)
	}
	return c.JSON(status, data)
}
