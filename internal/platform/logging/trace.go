package logging

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync/atomic"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(
	`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`,
)

var projectID atomic.Pointer[string]

// SetProjectID sets the Google Cloud project used to build trace resource
// names. Without it, log entries carry no trace correlation.
func SetProjectID(id string) {
	projectID.Store(&id)
}

func currentProjectID() string {
	if p := projectID.Load(); p != nil {
		return *p
	}
	return ""
}

type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceContext{}, false
	}
	return traceContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

func traceResource(project, traceID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", project, traceID)
}

// traceAttrs returns the Cloud Logging trace fields for header, or nil when
// the header is malformed or no project is configured.
func traceAttrs(header, project string) []slog.Attr {
	if project == "" {
		return nil
	}
	tc, ok := parseTraceparent(header)
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("logging.googleapis.com/trace", traceResource(project, tc.traceID)),
		slog.String("logging.googleapis.com/spanId", tc.spanID),
		slog.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
	}
}

// correlationID prefers the trace resource and falls back to the request ID.
func correlationID(header, project, requestID string) string {
	if project != "" {
		if tc, ok := parseTraceparent(header); ok {
			return traceResource(project, tc.traceID)
		}
	}
	return requestID
}
