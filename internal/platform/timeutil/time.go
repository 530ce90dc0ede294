package timeutil

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	// RFC3339Millis is the wire format for timestamps in API responses.
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"

	// RFC3339Micros is the timestamp format used in structured logs.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z07:00"
)

// Time wraps time.Time and serializes as a UTC RFC 3339 string with
// millisecond precision in JSON and as a tag 0 date/time string in CBOR.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// String formats the time in the wire format.
func (t Time) String() string {
	return t.UTC().Format(RFC3339Millis)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timeutil: invalid JSON time %s", data)
	}
	parsed, err := parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{Number: 0, Content: t.String()})
}

// UnmarshalCBOR accepts a tag 0 date/time string, an untagged RFC 3339 string
// or a tag 1 epoch value.
func (t *Time) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("timeutil: empty CBOR data")
	}
	var decoded time.Time
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("timeutil: decode CBOR time: %w", err)
	}
	t.Time = decoded
	return nil
}

func parse(s string) (time.Time, error) {
	if parsed, err := time.Parse(RFC3339Millis, s); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse %q: %w", s, err)
	}
	return parsed, nil
}
