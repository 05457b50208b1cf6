package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// wireLayout matches what a browser writes for Date.toISOString.
const wireLayout = "2006-01-02T15:04:05.000Z"

// stamp is the on-disk form of a point in time. It writes ISO-8601 UTC
// with milliseconds and reads either an RFC 3339 string or a number of
// epoch milliseconds.
type stamp struct {
	t time.Time
}

func newStamp(t time.Time) stamp {
	return stamp{t: t}
}

func newStampPtr(t *time.Time) *stamp {
	if t == nil {
		return nil
	}
	s := newStamp(*t)
	return &s
}

func (s stamp) value() time.Time {
	if s.t.IsZero() {
		return time.Time{}
	}
	return s.t.Local()
}

func (s *stamp) valuePtr() *time.Time {
	if s == nil || s.t.IsZero() {
		return nil
	}
	t := s.value()
	return &t
}

func (s stamp) String() string {
	return s.t.UTC().Format(wireLayout)
}

func (s stamp) MarshalJSON() ([]byte, error) {
	if s.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *stamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		s.t = time.Time{}
		return nil
	}
	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		t, err := parseStamp(raw)
		if err != nil {
			return err
		}
		s.t = t
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("timestamp must be a string or epoch milliseconds: %w", err)
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("invalid epoch milliseconds %v", ms)
	}
	s.t = time.UnixMilli(int64(ms))
	return nil
}

func (s stamp) MarshalYAML() (any, error) {
	if s.t.IsZero() {
		return nil, nil
	}
	return s.String(), nil
}

func parseStamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}
