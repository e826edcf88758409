// internal/domain/analysis/timestamp.go

package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a leniently parsed creation time. Values that cannot be
// interpreted are kept verbatim and reported as invalid instead of failing
// the whole payload.
type Timestamp struct {
	raw   json.RawMessage
	time  time.Time
	valid bool
}

// maxEpochMillis is the widest epoch offset a JavaScript Date accepts
const maxEpochMillis = 8.64e15

// zone-less layouts are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006 · 3:04 PM MST",
	"Jan 2, 2006 · 3:04 PM",
}

// ParseTimestamp interprets s using the accepted layouts
func ParseTimestamp(s string) Timestamp {
	raw, _ := json.Marshal(s)
	ts := Timestamp{raw: raw}

	v := strings.TrimSpace(s)
	if v == "" {
		return ts
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			ts.time = t
			ts.valid = true
			return ts
		}
	}
	return ts
}

// TimestampFromTime wraps an already known instant
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{time: t, valid: true}
}

// Time returns the parsed instant and whether parsing succeeded
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.time, ts.valid
}

// IsZero reports whether no value was supplied at all
func (ts Timestamp) IsZero() bool {
	return len(ts.raw) == 0 && !ts.valid
}

// UnmarshalJSON accepts strings, epoch milliseconds and null. It never fails.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			ts.raw = append(json.RawMessage(nil), trimmed...)
			return nil
		}
		*ts = ParseTimestamp(s)
	default:
		ts.raw = append(json.RawMessage(nil), trimmed...)
		if ms, err := strconv.ParseFloat(string(trimmed), 64); err == nil && math.Abs(ms) <= maxEpochMillis {
			ts.time = time.UnixMilli(int64(ms)).UTC()
			ts.valid = true
		}
	}
	return nil
}

// MarshalJSON echoes the received value so clients see what the server sent
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if len(ts.raw) > 0 {
		return ts.raw, nil
	}
	if ts.valid {
		return json.Marshal(ts.time.Format(time.RFC3339Nano))
	}
	return []byte("null"), nil
}
