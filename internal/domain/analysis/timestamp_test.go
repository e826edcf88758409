package analysis

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
		valid bool
	}{
		{"rfc3339 zulu", "2024-03-05T10:00:00Z", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"rfc3339 fraction", "2024-03-05T10:00:00.250Z", time.Date(2024, 3, 5, 10, 0, 0, 250000000, time.UTC), true},
		{"rfc3339 offset", "2024-03-05T12:00:00+02:00", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"no zone", "2024-03-05T10:00:00", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"sql style", "2024-03-05 10:00:00", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"date only", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"rfc1123", "Tue, 05 Mar 2024 10:00:00 GMT", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"nitter", "Mar 5, 2024 · 10:00 AM UTC", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"garbage", "not-a-date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseTimestamp(tt.input).Time()
			if ok != tt.valid {
				t.Fatalf("valid = %v, want %v", ok, tt.valid)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("time = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampJSON(t *testing.T) {
	t.Parallel()

	var p struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
		C Timestamp `json:"c"`
		D Timestamp `json:"d"`
	}
	data := `{"a":"2024-03-05T10:00:00Z","b":1709632800000,"c":null,"d":"not-a-date"}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	if got, ok := p.A.Time(); !ok || !got.Equal(want) {
		t.Errorf("a = %v %v", got, ok)
	}
	if got, ok := p.B.Time(); !ok || !got.Equal(want) {
		t.Errorf("b = %v %v", got, ok)
	}
	if _, ok := p.C.Time(); ok {
		t.Error("c should be invalid")
	}
	if !p.C.IsZero() {
		t.Error("c should be zero")
	}
	if _, ok := p.D.Time(); ok {
		t.Error("d should be invalid")
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != data {
		t.Errorf("round trip = %s", out)
	}
}

func TestTimestampEpochRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"upper bound", "8640000000000000", true},
		{"lower bound", "-8640000000000000", true},
		{"past upper bound", "8640000000000001", false},
		{"far future", "1e20", false},
		{"far past", "-1e20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if _, ok := ts.Time(); ok != tt.valid {
				t.Errorf("valid = %v, want %v", ok, tt.valid)
			}
			if out, _ := json.Marshal(ts); string(out) != tt.input {
				t.Errorf("marshal = %s, want %s", out, tt.input)
			}
		})
	}
}
