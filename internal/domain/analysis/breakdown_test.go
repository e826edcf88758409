package analysis

import (
	"encoding/json"
	"testing"
)

func TestBreakdownPreservesOrder(t *testing.T) {
	t.Parallel()

	var b Breakdown
	if err := json.Unmarshal([]byte(`{"Neutral": 2, "positive": 5, "NEGATIVE": 1}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"Neutral", "positive", "NEGATIVE"}
	if len(b) != len(want) {
		t.Fatalf("len = %d, want %d", len(b), len(want))
	}
	for i, label := range want {
		if b[i].Label != label {
			t.Errorf("b[%d] = %q, want %q", i, b[i].Label, label)
		}
	}
	if b.Total() != 8 {
		t.Errorf("Total = %d, want 8", b.Total())
	}
	if b.Count("positive") != 5 {
		t.Errorf("Count(positive) = %d", b.Count("positive"))
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"Neutral":2,"positive":5,"NEGATIVE":1}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestBreakdownRejectsNonObject(t *testing.T) {
	t.Parallel()

	var b Breakdown
	if err := json.Unmarshal([]byte(`[1,2]`), &b); err == nil {
		t.Fatal("expected error for array breakdown")
	}
}

func TestBreakdownAdd(t *testing.T) {
	t.Parallel()

	var b Breakdown
	b = b.Add("positive", 1)
	b = b.Add("negative", 1)
	b = b.Add("positive", 2)

	if len(b) != 2 || b[0].Label != "positive" || b[0].Count != 3 {
		t.Errorf("unexpected breakdown %+v", b)
	}

	c := b.Clone()
	c[0].Count = 99
	if b[0].Count != 3 {
		t.Error("Clone shares backing array")
	}
}

func TestDateRangeWindow(t *testing.T) {
	t.Parallel()

	if _, ok := DateRangeAll.Window(); ok {
		t.Error("all should be unbounded")
	}
	if _, ok := DateRange("90d").Window(); ok {
		t.Error("unknown range should be unbounded")
	}
	if w, ok := DateRange7d.Window(); !ok || w.Hours() != 168 {
		t.Errorf("7d = %v %v", w, ok)
	}
	if _, err := ParseDateRange("1y"); err == nil {
		t.Error("expected error for 1y")
	}
}
