package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"sentilytics/internal/domain/analysis"
)

func sampleView() analysis.View {
	return analysis.View{
		Query:  "launch",
		Filter: analysis.FilterConfig{Platform: "all", DateRange: analysis.DateRangeAll},
		Breakdown: analysis.Breakdown{
			{Label: "positive", Count: 1},
			{Label: "negative", Count: 1},
		},
		Trend: []analysis.TrendBucket{
			{DateKey: "2024-03-05", Positive: 1, Negative: 1, Total: 2},
		},
		DominantPlatform:  "Twitter (X)",
		TopKeyword:        "great",
		Insight:           analysis.Insight{Title: "Mixed Reactions", Description: "Opinions are split."},
		TotalPosts:        2,
		PositivePct:       50,
		NegativePct:       50,
		DominantSentiment: "POSITIVE",
		PlatformCount:     2,
		HasResult:         true,
		GeneratedAt:       time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "json", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrintViewYAMLKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatYAML).PrintView(sampleView()); err != nil {
		t.Fatalf("PrintView() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "query: launch\n") {
		t.Errorf("unexpected head:\n%s", out)
	}
	pos := strings.Index(out, "  positive: 1")
	neg := strings.Index(out, "  negative: 1")
	if pos < 0 || neg < 0 || pos > neg {
		t.Errorf("breakdown order not preserved:\n%s", out)
	}
	if !strings.Contains(out, "title: Mixed Reactions") {
		t.Errorf("missing insight:\n%s", out)
	}
}

func TestPrintViewJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).PrintView(sampleView()); err != nil {
		t.Fatalf("PrintView() error = %v", err)
	}

	var decoded analysis.View
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a view: %v", err)
	}
	if decoded.TopKeyword != "great" || decoded.Breakdown.Count("negative") != 1 {
		t.Errorf("unexpected decoded view %+v", decoded)
	}
}

func TestPublishViewSkipsLoading(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	loading := sampleView()
	loading.Loading = true
	if err := p.PublishView(context.Background(), loading); err != nil {
		t.Fatalf("PublishView() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("loading view printed: %q", buf.String())
	}

	failed := sampleView()
	failed.Error = "Failed to fetch data"
	if err := p.PublishView(context.Background(), failed); err != nil {
		t.Fatalf("PublishView() error = %v", err)
	}
	if got := buf.String(); got != "[12:00:00] error: Failed to fetch data\n" {
		t.Errorf("unexpected output %q", got)
	}
}
