package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/yaml.v2"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/mcp"
)

// Format represents the output format type
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func parseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatText, fmt.Errorf("unknown output format %q", s)
}

// Printer renders views and runs. It also serves as the view publisher of
// watch, printing every settled view.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	format Format
}

var _ analysis.ViewPublisher = (*Printer)(nil)

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		writer: w,
		format: format,
	}
}

// PublishView implements analysis.ViewPublisher. Loading views are skipped.
func (p *Printer) PublishView(_ context.Context, view analysis.View) error {
	if view.Loading {
		return nil
	}
	if view.Error != "" && p.format == FormatText {
		p.mu.Lock()
		defer p.mu.Unlock()
		_, err := fmt.Fprintf(p.writer, "[%s] error: %s\n", view.GeneratedAt.Format(time.TimeOnly), view.Error)
		return err
	}
	return p.PrintView(view)
}

// PrintView prints the summary of a view
func (p *Printer) PrintView(view analysis.View) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(view)
	case FormatYAML:
		return p.printYAML(viewYAML(view))
	default:
		return p.printText(mcp.FormatView(view))
	}
}

// PrintTrend prints the trend series of a view
func (p *Printer) PrintTrend(view analysis.View) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(view.Trend)
	case FormatYAML:
		return p.printYAML(trendYAML(view.Trend))
	default:
		return p.printText(mcp.FormatTrend(view))
	}
}

// PrintRuns prints a run history
func (p *Printer) PrintRuns(runs []analysis.Run) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(runs)
	case FormatYAML:
		items := make([]yaml.MapSlice, 0, len(runs))
		for _, r := range runs {
			items = append(items, yaml.MapSlice{
				{Key: "id", Value: r.ID},
				{Key: "query", Value: r.Query},
				{Key: "totalResults", Value: r.TotalResults},
				{Key: "postCount", Value: r.PostCount},
				{Key: "breakdown", Value: breakdownYAML(r.Breakdown)},
				{Key: "fetchedAt", Value: r.FetchedAt.UTC().Format(time.RFC3339)},
			})
		}
		return p.printYAML(items)
	default:
		return p.printText(mcp.FormatRuns(runs))
	}
}

func (p *Printer) printText(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.writer, s)
	return err
}

func (p *Printer) printJSON(v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) printYAML(v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling yaml: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.writer.Write(out)
	return err
}

// viewYAML keeps the field order of the text summary
func viewYAML(view analysis.View) yaml.MapSlice {
	out := yaml.MapSlice{
		{Key: "query", Value: view.Query},
		{Key: "filter", Value: yaml.MapSlice{
			{Key: "platform", Value: view.Filter.Platform},
			{Key: "dateRange", Value: string(view.Filter.DateRange)},
		}},
		{Key: "totalPosts", Value: view.TotalPosts},
		{Key: "breakdown", Value: breakdownYAML(view.Breakdown)},
		{Key: "positivePct", Value: view.PositivePct},
		{Key: "negativePct", Value: view.NegativePct},
		{Key: "dominantSentiment", Value: view.DominantSentiment},
		{Key: "dominantPlatform", Value: view.DominantPlatform},
		{Key: "platformCount", Value: view.PlatformCount},
		{Key: "topKeyword", Value: view.TopKeyword},
		{Key: "trend", Value: trendYAML(view.Trend)},
		{Key: "insight", Value: yaml.MapSlice{
			{Key: "title", Value: view.Insight.Title},
			{Key: "description", Value: view.Insight.Description},
		}},
	}
	if view.Error != "" {
		out = append(out, yaml.MapItem{Key: "error", Value: view.Error})
	}
	return out
}

func breakdownYAML(b analysis.Breakdown) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(b))
	for _, lc := range b {
		out = append(out, yaml.MapItem{Key: lc.Label, Value: lc.Count})
	}
	return out
}

func trendYAML(trend []analysis.TrendBucket) []yaml.MapSlice {
	out := make([]yaml.MapSlice, 0, len(trend))
	for _, b := range trend {
		out = append(out, yaml.MapSlice{
			{Key: "date", Value: b.DateKey},
			{Key: "positive", Value: b.Positive},
			{Key: "negative", Value: b.Negative},
			{Key: "neutral", Value: b.Neutral},
			{Key: "total", Value: b.Total},
		})
	}
	return out
}
