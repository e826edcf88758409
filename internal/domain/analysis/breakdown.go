package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabelCount is one entry of a sentiment breakdown
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Breakdown maps sentiment labels to counts. Entries keep first-seen order,
// which is also the order of the JSON object it is encoded as.
type Breakdown []LabelCount

// Total sums all counts
func (b Breakdown) Total() int {
	total := 0
	for _, lc := range b {
		total += lc.Count
	}
	return total
}

// Count returns the count recorded for label
func (b Breakdown) Count(label string) int {
	for _, lc := range b {
		if lc.Label == label {
			return lc.Count
		}
	}
	return 0
}

// Add increments label, appending it when first seen
func (b Breakdown) Add(label string, n int) Breakdown {
	for i := range b {
		if b[i].Label == label {
			b[i].Count += n
			return b
		}
	}
	return append(b, LabelCount{Label: label, Count: n})
}

// Clone returns an independent copy
func (b Breakdown) Clone() Breakdown {
	if b == nil {
		return nil
	}
	out := make(Breakdown, len(b))
	copy(out, b)
	return out
}

// MarshalJSON encodes the breakdown as an ordered object
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lc := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(fmt.Sprintf("%d", lc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of label counts preserving key order
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*b = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sentiment breakdown: expected object, got %v", tok)
	}

	out := Breakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := keyTok.(string)

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("sentiment breakdown %q: %w", label, err)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("sentiment breakdown %q: %w", label, err)
		}

		replaced := false
		for i := range out {
			if out[i].Label == label {
				out[i].Count = int(f)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, LabelCount{Label: label, Count: int(f)})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = out
	return nil
}
