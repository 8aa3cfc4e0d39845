// Package scoring converts swim times into points using reference score tables.
package scoring

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/points_15plus.yaml
var defaultTableYAML []byte

// Scorer computes points for a time in a given event.
type Scorer interface {
	// Score returns the points for seconds in the event identified by key.
	Score(key Key, seconds float64) (float64, error)
}

// Table is a read-only set of curves keyed by gender and event.
type Table struct {
	curves map[Key]*Curve
}

// NewTable builds a table from per-event time -> score mappings.
func NewTable(data map[Key]map[float64]float64) (*Table, error) {
	t := &Table{curves: make(map[Key]*Curve, len(data))}
	for k, points := range data {
		c, err := NewCurve(points)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		t.curves[k] = c
	}
	return t, nil
}

// LoadTable decodes a YAML table of the form
//
//	Men's 100 Freestyle (SCY):
//	  41.23: 1000
//	  43.56: 950
func LoadTable(r io.Reader) (*Table, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	data := make(map[Key]map[float64]float64, len(raw))
	for name, node := range raw {
		k, err := ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		if _, dup := data[k]; dup {
			return nil, fmt.Errorf("%w: duplicate event %q", ErrInvalidTable, k)
		}
		points, err := decodeAnchors(&node)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, k, err)
		}
		data[k] = points
	}
	return NewTable(data)
}

// decodeAnchors reads a time -> score mapping. Times are compared by value, so
// "22.0" and "22.00" in the same sub-table are duplicates.
func decodeAnchors(n *yaml.Node) (map[float64]float64, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: want a mapping of time to score", n.Line)
	}
	points := make(map[float64]float64, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		t, err := strconv.ParseFloat(strings.TrimSpace(kn.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: anchor time %q", kn.Line, kn.Value)
		}
		if _, dup := points[t]; dup {
			return nil, fmt.Errorf("line %d: duplicate anchor time %v", kn.Line, t)
		}
		var score float64
		if err := vn.Decode(&score); err != nil {
			return nil, fmt.Errorf("line %d: anchor score %q", vn.Line, vn.Value)
		}
		points[t] = score
	}
	return points, nil
}

// LoadTableFile reads a YAML table from path.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultTableYAML))
})

// DefaultTable returns the built-in 15 & over table.
func DefaultTable() (*Table, error) {
	return defaultTable()
}

// Lookup returns the curve for key or ErrNoReferenceData.
func (t *Table) Lookup(key Key) (*Curve, error) {
	c, ok := t.curves[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoReferenceData, key)
	}
	return c, nil
}

// Score implements Scorer. Non-positive times score 0 without a lookup.
func (t *Table) Score(key Key, seconds float64) (float64, error) {
	if seconds <= 0 {
		return 0, nil
	}
	c, err := t.Lookup(key)
	if err != nil {
		return 0, err
	}
	return c.At(seconds), nil
}

// Keys lists the events the table covers, sorted by name.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.curves))
	for k := range t.curves {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

// Len returns the number of curves.
func (t *Table) Len() int { return len(t.curves) }

// Interpolate scores seconds for the event description ("100 Freestyle (SCY)")
// and gender label ("Men", "Women") against table.
func Interpolate(description, gender string, seconds float64, table *Table) (float64, error) {
	if seconds <= 0 {
		return 0, nil
	}
	name := gender + "'s " + description
	key, err := ParseKey(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoReferenceData, name)
	}
	return table.Score(key, seconds)
}
