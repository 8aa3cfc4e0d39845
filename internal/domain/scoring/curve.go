package scoring

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Anchor is one (time, score) node of a curve.
type Anchor struct {
	Time  float64
	Score float64
}

// Curve maps a swim time to points by piecewise-linear interpolation between
// anchors. It is immutable once built.
type Curve struct {
	times  []float64
	scores []float64
}

// NewCurve builds a curve from a time -> score mapping. At least two anchors
// with positive, finite times are required.
func NewCurve(points map[float64]float64) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 anchors, got %d", ErrInvalidTable, len(points))
	}

	anchors := make([]Anchor, 0, len(points))
	for t, s := range points {
		if t <= 0 || math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("%w: anchor time %v", ErrInvalidTable, t)
		}
		if math.IsInf(s, 0) || math.IsNaN(s) {
			return nil, fmt.Errorf("%w: anchor score %v", ErrInvalidTable, s)
		}
		anchors = append(anchors, Anchor{Time: t, Score: s})
	}
	slices.SortFunc(anchors, func(a, b Anchor) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})

	c := &Curve{
		times:  make([]float64, len(anchors)),
		scores: make([]float64, len(anchors)),
	}
	for i, a := range anchors {
		c.times[i] = a.Time
		c.scores[i] = a.Score
	}
	return c, nil
}

// At returns the score for a time in seconds. Non-positive times score 0.
// Times outside the anchor range follow the slope of the nearest edge segment;
// the result never drops below 0.
func (c *Curve) At(seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}

	n := len(c.times)
	i := sort.SearchFloat64s(c.times, seconds)
	if i < n && c.times[i] == seconds {
		return math.Max(c.scores[i], 0)
	}

	lo, hi := i-1, i
	switch {
	case i == 0:
		lo, hi = 0, 1
	case i == n:
		lo, hi = n-2, n-1
	}

	slope := (c.scores[hi] - c.scores[lo]) / (c.times[hi] - c.times[lo])
	return math.Max(c.scores[lo]+slope*(seconds-c.times[lo]), 0)
}

// Anchors returns a copy of the anchors in ascending time order.
func (c *Curve) Anchors() []Anchor {
	out := make([]Anchor, len(c.times))
	for i := range c.times {
		out[i] = Anchor{Time: c.times[i], Score: c.scores[i]}
	}
	return out
}
