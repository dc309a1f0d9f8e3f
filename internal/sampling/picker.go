package sampling

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoWeight is returned when a weight table has nothing to draw from.
var ErrNoWeight = errors.New("weight table has no positive weight")

// Picker draws indexes proportionally to a fixed set of weights.
// It is immutable once built and can be shared between goroutines.
type Picker struct {
	cum []float64
}

// NewPicker builds a picker over weights. Weights must be finite and
// non-negative, with a positive total.
func NewPicker(weights []float64) (*Picker, error) {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("invalid weight %v at index %d", w, i)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, ErrNoWeight
	}
	return &Picker{cum: cum}, nil
}

// Len returns the number of entries.
func (p *Picker) Len() int {
	return len(p.cum)
}

// Pick returns an index in [0, Len()) with probability weight/total.
func (p *Picker) Pick(s *Stream) int {
	n := len(p.cum)
	x := s.Float64() * p.cum[n-1]
	i := sort.Search(n, func(i int) bool { return p.cum[i] > x })
	if i == n {
		// float rounding at the top of the range
		i = n - 1
	}
	return i
}

// Weighted pairs a value with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Table is a categorical distribution over values.
type Table[T any] struct {
	values []T
	picker *Picker
}

// NewTable builds a categorical distribution from value/weight pairs.
func NewTable[T any](entries []Weighted[T]) (*Table[T], error) {
	values := make([]T, len(entries))
	weights := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Value
		weights[i] = e.Weight
	}
	p, err := NewPicker(weights)
	if err != nil {
		return nil, err
	}
	return &Table[T]{values: values, picker: p}, nil
}

// MustTable is NewTable for fixed package-level distributions.
func MustTable[T any](entries []Weighted[T]) *Table[T] {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Draw returns one value.
func (t *Table[T]) Draw(s *Stream) T {
	return t.values[t.picker.Pick(s)]
}
