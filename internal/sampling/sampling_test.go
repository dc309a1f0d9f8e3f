package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReproducible(t *testing.T) {
	a := NewStream(42, 7)
	b := NewStream(42, 7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestStreamsIndependentByID(t *testing.T) {
	a := NewStream(42, 1)
	b := NewStream(42, 2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Zero(t, same)
}

func TestStreamRead(t *testing.T) {
	s := NewStream(1, 1)
	buf := make([]byte, 16)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.NotEqual(t, make([]byte, 16), buf)
}

func TestIntRangeInclusive(t *testing.T) {
	s := NewStream(3, 0)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := s.IntRange(101, 104)
		require.GreaterOrEqual(t, v, 101)
		require.LessOrEqual(t, v, 104)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
}

func TestLogNormalPositive(t *testing.T) {
	s := NewStream(5, 0)
	for i := 0; i < 1000; i++ {
		require.Greater(t, s.LogNormal(0, 1), 0.0)
	}
}

func TestNewPickerRejectsBadWeights(t *testing.T) {
	_, err := NewPicker(nil)
	assert.ErrorIs(t, err, ErrNoWeight)

	_, err = NewPicker([]float64{0, 0})
	assert.ErrorIs(t, err, ErrNoWeight)

	_, err = NewPicker([]float64{1, -1})
	assert.Error(t, err)
}

func TestPickerNeverPicksZeroWeight(t *testing.T) {
	p, err := NewPicker([]float64{0, 1, 0, 2, 0})
	require.NoError(t, err)

	s := NewStream(9, 0)
	counts := make([]int, p.Len())
	for i := 0; i < 30000; i++ {
		counts[p.Pick(s)]++
	}
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[2])
	assert.Zero(t, counts[4])
	// index 3 carries twice the weight of index 1
	ratio := float64(counts[3]) / float64(counts[1])
	assert.InDelta(t, 2.0, ratio, 0.15)
}

func TestTableDraw(t *testing.T) {
	tbl := MustTable([]Weighted[string]{
		{Value: "bash", Weight: 0.9},
		{Value: "sh", Weight: 0.1},
	})
	s := NewStream(11, 0)
	bash := 0
	for i := 0; i < 10000; i++ {
		if tbl.Draw(s) == "bash" {
			bash++
		}
	}
	assert.InDelta(t, 9000, bash, 300)
}

func TestMustTablePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { MustTable[int](nil) })
}
