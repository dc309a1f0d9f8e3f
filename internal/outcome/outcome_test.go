package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

func TestFailureProbabilityMonotonic(t *testing.T) {
	for level := 2; level <= 5; level++ {
		assert.Greater(t, FailureProbability(level), FailureProbability(level-1))
	}
	assert.Equal(t, 0.03, FailureProbability(1))
	assert.Equal(t, 0.22, FailureProbability(5))
	assert.Equal(t, defaultFailureProbability, FailureProbability(0))
	assert.Equal(t, defaultFailureProbability, FailureProbability(9))
}

func TestSampleExitCodeDomain(t *testing.T) {
	allowed := map[int]bool{0: true, 1: true, 2: true, 126: true, 127: true, 130: true}
	st := sampling.NewStream(8, 0)
	for level := 1; level <= 5; level++ {
		for i := 0; i < 5000; i++ {
			code := SampleExitCode(level, st)
			assert.True(t, allowed[code], "unexpected exit code %d", code)
		}
	}
}

func TestSampleExitCodeFailureRate(t *testing.T) {
	st := sampling.NewStream(9, 0)
	const n = 100000
	for _, level := range []int{1, 5} {
		failed := 0
		for i := 0; i < n; i++ {
			if SampleExitCode(level, st) != 0 {
				failed++
			}
		}
		assert.InDelta(t, FailureProbability(level), float64(failed)/n, 0.01, "risk level %d", level)
	}
}
