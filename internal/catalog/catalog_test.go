package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/cmdsynth/internal/model"
)

func TestBaseWeightDecay(t *testing.T) {
	assert.Equal(t, 1.0, BaseWeight(1))
	for level := 2; level <= model.MaxRiskLevel; level++ {
		ratio := BaseWeight(level) / BaseWeight(level-1)
		assert.InDelta(t, math.Exp(-RiskDecay), ratio, 1e-12)
		assert.Less(t, ratio, 1.0)
	}
}

func TestBaseWeightPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { BaseWeight(0) })
	assert.Panics(t, func() { BaseWeight(6) })
}

func TestBuildIsDeterministic(t *testing.T) {
	assert.Equal(t, Build().Templates(), Build().Templates())
}

func TestBuildSpansAllRiskLevels(t *testing.T) {
	c := Build()
	counts := map[int]int{}
	for _, tmpl := range c.Templates() {
		require.GreaterOrEqual(t, tmpl.RiskLevel, model.MinRiskLevel)
		require.LessOrEqual(t, tmpl.RiskLevel, model.MaxRiskLevel)
		counts[tmpl.RiskLevel]++
	}
	for level := model.MinRiskLevel; level <= model.MaxRiskLevel; level++ {
		assert.Positive(t, counts[level], "risk level %d", level)
	}
	assert.Less(t, counts[5], counts[1])
}

func TestBuildWeightsFollowRisk(t *testing.T) {
	for _, tmpl := range Build().Templates() {
		assert.Equal(t, BaseWeight(tmpl.RiskLevel), tmpl.BaseWeight, tmpl.BaseCommand)
		assert.NotEmpty(t, tmpl.Patterns, tmpl.BaseCommand)
		assert.GreaterOrEqual(t, tmpl.SudoProbability, 0.0)
		assert.LessOrEqual(t, tmpl.SudoProbability, 1.0)
	}
}

func TestDestructiveTemplatesUsuallyPrivileged(t *testing.T) {
	for _, tmpl := range Build().Templates() {
		if tmpl.RiskLevel == 5 {
			assert.GreaterOrEqual(t, tmpl.SudoProbability, 0.95, tmpl.BaseCommand)
		}
	}
}

func TestSharedBaseCommandAcrossLevels(t *testing.T) {
	levels := map[int]bool{}
	for _, tmpl := range Build().Templates() {
		if tmpl.BaseCommand == "rm" {
			levels[tmpl.RiskLevel] = true
		}
	}
	assert.True(t, levels[2])
	assert.True(t, levels[3])
	assert.True(t, levels[5])
}

func TestTemplatesReturnsCopy(t *testing.T) {
	c := Build()
	list := c.Templates()
	list[0].BaseCommand = "changed"
	assert.NotEqual(t, "changed", c.At(0).BaseCommand)
}

func TestAddWithoutPatternsPanics(t *testing.T) {
	b := &builder{}
	assert.Panics(t, func() { b.add("noop", 1, 0) })
}
