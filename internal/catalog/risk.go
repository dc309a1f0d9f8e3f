package catalog

import (
	"math"

	"github.com/cdtdelta/cmdsynth/internal/model"
)

// RiskDecay controls how fast higher risk levels become rare:
// base weight = exp(-RiskDecay * (level - 1)).
const RiskDecay = 0.9

// baseRiskWeights is indexed by risk level; index 0 is unused.
var baseRiskWeights = func() [model.MaxRiskLevel + 1]float64 {
	var w [model.MaxRiskLevel + 1]float64
	for level := model.MinRiskLevel; level <= model.MaxRiskLevel; level++ {
		w[level] = math.Exp(-RiskDecay * float64(level-1))
	}
	return w
}()

// BaseWeight returns the unconditional sampling weight for a risk level.
// It panics for levels outside [1,5].
func BaseWeight(level int) float64 {
	if level < model.MinRiskLevel || level > model.MaxRiskLevel {
		panic("catalog: risk level out of range")
	}
	return baseRiskWeights[level]
}
