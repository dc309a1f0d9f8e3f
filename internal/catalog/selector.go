package catalog

import (
	"fmt"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

// threatTilt scales how strongly a user's threat level favours risky templates.
const threatTilt = 0.4

// EffectiveWeight returns a template's weight for a user at threatLevel.
// Risk-1 templates and zero-threat users keep the base weight; otherwise the
// weight is multiplied by 1 + 0.4 * threat * (risk - 1).
func EffectiveWeight(t *model.CommandTemplate, threatLevel int) float64 {
	offset := t.RiskLevel - 1
	if offset <= 0 || threatLevel <= 0 {
		return t.BaseWeight
	}
	return t.BaseWeight * (1 + threatTilt*float64(threatLevel)*float64(offset))
}

// Selector draws templates for users with one categorical draw over the
// whole catalog. Weights only depend on threat level, so one picker per
// level is prepared up front.
type Selector struct {
	catalog *Catalog
	pickers [model.MaxThreatLevel + 1]*sampling.Picker
}

// NewSelector prepares pickers for every threat level.
func NewSelector(c *Catalog) (*Selector, error) {
	s := &Selector{catalog: c}
	for level := 0; level <= model.MaxThreatLevel; level++ {
		p, err := s.newPicker(level)
		if err != nil {
			return nil, fmt.Errorf("threat level %d: %w", level, err)
		}
		s.pickers[level] = p
	}
	return s, nil
}

func (s *Selector) newPicker(threatLevel int) (*sampling.Picker, error) {
	weights := make([]float64, s.catalog.Len())
	for i := range weights {
		weights[i] = EffectiveWeight(s.catalog.At(i), threatLevel)
	}
	return sampling.NewPicker(weights)
}

// Select draws one template for u.
func (s *Selector) Select(u *model.User, st *sampling.Stream) *model.CommandTemplate {
	if u.ThreatLevel >= 0 && u.ThreatLevel <= model.MaxThreatLevel {
		return s.catalog.At(s.pickers[u.ThreatLevel].Pick(st))
	}
	p, err := s.newPicker(u.ThreatLevel)
	if err != nil {
		// a non-empty catalog always has positive weight
		panic(err)
	}
	return s.catalog.At(p.Pick(st))
}

// RiskProbability returns the exact chance that a user at threatLevel draws
// a template of the given risk level.
func (s *Selector) RiskProbability(threatLevel, riskLevel int) float64 {
	var total, match float64
	for i := 0; i < s.catalog.Len(); i++ {
		t := s.catalog.At(i)
		w := EffectiveWeight(t, threatLevel)
		total += w
		if t.RiskLevel == riskLevel {
			match += w
		}
	}
	if total == 0 {
		return 0
	}
	return match / total
}
