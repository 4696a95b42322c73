package domain

import (
	"fmt"
	"math"

	"parts-dispatch/internal/apperr"
)

const weightSumTolerance = 0.01

// WeightProfile holds the scoring weights for one urgency tier.
type WeightProfile struct {
	Distance    float64 `json:"distance" yaml:"distance"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
	Price       float64 `json:"price" yaml:"price"`
	Urgency     float64 `json:"urgency" yaml:"urgency"`
}

// Sum returns the sum of all weights.
func (w WeightProfile) Sum() float64 {
	return w.Distance + w.Reliability + w.Price + w.Urgency
}

// Validate checks that weights are non-negative and sum to 1.
func (w WeightProfile) Validate() error {
	if w.Distance < 0 || w.Reliability < 0 || w.Price < 0 || w.Urgency < 0 {
		return fmt.Errorf("%w: weights must be non-negative", apperr.ErrValidation)
	}
	if math.Abs(w.Sum()-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.3f, want 1.0", apperr.ErrValidation, w.Sum())
	}
	return nil
}

// WeightProfiles is an immutable set of weight profiles keyed by urgency tier.
type WeightProfiles struct {
	byTier map[Urgency]WeightProfile
}

var defaultWeightProfiles = map[Urgency]WeightProfile{
	UrgencyStandard: {Distance: 0.20, Reliability: 0.25, Price: 0.35, Urgency: 0.20},
	UrgencyUrgent:   {Distance: 0.30, Reliability: 0.25, Price: 0.15, Urgency: 0.30},
	UrgencyCritical: {Distance: 0.35, Reliability: 0.20, Price: 0.10, Urgency: 0.35},
}

// DefaultWeightProfiles returns the built-in profiles.
func DefaultWeightProfiles() WeightProfiles {
	p, _ := NewWeightProfiles(nil)
	return p
}

// NewWeightProfiles builds a profile set from overrides on top of the defaults.
// Unknown tiers and invalid vectors are rejected.
func NewWeightProfiles(overrides map[Urgency]WeightProfile) (WeightProfiles, error) {
	out := make(map[Urgency]WeightProfile, len(defaultWeightProfiles))
	for k, v := range defaultWeightProfiles {
		out[k] = v
	}
	for tier, w := range overrides {
		if _, ok := ParseUrgency(string(tier)); !ok {
			return WeightProfiles{}, fmt.Errorf("%w: unknown urgency tier %q", apperr.ErrValidation, tier)
		}
		if err := w.Validate(); err != nil {
			return WeightProfiles{}, fmt.Errorf("tier %s: %w", tier, err)
		}
		out[tier] = w
	}
	return WeightProfiles{byTier: out}, nil
}

// With returns a copy of p with overrides applied.
func (p WeightProfiles) With(overrides map[Urgency]WeightProfile) (WeightProfiles, error) {
	merged := p.All()
	for k, v := range overrides {
		merged[k] = v
	}
	return NewWeightProfiles(merged)
}

// For returns the profile for the tier, falling back to standard.
func (p WeightProfiles) For(u Urgency) WeightProfile {
	if w, ok := p.byTier[u]; ok {
		return w
	}
	if w, ok := p.byTier[UrgencyStandard]; ok {
		return w
	}
	return defaultWeightProfiles[UrgencyStandard]
}

// All returns a copy of every profile.
func (p WeightProfiles) All() map[Urgency]WeightProfile {
	out := make(map[Urgency]WeightProfile, len(p.byTier))
	for k, v := range p.byTier {
		out[k] = v
	}
	return out
}
