package matching

import (
	"sync/atomic"

	"parts-dispatch/internal/domain"
)

// Profiles holds the active weight profile set. Readers always see a complete,
// validated set; Replace swaps in a new one without touching the old value.
type Profiles struct {
	cur atomic.Pointer[domain.WeightProfiles]
}

// NewProfiles returns Profiles starting from initial.
func NewProfiles(initial domain.WeightProfiles) *Profiles {
	p := &Profiles{}
	p.cur.Store(&initial)
	return p
}

// Current returns the active profile set.
func (p *Profiles) Current() domain.WeightProfiles {
	if cur := p.cur.Load(); cur != nil {
		return *cur
	}
	return domain.DefaultWeightProfiles()
}

// For returns the weights for an urgency tier.
func (p *Profiles) For(u domain.Urgency) domain.WeightProfile {
	return p.Current().For(u)
}

// Replace validates overrides against the current set and activates the result.
func (p *Profiles) Replace(overrides map[domain.Urgency]domain.WeightProfile) (domain.WeightProfiles, error) {
	for {
		old := p.cur.Load()
		base := domain.DefaultWeightProfiles()
		if old != nil {
			base = *old
		}
		next, err := base.With(overrides)
		if err != nil {
			return domain.WeightProfiles{}, err
		}
		if p.cur.CompareAndSwap(old, &next) {
			return next, nil
		}
	}
}
