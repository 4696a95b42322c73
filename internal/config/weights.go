package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"parts-dispatch/internal/domain"
)

// weightsFile is the on-disk layout of the weight profiles file:
//
//	profiles:
//	  urgent: {distance: 0.3, reliability: 0.25, price: 0.15, urgency: 0.3}
type weightsFile struct {
	Profiles map[string]domain.WeightProfile `yaml:"profiles"`
}

// LoadWeightProfiles reads weight profiles from a yaml file. An empty path or a
// missing file yields the defaults.
func LoadWeightProfiles(path string) (domain.WeightProfiles, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultWeightProfiles(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultWeightProfiles(), nil
	}
	if err != nil {
		return domain.WeightProfiles{}, fmt.Errorf("read weight profiles: %w", err)
	}
	return ParseWeightProfiles(raw)
}

// ParseWeightProfiles decodes and validates a weight profiles document.
func ParseWeightProfiles(raw []byte) (domain.WeightProfiles, error) {
	var f weightsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return domain.WeightProfiles{}, fmt.Errorf("decode weight profiles: %w", err)
	}
	overrides := make(map[domain.Urgency]domain.WeightProfile, len(f.Profiles))
	for tier, w := range f.Profiles {
		overrides[domain.Urgency(strings.ToLower(strings.TrimSpace(tier)))] = w
	}
	p, err := domain.NewWeightProfiles(overrides)
	if err != nil {
		return domain.WeightProfiles{}, fmt.Errorf("weight profiles: %w", err)
	}
	return p, nil
}
