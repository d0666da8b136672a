package severity

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bucket is a named category of phrases sharing one severity weight.
// Phrases are matched as case-insensitive substrings and must be in the
// working language, since scanning happens on translated text.
type Bucket struct {
	Name    string   `yaml:"name"`
	Weight  float64  `yaml:"weight"`
	Phrases []string `yaml:"phrases"`
}

// BucketSet is the startup-loaded phrase data for all resolvers.
type BucketSet struct {
	Version string   `yaml:"version"`
	Buckets []Bucket `yaml:"buckets"`
}

// LoadBuckets reads a bucket data file. Weights must be in [0,1] and
// every bucket must carry at least one phrase.
func LoadBuckets(path string) (*BucketSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buckets: %w", err)
	}
	var set BucketSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse buckets: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks structural constraints on the loaded data.
func (s *BucketSet) Validate() error {
	if len(s.Buckets) == 0 {
		return fmt.Errorf("bucket file has no buckets")
	}
	for _, b := range s.Buckets {
		if b.Name == "" {
			return fmt.Errorf("bucket with empty name")
		}
		if b.Weight < 0 || b.Weight > 1 {
			return fmt.Errorf("bucket %q: weight %v outside [0,1]", b.Name, b.Weight)
		}
		if len(b.Phrases) == 0 {
			return fmt.Errorf("bucket %q: no phrases", b.Name)
		}
	}
	return nil
}

// MaxWeight returns the highest weight among buckets with at least one
// phrase matching text. Multiple matches never sum; the maximum alone
// counts, so overlapping phrases cannot inflate the risk score.
func (s *BucketSet) MaxWeight(text string) float64 {
	lower := strings.ToLower(text)
	max := 0.0
	for _, b := range s.Buckets {
		if b.Weight <= max {
			continue
		}
		for _, p := range b.Phrases {
			if strings.Contains(lower, strings.ToLower(p)) {
				max = b.Weight
				break
			}
		}
	}
	return max
}

// Matches reports whether any phrase in the named bucket occurs in text.
func (s *BucketSet) Matches(name, text string) bool {
	lower := strings.ToLower(text)
	for _, b := range s.Buckets {
		if b.Name != name {
			continue
		}
		for _, p := range b.Phrases {
			if strings.Contains(lower, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

// DefaultBuckets returns the built-in phrase data used when no bucket
// file is configured.
func DefaultBuckets() *BucketSet {
	return &BucketSet{
		Version: "builtin",
		Buckets: []Bucket{
			{
				Name:   "self_harm",
				Weight: 0.95,
				Phrases: []string{
					"kill myself",
					"end my life",
					"harm myself",
					"hurt myself",
					"suicide",
				},
			},
			{
				Name:   "existential",
				Weight: 0.25,
				Phrases: []string{
					"no reason to live",
					"can't go on",
					"what is the point",
				},
			},
			{
				Name:   "fatigue",
				Weight: 0.15,
				Phrases: []string{
					"exhausted",
					"burned out",
					"so tired",
				},
			},
			{
				Name:   "ambiguous",
				Weight: 0.10,
				Phrases: []string{
					"give up",
					"can't take it",
				},
			},
		},
	}
}
