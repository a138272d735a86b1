package model

import "fmt"

// Feature is a named room amenity drawn from the platform's fixed vocabulary.
type Feature string

const (
	FeatureWiFi         Feature = "WiFi"
	FeatureRefreshments Feature = "Refreshments"
	FeatureTV           Feature = "TV"
	FeatureSafe         Feature = "Safe"
	FeatureRadio        Feature = "Radio"
	FeatureViews        Feature = "Views"
)

// AllFeatures lists the vocabulary in the order the platform renders it.
var AllFeatures = []Feature{
	FeatureWiFi,
	FeatureRefreshments,
	FeatureTV,
	FeatureSafe,
	FeatureRadio,
	FeatureViews,
}

// ValidFeature reports whether f is a vocabulary member.
func ValidFeature(f Feature) bool {
	for _, known := range AllFeatures {
		if f == known {
			return true
		}
	}
	return false
}

// ValidateFeatures rejects duplicates and names outside the vocabulary.
func ValidateFeatures(features []Feature) error {
	seen := make(map[Feature]bool, len(features))
	for _, f := range features {
		if !ValidFeature(f) {
			return fmt.Errorf("unknown feature %q", f)
		}
		if seen[f] {
			return fmt.Errorf("duplicate feature %q", f)
		}
		seen[f] = true
	}
	return nil
}
