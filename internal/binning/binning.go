// Package binning holds the two bucketing strategies shared by every chart:
// equal-width numeric binning for price histograms and the fixed six-label
// age grouping. Each lives here exactly once; presentation sites call in
// rather than re-deriving their own buckets.
package binning

import (
	"math"
	"time"
)

// Bin is one numeric histogram bucket.
type Bin struct {
	Range [2]float64 `json:"range"`
	Count int        `json:"count"`
}

// CreateBins splits values into bucketCount equal-width buckets over
// [min, max], plus one terminal bucket that catches values landing exactly on
// max — so requesting n bins yields n+1 buckets. That asymmetry is relied on
// by the shipped price-distribution chart and is kept as-is. Values whose
// computed index falls outside [0, bucketCount] are dropped. Empty input is a
// caller precondition; CreateBins returns nil rather than panicking.
func CreateBins(values []float64, bucketCount int) []Bin {
	if len(values) == 0 || bucketCount <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	binWidth := (max - min) / float64(bucketCount)

	bins := make([]Bin, bucketCount+1)
	for i := range bins {
		start := min + float64(i)*binWidth
		bins[i].Range = [2]float64{start, start + binWidth}
	}

	for _, v := range values {
		// NaN (all-equal input makes binWidth zero) fails every
		// comparison and the value is dropped.
		idx := math.Floor((v - min) / binWidth)
		switch {
		case idx >= 0 && idx < float64(bucketCount):
			bins[int(idx)].Count++
		case idx == float64(bucketCount):
			bins[bucketCount].Count++
		}
	}

	return bins
}

// AgeGroups is the fixed label set for age bucketing, in display order.
// Chart consumers rely on all six labels always being present, in this order.
var AgeGroups = []string{"<18", "18-24", "25-34", "35-44", "45-54", "55+"}

// Age returns the exact calendar age at asOf: year difference, minus one when
// the birthday has not yet occurred that year.
func Age(birthday, asOf time.Time) int {
	age := asOf.Year() - birthday.Year()
	if asOf.Month() < birthday.Month() ||
		(asOf.Month() == birthday.Month() && asOf.Day() < birthday.Day()) {
		age--
	}
	return age
}

// AgeGroup maps an age onto its fixed label.
func AgeGroup(age int) string {
	switch {
	case age < 18:
		return "<18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}

// BucketAges counts birthdays per age group as of asOf. Every label is
// present in the result even when its count is zero.
func BucketAges(birthdays []time.Time, asOf time.Time) map[string]int {
	counts := make(map[string]int, len(AgeGroups))
	for _, label := range AgeGroups {
		counts[label] = 0
	}
	for _, birthday := range birthdays {
		counts[AgeGroup(Age(birthday, asOf))]++
	}
	return counts
}
