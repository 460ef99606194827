package config

import (
	"math"

	"github.com/poiesic/readmore/core"
)

// InSample reports whether token falls in a sample of the given rate.
// The same token always lands in the same bucket, so a reader keeps the
// same experience across page views. A rate of 0 or less never samples
// and a rate of 1 or more always does.
func InSample(rate float64, token string) bool {
	if rate <= 0 || math.IsNaN(rate) {
		return false
	}
	if rate >= 1 {
		return true
	}
	bucket := float64(uint64(core.IDFromContent(token))) / math.MaxUint64
	return bucket < rate
}
