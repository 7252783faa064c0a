package analysis

import (
	"time"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
)

// NearestPressure returns the pressure sample closest in time to query.
// Ties go to the earliest sample in log order, so lookups are deterministic.
// The second return is false only when the series is empty.
func NearestPressure(samples []types.PressureSample, query time.Time) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	best := samples[0].Pressure
	bestDiff := absDuration(query.Sub(samples[0].At))
	for _, s := range samples[1:] {
		if d := absDuration(query.Sub(s.At)); d < bestDiff {
			bestDiff = d
			best = s.Pressure
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
