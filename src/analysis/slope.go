package analysis

import (
	"fmt"
	"sort"
)

// MedianSlope returns the median first-difference rate of change of values
// over timesMs. Both slices must have the same length, at least 2, and
// consecutive timestamps must be distinct; ingestion guarantees the ordering,
// this guards the rest.
func MedianSlope(timesMs, values []float64) (float64, error) {
	if len(timesMs) != len(values) {
		return 0, fmt.Errorf("slope: length mismatch (%d times, %d values)", len(timesMs), len(values))
	}
	if len(timesMs) < 2 {
		return 0, fmt.Errorf("slope: need at least 2 samples, have %d", len(timesMs))
	}
	slopes := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		dt := timesMs[i] - timesMs[i-1]
		if dt == 0 {
			return 0, fmt.Errorf("slope: duplicate consecutive timestamps at sample %d (t=%g ms)", i, timesMs[i])
		}
		slopes[i-1] = (values[i] - values[i-1]) / dt
	}
	sort.Float64s(slopes)
	// middle element, or the mean of the two middle elements for even counts
	n := len(slopes)
	if n%2 == 1 {
		return slopes[n/2], nil
	}
	return (slopes[n/2-1] + slopes[n/2]) / 2, nil
}
