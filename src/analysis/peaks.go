// Package analysis holds the measurement core (peak extraction, slope and
// pressure alignment) and the per-folder / cross-folder aggregation that turns
// ingested captures into the combined breakdown-voltage dataset.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// hysteresisFactor gates peak confirmation: the running candidate is only
// accepted once the signal has decayed below a quarter of it (and below the
// series mean), which keeps noise chatter near a tracked peak from
// re-triggering.
const hysteresisFactor = 4.0

// fallbackSpread stands in for the sample standard deviation when fewer than
// two peaks survive the warm-up discard and a spread cannot be estimated.
const fallbackSpread = 10.0

// ExtractPeaks scans one channel and returns the accepted local-maximum
// amplitudes. Detection is sign-agnostic (breakdown pulses can swing either
// way), tracks the running maximum and confirms it once the signal decays
// below both hysteresisFactor*|x| and the mean absolute amplitude. The first
// confirmation is always discarded: the candidate starts at 0, so the first
// detection is a warm-up artifact. A final mean±2σ trim drops spurious
// outliers (electrical transients) without an absolute threshold.
//
// An empty result means "no measurement" for the channel; callers must skip
// downstream statistics rather than aggregate nothing.
func ExtractPeaks(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	abs := make([]float64, len(samples))
	for i, v := range samples {
		abs[i] = math.Abs(v)
	}
	avg := stat.Mean(abs, nil)

	var raw []float64
	prev := 0.0
	for _, x := range abs {
		switch {
		case prev > math.Max(hysteresisFactor*x, avg):
			raw = append(raw, prev)
			prev = x
		case prev < x:
			prev = x
		}
	}
	if len(raw) > 0 {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return nil
	}

	spread := fallbackSpread
	if len(raw) > 1 {
		spread = stat.StdDev(raw, nil)
	}
	mean := stat.Mean(raw, nil)
	lower := mean - 2*spread
	upper := mean + 2*spread
	peaks := make([]float64, 0, len(raw))
	for _, p := range raw {
		if p >= lower && p <= upper {
			peaks = append(peaks, p)
		}
	}
	return peaks
}
