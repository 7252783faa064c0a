package analysis

import (
	"math"
	"testing"
)

// Two clean pulses with a decaying tail between them. The detector should
// confirm 5 (warm-up, discarded) and 6, leaving exactly one peak.
// mean(|x|) = 21/9 ≈ 2.333, so each pulse confirms once the signal falls
// below max(4*|x|, 2.333).
var twoPulseSeries = []float64{0, 1, 5, 1, 0, 6, 1, 0, 7}

func TestExtractPeaksTwoPulses(t *testing.T) {
	peaks := ExtractPeaks(twoPulseSeries)
	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak after warm-up discard, got %d (%v)", len(peaks), peaks)
	}
	if peaks[0] != 6 {
		t.Fatalf("expected peak 6, got %g", peaks[0])
	}
}

func TestExtractPeaksDeterministic(t *testing.T) {
	a := ExtractPeaks(twoPulseSeries)
	b := ExtractPeaks(twoPulseSeries)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic peak count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic peak %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestExtractPeaksEmptyAndQuiet(t *testing.T) {
	if peaks := ExtractPeaks(nil); len(peaks) != 0 {
		t.Fatalf("nil series yielded peaks: %v", peaks)
	}
	// flat noise never confirms anything
	if peaks := ExtractPeaks([]float64{1, 1, 1, 1, 1, 1}); len(peaks) != 0 {
		t.Fatalf("flat series yielded peaks: %v", peaks)
	}
}

func TestExtractPeaksSingleConfirmationDiscarded(t *testing.T) {
	// One pulse only: the single confirmation is the warm-up artifact, so the
	// final set must be empty. avg = 15/5 = 3; 10 confirms at x=1 (10 > max(4,3)).
	series := []float64{0, 1, 10, 1, 3}
	if peaks := ExtractPeaks(series); len(peaks) != 0 {
		t.Fatalf("single confirmation not discarded: %v", peaks)
	}
}

func TestExtractPeaksSignAgnostic(t *testing.T) {
	neg := make([]float64, len(twoPulseSeries))
	for i, v := range twoPulseSeries {
		neg[i] = -v
	}
	peaks := ExtractPeaks(neg)
	if len(peaks) != 1 || peaks[0] != 6 {
		t.Fatalf("negative-swing series: expected [6], got %v", peaks)
	}
}

// outlierSeries produces raw confirmations [8, 10 x7, 30]; the 8 is the
// warm-up discard and the 30 falls outside mean+2σ (12.5 + 14.14) of the
// remaining set, so only the seven 10s survive.
func outlierSeries() []float64 {
	s := []float64{0.5, 8, 0.5, 0}
	for i := 0; i < 7; i++ {
		s = append(s, 10, 0.5, 0)
	}
	return append(s, 30, 0.5, 0)
}

func TestExtractPeaksOutlierTrim(t *testing.T) {
	peaks := ExtractPeaks(outlierSeries())
	if len(peaks) != 7 {
		t.Fatalf("expected 7 peaks after trim, got %d (%v)", len(peaks), peaks)
	}
	for _, p := range peaks {
		if p != 10 {
			t.Fatalf("unexpected surviving peak %g in %v", p, peaks)
		}
	}
}

func TestExtractPeaksTrimNoopBelowTwo(t *testing.T) {
	// With a single surviving peak the sentinel spread (10) makes the ±2σ
	// bounds trivially wide, so the trim must not remove it.
	peaks := ExtractPeaks(twoPulseSeries)
	if len(peaks) != 1 {
		t.Fatalf("sentinel-spread trim removed the lone peak: %v", peaks)
	}
}

func TestPeakScalingLinearity(t *testing.T) {
	peaks := ExtractPeaks(outlierSeries())
	if len(peaks) == 0 {
		t.Fatalf("fixture produced no peaks")
	}
	var sum float64
	for _, p := range peaks {
		sum += p
	}
	meanUnscaled := sum / float64(len(peaks))
	const m = 10.48 / 0.105
	sum = 0
	for _, p := range peaks {
		sum += p * m
	}
	meanScaled := sum / float64(len(peaks))
	if math.Abs(meanScaled-m*meanUnscaled) > 1e-9*math.Abs(meanScaled) {
		t.Fatalf("scaling not linear: %g vs %g", meanScaled, m*meanUnscaled)
	}
}
