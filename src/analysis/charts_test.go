package analysis

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
)

func TestRenderWaveformPNG(t *testing.T) {
	cap := &types.Capture{
		Name:    "Pokit DSO Export 2024-06-17-18-02-33.csv",
		TimesMs: []float64{0, 1, 2, 3, 4},
		Channels: []types.Channel{
			{Name: "CH1", Samples: []float64{0, 1, 5, 1, 0}},
		},
	}
	b, err := RenderWaveformPNG(cap, cap.Channels[0])
	if err != nil {
		t.Fatalf("render waveform: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Fatalf("waveform output is not a PNG: %v", err)
	}
}

func TestRenderScatterPNG(t *testing.T) {
	p1, p2, p3 := 100.0, 200.0, 150.0
	rows := []types.SummaryRow{
		{Folder: "magnets", MeanPeaks: 400, Pressure: &p1},
		{Folder: "magnets", MeanPeaks: 350, Pressure: &p2},
		{Folder: "nomag", MeanPeaks: 500, Pressure: &p3}, // single point, padded internally
		{Folder: "nomag", MeanPeaks: 9000},               // no pressure: not plottable
	}
	b, err := RenderScatterPNG(rows)
	if err != nil {
		t.Fatalf("render scatter: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Fatalf("scatter output is not a PNG: %v", err)
	}
}

func TestRenderScatterPNGNoPlottableRows(t *testing.T) {
	rows := []types.SummaryRow{{Folder: "a", MeanPeaks: 1}} // pressure absent
	if _, err := RenderScatterPNG(rows); err == nil {
		t.Fatalf("expected error when nothing is plottable")
	}
}

func TestWaveformPlotPath(t *testing.T) {
	got := WaveformPlotPath("/data/run/Pokit DSO Export 2024-06-17-18-02-33.csv", "CH2")
	want := "/data/run/Pokit DSO Export 2024-06-17-18-02-33_CH2.png"
	if got != want {
		t.Fatalf("plot path: got %q want %q", got, want)
	}
}
