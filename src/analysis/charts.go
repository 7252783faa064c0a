package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
)

// RenderWaveformPNG renders one channel of a capture as amplitude vs time.
func RenderWaveformPNG(cap *types.Capture, ch types.Channel) ([]byte, error) {
	graph := chart.Chart{
		Title:      fmt.Sprintf("%s vs Time (ms) for %s", ch.Name, filepath.Base(cap.Name)),
		Width:      1000,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Time (ms)"},
		YAxis:      chart.YAxis{Name: ch.Name},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: ch.Name, XValues: cap.TimesMs, YValues: ch.Samples},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render waveform %s %s: %w", cap.Name, ch.Name, err)
	}
	return buf.Bytes(), nil
}

// WaveformPlotPath returns where the per-channel plot for a capture lands:
// next to the capture file, "<stem>_<channel>.png".
func WaveformPlotPath(capturePath, channel string) string {
	ext := filepath.Ext(capturePath)
	stem := strings.TrimSuffix(capturePath, ext)
	return stem + "_" + channel + ".png"
}

// RenderScatterPNG renders the cross-folder comparison: aligned pressure on X,
// mean-of-peaks on Y, one color per folder, both axes clamped at 0. Rows with
// no aligned pressure or an undefined mean are not plottable and are skipped.
func RenderScatterPNG(rows []types.SummaryRow) ([]byte, error) {
	type group struct {
		label  string
		xs, ys []float64
	}
	var groups []*group
	byLabel := map[string]*group{}
	maxX, maxY := 0.0, 0.0
	for _, r := range rows {
		if r.Pressure == nil || math.IsNaN(r.MeanPeaks) {
			continue
		}
		g, ok := byLabel[r.Folder]
		if !ok {
			g = &group{label: r.Folder}
			byLabel[r.Folder] = g
			groups = append(groups, g)
		}
		g.xs = append(g.xs, *r.Pressure)
		g.ys = append(g.ys, r.MeanPeaks)
		if *r.Pressure > maxX {
			maxX = *r.Pressure
		}
		if r.MeanPeaks > maxY {
			maxY = r.MeanPeaks
		}
	}

	var series []chart.Series
	for i, g := range groups {
		// points only, no connecting line
		st := chart.Style{
			StrokeWidth: 0,
			DotWidth:    4,
			DotColor:    chart.GetDefaultColor(i),
		}
		xs, ys := g.xs, g.ys
		if len(xs) == 1 { // pad to at least two X values for go-chart
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{Name: g.label, XValues: xs, YValues: ys, Style: st})
	}
	if len(series) == 0 {
		return nil, errors.New("scatter: no plottable rows")
	}
	if maxX <= 0 {
		maxX = 1
	}
	if maxY <= 0 {
		maxY = 1
	}
	graph := chart.Chart{
		Title:      "Voltage vs Pressure * Length",
		Width:      1000,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "Pressure * length (micron * cm)",
			Range: &chart.ContinuousRange{Min: 0, Max: maxX * 1.05},
		},
		YAxis: chart.YAxis{
			Name:  "Voltage",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	return buf.Bytes(), nil
}
