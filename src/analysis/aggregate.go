package analysis

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
	"github.com/EthanFeld/PaaschenCurveGen/src/waveform"
)

// FileError records one skipped unit (file or folder) and the stage that
// rejected it. These are collected into the run report instead of being
// printed and forgotten.
type FileError struct {
	Folder string `json:"folder,omitempty"`
	File   string `json:"file,omitempty"`
	Stage  string `json:"stage"` // read | identity | slope | plot | pressure
	Error  string `json:"error"`
}

// FolderResult is everything one folder pass produced.
type FolderResult struct {
	Rows            []types.SummaryRow
	Errors          []FileError
	Captures        int // capture files successfully ingested
	SkippedChannels int // channels whose peak set came back empty
}

// AnalyzeFolder runs the full per-file pipeline over every capture in the
// folder: ingest, per channel extract peaks, apply the amplitude calibration,
// compute mean/stddev and median slope, align the capture timestamp against
// the pressure series and apply the pressure calibration. Failures are
// per-file (skip and continue); an empty peak set just means the channel
// contributes no row.
func AnalyzeFolder(job types.FolderJob, pressure []types.PressureSample, prefix string, writePlots bool) FolderResult {
	defer waveform.TimeTrack(time.Now(), "analyze "+job.Folder)
	var res FolderResult
	label := job.Label
	if label == "" {
		label = filepath.Base(job.Folder)
	}

	entries, err := os.ReadDir(job.Folder)
	if err != nil {
		res.Errors = append(res.Errors, FileError{Folder: job.Folder, Stage: "read", Error: err.Error()})
		return res
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") || !strings.Contains(name, prefix) {
			continue
		}
		path := filepath.Join(job.Folder, name)
		cap, err := waveform.ReadCaptureCSV(path)
		if err != nil {
			waveform.Warnf("skip capture %s: %v", name, err)
			res.Errors = append(res.Errors, FileError{Folder: job.Folder, File: name, Stage: "read", Error: err.Error()})
			continue
		}
		captureTime, err := waveform.ParseCaptureTime(name)
		if err != nil {
			// unparseable identity is fatal for this file: it cannot be aligned
			waveform.Warnf("skip capture %s: %v", name, err)
			res.Errors = append(res.Errors, FileError{Folder: job.Folder, File: name, Stage: "identity", Error: err.Error()})
			continue
		}
		res.Captures++

		var rowPressure *float64
		if p, ok := NearestPressure(pressure, captureTime); ok {
			scaled := p * job.Calibration.PressureScale
			rowPressure = &scaled
		}

		for _, ch := range cap.Channels {
			if writePlots {
				if png, err := RenderWaveformPNG(cap, ch); err != nil {
					res.Errors = append(res.Errors, FileError{Folder: job.Folder, File: name, Stage: "plot", Error: err.Error()})
				} else if err := os.WriteFile(WaveformPlotPath(path, ch.Name), png, 0644); err != nil {
					res.Errors = append(res.Errors, FileError{Folder: job.Folder, File: name, Stage: "plot", Error: err.Error()})
				}
			}
			peaks := ExtractPeaks(ch.Samples)
			if len(peaks) == 0 {
				waveform.Debugf("capture %s %s: no peaks, channel skipped", name, ch.Name)
				res.SkippedChannels++
				continue
			}
			for i := range peaks {
				peaks[i] *= job.Calibration.AmplitudeScale
			}
			slope, err := MedianSlope(cap.TimesMs, ch.Samples)
			if err != nil {
				waveform.Warnf("capture %s %s: %v", name, ch.Name, err)
				res.Errors = append(res.Errors, FileError{Folder: job.Folder, File: name, Stage: "slope", Error: err.Error()})
				continue
			}
			std := math.NaN() // sample stddev undefined for a single peak
			if len(peaks) > 1 {
				std = stat.StdDev(peaks, nil)
			}
			res.Rows = append(res.Rows, types.SummaryRow{
				Folder:      label,
				FileName:    name,
				Channel:     ch.Name,
				MeanPeaks:   stat.Mean(peaks, nil),
				StdDevPeaks: std,
				MedianSlope: slope,
				Pressure:    rowPressure,
			})
		}
	}
	return res
}
