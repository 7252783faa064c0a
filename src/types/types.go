// Package types holds the shared data structures passed between the waveform
// ingestion layer, the analysis core and the CLI entrypoints.
package types

import "time"

// Calibration is the per-folder scale pair applied before statistics are finalized.
// AmplitudeScale corrects raw peak amplitude into volts (probe attenuation etc.);
// PressureScale folds the gap length in, turning pressure into pressure*length.
type Calibration struct {
	AmplitudeScale float64 `json:"amplitude_scale"`
	PressureScale  float64 `json:"pressure_scale"`
}

// FolderJob describes one experiment folder to process: where the captures live,
// which pressure log covers them and how to calibrate the results.
type FolderJob struct {
	Folder      string      `json:"folder"`
	PressureLog string      `json:"pressure_log"`
	Label       string      `json:"label,omitempty"`
	Calibration Calibration `json:"calibration"`
}

// PressureSample is one row of the pressure log after ingestion.
type PressureSample struct {
	At       time.Time
	Pressure float64
}

// Channel is one scope channel of a capture, sharing the capture's time axis.
type Channel struct {
	Name    string
	Samples []float64
}

// Capture is one ingested oscilloscope CSV: a shared time axis (milliseconds)
// plus one or more channels, in header order.
type Capture struct {
	Name     string // base file name, also the identity carrier
	TimesMs  []float64
	Channels []Channel
}

// SummaryRow is the unit of output: one (capture, channel) pair with its peak
// statistics and the pressure reading aligned to the capture timestamp.
// StdDevPeaks is NaN when fewer than two peaks survived (sample stddev undefined);
// Pressure is nil when the pressure series was empty for that folder.
type SummaryRow struct {
	Folder      string   `json:"folder"`
	FileName    string   `json:"file_name"`
	Channel     string   `json:"channel"`
	MeanPeaks   float64  `json:"mean_of_maxes"`
	StdDevPeaks float64  `json:"stddev_of_maxes"`
	MedianSlope float64  `json:"median_slope"`
	Pressure    *float64 `json:"pressure_micron,omitempty"`
}
