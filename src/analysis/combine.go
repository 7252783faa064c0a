package analysis

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
	"github.com/EthanFeld/PaaschenCurveGen/src/waveform"
)

// combinedHeader mirrors the column names of the original gauge-study sheets,
// with the folder label prepended so downstream tools can group by experiment.
var combinedHeader = []string{
	"Folder",
	"File Name",
	"Channel",
	"Mean of Maxes",
	"Standard Deviation of Maxes",
	"Median Slope",
	"Pressure (micron)",
}

// RunReport is the structured outcome of one combine run: counts plus every
// per-file/per-folder error, written alongside the combined CSV.
type RunReport struct {
	GeneratedAt         string      `json:"generated_at"`
	Folders             int         `json:"folders"`
	FoldersSkipped      int         `json:"folders_skipped"`
	Captures            int         `json:"captures"`
	Rows                int         `json:"rows"`
	SkippedChannels     int         `json:"skipped_channels"`
	DroppedPressureRows int         `json:"dropped_pressure_rows"`
	Errors              []FileError `json:"errors"`
}

// CombineFolders runs the folder aggregator over every configured job and
// writes the combined CSV, the comparison scatter and the run report. A
// folder whose pressure log cannot be read is skipped whole; only "no folder
// produced any rows" is fatal.
func CombineFolders(cfg types.RunConfig) (*RunReport, error) {
	prefix := cfg.CapturePrefix
	if prefix == "" {
		prefix = waveform.DefaultCapturePrefix
	}
	report := &RunReport{Folders: len(cfg.Jobs), Errors: []FileError{}}
	var rows []types.SummaryRow

	for _, job := range cfg.Jobs {
		pressure, dropped, err := waveform.ReadPressureCSV(job.PressureLog)
		if err != nil {
			waveform.Errorf("pressure log %s unreadable, skipping folder %s: %v", job.PressureLog, job.Folder, err)
			report.FoldersSkipped++
			report.Errors = append(report.Errors, FileError{Folder: job.Folder, Stage: "pressure", Error: err.Error()})
			continue
		}
		report.DroppedPressureRows += dropped
		waveform.Infof("folder %s: %d pressure samples (%d rows dropped)", job.Folder, len(pressure), dropped)

		res := AnalyzeFolder(job, pressure, prefix, cfg.WritePlots)
		report.Captures += res.Captures
		report.SkippedChannels += res.SkippedChannels
		report.Errors = append(report.Errors, res.Errors...)
		rows = append(rows, res.Rows...)
		waveform.Infof("folder %s: %d captures, %d rows", job.Folder, res.Captures, len(res.Rows))
	}
	report.Rows = len(rows)

	if len(rows) == 0 {
		writeRunReport(cfg.OutputCSV, report)
		return report, errors.New("no folder produced any rows; nothing to combine")
	}
	if err := WriteCombinedCSV(cfg.OutputCSV, rows); err != nil {
		return report, err
	}
	waveform.Infof("wrote combined results: %s (%d rows)", cfg.OutputCSV, len(rows))

	if cfg.ScatterPNG != "" {
		if png, err := RenderScatterPNG(rows); err != nil {
			// rows without aligned pressure are valid data but not plottable
			waveform.Warnf("scatter not rendered: %v", err)
		} else if err := os.WriteFile(cfg.ScatterPNG, png, 0644); err != nil {
			return report, fmt.Errorf("write scatter: %w", err)
		} else {
			waveform.Infof("wrote comparison scatter: %s", cfg.ScatterPNG)
		}
	}
	writeRunReport(cfg.OutputCSV, report)
	return report, nil
}

// ReportPath derives the run-report location from the combined CSV path.
func ReportPath(outputCSV string) string {
	return strings.TrimSuffix(outputCSV, ".csv") + "_report.json"
}

func writeRunReport(outputCSV string, report *RunReport) {
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339Nano)
	path := ReportPath(outputCSV)
	b, _ := json.MarshalIndent(report, "", "  ")
	if err := os.WriteFile(path, b, 0644); err != nil {
		waveform.Errorf("write run report: %v", err)
		return
	}
	waveform.Infof("wrote run report: %s", path)
}

// WriteCombinedCSV writes the concatenated summary rows. An undefined stddev
// is written as NaN; a missing pressure as an empty field.
func WriteCombinedCSV(path string, rows []types.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(combinedHeader); err != nil {
		return err
	}
	for _, r := range rows {
		pressure := ""
		if r.Pressure != nil {
			pressure = formatFloat(*r.Pressure)
		}
		rec := []string{
			r.Folder,
			r.FileName,
			r.Channel,
			formatFloat(r.MeanPeaks),
			formatFloat(r.StdDevPeaks),
			formatFloat(r.MedianSlope),
			pressure,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCombinedCSV loads a combined results file back into summary rows, for
// the reader and viewer tools.
func ReadCombinedCSV(path string) ([]types.SummaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	var rows []types.SummaryRow
	for i, rec := range recs[1:] {
		if len(rec) < len(combinedHeader) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+2, len(rec), len(combinedHeader))
		}
		row := types.SummaryRow{Folder: rec[0], FileName: rec[1], Channel: rec[2]}
		if row.MeanPeaks, err = parseFloat(rec[3]); err != nil {
			return nil, fmt.Errorf("%s: row %d mean: %w", path, i+2, err)
		}
		if row.StdDevPeaks, err = parseFloat(rec[4]); err != nil {
			return nil, fmt.Errorf("%s: row %d stddev: %w", path, i+2, err)
		}
		if row.MedianSlope, err = parseFloat(rec[5]); err != nil {
			return nil, fmt.Errorf("%s: row %d slope: %w", path, i+2, err)
		}
		if s := strings.TrimSpace(rec[6]); s != "" {
			p, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d pressure: %w", path, i+2, err)
			}
			row.Pressure = &p
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
