// Paschen curve generator main entrypoint.
//
// Reads a run configuration (JSONC) describing experiment folders of Pokit DSO
// capture exports, each paired with a vacuum-gauge pressure log and a
// calibration pair (amplitude scale, pressure*length scale). For every capture
// it extracts breakdown peaks per channel, computes mean/stddev/median-slope,
// aligns the capture timestamp to the nearest pressure reading, then merges all
// folders into one combined CSV plus a voltage-vs-pressure*length scatter.
//
// Design notes:
//   - Per-file and per-folder failures are skip-and-continue; every skip lands in
//     the run report JSON written next to the combined CSV.
//   - Dependency direction: main -> analysis for aggregation; waveform for
//     ingestion only.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EthanFeld/PaaschenCurveGen/src/analysis"
	"github.com/EthanFeld/PaaschenCurveGen/src/types"
	"github.com/EthanFeld/PaaschenCurveGen/src/waveform"
)

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON bytes suitable for unmarshalling.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		// Do NOT remove inline // because of Windows paths; JSONC style here only uses full-line comments.
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// loadRunConfig reads the JSONC run configuration and applies defaults.
func loadRunConfig(path string) (types.RunConfig, error) {
	var cfg types.RunConfig
	b, err := StripJSONC(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	for i := range cfg.Jobs {
		j := &cfg.Jobs[i]
		if j.Calibration.AmplitudeScale == 0 {
			j.Calibration.AmplitudeScale = 1
		}
		if j.Calibration.PressureScale == 0 {
			j.Calibration.PressureScale = 1
		}
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "./run.jsonc", "Path to run config JSONC file")
	outFile := flag.String("out", "", "Combined results CSV (overrides config output_csv)")
	scatterFile := flag.String("scatter", "", "Comparison scatter PNG (overrides config scatter_png)")
	plots := flag.Bool("plots", false, "Also write a per-channel waveform PNG next to each capture")
	prefix := flag.String("capture-prefix", "", "Capture file name marker (overrides config, default \""+waveform.DefaultCapturePrefix+"\")")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	waveform.SetLogLevel(*logLevel)

	cfg, err := loadRunConfig(*configPath)
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		os.Exit(1)
	}
	if *outFile != "" {
		cfg.OutputCSV = *outFile
	}
	if *scatterFile != "" {
		cfg.ScatterPNG = *scatterFile
	}
	if *prefix != "" {
		cfg.CapturePrefix = *prefix
	}
	if *plots {
		cfg.WritePlots = true
	}
	if len(cfg.Jobs) == 0 {
		fmt.Println("no folders configured")
		os.Exit(1)
	}
	if cfg.OutputCSV == "" {
		cfg.OutputCSV = "combined_summary_results.csv"
	}
	if cfg.ScatterPNG == "" {
		ext := filepath.Ext(cfg.OutputCSV)
		cfg.ScatterPNG = strings.TrimSuffix(cfg.OutputCSV, ext) + "_scatter.png"
	}

	fmt.Printf("[init] folders=%d out=%s scatter=%s plots=%v\n", len(cfg.Jobs), cfg.OutputCSV, cfg.ScatterPNG, cfg.WritePlots)

	report, err := analysis.CombineFolders(cfg)
	if err != nil {
		fmt.Printf("[combine] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[done] folders=%d skipped=%d captures=%d rows=%d channels_without_peaks=%d dropped_pressure_rows=%d errors=%d\n",
		report.Folders, report.FoldersSkipped, report.Captures, report.Rows, report.SkippedChannels, report.DroppedPressureRows, len(report.Errors))
	for _, e := range report.Errors {
		unit := e.File
		if unit == "" {
			unit = e.Folder
		}
		fmt.Printf("[skipped %s] %s: %s\n", e.Stage, unit, e.Error)
	}
}
