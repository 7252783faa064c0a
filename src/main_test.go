package main

import (
	"os"
	"path/filepath"
	"testing"
)

const runConfigFixture = `// Paschen run over two experiment folders
{
  // output artifacts
  "output_csv": "combined.csv",
  "scatter_png": "scatter.png",
  "jobs": [
    {
      "folder": "/data/Paaschen1Magnets38.8cm99.8",
      "pressure_log": "/data/2024-06-17-17-46-07.csv",
      "label": "magnets",
      "calibration": {"amplitude_scale": 99.8095, "pressure_scale": 38.8}
    },
    {
      "folder": "/data/Paaschen2NoMag38.3cm99.8",
      "pressure_log": "/data/2024-06-18-17-06-11.csv"
    }
  ]
}
`

func TestLoadRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonc")
	if err := os.WriteFile(path, []byte(runConfigFixture), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadRunConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(cfg.Jobs))
	}
	if cfg.OutputCSV != "combined.csv" || cfg.ScatterPNG != "scatter.png" {
		t.Fatalf("output paths misparsed: %+v", cfg)
	}
	if cfg.Jobs[0].Calibration.PressureScale != 38.8 {
		t.Fatalf("calibration misparsed: %+v", cfg.Jobs[0])
	}
	// unspecified calibration defaults to identity scales
	if cfg.Jobs[1].Calibration.AmplitudeScale != 1 || cfg.Jobs[1].Calibration.PressureScale != 1 {
		t.Fatalf("missing calibration must default to 1, got %+v", cfg.Jobs[1].Calibration)
	}
}

func TestStripJSONCDropsFullLineComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.jsonc")
	if err := os.WriteFile(path, []byte("// comment\n{\"jobs\": []}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := StripJSONC(path)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if string(b) != "{\"jobs\": []}\n" {
		t.Fatalf("unexpected stripped output: %q", string(b))
	}
}
