package waveform

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	// Swap the base logger to capture output
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")

	msg := "[Paaschen1Magnets38.8cm99.8] done captures=42 rows=84 aligned=84 (100.0% of 84) dropped_pressure_rows=3"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% of 84)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLogLevelGate(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() {
		baseLogger = saved
		SetLogLevel("info")
	}()

	SetLogLevel("warn")
	Infof("should be suppressed")
	Warnf("should appear")
	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] should appear") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestSetLogLevelIgnoresUnknownNames(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() {
		baseLogger = saved
		SetLogLevel("info")
	}()

	SetLogLevel("info")
	SetLogLevel("verbose") // typo in --log-level must not change the level
	Infof("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Fatalf("unknown level name changed the level: %s", buf.String())
	}
}
