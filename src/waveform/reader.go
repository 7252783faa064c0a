// Package waveform is the ingestion boundary: it turns oscilloscope capture CSVs
// and vacuum-gauge pressure logs into validated, typed series. The analysis core
// never sees raw strings; anything malformed is rejected (captures) or dropped
// and counted (pressure rows) here.
package waveform

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EthanFeld/PaaschenCurveGen/src/types"
)

// TimeColumn is the time-axis header the DSO export uses.
const TimeColumn = "Time (ms)"

// channelPrefix marks scope channel columns (CH1, CH2, ...).
const channelPrefix = "CH"

// ReadCaptureCSV parses one DSO export. The export starts with an arbitrary number
// of metadata lines (device model, firmware, ranges); the real header is the first
// row whose leading field starts with "Time". All CH* columns are read; the time
// axis is shared by every channel.
func ReadCaptureCSV(path string) (*types.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // metadata lines have varying widths

	var header []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("%s: no header row starting with %q", path, "Time")
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(rec) > 0 && strings.HasPrefix(rec[0], "Time") {
			header = rec
			break
		}
	}

	timeIdx := -1
	var chIdx []int
	for i, col := range header {
		switch {
		case strings.HasPrefix(col, "Time"):
			if timeIdx < 0 {
				timeIdx = i
			}
		case strings.HasPrefix(col, channelPrefix):
			chIdx = append(chIdx, i)
		}
	}
	if len(chIdx) == 0 {
		return nil, fmt.Errorf("%s: header has no %s* columns", path, channelPrefix)
	}

	cap := &types.Capture{Name: path}
	for _, i := range chIdx {
		cap.Channels = append(cap.Channels, types.Channel{Name: header[i]})
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(rec) == 0 {
			continue
		}
		if timeIdx >= len(rec) {
			return nil, fmt.Errorf("%s: short row (%d fields, need %d)", path, len(rec), timeIdx+1)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(rec[timeIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad time value %q: %w", path, rec[timeIdx], err)
		}
		if n := len(cap.TimesMs); n > 0 && t < cap.TimesMs[n-1] {
			return nil, fmt.Errorf("%s: time axis decreases at sample %d (%g < %g)", path, n, t, cap.TimesMs[n-1])
		}
		cap.TimesMs = append(cap.TimesMs, t)
		for ci, i := range chIdx {
			if i >= len(rec) {
				return nil, fmt.Errorf("%s: short row (%d fields, need %d)", path, len(rec), i+1)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad %s value %q: %w", path, header[i], rec[i], err)
			}
			cap.Channels[ci].Samples = append(cap.Channels[ci].Samples, v)
		}
	}
	if len(cap.TimesMs) < 2 {
		return nil, fmt.Errorf("%s: only %d data rows, need at least 2", path, len(cap.TimesMs))
	}
	return cap, nil
}

// Pressure log timestamp layouts. The gauge software writes zero-padded
// 12-hour stamps; hand-edited logs occasionally drop the padding.
var pressureLayouts = []string{
	"01/02/06 03:04:05 PM",
	"1/2/06 3:04:05 PM",
}

// ReadPressureCSV parses a gauge log into a time-ordered pressure series.
// Only the first two columns matter (timestamp, pressure); extra columns are
// ignored and rows that fail to parse are dropped and counted, never surfaced
// to the analysis core.
func ReadPressureCSV(path string) ([]types.PressureSample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var samples []types.PressureSample
	dropped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dropped, fmt.Errorf("%s: %w", path, err)
		}
		if len(rec) < 2 {
			dropped++
			continue
		}
		ts, ok := parsePressureTime(strings.TrimSpace(rec[0]))
		if !ok {
			dropped++ // header row lands here too
			continue
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			dropped++
			continue
		}
		samples = append(samples, types.PressureSample{At: ts, Pressure: p})
	}
	return samples, dropped, nil
}

func parsePressureTime(s string) (time.Time, bool) {
	for _, layout := range pressureLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}
