package waveform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultCapturePrefix is the file-name marker the Pokit DSO export tool writes.
// Only files carrying the configured prefix are treated as captures.
const DefaultCapturePrefix = "Pokit DSO Export"

// captureStampLayout is the timestamp the export tool embeds in the file name,
// e.g. "Pokit DSO Export 2024-06-17-18-02-33.csv".
const captureStampLayout = "2006-01-02-15-04-05"

var captureStampRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})$`)

// ParseCaptureTime extracts the capture identity from a capture file name: the
// timestamp segment right before the extension. The result is the alignment key
// against the pressure log; a name without a parseable stamp cannot be aligned
// and the caller must skip the file.
func ParseCaptureTime(name string) (time.Time, error) {
	base := filepath.Base(name)
	stem := base[:len(base)-len(filepath.Ext(base))]
	m := captureStampRe.FindString(stem)
	if m == "" {
		return time.Time{}, fmt.Errorf("no capture timestamp in file name %q", base)
	}
	t, err := time.Parse(captureStampLayout, m)
	if err != nil {
		return time.Time{}, fmt.Errorf("capture timestamp in %q: %w", base, err)
	}
	return t, nil
}
