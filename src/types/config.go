package types

// RunConfig is the explicit run configuration handed to the combiner: which
// folders to process, where their pressure logs live, how to calibrate each
// one, and where the artifacts go. Loaded from a JSONC file by the CLI.
type RunConfig struct {
	Jobs          []FolderJob `json:"jobs"`
	OutputCSV     string      `json:"output_csv"`
	ScatterPNG    string      `json:"scatter_png,omitempty"`
	CapturePrefix string      `json:"capture_prefix,omitempty"`
	WritePlots    bool        `json:"write_plots,omitempty"`
}
