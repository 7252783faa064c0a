// pcgviewer is a small desktop viewer for a combined Paschen results CSV:
// it shows the voltage vs pressure*length scatter and lets you restrict the
// view to a single experiment folder.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	png "image/png"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/EthanFeld/PaaschenCurveGen/src/analysis"
	"github.com/EthanFeld/PaaschenCurveGen/src/types"
)

const allFolders = "All folders"

type uiState struct {
	window   fyne.Window
	filePath string
	rows     []types.SummaryRow
	folder   string // "" means all

	scatterCanvas *canvas.Image
	statusLabel   *widget.Label
	folderSelect  *widget.Select
}

func blank(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func renderScatter(st *uiState) image.Image {
	rows := st.rows
	if st.folder != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.Folder == st.folder {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	b, err := analysis.RenderScatterPNG(rows)
	if err != nil {
		fmt.Printf("[viewer] scatter render error: %v; showing blank fallback\n", err)
		return blank(1000, 600)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		fmt.Printf("[viewer] scatter decode error: %v; showing blank fallback\n", err)
		return blank(1000, 600)
	}
	return img
}

func folderLabels(rows []types.SummaryRow) []string {
	labels := []string{allFolders}
	seen := map[string]bool{}
	for _, r := range rows {
		if !seen[r.Folder] {
			seen[r.Folder] = true
			labels = append(labels, r.Folder)
		}
	}
	return labels
}

func (st *uiState) reload() {
	rows, err := analysis.ReadCombinedCSV(st.filePath)
	if err != nil {
		dialog.ShowError(err, st.window)
		return
	}
	st.rows = rows
	st.folder = ""
	st.folderSelect.Options = folderLabels(rows)
	st.folderSelect.SetSelected(allFolders)
	st.refresh()
}

func (st *uiState) refresh() {
	st.scatterCanvas.Image = renderScatter(st)
	st.scatterCanvas.Refresh()
	aligned := 0
	for _, r := range st.rows {
		if r.Pressure != nil {
			aligned++
		}
	}
	st.statusLabel.SetText(fmt.Sprintf("%s — %d rows, %d with aligned pressure", st.filePath, len(st.rows), aligned))
}

func main() {
	var file string
	flag.StringVar(&file, "file", "combined_summary_results.csv", "Path to combined results CSV")
	flag.Parse()

	a := app.New()
	w := a.NewWindow("Paschen Curve Viewer")
	st := &uiState{window: w, filePath: file}

	st.scatterCanvas = canvas.NewImageFromImage(blank(1000, 600))
	st.scatterCanvas.FillMode = canvas.ImageFillContain
	st.scatterCanvas.SetMinSize(fyne.NewSize(1000, 600))
	st.statusLabel = widget.NewLabel("")

	st.folderSelect = widget.NewSelect([]string{allFolders}, func(sel string) {
		if sel == allFolders {
			st.folder = ""
		} else {
			st.folder = sel
		}
		st.refresh()
	})
	st.folderSelect.SetSelected(allFolders)

	reloadBtn := widget.NewButton("Reload", func() { st.reload() })
	openBtn := widget.NewButton("Open...", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			rc.Close()
			st.filePath = path
			st.reload()
		}, w)
		fd.Show()
	})

	top := container.NewHBox(widget.NewLabel("Folder:"), st.folderSelect, reloadBtn, openBtn)
	w.SetContent(container.NewBorder(top, st.statusLabel, nil, nil, st.scatterCanvas))
	w.Resize(fyne.NewSize(1060, 720))

	if _, err := os.Stat(file); err == nil {
		st.reload()
	} else {
		st.statusLabel.SetText(fmt.Sprintf("%s not found; use Open...", file))
	}
	w.ShowAndRun()
}
