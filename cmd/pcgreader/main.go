package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/EthanFeld/PaaschenCurveGen/src/analysis"
)

func main() {
	var file string
	var folder string
	flag.StringVar(&file, "file", "combined_summary_results.csv", "Path to combined results CSV")
	flag.StringVar(&folder, "folder", "", "Optional folder label filter (exact match)")
	flag.Parse()
	rows, err := analysis.ReadCombinedCSV(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	type agg struct {
		rows, aligned, undefined int
		minP, maxP               float64
	}
	counts := map[string]*agg{}
	var order []string
	for _, r := range rows {
		if folder != "" && r.Folder != folder {
			continue
		}
		a, ok := counts[r.Folder]
		if !ok {
			a = &agg{minP: math.Inf(1), maxP: math.Inf(-1)}
			counts[r.Folder] = a
			order = append(order, r.Folder)
		}
		a.rows++
		if math.IsNaN(r.StdDevPeaks) {
			a.undefined++
		}
		if r.Pressure != nil {
			a.aligned++
			if *r.Pressure < a.minP {
				a.minP = *r.Pressure
			}
			if *r.Pressure > a.maxP {
				a.maxP = *r.Pressure
			}
		}
	}
	fmt.Printf("Total rows: %d\n", len(rows))
	for _, k := range order {
		a := counts[k]
		if a.aligned == 0 {
			fmt.Printf("%s: rows=%d aligned=0 undefined_stddev=%d\n", k, a.rows, a.undefined)
			continue
		}
		fmt.Printf("%s: rows=%d aligned=%d undefined_stddev=%d pressure=[%g..%g]\n", k, a.rows, a.aligned, a.undefined, a.minP, a.maxP)
	}
}
