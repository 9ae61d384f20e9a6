package main

import (
	"fmt"
	"os"

	"pkt.systems/pdfcreate/pdf/internal/pdfgolden"
)

func main() {
	root, err := pdfgolden.FindTestdataRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "find testdata root: %v\n", err)
		os.Exit(1)
	}
	samples, err := pdfgolden.CollectSamples(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect samples: %v\n", err)
		os.Exit(1)
	}
	if len(samples) == 0 {
		fmt.Fprintln(os.Stderr, "no testdata samples found")
		os.Exit(1)
	}
	for _, sample := range samples {
		data, err := pdfgolden.RenderSample(sample)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s: %v\n", sample.Name, err)
			os.Exit(1)
		}
		dst := pdfgolden.GoldenPath(root, sample.Name)
		if err := pdfgolden.WriteGolden(dst, data); err != nil {
			fmt.Fprintf(os.Stderr, "write golden: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", dst)
	}
}
