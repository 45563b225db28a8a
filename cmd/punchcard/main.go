// Command punchcard converts a black and white bitmap into
// the vector outline of a punch card.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "input", "", "Path to the input bitmap (png, gif, bmp, tiff or svg)")
	flag.StringVar(&cfg.output, "output", "card.svg", "Path to the output SVG file")
	flag.StringVar(&cfg.preset, "preset", "standard", "Card layout: standard or outlined")
	flag.BoolVar(&cfg.outline, "outline", false, "Include the card outline, even if the preset omits it")
	flag.BoolVar(&cfg.html, "html", false, "Wrap the SVG in a minimal HTML page")
	flag.StringVar(&cfg.unit, "unit", "", "Physical unit of the SVG size (for instance in or mm)")
	flag.Float64Var(&cfg.tolerance, "tolerance", 0, "Maximum error of the circle approximation (0 for the default)")
	flag.StringVar(&cfg.preview, "preview", "", "Optional PNG preview of the card")
	flag.Float64Var(&cfg.dpi, "dpi", 100, "Pixels per card unit of the preview")
	flag.StringVar(&cfg.pdf, "pdf", "", "Optional PDF output")
	flag.StringVar(&cfg.gcode, "gcode", "", "Optional G-code output")
	flag.StringVar(&cfg.inspect, "inspect", "", "Summarize an existing card document instead of converting")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("punchcard: ")

	if cfg.inspect != "" {
		if err := inspect(cfg.inspect, os.Stdout); err != nil {
			log.Fatalf("inspecting %s: %v", cfg.inspect, err)
		}
		return
	}

	if cfg.input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := convert(cfg); err != nil {
		log.Fatal(err)
	}

	fmt.Println("All done!")
}
