// boardshot renders a .chartboard file to a PNG without opening a window.
//
// Usage: boardshot [-o out.png] [-dark] [-pad n] board.chartboard
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chart-board/internal/project"
	"chart-board/internal/render"
	"chart-board/internal/version"
)

func main() {
	out := flag.String("o", "", "output PNG path (default: board name + .png)")
	dark := flag.Bool("dark", false, "render with the dark palette")
	pad := flag.Float64("pad", 50, "padding around the content bounds in world units")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("boardshot %s\n", version.String())
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: boardshot [-o out.png] [-dark] [-pad n] board.chartboard")
		os.Exit(2)
	}
	boardPath := flag.Arg(0)

	if err := run(boardPath, *out, *dark, *pad); err != nil {
		log.Fatalf("boardshot: %v", err)
	}
}

func run(boardPath, outPath string, dark bool, padding float64) error {
	b, err := project.Load(boardPath)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	els, err := b.SceneElements()
	if err != nil {
		return fmt.Errorf("decode elements: %w", err)
	}

	data, err := render.SnapshotPNG(els, render.NewImageCache(), render.PaletteFor(dark), padding)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(boardPath, project.DefaultExt) + ".png"
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	log.Printf("wrote %s (%d elements)", outPath, len(els))
	return nil
}
