package main

import (
	"fmt"
	"io"
)

func runInfo(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: vp9tok info <in.vp9t>")
	}
	frame, err := readFrame(args[0])
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	blocks, bytes := 0, 0
	for _, t := range frame.Tiles {
		blocks += len(t.Blocks)
		bytes += len(t.Data)
	}
	fmt.Fprintf(stdout, "File:           %s\n", args[0])
	fmt.Fprintf(stdout, "Bit depth:      %d\n", frame.BitDepth)
	fmt.Fprintf(stdout, "Frame-parallel: %v\n", frame.FrameParallel)
	fmt.Fprintf(stdout, "Tiles:          %d\n", len(frame.Tiles))
	fmt.Fprintf(stdout, "Blocks:         %d\n", blocks)
	fmt.Fprintf(stdout, "Token bytes:    %d\n", bytes)
	for i, t := range frame.Tiles {
		y := t.Planes[0]
		fmt.Fprintf(stdout, "  tile %d: %dx%d (visible %dx%d), %d blocks, %d bytes\n",
			i, y.Cols, y.Rows, y.VisibleCols, y.VisibleRows, len(t.Blocks), len(t.Data))
	}
	return nil
}
