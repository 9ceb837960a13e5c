package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/deepteams/vp9"
)

func runDec(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	parallel := fs.Bool("parallel", false, "frame-parallel mode: skip statistics")
	workers := fs.Int("workers", 0, "concurrent tile decoders (0=GOMAXPROCS)")
	verbose := fs.Bool("v", false, "print every block")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dec: missing input file\nUsage: vp9tok dec [options] <in.vp9t>")
	}

	frame, err := readFrame(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}

	opts := vp9.DefaultOptions()
	opts.FrameParallel = *parallel
	opts.Workers = *workers
	start := time.Now()
	res, err := frame.Decode(opts)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	defer res.Release()
	elapsed := time.Since(start)

	for ti, tr := range res.Tiles {
		blocks := frame.Tiles[ti].Blocks
		coded, nonZero := 0, 0
		for bi, coeffs := range tr.Coeffs {
			nz := countNonZero(coeffs)
			nonZero += nz
			if tr.EOBs[bi] > 0 {
				coded++
			}
			if *verbose {
				b := &blocks[bi]
				fmt.Fprintf(stdout, "  tile %d block %d: plane %d %s at (%d,%d) eob=%d nonzero=%d\n",
					ti, bi, b.Plane, b.TxSize, b.X, b.Y, tr.EOBs[bi], nz)
			}
		}
		fmt.Fprintf(stdout, "tile %d: %d blocks, %d coded, %d non-zero coefficients\n",
			ti, len(blocks), coded, nonZero)
	}

	if res.Counts != nil {
		tokens, branches := res.Counts.Totals()
		fmt.Fprintf(stdout, "counts: zero=%d one=%d two+=%d eob=%d eob-checks=%d\n",
			tokens[0], tokens[1], tokens[2], tokens[3], branches)
	} else {
		fmt.Fprintln(stdout, "counts: disabled (frame-parallel)")
	}
	fmt.Fprintf(stderr, "decoded %d tiles in %v\n", len(res.Tiles), elapsed.Round(time.Microsecond))
	return nil
}

func countNonZero(coeffs []int32) int {
	n := 0
	for _, c := range coeffs {
		if c != 0 {
			n++
		}
	}
	return n
}

func readFrame(path string) (*vp9.Frame, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return vp9.ReadFrame(in)
}
