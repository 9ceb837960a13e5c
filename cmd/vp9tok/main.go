// Command vp9tok generates, decodes and inspects VP9 token fixture files.
//
// Usage:
//
//	vp9tok gen [options] -o <out.vp9t>   Synthesize random tiles and tokenize them
//	vp9tok dec [options] <in.vp9t>       Decode every tile and print a summary
//	vp9tok info <in.vp9t>                Display fixture metadata
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "gen":
		err = runGen(os.Args[2:], os.Stdout, os.Stderr)
	case "dec":
		err = runDec(os.Args[2:], os.Stdout, os.Stderr)
	case "info":
		err = runInfo(os.Args[2:], os.Stdout)
	case "-h", "-help", "--help", "help":
		printUsage(os.Stderr)
		return
	default:
		fmt.Fprintf(os.Stderr, "vp9tok: unknown command %q\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "vp9tok: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  vp9tok gen [options] -o <out.vp9t>   Synthesize random tiles and tokenize them
  vp9tok dec [options] <in.vp9t>       Decode every tile and print a summary
  vp9tok info <in.vp9t>                Display fixture metadata

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "vp9tok <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
