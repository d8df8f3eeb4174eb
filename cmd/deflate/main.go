// Command deflate walks a directory tree and compresses matching files
// with the raw RFC 1951 encoder in internal/deflate, or benchmarks it
// against an existing .xz file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/elliotnunn/deflatewalk/internal/deflate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(os.Args[2:])
	case "compare-xz":
		err = runCompareXZ(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: deflate compress -glob PATTERN [-btype stored|fixed|dynamic] [-max-hash-checks N] [-cache] ROOT")
	fmt.Fprintln(os.Stderr, "       deflate compare-xz FILE")
}

func parseBType(s string) (deflate.BType, error) {
	switch s {
	case "", "stored":
		return deflate.Stored, nil
	case "fixed":
		return deflate.FixedHuffman, nil
	case "dynamic":
		return deflate.DynamicHuffman, nil
	default:
		return 0, fmt.Errorf("unknown -btype %q", s)
	}
}
