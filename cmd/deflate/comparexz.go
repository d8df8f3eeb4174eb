package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/elliotnunn/deflatewalk/internal/deflate"
	"github.com/therootcompany/xz"
)

// runCompareXZ decompresses an .xz file, recompresses the result with
// the raw DEFLATE encoder, and reports the size delta against the
// original .xz — not a claim that DEFLATE beats LZMA2, just a quick
// benchmark harness exercising the same xz decoder BeHierarchic's fs.go
// uses for transparent burrow decompression.
func runCompareXZ(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("compare-xz: expected exactly one FILE argument")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	xzSize := info.Size()

	r, err := xz.NewReader(f, xz.DefaultDictMax)
	if err != nil {
		return fmt.Errorf("compare-xz %s: %w", path, err)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("compare-xz %s: %w", path, err)
	}

	out, err := deflate.Compress(raw, deflate.DynamicHuffman, deflate.Options{})
	if err != nil {
		return fmt.Errorf("compare-xz %s: %w", path, err)
	}

	slog.Info("compare-xz", "path", path, "xz_size", xzSize, "raw_size", len(raw), "deflate_size", len(out),
		"deflate_vs_xz_ratio", float64(len(out))/float64(xzSize))
	return nil
}
