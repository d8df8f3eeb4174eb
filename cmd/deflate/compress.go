package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/elliotnunn/deflatewalk/internal/deflate"
)

func runCompress(args []string) error {
	flagSet := flag.NewFlagSet("compress", flag.ExitOnError)
	glob := flagSet.String("glob", "**", "doublestar pattern selecting files under ROOT")
	btypeFlag := flagSet.String("btype", "dynamic", "stored|fixed|dynamic")
	maxHashChecks := flagSet.Int("max-hash-checks", deflate.DefaultMaxHashChecks, "hash-chain walk budget")
	useCache := flagSet.Bool("cache", false, "skip recompressing files whose content hash was already seen")
	flagSet.Parse(args)

	if flagSet.NArg() != 1 {
		return fmt.Errorf("compress: expected exactly one ROOT argument")
	}
	root := flagSet.Arg(0)

	btype, err := parseBType(*btypeFlag)
	if err != nil {
		return err
	}

	var cache *blockCache
	if *useCache {
		cache = newBlockCache(1024)
	}

	opts := deflate.Options{MaxHashChecks: *maxHashChecks}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if ok, err := doublestar.Match(*glob, filepath.ToSlash(rel)); err != nil {
			return err
		} else if !ok {
			return nil
		}

		return compressOne(path, btype, opts, cache)
	})
}

func compressOne(path string, btype deflate.BType, opts deflate.Options, cache *blockCache) error {
	data, err := mmapFile(path)
	if err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}
	defer data.Close()

	var key uint64
	if cache != nil {
		key = digest(data.Bytes())
		if hit, ok := cache.get(key); ok {
			slog.Info("compress", "path", path, "cached", true, "out_size", len(hit))
			return os.WriteFile(path+".deflate", hit, 0o644)
		}
	}

	out, err := deflate.Compress(data.Bytes(), btype, opts)
	if err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}

	if cache != nil {
		cache.put(key, out)
	}

	slog.Info("compress", "path", path, "btype", btype, "in_size", len(data.Bytes()), "out_size", len(out))
	return os.WriteFile(path+".deflate", out, 0o644)
}
