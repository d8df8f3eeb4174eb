// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package deflate implements the producing half of RFC 1951: turning a
// byte slice into a raw DEFLATE bit stream via LZ77 back-reference
// matching followed by Huffman symbol coding. It does not implement
// gzip/zlib framing, checksums, or decompression; those are the
// caller's concern.
package deflate

import "fmt"

// BType selects which of the three RFC 1951 block encodings Compress
// should use for the whole input. This encoder never splits a stream
// into more than one block of compressed data (see the stored-block
// chunking note on Compress), so this selects the single block's type.
type BType int

const (
	Stored BType = iota
	FixedHuffman
	DynamicHuffman
)

func (t BType) String() string {
	switch t {
	case Stored:
		return "stored"
	case FixedHuffman:
		return "fixed"
	case DynamicHuffman:
		return "dynamic"
	default:
		return fmt.Sprintf("BType(%d)", int(t))
	}
}

// Options tunes the compression pass. The zero value is valid: MaxHashChecks
// of 0 means "use DefaultMaxHashChecks".
type Options struct {
	// MaxHashChecks bounds how many hash-chain positions the match finder
	// walks per input position. Higher values trade speed for ratio.
	MaxHashChecks int
}

// DefaultMaxHashChecks is the chain-walk budget used when Options.MaxHashChecks
// is left at zero.
const DefaultMaxHashChecks = 4096

// Compress encodes input as a single raw DEFLATE stream of the requested
// block type. It is a pure function of its arguments: no state survives
// between calls.
//
// Compress never returns a half-written stream. If the pass cannot
// proceed (a Huffman table rejects its code lengths, or a core invariant
// is violated), it returns an error and a nil byte slice.
func Compress(input []byte, btype BType, opts Options) (out []byte, err error) {
	maxHashChecks := opts.MaxHashChecks
	if maxHashChecks <= 0 {
		maxHashChecks = DefaultMaxHashChecks
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("deflate: %w", e)
			} else {
				err = fmt.Errorf("%w: %v", ErrInternalInvariant, r)
			}
			out = nil
		}
	}()

	if btype == Stored {
		return writeStoredBlocks(input), nil
	}

	symbols := lz77Compress(input, maxHashChecks)

	d := newDriver(btype)
	for _, s := range symbols {
		d.write(s)
	}
	return d.finish(), nil
}
