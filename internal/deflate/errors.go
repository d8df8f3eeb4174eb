// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package deflate

import "errors"

// Sentinel error kinds. Use errors.Is to check for these; Compress wraps
// them with context via %w before returning.
var (
	// ErrHuffmanConstruction means a code-length set violated the Kraft
	// inequality, or some symbol needed more than 15 bits.
	ErrHuffmanConstruction = errors.New("deflate: invalid Huffman code-length set")

	// ErrInvalidLengthOrDistance means the LZ77 stage produced a
	// (length, distance) pair outside the RFC 1951 range. This indicates
	// an encoder bug, not bad input: the match finder is specified to
	// never produce such a pair.
	ErrInvalidLengthOrDistance = errors.New("deflate: match length or distance out of range")

	// ErrInternalInvariant covers everything else that should be
	// impossible by construction: writing a literal while the block
	// emitter isn't in a writing state, a hash-chain self-loop that
	// went undetected, and similar.
	ErrInternalInvariant = errors.New("deflate: internal invariant violated")
)
