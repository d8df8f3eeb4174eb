// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package deflate

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"testing"
)

// roundTrip decompresses got with the standard library's raw DEFLATE
// reader, used throughout as the round-trip oracle: RFC 1951 compliance
// is ultimately judged by whether a standard decoder accepts the output.
func roundTrip(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("standard decoder rejected stream: %v", err)
	}
	return out
}

func TestFixedHuffmanExample(t *testing.T) {
	// Mark Adler's well-known fixed Huffman worked example.
	out, err := Compress([]byte("Deflate late"), FixedHuffman, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	wantBytes := []byte{0x73, 0x49, 0x4d, 0xcb, 0x49, 0x2c, 0x49, 0x55, 0x00, 0x11, 0x00}
	if !bytes.Equal(out, wantBytes) {
		t.Fatalf("got % x, want % x", out, wantBytes)
	}
	if got := roundTrip(t, out); string(got) != "Deflate late" {
		t.Fatalf("round trip: got %q", got)
	}
}

func TestStoredSmall(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := Compress(in, Stored, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := roundTrip(t, out)
	if !bytes.Equal(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestStoredMultiBlock(t *testing.T) {
	in := bytes.Repeat([]byte{0x20}, 40000)
	out, err := Compress(in, Stored, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := roundTrip(t, out)
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(in))
	}
}

func TestDynamicHuffmanRoundTrip(t *testing.T) {
	in := []byte("                    GNU GENERAL PUBLIC LICENSE")
	out, err := Compress(in, DynamicHuffman, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := roundTrip(t, out)
	if !bytes.Equal(got, in) {
		t.Fatalf("got %q, want %q", got, in)
	}
}

func TestKnownMatchSelection(t *testing.T) {
	// The match finder must prefer the longer, more distant match over a
	// shorter but closer one.
	data := []byte("xTest data, Test_data,zTest data")
	ht := newChainedHashTable()
	ht.fromStartingValues(data[0], data[1])
	for p := 0; p <= 23; p++ {
		if p+2 < len(data) {
			ht.addHashValue(p, data[p+2])
		}
	}
	length, distance := longestMatch(data, ht, 23, minMatchLength-1, DefaultMaxHashChecks)
	if length != 9 || distance != 22 {
		t.Fatalf("got length=%d distance=%d, want length=9 distance=22", length, distance)
	}
}

func TestChainTerminatesAtZero(t *testing.T) {
	// The match finder must not treat position 0 as "no entry" just
	// because it's the chain's terminal value.
	data := []byte("AAAAAAA")
	ht := newChainedHashTable()
	ht.fromStartingValues(data[0], data[1])
	for n, b := range data[2:5] {
		ht.addHashValue(n, b)
	}
	length, distance := longestMatch(data, ht, 2, 0, 4096)
	if distance != 1 || length <= 2 {
		t.Fatalf("got length=%d distance=%d, want distance=1 length>2", length, distance)
	}
}

func TestRoundTripVariousInputs(t *testing.T) {
	inputs := map[string][]byte{
		"empty":       {},
		"single byte": {0x42},
		"ascii text":  []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
		"binary":      {0, 1, 2, 255, 254, 253, 0, 0, 0, 1, 1, 1},
		"all same":    bytes.Repeat([]byte{'z'}, 5000),
	}
	for name, in := range inputs {
		for _, bt := range []BType{Stored, FixedHuffman, DynamicHuffman} {
			t.Run(fmt.Sprintf("%s/%s", name, bt), func(t *testing.T) {
				out, err := Compress(in, bt, Options{})
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}
				got := roundTrip(t, out)
				if !bytes.Equal(got, in) {
					t.Fatalf("round trip mismatch for %d-byte input", len(in))
				}
			})
		}
	}
}

func TestEmptyInputProducesValidStream(t *testing.T) {
	for _, bt := range []BType{Stored, FixedHuffman, DynamicHuffman} {
		out, err := Compress(nil, bt, Options{})
		if err != nil {
			t.Fatalf("%v: %v", bt, err)
		}
		got := roundTrip(t, out)
		if len(got) != 0 {
			t.Fatalf("%v: got %d bytes from empty input", bt, len(got))
		}
	}
}
