// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package deflate

import "fmt"

const maxCodeLength = 15

// code is a canonical Huffman code: its bits (in natural, MSB-first
// order — writeCode reverses them before they reach the bit writer) and
// the number of significant bits. A zero length means "this symbol has
// no code in this table."
type code struct {
	bits   uint16
	length uint8
}

const (
	// numLitLenSymbols and numDistSymbols are the meaningful alphabet
	// sizes RFC 1951 defines: literal/length symbols 0..285 (bytes,
	// end-of-block, length bases) and distance symbols 0..29.
	numLitLenSymbols = 286
	numDistSymbols   = 30

	// numLitLenSymbolsFull and numDistSymbolsFull pad those alphabets out
	// to 288 and 32 respectively. RFC 1951 reserves literal/length
	// symbols 286-287 and distance symbols 30-31 and never sends them,
	// but a canonical code built over only the meaningful symbols is
	// Kraft-incomplete at the fixed widths (152 length-8 codes instead of
	// the 150 that fit the real alphabet, 30 length-5 distance codes
	// instead of 32) and a standard decoder will reject it as corrupt.
	// compress/flate's fixedHuffmanDecoderInit builds its table over the
	// full 288 literal/length symbols for the same reason.
	numLitLenSymbolsFull = 288
	numDistSymbolsFull   = 32

	numCodeLenSymbols = 19 // the code-length alphabet used to describe a dynamic block's tables

	endOfBlockSymbol = 256
	minMatchLength   = 3
	maxMatchLength   = 258
)

// huffmanTable holds the canonical codes for one block's literal/length
// and distance alphabets, built once per block. The slices are sized to
// the full, Kraft-completable alphabets (numLitLenSymbolsFull,
// numDistSymbolsFull); only the first numLitLenSymbols/numDistSymbols
// entries are ever queried.
type huffmanTable struct {
	litLen []code
	dist   []code
}

// codeLengthsToCodes runs the RFC 1951 §3.2.2 canonical-code algorithm:
// for each length L, the first code of that length is one more than
// twice the last code of length L-1, and codes of the same length are
// assigned in ascending symbol order. Returns an error satisfying
// errors.Is(err, ErrHuffmanConstruction) if any length exceeds 15 or the
// length set isn't a valid prefix code (Kraft inequality violated, i.e.
// under- or over-subscribed).
func codeLengthsToCodes(lengths []int) ([]code, error) {
	var blCount [maxCodeLength + 1]int
	maxLen := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l > maxCodeLength {
			return nil, fmt.Errorf("%w: length %d exceeds %d bits", ErrHuffmanConstruction, l, maxCodeLength)
		}
		blCount[l]++
		if l > maxLen {
			maxLen = l
		}
	}

	// Kraft equality: sum(2^(maxLen-l) for each code of length l) must
	// equal 2^maxLen exactly, or the code-length set doesn't describe a
	// complete prefix code. The one exception, per RFC 1951 and zlib's
	// own leniency here, is a degenerate single-symbol alphabet, which
	// canonically gets one length-1 code and is "under-subscribed" by
	// construction.
	if maxLen > 0 {
		total, kraft := 0, 0
		for l := 1; l <= maxLen; l++ {
			total += blCount[l]
			kraft += blCount[l] << (maxLen - l)
		}
		degenerate := total == 1 && maxLen == 1
		if kraft > 1<<maxLen {
			return nil, fmt.Errorf("%w: over-subscribed code-length set", ErrHuffmanConstruction)
		}
		if kraft < 1<<maxLen && !degenerate {
			return nil, fmt.Errorf("%w: under-subscribed code-length set", ErrHuffmanConstruction)
		}
	}

	var nextCode [maxCodeLength + 1]int
	code := 0
	for l := 1; l <= maxCodeLength; l++ {
		code = (code + blCount[l-1]) << 1
		nextCode[l] = code
	}

	codes := make([]code, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = code{bits: uint16(nextCode[l]), length: uint8(l)}
		nextCode[l]++
	}
	return codes, nil
}

// fixedLitLenLengths and fixedDistLengths are RFC 1951 §3.2.6's hard-coded
// code lengths for "fixed Huffman" blocks, padded to the full alphabet
// size (see numLitLenSymbolsFull/numDistSymbolsFull) so the result is
// Kraft-complete and constructible.
func fixedLitLenLengths() []int {
	lengths := make([]int, numLitLenSymbolsFull)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < numLitLenSymbolsFull; i++ {
		lengths[i] = 8
	}
	return lengths
}

func fixedDistLengths() []int {
	lengths := make([]int, numDistSymbolsFull)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}

// newFixedHuffmanTable builds the RFC 1951 §3.2.6 fixed tables. These are
// the same every time; callers don't need to cache the result, since
// construction from a known-good length set can't fail.
func newFixedHuffmanTable() *huffmanTable {
	litLen, err := codeLengthsToCodes(fixedLitLenLengths())
	if err != nil {
		panic(err) // the fixed lengths are constants; this can never happen
	}
	dist, err := codeLengthsToCodes(fixedDistLengths())
	if err != nil {
		panic(err)
	}
	return &huffmanTable{litLen: litLen, dist: dist}
}

// fromLengthTables builds a table from arbitrary litLen/dist length
// arrays, used for dynamic blocks. See the driver's Open Question note
// on where those lengths currently come from.
func fromLengthTables(litLenLengths, distLengths []int) (*huffmanTable, error) {
	litLen, err := codeLengthsToCodes(litLenLengths)
	if err != nil {
		return nil, fmt.Errorf("literal/length table: %w", err)
	}
	dist, err := codeLengthsToCodes(distLengths)
	if err != nil {
		return nil, fmt.Errorf("distance table: %w", err)
	}
	return &huffmanTable{litLen: litLen, dist: dist}, nil
}

func (h *huffmanTable) getLiteral(b byte) code {
	return h.litLen[b]
}

func (h *huffmanTable) getEndOfBlock() code {
	return h.litLen[endOfBlockSymbol]
}

// lengthDistanceCodes is the four sub-codes §4.2 specifies, in the order
// they must be written: length base code, length extra bits, distance
// base code, distance extra bits.
type lengthDistanceCodes struct {
	lengthCode  code
	lengthExtra code // the extra bits as a "code": natural order, not reversed
	distCode    code
	distExtra   code
}

// getLengthDistance maps a verified (length, distance) match to its four
// sub-codes. length must be in [3,258] and distance in [1,32768];
// violating that is an encoder bug and returns ErrInvalidLengthOrDistance
// rather than silently truncating, per spec.
func (h *huffmanTable) getLengthDistance(length, distance int) (lengthDistanceCodes, error) {
	if length < minMatchLength || length > maxMatchLength {
		return lengthDistanceCodes{}, fmt.Errorf("%w: length %d", ErrInvalidLengthOrDistance, length)
	}
	if distance < 1 || distance > 1<<15 {
		return lengthDistanceCodes{}, fmt.Errorf("%w: distance %d", ErrInvalidLengthOrDistance, distance)
	}

	li := lengthTable[length]
	di := distanceTable[distance]

	return lengthDistanceCodes{
		lengthCode:  h.litLen[257+li.symbol],
		lengthExtra: code{bits: uint16(length - li.base), length: li.extraBits},
		distCode:    h.dist[di.symbol],
		distExtra:   code{bits: uint16(distance - di.base), length: di.extraBits},
	}, nil
}

// lengthEntry and distanceEntry describe one row of RFC 1951's length/
// distance base-code tables (§3.2.5's Tables).
type lengthEntry struct {
	symbol    int // offset from symbol 257
	extraBits uint8
	base      int
}

type distanceEntry struct {
	symbol    int
	extraBits uint8
	base      int
}

// lengthTable maps every valid match length (3..258) to its base code
// offset, extra-bit width, and base value. Built once at package init
// from the RFC 1951 §3.2.5 table; typing out 256 entries by hand invites
// an off-by-one, so it is generated here from the compact (start,
// extraBits) run descriptions instead.
var lengthTable [maxMatchLength + 1]lengthEntry

// lengthRuns describes the length code runs: symbol offset 0 starts at
// length 3 with 0 extra bits, offset 8 starts at length 11 with 1 extra
// bit, and so on, ending with the special single-length code 285 (258,
// 0 extra bits).
var lengthRuns = []struct {
	startSymbol int
	startLength int
	extraBits   uint8
	count       int // how many symbols share this extraBits width
}{
	{0, 3, 0, 8},
	{8, 11, 1, 4},
	{12, 19, 2, 4},
	{16, 35, 3, 4},
	{20, 67, 4, 4},
	{24, 131, 5, 4},
	{28, 258, 0, 1},
}

func init() {
	for _, run := range lengthRuns {
		length := run.startLength
		for i := 0; i < run.count; i++ {
			sym := run.startSymbol + i
			step := 1 << run.extraBits
			for l := length; l < length+step && l <= maxMatchLength; l++ {
				lengthTable[l] = lengthEntry{symbol: sym, extraBits: run.extraBits, base: length}
			}
			length += step
		}
	}
}

// distanceTable maps every valid distance (1..32768) to its base code,
// extra-bit width, and base value, built the same way as lengthTable from
// RFC 1951's distance Table in §3.2.5.
var distanceTable [1<<15 + 1]distanceEntry

var distanceRuns = []struct {
	startSymbol int
	startDist   int
	extraBits   uint8
	count       int
}{
	{0, 1, 0, 4},
	{4, 5, 1, 2},
	{6, 9, 2, 2},
	{8, 17, 3, 2},
	{10, 33, 4, 2},
	{12, 65, 5, 2},
	{14, 129, 6, 2},
	{16, 257, 7, 2},
	{18, 513, 8, 2},
	{20, 1025, 9, 2},
	{22, 2049, 10, 2},
	{24, 4097, 11, 2},
	{26, 8193, 12, 2},
	{28, 16385, 13, 2},
}

func init() {
	for _, run := range distanceRuns {
		dist := run.startDist
		for i := 0; i < run.count; i++ {
			sym := run.startSymbol + i
			step := 1 << run.extraBits
			for d := dist; d < dist+step && d <= 1<<15; d++ {
				distanceTable[d] = distanceEntry{symbol: sym, extraBits: run.extraBits, base: dist}
			}
			dist += step
		}
	}
}
