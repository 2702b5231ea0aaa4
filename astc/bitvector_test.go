package astc

import "testing"

// TestBitVectorGetBitsStraddlesLoHiBoundary exercises a block-mode style
// field straddling the lo/hi 64-bit halves, the same bit layout block.go
// depends on throughout the decoder.
func TestBitVectorGetBitsStraddlesLoHiBoundary(t *testing.T) {
	data := []byte{0x44, 0x33, 0x22, 0x11, 0xE1, 0xAC, 0x68, 0x24, 0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12}
	bv := NewBitVector(data)

	if got := bv.GetBits(28, 28); got != 0x068ACE11 {
		t.Fatalf("GetBits(28,28): got %#x want %#x", got, 0x068ACE11)
	}
	if got := bv.GetBits(92, 28); got != 0x03456789 {
		t.Fatalf("GetBits(92,28): got %#x want %#x", got, 0x03456789)
	}
}

// TestBitVectorGetBits64CrossesLoHiBoundary checks the 64-bit accessor at a
// straddle point deep enough to require bits from both halves.
func TestBitVectorGetBits64CrossesLoHiBoundary(t *testing.T) {
	data := []byte{0x44, 0x33, 0x22, 0x11, 0xE1, 0xAC, 0x68, 0x24, 0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12}
	bv := NewBitVector(data)

	if got := bv.GetBits64(68, 60); got != 0x0123456789ABCDEF {
		t.Fatalf("GetBits64(68,60): got %#x want %#x", got, 0x0123456789ABCDEF)
	}
}

// TestBitVectorGetBitsRevIsBitReverseOfGetBits checks the duality the weight
// grid decoder relies on: reading n bits reversed equals reading n bits
// forward and reversing the bit order within that field.
func TestBitVectorGetBitsRevIsBitReverseOfGetBits(t *testing.T) {
	data := []byte{0b11011010, 0b00000001, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	bv := NewBitVector(data)

	// 10-bit field at offset 0: 0b01_1101_1010 = 0x1DA.
	got := bv.GetBitsRev(0, 10)
	want := uint32(0b0101101110)
	if got != want {
		t.Fatalf("GetBitsRev(0,10): got %#b want %#b", got, want)
	}
}

// TestBitVectorSetThenGetRoundTrips checks the invariant every writer in the
// symbolic encoder depends on: SetBits followed by GetBits at the same
// offset and width returns exactly what was written, for fields spanning
// both the lo-only, hi-only and straddling cases.
func TestBitVectorSetThenGetRoundTrips(t *testing.T) {
	cases := []struct {
		off, n int
		v      uint64
	}{
		{0, 11, 0x5A5},
		{64, 11, 0x2F2},
		{60, 11, 0x6CD},
		{117, 11, 0x7FF},
		{0, 64, 0xDEADBEEFCAFEBABE},
		{64, 64, 0x0123456789ABCDEF},
	}

	for _, c := range cases {
		var bv BitVector
		bv.SetBits(c.off, c.n, c.v)
		mask := maskBits(c.n)
		if got := bv.GetBits64(c.off, c.n); got != c.v&mask {
			t.Fatalf("SetBits/GetBits64(off=%d,n=%d,v=%#x): got %#x want %#x", c.off, c.n, c.v, got, c.v&mask)
		}
	}
}

// TestBitVectorOrBitsDoesNotClobberNeighbours checks that OrBits never
// clears bits outside its own field.
func TestBitVectorOrBitsDoesNotClobberNeighbours(t *testing.T) {
	var bv BitVector
	bv.SetBits(0, 8, 0xFF)
	bv.OrBits(8, 8, 0x0F)

	if got := bv.GetBits(0, 8); got != 0xFF {
		t.Fatalf("neighbour field clobbered: GetBits(0,8) = %#x want 0xFF", got)
	}
	if got := bv.GetBits(8, 8); got != 0x0F {
		t.Fatalf("GetBits(8,8) = %#x want 0x0F", got)
	}
}

// TestBitVectorReversedIsWholeBufferBitReverse checks that Reversed() maps
// bit i to bit 127-i across the lo/hi boundary, the property the weight
// grid's bit-reversed-from-the-top-of-the-block read relies on.
func TestBitVectorReversedIsWholeBufferBitReverse(t *testing.T) {
	var bv BitVector
	bv.SetBits(0, 1, 1) // bit 0 set
	rev := bv.Reversed()
	if got := rev.GetBits(127, 1); got != 1 {
		t.Fatalf("Reversed() bit 0 -> bit 127: got %d want 1", got)
	}

	var bv2 BitVector
	bv2.SetBits(127, 1, 1) // bit 127 set
	rev2 := bv2.Reversed()
	if got := rev2.GetBits(0, 1); got != 1 {
		t.Fatalf("Reversed() bit 127 -> bit 0: got %d want 1", got)
	}

	if bv2.Reversed().Reversed() != bv2 {
		t.Fatalf("Reversed() is not its own inverse")
	}
}

// TestBitVectorBytesRoundTripsThroughNewBitVector checks that loading a
// block and rendering it back produces the same 16 bytes.
func TestBitVectorBytesRoundTripsThroughNewBitVector(t *testing.T) {
	data := make([]byte, BlockBytes)
	for i := range data {
		data[i] = byte(i * 17)
	}
	bv := NewBitVector(data)
	got := bv.Bytes()
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("Bytes()[%d] = %#x want %#x", i, got[i], data[i])
		}
	}
}

// TestReadBitsExtractsLittleEndianField checks the small byte-slice reader
// the block-mode header parse uses directly (before a full BitVector exists
// for the block), the same bit layout block.go depends on.
func TestReadBitsExtractsLittleEndianField(t *testing.T) {
	// byte0 = 0b10110101, byte1 = 0b00001111
	data := []byte{0b10110101, 0b00001111, 0, 0}

	cases := []struct {
		bitCount, bitOffset int
		want                uint32
	}{
		{bitCount: 4, bitOffset: 0, want: 0b0101},
		{bitCount: 4, bitOffset: 4, want: 0b1011},
		{bitCount: 8, bitOffset: 4, want: 0b1111_1011},
		{bitCount: 0, bitOffset: 3, want: 0},
		{bitCount: 11, bitOffset: 0, want: uint32(data[0]) | (uint32(data[1]&0x7) << 8)},
	}

	for _, c := range cases {
		if got := readBits(c.bitCount, c.bitOffset, data); got != c.want {
			t.Fatalf("readBits(%d, %d): got %#b want %#b", c.bitCount, c.bitOffset, got, c.want)
		}
	}
}

// TestReadBitsPastEndOfDataReadsZero checks the format's tolerance for
// reading a field whose bits run past the end of a short buffer: missing
// bytes behave as though they were zero rather than panicking.
func TestReadBitsPastEndOfDataReadsZero(t *testing.T) {
	data := []byte{0xFF}
	if got := readBits(8, 4, data); got != 0x0F {
		t.Fatalf("readBits past end: got %#x want %#x", got, 0x0F)
	}
	if got := readBits(8, 8, data); got != 0 {
		t.Fatalf("readBits fully past end: got %#x want 0", got)
	}
}
