package astc

// btqCount describes the element packing for an integer sequence quantization mode.
type btqCount struct {
	bits   uint8
	trits  bool
	quints bool
}

var btqCounts = [...]btqCount{
	{bits: 1},               // quant2
	{bits: 0, trits: true},  // quant3
	{bits: 2},               // quant4
	{bits: 0, quints: true}, // quant5
	{bits: 1, trits: true},  // quant6
	{bits: 3},               // quant8
	{bits: 1, quints: true}, // quant10
	{bits: 2, trits: true},  // quant12
	{bits: 4},               // quant16
	{bits: 2, quints: true}, // quant20
	{bits: 3, trits: true},  // quant24
	{bits: 5},               // quant32
	{bits: 3, quints: true}, // quant40
	{bits: 4, trits: true},  // quant48
	{bits: 6},               // quant64
	{bits: 4, quints: true}, // quant80
	{bits: 5, trits: true},  // quant96
	{bits: 7},               // quant128
	{bits: 5, quints: true}, // quant160
	{bits: 6, trits: true},  // quant192
	{bits: 8},               // quant256
}

type iseSize struct {
	scale   uint8
	divisor uint8 // encoded as ((divisor<<1)+1)
}

var iseSizes = [...]iseSize{
	{scale: 1, divisor: 0},  // quant2
	{scale: 8, divisor: 2},  // quant3
	{scale: 2, divisor: 0},  // quant4
	{scale: 7, divisor: 1},  // quant5
	{scale: 13, divisor: 2}, // quant6
	{scale: 3, divisor: 0},  // quant8
	{scale: 10, divisor: 1}, // quant10
	{scale: 18, divisor: 2}, // quant12
	{scale: 4, divisor: 0},  // quant16
	{scale: 13, divisor: 1}, // quant20
	{scale: 23, divisor: 2}, // quant24
	{scale: 5, divisor: 0},  // quant32
	{scale: 16, divisor: 1}, // quant40
	{scale: 28, divisor: 2}, // quant48
	{scale: 6, divisor: 0},  // quant64
	{scale: 19, divisor: 1}, // quant80
	{scale: 33, divisor: 2}, // quant96
	{scale: 7, divisor: 0},  // quant128
	{scale: 22, divisor: 1}, // quant160
	{scale: 38, divisor: 2}, // quant192
	{scale: 8, divisor: 0},  // quant256
}

// iseSequenceBitCount returns the number of bits an ISE-encoded sequence of
// charCount values at quant level q occupies. ABI-fixed: these scale/divisor
// pairs reproduce the reference encoder's integer ISE size table exactly.
func iseSequenceBitCount(charCount int, q quantMethod) int {
	if int(q) < 0 || int(q) >= len(iseSizes) {
		return 1024
	}
	e := iseSizes[q]
	divisor := int((e.divisor << 1) + 1)
	return (int(e.scale)*charCount + divisor - 1) / divisor
}

var tritBitsToRead = [...]uint8{2, 2, 1, 2, 1}
var tritBlockShift = [...]uint8{0, 2, 4, 5, 7}
var tritNextLCounter = [...]uint8{1, 2, 3, 4, 0}
var tritHCounterIncr = [...]uint8{0, 0, 0, 0, 1}

var quintBitsToRead = [...]uint8{3, 2, 2}
var quintBlockShift = [...]uint8{0, 3, 5}
var quintNextLCounter = [...]uint8{1, 2, 0}
var quintHCounterIncr = [...]uint8{0, 0, 1}

// decodeISE reads charCount ISE-packed values at quant level q out of bv
// starting at bitOffset, in the forward (low-to-high) bit direction. The
// weight grid's reversed stream is handled by decoding a Reversed() view of
// the block instead of adding a second code path here.
func decodeISE(q quantMethod, charCount int, bv BitVector, bitOffset int, output []uint8) {
	if charCount <= 0 {
		panic("astc: decodeISE: charCount must be > 0")
	}
	if len(output) < charCount {
		panic("astc: decodeISE: output too small")
	}

	btq := btqCounts[q]
	bits := int(btq.bits)

	switch {
	case btq.trits:
		decodeISETrits(bits, charCount, bv, bitOffset, output)
	case btq.quints:
		decodeISEQuints(bits, charCount, bv, bitOffset, output)
	default:
		decodeISEBitsOnly(bits, charCount, bv, bitOffset, output)
	}
}

func decodeISEBitsOnly(bits int, charCount int, bv BitVector, bitOffset int, output []uint8) {
	bit := bitOffset
	for i := 0; i < charCount; i++ {
		output[i] = uint8(bv.GetBits(bit, bits))
		bit += bits
	}
}

func decodeISETrits(bits int, charCount int, bv BitVector, bitOffset int, output []uint8) {
	bit := bitOffset
	shift := uint(bits)

	i := 0
	for ; i+4 < charCount; i += 5 {
		var base [5]uint8
		var t [5]uint8
		for j, n := range tritBitsToRead {
			if bits > 0 {
				base[j] = uint8(bv.GetBits(bit, bits))
				bit += bits
			}
			t[j] = uint8(bv.GetBits(bit, int(n)))
			bit += int(n)
		}

		T := t[0] | (t[1] << 2) | (t[2] << 4) | (t[3] << 5) | (t[4] << 7)
		tv := tritsOfInteger[T]
		for j := 0; j < 5; j++ {
			output[i+j] = base[j] | (tv[j] << shift)
		}
	}

	if i >= charCount {
		return
	}

	rem := charCount - i
	var base [5]uint8
	var T uint8
	for j := 0; j < rem; j++ {
		if bits > 0 {
			base[j] = uint8(bv.GetBits(bit, bits))
			bit += bits
		}
		n := int(tritBitsToRead[j])
		T |= uint8(bv.GetBits(bit, n)) << tritBlockShift[j]
		bit += n
	}

	tv := tritsOfInteger[T]
	for j := 0; j < rem; j++ {
		output[i+j] = base[j] | (tv[j] << shift)
	}
}

func decodeISEQuints(bits int, charCount int, bv BitVector, bitOffset int, output []uint8) {
	bit := bitOffset
	shift := uint(bits)

	i := 0
	for ; i+2 < charCount; i += 3 {
		var base [3]uint8
		var t [3]uint8
		for j, n := range quintBitsToRead {
			if bits > 0 {
				base[j] = uint8(bv.GetBits(bit, bits))
				bit += bits
			}
			t[j] = uint8(bv.GetBits(bit, int(n)))
			bit += int(n)
		}

		T := t[0] | (t[1] << 3) | (t[2] << 5)
		qv := quintsOfInteger[T]
		for j := 0; j < 3; j++ {
			output[i+j] = base[j] | (qv[j] << shift)
		}
	}

	if i >= charCount {
		return
	}

	rem := charCount - i
	var base [3]uint8
	var T uint8
	for j := 0; j < rem; j++ {
		if bits > 0 {
			base[j] = uint8(bv.GetBits(bit, bits))
			bit += bits
		}
		n := int(quintBitsToRead[j])
		T |= uint8(bv.GetBits(bit, n)) << quintBlockShift[j]
		bit += n
	}

	qv := quintsOfInteger[T]
	for j := 0; j < rem; j++ {
		output[i+j] = base[j] | (qv[j] << shift)
	}
}

// readBits reads an n-bit (n<=16, and limited to two consecutive bytes of
// data) field from a byte slice that may be shorter than a full block — used
// only by classifyBlockDecodeError to re-read the 11-bit block-mode field at
// the start of the physical block. Bytes past the end of data read as zero.
func readBits(bitCount int, bitOffset int, data []byte) uint32 {
	if bitCount == 0 {
		return 0
	}
	mask := uint32((1 << uint(bitCount)) - 1)

	byteOff := bitOffset >> 3
	shift := uint(bitOffset & 7)

	if byteOff+1 < len(data) {
		v := uint32(data[byteOff]) | (uint32(data[byteOff+1]) << 8)
		return (v >> shift) & mask
	}

	var v uint32
	if byteOff < len(data) {
		v |= uint32(data[byteOff])
	}
	if byteOff+1 < len(data) {
		v |= uint32(data[byteOff+1]) << 8
	}
	return (v >> shift) & mask
}
