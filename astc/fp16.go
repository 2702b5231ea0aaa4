package astc

// FP16 is an IEEE-754 binary16 value, stored as its raw 16 bits (sign:1
// exponent:5 mantissa:10). Values converted from LDR channels are finite
// fractions in [0,1]; HDR endpoint values and FP16 void-extent colours are
// passed through as raw bit patterns without checking, so infinity or NaN
// can appear there. Grounded on original_source/fp16.h's `struct fp16`.
type FP16 uint16

// FP16Zero and FP16One are the two endpoints every LDR channel clamps
// between before any interpolation happens.
const (
	FP16Zero FP16 = 0x0000
	FP16One  FP16 = 0x3C00
)

// ToUnorm8 maps h, assumed to lie in [0, 1], to 0..255 with round-to-nearest.
// Behaviour is undefined (matches the reference ASSERT-guarded precondition)
// if h is negative or greater than one.
func (h FP16) ToUnorm8() uint8 {
	m := uint32(h) & 0x3FF
	e := uint32(h>>10) & 0x1F
	v := ((1 << 10) | m) * 255
	v = ((v >> (24 - e)) + 1) >> 1
	return uint8(v)
}

// FP16FromUint16Div64K converts v, an integer treated as the fraction
// v/65536, to half-precision with round-toward-zero. This is the core
// arithmetic every interpolated texel channel (§ texel synthesiser) and
// every void-extent channel (§ void extent) is funnelled through.
func FP16FromUint16Div64K(v uint16) FP16 {
	return FP16(unorm16ToSF16(v))
}

// Unorm8FromUint16Div64K computes FP16FromUint16Div64K(v).ToUnorm8() in one
// step. It must agree with the two-step form for every v in [0, 65536) —
// exercised exhaustively in fp16_test.go.
func Unorm8FromUint16Div64K(v uint16) uint8 {
	if v == 0 {
		return 0
	}
	n := 0
	for (uint32(v)<<uint(n))&0x8000 == 0 {
		n++
	}
	r := ((uint32(v) << uint(n)) >> 5) * 255
	r = ((r >> uint(10+n)) + 1) >> 1
	return uint8(r)
}

// HalfToFloat32 and Float32ToHalf export constblock.go's general
// half<->float32 conversions. Inside the package, halfToFloat32 backs
// DecodeConstBlockRGBA8's FP16 constant-block path; the HDR endpoint decoder
// in endpoints.go uses neither.
func HalfToFloat32(h uint16) float32 { return halfToFloat32(h) }
func Float32ToHalf(f float32) uint16 { return float32ToHalf(f) }
