package astc

import "math/bits"

func unorm16ToSF16(p uint16) uint16 {
	// Scalar port of unorm16_to_sf16() in Source/astcenc_vecmathlib.h, without
	// its 0xFFFF -> 1.0 case: every input rounds toward zero, so 0xFFFF
	// becomes 0x3BFF.
	if p < 4 {
		// Small values are handled with a simple shift which is exact.
		return p << 8
	}

	// lz is clz(p) - 16, clamped. For p in [0x0004, 0xFFFF], this is in [0, 13].
	lz := bits.LeadingZeros32(uint32(p)) - 16
	if lz < 0 {
		lz = 0
	} else if lz > 32 {
		lz = 32
	}

	// p = p * 2^(lz+1), but kept in 16-bit range.
	p32 := uint32(p) * (1 << uint(lz+1))
	p32 &= 0xFFFF
	p32 >>= 6

	// Exponent bits.
	exp := uint32(14 - lz)
	p32 |= exp << 10
	return uint16(p32)
}
