package astc_test

import (
	"testing"

	"github.com/ptaylor-oastc/oastc/astc"
)

// addBlockSeeds adds hand-crafted 16-byte blocks covering the edge cases
// DecodeBlockRGBA8 is expected to classify: a reserved block mode, the
// format's void-extent black padding pattern, and a dual-plane block
// claiming the maximum partition count (which the format forbids).
func addBlockSeeds(f *testing.F) {
	f.Helper()

	var reservedMode [astc.BlockBytes]byte
	f.Add(reservedMode[:])

	voidExtentBlack := [astc.BlockBytes]byte{0b11111100, 0b11111101, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0}
	f.Add(voidExtentBlack[:])

	allOnes := [astc.BlockBytes]byte{}
	for i := range allOnes {
		allOnes[i] = 0xFF
	}
	f.Add(allOnes[:])

	var allZero [astc.BlockBytes]byte
	f.Add(allZero[:])
}

// FuzzDecodeBlockRGBA8 guards DecodeBlockRGBA8 against panicking on any
// 16-byte input (longer inputs are cut to their first 16 bytes, shorter
// ones are skipped), matching how untrusted .astc data
// reaches it through cmd/oastcdec or a container parsed with ParseFile.
func FuzzDecodeBlockRGBA8(f *testing.F) {
	addBlockSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < astc.BlockBytes {
			return
		}
		astc.DecodeBlockRGBA8(data[:astc.BlockBytes], 4, 4, 1) //nolint:errcheck
	})
}

// FuzzParseFile guards the container parser against panicking on arbitrary
// bytes, the boundary where data from disk or network first enters the
// package.
func FuzzParseFile(f *testing.F) {
	pix := make([]byte, 8*8*4)
	for i := range pix {
		pix[i] = byte(i)
	}
	if out, err := astc.EncodeRGBA8(pix, 8, 8, 4, 4); err == nil {
		f.Add(out)
	}
	f.Add([]byte{0x13, 0xAB, 0xA1, 0x5C, 4, 4, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		astc.ParseFile(data) //nolint:errcheck
	})
}
