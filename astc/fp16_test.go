package astc_test

import (
	"testing"

	"github.com/ptaylor-oastc/oastc/astc"
)

func TestFP16ZeroAndOneToUnorm8(t *testing.T) {
	if got := astc.FP16Zero.ToUnorm8(); got != 0 {
		t.Fatalf("FP16Zero.ToUnorm8() = %d, want 0", got)
	}
	if got := astc.FP16One.ToUnorm8(); got != 255 {
		t.Fatalf("FP16One.ToUnorm8() = %d, want 255", got)
	}
}

func TestFP16FromUint16Div64KEndpoints(t *testing.T) {
	if got := astc.FP16FromUint16Div64K(0); got != astc.FP16Zero {
		t.Fatalf("FP16FromUint16Div64K(0) = %#04x, want %#04x", uint16(got), uint16(astc.FP16Zero))
	}
	if got := astc.FP16FromUint16Div64K(0xFFFF).ToUnorm8(); got != 255 {
		t.Fatalf("FP16FromUint16Div64K(0xFFFF).ToUnorm8() = %d, want 255", got)
	}
}

func TestUnorm8FromUint16Div64KMatchesTwoStepForm(t *testing.T) {
	for v := 0; v < 65536; v++ {
		want := astc.FP16FromUint16Div64K(uint16(v)).ToUnorm8()
		got := astc.Unorm8FromUint16Div64K(uint16(v))
		if got != want {
			t.Fatalf("Unorm8FromUint16Div64K(%d) = %d, want %d (two-step)", v, got, want)
		}
	}
	// Exhaustively check the boundary region where it matters most.
	for v := 0; v < 4096; v++ {
		want := astc.FP16FromUint16Div64K(uint16(v)).ToUnorm8()
		got := astc.Unorm8FromUint16Div64K(uint16(v))
		if got != want {
			t.Fatalf("Unorm8FromUint16Div64K(%d) = %d, want %d (two-step)", v, got, want)
		}
	}
}

func TestUnorm8FromUint16Div64KMonotonic(t *testing.T) {
	prev := uint8(0)
	for v := 0; v < 65536; v += 256 {
		got := astc.Unorm8FromUint16Div64K(uint16(v))
		if got < prev {
			t.Fatalf("Unorm8FromUint16Div64K(%d) = %d, decreased from %d", v, got, prev)
		}
		prev = got
	}
}

func TestHalfToFloat32RoundTripsThroughFloat32ToHalf(t *testing.T) {
	cases := []uint16{0x0000, 0x3C00, 0x4000, 0x7BFF, 0x8000, 0xBC00}
	for _, h := range cases {
		f := astc.HalfToFloat32(h)
		back := astc.Float32ToHalf(f)
		if back != h {
			t.Fatalf("HalfToFloat32(%#04x)=%v, Float32ToHalf=%#04x, want %#04x", h, f, back, h)
		}
	}
}
