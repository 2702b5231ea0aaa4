package astc

// decodeBlockToFP16 fills out (blockX*blockY*blockZ*4 half-precision
// channels, RGBA interleaved) from b, the already-parsed symbolic form of
// one physical block.
func decodeBlockToFP16(profile Profile, ctx *decodeContext, b *Block, out []FP16) {
	switch b.Kind {
	case BlockErrorKind:
		fillErrorTexels(out)
	case BlockConstUNorm16, BlockConstFP16:
		if b.Kind == BlockConstFP16 && (profile == ProfileLDR || profile == ProfileLDRSRGB) {
			fillErrorTexels(out)
			return
		}
		fillConstBlockTexels(b, out)
	default:
		decodeWeightedBlockTexels(profile, ctx, b, out)
	}
}

// decodeWeightedBlockTexels synthesises every texel of an ordinary
// weight-grid block. Each channel's interpolated 16-bit value is computed
// the same way regardless of profile — weight interpolation is pure integer
// arithmetic on whatever unpackColorEndpoints produced; only the final
// widen-to-fp16 step differs between an LDR fraction and an HDR mantissa
// pattern.
func decodeWeightedBlockTexels(profile Profile, ctx *decodeContext, b *Block, out []FP16) {
	texelCount := ctx.texelCount
	bmi := ctx.blockModes[b.modeField]

	var rgbHDR, alphaHDR [blockMaxPartitions]bool
	var e0, e1 [blockMaxPartitions]int4

	valueOff := 0
	for p := 0; p < b.NumParts; p++ {
		vals := 2*(b.CEMs[p]>>2) + 2
		rgbHDR[p], alphaHDR[p], e0[p], e1[p] = unpackColorEndpoints(profile, uint8(b.CEMs[p]), b.ColourEndpoints[valueOff:valueOff+vals])
		valueOff += vals
	}

	var partByTexel []uint8
	if b.NumParts > 1 {
		pt := ctx.partitionTables[b.NumParts]
		if pt == nil {
			fillErrorTexels(out)
			return
		}
		pidx := b.PartitionIndex & ((1 << partitionIndexBits) - 1)
		partByTexel = pt.data[pidx*texelCount : pidx*texelCount+texelCount]
	}

	weightAt := func(plane, tix int) int {
		base := 0
		if plane == 1 {
			base = weightsPlane2Offset
		}
		if bmi.noDecimation {
			return int(b.Weights[base+tix])
		}
		e := bmi.decimation[tix]
		sum := uint32(8)
		sum += uint32(b.Weights[base+int(e.idx[0])]) * uint32(e.w[0])
		sum += uint32(b.Weights[base+int(e.idx[1])]) * uint32(e.w[1])
		sum += uint32(b.Weights[base+int(e.idx[2])]) * uint32(e.w[2])
		sum += uint32(b.Weights[base+int(e.idx[3])]) * uint32(e.w[3])
		return int(sum >> 4)
	}

	ccs := b.ColourComponentSelector

	off := 0
	for tix := 0; tix < texelCount; tix++ {
		part := 0
		if partByTexel != nil {
			part = int(partByTexel[tix])
		}

		w1 := weightAt(0, tix)
		w2 := w1
		if b.DualPlane {
			w2 = weightAt(1, tix)
		}

		for c := 0; c < 4; c++ {
			w := w1
			if b.DualPlane && c == ccs {
				w = w2
			}
			v := e0[part][c] + (((e1[part][c]-e0[part][c])*w + 32) >> 6)

			hdr := rgbHDR[part]
			if c == 3 {
				hdr = alphaHDR[part]
			}
			if hdr {
				out[off+c] = FP16(uint16(v))
			} else {
				out[off+c] = FP16FromUint16Div64K(uint16(v))
			}
		}
		off += 4
	}
}

func fillConstTexels(out []FP16, r, g, b, a FP16) {
	for i := 0; i+3 < len(out); i += 4 {
		out[i+0] = r
		out[i+1] = g
		out[i+2] = b
		out[i+3] = a
	}
}

// fillConstBlockTexels fills out from a void-extent block's stored colour.
// BlockConstFP16 stores raw half-float bit patterns already, per the HDR
// void-extent encoding; BlockConstUNorm16 stores a UNORM16 fraction that
// still needs the unorm-to-half conversion every other LDR channel goes
// through.
func fillConstBlockTexels(b *Block, out []FP16) {
	var r, g, bch, a FP16
	if b.Kind == BlockConstFP16 {
		r = FP16(b.VXColour[0])
		g = FP16(b.VXColour[1])
		bch = FP16(b.VXColour[2])
		a = FP16(b.VXColour[3])
	} else {
		r = FP16FromUint16Div64K(b.VXColour[0])
		g = FP16FromUint16Div64K(b.VXColour[1])
		bch = FP16FromUint16Div64K(b.VXColour[2])
		a = FP16FromUint16Div64K(b.VXColour[3])
	}
	fillConstTexels(out, r, g, bch, a)
}

// fillErrorTexels fills out with the format's reserved error colour, opaque
// magenta, the same way a malformed RGBA8 block fills 0xFF,0x00,0xFF,0xFF.
func fillErrorTexels(out []FP16) {
	fillConstTexels(out, FP16One, FP16Zero, FP16One, FP16One)
}
