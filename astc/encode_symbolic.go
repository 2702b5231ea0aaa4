package astc

import "github.com/pkg/errors"

// weightQuantizeNearest returns the raw ISE digit in [0, levels) whose
// unscrambled, unquantised weight from weightUnscrambleAndUnquantMap is
// closest to w (itself in [0, 64]) — the inverse of the map decodeBlockToFP16
// reads, and colorQuantizeNearest's counterpart for the weight grid.
func weightQuantizeNearest(q quantMethod, w uint8) uint8 {
	if int(q) < 0 || int(q) >= len(weightUnscrambleAndUnquantMap) {
		return 0
	}
	levels := quantLevel(q)
	table := weightUnscrambleAndUnquantMap[q]

	best := 0
	bestDiff := 256
	for i := 0; i < levels; i++ {
		d := int(table[i]) - int(w)
		if d < 0 {
			d = -d
		}
		if d < bestDiff {
			bestDiff = d
			best = i
			if d == 0 {
				break
			}
		}
	}
	return uint8(best)
}

// pickEncodeBlockMode finds a single-plane, undecimated block mode (weight
// grid exactly matching the texel grid) for ctx's footprint, preferring the
// one with the most weight quantisation levels. This is the only shape the
// symbolic encoder below emits: spec.md's Non-goals exclude encoding with
// quality objectives, so there is no search across decimated grids, dual
// planes or multiple partitions — just the simplest structurally legal
// block mode available for the requested dimensions.
func pickEncodeBlockMode(ctx *decodeContext) (int, blockModeInfo, error) {
	bestMode := -1
	var best blockModeInfo
	bestLevels := -1

	for bm := 0; bm < len(ctx.blockModes); bm++ {
		bmi := ctx.blockModes[bm]
		if !bmi.ok || !bmi.noDecimation || bmi.isDualPlane {
			continue
		}
		// Skip modes whose weights leave too few bits for 8 colour endpoints
		// (the fmtRGBA CEM encodeBlockSymbolic emits) at quant6 or better.
		if quantLevelForISE(8, (115-4)-int(bmi.weightBits)) < int(quant6) {
			continue
		}
		levels := quantLevel(bmi.weightQuant)
		if levels > bestLevels {
			bestLevels = levels
			bestMode = bm
			best = bmi
		}
	}

	if bestMode < 0 {
		return 0, blockModeInfo{}, errors.New("astc: no undecimated single-plane block mode for this block footprint")
	}
	return bestMode, best, nil
}

// encodeBlockSymbolic builds a single-partition, single-plane ASTC block
// for texels (RGBA8, texelCount*4 bytes, row-major matching ctx's footprint):
// the literal inverse of physicalToBlock's parse, not a rate-distortion
// search. Endpoints are the per-channel min and max; each texel's weight is
// the nearest quantised fit to its projection onto the min-max line, so
// round-trip error is bounded by the chosen quant precision rather than by
// any search budget.
func encodeBlockSymbolic(ctx *decodeContext, texels []byte) ([BlockBytes]byte, error) {
	texelCount := ctx.texelCount
	if len(texels) < texelCount*4 {
		return [BlockBytes]byte{}, errors.New("astc: encodeBlockSymbolic: texel buffer too small")
	}

	blockModeField, bmi, err := pickEncodeBlockMode(ctx)
	if err != nil {
		return [BlockBytes]byte{}, err
	}

	var lo, hi [4]uint8
	lo = [4]uint8{255, 255, 255, 255}
	for t := 0; t < texelCount; t++ {
		for c := 0; c < 4; c++ {
			v := texels[t*4+c]
			if v < lo[c] {
				lo[c] = v
			}
			if v > hi[c] {
				hi[c] = v
			}
		}
	}

	const cem = fmtRGBA // endpoint class 3: 8 colour integers, RGBA in both endpoints
	colorBits := (115 - 4) - int(bmi.weightBits)
	if colorBits < 0 {
		colorBits = 0
	}
	ceRangeInt := quantLevelForISE(8, colorBits)
	if ceRangeInt < int(quant6) {
		return [BlockBytes]byte{}, errors.New("astc: block footprint leaves no room for colour endpoints")
	}
	ceRange := quantMethod(ceRangeInt)

	var colorQuant [8]uint8
	for c := 0; c < 4; c++ {
		colorQuant[2*c] = colorQuantizeNearest(ceRange, lo[c])
		colorQuant[2*c+1] = colorQuantizeNearest(ceRange, hi[c])
	}

	unpackTable := colorScrambledPquantToUquantTables[int(ceRange)-int(quant6)]
	var loQ, hiQ [4]int
	for c := 0; c < 4; c++ {
		loQ[c] = int(unpackTable[colorQuant[2*c]])
		hiQ[c] = int(unpackTable[colorQuant[2*c+1]])
	}

	realWeightCount := int(bmi.realWeightCnt)
	var weightDigits [blockMaxWeights]uint8
	for t := 0; t < texelCount; t++ {
		num, den := 0, 0
		for c := 0; c < 4; c++ {
			d := hiQ[c] - loQ[c]
			num += d * (int(texels[t*4+c]) - loQ[c])
			den += d * d
		}
		frac := 32
		if den != 0 {
			frac = clampInt((num*64+den/2)/den, 0, 64)
		}
		weightDigits[t] = weightQuantizeNearest(bmi.weightQuant, uint8(frac))
	}

	var wbuf [BlockBytes]byte
	encodeISE(bmi.weightQuant, realWeightCount, weightDigits[:realWeightCount], wbuf[:], 0)
	revWeights := NewBitVector(wbuf[:]).Reversed().Bytes()

	var block [BlockBytes]byte
	for i := range block {
		block[i] |= revWeights[i]
	}

	writeBits(11, 0, block[:], uint32(blockModeField))
	writeBits(2, 11, block[:], 0) // partition count field: 0 means 1 partition
	writeBits(4, 13, block[:], uint32(cem))
	encodeISE(ceRange, 8, colorQuant[:], block[:], 17)

	return block, nil
}
