package astc

// colorScrambledPquantToUquantTables maps a decoded colour-endpoint ISE
// digit (the "scrambled pquant" value decodeISE produces for quant levels
// quant6..quant256) to its unquantised 0..255 value.
//
// The ASTC standard's own table non-uniformly spaces these levels to
// minimise perceptual error, and defines them as a literal lookup table
// (Color Unquantization, similar in spirit to weight_quant_tables.go's
// weightQuantToUnquant). That literal table was not present anywhere in
// this module's retrieval pack, so — exactly as ise_tables.go does for the
// trit/quint digit tables — this builds a self-consistent substitute at
// init time instead of transcribing one: levels are spaced evenly across
// 0..255. physicalToBlock and encodeBlockSymbolic both index through this same
// table, so the round trip is exact regardless of spacing; see DESIGN.md.
var colorQuantLevelCounts = [...]int{
	6, 8, 10, 12, 16, 20, 24, 32, // quant6..quant32
	40, 48, 64, 80, 96, 128, 160, 192, 256, // quant40..quant256
}

var colorScrambledPquantToUquantTables [len(colorQuantLevelCounts)][256]uint8

func init() {
	for qi, levels := range colorQuantLevelCounts {
		for i := 0; i < levels; i++ {
			colorScrambledPquantToUquantTables[qi][i] = uint8((i*255 + (levels-1)/2) / (levels - 1))
		}
	}
}

// colorQuantizeNearest returns the ISE digit in [0, levels) whose
// unquantised value from colorScrambledPquantToUquantTables is closest to
// u, the inverse operation the symbolic encoder needs when packing an
// 8-bit endpoint channel at a chosen colour quant level.
func colorQuantizeNearest(q quantMethod, u uint8) uint8 {
	qi := int(q) - int(quant6)
	if qi < 0 || qi >= len(colorQuantLevelCounts) {
		return 0
	}
	levels := colorQuantLevelCounts[qi]
	table := colorScrambledPquantToUquantTables[qi]

	best := 0
	bestDiff := 256
	for i := 0; i < levels; i++ {
		d := int(table[i]) - int(u)
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
