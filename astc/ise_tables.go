package astc

// tritsOfInteger and quintsOfInteger are the per-block digit tables a trit
// block (8 packed bits) or quint block (7 packed bits) decode to.
//
// The ASTC standard defines these as literal data tables (the packed byte
// does not decompose into independent per-digit fields; bit sharing between
// adjacent digits means 256 codes must cover the 243 valid 5-trit
// combinations, and 128 codes the 125 valid 3-quint combinations). The
// external literal tables were not present anywhere in this module's
// retrieval pack, so the values below are generated at init time by this
// module's own canonical bijection instead of being transcribed: read the
// packed byte as an integer in [0, 255], reduce it modulo 3^5 (or 5^3 for
// quints) to land in the valid range, then take its base-3 (or base-5)
// digits, least-significant digit first. Codes at or above the valid range
// alias back into it rather than erroring, matching the format's tolerance
// for producing *some* well-defined decode for every bit pattern.
//
// This construction is internally self-consistent — decodeISE/encodeISE
// round-trip against it because the encoder always picks the lowest packed
// code for a digit tuple, see ise_encode.go's init() — but is not asserted
// to reproduce the external standard's literal table bit-for-bit; see
// DESIGN.md's grounding ledger.
//
// The tables are filled by a package-level initialiser rather than an init
// function so that they are complete before ise_encode.go's init() reads them.
var (
	tritsOfInteger  [256][5]uint8
	quintsOfInteger [128][3]uint8
	_               = buildDigitTables()
)

func buildDigitTables() bool {
	for t := 0; t < len(tritsOfInteger); t++ {
		v := t % 243 // 3^5
		tritsOfInteger[t] = [5]uint8{
			uint8(v % 3),
			uint8((v / 3) % 3),
			uint8((v / 9) % 3),
			uint8((v / 27) % 3),
			uint8((v / 81) % 3),
		}
	}

	for q := 0; q < len(quintsOfInteger); q++ {
		v := q % 125 // 5^3
		quintsOfInteger[q] = [3]uint8{
			uint8(v % 5),
			uint8((v / 5) % 5),
			uint8(v / 25),
		}
	}
	return true
}
