package astc

// DecodeError classifies why a block failed to decode cleanly. It is a
// plain comparable value — callers branch on it directly rather than
// unwrapping an error chain, matching the pure, allocation-free core
// described for Decode. Ambient layers (container parsing, the CLI, the
// test generator) that need a causal chain wrap these with
// github.com/pkg/errors instead of extending this enum.
type DecodeError uint8

const (
	// DecodeOK means the block parsed and every texel is well-defined.
	DecodeOK DecodeError = iota

	// DecodeReservedBlockMode means the 11-bit block-mode field matched no
	// entry in the 2D or 3D block-mode table.
	DecodeReservedBlockMode

	// DecodeIllegalEncoding means the block mode was recognised but some
	// other structural field (void-extent bounds, partition count) violated
	// the format.
	DecodeIllegalEncoding

	// DecodeWeightBitsOutOfRange means the weight grid's ISE bit count fell
	// outside the legal [24, 96] window.
	DecodeWeightBitsOutOfRange

	// DecodeTooManyPartitionsForDualPlane means a 4-partition block also set
	// the dual-plane bit, which the format forbids.
	DecodeTooManyPartitionsForDualPlane

	// DecodeCEMOverflow means the sum of colour endpoint integers across
	// partitions exceeded the 18-value limit the block layout allows.
	DecodeCEMOverflow
)

// String names a DecodeError the way the format specification names it.
func (e DecodeError) String() string {
	switch e {
	case DecodeOK:
		return "ok"
	case DecodeReservedBlockMode:
		return "reserved_block_mode"
	case DecodeIllegalEncoding:
		return "illegal_encoding"
	case DecodeWeightBitsOutOfRange:
		return "weight_bits_out_of_range"
	case DecodeTooManyPartitionsForDualPlane:
		return "too_many_partitions_for_dual_plane"
	case DecodeCEMOverflow:
		return "cem_overflow"
	default:
		return "unknown_decode_error"
	}
}

// Error satisfies the error interface so a non-ok DecodeError can be
// returned and compared through the usual errors.Is/errors.As machinery
// when a caller does want a wrapped chain.
func (e DecodeError) Error() string {
	return "astc: " + e.String()
}

// decodeErrorFromBlock maps a BlockErrorKind outcome from physicalToBlock
// onto the externally visible taxonomy. The parser already collapses every
// structural failure into BlockErrorKind; this distinguishes the cases
// spec.md's error taxonomy names so a caller can tell a reserved block mode
// from an oversized weight area.
func decodeErrorFromBlock(b *Block, blockModeField int) DecodeError {
	switch {
	case b.WeightBits != 0 && (b.WeightBits < blockMinWeightBits || b.WeightBits > blockMaxWeightBits):
		return DecodeWeightBitsOutOfRange
	case b.DualPlane && b.NumParts == blockMaxPartitions:
		return DecodeTooManyPartitionsForDualPlane
	case b.NumCEMValues > blockMaxColorInts:
		return DecodeCEMOverflow
	case b.WeightBits == 0 && b.NumParts == 0:
		return DecodeReservedBlockMode
	default:
		return DecodeIllegalEncoding
	}
}
