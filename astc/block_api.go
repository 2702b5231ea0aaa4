package astc

// Decode parses a single physical 128-bit ASTC block and synthesises
// blockX*blockY*blockZ texels of half-precision RGBA, the format's native
// output representation. Besides the returned slice it allocates only the
// first time a footprint is seen, when that footprint's decode tables are
// built and cached. It never panics on malformed input: a structurally invalid block decodes to
// the reserved error colour and a non-DecodeOK DecodeError classifying why.
func Decode(profile Profile, block []byte, blockX, blockY, blockZ int) ([]FP16, DecodeError) {
	ctx := getDecodeContext(blockX, blockY, blockZ)
	out := make([]FP16, ctx.texelCount*4)

	b := physicalToBlock(block, ctx)
	decodeBlockToFP16(profile, ctx, &b, out)

	return out, classifyBlockDecodeError(&b, block)
}

// DecodeBlockRGBA8 decodes a single physical 128-bit block into an LDR
// RGBA8 texel buffer, a convenience conversion of Decode's fp16 texels for
// callers that only need 8-bit-per-channel output.
func DecodeBlockRGBA8(block []byte, blockX, blockY, blockZ int) ([]byte, DecodeError) {
	texels, derr := Decode(ProfileLDR, block, blockX, blockY, blockZ)
	out := make([]byte, len(texels))
	for i, t := range texels {
		out[i] = t.ToUnorm8()
	}
	return out, derr
}

// classifyBlockDecodeError names why a parsed Block failed, re-examining the
// raw header fields because physicalToBlock itself only records pass/fail.
// The checks mirror its validation order so the reported reason matches the
// first check that actually failed.
func classifyBlockDecodeError(b *Block, block []byte) DecodeError {
	if b.Kind != BlockErrorKind {
		return DecodeOK
	}
	if len(block) < BlockBytes {
		return DecodeIllegalEncoding
	}

	blockModeField := int(readBits(11, 0, block))
	if (blockModeField & 0x1FF) == 0x1FC {
		return DecodeIllegalEncoding
	}

	return decodeErrorFromBlock(b, blockModeField)
}
