package astc

// BlockKind classifies what physicalToBlock produced from a 128-bit
// payload: a full weight/endpoint grid, one of the two constant-colour fast
// paths (a degenerate 1x1x1 void-extent block collapses to this case too),
// or a parse failure.
type BlockKind uint8

const (
	BlockWeighted     BlockKind = iota // ordinary weight-grid + colour-endpoint block
	BlockConstUNorm16                  // constant-colour block storing UNORM16 RGBA
	BlockConstFP16                     // constant-colour block storing FP16 RGBA (HDR profiles only)
	BlockErrorKind                     // structurally invalid; every texel decodes to the error colour
)

// Block is the decoded, symbolic form of one physical 128-bit ASTC block —
// the data model every downstream stage (weight decoder, colour endpoint
// decoder, texel synthesiser) reads instead of re-parsing the 16 raw bytes.
//
// A Block never panics and is always fully populated, even on a structural
// failure: IsError (and the two more specific Bogus* flags) tell the caller
// which of its fields to distrust rather than leaving them undefined.
type Block struct {
	Kind BlockKind

	modeField int // raw 11-bit block-mode field, kept for decode.go's bmi re-lookup

	// Weight grid shape and quantisation, valid when Kind == BlockWeighted.
	WtW, WtH, WtD int
	WtRange       quantMethod // combined weight quant level; folds the format's separate high_prec bit into the enum index
	DualPlane     bool

	// ColourComponentSelector names which RGBA channel plane 2's weight
	// grid drives, valid only when DualPlane is set.
	ColourComponentSelector int

	NumParts       int
	PartitionIndex int

	// Colour endpoint mode state. IsMultiCEM means each partition may carry
	// a distinct mode; CEMBaseClass and CEMs mirror the encoded-type header
	// exactly as the format lays it out. CEMs[i] is unused for i>=NumParts.
	IsMultiCEM    bool
	CEMBaseClass  int
	CEMs          [blockMaxPartitions]int
	NumCEMValues  int

	// Void-extent fast path, valid when Kind is BlockConstUNorm16 or
	// BlockConstFP16.
	IsVoidExtent bool
	VXColour     [4]uint16

	// Derived sizing, computed alongside the parse rather than recomputed
	// by every consumer.
	WeightBits        int
	RemainingBits     int
	ColourEndpointBits int
	CERange           quantMethod
	WtMax             int
	CEMax             int

	// Quantised grids. WeightsQuant holds the raw ISE digits in [0, WtMax];
	// Weights holds them unscrambled and unquantised to [0, 64], with plane
	// 2 stored at +weightsPlane2Offset. ColourEndpointsQuant/ColourEndpoints
	// are analogous for the endpoint pairs, flattened partition-major.
	WeightsQuant        [blockMaxWeights]uint8
	Weights             [blockMaxWeights * 2]uint8
	ColourEndpointsQuant [blockMaxColorIntsBuf]uint8
	ColourEndpoints      [blockMaxColorInts]uint8

	// IsError means the block is unusable and decodes to the reserved
	// error colour. BogusWeights/BogusColourEndpoints mean the block parsed
	// far enough to populate safe defaults (e.g. for diagnostic dumps) but
	// one of the two grids violated a bit-budget or range constraint.
	IsError                bool
	BogusWeights            bool
	BogusColourEndpoints    bool
}

// physicalToBlock parses a 128-bit physical block into its symbolic form
// for a blockX x blockY x blockZ footprint, using ctx's precomputed
// block-mode and partition tables.
func physicalToBlock(block []byte, ctx *decodeContext) (b Block) {
	if len(block) < BlockBytes {
		b.Kind = BlockErrorKind
		b.IsError = true
		return b
	}

	bv := NewBitVector(block)
	blockModeField := int(bv.GetBits(0, 11))

	if (blockModeField & 0x1FF) == 0x1FC {
		return parseVoidExtentOrConstBlock(bv, blockModeField, ctx.blockZ)
	}

	bmi := ctx.blockModes[blockModeField]
	if !bmi.ok {
		b.Kind = BlockErrorKind
		b.IsError = true
		return b
	}

	b.Kind = BlockWeighted
	b.modeField = blockModeField
	b.WtW, b.WtH, b.WtD = int(bmi.xWeights), int(bmi.yWeights), int(bmi.zWeights)
	b.WtRange = bmi.weightQuant
	b.DualPlane = bmi.isDualPlane
	b.WeightBits = int(bmi.weightBits)
	weightCount := int(bmi.weightCount)
	realWeightCount := int(bmi.realWeightCnt)

	numParts := int(bv.GetBits(11, 2)) + 1
	if numParts <= 0 || numParts > blockMaxPartitions {
		b.Kind = BlockErrorKind
		b.IsError = true
		return b
	}
	b.NumParts = numParts

	// The weight grid is packed starting from the high end of the block,
	// one ISE digit at a time walking toward bit 0 — the opposite direction
	// from every other field. Reversing the whole block once turns that
	// into an ordinary forward decodeISE call.
	belowWeightsPos := 128 - b.WeightBits
	rev := bv.Reversed()
	var indices [blockMaxWeights]uint8
	decodeISE(b.WtRange, realWeightCount, rev, 0, indices[:])

	uqMap := weightUnscrambleAndUnquantMap[b.WtRange]
	if b.DualPlane {
		for i := 0; i < weightCount; i++ {
			b.Weights[i] = uqMap[indices[2*i]]
			b.Weights[i+weightsPlane2Offset] = uqMap[indices[2*i+1]]
		}
	} else {
		for i := 0; i < weightCount; i++ {
			b.Weights[i] = uqMap[indices[i]]
		}
	}
	copy(b.WeightsQuant[:], indices[:])
	b.WtMax = 64

	if b.DualPlane && numParts == blockMaxPartitions {
		b.Kind = BlockErrorKind
		b.IsError = true
		return b
	}

	cems := [blockMaxPartitions]int{}
	encodedTypeHighPartSize := 0
	if numParts == 1 {
		cems[0] = int(bv.GetBits(13, 4))
		b.PartitionIndex = 0
	} else {
		encodedTypeHighPartSize = (3 * numParts) - 4
		belowWeightsPos -= encodedTypeHighPartSize
		encodedType := int(bv.GetBits(13+partitionIndexBits, 6)) |
			(int(bv.GetBits(belowWeightsPos, encodedTypeHighPartSize)) << 6)
		baseclass := encodedType & 0x3
		if baseclass == 0 {
			for i := 0; i < numParts; i++ {
				cems[i] = (encodedType >> 2) & 0xF
			}
			belowWeightsPos += encodedTypeHighPartSize
			b.IsMultiCEM = false
			encodedTypeHighPartSize = 0
		} else {
			bitpos := 2
			b.IsMultiCEM = true
			b.CEMBaseClass = baseclass - 1
			for i := 0; i < numParts; i++ {
				cems[i] = (((encodedType >> bitpos) & 1) + b.CEMBaseClass) << 2
				bitpos++
			}
			for i := 0; i < numParts; i++ {
				cems[i] |= (encodedType >> bitpos) & 3
				bitpos += 2
			}
		}

		b.PartitionIndex = int(bv.GetBits(13, partitionIndexBits))
	}
	for i := 0; i < numParts; i++ {
		b.CEMs[i] = cems[i]
	}
	for i := numParts; i < blockMaxPartitions; i++ {
		b.CEMs[i] = -1
	}

	numCEMValues := 0
	for i := 0; i < numParts; i++ {
		endpointClass := cems[i] >> 2
		numCEMValues += (endpointClass + 1) * 2
	}
	b.NumCEMValues = numCEMValues
	if numCEMValues > blockMaxColorInts {
		b.Kind = BlockErrorKind
		b.IsError = true
		b.BogusColourEndpoints = true
		return b
	}

	colorBitsArr := [...]int{-1, 115 - 4, 113 - 4 - partitionIndexBits, 113 - 4 - partitionIndexBits, 113 - 4 - partitionIndexBits}
	colorBits := colorBitsArr[numParts] - b.WeightBits - encodedTypeHighPartSize
	if b.DualPlane {
		colorBits -= 2
	}
	if colorBits < 0 {
		colorBits = 0
	}
	b.RemainingBits = colorBits
	b.ColourEndpointBits = colorBits

	ceRange := quantLevelForISE(numCEMValues, colorBits)
	if ceRange < int(quant6) {
		b.Kind = BlockErrorKind
		b.IsError = true
		b.BogusColourEndpoints = true
		return b
	}
	b.CERange = quantMethod(ceRange)
	b.CEMax = 255

	var valuesToDecode [blockMaxColorIntsBuf]uint8
	startBit := 17
	if numParts != 1 {
		startBit = 19 + partitionIndexBits
	}
	decodeISE(b.CERange, numCEMValues, bv, startBit, valuesToDecode[:])
	copy(b.ColourEndpointsQuant[:], valuesToDecode[:])

	unpackTable := colorScrambledPquantToUquantTables[int(b.CERange)-int(quant6)]
	valueOff := 0
	for i := 0; i < numParts; i++ {
		vals := 2*(cems[i]>>2) + 2
		for j := 0; j < vals; j++ {
			b.ColourEndpoints[valueOff+j] = unpackTable[valuesToDecode[valueOff+j]]
		}
		valueOff += vals
	}

	b.ColourComponentSelector = -1
	if b.DualPlane {
		b.ColourComponentSelector = int(bv.GetBits(belowWeightsPos-2, 2))
	}

	return b
}

// parseVoidExtentOrConstBlock handles the discriminator 0x1FC on the
// low 9 bits of the block-mode field: bit 9 selects UNORM16 vs FP16
// constant storage, and for 2D/3D footprints the remaining header bits
// must describe a legal (possibly degenerate "all-ones") interpolation
// bound or the block is rejected outright.
func parseVoidExtentOrConstBlock(bv BitVector, blockModeField int, blockZ int) (b Block) {
	b.Kind = BlockConstUNorm16
	if (blockModeField & 0x200) != 0 {
		b.Kind = BlockConstFP16
	}
	b.IsVoidExtent = true

	for i := 0; i < 4; i++ {
		b.VXColour[i] = uint16(bv.GetBits(64+16*i, 16))
	}

	if blockZ == 1 {
		rsv := int(bv.GetBits(10, 2))
		if rsv != 3 {
			b.Kind = BlockErrorKind
			b.IsError = true
			return b
		}

		vxLowS := int(bv.GetBits(12, 8)) | (int(bv.GetBits(20, 5)) << 8)
		vxHighS := int(bv.GetBits(25, 13))
		vxLowT := int(bv.GetBits(38, 8)) | (int(bv.GetBits(46, 5)) << 8)
		vxHighT := int(bv.GetBits(51, 13))

		allOnes := vxLowS == 0x1FFF && vxHighS == 0x1FFF && vxLowT == 0x1FFF && vxHighT == 0x1FFF
		if (vxLowS >= vxHighS || vxLowT >= vxHighT) && !allOnes {
			b.Kind = BlockErrorKind
			b.IsError = true
		}
		return b
	}

	vxLowS := int(bv.GetBits(10, 9))
	vxHighS := int(bv.GetBits(19, 9))
	vxLowT := int(bv.GetBits(28, 9))
	vxHighT := int(bv.GetBits(37, 9))
	vxLowR := int(bv.GetBits(46, 9))
	vxHighR := int(bv.GetBits(55, 9))

	allOnes := vxLowS == 0x1FF && vxHighS == 0x1FF &&
		vxLowT == 0x1FF && vxHighT == 0x1FF &&
		vxLowR == 0x1FF && vxHighR == 0x1FF

	if (vxLowS >= vxHighS || vxLowT >= vxHighT || vxLowR >= vxHighR) && !allOnes {
		b.Kind = BlockErrorKind
		b.IsError = true
	}
	return b
}
