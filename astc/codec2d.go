package astc

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// DecodeRGBA8 decodes a .astc file into an RGBA8 pixel buffer.
func DecodeRGBA8(astcData []byte) (pix []byte, width, height int, err error) {
	return DecodeRGBA8WithProfile(astcData, ProfileLDR)
}

// DecodeRGBA8WithProfile decodes a .astc file into an RGBA8 pixel buffer.
//
// Limitations:
//   - Only 2D images (SizeZ==1, BlockZ==1).
func DecodeRGBA8WithProfile(astcData []byte, profile Profile) (pix []byte, width, height int, err error) {
	h, blocks, err := ParseFile(astcData)
	if err != nil {
		return nil, 0, 0, err
	}
	if h.BlockZ != 1 || h.SizeZ != 1 {
		return nil, 0, 0, errors.New("astc: DecodeRGBA8WithProfile only supports 2D images (z==1)")
	}

	blocksX, blocksY, _, _, err := h.BlockCount()
	if err != nil {
		return nil, 0, 0, err
	}

	width = int(h.SizeX)
	height = int(h.SizeY)
	blockX, blockY := int(h.BlockX), int(h.BlockY)
	pix = make([]byte, width*height*4)

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockIdx := by*blocksX + bx
			block := blocks[blockIdx*BlockBytes : (blockIdx+1)*BlockBytes]
			texels16, _ := Decode(profile, block, blockX, blockY, 1)
			texels := make([]byte, len(texels16))
			for i, t := range texels16 {
				texels[i] = t.ToUnorm8()
			}

			for ty := 0; ty < blockY; ty++ {
				y := by*blockY + ty
				if y >= height {
					continue
				}
				for tx := 0; tx < blockX; tx++ {
					x := bx*blockX + tx
					if x >= width {
						continue
					}
					src := (ty*blockX + tx) * 4
					dst := (y*width + x) * 4
					copy(pix[dst:dst+4], texels[src:src+4])
				}
			}
		}
	}

	return pix, width, height, nil
}

// EncodeRGBA8 encodes an RGBA8 pixel buffer into a .astc file.
func EncodeRGBA8(pix []byte, width, height int, blockX, blockY int) ([]byte, error) {
	return EncodeRGBA8WithProfileAndQuality(pix, width, height, blockX, blockY, ProfileLDR)
}

// EncodeRGBA8WithProfileAndQuality encodes an RGBA8 pixel buffer into a .astc
// file using the symbolic single-partition encoder: the inverse of the
// parser, not a rate-distortion search. profile is accepted for API
// symmetry with the decode side but does not change the bits produced —
// ASTC files do not store a profile, and the symbolic encoder only targets
// the LDR endpoint formats.
func EncodeRGBA8WithProfileAndQuality(pix []byte, width, height int, blockX, blockY int, profile Profile) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("astc: invalid image dimensions")
	}
	if blockX <= 0 || blockY <= 0 || blockX > 255 || blockY > 255 {
		return nil, errors.New("astc: invalid block dimensions")
	}
	if blockX*blockY > blockMaxTexels {
		return nil, errors.New("astc: invalid block dimensions")
	}
	if len(pix) != width*height*4 {
		return nil, errors.New("astc: invalid RGBA8 buffer length")
	}
	if profile != ProfileLDR && profile != ProfileLDRSRGB && profile != ProfileHDRRGBLDRAlpha && profile != ProfileHDR {
		return nil, errors.New("astc: invalid profile")
	}

	h := Header{
		BlockX: uint8(blockX),
		BlockY: uint8(blockY),
		BlockZ: 1,
		SizeX:  uint32(width),
		SizeY:  uint32(height),
		SizeZ:  1,
	}
	headerBytes, err := MarshalHeader(h)
	if err != nil {
		return nil, err
	}

	blocksX, blocksY, _, total, err := h.BlockCount()
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+total*BlockBytes)
	copy(out[:HeaderSize], headerBytes[:])
	blocksOut := out[HeaderSize:]

	ctx := getDecodeContext(blockX, blockY, 1)

	totalBlocks := blocksX * blocksY
	procs := runtime.GOMAXPROCS(0)
	if procs < 1 {
		procs = 1
	}
	if procs > totalBlocks {
		procs = totalBlocks
	}

	_ = profile // accepted for API symmetry with decode; the symbolic encoder targets LDR formats only

	// Small images are faster to encode sequentially.
	if procs == 1 || totalBlocks < 32 {
		blockTexels := make([]byte, blockX*blockY*4)
		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				extractBlockRGBA8(pix, width, height, bx*blockX, by*blockY, blockX, blockY, blockTexels)
				block, err := encodeBlockSymbolic(ctx, blockTexels)
				if err != nil {
					return nil, err
				}
				blockIdx := by*blocksX + bx
				copy(blocksOut[blockIdx*BlockBytes:(blockIdx+1)*BlockBytes], block[:])
			}
		}
		return out, nil
	}

	var next uint32
	var stop uint32
	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			blockTexels := make([]byte, blockX*blockY*4)
			for {
				if atomic.LoadUint32(&stop) != 0 {
					return
				}
				idx := int(atomic.AddUint32(&next, 1) - 1)
				if idx >= totalBlocks {
					return
				}

				bx := idx % blocksX
				by := idx / blocksX
				extractBlockRGBA8(pix, width, height, bx*blockX, by*blockY, blockX, blockY, blockTexels)
				block, err := encodeBlockSymbolic(ctx, blockTexels)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						atomic.StoreUint32(&stop, 1)
					})
					return
				}
				copy(blocksOut[idx*BlockBytes:(idx+1)*BlockBytes], block[:])
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// extractBlockRGBA8 gathers one block's worth of RGBA8 texels from pix,
// clamping to the image edge for partial blocks at the right/bottom border.
func extractBlockRGBA8(pix []byte, width, height, x0, y0, blockX, blockY int, dst []byte) {
	for by := 0; by < blockY; by++ {
		y := y0 + by
		if y >= height {
			y = height - 1
		}
		row := y * width * 4
		for bx := 0; bx < blockX; bx++ {
			x := x0 + bx
			if x >= width {
				x = width - 1
			}
			src := row + x*4
			dstOff := (by*blockX + bx) * 4
			dst[dstOff+0] = pix[src+0]
			dst[dstOff+1] = pix[src+1]
			dst[dstOff+2] = pix[src+2]
			dst[dstOff+3] = pix[src+3]
		}
	}
}
