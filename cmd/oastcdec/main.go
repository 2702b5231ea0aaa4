// Command oastcdec decodes a .astc file block-by-block and writes an
// uncompressed .tga image, the same way original_source/oastc_dec.cpp did
// for the reference implementation this package was ported from.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ptaylor-oastc/oastc/astc"
)

func main() {
	var (
		inPath  string
		outPath string
		logPath string
	)
	flag.StringVar(&inPath, "input", "", "input .astc file")
	flag.StringVar(&outPath, "output", "", "output .tga file")
	flag.StringVar(&logPath, "log", "", "optional rotating log file for decode diagnostics")
	flag.Parse()

	if inPath == "" || outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: oastcdec -input <in.astc> -output <out.tga> [-log <path>]")
		os.Exit(2)
	}

	var logOut *lumberjack.Logger
	if logPath != "" {
		logOut = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		defer logOut.Close()
	}

	if err := run(inPath, outPath, logOut); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, logOut *lumberjack.Logger) error {
	inData, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrap(err, "oastcdec: reading input")
	}

	hdr, blocks, err := astc.ParseFile(inData)
	if err != nil {
		return errors.Wrap(err, "oastcdec: parsing astc file")
	}

	fmt.Fprintf(os.Stderr, "Decoding %q (image size %dx%dx%d, block size %dx%dx%d)\n",
		inPath, hdr.SizeX, hdr.SizeY, hdr.SizeZ, hdr.BlockX, hdr.BlockY, hdr.BlockZ)

	blockW, blockH, blockD := int(hdr.BlockX), int(hdr.BlockY), int(hdr.BlockZ)
	imageW, imageH, imageD := int(hdr.SizeX), int(hdr.SizeY), int(hdr.SizeZ)

	blocksX, blocksY, blocksZ, _, err := hdr.BlockCount()
	if err != nil {
		return errors.Wrap(err, "oastcdec: computing block count")
	}

	imageOut := make([]byte, imageW*imageH*imageD*4)

	blockIdx := 0
	for z := 0; z < blocksZ; z++ {
		for y := 0; y < blocksY; y++ {
			for x := 0; x < blocksX; x++ {
				off := blockIdx * astc.BlockBytes
				blockIdx++
				if off+astc.BlockBytes > len(blocks) {
					return errors.New("oastcdec: truncated block stream")
				}

				decoded, derr := astc.DecodeBlockRGBA8(blocks[off:off+astc.BlockBytes], blockW, blockH, blockD)
				if derr != astc.DecodeOK {
					if logOut != nil {
						fmt.Fprintf(logOut, "block (%d,%d,%d): %v\n", x, y, z, derr)
					} else {
						fmt.Fprintf(os.Stderr, "block (%d,%d,%d): %v\n", x, y, z, derr)
					}
				}

				copyBlockIntoImage(imageOut, imageW, imageH, imageD, decoded, blockW, blockH, blockD, x, y, z)
			}
		}
	}

	if err := writeTGA(outPath, imageOut, imageW, imageH); err != nil {
		return errors.Wrap(err, "oastcdec: writing output")
	}
	fmt.Fprintf(os.Stderr, "Wrote %q\n", outPath)
	return nil
}

func copyBlockIntoImage(imageOut []byte, imageW, imageH, imageD int, blockOut []byte, blockW, blockH, blockD, bx, by, bz int) {
	zCount := blockD
	if rem := imageD - bz*blockD; rem < zCount {
		zCount = rem
	}
	yCount := blockH
	if rem := imageH - by*blockH; rem < yCount {
		yCount = rem
	}
	xCount := blockW
	if rem := imageW - bx*blockW; rem < xCount {
		xCount = rem
	}

	for z := 0; z < zCount; z++ {
		for y := 0; y < yCount; y++ {
			imageIdx := (bx*blockW + (by*blockH+y)*imageW + (bz*blockD+z)*imageW*imageH) * 4
			blockIdx := (y*blockW + z*blockW*blockH) * 4
			copy(imageOut[imageIdx:imageIdx+xCount*4], blockOut[blockIdx:blockIdx+xCount*4])
		}
	}
}

func writeTGA(path string, imageOut []byte, w, h int) error {
	hasAlpha := false
	for i := 3; i < len(imageOut); i += 4 {
		if imageOut[i] != 255 {
			hasAlpha = true
			break
		}
	}

	bpp := byte(24)
	if hasAlpha {
		bpp = 32
	}
	header := [18]byte{
		0, 0, 2,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
		byte(w), byte(w >> 8),
		byte(h), byte(h >> 8),
		bpp, 0,
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(header[:]); err != nil {
		return err
	}

	pxCount := len(imageOut) / 4
	row := make([]byte, 0, 4096*4)
	for i := 0; i < pxCount; i++ {
		off := i * 4
		row = append(row, imageOut[off+2], imageOut[off+1], imageOut[off+0])
		if hasAlpha {
			row = append(row, imageOut[off+3])
		}
		if len(row) >= 4096*4 {
			if _, err := out.Write(row); err != nil {
				return err
			}
			row = row[:0]
		}
	}
	if len(row) > 0 {
		if _, err := out.Write(row); err != nil {
			return err
		}
	}
	return nil
}
