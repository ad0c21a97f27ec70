package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Qubicle format errors.
var (
	ErrQBColorFormat = errors.New("unsupported Qubicle colour format")
	ErrQBTooLarge    = errors.New("Qubicle matrix too large")
	ErrQBTruncated   = errors.New("truncated Qubicle data")
)

// Qubicle binary constants.
const (
	qbVersion       = 0x00000101
	qbCodeFlag      = 2
	qbNextSliceFlag = 6
)

// QubicleCodec reads and writes Qubicle Constructor binary files (.qb).
// Every animation frame is written as one matrix; on load each matrix
// becomes a frame sized to the largest matrix. The original editor's
// overlay merge of multiple matrices into a single volume is deliberately
// not reproduced. Uncompressed data is written; both uncompressed and RLE
// data are read.
type QubicleCodec struct{}

// Name implements Codec.
func (QubicleCodec) Name() string { return "Qubicle Files" }

// Extension implements Codec.
func (QubicleCodec) Extension() string { return ".qb" }

// Capabilities implements Codec.
func (QubicleCodec) Capabilities() Capability { return CapReadWrite }

// Save implements Writer.
func (QubicleCodec) Save(path string, frames *voxel.FrameSet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing Qubicle file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	// Header: version, RGBA colours, left-handed coords, uncompressed,
	// no visibility mask, matrix count.
	for _, v := range []uint32{qbVersion, 0, 0, 0, 0, uint32(frames.FrameCount())} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	for i := 0; i < frames.FrameCount(); i++ {
		f := frames.Frame(i)
		name := fmt.Sprintf("frame%d", i+1)
		w.WriteByte(byte(len(name)))
		w.WriteString(name)
		for _, v := range []uint32{
			uint32(f.Width()), uint32(f.Height()), uint32(f.Depth()),
			0, 0, 0, // matrix position
		} {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		for z := 0; z < f.Depth(); z++ {
			for y := 0; y < f.Height(); y++ {
				for x := 0; x < f.Width(); x++ {
					c := f.Get(x, y, z)
					var cell uint32
					if c != voxel.Empty {
						// Internal RGBA-packed -> QB little-endian RGBA bytes.
						r := c >> 24 & 0xff
						g := c >> 16 & 0xff
						b := c >> 8 & 0xff
						cell = r | g<<8 | b<<16 | 0xff<<24
					}
					if err := binary.Write(w, binary.LittleEndian, cell); err != nil {
						return err
					}
				}
			}
		}
	}
	return w.Flush()
}

// Load implements Reader.
func (QubicleCodec) Load(path string) (*voxel.FrameSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading Qubicle file: %w", err)
	}
	defer file.Close()
	return parseQB(bufio.NewReader(file))
}

type qbMatrix struct {
	width, height, depth int
	cells                []uint32 // z-major, y, then x fastest
}

func parseQB(r io.Reader) (*voxel.FrameSet, error) {
	var header struct {
		Version     uint32
		ColorFormat uint32
		Handedness  uint32
		Compressed  uint32
		Mask        uint32
		MatrixCount uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header", ErrQBTruncated)
	}
	if header.ColorFormat != 0 {
		return nil, fmt.Errorf("%w: %d (only RGBA is supported)", ErrQBColorFormat, header.ColorFormat)
	}
	if header.MatrixCount == 0 {
		return nil, fmt.Errorf("%w: no matrices", ErrQBTruncated)
	}

	matrices := make([]qbMatrix, 0, header.MatrixCount)
	maxW, maxH, maxD := 0, 0, 0
	for i := uint32(0); i < header.MatrixCount; i++ {
		m, err := parseQBMatrix(r, header.Compressed != 0)
		if err != nil {
			return nil, fmt.Errorf("matrix %d: %w", i, err)
		}
		maxW = max(maxW, m.width)
		maxH = max(maxH, m.height)
		maxD = max(maxD, m.depth)
		matrices = append(matrices, m)
	}

	frames := voxel.NewFrameSet(maxW, maxH, maxD)
	for i, m := range matrices {
		if i > 0 {
			frames.AddEmptyFrame()
		}
		f := frames.Current()
		for z := 0; z < m.depth; z++ {
			for y := 0; y < m.height; y++ {
				for x := 0; x < m.width; x++ {
					cell := m.cells[(z*m.height+y)*m.width+x] & 0x00ffffff
					if cell == 0 {
						continue
					}
					r := cell & 0xff
					g := cell >> 8 & 0xff
					b := cell >> 16 & 0xff
					f.SetRaw(x, y, z, r<<24|g<<16|b<<8|0xff)
				}
			}
		}
	}
	frames.SelectFrame(0)
	frames.MarkSaved()
	return frames, nil
}

func parseQBMatrix(r io.Reader, compressed bool) (qbMatrix, error) {
	var nameLen [1]byte
	if _, err := io.ReadFull(r, nameLen[:]); err != nil {
		return qbMatrix{}, fmt.Errorf("%w: name length", ErrQBTruncated)
	}
	name := make([]byte, nameLen[0])
	if _, err := io.ReadFull(r, name); err != nil {
		return qbMatrix{}, fmt.Errorf("%w: name", ErrQBTruncated)
	}

	var dims [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return qbMatrix{}, fmt.Errorf("%w: dimensions", ErrQBTruncated)
	}
	if dims[0] > voxel.MaxDimension || dims[1] > voxel.MaxDimension || dims[2] > voxel.MaxDimension {
		return qbMatrix{}, fmt.Errorf("%w: %dx%dx%d (max %d per axis)",
			ErrQBTooLarge, dims[0], dims[1], dims[2], voxel.MaxDimension)
	}
	var pos [3]int32
	if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
		return qbMatrix{}, fmt.Errorf("%w: position", ErrQBTruncated)
	}

	m := qbMatrix{width: int(dims[0]), height: int(dims[1]), depth: int(dims[2])}
	m.cells = make([]uint32, m.width*m.height*m.depth)

	if !compressed {
		if err := binary.Read(r, binary.LittleEndian, m.cells); err != nil {
			return qbMatrix{}, fmt.Errorf("%w: voxel data", ErrQBTruncated)
		}
		return m, nil
	}

	// RLE: each slice is a stream of cells, a CODEFLAG introducing a
	// (count, colour) run, terminated by NEXTSLICEFLAG.
	sliceSize := m.width * m.height
	for z := 0; z < m.depth; z++ {
		i := 0
		for {
			cell, err := readUint32(r)
			if err != nil {
				return qbMatrix{}, fmt.Errorf("%w: rle slice %d", ErrQBTruncated, z)
			}
			if cell == qbNextSliceFlag {
				break
			}
			count := uint32(1)
			if cell == qbCodeFlag {
				if count, err = readUint32(r); err != nil {
					return qbMatrix{}, fmt.Errorf("%w: rle count", ErrQBTruncated)
				}
				if cell, err = readUint32(r); err != nil {
					return qbMatrix{}, fmt.Errorf("%w: rle colour", ErrQBTruncated)
				}
			}
			for n := uint32(0); n < count; n++ {
				if i >= sliceSize {
					return qbMatrix{}, fmt.Errorf("%w: rle overrun in slice %d", ErrQBTruncated, z)
				}
				m.cells[z*sliceSize+i] = cell
				i++
			}
		}
	}
	return m, nil
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}
