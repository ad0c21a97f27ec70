package formats

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Sproxel format errors.
var (
	ErrSproxelCorrupt = errors.New("does not look like a valid Sproxel CSV file")
)

// SproxelCodec reads and writes the Sproxel CSV interchange format: a
// dimensions line, then one slab per y layer from the top of the model
// down, rows in descending z, cells in ascending x as #RRGGBBAA. Sproxel
// has no frame concept; only the active frame is exported.
type SproxelCodec struct{}

// Name implements Codec.
func (SproxelCodec) Name() string { return "Sproxel Files" }

// Extension implements Codec.
func (SproxelCodec) Extension() string { return ".csv" }

// Capabilities implements Codec.
func (SproxelCodec) Capabilities() Capability { return CapReadWrite }

// Save implements Writer.
func (SproxelCodec) Save(path string, frames *voxel.FrameSet) error {
	f := frames.Current()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d,%d,%d\n", f.Width(), f.Height(), f.Depth())
	for y := f.Height() - 1; y >= 0; y-- {
		for z := f.Depth() - 1; z >= 0; z-- {
			cells := make([]string, f.Width())
			for x := 0; x < f.Width(); x++ {
				c := f.Get(x, y, z)
				if c == voxel.Empty {
					cells[x] = "#00000000"
					continue
				}
				// Alpha is always saturated on export.
				cells[x] = fmt.Sprintf("#%08X", c|0xff)
			}
			sb.WriteString(strings.Join(cells, ","))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// Load implements Reader.
func (SproxelCodec) Load(path string) (*voxel.FrameSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading Sproxel file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: empty file", ErrSproxelCorrupt)
	}
	dims := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	if len(dims) != 3 {
		return nil, fmt.Errorf("%w: bad dimensions line %q", ErrSproxelCorrupt, scanner.Text())
	}
	var size [3]int
	for i, d := range dims {
		n, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil || n < 1 || n > voxel.MaxDimension {
			return nil, fmt.Errorf("%w: bad dimension %q", ErrSproxelCorrupt, d)
		}
		size[i] = n
	}

	frames := voxel.NewFrameSet(size[0], size[1], size[2])
	f := frames.Current()
	for y := size[1] - 1; y >= 0; y-- {
		for z := size[2] - 1; z >= 0; z-- {
			line, err := nextDataLine(scanner)
			if err != nil {
				return nil, err
			}
			cells := strings.Split(line, ",")
			if len(cells) != size[0] {
				return nil, fmt.Errorf("%w: row has %d cells, expected %d",
					ErrSproxelCorrupt, len(cells), size[0])
			}
			for x, cell := range cells {
				c, err := parseSproxelCell(strings.TrimSpace(cell))
				if err != nil {
					return nil, err
				}
				if c != voxel.Empty {
					f.SetRaw(x, y, z, c)
				}
			}
		}
	}
	frames.MarkSaved()
	return frames, nil
}

// nextDataLine skips the blank separators between y slabs.
func nextDataLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSproxelCorrupt, err)
	}
	return "", fmt.Errorf("%w: truncated voxel data", ErrSproxelCorrupt)
}

func parseSproxelCell(cell string) (uint32, error) {
	if !strings.HasPrefix(cell, "#") || len(cell) != 9 {
		return 0, fmt.Errorf("%w: bad cell %q", ErrSproxelCorrupt, cell)
	}
	v, err := strconv.ParseUint(cell[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad cell %q", ErrSproxelCorrupt, cell)
	}
	c := uint32(v)
	// Fully transparent cells are empty space.
	if c&0xff == 0 {
		return voxel.Empty, nil
	}
	return c, nil
}
