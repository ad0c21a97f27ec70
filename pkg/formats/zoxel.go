package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Zoxel format errors.
var (
	ErrZoxelVersion = errors.New("file requires a newer version of the Zoxel format")
	ErrZoxelCorrupt = errors.New("does not look like a valid Zoxel file")
)

// zoxelFileVersion is the newest Zoxel document version this codec writes
// and understands. Loading a newer version fails without touching anything.
const zoxelFileVersion = 1

// zoxelMaxFrames bounds the declared frame count so a corrupt document
// cannot demand an allocation per claimed frame before the missing frame
// keys are even noticed.
const zoxelMaxFrames = 1024

// ZoxelCodec reads and writes the native .zox model format: a JSON document
// carrying a version, the model dimensions and one sparse voxel list per
// animation frame.
type ZoxelCodec struct{}

// Name implements Codec.
func (ZoxelCodec) Name() string { return "Zoxel Files" }

// Extension implements Codec.
func (ZoxelCodec) Extension() string { return ".zox" }

// Capabilities implements Codec.
func (ZoxelCodec) Capabilities() Capability { return CapReadWrite }

// Marshal encodes a frame set as a Zoxel JSON document.
func (ZoxelCodec) Marshal(frames *voxel.FrameSet) ([]byte, error) {
	doc := map[string]any{
		"version": zoxelFileVersion,
		"width":   frames.Width(),
		"height":  frames.Height(),
		"depth":   frames.Depth(),
		"frames":  frames.FrameCount(),
	}
	for i := 0; i < frames.FrameCount(); i++ {
		f := frames.Frame(i)
		// Canonical serialization order: y outer, z middle, x inner.
		voxels := make([][4]uint32, 0, f.OccupiedCount())
		for y := 0; y < f.Height(); y++ {
			for z := 0; z < f.Depth(); z++ {
				for x := 0; x < f.Width(); x++ {
					if c := f.Get(x, y, z); c != voxel.Empty {
						voxels = append(voxels, [4]uint32{uint32(x), uint32(y), uint32(z), c})
					}
				}
			}
		}
		doc[fmt.Sprintf("frame%d", i+1)] = voxels
	}
	return json.Marshal(doc)
}

// Unmarshal decodes a Zoxel JSON document into a fresh frame set. Nothing
// is committed on any failure.
func (ZoxelCodec) Unmarshal(data []byte) (*voxel.FrameSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZoxelCorrupt, err)
	}

	// Version gate first: a newer document must fail cleanly.
	var version int
	if err := unmarshalField(raw, "version", &version); err != nil {
		return nil, err
	}
	if version > zoxelFileVersion {
		return nil, fmt.Errorf("%w (file version %d, supported %d)",
			ErrZoxelVersion, version, zoxelFileVersion)
	}

	var width, height, depth, frameCount int
	if err := unmarshalField(raw, "width", &width); err != nil {
		return nil, err
	}
	if err := unmarshalField(raw, "height", &height); err != nil {
		return nil, err
	}
	if err := unmarshalField(raw, "depth", &depth); err != nil {
		return nil, err
	}
	if err := unmarshalField(raw, "frames", &frameCount); err != nil {
		return nil, err
	}
	if frameCount < 1 || frameCount > zoxelMaxFrames {
		return nil, fmt.Errorf("%w: frame count %d", ErrZoxelCorrupt, frameCount)
	}
	if width < 1 || width > voxel.MaxDimension ||
		height < 1 || height > voxel.MaxDimension ||
		depth < 1 || depth > voxel.MaxDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%dx%d", ErrZoxelCorrupt, width, height, depth)
	}

	frames := voxel.NewFrameSet(width, height, depth)
	for i := 0; i < frameCount; i++ {
		if i > 0 {
			frames.AddEmptyFrame()
		}
		var voxels [][4]uint32
		if err := unmarshalField(raw, fmt.Sprintf("frame%d", i+1), &voxels); err != nil {
			return nil, err
		}
		f := frames.Current()
		for _, vx := range voxels {
			if !f.SetRaw(int(vx[0]), int(vx[1]), int(vx[2]), vx[3]) {
				return nil, fmt.Errorf("%w: voxel (%d,%d,%d) outside %dx%dx%d",
					ErrZoxelCorrupt, vx[0], vx[1], vx[2], width, height, depth)
			}
		}
	}
	frames.SelectFrame(0)
	frames.MarkSaved()
	return frames, nil
}

func unmarshalField(raw map[string]json.RawMessage, key string, out any) error {
	msg, ok := raw[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrZoxelCorrupt, key)
	}
	if err := json.Unmarshal(msg, out); err != nil {
		return fmt.Errorf("%w: bad %q: %v", ErrZoxelCorrupt, key, err)
	}
	return nil
}

// Save implements Writer.
func (z ZoxelCodec) Save(path string, frames *voxel.FrameSet) error {
	data, err := z.Marshal(frames)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load implements Reader.
func (z ZoxelCodec) Load(path string) (*voxel.FrameSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading Zoxel file: %w", err)
	}
	return z.Unmarshal(data)
}
