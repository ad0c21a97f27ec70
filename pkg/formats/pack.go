package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// VoxPack format errors.
var (
	ErrPackMagic       = errors.New("invalid VoxPack magic")
	ErrPackVersion     = errors.New("unsupported VoxPack version")
	ErrPackCompression = errors.New("unsupported VoxPack compression")
	ErrPackChecksum    = errors.New("VoxPack checksum mismatch")
	ErrPackTruncated   = errors.New("truncated VoxPack data")
)

// VoxPack binary constants.
const (
	packMagic   = "VXPK"
	packVersion = 1

	// Content compression codecs.
	packCompNone uint8 = 0
	packCompZstd uint8 = 1
)

// PackCodec reads and writes the compressed VoxPack container (.vxp):
// a small binary header, an xxhash64 digest of the model document, and a
// zstd-compressed Zoxel JSON payload. The digest catches silent corruption
// before any content is decoded.
type PackCodec struct {
	// Compression selects the payload codec for Save; the zero value
	// writes uncompressed packs, NewPackCodec selects zstd.
	Compression uint8
}

// NewPackCodec returns a codec writing zstd-compressed packs.
func NewPackCodec() PackCodec {
	return PackCodec{Compression: packCompZstd}
}

// Name implements Codec.
func (PackCodec) Name() string { return "VoxPack Files" }

// Extension implements Codec.
func (PackCodec) Extension() string { return ".vxp" }

// Capabilities implements Codec.
func (PackCodec) Capabilities() Capability { return CapReadWrite }

// Marshal encodes a frame set as a VoxPack blob.
func (p PackCodec) Marshal(frames *voxel.FrameSet) ([]byte, error) {
	payload, err := ZoxelCodec{}.Marshal(frames)
	if err != nil {
		return nil, err
	}
	digest := xxhash.Sum64(payload)

	comp := p.Compression
	switch comp {
	case packCompNone:
	case packCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(payload, nil)
		enc.Close()
	default:
		return nil, fmt.Errorf("%w: %d", ErrPackCompression, comp)
	}

	buf := new(bytes.Buffer)
	buf.WriteString(packMagic)
	buf.WriteByte(packVersion)
	buf.WriteByte(comp)
	binary.Write(buf, binary.LittleEndian, digest)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes(), nil
}

// Unmarshal decodes a VoxPack blob into a fresh frame set. Nothing is
// committed on any failure.
func (PackCodec) Unmarshal(data []byte) (*voxel.FrameSet, error) {
	if len(data) < 18 {
		return nil, ErrPackTruncated
	}
	if string(data[0:4]) != packMagic {
		return nil, ErrPackMagic
	}
	if data[4] > packVersion {
		return nil, fmt.Errorf("%w: %d (supported %d)", ErrPackVersion, data[4], packVersion)
	}
	comp := data[5]
	digest := binary.LittleEndian.Uint64(data[6:14])
	size := binary.LittleEndian.Uint32(data[14:18])
	if int(size) != len(data)-18 {
		return nil, fmt.Errorf("%w: payload %d bytes, header says %d", ErrPackTruncated, len(data)-18, size)
	}
	payload := data[18:]

	switch comp {
	case packCompNone:
	case packCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("decompressing VoxPack payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrPackCompression, comp)
	}

	if xxhash.Sum64(payload) != digest {
		return nil, ErrPackChecksum
	}
	return ZoxelCodec{}.Unmarshal(payload)
}

// Save implements Writer.
func (p PackCodec) Save(path string, frames *voxel.FrameSet) error {
	data, err := p.Marshal(frames)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load implements Reader.
func (p PackCodec) Load(path string) (*voxel.FrameSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading VoxPack file: %w", err)
	}
	return p.Unmarshal(data)
}
