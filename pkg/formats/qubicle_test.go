package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

func TestQubicle_RoundTrip(t *testing.T) {
	want := testFrames(t)
	path := filepath.Join(t.TempDir(), "model.qb")

	codec := QubicleCodec{}
	if err := codec.Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := codec.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSameContent(t, want, got)
}

// buildQB assembles a minimal one-matrix .qb blob.
func buildQB(compressed uint32, body func(*bytes.Buffer)) []byte {
	buf := new(bytes.Buffer)
	for _, v := range []uint32{qbVersion, 0, 0, compressed, 0, 1} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	buf.WriteByte(1)
	buf.WriteString("m")
	for _, v := range []uint32{2, 1, 1, 0, 0, 0} { // dims + position
		binary.Write(buf, binary.LittleEndian, v)
	}
	body(buf)
	return buf.Bytes()
}

func TestQubicle_ParseUncompressed(t *testing.T) {
	data := buildQB(0, func(buf *bytes.Buffer) {
		// QB cells are R | G<<8 | B<<16 | A<<24.
		binary.Write(buf, binary.LittleEndian, uint32(0xFF0000AA)) // A=FF B=00 G=00 R=AA
		binary.Write(buf, binary.LittleEndian, uint32(0))
	})

	got, err := parseQB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parseQB failed: %v", err)
	}
	if c := got.Get(0, 0, 0); c != 0xAA0000FF {
		t.Errorf("voxel color = %#x, expected 0xAA0000FF", c)
	}
	if got.Get(1, 0, 0) != voxel.Empty {
		t.Error("zero cell must be empty")
	}
}

func TestQubicle_ParseRLE(t *testing.T) {
	data := buildQB(1, func(buf *bytes.Buffer) {
		// One run filling both cells of the single slice, then the
		// next-slice flag.
		binary.Write(buf, binary.LittleEndian, uint32(qbCodeFlag))
		binary.Write(buf, binary.LittleEndian, uint32(2))
		binary.Write(buf, binary.LittleEndian, uint32(0xFF0000AA))
		binary.Write(buf, binary.LittleEndian, uint32(qbNextSliceFlag))
	})

	got, err := parseQB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parseQB failed: %v", err)
	}
	if got.Get(0, 0, 0) != 0xAA0000FF || got.Get(1, 0, 0) != 0xAA0000FF {
		t.Error("RLE run did not fill the slice")
	}
}

func TestQubicle_UnsupportedColorFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	for _, v := range []uint32{qbVersion, 1, 0, 0, 0, 1} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	if _, err := parseQB(buf); !errors.Is(err, ErrQBColorFormat) {
		t.Errorf("expected ErrQBColorFormat, got %v", err)
	}
}

func TestQubicle_TruncatedData(t *testing.T) {
	data := buildQB(0, func(buf *bytes.Buffer) {
		binary.Write(buf, binary.LittleEndian, uint32(0xFF0000AA))
		// second cell missing
	})
	if _, err := parseQB(bytes.NewReader(data)); !errors.Is(err, ErrQBTruncated) {
		t.Errorf("expected ErrQBTruncated, got %v", err)
	}
}

func TestQubicle_OversizedMatrixRejected(t *testing.T) {
	buf := new(bytes.Buffer)
	for _, v := range []uint32{qbVersion, 0, 0, 0, 0, 1} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	buf.WriteByte(1)
	buf.WriteString("m")
	for _, v := range []uint32{500, 1, 1, 0, 0, 0} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	if _, err := parseQB(buf); !errors.Is(err, ErrQBTooLarge) {
		t.Errorf("expected ErrQBTooLarge, got %v", err)
	}
}

func TestQubicle_MultipleMatricesBecomeFrames(t *testing.T) {
	buf := new(bytes.Buffer)
	for _, v := range []uint32{qbVersion, 0, 0, 0, 0, 2} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for i := 0; i < 2; i++ {
		buf.WriteByte(1)
		buf.WriteString("m")
		for _, v := range []uint32{1, 1, 1, 0, 0, 0} {
			binary.Write(buf, binary.LittleEndian, v)
		}
		binary.Write(buf, binary.LittleEndian, uint32(0xFF0000AA))
	}

	got, err := parseQB(buf)
	if err != nil {
		t.Fatalf("parseQB failed: %v", err)
	}
	if got.FrameCount() != 2 {
		t.Errorf("frame count = %d, expected one frame per matrix", got.FrameCount())
	}
}
