package formats

import (
	"errors"
	"testing"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// stubCodec declares capabilities without implementing the matching
// interfaces, for registration validation tests.
type stubCodec struct {
	caps Capability
}

func (stubCodec) Name() string              { return "Stub" }
func (stubCodec) Extension() string         { return ".stub" }
func (s stubCodec) Capabilities() Capability { return s.caps }

func TestRegistry_RegisterValidatesCapabilities(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubCodec{caps: CapRead}); err == nil {
		t.Error("declared read capability without a Load method must be rejected")
	}
	if err := r.Register(stubCodec{caps: CapWrite}); err == nil {
		t.Error("declared write capability without a Save method must be rejected")
	}
	if err := r.Register(stubCodec{caps: 0}); err == nil {
		t.Error("codec declaring no capabilities must be rejected")
	}

	if err := r.Register(ZoxelCodec{}); err != nil {
		t.Errorf("registering a read/write codec failed: %v", err)
	}
	if err := r.Register(GLTFCodec{}); err != nil {
		t.Errorf("registering a write-only codec failed: %v", err)
	}
}

func TestRegistry_ByExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(ZoxelCodec{})
	r.Register(SproxelCodec{})

	if c := r.ByExtension("model.zox"); c == nil || c.Name() != "Zoxel Files" {
		t.Error("extension lookup failed for .zox")
	}
	if c := r.ByExtension("MODEL.CSV"); c == nil || c.Name() != "Sproxel Files" {
		t.Error("extension lookup must be case-insensitive")
	}
	if c := r.ByExtension("model.xyz"); c != nil {
		t.Error("unknown extension must return nil")
	}
}

func TestRegistry_LoadUnknownExtension(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Load("model.xyz"); !errors.Is(err, ErrUnknownExtension) {
		t.Errorf("expected ErrUnknownExtension, got %v", err)
	}
}

func TestRegistry_SaveToReadOnlyDirection(t *testing.T) {
	r := NewRegistry()
	r.Register(GLTFCodec{})
	if _, err := r.Load("model.glb"); !errors.Is(err, ErrNotReadable) {
		t.Errorf("expected ErrNotReadable for a write-only codec, got %v", err)
	}
}

// testFrames builds a small two-frame model used by the codec round trips.
func testFrames(t *testing.T) *voxel.FrameSet {
	t.Helper()
	fs := voxel.NewFrameSet(4, 5, 6)
	fs.Set(0, 0, 0, 0xFF0000FF)
	fs.Set(1, 2, 3, 0x00FF00FF)
	fs.Set(3, 4, 5, 0x112233FF)
	fs.AddEmptyFrame()
	fs.Set(2, 2, 2, 0xAABBCCFF)
	fs.SelectFrame(0)
	return fs
}

// assertSameContent compares two frame sets voxel by voxel.
func assertSameContent(t *testing.T, want, got *voxel.FrameSet) {
	t.Helper()
	if got.FrameCount() != want.FrameCount() {
		t.Fatalf("frame count = %d, expected %d", got.FrameCount(), want.FrameCount())
	}
	if got.Width() != want.Width() || got.Height() != want.Height() || got.Depth() != want.Depth() {
		t.Fatalf("dimensions = %dx%dx%d, expected %dx%dx%d",
			got.Width(), got.Height(), got.Depth(),
			want.Width(), want.Height(), want.Depth())
	}
	for i := 0; i < want.FrameCount(); i++ {
		wf, gf := want.Frame(i), got.Frame(i)
		if gf.OccupiedCount() != wf.OccupiedCount() {
			t.Errorf("frame %d occupied = %d, expected %d", i, gf.OccupiedCount(), wf.OccupiedCount())
		}
		wf.EachOccupied(func(x, y, z int, c uint32) {
			if g := gf.Get(x, y, z); g != c {
				t.Errorf("frame %d voxel (%d,%d,%d) = %#x, expected %#x", i, x, y, z, g, c)
			}
		})
	}
}
