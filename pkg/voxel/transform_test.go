package voxel

import "testing"

func TestBoundingBox_SingleVolume(t *testing.T) {
	v := New(16, 16, 16)
	v.Set(2, 3, 4, 0xFF0000FF)
	v.Set(5, 7, 9, 0x00FF00FF)

	box := v.BoundingBox()
	if box.MinX != 2 || box.MinY != 3 || box.MinZ != 4 {
		t.Errorf("box min = (%d,%d,%d), expected (2,3,4)", box.MinX, box.MinY, box.MinZ)
	}
	if box.Width != 4 || box.Height != 5 || box.Depth != 6 {
		t.Errorf("box extents = (%d,%d,%d), expected (4,5,6)", box.Width, box.Height, box.Depth)
	}
}

func TestBoundingBox_EmptySentinel(t *testing.T) {
	fs := NewFrameSet(8, 8, 8)
	box := fs.BoundingBox()
	if !box.Empty() {
		t.Errorf("empty model must yield the degenerate sentinel, got %+v", box)
	}
}

func TestBoundingBox_AcrossFrames(t *testing.T) {
	fs := NewFrameSet(16, 16, 16)
	fs.Set(1, 1, 1, 0xFF0000FF)
	fs.AddEmptyFrame()
	fs.Set(10, 2, 3, 0x00FF00FF)

	box := fs.BoundingBox()
	if box.MinX != 1 || box.Width != 10 {
		t.Errorf("box spans x [%d,%d), expected [1,11)", box.MinX, box.MinX+box.Width)
	}
}

func TestTranslate_Wraparound(t *testing.T) {
	v := New(4, 4, 4)
	v.SetRaw(3, 0, 0, 0xAABBCCFF)
	v.Translate(1, 0, 0)

	if v.Get(0, 0, 0) != 0xAABBCCFF {
		t.Error("content exiting one edge must reappear at the opposite edge")
	}
	if v.Get(3, 0, 0) != Empty {
		t.Error("source voxel must be vacated")
	}
}

func TestTranslate_InverseRestores(t *testing.T) {
	v := New(5, 5, 5)
	v.SetRaw(0, 1, 2, 0x111111FF)
	v.SetRaw(4, 3, 0, 0x222222FF)
	v.SetRaw(2, 2, 2, 0x333333FF)

	before := make(map[Coord]uint32)
	v.EachOccupied(func(x, y, z int, c uint32) { before[Coord{x, y, z}] = c })

	v.Translate(3, -2, 4)
	v.Translate(-3, 2, -4)

	count := 0
	v.EachOccupied(func(x, y, z int, c uint32) {
		count++
		if before[Coord{x, y, z}] != c {
			t.Errorf("voxel (%d,%d,%d) = %#x after inverse translate", x, y, z, c)
		}
	})
	if count != len(before) {
		t.Errorf("occupied count %d after inverse translate, expected %d", count, len(before))
	}
}

func TestTranslate_ZeroIsNoOp(t *testing.T) {
	v := New(4, 4, 4)
	v.Set(1, 1, 1, 0xFF0000FF)
	depth := v.UndoDepth()

	v.Translate(0, 0, 0)
	if v.UndoDepth() != depth {
		t.Error("zero translate must not touch undo history")
	}
}

func TestResize_Grow(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(1, 2, 3, 0xAABBCCFF)

	fs.Resize(8, 8, 8, Coord{X: 2, Y: 2, Z: 2})
	if fs.Width() != 8 || fs.Height() != 8 || fs.Depth() != 8 {
		t.Fatalf("dimensions = %dx%dx%d, expected 8x8x8", fs.Width(), fs.Height(), fs.Depth())
	}
	if fs.Get(3, 4, 5) != 0xAABBCCFF {
		t.Error("resize must preserve content at its shifted coordinate")
	}
	if fs.Current().OccupiedCount() != 1 {
		t.Error("cache not rebuilt correctly after resize")
	}
}

func TestResize_ShrinkDropsOutside(t *testing.T) {
	fs := NewFrameSet(8, 8, 8)
	fs.Set(1, 1, 1, 0x111111FF)
	fs.Set(6, 6, 6, 0x222222FF)

	fs.Resize(4, 4, 4, Coord{})
	if fs.Get(1, 1, 1) != 0x111111FF {
		t.Error("in-bounds content must survive a shrink unchanged")
	}
	if fs.Current().OccupiedCount() != 1 {
		t.Error("content outside the new bounds must be discarded")
	}
}

func TestResize_ClearsUndoEverywhere(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(1, 1, 1, 0xFF0000FF)
	fs.AddFrame()
	fs.Set(2, 2, 2, 0x00FF00FF)

	fs.Resize(6, 6, 6, Coord{})
	for i := 0; i < fs.FrameCount(); i++ {
		if fs.Frame(i).UndoDepth() != 0 {
			t.Errorf("frame %d kept undo history across a resize", i)
		}
	}
}

func TestResizeToBounds(t *testing.T) {
	fs := NewFrameSet(16, 16, 16)
	fs.Set(4, 5, 6, 0xFF0000FF)
	fs.Set(6, 8, 7, 0x00FF00FF)

	fs.ResizeToBounds()
	if fs.Width() != 3 || fs.Height() != 4 || fs.Depth() != 2 {
		t.Fatalf("fit dimensions = %dx%dx%d, expected 3x4x2", fs.Width(), fs.Height(), fs.Depth())
	}
	if fs.Get(0, 0, 0) != 0xFF0000FF {
		t.Error("content must land at the origin after fitting")
	}
}

func TestExpand_NegativeDirectionShifts(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(0, 1, 1, 0xAABBCCFF)

	shift := fs.Expand(-1, 0, 0)
	if shift != (Coord{X: 1}) {
		t.Errorf("applied shift = %+v, expected {1 0 0}", shift)
	}
	if fs.Width() != 5 {
		t.Errorf("width = %d, expected 5", fs.Width())
	}
	if fs.Get(1, 1, 1) != 0xAABBCCFF {
		t.Error("content must keep its relative position after expanding")
	}
}

func TestExpand_PositiveDirection(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(3, 3, 3, 0xAABBCCFF)

	shift := fs.Expand(0, 0, 1)
	if shift != (Coord{}) {
		t.Errorf("positive growth must not shift content, got %+v", shift)
	}
	if fs.Depth() != 5 {
		t.Errorf("depth = %d, expected 5", fs.Depth())
	}
	if fs.Get(3, 3, 3) != 0xAABBCCFF {
		t.Error("content moved during positive expansion")
	}
}

func TestRotate_YAxisRemap(t *testing.T) {
	fs := NewFrameSet(2, 2, 2)
	fs.Set(0, 0, 0, 0xAABBCCFF)

	fs.Rotate(AxisY)
	// (tx,ty,tz) -> (-tz-1, ty, tx) modulo the new width: (1, 0, 0).
	if fs.Get(1, 0, 0) != 0xAABBCCFF {
		t.Errorf("voxel not at the predicted remap target; occupied=%d", fs.Current().OccupiedCount())
	}
	if fs.Current().OccupiedCount() != 1 {
		t.Errorf("voxel count = %d after rotation, expected 1", fs.Current().OccupiedCount())
	}
}

func TestRotate_SwapsDimensions(t *testing.T) {
	fs := NewFrameSet(8, 4, 2)
	fs.Set(7, 3, 1, 0xFF0000FF)

	fs.Rotate(AxisY)
	if fs.Width() != 2 || fs.Height() != 4 || fs.Depth() != 8 {
		t.Fatalf("dimensions = %dx%dx%d, expected 2x4x8", fs.Width(), fs.Height(), fs.Depth())
	}
	// (7,3,1) -> (newW-1-1, 3, 7) = (0,3,7)
	if fs.Get(0, 3, 7) != 0xFF0000FF {
		t.Error("rotated voxel missing from remapped coordinate")
	}

	fs2 := NewFrameSet(8, 4, 2)
	fs2.Set(0, 0, 0, 0x00FF00FF)
	fs2.Rotate(AxisX)
	if fs2.Width() != 8 || fs2.Height() != 2 || fs2.Depth() != 4 {
		t.Errorf("X rotation dimensions = %dx%dx%d, expected 8x2x4", fs2.Width(), fs2.Height(), fs2.Depth())
	}
	fs2.Rotate(AxisZ)
	if fs2.Width() != 2 || fs2.Height() != 8 || fs2.Depth() != 4 {
		t.Errorf("Z rotation dimensions = %dx%dx%d, expected 2x8x4", fs2.Width(), fs2.Height(), fs2.Depth())
	}
}

func TestRotate_FourTimesIsIdentity(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(1, 2, 3, 0xAABBCCFF)
	fs.Set(0, 0, 0, 0x112233FF)

	for i := 0; i < 4; i++ {
		fs.Rotate(AxisZ)
	}
	if fs.Get(1, 2, 3) != 0xAABBCCFF || fs.Get(0, 0, 0) != 0x112233FF {
		t.Error("four 90° rotations must restore the original content")
	}
}

func TestRotate_ClearsUndo(t *testing.T) {
	fs := NewFrameSet(4, 4, 4)
	fs.Set(1, 1, 1, 0xFF0000FF)
	fs.Rotate(AxisY)
	if fs.Current().UndoDepth() != 0 {
		t.Error("rotation must clear undo history")
	}
}
