package voxel

import "fmt"

// FrameSet composes an ordered sequence of animation frames, each an
// independent volume with its own undo history, plus one active index.
// Edits delegate to the active frame; structural operations (resize,
// rotate, expand) apply to every frame so all frames keep identical
// dimensions. A frame set always holds at least one frame.
type FrameSet struct {
	frames  []*Volume
	current int
}

// NewFrameSet creates a frame set with one empty frame of the given size.
func NewFrameSet(width, height, depth int) *FrameSet {
	return &FrameSet{frames: []*Volume{New(width, height, depth)}}
}

// Current returns the active frame.
func (fs *FrameSet) Current() *Volume { return fs.frames[fs.current] }

// CurrentIndex returns the active frame index.
func (fs *FrameSet) CurrentIndex() int { return fs.current }

// FrameCount returns the number of frames.
func (fs *FrameSet) FrameCount() int { return len(fs.frames) }

// Frame returns the frame at index i, or nil if out of range.
func (fs *FrameSet) Frame(i int) *Volume {
	if i < 0 || i >= len(fs.frames) {
		return nil
	}
	return fs.frames[i]
}

// SelectFrame makes frame i the active frame.
func (fs *FrameSet) SelectFrame(i int) error {
	if i < 0 || i >= len(fs.frames) {
		return fmt.Errorf("frame %d out of range [0,%d)", i, len(fs.frames))
	}
	fs.current = i
	return nil
}

// NextFrame advances the active frame, wrapping to the first.
func (fs *FrameSet) NextFrame() {
	fs.current = (fs.current + 1) % len(fs.frames)
}

// PrevFrame steps the active frame back, wrapping to the last.
func (fs *FrameSet) PrevFrame() {
	fs.current = mod(fs.current-1, len(fs.frames))
}

// AddFrame inserts a copy of the active frame after it and selects the
// copy. Copying is the usual animation workflow: tweak the previous pose.
func (fs *FrameSet) AddFrame() *Volume {
	f := fs.Current().Copy()
	fs.insertFrame(fs.current+1, f)
	return f
}

// AddEmptyFrame inserts an empty frame of matching dimensions after the
// active frame and selects it.
func (fs *FrameSet) AddEmptyFrame() *Volume {
	cur := fs.Current()
	f := New(cur.width, cur.height, cur.depth)
	fs.insertFrame(fs.current+1, f)
	return f
}

func (fs *FrameSet) insertFrame(at int, f *Volume) {
	fs.frames = append(fs.frames, nil)
	copy(fs.frames[at+1:], fs.frames[at:])
	fs.frames[at] = f
	fs.current = at
}

// DeleteFrame removes frame i. The last remaining frame cannot be deleted.
func (fs *FrameSet) DeleteFrame(i int) error {
	if len(fs.frames) == 1 {
		return fmt.Errorf("cannot delete the only frame")
	}
	if i < 0 || i >= len(fs.frames) {
		return fmt.Errorf("frame %d out of range [0,%d)", i, len(fs.frames))
	}
	fs.frames = append(fs.frames[:i], fs.frames[i+1:]...)
	if fs.current >= len(fs.frames) {
		fs.current = len(fs.frames) - 1
	}
	return nil
}

// Get reads a voxel from the active frame.
func (fs *FrameSet) Get(x, y, z int) uint32 { return fs.Current().Get(x, y, z) }

// Set writes a voxel on the active frame, recording undo history there.
func (fs *FrameSet) Set(x, y, z int, color uint32) bool {
	return fs.Current().Set(x, y, z, color)
}

// Translate moves the active frame's content with wraparound.
func (fs *FrameSet) Translate(dx, dy, dz int) { fs.Current().Translate(dx, dy, dz) }

// Undo reverts the last recorded edit on the active frame.
func (fs *FrameSet) Undo() bool { return fs.Current().Undo() }

// Redo re-applies the last undone edit on the active frame.
func (fs *FrameSet) Redo() bool { return fs.Current().Redo() }

// Changed reports whether any frame was mutated since the last MarkSaved.
func (fs *FrameSet) Changed() bool {
	for _, f := range fs.frames {
		if f.Changed() {
			return true
		}
	}
	return false
}

// MarkSaved clears every frame's dirty flag.
func (fs *FrameSet) MarkSaved() {
	for _, f := range fs.frames {
		f.MarkSaved()
	}
}

// BoundingBox scans the occupied sets of all frames and returns the
// smallest box containing every occupied voxel. When no frame has content
// it returns the degenerate zero-extent sentinel; callers must check
// Box.Empty before using the result.
func (fs *FrameSet) BoundingBox() Box {
	var box Box
	for _, f := range fs.frames {
		box = box.union(f.BoundingBox())
	}
	return box
}

// Resize reallocates every frame at the requested dimensions, translating
// surviving content so its minimum corner lands at shift. Content outside
// the new bounds is discarded and every frame's undo history is cleared;
// resize is not undoable by design.
func (fs *FrameSet) Resize(width, height, depth int, shift Coord) {
	for _, f := range fs.frames {
		f.resizeTo(width, height, depth, shift.X, shift.Y, shift.Z)
	}
}

// ResizeToBounds shrinks the frame set to the bounding box of its content,
// the original editor's "fit model" operation. No-op on an empty model.
func (fs *FrameSet) ResizeToBounds() {
	box := fs.BoundingBox()
	if box.Empty() {
		return
	}
	fs.Resize(box.Width, box.Height, box.Depth, Coord{X: -box.MinX, Y: -box.MinY, Z: -box.MinZ})
}

// Expand grows every frame by one unit in each signed direction given
// (normally a single non-zero component per call). Existing content keeps
// its relative position; the returned shift is what got added to every
// coordinate, so a caller that was about to draw just outside the old
// bounds can translate its pending coordinate by the same amount.
func (fs *FrameSet) Expand(dx, dy, dz int) Coord {
	cur := fs.Current()
	w, h, d := cur.width, cur.height, cur.depth
	var shift Coord
	if dx != 0 {
		w++
		if dx < 0 {
			shift.X = 1
		}
	}
	if dy != 0 {
		h++
		if dy < 0 {
			shift.Y = 1
		}
	}
	if dz != 0 {
		d++
		if dz < 0 {
			shift.Z = 1
		}
	}
	for _, f := range fs.frames {
		f.resizeTo(w, h, d, shift.X, shift.Y, shift.Z)
	}
	return shift
}

// Rotate performs a 90° rotation of every frame's content about the given
// axis, swapping volume dimensions to the rotated extents. Caches are
// rebuilt and all undo history is cleared.
func (fs *FrameSet) Rotate(axis Axis) {
	for i, f := range fs.frames {
		n := f.rotated(axis)
		fs.frames[i] = n
	}
}

// Width returns the shared frame width.
func (fs *FrameSet) Width() int { return fs.Current().width }

// Height returns the shared frame height.
func (fs *FrameSet) Height() int { return fs.Current().height }

// Depth returns the shared frame depth.
func (fs *FrameSet) Depth() int { return fs.Current().depth }
