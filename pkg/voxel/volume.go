// Package voxel implements the voxel volume engine: dense grid storage,
// mesh generation with ambient occlusion and pick-ID encoding, per-frame
// undo history and structural transforms.
package voxel

// Empty is the state of an unoccupied voxel.
const Empty uint32 = 0

// Default model dimensions. This is an editor for small voxel models.
const (
	DefaultWidth  = 32
	DefaultHeight = 32
	DefaultDepth  = 32
)

// MaxDimension is the hard per-axis limit imposed by the 7-bit pick-ID
// coordinate encoding.
const MaxDimension = 127

// Coord is an integer voxel coordinate.
type Coord struct {
	X, Y, Z int
}

// Volume is a dense three dimensional grid of packed RGBA colors.
// A cache of occupied coordinates is maintained incrementally so mesh and
// bounding box computation is O(occupied voxels), not O(grid).
type Volume struct {
	width  int
	height int
	depth  int

	data     []uint32
	occupied map[Coord]struct{}

	// Dirty flag for the host UI. Set on any mutation, cleared only by
	// MarkSaved.
	changed bool

	undo UndoBuffer
}

// New creates an empty volume of the given dimensions. Dimensions are
// clamped to [1, MaxDimension].
func New(width, height, depth int) *Volume {
	v := &Volume{
		width:  clampDimension(width),
		height: clampDimension(height),
		depth:  clampDimension(depth),
	}
	v.alloc()
	return v
}

// NewDefault creates an empty volume at the default editor dimensions.
func NewDefault() *Volume {
	return New(DefaultWidth, DefaultHeight, DefaultDepth)
}

func clampDimension(d int) int {
	if d < 1 {
		return 1
	}
	if d > MaxDimension {
		return MaxDimension
	}
	return d
}

func (v *Volume) alloc() {
	v.data = make([]uint32, v.width*v.height*v.depth)
	v.occupied = make(map[Coord]struct{})
}

func (v *Volume) index(x, y, z int) int {
	return (x*v.height+y)*v.depth + z
}

// Width returns the volume width in voxels.
func (v *Volume) Width() int { return v.width }

// Height returns the volume height in voxels.
func (v *Volume) Height() int { return v.height }

// Depth returns the volume depth in voxels.
func (v *Volume) Depth() int { return v.depth }

// InBounds reports whether (x, y, z) is a valid coordinate.
func (v *Volume) InBounds(x, y, z int) bool {
	return x >= 0 && x < v.width &&
		y >= 0 && y < v.height &&
		z >= 0 && z < v.depth
}

// Get returns the color of the voxel at (x, y, z), or Empty for any
// out-of-bounds coordinate.
func (v *Volume) Get(x, y, z int) uint32 {
	if !v.InBounds(x, y, z) {
		return Empty
	}
	return v.data[v.index(x, y, z)]
}

// Set writes a voxel color and records an undo entry. It returns false and
// makes no change if the coordinate is out of bounds. Writes never grow the
// volume; growth is the caller's job via Expand or Resize.
func (v *Volume) Set(x, y, z int, color uint32) bool {
	return v.set(x, y, z, color, true)
}

// SetRaw writes a voxel color without recording undo history. Used by codec
// loads and by undo/redo replay, which must not re-record themselves.
func (v *Volume) SetRaw(x, y, z int, color uint32) bool {
	return v.set(x, y, z, color, false)
}

func (v *Volume) set(x, y, z int, color uint32, recordUndo bool) bool {
	if !v.InBounds(x, y, z) {
		return false
	}
	i := v.index(x, y, z)
	old := v.data[i]
	v.data[i] = color

	c := Coord{x, y, z}
	if color != Empty {
		v.occupied[c] = struct{}{}
	} else {
		delete(v.occupied, c)
	}
	v.changed = true

	if recordUndo {
		v.undo.Add(UndoItem{
			Op:  OpSetVoxel,
			Old: State{X: x, Y: y, Z: z, Color: old},
			New: State{X: x, Y: y, Z: z, Color: color},
		})
	}
	return true
}

// Clear empties the volume at its current dimensions, discarding undo
// history and resetting the changed flag.
func (v *Volume) Clear() {
	v.alloc()
	v.undo.Clear()
	v.changed = false
}

// Changed reports whether the volume was mutated since the last MarkSaved.
func (v *Volume) Changed() bool { return v.changed }

// MarkSaved clears the dirty flag after the host persists the model.
func (v *Volume) MarkSaved() { v.changed = false }

// OccupiedCount returns the number of non-empty voxels.
func (v *Volume) OccupiedCount() int { return len(v.occupied) }

// IsOccupied reports whether the occupied cache contains (x, y, z).
func (v *Volume) IsOccupied(x, y, z int) bool {
	_, ok := v.occupied[Coord{x, y, z}]
	return ok
}

// EachOccupied calls fn for every non-empty voxel. Iteration order is
// unspecified.
func (v *Volume) EachOccupied(fn func(x, y, z int, color uint32)) {
	for c := range v.occupied {
		fn(c.X, c.Y, c.Z, v.data[v.index(c.X, c.Y, c.Z)])
	}
}

// rebuildCache rederives the occupied set from the dense array. Only bulk
// operations (resize, rotate, translate, load) use this; Set maintains the
// cache incrementally.
func (v *Volume) rebuildCache() {
	v.occupied = make(map[Coord]struct{})
	for x := 0; x < v.width; x++ {
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				if v.data[v.index(x, y, z)] != Empty {
					v.occupied[Coord{x, y, z}] = struct{}{}
				}
			}
		}
	}
}

// VoxelToWorld maps voxel indices to continuous coordinates centered on the
// volume midpoint. Voxel centers land on half-integer world coordinates and
// the z axis is inverted: +z in world space is -z in voxel space.
func (v *Volume) VoxelToWorld(x, y, z int) (wx, wy, wz float32) {
	wx = float32(x-v.width/2) - 0.5
	wy = float32(y-v.height/2) - 0.5
	wz = -(float32(z-v.depth/2) - 0.5)
	return
}

// WorldToVoxel is the exact inverse of VoxelToWorld for in-bounds points.
func (v *Volume) WorldToVoxel(wx, wy, wz float32) (x, y, z int) {
	x = int(floorf(wx + float32(v.width/2) + 0.5))
	y = int(floorf(wy + float32(v.height/2) + 0.5))
	z = int(floorf(-wz + float32(v.depth/2) + 0.5))
	return
}

func floorf(f float32) float32 {
	i := float32(int(f))
	if f < i {
		return i - 1
	}
	return i
}

// Copy returns a deep copy of the volume. The copy starts with empty undo
// history and a clean changed flag.
func (v *Volume) Copy() *Volume {
	c := &Volume{width: v.width, height: v.height, depth: v.depth}
	c.data = make([]uint32, len(v.data))
	copy(c.data, v.data)
	c.occupied = make(map[Coord]struct{}, len(v.occupied))
	for k := range v.occupied {
		c.occupied[k] = struct{}{}
	}
	return c
}

// Undo reverts the most recent recorded operation on this volume. Returns
// false if there is nothing to undo. The replay goes through the normal
// mutating calls with recording suppressed, so it never re-records itself.
func (v *Volume) Undo() bool {
	item, ok := v.undo.Undo()
	if !ok {
		return false
	}
	v.applyState(item.Op, item.Old)
	return true
}

// Redo re-applies the most recently undone operation. Returns false if
// there is nothing to redo.
func (v *Volume) Redo() bool {
	item, ok := v.undo.Redo()
	if !ok {
		return false
	}
	v.applyState(item.Op, item.New)
	return true
}

func (v *Volume) applyState(op Op, s State) {
	switch op {
	case OpSetVoxel:
		v.set(s.X, s.Y, s.Z, s.Color, false)
	case OpTranslate:
		v.translate(s.X, s.Y, s.Z, false)
	}
}

// UndoDepth returns the number of recorded operations (for UI state).
func (v *Volume) UndoDepth() int { return v.undo.Len() }
