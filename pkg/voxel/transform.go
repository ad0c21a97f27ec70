package voxel

// Axis selects the rotation axis for Rotate.
type Axis uint8

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// Box is an axis-aligned bounding box in voxel coordinates. A box with zero
// or negative extents is the degenerate sentinel for an empty model.
type Box struct {
	MinX, MinY, MinZ     int
	Width, Height, Depth int
}

// Empty reports whether the box is the degenerate sentinel.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0 || b.Depth <= 0
}

// BoundingBox returns the smallest box containing every occupied voxel of
// this volume, or the zero Box when nothing is occupied.
func (v *Volume) BoundingBox() Box {
	if len(v.occupied) == 0 {
		return Box{}
	}
	first := true
	var minX, minY, minZ, maxX, maxY, maxZ int
	for c := range v.occupied {
		if first {
			minX, minY, minZ = c.X, c.Y, c.Z
			maxX, maxY, maxZ = c.X, c.Y, c.Z
			first = false
			continue
		}
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
		if c.Z < minZ {
			minZ = c.Z
		}
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}
	return Box{
		MinX: minX, MinY: minY, MinZ: minZ,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
		Depth:  maxZ - minZ + 1,
	}
}

// union merges two boxes, treating the sentinel as the identity.
func (b Box) union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	maxX := max(b.MinX+b.Width, o.MinX+o.Width)
	maxY := max(b.MinY+b.Height, o.MinY+o.Height)
	maxZ := max(b.MinZ+b.Depth, o.MinZ+o.Depth)
	r := Box{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MinZ: min(b.MinZ, o.MinZ),
	}
	r.Width = maxX - r.MinX
	r.Height = maxY - r.MinY
	r.Depth = maxZ - r.MinZ
	return r
}

// resizeTo reallocates the volume at the given dimensions, copying the
// overlapping region of old content translated by shift. Content falling
// outside the new bounds is discarded. Undo history is cleared: the old
// entries reference coordinates that no longer exist.
func (v *Volume) resizeTo(width, height, depth, sx, sy, sz int) {
	width = clampDimension(width)
	height = clampDimension(height)
	depth = clampDimension(depth)

	n := &Volume{width: width, height: height, depth: depth}
	n.alloc()
	for c := range v.occupied {
		nx, ny, nz := c.X+sx, c.Y+sy, c.Z+sz
		if !n.InBounds(nx, ny, nz) {
			continue
		}
		n.data[n.index(nx, ny, nz)] = v.data[v.index(c.X, c.Y, c.Z)]
	}
	n.rebuildCache()

	// Swap the fresh array in; the old one is never mutated in place.
	v.width, v.height, v.depth = n.width, n.height, n.depth
	v.data = n.data
	v.occupied = n.occupied
	v.undo.Clear()
	v.changed = true
}

// rotated returns a new volume holding this volume's content rotated 90°
// about the given axis, with dimensions swapped to the rotated extents.
func (v *Volume) rotated(axis Axis) *Volume {
	var n *Volume
	switch axis {
	case AxisX:
		n = &Volume{width: v.width, height: v.depth, depth: v.height}
	case AxisY:
		n = &Volume{width: v.depth, height: v.height, depth: v.width}
	case AxisZ:
		n = &Volume{width: v.height, height: v.width, depth: v.depth}
	}
	n.alloc()
	for c := range v.occupied {
		var nx, ny, nz int
		switch axis {
		case AxisX:
			nx, ny, nz = c.X, c.Z, n.depth-1-c.Y
		case AxisY:
			nx, ny, nz = n.width-1-c.Z, c.Y, c.X
		case AxisZ:
			nx, ny, nz = c.Y, n.height-1-c.X, c.Z
		}
		n.data[n.index(nx, ny, nz)] = v.data[v.index(c.X, c.Y, c.Z)]
	}
	n.rebuildCache()
	n.changed = true
	return n
}

// Translate moves the volume content by the given delta with wraparound on
// each axis, recording a Translate undo item. Zero deltas are a no-op and
// leave the history untouched.
func (v *Volume) Translate(dx, dy, dz int) {
	v.translate(dx, dy, dz, true)
}

func (v *Volume) translate(dx, dy, dz int, recordUndo bool) {
	if dx == 0 && dy == 0 && dz == 0 {
		return
	}
	data := make([]uint32, len(v.data))
	for x := 0; x < v.width; x++ {
		nx := mod(x+dx, v.width)
		for y := 0; y < v.height; y++ {
			ny := mod(y+dy, v.height)
			for z := 0; z < v.depth; z++ {
				nz := mod(z+dz, v.depth)
				data[(nx*v.height+ny)*v.depth+nz] = v.data[v.index(x, y, z)]
			}
		}
	}
	v.data = data
	v.rebuildCache()
	v.changed = true

	if recordUndo {
		v.undo.Add(UndoItem{
			Op:  OpTranslate,
			Old: State{X: -dx, Y: -dy, Z: -dz},
			New: State{X: dx, Y: dy, Z: dz},
		})
	}
}

// mod is the non-negative remainder; wraparound translation is a bijection
// on the coordinate domain.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
