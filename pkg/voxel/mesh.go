package voxel

// Face identifies one of the six axis-aligned voxel faces. The numeric
// values are part of the pick-ID wire contract and must not change.
type Face uint8

// Face indices as encoded in the low three bits of a pick ID.
const (
	FaceFront  Face = 0 // -z voxel side
	FaceTop    Face = 1 // +y
	FaceLeft   Face = 2 // -x
	FaceRight  Face = 3 // +x
	FaceBack   Face = 4 // +z
	FaceBottom Face = 5 // -y
)

// String returns a human-readable face name.
func (f Face) String() string {
	switch f {
	case FaceFront:
		return "Front"
	case FaceTop:
		return "Top"
	case FaceLeft:
		return "Left"
	case FaceRight:
		return "Right"
	case FaceBack:
		return "Back"
	case FaceBottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// Offset returns the voxel-space offset of the neighbour adjacent to this
// face. Drawing tools use it to place a new voxel next to a clicked face
// instead of overwriting the clicked voxel.
func (f Face) Offset() (dx, dy, dz int) {
	switch f {
	case FaceTop:
		return 0, 1, 0
	case FaceBottom:
		return 0, -1, 0
	case FaceBack:
		return 0, 0, 1
	case FaceFront:
		return 0, 0, -1
	case FaceLeft:
		return -1, 0, 0
	case FaceRight:
		return 1, 0, 0
	}
	return 0, 0, 0
}

// PickBackground is the sentinel framebuffer color meaning "no voxel hit";
// the picker falls back to grid-plane intersection when it reads this.
const PickBackground uint32 = 0xFFFFFF

// EncodePickID packs a voxel coordinate and face index into a 24-bit pick
// color: 7 bits per axis, low 3 bits the face.
func EncodePickID(x, y, z int, f Face) (r, g, b uint8) {
	id := uint32(x&0x7f)<<17 | uint32(y&0x7f)<<10 | uint32(z&0x7f)<<3 | uint32(f)
	return uint8(id >> 16), uint8(id >> 8), uint8(id)
}

// DecodePickID recovers the voxel coordinate and face from a pick color
// read back from the framebuffer. ok is false for the background sentinel.
func DecodePickID(r, g, b uint8) (x, y, z int, f Face, ok bool) {
	id := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if id == PickBackground {
		return 0, 0, 0, 0, false
	}
	return int(id >> 17 & 0x7f), int(id >> 10 & 0x7f), int(id >> 3 & 0x7f), Face(id & 0x7), true
}

// Options configures mesh generation. Passed explicitly instead of being a
// mutable flag on the volume so callers state what they want per build.
type Options struct {
	// AmbientOcclusion darkens face corners that are partially enclosed by
	// neighbouring voxels.
	AmbientOcclusion bool
}

// Mesh is the renderable output of a build: parallel flat arrays, three
// position floats, three color bytes, three normal floats, three pick-ID
// bytes and two UV floats per vertex. Six vertices (two clockwise
// triangles) per visible face.
type Mesh struct {
	Positions []float32
	Colors    []uint8
	Normals   []float32
	PickIDs   []uint8
	UVs       []float32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// FaceCount returns the number of quads (visible voxel faces).
func (m *Mesh) FaceCount() int { return m.VertexCount() / 6 }

// Per-level ambient occlusion attenuation: 0.7^level.
var aoFactor = [5]float32{1.0, 0.7, 0.49, 0.343, 0.2401}

// BuildMesh generates the triangle mesh for a volume. It is a pure function
// of the occupied set: faces between two solid voxels are culled, and the
// whole mesh is rebuilt on every call. The caller owns staleness tracking.
func BuildMesh(v *Volume, opts Options) *Mesh {
	m := &Mesh{}
	for c := range v.occupied {
		buildVoxel(m, v, c.X, c.Y, c.Z, opts)
	}
	return m
}

// corner order within a face: (u,v) = (0,0), (0,1), (1,0), (1,1).
type occLevels [4]int

// faceOcclusion derives the per-corner occlusion level for a face. The
// occluders are the eight voxels surrounding the cell one step out along
// the face normal (nx,ny,nz): the edge-adjacent four each shade the two
// corners they touch, the diagonal four shade one corner each. The u/v
// vectors span the face plane in the same orientation as the emitted UVs.
func faceOcclusion(vol *Volume, x, y, z, nx, ny, nz, ux, uy, uz, vx, vy, vz int) occLevels {
	px, py, pz := x+nx, y+ny, z+nz
	var o occLevels
	for i, c := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		du, dv := c[0], c[1]
		if vol.Get(px+du*ux, py+du*uy, pz+du*uz) != Empty {
			o[i]++
		}
		if vol.Get(px+dv*vx, py+dv*vy, pz+dv*vz) != Empty {
			o[i]++
		}
		if vol.Get(px+du*ux+dv*vx, py+du*uy+dv*vy, pz+du*uz+dv*vz) != Empty {
			o[i]++
		}
		if o[i] > 4 {
			o[i] = 4
		}
	}
	return o
}

// shade attenuates a base color by the occlusion level of one corner,
// truncating each channel to an integer.
func shade(r, g, b uint8, level int) (uint8, uint8, uint8) {
	f := aoFactor[level]
	return uint8(float32(r) * f), uint8(float32(g) * f), uint8(float32(b) * f)
}

func buildVoxel(m *Mesh, v *Volume, x, y, z int, opts Options) {
	// Probe the six neighbours; only faces against empty space are emitted.
	front := v.Get(x, y, z-1) == Empty
	left := v.Get(x-1, y, z) == Empty
	right := v.Get(x+1, y, z) == Empty
	top := v.Get(x, y+1, z) == Empty
	back := v.Get(x, y, z+1) == Empty
	bottom := v.Get(x, y-1, z) == Empty

	c := v.Get(x, y, z)
	r := uint8(c >> 24)
	g := uint8(c >> 16)
	b := uint8(c >> 8)

	wx, wy, wz := v.VoxelToWorld(x, y, z)

	noOcc := occLevels{0, 0, 0, 0}

	if front {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, 0, 0, -1, 1, 0, 0, 0, 1, 0)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceFront, 0, 0, 1, [4][3]float32{
			{wx, wy, wz},
			{wx, wy + 1, wz},
			{wx + 1, wy, wz},
			{wx + 1, wy + 1, wz},
		})
	}
	if top {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, 0, 1, 0, 1, 0, 0, 0, 0, 1)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceTop, 0, 1, 0, [4][3]float32{
			{wx, wy + 1, wz},
			{wx, wy + 1, wz - 1},
			{wx + 1, wy + 1, wz},
			{wx + 1, wy + 1, wz - 1},
		})
	}
	if right {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, 1, 0, 0, 0, 0, 1, 0, 1, 0)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceRight, 1, 0, 0, [4][3]float32{
			{wx + 1, wy, wz},
			{wx + 1, wy + 1, wz},
			{wx + 1, wy, wz - 1},
			{wx + 1, wy + 1, wz - 1},
		})
	}
	if left {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, -1, 0, 0, 0, 0, -1, 0, 1, 0)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceLeft, -1, 0, 0, [4][3]float32{
			{wx, wy, wz - 1},
			{wx, wy + 1, wz - 1},
			{wx, wy, wz},
			{wx, wy + 1, wz},
		})
	}
	if back {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, 0, 0, 1, -1, 0, 0, 0, 1, 0)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceBack, 0, 0, -1, [4][3]float32{
			{wx + 1, wy, wz - 1},
			{wx + 1, wy + 1, wz - 1},
			{wx, wy, wz - 1},
			{wx, wy + 1, wz - 1},
		})
	}
	if bottom {
		occ := noOcc
		if opts.AmbientOcclusion {
			occ = faceOcclusion(v, x, y, z, 0, -1, 0, 1, 0, 0, 0, 0, -1)
		}
		emitFace(m, r, g, b, occ, x, y, z, FaceBottom, 0, -1, 0, [4][3]float32{
			{wx, wy, wz - 1},
			{wx, wy, wz},
			{wx + 1, wy, wz - 1},
			{wx + 1, wy, wz},
		})
	}
}

// Vertex emission order for the two clockwise triangles of a quad, indexed
// into the four corners (u,v) = 00, 01, 10, 11, with the fixed UV pattern
// 0,0 / 0,1 / 1,0 / 1,0 / 0,1 / 1,1.
var (
	quadOrder = [6]int{0, 1, 2, 2, 1, 3}
	quadUVs   = [6][2]float32{{0, 0}, {0, 1}, {1, 0}, {1, 0}, {0, 1}, {1, 1}}
)

// emitFace appends one quad as two triangles. corners holds the world
// positions of the four face corners in (u,v) order 00, 01, 10, 11.
func emitFace(m *Mesh, r, g, b uint8, occ occLevels, x, y, z int, f Face, nx, ny, nz float32, corners [4][3]float32) {
	idR, idG, idB := EncodePickID(x, y, z, f)
	for i, ci := range quadOrder {
		p := corners[ci]
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		sr, sg, sb := shade(r, g, b, occ[ci])
		m.Colors = append(m.Colors, sr, sg, sb)
		m.Normals = append(m.Normals, nx, ny, nz)
		m.PickIDs = append(m.PickIDs, idR, idG, idB)
		m.UVs = append(m.UVs, quadUVs[i][0], quadUVs[i][1])
	}
}
