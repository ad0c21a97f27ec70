package render

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/voxelforge/voxedit/internal/editor"
	"github.com/voxelforge/voxedit/pkg/geom"
	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Viewer renders the current animation frame into the window and routes
// pointer events through the pick buffer to the active tool.
type Viewer struct {
	window *Window
	log    *zap.Logger

	frames *voxel.FrameSet
	tools  *editor.Registry
	opts   voxel.Options

	meshProgram uint32
	pickProgram uint32
	meshMVP     int32
	pickMVP     int32

	vao         uint32
	vbos        [4]uint32
	vertexCount int32

	// Orbit camera state.
	yaw, pitch, dist float32

	dirty bool
}

// Buffer slots bound to the vertex attribute locations of both programs.
const (
	bufPositions = iota
	bufColors
	bufNormals
	bufPickIDs
)

// NewViewer initializes OpenGL state for the given window. The window's
// context must be current.
func NewViewer(w *Window, frames *voxel.FrameSet, tools *editor.Registry, opts voxel.Options, log *zap.Logger) (*Viewer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	v := &Viewer{
		window: w,
		log:    log,
		frames: frames,
		tools:  tools,
		opts:   opts,
		yaw:    0.6,
		pitch:  0.5,
		dist:   float32(frames.Width()+frames.Depth()) * 1.2,
		dirty:  true,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CW)
	gl.ClearColor(0.12, 0.12, 0.15, 1.0)

	var err error
	if v.meshProgram, err = compileProgram(meshVertexSrc, meshFragmentSrc); err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	if v.pickProgram, err = compileProgram(pickVertexSrc, pickFragmentSrc); err != nil {
		return nil, fmt.Errorf("pick program: %w", err)
	}
	v.meshMVP = uniform(v.meshProgram, "uMVP")
	v.pickMVP = uniform(v.pickProgram, "uMVP")

	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)
	gl.GenBuffers(int32(len(v.vbos)), &v.vbos[0])

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufPositions])
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufColors])
	gl.VertexAttribPointer(1, 3, gl.UNSIGNED_BYTE, true, 0, nil)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufNormals])
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufPickIDs])
	gl.VertexAttribPointer(3, 3, gl.UNSIGNED_BYTE, true, 0, nil)
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)

	return v, nil
}

// Close frees GPU resources.
func (v *Viewer) Close() {
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
	}
	if v.vbos[0] != 0 {
		gl.DeleteBuffers(int32(len(v.vbos)), &v.vbos[0])
	}
	if v.meshProgram != 0 {
		gl.DeleteProgram(v.meshProgram)
	}
	if v.pickProgram != 0 {
		gl.DeleteProgram(v.pickProgram)
	}
}

// Invalidate marks the mesh stale; it is rebuilt before the next draw.
func (v *Viewer) Invalidate() { v.dirty = true }

// uploadMesh rebuilds the mesh for the current frame and uploads it.
func (v *Viewer) uploadMesh() {
	m := voxel.BuildMesh(v.frames.Current(), v.opts)
	v.vertexCount = int32(m.VertexCount())
	v.dirty = false
	if v.vertexCount == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufPositions])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, gl.Ptr(m.Positions), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufColors])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors), gl.Ptr(m.Colors), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufNormals])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*4, gl.Ptr(m.Normals), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbos[bufPickIDs])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.PickIDs), gl.Ptr(m.PickIDs), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	v.log.Debug("mesh uploaded",
		zap.Int32("vertices", v.vertexCount),
		zap.Int("frame", v.frames.CurrentIndex()),
	)
}

const fovY = float32(math.Pi / 4)

// eye returns the orbit camera position.
func (v *Viewer) eye() geom.Vec3 {
	return orbitEye(v.yaw, v.pitch, v.dist)
}

// orbitEye places the camera on a sphere around the origin: out along +z,
// tilted up by pitch, then swung around the y axis by yaw.
func orbitEye(yaw, pitch, dist float32) geom.Vec3 {
	orbit := geom.RotateY(yaw).Mul(geom.RotateX(-pitch))
	return orbit.TransformPoint(geom.Vec3{Z: dist})
}

// mvp returns the combined projection and orbit-camera view matrix.
func (v *Viewer) mvp() geom.Mat4 {
	width, height := v.window.Size()
	aspect := float32(width) / float32(height)

	proj := geom.Perspective(fovY, aspect, 0.1, 512)
	view := geom.LookAt(v.eye(), geom.Vec3{}, geom.Vec3{Y: 1})
	return proj.Mul(view)
}

// Draw renders the display pass and presents it.
func (v *Viewer) Draw() {
	if v.dirty {
		v.uploadMesh()
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if v.vertexCount > 0 {
		mvp := v.mvp()
		gl.UseProgram(v.meshProgram)
		gl.UniformMatrix4fv(v.meshMVP, 1, false, mvp.Ptr())
		gl.BindVertexArray(v.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, v.vertexCount)
		gl.BindVertexArray(0)
	}
	v.window.SwapBuffers()
}

// Pick renders the identifier pass into the back buffer and reads the
// pixel under the pointer. ok is false when the pointer misses the model.
func (v *Viewer) Pick(mx, my int) (x, y, z int, f voxel.Face, ok bool) {
	if v.dirty {
		v.uploadMesh()
	}

	// White background reads back as the miss sentinel.
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if v.vertexCount > 0 {
		mvp := v.mvp()
		gl.UseProgram(v.pickProgram)
		gl.UniformMatrix4fv(v.pickMVP, 1, false, mvp.Ptr())
		gl.BindVertexArray(v.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, v.vertexCount)
		gl.BindVertexArray(0)
	}
	gl.Flush()

	_, height := v.window.Size()
	var pixel [4]uint8
	gl.ReadPixels(int32(mx), int32(height-my-1), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	gl.ClearColor(0.12, 0.12, 0.15, 1.0)

	return voxel.DecodePickID(pixel[0], pixel[1], pixel[2])
}

// target assembles the tool target for a pointer position. When the pick
// pass misses every voxel it falls back to the grid-plane intersection so
// drawing into empty space still lands on a cell.
func (v *Viewer) target(mx, my int) editor.Target {
	x, y, z, f, ok := v.Pick(mx, my)
	if !ok {
		var onPlane bool
		if x, y, z, onPlane = v.planeHit(mx, my); !onPlane {
			// Out-of-bounds coordinate; every tool soft-fails on it.
			x, y, z = -1, -1, -1
		}
	}
	return editor.Target{
		X: x, Y: y, Z: z,
		Face:    f,
		HasFace: ok,
		Frames:  v.frames,
		MouseX:  mx,
		MouseY:  my,
	}
}

// planeHit casts the pointer ray and intersects it with the world z=0
// plane, the plane the grid is drawn on. ok is false when the ray points
// away from the plane or the hit lies outside the volume.
func (v *Viewer) planeHit(mx, my int) (x, y, z int, ok bool) {
	width, height := v.window.Size()
	aspect := float32(width) / float32(height)
	px := 2*float32(mx)/float32(width) - 1
	py := 1 - 2*float32(my)/float32(height)

	eye := v.eye()
	forward := geom.Vec3{}.Sub(eye).Normalize()
	right := forward.Cross(geom.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	half := float32(math.Tan(float64(fovY) / 2))
	dir := forward.
		Add(right.Scale(px * half * aspect)).
		Add(up.Scale(py * half)).
		Normalize()

	if dir.Z == 0 {
		return 0, 0, 0, false
	}
	s := -eye.Z / dir.Z
	if s <= 0 {
		return 0, 0, 0, false
	}
	hit := eye.Add(dir.Scale(s))

	x, y, z = v.frames.Current().WorldToVoxel(hit.X, hit.Y, hit.Z)
	if x < 0 || y < 0 || z < 0 ||
		x >= v.frames.Width() || y >= v.frames.Height() || z >= v.frames.Depth() {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

// Run drives the event loop until the window is closed. Left button
// events go to the active tool; the right button orbits the camera and
// the wheel zooms.
func (v *Viewer) Run() {
	orbiting := false
	dragging := false
	lastX, lastY := int32(0), int32(0)

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					gl.Viewport(0, 0, e.Data1, e.Data2)
				}

			case *sdl.MouseWheelEvent:
				v.dist -= float32(e.Y) * 2
				if v.dist < 2 {
					v.dist = 2
				}

			case *sdl.MouseButtonEvent:
				switch e.Button {
				case sdl.BUTTON_RIGHT:
					orbiting = e.State == sdl.PRESSED
					lastX, lastY = e.X, e.Y
				case sdl.BUTTON_LEFT:
					tool := v.tools.Active()
					if tool == nil {
						break
					}
					if e.State == sdl.PRESSED {
						dragging = true
						tgt := v.target(int(e.X), int(e.Y))
						tool.DragStart(tgt)
						tool.Activate(tgt)
						v.Invalidate()
					} else if dragging {
						dragging = false
						tool.DragEnd(v.target(int(e.X), int(e.Y)))
						v.Invalidate()
					}
				}

			case *sdl.MouseMotionEvent:
				if orbiting {
					v.yaw += float32(e.X-lastX) * 0.01
					v.pitch += float32(e.Y-lastY) * 0.01
					if v.pitch > 1.5 {
						v.pitch = 1.5
					}
					if v.pitch < -1.5 {
						v.pitch = -1.5
					}
					lastX, lastY = e.X, e.Y
				} else if dragging {
					if tool := v.tools.Active(); tool != nil {
						tool.Drag(v.target(int(e.X), int(e.Y)))
						v.Invalidate()
					}
				}

			case *sdl.KeyboardEvent:
				if e.State == sdl.PRESSED {
					v.handleKey(e.Keysym.Sym)
				}
			}
		}

		v.Draw()
		sdl.Delay(15)
	}
}

func (v *Viewer) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_z:
		v.frames.Undo()
		v.Invalidate()
	case sdl.K_y:
		v.frames.Redo()
		v.Invalidate()
	case sdl.K_LEFTBRACKET:
		v.frames.PrevFrame()
		v.Invalidate()
	case sdl.K_RIGHTBRACKET:
		v.frames.NextFrame()
		v.Invalidate()
	case sdl.K_1, sdl.K_2, sdl.K_3, sdl.K_4, sdl.K_5, sdl.K_6, sdl.K_7, sdl.K_8, sdl.K_9:
		idx := int(key - sdl.K_1)
		tools := v.tools.Tools()
		if idx < len(tools) {
			name := tools[idx].Name()
			v.tools.Select(name)
			v.log.Info("tool selected", zap.String("tool", name))
		}
	}
}
