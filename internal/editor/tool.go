// Package editor implements the tool boundary: the opaque target handed to
// editing tools per input event, the face-neighbour table, and the tool
// registry the host application wires tools into.
package editor

import (
	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Target carries everything a tool needs to act on one input event: the
// picked voxel, the face that was hit (if any), a reference to the model
// and the raw pointer coordinates.
type Target struct {
	X, Y, Z int
	Face    voxel.Face
	// HasFace is false when the pick missed every voxel and fell back to
	// the grid plane; Neighbour is unavailable then.
	HasFace bool

	Frames *voxel.FrameSet

	MouseX, MouseY int
}

// Neighbour returns the coordinate of the voxel adjacent to the targeted
// face. Drawing tools place new voxels there instead of overwriting the
// picked one. ok is false when no face was hit.
func (t Target) Neighbour() (x, y, z int, ok bool) {
	if !t.HasFace {
		return 0, 0, 0, false
	}
	dx, dy, dz := t.Face.Offset()
	return t.X + dx, t.Y + dy, t.Z + dz, true
}

// Palette supplies the currently selected drawing colour as a packed
// integer. GUI colour objects are adapted outside the core; tools only
// ever see packed values.
type Palette interface {
	Colour() uint32
	SetColour(c uint32)
}

// Tool reacts to pointer events on the voxel display. Implementations
// embed NopTool and override what they need.
type Tool interface {
	// Name identifies the tool in the registry and host UI.
	Name() string
	// Activate handles a pointer press on a target. A drag starts with
	// DragStart immediately followed by Activate on the same target.
	Activate(t Target)
	// DragStart, Drag and DragEnd handle a pointer drag across targets.
	DragStart(t Target)
	Drag(t Target)
	DragEnd(t Target)
	// Cancel tells the tool to abandon any in-progress state.
	Cancel()
}

// NopTool is a Tool with no behaviour, for embedding.
type NopTool struct{}

func (NopTool) Activate(Target)  {}
func (NopTool) DragStart(Target) {}
func (NopTool) Drag(Target)      {}
func (NopTool) DragEnd(Target)   {}
func (NopTool) Cancel()          {}

// Registry holds the registered tools and the active selection. It is
// owned by the host application and injected into whatever dispatches
// input events; there is no package-level registry.
type Registry struct {
	tools  []Tool
	active int
}

// NewRegistry returns an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{active: -1}
}

// Register adds a tool. The first registered tool becomes active.
func (r *Registry) Register(t Tool) {
	r.tools = append(r.tools, t)
	if r.active < 0 {
		r.active = 0
	}
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool { return r.tools }

// Active returns the selected tool, or nil when none is registered.
func (r *Registry) Active() Tool {
	if r.active < 0 {
		return nil
	}
	return r.tools[r.active]
}

// Select makes the named tool active, cancelling the previous one.
func (r *Registry) Select(name string) bool {
	for i, t := range r.tools {
		if t.Name() == name {
			if cur := r.Active(); cur != nil && i != r.active {
				cur.Cancel()
			}
			r.active = i
			return true
		}
	}
	return false
}
