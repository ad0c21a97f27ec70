package editor

import (
	"github.com/voxelforge/voxedit/pkg/voxel"
)

// DrawTool places a voxel of the palette colour next to the clicked face,
// or at the target itself when no face was hit (first voxel on the grid
// plane). It never overwrites the clicked voxel.
type DrawTool struct {
	NopTool
	palette Palette
}

// NewDrawTool returns a draw tool using the given palette.
func NewDrawTool(p Palette) *DrawTool {
	return &DrawTool{palette: p}
}

// Name implements Tool.
func (*DrawTool) Name() string { return "Draw" }

// Activate implements Tool.
func (d *DrawTool) Activate(t Target) {
	if x, y, z, ok := t.Neighbour(); ok {
		t.Frames.Set(x, y, z, d.palette.Colour())
		return
	}
	t.Frames.Set(t.X, t.Y, t.Z, d.palette.Colour())
}

// Drag implements Tool: drawing continues across a drag.
func (d *DrawTool) Drag(t Target) { d.Activate(t) }

// EraseTool clears the clicked voxel.
type EraseTool struct {
	NopTool
}

// NewEraseTool returns an erase tool.
func NewEraseTool() *EraseTool { return &EraseTool{} }

// Name implements Tool.
func (*EraseTool) Name() string { return "Erase" }

// Activate implements Tool.
func (*EraseTool) Activate(t Target) {
	if !t.HasFace {
		return
	}
	t.Frames.Set(t.X, t.Y, t.Z, voxel.Empty)
}

// Drag implements Tool.
func (e *EraseTool) Drag(t Target) { e.Activate(t) }

// PaintTool recolours the clicked voxel without changing structure.
type PaintTool struct {
	NopTool
	palette Palette
}

// NewPaintTool returns a paint tool using the given palette.
func NewPaintTool(p Palette) *PaintTool {
	return &PaintTool{palette: p}
}

// Name implements Tool.
func (*PaintTool) Name() string { return "Paint" }

// Activate implements Tool.
func (p *PaintTool) Activate(t Target) {
	if !t.HasFace {
		return
	}
	if t.Frames.Get(t.X, t.Y, t.Z) == voxel.Empty {
		return
	}
	t.Frames.Set(t.X, t.Y, t.Z, p.palette.Colour())
}

// Drag implements Tool.
func (p *PaintTool) Drag(t Target) { p.Activate(t) }

// ColourPickTool reads the clicked voxel's colour back into the palette.
type ColourPickTool struct {
	NopTool
	palette Palette
}

// NewColourPickTool returns a colour pick tool writing to the palette.
func NewColourPickTool(p Palette) *ColourPickTool {
	return &ColourPickTool{palette: p}
}

// Name implements Tool.
func (*ColourPickTool) Name() string { return "Colour Pick" }

// Activate implements Tool.
func (c *ColourPickTool) Activate(t Target) {
	if !t.HasFace {
		return
	}
	if col := t.Frames.Get(t.X, t.Y, t.Z); col != voxel.Empty {
		c.palette.SetColour(col)
	}
}

// FillTool recolours the connected region of voxels sharing the clicked
// voxel's colour, spreading through the six face neighbours.
type FillTool struct {
	NopTool
	palette Palette
}

// NewFillTool returns a fill tool using the given palette.
func NewFillTool(p Palette) *FillTool {
	return &FillTool{palette: p}
}

// Name implements Tool.
func (*FillTool) Name() string { return "Fill" }

// Activate implements Tool.
func (f *FillTool) Activate(t Target) {
	if !t.HasFace {
		return
	}
	from := t.Frames.Get(t.X, t.Y, t.Z)
	to := f.palette.Colour()
	if from == voxel.Empty || from == to {
		return
	}

	stack := []voxel.Coord{{X: t.X, Y: t.Y, Z: t.Z}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.Frames.Get(c.X, c.Y, c.Z) != from {
			continue
		}
		t.Frames.Set(c.X, c.Y, c.Z, to)
		stack = append(stack,
			voxel.Coord{X: c.X + 1, Y: c.Y, Z: c.Z},
			voxel.Coord{X: c.X - 1, Y: c.Y, Z: c.Z},
			voxel.Coord{X: c.X, Y: c.Y + 1, Z: c.Z},
			voxel.Coord{X: c.X, Y: c.Y - 1, Z: c.Z},
			voxel.Coord{X: c.X, Y: c.Y, Z: c.Z + 1},
			voxel.Coord{X: c.X, Y: c.Y, Z: c.Z - 1},
		)
	}
}

// DragTool translates the whole model as the pointer moves, one voxel step
// at a time along the dominant pointer axis.
type DragTool struct {
	NopTool
	lastX, lastY int
	dragging     bool
	// StepPixels is how far the pointer travels per one-voxel step.
	StepPixels int
}

// NewDragTool returns a model drag tool.
func NewDragTool() *DragTool {
	return &DragTool{StepPixels: 16}
}

// Name implements Tool.
func (*DragTool) Name() string { return "Move Model" }

// DragStart implements Tool.
func (d *DragTool) DragStart(t Target) {
	d.lastX, d.lastY = t.MouseX, t.MouseY
	d.dragging = true
}

// Drag implements Tool.
func (d *DragTool) Drag(t Target) {
	if !d.dragging {
		return
	}
	dx := t.MouseX - d.lastX
	dy := t.MouseY - d.lastY
	tx, ty := 0, 0
	if dx >= d.StepPixels {
		tx = 1
	} else if dx <= -d.StepPixels {
		tx = -1
	}
	if dy >= d.StepPixels {
		ty = -1
	} else if dy <= -d.StepPixels {
		ty = 1
	}
	if tx == 0 && ty == 0 {
		return
	}
	d.lastX, d.lastY = t.MouseX, t.MouseY
	t.Frames.Translate(tx, ty, 0)
}

// DragEnd implements Tool.
func (d *DragTool) DragEnd(Target) { d.dragging = false }

// Cancel implements Tool.
func (d *DragTool) Cancel() { d.dragging = false }
