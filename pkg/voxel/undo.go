package voxel

// Op identifies the kind of operation an UndoItem reverses.
type Op uint8

// Recorded operation kinds. Structural operations (resize, rotate, expand)
// are not undoable by design and never appear in the buffer.
const (
	OpSetVoxel Op = iota + 1
	OpTranslate
)

// State is one endpoint of a recorded operation. For OpSetVoxel it is a
// voxel coordinate and color; for OpTranslate X/Y/Z hold the delta and
// Color is unused.
type State struct {
	X, Y, Z int
	Color   uint32
}

// UndoItem records a reversible operation as its before and after state.
type UndoItem struct {
	Op  Op
	Old State
	New State
}

// UndoBuffer is an append/pointer log of undo items. The pointer addresses
// the most recent applied entry; -1 means nothing to undo. The buffer never
// mutates a volume itself: callers replay Old/New through the normal
// mutating calls with recording suppressed.
type UndoBuffer struct {
	items []UndoItem
	ptr   int
}

// Add appends an item. Any redo entries beyond the pointer are stale once a
// new edit is made and are discarded first.
func (b *UndoBuffer) Add(item UndoItem) {
	if b.ptr < len(b.items)-1 {
		b.items = b.items[:b.ptr+1]
	}
	b.items = append(b.items, item)
	b.ptr = len(b.items) - 1
}

// Undo returns the entry at the pointer and steps the pointer back,
// flooring at -1. ok is false when the log is empty.
func (b *UndoBuffer) Undo() (item UndoItem, ok bool) {
	if len(b.items) == 0 {
		return UndoItem{}, false
	}
	if b.ptr < 0 {
		return UndoItem{}, false
	}
	item = b.items[b.ptr]
	b.ptr--
	return item, true
}

// Redo advances the pointer, capped at the last index, and returns the
// entry it now addresses if that entry had been undone.
func (b *UndoBuffer) Redo() (item UndoItem, ok bool) {
	if len(b.items) == 0 {
		return UndoItem{}, false
	}
	if b.ptr >= len(b.items)-1 {
		b.ptr = len(b.items) - 1
		return UndoItem{}, false
	}
	b.ptr++
	return b.items[b.ptr], true
}

// Clear discards all history.
func (b *UndoBuffer) Clear() {
	b.items = nil
	b.ptr = -1
}

// Len returns the number of recorded items.
func (b *UndoBuffer) Len() int { return len(b.items) }
