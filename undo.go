package main

// Snapshot is an independent copy of the drawing at one point in history.
type Snapshot struct {
	Shapes     []Shape
	InProgress *Shape
}

func newSnapshot(shapes []Shape, inProgress *Shape) Snapshot {
	return Snapshot{
		Shapes:     cloneShapes(shapes),
		InProgress: inProgress.Clone(),
	}
}

func (s Snapshot) Clone() Snapshot {
	return newSnapshot(s.Shapes, s.InProgress)
}

// History is a linear snapshot timeline with a cursor. It always holds at
// least one snapshot and 0 <= index < len(snapshots).
type History struct {
	snapshots []Snapshot
	index     int
}

func NewHistory() *History {
	return &History{
		snapshots: []Snapshot{newSnapshot(nil, nil)},
	}
}

// Push records a copy of the given state after the current index, dropping
// any redo entries.
func (h *History) Push(shapes []Shape, inProgress *Shape) {
	h.snapshots = append(h.snapshots[:h.index+1], newSnapshot(shapes, inProgress))
	h.index = len(h.snapshots) - 1
}

func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.index--
	return h.snapshots[h.index].Clone(), true
}

func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.index++
	return h.snapshots[h.index].Clone(), true
}

// ConsolidateFrom rewinds the timeline to origin and discards everything
// recorded after it. Finishing a shape calls this with the index at which
// the shape was started, so the whole construction becomes one undo step.
func (h *History) ConsolidateFrom(origin int) {
	if origin < 0 {
		origin = 0
	}
	if origin >= len(h.snapshots) {
		origin = len(h.snapshots) - 1
	}
	h.snapshots = h.snapshots[:origin+1]
	h.index = origin
}

func (h *History) CanUndo() bool {
	return h.index > 0
}

func (h *History) CanRedo() bool {
	return h.index < len(h.snapshots)-1
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Index() int {
	return h.index
}

func (h *History) Current() Snapshot {
	return h.snapshots[h.index].Clone()
}

// OpenShapeOrigin returns the index of the newest snapshot at or before the
// current one that has no shape under construction. While a shape is open
// that is the point at which it was started.
func (h *History) OpenShapeOrigin() int {
	for i := h.index; i > 0; i-- {
		if h.snapshots[i].InProgress == nil {
			return i
		}
	}
	return 0
}
