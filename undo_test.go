package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openShape(id string, pts ...Point) *Shape {
	s := NewShape(id)
	for _, p := range pts {
		s.AddVertex(p)
	}
	return s
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Index())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	snap := h.Current()
	assert.Empty(t, snap.Shapes)
	assert.Nil(t, snap.InProgress)
}

func TestHistory_UndoRedoBoundaries(t *testing.T) {
	h := NewHistory()

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Index())

	h.Push(nil, openShape("a", Point{1, 1}))
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Nil(t, snap.InProgress)
	assert.True(t, h.CanRedo())

	snap, ok = h.Redo()
	require.True(t, ok)
	require.NotNil(t, snap.InProgress)
	assert.Len(t, snap.InProgress.Vertices, 1)

	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 1, h.Index())
}

func TestHistory_LinearTruncation(t *testing.T) {
	h := NewHistory()
	shape := NewShape("a")
	for i := 0; i < 5; i++ {
		shape.AddVertex(Point{X: float64(i), Y: 0})
		h.Push(nil, shape)
	}
	require.Equal(t, 6, h.Len())

	for i := 0; i < 3; i++ {
		_, ok := h.Undo()
		require.True(t, ok)
	}
	i := h.Index()
	require.Equal(t, 2, i)

	h.Push([]Shape{}, nil)

	assert.Equal(t, i+2, h.Len())
	assert.Equal(t, i+1, h.Index())
	assert.False(t, h.CanRedo())
	_, ok := h.Redo()
	assert.False(t, ok)
	assert.Nil(t, h.Current().InProgress)
}

func TestHistory_SnapshotIsolation(t *testing.T) {
	h := NewHistory()
	live := openShape("a", Point{0, 0}, Point{1, 0})
	shapes := []Shape{*openShape("done", Point{0, 0}, Point{1, 1}, Point{2, 0})}

	h.Push(shapes, live)

	live.AddVertex(Point{2, 2})
	shapes[0].Vertices[0] = Point{9, 9}

	snap := h.Current()
	assert.Len(t, snap.InProgress.Vertices, 2)
	assert.Equal(t, Point{0, 0}, snap.Shapes[0].Vertices[0])

	// Snapshots handed out are copies too.
	snap.InProgress.AddVertex(Point{5, 5})
	_, _ = h.Undo()
	again, ok := h.Redo()
	require.True(t, ok)
	assert.Len(t, again.InProgress.Vertices, 2)
}

func TestHistory_ConsolidateFrom(t *testing.T) {
	h := NewHistory()
	shape := NewShape("a")
	for i := 0; i < 4; i++ {
		shape.AddVertex(Point{X: float64(i), Y: float64(i % 2)})
		h.Push(nil, shape)
	}
	require.Equal(t, 5, h.Len())

	h.ConsolidateFrom(0)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Index())
	assert.False(t, h.CanRedo())

	h.Push([]Shape{*shape}, nil)
	assert.Equal(t, 2, h.Len())

	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Empty(t, snap.Shapes)
	assert.Nil(t, snap.InProgress)
}

func TestHistory_ConsolidateFromClampsOrigin(t *testing.T) {
	h := NewHistory()
	h.Push(nil, openShape("a", Point{0, 0}))
	h.Push(nil, openShape("a", Point{0, 0}, Point{1, 1}))

	h.ConsolidateFrom(10)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())

	h.ConsolidateFrom(-3)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Index())
}

func TestHistory_OpenShapeOrigin(t *testing.T) {
	h := NewHistory()
	done := []Shape{*openShape("a", Point{0, 0}, Point{1, 0}, Point{0, 1})}
	done[0].Finished = true
	h.Push(done, nil)
	h.Push(done, openShape("b", Point{3, 3}))
	h.Push(done, openShape("b", Point{3, 3}, Point{4, 4}))

	assert.Equal(t, 1, h.OpenShapeOrigin())

	_, _ = h.Undo()
	_, _ = h.Undo()
	assert.Equal(t, 1, h.OpenShapeOrigin())

	_, _ = h.Undo()
	assert.Equal(t, 0, h.OpenShapeOrigin())
}
