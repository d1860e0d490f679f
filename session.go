package main

import (
	"errors"

	"github.com/google/uuid"
)

var (
	errNoRenderer       = errors.New("session: renderer is required")
	errNoAffordanceSink = errors.New("session: affordance sink is required")
)

// Renderer draws the current drawing. preview is nil when there is no
// guide line to show.
type Renderer interface {
	Render(shapes []Shape, inProgress *Shape, preview *Point)
}

// AffordanceSink is told after every transition whether undo and redo are
// currently possible.
type AffordanceSink interface {
	SetAffordances(canUndo, canRedo bool)
}

type Event struct {
	Kind  EventKind
	Point Point
}

// Session owns the working drawing and its history. All methods are meant
// to be called from a single event loop.
type Session struct {
	shapes     []Shape
	inProgress *Shape
	preview    *Point
	origin     int

	history     *History
	renderer    Renderer
	affordances AffordanceSink
	newID       func() string
}

func NewSession(renderer Renderer, affordances AffordanceSink) (*Session, error) {
	if renderer == nil {
		return nil, errNoRenderer
	}
	if affordances == nil {
		return nil, errNoAffordanceSink
	}
	s := &Session{
		shapes:      []Shape{},
		history:     NewHistory(),
		renderer:    renderer,
		affordances: affordances,
		newID:       uuid.NewString,
	}
	s.publish()
	return s, nil
}

func (s *Session) State() SessionState {
	if s.inProgress != nil {
		return StateBuilding
	}
	return StateIdle
}

// Dispatch routes an input event to the matching transition and reports
// whether it changed anything.
func (s *Session) Dispatch(ev Event) bool {
	switch ev.Kind {
	case EventPrimary:
		s.AddVertex(ev.Point)
		return true
	case EventSecondary:
		return s.FinishShape()
	case EventPointerMove:
		return s.MovePointer(ev.Point)
	case EventUndo:
		return s.Undo()
	case EventRedo:
		return s.Redo()
	case EventClear:
		s.Clear()
		return true
	}
	return false
}

// AddVertex appends p to the shape under construction, starting a new
// shape first when idle.
func (s *Session) AddVertex(p Point) {
	if s.inProgress == nil {
		s.inProgress = NewShape(s.newID())
		s.origin = s.history.Index()
		logger.Debug("shape started", "id", s.inProgress.ID, "origin", s.origin)
	}
	s.inProgress.AddVertex(p)
	s.history.Push(s.shapes, s.inProgress)
	logger.Debug("vertex added", "point", p, "vertices", len(s.inProgress.Vertices), "index", s.history.Index())
	s.publish()
}

// FinishShape closes the shape under construction. It is a no-op unless
// the shape has at least minShapeVertices vertices.
func (s *Session) FinishShape() bool {
	if s.inProgress == nil || !s.inProgress.Finish() {
		return false
	}
	finished := s.inProgress
	s.shapes = append(s.shapes, *finished)
	s.inProgress = nil
	s.preview = nil

	s.history.ConsolidateFrom(s.origin)
	s.history.Push(s.shapes, nil)
	logger.Debug("shape finished", "id", finished.ID, "vertices", len(finished.Vertices), "shapes", len(s.shapes), "index", s.history.Index())
	s.publish()
	return true
}

// MovePointer updates the preview point while a shape with at least one
// vertex is open. The preview never enters history.
func (s *Session) MovePointer(p Point) bool {
	if s.inProgress == nil || len(s.inProgress.Vertices) == 0 {
		return false
	}
	s.preview = &p
	s.publish()
	return true
}

func (s *Session) Clear() {
	s.shapes = []Shape{}
	s.inProgress = nil
	s.preview = nil
	s.history.Push(s.shapes, nil)
	logger.Debug("drawing cleared", "index", s.history.Index())
	s.publish()
}

func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	logger.Debug("undo", "index", s.history.Index(), "shapes", len(s.shapes))
	return true
}

func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	logger.Debug("redo", "index", s.history.Index(), "shapes", len(s.shapes))
	return true
}

func (s *Session) restore(snap Snapshot) {
	s.shapes = snap.Shapes
	s.inProgress = snap.InProgress
	s.preview = nil
	if s.inProgress != nil {
		s.origin = s.history.OpenShapeOrigin()
	}
	s.publish()
}

func (s *Session) publish() {
	s.renderer.Render(s.shapes, s.inProgress, s.preview)
	s.affordances.SetAffordances(s.history.CanUndo(), s.history.CanRedo())
}

// Shapes returns a copy of the finished shapes.
func (s *Session) Shapes() []Shape {
	return cloneShapes(s.shapes)
}

// InProgress returns a copy of the shape under construction, or nil.
func (s *Session) InProgress() *Shape {
	return s.inProgress.Clone()
}

func (s *Session) Preview() (Point, bool) {
	if s.preview == nil {
		return Point{}, false
	}
	return *s.preview, true
}

func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

func (s *Session) History() *History {
	return s.history
}
