package main

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// cell rounds a point to the terminal cell it falls in.
func (p Point) cell() point {
	return point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Shape is a polygon: vertices in drawing order plus a finished flag.
// Vertices are only ever appended.
type Shape struct {
	ID       string  `json:"id"`
	Vertices []Point `json:"vertices"`
	Finished bool    `json:"finished"`
}

func NewShape(id string) *Shape {
	return &Shape{
		ID:       id,
		Vertices: make([]Point, 0, 4),
	}
}

func (s *Shape) AddVertex(p Point) {
	s.Vertices = append(s.Vertices, p)
}

func (s *Shape) CanFinish() bool {
	return len(s.Vertices) >= minShapeVertices
}

// Finish marks the shape finished. It reports false and leaves the shape
// open when there are fewer than minShapeVertices vertices.
func (s *Shape) Finish() bool {
	if !s.CanFinish() {
		return false
	}
	s.Finished = true
	return true
}

func (s *Shape) LastVertex() (Point, bool) {
	if len(s.Vertices) == 0 {
		return Point{}, false
	}
	return s.Vertices[len(s.Vertices)-1], true
}

func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Vertices = make([]Point, len(s.Vertices))
	copy(clone.Vertices, s.Vertices)
	return &clone
}

// Bounds returns the min and max corners of the shape's vertices.
func (s *Shape) Bounds() (min, max Point, ok bool) {
	if len(s.Vertices) == 0 {
		return Point{}, Point{}, false
	}
	min, max = s.Vertices[0], s.Vertices[0]
	for _, v := range s.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max, true
}

// Area is the absolute shoelace area of the closed polygon.
func (s *Shape) Area() float64 {
	n := len(s.Vertices)
	if n < minShapeVertices {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := s.Vertices[i]
		b := s.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i := range shapes {
		out[i] = *shapes[i].Clone()
	}
	return out
}

// drawingBounds covers every vertex of the finished shapes and the
// in-progress shape.
func drawingBounds(shapes []Shape, inProgress *Shape) (min, max Point, ok bool) {
	all := shapes
	if inProgress != nil {
		all = append(all[:len(all):len(all)], *inProgress)
	}
	for i := range all {
		lo, hi, has := all[i].Bounds()
		if !has {
			continue
		}
		if !ok {
			min, max, ok = lo, hi, true
			continue
		}
		min.X = math.Min(min.X, lo.X)
		min.Y = math.Min(min.Y, lo.Y)
		max.X = math.Max(max.X, hi.X)
		max.Y = math.Max(max.Y, hi.Y)
	}
	return min, max, ok
}
