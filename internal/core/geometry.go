// Package core defines the domain model for the AGV fleet scheduler:
// grid geometry, map elements, AGVs, tasks, and the Context that ties
// them together for a single simulated run.
package core

import "github.com/pkg/errors"

// Point is a cell on the 2D grid.
type Point struct {
	X, Y int
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether q is 4-connected-adjacent to p.
func (p Point) Adjacent(q Point) bool {
	dx, dy := q.X-p.X, q.Y-p.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Manhattan returns the Manhattan distance to q.
func (p Point) Manhattan(q Point) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction is a cardinal heading, canonically represented by its degree
// value. The coordinate system treats +y as "up": Up increases y.
type Direction int

const (
	Right Direction = 0
	Up    Direction = 90
	Left  Direction = 180
	Down  Direction = 270
)

// String renders the direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	default:
		return "Unknown"
	}
}

// Delta returns the unit (dx, dy) step for this heading.
func (d Direction) Delta() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	default:
		return 0, 0
	}
}

// Neighbor returns the point one step from p in this heading.
func (d Direction) Neighbor(p Point) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// ErrNotAdjacent is returned by HeadingTo when the two points are not
// 4-connected neighbors.
var ErrNotAdjacent = errors.New("core: points are not adjacent")

// HeadingTo derives the cardinal heading from p to an adjacent point q.
// It is a programmer error to call this on non-adjacent points.
func HeadingTo(p, q Point) (Direction, error) {
	dx, dy := q.X-p.X, q.Y-p.Y
	switch {
	case dx == 1 && dy == 0:
		return Right, nil
	case dx == -1 && dy == 0:
		return Left, nil
	case dx == 0 && dy == 1:
		return Up, nil
	case dx == 0 && dy == -1:
		return Down, nil
	default:
		return 0, errors.Wrapf(ErrNotAdjacent, "from %v to %v", p, q)
	}
}

// Rect is an axis-aligned bounding rectangle over grid coordinates.
// Invariant: Top >= Bottom, Right >= Left.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Contains reports whether p lies within the rectangle, inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// BoundsOf computes the minimal rectangle containing every point.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Left: points[0].X, Right: points[0].X, Top: points[0].Y, Bottom: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.Left {
			r.Left = p.X
		}
		if p.X > r.Right {
			r.Right = p.X
		}
		if p.Y > r.Top {
			r.Top = p.Y
		}
		if p.Y < r.Bottom {
			r.Bottom = p.Y
		}
	}
	return r
}
