// Package grid provides the coordinate primitives of the playfield.
package grid

import "fmt"

// Point is a single grid cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point offset by the given delta.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a square playfield of Size x Size cells.
type Grid struct {
	Size int
}

// Contains returns true if p lies within [0, Size) on both axes.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Cells returns the total number of cells in the grid.
func (g Grid) Cells() int {
	return g.Size * g.Size
}
