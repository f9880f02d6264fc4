package maze

import (
	"fmt"
	"image"
)

// Coord is a tile address: X is the column, Y the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

// Add returns the coordinate shifted by (dx, dy).
func (c Coord) Add(dx, dy int) Coord { return Coord{X: c.X + dx, Y: c.Y + dy} }

// Step returns the neighboring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Less orders coordinates by X, then Y.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Geometry maps tile coordinates to pixel space.
type Geometry struct {
	// TileSize is the edge length of a tile in pixels.
	TileSize int
	// Offset is the pixel position of tile (0,0)'s top-left corner.
	Offset image.Point
}

// DefaultGeometry returns 16px tiles with no offset.
func DefaultGeometry() Geometry {
	return Geometry{TileSize: DefaultTileSize}
}

// Rect returns the pixel rectangle covered by tile c.
func (g Geometry) Rect(c Coord) image.Rectangle {
	tl := image.Pt(c.X*g.TileSize, c.Y*g.TileSize).Add(g.Offset)
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(g.TileSize, g.TileSize))}
}

// Center returns the pixel centre of tile c.
func (g Geometry) Center(c Coord) image.Point {
	half := g.TileSize / 2
	return g.Rect(c).Min.Add(image.Pt(half, half))
}

// MidTop returns the midpoint of the top edge of tile c.
func (g Geometry) MidTop(c Coord) image.Point {
	r := g.Rect(c)
	return image.Pt(r.Min.X+g.TileSize/2, r.Min.Y)
}

// MidBottom returns the midpoint of the bottom edge of tile c.
func (g Geometry) MidBottom(c Coord) image.Point {
	r := g.Rect(c)
	return image.Pt(r.Min.X+g.TileSize/2, r.Max.Y)
}

// MidLeft returns the midpoint of the left edge of tile c.
func (g Geometry) MidLeft(c Coord) image.Point {
	r := g.Rect(c)
	return image.Pt(r.Min.X, r.Min.Y+g.TileSize/2)
}

// MidRight returns the midpoint of the right edge of tile c.
func (g Geometry) MidRight(c Coord) image.Point {
	r := g.Rect(c)
	return image.Pt(r.Max.X, r.Min.Y+g.TileSize/2)
}
