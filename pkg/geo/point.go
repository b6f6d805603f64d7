package geo

import "math"

// Point2D is a position on the ground plane (Y is up in the 3D scene graph).
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Origin is the zero point.
var Origin = Point2D{0, 0}

// Pt is a shorthand constructor for Point2D.
func Pt(x, z float64) Point2D {
	return Point2D{X: x, Z: z}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Z * s}
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Z-q.Z)
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{
		X: p.X + (q.X-p.X)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point2D) Point2D {
	return p.Lerp(q, 0.5)
}

// Rect is an axis-aligned rectangle on the ground plane.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// RectAround returns the rectangle of the given size centered on c.
func RectAround(c Point2D, sizeX, sizeZ float64) Rect {
	return Rect{
		Min: Point2D{c.X - sizeX/2, c.Z - sizeZ/2},
		Max: Point2D{c.X + sizeX/2, c.Z + sizeZ/2},
	}
}

// Center returns the midpoint of r.
func (r Rect) Center() Point2D {
	return MidPoint(r.Min, r.Max)
}

// Width returns the X extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Depth returns the Z extent.
func (r Rect) Depth() float64 { return r.Max.Z - r.Min.Z }

// Bounds returns the smallest rectangle containing every point.
// The zero Rect is returned for an empty slice.
func Bounds(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Z = math.Min(r.Min.Z, p.Z)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Z = math.Max(r.Max.Z, p.Z)
	}
	return r
}
