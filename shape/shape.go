// Package shape provides plain geometric records and the descriptors
// that bind deserialized data to them.
package shape

import "math"

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

// Rectangle is an immutable width and height.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRectangle returns a rectangle with the given sides. Inputs are not
// validated; negative and NaN sides pass through to Area.
func NewRectangle(width, height float64) Rectangle {
	return Rectangle{Width: width, Height: height}
}

// Area returns Width * Height.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// Circle is an immutable radius.
type Circle struct {
	Radius float64 `json:"radius"`
}

// NewCircle returns a circle with the given radius.
func NewCircle(radius float64) Circle {
	return Circle{Radius: radius}
}

// Area returns π r².
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Circumference returns 2π r.
func (c Circle) Circumference() float64 {
	return 2 * math.Pi * c.Radius
}
