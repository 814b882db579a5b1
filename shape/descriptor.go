package shape

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pawk0/core-js-101/interchange"
)

// RectangleDescriptor binds "width" and "height" fields to a Rectangle.
// Missing or non-numeric fields become NaN.
type RectangleDescriptor struct{}

// Name returns "Rectangle".
func (RectangleDescriptor) Name() string { return "Rectangle" }

// Bind reads the sides from fields.
func (RectangleDescriptor) Bind(fields *interchange.Object) Rectangle {
	w, _ := fields.Number("width")
	h, _ := fields.Number("height")
	return NewRectangle(w, h)
}

// CircleDescriptor binds a "radius" field to a Circle.
type CircleDescriptor struct{}

// Name returns "Circle".
func (CircleDescriptor) Name() string { return "Circle" }

// Bind reads the radius from fields.
func (CircleDescriptor) Bind(fields *interchange.Object) Circle {
	r, _ := fields.Number("radius")
	return NewCircle(r)
}

// AsShape widens a descriptor of a concrete shape to one returning the
// Shape interface.
func AsShape[T Shape](d interchange.Descriptor[T]) interchange.Descriptor[Shape] {
	return shapeDescriptor[T]{inner: d}
}

type shapeDescriptor[T Shape] struct {
	inner interchange.Descriptor[T]
}

func (d shapeDescriptor[T]) Name() string { return d.inner.Name() }

func (d shapeDescriptor[T]) Bind(fields *interchange.Object) Shape {
	return d.inner.Bind(fields)
}

var descriptors = map[string]interchange.Descriptor[Shape]{
	"rectangle": AsShape[Rectangle](RectangleDescriptor{}),
	"circle":    AsShape[Circle](CircleDescriptor{}),
}

// Lookup returns the descriptor registered under name, case-insensitively.
func Lookup(name string) (interchange.Descriptor[Shape], error) {
	if d, ok := descriptors[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown shape %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the registered descriptor names, sorted.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
