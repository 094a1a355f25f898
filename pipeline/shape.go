package pipeline

import (
	"fmt"
	"strings"
)

// Shape records which ends of a pipeline are bound to a source or a sink.
type Shape uint8

const (
	ShapeOpen Shape = iota + 1
	ShapeLeftClosed
	ShapeRightClosed
	ShapeClosed
)

func (s Shape) String() string {
	switch s {
	case ShapeOpen:
		return "open"
	case ShapeLeftClosed:
		return "left_closed"
	case ShapeRightClosed:
		return "right_closed"
	case ShapeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseShape accepts the names produced by Shape.String.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return ShapeOpen, nil
	case "left_closed":
		return ShapeLeftClosed, nil
	case "right_closed":
		return ShapeRightClosed, nil
	case "closed":
		return ShapeClosed, nil
	default:
		return 0, fmt.Errorf("shape %q: want open, left_closed, right_closed or closed", s)
	}
}

// SourceBound reports whether the pipeline starts with a source.
func (s Shape) SourceBound() bool { return s == ShapeLeftClosed || s == ShapeClosed }

// SinkBound reports whether the pipeline ends with a sink.
func (s Shape) SinkBound() bool { return s == ShapeRightClosed || s == ShapeClosed }

func shapeOf(sourceBound, sinkBound bool) Shape {
	switch {
	case sourceBound && sinkBound:
		return ShapeClosed
	case sourceBound:
		return ShapeLeftClosed
	case sinkBound:
		return ShapeRightClosed
	default:
		return ShapeOpen
	}
}

// joinShape is the composition table. Anything not listed cannot be joined:
// the left side must end open and the right side must start open.
func joinShape(left, right Shape) (Shape, bool) {
	if left.SinkBound() || right.SourceBound() || left == 0 || right == 0 {
		return 0, false
	}
	return shapeOf(left.SourceBound(), right.SinkBound()), true
}

// invertShape swaps which end is bound.
func invertShape(s Shape) Shape {
	return shapeOf(s.SinkBound(), s.SourceBound())
}
