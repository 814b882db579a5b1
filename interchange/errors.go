package interchange

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle classifies serialization failures caused by a value that
	// contains itself.
	ErrCycle = errors.New("value contains a cycle")

	// ErrUnrepresentable classifies serialization failures caused by a
	// type or number the interchange format cannot represent.
	ErrUnrepresentable = errors.New("value has no interchange representation")
)

// SerializationError reports a value that cannot be serialized.
type SerializationError struct {
	Kind   error  // ErrCycle or ErrUnrepresentable
	Path   string // JSON-path style location of the offending value
	Reason string
}

func (e *SerializationError) Error() string {
	msg := "interchange: " + e.Kind.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *SerializationError) Unwrap() error { return e.Kind }

func cycleAt(path string) error {
	return &SerializationError{Kind: ErrCycle, Path: path}
}

func unrepresentable(path, format string, args ...any) error {
	return &SerializationError{Kind: ErrUnrepresentable, Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Position represents a source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// positionAt converts a byte offset into a 1-based line and column.
func positionAt(input []byte, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	pos := Position{Line: 1, Column: 1, Offset: offset}
	for _, c := range input[:offset] {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// ErrParse classifies every *ParseError.
var ErrParse = errors.New("malformed interchange text")

// ParseError represents a parsing error with location. Pos is the zero
// Position when the underlying decoder does not report one.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	if e.Pos.Line == 0 {
		return "interchange: " + e.Message
	}
	return fmt.Sprintf("interchange: %s at %s", e.Message, e.Pos)
}

func (e *ParseError) Unwrap() error { return ErrParse }
