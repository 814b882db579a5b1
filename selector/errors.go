package selector

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicatePart     = errors.New("element, id and pseudo-element should not occur more than one time inside the selector")
	ErrOutOfOrder        = errors.New("selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element")
	ErrUnknownCombinator = errors.New("unknown combinator")
	ErrInvalidKind       = errors.New("not a fragment kind")
)

// DuplicatePartError reports a second element, id or pseudo-element in
// one compound selector.
type DuplicatePartError struct {
	Kind Kind
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("selector: duplicate %s: %s", e.Kind, ErrDuplicatePart)
}

func (e *DuplicatePartError) Unwrap() error { return ErrDuplicatePart }

// OutOfOrderError reports a fragment appended after a fragment of a
// kind that must follow it.
type OutOfOrderError struct {
	Kind  Kind // the rejected kind
	After Kind // the last kind already in the compound selector
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("selector: %s after %s: %s", e.Kind, e.After, ErrOutOfOrder)
}

func (e *OutOfOrderError) Unwrap() error { return ErrOutOfOrder }

// CombinatorError reports a combinator symbol outside " ", ">", "+", "~".
type CombinatorError struct {
	Symbol string
}

func (e *CombinatorError) Error() string {
	return fmt.Sprintf("selector: %s %q", ErrUnknownCombinator, e.Symbol)
}

func (e *CombinatorError) Unwrap() error { return ErrUnknownCombinator }
