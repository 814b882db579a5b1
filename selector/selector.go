package selector

import (
	"fmt"
	"strings"
)

// Selector is an immutable sequence of parts. Every method that adds
// to a Selector returns a new one; the receiver and every Selector
// derived from it earlier stay unchanged.
//
// The fluent methods (Element, ID, ...) validate each append. When one
// fails, the Selector it returns carries the error (see Err) and
// ignores every later append; Stringify reports it. Use Add and Join
// to receive the error at the call instead.
//
// The zero Selector is empty and valid.
type Selector struct {
	parts []Part

	// runStart indexes the first part of the trailing compound selector,
	// the only run appends can still extend.
	runStart int

	err error
}

// ============================================================
// Constructors
// ============================================================

// Element returns a selector holding one element (type) fragment.
func Element(text string) Selector { return Selector{}.Element(text) }

// ID returns a selector holding one id fragment.
func ID(text string) Selector { return Selector{}.ID(text) }

// Class returns a selector holding one class fragment.
func Class(text string) Selector { return Selector{}.Class(text) }

// Attr returns a selector holding one attribute fragment.
func Attr(text string) Selector { return Selector{}.Attr(text) }

// PseudoClass returns a selector holding one pseudo-class fragment.
func PseudoClass(text string) Selector { return Selector{}.PseudoClass(text) }

// PseudoElement returns a selector holding one pseudo-element fragment.
func PseudoElement(text string) Selector { return Selector{}.PseudoElement(text) }

// Combine returns a followed by the combinator and b. Each side keeps
// the runs it was validated with; ordering is never checked across the
// combinator. An error on either side, or an unknown combinator, is
// carried by the result.
func Combine(a Selector, combinator string, b Selector) Selector {
	s, err := Join(a, combinator, b)
	if err != nil {
		return Selector{err: err}
	}
	return s
}

// Join is Combine with the error returned at the call.
func Join(a Selector, combinator string, b Selector) (Selector, error) {
	if a.err != nil {
		return Selector{}, a.err
	}
	if b.err != nil {
		return Selector{}, b.err
	}
	c, err := ParseCombinator(combinator)
	if err != nil {
		return Selector{}, err
	}

	parts := make([]Part, 0, len(a.parts)+1+len(b.parts))
	parts = append(parts, a.parts...)
	parts = append(parts, Part{Kind: KindCombinator, Text: string(c)})
	parts = append(parts, b.parts...)

	return Selector{
		parts:    parts,
		runStart: len(a.parts) + 1 + b.runStart,
	}, nil
}

// ============================================================
// Continuations
// ============================================================

// Element appends an element fragment.
func (s Selector) Element(text string) Selector { return s.fluent(KindElement, text) }

// ID appends an id fragment.
func (s Selector) ID(text string) Selector { return s.fluent(KindID, text) }

// Class appends a class fragment.
func (s Selector) Class(text string) Selector { return s.fluent(KindClass, text) }

// Attr appends an attribute fragment; text is the expression between
// the brackets (e.g. `href$=".png"`).
func (s Selector) Attr(text string) Selector { return s.fluent(KindAttribute, text) }

// PseudoClass appends a pseudo-class fragment.
func (s Selector) PseudoClass(text string) Selector { return s.fluent(KindPseudoClass, text) }

// PseudoElement appends a pseudo-element fragment.
func (s Selector) PseudoElement(text string) Selector { return s.fluent(KindPseudoElement, text) }

func (s Selector) fluent(kind Kind, text string) Selector {
	next, err := s.Add(kind, text)
	if err != nil {
		return Selector{parts: s.parts, runStart: s.runStart, err: err}
	}
	return next
}

// Add appends a fragment of the given kind and returns the error at the
// call. A second element, id or pseudo-element in the trailing run
// fails with *DuplicatePartError; a kind that must precede the run's
// last fragment fails with *OutOfOrderError.
func (s Selector) Add(kind Kind, text string) (Selector, error) {
	if s.err != nil {
		return s, s.err
	}
	if !kind.IsFragment() {
		return s, fmt.Errorf("selector: %w: %s", ErrInvalidKind, kind)
	}
	if err := checkAppend(s.parts[s.runStart:], kind); err != nil {
		return s, err
	}

	parts := make([]Part, len(s.parts)+1)
	copy(parts, s.parts)
	parts[len(s.parts)] = Part{Kind: kind, Text: text}

	return Selector{parts: parts, runStart: s.runStart}, nil
}

// checkAppend validates adding kind to a run that already satisfies the
// ordering rules. Duplicates are reported before ordering.
func checkAppend(run []Part, kind Kind) error {
	if unique[kind] {
		for _, p := range run {
			if p.Kind == kind {
				return &DuplicatePartError{Kind: kind}
			}
		}
	}
	if n := len(run); n > 0 {
		last := run[n-1].Kind
		if rank[kind] < rank[last] {
			return &OutOfOrderError{Kind: kind, After: last}
		}
	}
	return nil
}

// ============================================================
// Rendering
// ============================================================

// Err returns the first validation error recorded while building s.
func (s Selector) Err() error {
	return s.err
}

// Stringify renders the selector. It returns the recorded error, if
// any, instead of a partial rendering.
func (s Selector) Stringify() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.render(), nil
}

// String renders the parts accepted so far, ignoring any recorded
// error.
func (s Selector) String() string {
	return s.render()
}

func (s Selector) render() string {
	var b strings.Builder
	for _, p := range s.parts {
		b.WriteString(p.String())
	}
	return b.String()
}

// ============================================================
// Inspection
// ============================================================

// Len returns the number of parts, combinators included.
func (s Selector) Len() int {
	return len(s.parts)
}

// Parts returns a copy of the parts in order.
func (s Selector) Parts() []Part {
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// Runs returns the compound selectors in order, with the combinator
// that precedes each one ("" for the first).
func (s Selector) Runs() []Run {
	var runs []Run
	current := Run{}
	for _, p := range s.parts {
		if p.Kind == KindCombinator {
			runs = append(runs, current)
			current = Run{Combinator: Combinator(p.Text)}
			continue
		}
		current.Parts = append(current.Parts, p)
	}
	if len(s.parts) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// Run is one compound selector and the combinator joining it to the
// previous run.
type Run struct {
	Combinator Combinator
	Parts      []Part
}
