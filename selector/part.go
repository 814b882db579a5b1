package selector

import "fmt"

// Kind tags a selector part.
type Kind uint8

// Fragment kinds are declared in the order they must appear within a
// compound selector. KindCombinator separates compounds.
const (
	KindElement Kind = iota
	KindID
	KindClass
	KindAttribute
	KindPseudoClass
	KindPseudoElement
	KindCombinator
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindAttribute:
		return "attribute"
	case KindPseudoClass:
		return "pseudo-class"
	case KindPseudoElement:
		return "pseudo-element"
	case KindCombinator:
		return "combinator"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// IsFragment reports whether k is one of the six fragment kinds.
func (k Kind) IsFragment() bool {
	return k <= KindPseudoElement
}

// ParseKind parses a fragment kind name. Both the hyphenated names
// returned by String and the builder method spellings are accepted
// ("attr", "pseudoClass", "pseudoElement").
func ParseKind(name string) (Kind, error) {
	switch name {
	case "element":
		return KindElement, nil
	case "id":
		return KindID, nil
	case "class":
		return KindClass, nil
	case "attribute", "attr":
		return KindAttribute, nil
	case "pseudo-class", "pseudoClass":
		return KindPseudoClass, nil
	case "pseudo-element", "pseudoElement":
		return KindPseudoElement, nil
	default:
		return 0, fmt.Errorf("unknown selector kind %q", name)
	}
}

// rank orders fragment kinds within a compound selector.
var rank = [KindCombinator]int{
	KindElement:       0,
	KindID:            1,
	KindClass:         2,
	KindAttribute:     3,
	KindPseudoClass:   4,
	KindPseudoElement: 5,
}

// unique marks the kinds allowed at most once per compound selector.
var unique = [KindCombinator]bool{
	KindElement:       true,
	KindID:            true,
	KindPseudoElement: true,
}

// prefix and suffix wrap a fragment's text when rendered.
var (
	prefix = [KindCombinator]string{
		KindID:            "#",
		KindClass:         ".",
		KindAttribute:     "[",
		KindPseudoClass:   ":",
		KindPseudoElement: "::",
	}
	suffix = [KindCombinator]string{
		KindAttribute: "]",
	}
)

// Combinator relates two compound selectors.
type Combinator string

const (
	Descendant      Combinator = " "
	Child           Combinator = ">"
	AdjacentSibling Combinator = "+"
	GeneralSibling  Combinator = "~"
)

// ParseCombinator validates a combinator symbol.
func ParseCombinator(symbol string) (Combinator, error) {
	switch c := Combinator(symbol); c {
	case Descendant, Child, AdjacentSibling, GeneralSibling:
		return c, nil
	default:
		return "", &CombinatorError{Symbol: symbol}
	}
}

// Part is one piece of a selector: a fragment with its literal text,
// or a combinator whose Text is the symbol.
type Part struct {
	Kind Kind
	Text string
}

// String renders the part. A Part whose Kind is not a declared kind
// renders as its bare text.
func (p Part) String() string {
	if p.Kind == KindCombinator {
		return " " + p.Text + " "
	}
	if !p.Kind.IsFragment() {
		return p.Text
	}
	return prefix[p.Kind] + p.Text + suffix[p.Kind]
}
