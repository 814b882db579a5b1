// Package selector builds CSS selectors from typed parts.
//
// A compound selector (a run) is a sequence of fragments in the order
// element, id, class, attribute, pseudo-class, pseudo-element. Element,
// id and pseudo-element occur at most once per run. Combinators join
// runs, and ordering is checked within each run only.
//
//	s := selector.Combine(
//		selector.Element("div").ID("main"),
//		"+",
//		selector.Element("table").ID("data"),
//	)
//	text, err := s.Stringify() // "div#main + table#data"
//
// Selectors are values. Appending never changes the selector appended
// to, so intermediate selectors can be kept and reused.
package selector
