package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pawk0/core-js-101/selector"
)

// combinatorNames lets combinators be given as words, since a bare
// " " is awkward to pass through a shell.
var combinatorNames = map[string]selector.Combinator{
	"descendant": selector.Descendant,
	"child":      selector.Child,
	"adjacent":   selector.AdjacentSibling,
	"sibling":    selector.GeneralSibling,
}

// cmdSelector: kind=text parts and combinators -> CSS selector
func cmdSelector(e *env, args []string) error {
	var explain bool

	flagSet := newFlagSet(e, "selector", "[--explain] part...\n\n"+
		"A part is kind=text (kind: element, id, class, attr, pseudo-class,\n"+
		"pseudo-element) or a combinator: \" \", \">\", \"+\", \"~\",\n"+
		"descendant, child, adjacent, sibling.")
	flagSet.BoolVar(&explain, "explain", false, "print the compound selectors before the result")
	if ok, err := parseFlags(flagSet, args); !ok {
		return err
	}
	if flagSet.NArg() == 0 {
		return fmt.Errorf("selector needs at least one part")
	}

	sel, err := buildSelector(flagSet.Args())
	if err != nil {
		return err
	}
	text, err := sel.Stringify()
	if err != nil {
		return err
	}
	e.log.Debug("built selector", "parts", sel.Len(), "runs", len(sel.Runs()))

	if explain {
		fmt.Fprint(e.stdout, explainSelector(lipgloss.NewRenderer(e.stdout), sel))
	}
	fmt.Fprintln(e.stdout, text)
	return nil
}

// buildSelector folds the arguments left to right. Each combinator
// closes the current compound selector and joins the next one to it.
func buildSelector(args []string) (selector.Selector, error) {
	var (
		acc, run   selector.Selector
		combinator string
		started    bool
	)
	flush := func(i int) error {
		if run.Len() == 0 {
			return fmt.Errorf("argument %d: a combinator needs a part on both sides", i+1)
		}
		if !started {
			acc, started = run, true
			return nil
		}
		joined, err := selector.Join(acc, combinator, run)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		acc = joined
		return nil
	}

	for i, arg := range args {
		kindName, text, isPart := strings.Cut(arg, "=")
		if !isPart {
			if err := flush(i); err != nil {
				return selector.Selector{}, err
			}
			c, err := parseCombinatorArg(arg)
			if err != nil {
				return selector.Selector{}, fmt.Errorf("argument %d: %w", i+1, err)
			}
			combinator, run = string(c), selector.Selector{}
			continue
		}

		kind, err := selector.ParseKind(kindName)
		if err != nil {
			return selector.Selector{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
		run, err = run.Add(kind, text)
		if err != nil {
			return selector.Selector{}, fmt.Errorf("argument %d (%s): %w", i+1, arg, err)
		}
	}
	if err := flush(len(args) - 1); err != nil {
		return selector.Selector{}, err
	}
	return acc, nil
}

func parseCombinatorArg(arg string) (selector.Combinator, error) {
	if c, ok := combinatorNames[strings.ToLower(arg)]; ok {
		return c, nil
	}
	return selector.ParseCombinator(arg)
}

var (
	explainHeader = lipgloss.Color("12")
	explainKind   = lipgloss.Color("8")
	explainText   = lipgloss.Color("15")
)

// explainSelector lists each compound selector with its parts.
func explainSelector(r *lipgloss.Renderer, sel selector.Selector) string {
	headerStyle := r.NewStyle().Foreground(explainHeader).Bold(true)
	kindStyle := r.NewStyle().Foreground(explainKind).Width(16)
	textStyle := r.NewStyle().Foreground(explainText)

	var b strings.Builder
	for i, run := range sel.Runs() {
		header := fmt.Sprintf("run %d", i+1)
		if i > 0 {
			header += fmt.Sprintf(" (%s)", combinatorLabel(run.Combinator))
		}
		b.WriteString(headerStyle.Render(header))
		b.WriteByte('\n')
		for _, p := range run.Parts {
			b.WriteString("  ")
			b.WriteString(kindStyle.Render(p.Kind.String()))
			b.WriteString(textStyle.Render(p.String()))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func combinatorLabel(c selector.Combinator) string {
	switch c {
	case selector.Descendant:
		return "descendant"
	case selector.Child:
		return "child >"
	case selector.AdjacentSibling:
		return "adjacent sibling +"
	case selector.GeneralSibling:
		return "general sibling ~"
	default:
		return string(c)
	}
}
