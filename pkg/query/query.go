// Package query parses a textual locator chain such as
//
//	all:ul.fruits > li >> filter:an >> index:0
//
// into selene search contexts. Steps are separated by ">>" and each step is
// kind:argument. Element steps: el, all. Collection steps: index, text, has,
// filter, match.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
	"github.com/devicelab-dev/selene/pkg/selene"
)

// Separator splits chain steps.
const Separator = ">>"

// StepKind names a chain step.
type StepKind string

const (
	StepElement StepKind = "el"     // first match (root or inside an element)
	StepAll     StepKind = "all"    // all matches (root or inside an element)
	StepIndex   StepKind = "index"  // n-th element of a collection
	StepText    StepKind = "text"   // first element with exact text
	StepHas     StepKind = "has"    // first element whose text contains
	StepFilter  StepKind = "filter" // elements whose text contains
	StepMatch   StepKind = "match"  // elements whose text matches a regexp
)

// Step is one parsed chain step.
type Step struct {
	Kind StepKind
	Arg  string
}

// Query is a parsed chain.
type Query struct {
	Source string
	Steps  []Step
}

// Parse parses expr.
func Parse(expr string) (Query, error) {
	q := Query{Source: expr}
	for i, raw := range strings.Split(expr, Separator) {
		raw = strings.TrimSpace(raw)
		kind, arg, ok := strings.Cut(raw, ":")
		if !ok || arg == "" {
			return Query{}, fmt.Errorf("step %d %q: want kind:argument", i+1, raw)
		}
		step := Step{Kind: StepKind(strings.TrimSpace(kind)), Arg: strings.TrimSpace(arg)}
		switch step.Kind {
		case StepElement, StepAll, StepIndex, StepText, StepHas, StepFilter, StepMatch:
		default:
			return Query{}, fmt.Errorf("step %d: unknown kind %q", i+1, step.Kind)
		}
		q.Steps = append(q.Steps, step)
	}
	return q, nil
}

// Target is the result of building a query: exactly one of Element or
// Collection is set.
type Target struct {
	Element    *selene.Element
	Collection *selene.Collection
}

// String describes the target without resolving it.
func (t Target) String() string {
	if t.Element != nil {
		return t.Element.String()
	}
	return t.Collection.String()
}

// Build turns q into a lazy search context on b. Nothing is resolved.
func (q Query) Build(b *selene.Browser) (Target, error) {
	var t Target
	for i, step := range q.Steps {
		next, err := apply(b, t, step)
		if err != nil {
			return Target{}, fmt.Errorf("step %d (%s:%s): %w", i+1, step.Kind, step.Arg, err)
		}
		t = next
	}
	return t, nil
}

func apply(b *selene.Browser, t Target, step Step) (Target, error) {
	switch step.Kind {
	case StepElement:
		if t.Collection != nil {
			return Target{}, fmt.Errorf("cannot search inside a collection; pick an element first")
		}
		if t.Element == nil {
			return Target{Element: b.Element(core.CSS(step.Arg))}, nil
		}
		return Target{Element: t.Element.Find(core.CSS(step.Arg))}, nil

	case StepAll:
		if t.Collection != nil {
			return Target{}, fmt.Errorf("cannot search inside a collection; pick an element first")
		}
		if t.Element == nil {
			return Target{Collection: b.All(core.CSS(step.Arg))}, nil
		}
		return Target{Collection: t.Element.FindAll(core.CSS(step.Arg))}, nil
	}

	if t.Collection == nil {
		return Target{}, fmt.Errorf("needs a collection")
	}

	switch step.Kind {
	case StepIndex:
		n, err := strconv.Atoi(step.Arg)
		if err != nil || n < 0 {
			return Target{}, fmt.Errorf("index must be a non-negative integer")
		}
		return Target{Element: t.Collection.Index(n)}, nil
	case StepText:
		return Target{Element: t.Collection.FindBy(condition.ExactText(step.Arg))}, nil
	case StepHas:
		return Target{Element: t.Collection.FindBy(condition.Text(step.Arg))}, nil
	case StepFilter:
		return Target{Collection: t.Collection.FilterBy(condition.Text(step.Arg))}, nil
	case StepMatch:
		cond, err := condition.MatchText(step.Arg)
		if err != nil {
			return Target{}, err
		}
		return Target{Collection: t.Collection.FilterBy(cond)}, nil
	default:
		return Target{}, fmt.Errorf("unknown kind %q", step.Kind)
	}
}
