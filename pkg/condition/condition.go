// Package condition provides the small set of predicates the search
// contexts and locators need. Conditions are pure: a collaborator error
// makes them evaluate to false rather than fail.
package condition

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/devicelab-dev/selene/pkg/core"
)

// ElementCondition is a predicate over a single element context.
type ElementCondition = core.Condition[core.ElementContext]

// CollectionCondition is a predicate over a collection context.
type CollectionCondition = core.Condition[core.CollectionContext]

// Visible holds when the element resolves and reports itself displayed.
var Visible ElementCondition = visible{}

type visible struct{}

func (visible) Apply(ctx core.ElementContext) bool {
	elem, err := ctx.Snapshot()
	if err != nil {
		return false
	}
	displayed, err := elem.Displayed()
	return err == nil && displayed
}

func (visible) Explain() string { return "Visible" }

// textCondition evaluates match against the element's visible text.
type textCondition struct {
	name     string
	expected string
	match    func(actual string) bool
}

func (c textCondition) Apply(ctx core.ElementContext) bool {
	elem, err := ctx.Snapshot()
	if err != nil {
		return false
	}
	text, err := elem.Text()
	if err != nil {
		return false
	}
	return c.match(text)
}

func (c textCondition) Explain() string {
	return fmt.Sprintf("%s(%s)", c.name, c.expected)
}

// ExactText holds when the element's text equals text.
func ExactText(text string) ElementCondition {
	return textCondition{
		name:     "ExactText",
		expected: text,
		match:    func(actual string) bool { return actual == text },
	}
}

// Text holds when the element's text contains substr.
func Text(substr string) ElementCondition {
	return textCondition{
		name:     "Text",
		expected: substr,
		match:    func(actual string) bool { return strings.Contains(actual, substr) },
	}
}

// MatchText holds when the element's text matches pattern. Patterns use
// the .NET/Perl syntax supported by regexp2, lookarounds included.
func MatchText(pattern string) (ElementCondition, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile text pattern: %w", err)
	}
	return textCondition{
		name:     "MatchText",
		expected: pattern,
		match: func(actual string) bool {
			ok, err := re.MatchString(actual)
			return err == nil && ok
		},
	}, nil
}

// Attribute holds when the element's attribute name equals value.
func Attribute(name, value string) ElementCondition {
	return attribute{name: name, value: value}
}

type attribute struct {
	name, value string
}

func (c attribute) Apply(ctx core.ElementContext) bool {
	elem, err := ctx.Snapshot()
	if err != nil {
		return false
	}
	actual, err := elem.Attribute(c.name)
	return err == nil && actual == c.value
}

func (c attribute) Explain() string {
	return fmt.Sprintf("Attribute(%s=%s)", c.name, c.value)
}

// countCondition compares the current collection size.
type countCondition struct {
	name     string
	expected int
	match    func(actual int) bool
}

func (c countCondition) Apply(ctx core.CollectionContext) bool {
	elems, err := ctx.Snapshot()
	if err != nil {
		return false
	}
	return c.match(len(elems))
}

func (c countCondition) Explain() string {
	return fmt.Sprintf("%s(%d)", c.name, c.expected)
}

// CountAtLeast holds when the collection has at least n elements.
func CountAtLeast(n int) CollectionCondition {
	return countCondition{
		name:     "CountAtLeast",
		expected: n,
		match:    func(actual int) bool { return actual >= n },
	}
}

// Size holds when the collection has exactly n elements.
func Size(n int) CollectionCondition {
	return countCondition{
		name:     "Size",
		expected: n,
		match:    func(actual int) bool { return actual == n },
	}
}
