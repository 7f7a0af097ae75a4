package locator

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
)

// candidateMatcher evaluates a condition against one collection member at a
// time, wrapping each member as a single element context first.
type candidateMatcher struct {
	condition          condition.ElementCondition
	contextDescription string
	factory            core.ContextFactory
}

func (m candidateMatcher) matches(index int, elem core.Element) bool {
	src := NewWrappedElement(fmt.Sprintf("%s candidate #%d", m.contextDescription, index), elem)
	return m.condition.Apply(m.factory.ElementContext(src))
}

// notFoundInCollection captures every candidate's text and markup at the
// moment of failure, in scan order.
func notFoundInCollection(explain string, elems []core.Element) *core.Error {
	texts := make([]string, len(elems))
	markups := make([]string, len(elems))
	for i, elem := range elems {
		texts[i] = readOrExplain(elem.Text)
		markups[i] = readOrExplain(elem.OuterHTML)
	}

	return &core.Error{
		Kind: core.NotFoundInCollection,
		Message: fmt.Sprintf("element was not found in collection by condition %s"+
			"\n  Actual visible texts : [%s]"+
			"\n  Actual html elements : [%s]",
			explain, strings.Join(texts, ","), strings.Join(markups, ",")),
		Condition: explain,
		Texts:     texts,
		Markups:   markups,
	}
}

func readOrExplain(read func() (string, error)) string {
	s, err := read()
	if err != nil {
		return fmt.Sprintf("<unavailable: %v>", err)
	}
	return s
}
