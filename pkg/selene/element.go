package selene

import (
	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
	"github.com/devicelab-dev/selene/pkg/locator"
)

// Element is a lazy single element search context.
type Element struct {
	source  core.ElementSource
	browser *Browser
}

var _ core.ElementContext = (*Element)(nil)

func (e *Element) String() string {
	return e.source.Description()
}

// Snapshot resolves the element once, without waiting.
func (e *Element) Snapshot() (core.Element, error) {
	return e.source.Resolve()
}

// ResolveAfter waits until cond holds and returns the element it held for.
// Each attempt resolves the locator once and evaluates cond on that handle,
// so one browser lookup is made per attempt.
func (e *Element) ResolveAfter(cond core.Condition[core.ElementContext]) (core.Element, error) {
	var found core.Element
	err := e.browser.waitFor(e.String(), cond.Explain(), func() (bool, error) {
		elem, err := e.source.Resolve()
		if err != nil {
			return false, err
		}
		if !cond.Apply(e.browser.newElement(locator.NewWrappedElement(e.String(), elem))) {
			return false, nil
		}
		found = elem
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Should waits until cond holds.
func (e *Element) Should(cond core.Condition[core.ElementContext]) (*Element, error) {
	if _, err := e.ResolveAfter(cond); err != nil {
		return nil, err
	}
	return e, nil
}

// Text returns the element's visible text once it is visible.
func (e *Element) Text() (string, error) {
	elem, err := e.ResolveAfter(condition.Visible)
	if err != nil {
		return "", err
	}
	return elem.Text()
}

// Find returns a lazy context for the first descendant matching by.
func (e *Element) Find(by core.By) *Element {
	return e.browser.newElement(locator.NewInnerElement(by, e))
}

// FindAll returns a lazy context for all descendants matching by.
func (e *Element) FindAll(by core.By) *Collection {
	return e.browser.newCollection(locator.NewInnerCollection(by, e))
}
