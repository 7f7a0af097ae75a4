package locator

import (
	"fmt"

	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
)

// DriverElement finds a single element from the driver root.
type DriverElement struct {
	driver core.Driver
	by     core.By
}

// NewDriverElement returns a locator for the first element matching by.
func NewDriverElement(driver core.Driver, by core.By) *DriverElement {
	return &DriverElement{driver: driver, by: by}
}

func (l *DriverElement) Description() string { return l.by.String() }
func (l *DriverElement) String() string      { return l.Description() }
func (l *DriverElement) sealed()             {}

// Resolve returns the driver's error unchanged when nothing matches.
func (l *DriverElement) Resolve() (core.Element, error) {
	return l.driver.FindElement(l.by)
}

// DefaultWrappedElementDescription labels a WrappedElement built without one.
const DefaultWrappedElementDescription = "wrapped element"

// WrappedElement lifts an already resolved handle into a locator.
type WrappedElement struct {
	description string
	element     core.Element
}

// NewWrappedElement wraps elem; Resolve always returns it as is.
func NewWrappedElement(description string, elem core.Element) *WrappedElement {
	if description == "" {
		description = DefaultWrappedElementDescription
	}
	return &WrappedElement{description: description, element: elem}
}

func (l *WrappedElement) Description() string {
	return fmt.Sprintf("%s: %v", l.description, l.element)
}
func (l *WrappedElement) String() string { return l.Description() }
func (l *WrappedElement) sealed()        {}

func (l *WrappedElement) Resolve() (core.Element, error) {
	return l.element, nil
}

// InnerElement finds an element inside a parent element once the parent
// is visible.
type InnerElement struct {
	by     core.By
	parent core.ElementContext
}

func NewInnerElement(by core.By, parent core.ElementContext) *InnerElement {
	return &InnerElement{by: by, parent: parent}
}

func (l *InnerElement) Description() string {
	return fmt.Sprintf("(%s).findInner(%s)", l.parent, l.by)
}
func (l *InnerElement) String() string { return l.Description() }
func (l *InnerElement) sealed()        {}

func (l *InnerElement) Resolve() (core.Element, error) {
	parent, err := l.parent.ResolveAfter(condition.Visible)
	if err != nil {
		return nil, err
	}
	return parent.FindElement(l.by)
}

// ElementByIndex picks the index-th (0-based) element of a collection.
type ElementByIndex struct {
	index  int
	parent core.CollectionContext
}

func NewElementByIndex(index int, parent core.CollectionContext) *ElementByIndex {
	return &ElementByIndex{index: index, parent: parent}
}

func (l *ElementByIndex) Description() string {
	return fmt.Sprintf("(%s)[%d]", l.parent, l.index)
}
func (l *ElementByIndex) String() string { return l.Description() }
func (l *ElementByIndex) sealed()        {}

// Resolve waits until the collection has at least index+1 elements. The
// wait is the only upper bounds guarantee: the parent must return the
// elements the count was checked against.
func (l *ElementByIndex) Resolve() (core.Element, error) {
	if l.index < 0 {
		return nil, fmt.Errorf("%s: index must not be negative", l.Description())
	}
	elems, err := l.parent.ResolveAfter(condition.CountAtLeast(l.index + 1))
	if err != nil {
		return nil, err
	}
	return elems[l.index], nil
}

// ElementByCondition returns the first collection member satisfying a
// condition.
type ElementByCondition struct {
	condition condition.ElementCondition
	parent    core.CollectionContext
	factory   core.ContextFactory
}

// NewElementByCondition builds the locator; factory wraps each candidate in
// a search context so cond can be evaluated on it.
func NewElementByCondition(cond condition.ElementCondition, parent core.CollectionContext, factory core.ContextFactory) *ElementByCondition {
	return &ElementByCondition{condition: cond, parent: parent, factory: factory}
}

func (l *ElementByCondition) Description() string {
	return fmt.Sprintf("(%s).findBy(%s)", l.parent, l.condition.Explain())
}
func (l *ElementByCondition) String() string { return l.Description() }
func (l *ElementByCondition) sealed()        {}

// Resolve reads the parent's current elements without waiting and scans
// them left to right. When nothing matches it fails with a
// NotFoundInCollection error listing every candidate's text and markup.
func (l *ElementByCondition) Resolve() (core.Element, error) {
	elems, err := l.parent.Snapshot()
	if err != nil {
		return nil, err
	}

	m := candidateMatcher{
		condition:          l.condition,
		contextDescription: l.Description(),
		factory:            l.factory,
	}
	for i, elem := range elems {
		if m.matches(i, elem) {
			return elem, nil
		}
	}
	return nil, notFoundInCollection(l.condition.Explain(), elems)
}
