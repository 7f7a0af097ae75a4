package locator

import (
	"fmt"

	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
)

// DriverCollection finds all elements matching a criterion from the driver
// root. No match is an empty result, not an error.
type DriverCollection struct {
	driver core.Driver
	by     core.By
}

func NewDriverCollection(driver core.Driver, by core.By) *DriverCollection {
	return &DriverCollection{driver: driver, by: by}
}

func (l *DriverCollection) Description() string { return l.by.String() }
func (l *DriverCollection) String() string      { return l.Description() }
func (l *DriverCollection) sealed()             {}

func (l *DriverCollection) Resolve() ([]core.Element, error) {
	return l.driver.FindElements(l.by)
}

// DefaultWrappedCollectionDescription labels a WrappedCollection built
// without one.
const DefaultWrappedCollectionDescription = "wrapped collection"

// WrappedCollection lifts an already resolved sequence into a locator.
type WrappedCollection struct {
	description string
	elements    []core.Element
}

func NewWrappedCollection(description string, elems []core.Element) *WrappedCollection {
	if description == "" {
		description = DefaultWrappedCollectionDescription
	}
	return &WrappedCollection{description: description, elements: elems}
}

func (l *WrappedCollection) Description() string {
	return fmt.Sprintf("%s: %v", l.description, l.elements)
}
func (l *WrappedCollection) String() string { return l.Description() }
func (l *WrappedCollection) sealed()        {}

// Resolve returns a copy; callers cannot reach the backing slice.
func (l *WrappedCollection) Resolve() ([]core.Element, error) {
	out := make([]core.Element, len(l.elements))
	copy(out, l.elements)
	return out, nil
}

// InnerCollection finds all elements inside a parent element once the
// parent is visible.
type InnerCollection struct {
	by     core.By
	parent core.ElementContext
}

func NewInnerCollection(by core.By, parent core.ElementContext) *InnerCollection {
	return &InnerCollection{by: by, parent: parent}
}

func (l *InnerCollection) Description() string {
	return fmt.Sprintf("(%s).findAllInner(%s)", l.parent, l.by)
}
func (l *InnerCollection) String() string { return l.Description() }
func (l *InnerCollection) sealed()        {}

func (l *InnerCollection) Resolve() ([]core.Element, error) {
	parent, err := l.parent.ResolveAfter(condition.Visible)
	if err != nil {
		return nil, err
	}
	return parent.FindElements(l.by)
}

// FilteredCollection keeps the members of a collection that satisfy a
// condition, in their original order.
type FilteredCollection struct {
	condition condition.ElementCondition
	parent    core.CollectionContext
	factory   core.ContextFactory
}

func NewFilteredCollection(cond condition.ElementCondition, parent core.CollectionContext, factory core.ContextFactory) *FilteredCollection {
	return &FilteredCollection{condition: cond, parent: parent, factory: factory}
}

func (l *FilteredCollection) Description() string {
	return fmt.Sprintf("(%s).filterBy(%s)", l.parent, l.condition.Explain())
}
func (l *FilteredCollection) String() string { return l.Description() }
func (l *FilteredCollection) sealed()        {}

// Resolve reads the parent's current elements without waiting.
func (l *FilteredCollection) Resolve() ([]core.Element, error) {
	elems, err := l.parent.Snapshot()
	if err != nil {
		return nil, err
	}

	m := candidateMatcher{
		condition:          l.condition,
		contextDescription: l.Description(),
		factory:            l.factory,
	}
	matched := make([]core.Element, 0, len(elems))
	for i, elem := range elems {
		if m.matches(i, elem) {
			matched = append(matched, elem)
		}
	}
	return matched, nil
}
