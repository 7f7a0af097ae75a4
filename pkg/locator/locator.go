// Package locator implements lazy element and collection locators.
//
// A locator is a deferred query. Building one never touches the browser;
// every call to Resolve re-queries live state, which is what lets a polling
// layer retry a failing lookup until it succeeds. Locators compose into a
// chain whose leaves are driver-backed and whose inner nodes are backed by a
// parent search context:
//
//	driver -> element -> inner collection -> element by index/condition
//
// The variant set is closed.
package locator

import "github.com/devicelab-dev/selene/pkg/core"

// Locator resolves lazily to a T.
type Locator[T any] interface {
	// Description explains the query without resolving it.
	Description() string
	// Resolve queries current live state.
	Resolve() (T, error)
	String() string

	sealed()
}

// ElementLocator resolves to exactly one element.
type ElementLocator = Locator[core.Element]

// CollectionLocator resolves to an ordered sequence of elements.
type CollectionLocator = Locator[[]core.Element]

var (
	_ ElementLocator = (*DriverElement)(nil)
	_ ElementLocator = (*WrappedElement)(nil)
	_ ElementLocator = (*InnerElement)(nil)
	_ ElementLocator = (*ElementByIndex)(nil)
	_ ElementLocator = (*ElementByCondition)(nil)

	_ CollectionLocator = (*DriverCollection)(nil)
	_ CollectionLocator = (*WrappedCollection)(nil)
	_ CollectionLocator = (*InnerCollection)(nil)
	_ CollectionLocator = (*FilteredCollection)(nil)

	_ core.ElementSource = ElementLocator(nil)
)
