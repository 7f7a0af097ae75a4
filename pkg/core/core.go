package core

// Driver finds elements in a live browser session.
// FindElement fails with an ElementNotFound error when nothing matches.
// FindElements returns an empty slice when nothing matches; an error from it
// means the session itself failed.
type Driver interface {
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
}

// Element is an opaque reference to one live DOM node.
type Element interface {
	FindElement(by By) (Element, error)
	FindElements(by By) ([]Element, error)
	Text() (string, error)
	OuterHTML() (string, error)
	Displayed() (bool, error)
	Attribute(name string) (string, error)
	String() string
}

// Condition is a predicate with a human readable explanation.
// Apply must be total: collaborator failures evaluate to false.
type Condition[T any] interface {
	Apply(candidate T) bool
	Explain() string
}

// ElementContext wraps a single element locator with waiting.
type ElementContext interface {
	// ResolveAfter blocks until cond holds (or the wait times out) and
	// returns the freshly resolved element.
	ResolveAfter(cond Condition[ElementContext]) (Element, error)
	// Snapshot resolves once without waiting.
	Snapshot() (Element, error)
	String() string
}

// CollectionContext wraps a collection locator with waiting.
type CollectionContext interface {
	ResolveAfter(cond Condition[CollectionContext]) ([]Element, error)
	Snapshot() ([]Element, error)
	String() string
}

// ElementSource is anything that lazily resolves to one element.
// Every element locator satisfies it.
type ElementSource interface {
	Description() string
	Resolve() (Element, error)
}

// ContextFactory lifts an element source into a search context so that
// conditions written against contexts can be evaluated on it.
type ContextFactory interface {
	ElementContext(src ElementSource) ElementContext
}
