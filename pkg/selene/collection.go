package selene

import (
	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
	"github.com/devicelab-dev/selene/pkg/locator"
)

// Collection is a lazy search context over an ordered set of elements.
type Collection struct {
	locator locator.CollectionLocator
	browser *Browser
}

var _ core.CollectionContext = (*Collection)(nil)

func (c *Collection) String() string {
	return c.locator.Description()
}

// Snapshot resolves the collection once, without waiting.
func (c *Collection) Snapshot() ([]core.Element, error) {
	return c.locator.Resolve()
}

// ResolveAfter waits until cond holds and returns the elements it held for.
// Each attempt resolves the locator once and evaluates cond on that
// snapshot, so the result always satisfies cond.
func (c *Collection) ResolveAfter(cond core.Condition[core.CollectionContext]) ([]core.Element, error) {
	var found []core.Element
	err := c.browser.waitFor(c.String(), cond.Explain(), func() (bool, error) {
		elems, err := c.locator.Resolve()
		if err != nil {
			return false, err
		}
		if !cond.Apply(c.browser.newCollection(locator.NewWrappedCollection(c.String(), elems))) {
			return false, nil
		}
		found = elems
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Should waits until cond holds.
func (c *Collection) Should(cond core.Condition[core.CollectionContext]) (*Collection, error) {
	if _, err := c.ResolveAfter(cond); err != nil {
		return nil, err
	}
	return c, nil
}

// Texts returns the current text of every element, in order.
func (c *Collection) Texts() ([]string, error) {
	elems, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(elems))
	for _, elem := range elems {
		text, err := elem.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// Index returns a lazy context for the index-th element (0-based). A
// negative index is accepted here and fails on resolution.
func (c *Collection) Index(index int) *Element {
	return c.browser.newElement(locator.NewElementByIndex(index, c))
}

// FindBy returns a lazy context for the first element satisfying cond.
func (c *Collection) FindBy(cond condition.ElementCondition) *Element {
	return c.browser.newElement(locator.NewElementByCondition(cond, c, c.browser))
}

// FilterBy returns a lazy context for the elements satisfying cond.
func (c *Collection) FilterBy(cond condition.ElementCondition) *Collection {
	return c.browser.newCollection(locator.NewFilteredCollection(cond, c, c.browser))
}
