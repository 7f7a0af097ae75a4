package locator

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/selene/pkg/core"
)

// calls counts every interaction a locator makes with a collaborator.
type calls struct {
	n int
}

func (c *calls) hit() {
	if c != nil {
		c.n++
	}
}

type fakeElement struct {
	name      string
	text      string
	displayed bool
	children  map[string][]core.Element
	calls     *calls
}

func newFake(c *calls, name string) *fakeElement {
	return &fakeElement{name: name, text: name, displayed: true, calls: c}
}

func (e *fakeElement) FindElement(by core.By) (core.Element, error) {
	e.calls.hit()
	found := e.children[by.Value]
	if len(found) == 0 {
		return nil, core.NotFound(by, nil)
	}
	return found[0], nil
}

func (e *fakeElement) FindElements(by core.By) ([]core.Element, error) {
	e.calls.hit()
	return append([]core.Element{}, e.children[by.Value]...), nil
}

func (e *fakeElement) Text() (string, error) {
	e.calls.hit()
	return e.text, nil
}

func (e *fakeElement) OuterHTML() (string, error) {
	e.calls.hit()
	return "<li>" + e.text + "</li>", nil
}

func (e *fakeElement) Displayed() (bool, error) {
	e.calls.hit()
	return e.displayed, nil
}

func (e *fakeElement) Attribute(string) (string, error) {
	e.calls.hit()
	return "", nil
}

func (e *fakeElement) String() string { return "fake " + e.name }

type fakeDriver struct {
	elements map[string][]core.Element
	calls    *calls
}

func (d *fakeDriver) FindElement(by core.By) (core.Element, error) {
	d.calls.hit()
	found := d.elements[by.Value]
	if len(found) == 0 {
		return nil, core.NotFound(by, nil)
	}
	return found[0], nil
}

func (d *fakeDriver) FindElements(by core.By) ([]core.Element, error) {
	d.calls.hit()
	return append([]core.Element{}, d.elements[by.Value]...), nil
}

// sourceContext is a minimal element search context: it waits by
// evaluating the condition once and failing with WaitTimeout otherwise.
type sourceContext struct {
	src   core.ElementSource
	calls *calls
}

func (c *sourceContext) ResolveAfter(cond core.Condition[core.ElementContext]) (core.Element, error) {
	c.calls.hit()
	if !cond.Apply(c) {
		return nil, &core.Error{Kind: core.WaitTimeout, Message: "timed out waiting for " + cond.Explain()}
	}
	return c.src.Resolve()
}

func (c *sourceContext) Snapshot() (core.Element, error) {
	c.calls.hit()
	return c.src.Resolve()
}

func (c *sourceContext) String() string { return c.src.Description() }

type fakeFactory struct {
	calls *calls
}

func (f fakeFactory) ElementContext(src core.ElementSource) core.ElementContext {
	return &sourceContext{src: src, calls: f.calls}
}

type collectionContext struct {
	loc   CollectionLocator
	calls *calls
}

func (c *collectionContext) ResolveAfter(cond core.Condition[core.CollectionContext]) ([]core.Element, error) {
	c.calls.hit()
	if !cond.Apply(c) {
		return nil, &core.Error{Kind: core.WaitTimeout, Message: "timed out waiting for " + cond.Explain()}
	}
	return c.loc.Resolve()
}

func (c *collectionContext) Snapshot() ([]core.Element, error) {
	c.calls.hit()
	return c.loc.Resolve()
}

func (c *collectionContext) String() string { return c.loc.Description() }

// containsFold holds when the text contains substr, ignoring case.
type containsFold string

func (s containsFold) Apply(ctx core.ElementContext) bool {
	elem, err := ctx.Snapshot()
	if err != nil {
		return false
	}
	text, err := elem.Text()
	return err == nil && strings.Contains(strings.ToLower(text), strings.ToLower(string(s)))
}

func (s containsFold) Explain() string { return fmt.Sprintf("ContainsFold(%s)", string(s)) }

// fruits returns a collection context over Apple, Banana, Cherry.
func fruits(c *calls) (*collectionContext, []core.Element) {
	elems := []core.Element{newFake(c, "Apple"), newFake(c, "Banana"), newFake(c, "Cherry")}
	driver := &fakeDriver{elements: map[string][]core.Element{"li": elems}, calls: c}
	return &collectionContext{loc: NewDriverCollection(driver, core.CSS("li")), calls: c}, elems
}
