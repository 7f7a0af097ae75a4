package webdriver

import (
	"fmt"
	"net/url"

	"github.com/devicelab-dev/selene/pkg/core"
)

// Element is a remote web element reference.
type Element struct {
	id     string
	client *Client
}

var (
	_ core.Driver  = (*Client)(nil)
	_ core.Element = (*Element)(nil)
)

// ID returns the element's web element reference.
func (e *Element) ID() string {
	return e.id
}

// findRequest maps a criterion to a W3C find payload. W3C has no id, name
// or class strategies, so those go through CSS.
func findRequest(by core.By) FindElementRequest {
	switch by.Strategy {
	case core.StrategyID, core.StrategyName, core.StrategyClassName:
		css, _ := by.CSSSelector()
		return FindElementRequest{Using: core.StrategyCSS, Value: css}
	default:
		return FindElementRequest{Using: by.Strategy, Value: by.Value}
	}
}

func (c *Client) findOne(path string, by core.By) (core.Element, error) {
	var ref elementRef
	if err := c.value("POST", path, findRequest(by), &ref); err != nil {
		if IsNoSuchElement(err) {
			return nil, core.NotFound(by, err)
		}
		return nil, err
	}
	id := ref.id()
	if id == "" {
		return nil, core.NotFound(by, nil)
	}
	return &Element{id: id, client: c}, nil
}

func (c *Client) findAll(path string, by core.By) ([]core.Element, error) {
	var refs []elementRef
	if err := c.value("POST", path, findRequest(by), &refs); err != nil {
		return nil, err
	}
	elems := make([]core.Element, 0, len(refs))
	for _, ref := range refs {
		if id := ref.id(); id != "" {
			elems = append(elems, &Element{id: id, client: c})
		}
	}
	return elems, nil
}

// FindElement finds the first element matching by in the current page.
func (c *Client) FindElement(by core.By) (core.Element, error) {
	return c.findOne(c.sessionPath("/element"), by)
}

// FindElements finds every element matching by in the current page.
func (c *Client) FindElements(by core.By) ([]core.Element, error) {
	return c.findAll(c.sessionPath("/elements"), by)
}

func (e *Element) path(suffix string) string {
	return e.client.sessionPath("/element/" + e.id + suffix)
}

// FindElement finds the first descendant matching by.
func (e *Element) FindElement(by core.By) (core.Element, error) {
	return e.client.findOne(e.path("/element"), by)
}

// FindElements finds every descendant matching by.
func (e *Element) FindElements(by core.By) ([]core.Element, error) {
	return e.client.findAll(e.path("/elements"), by)
}

// Text returns the element's rendered text.
func (e *Element) Text() (string, error) {
	var text string
	err := e.client.value("GET", e.path("/text"), nil, &text)
	return text, err
}

// OuterHTML returns the element's outerHTML property.
func (e *Element) OuterHTML() (string, error) {
	var markup string
	err := e.client.value("GET", e.path("/property/outerHTML"), nil, &markup)
	return markup, err
}

// Displayed reports whether the element is rendered visibly.
func (e *Element) Displayed() (bool, error) {
	var displayed bool
	err := e.client.value("GET", e.path("/displayed"), nil, &displayed)
	return displayed, err
}

// Attribute returns the attribute value, "" when absent.
func (e *Element) Attribute(name string) (string, error) {
	var value *string
	if err := e.client.value("GET", e.path("/attribute/"+url.PathEscape(name)), nil, &value); err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *Element) String() string {
	return fmt.Sprintf("webdriver element %s", e.id)
}
