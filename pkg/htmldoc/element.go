package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/devicelab-dev/selene/pkg/core"
)

// Element is one node of a Document.
type Element struct {
	sel *goquery.Selection
}

var _ core.Element = (*Element)(nil)

func newElement(sel *goquery.Selection) *Element {
	return &Element{sel: sel}
}

func (e *Element) FindElement(by core.By) (core.Element, error) {
	return findOne(e.sel, by)
}

func (e *Element) FindElements(by core.By) ([]core.Element, error) {
	return findAll(e.sel, by)
}

// Text returns the element's text with whitespace collapsed. Text of
// hidden descendants is excluded.
func (e *Element) Text() (string, error) {
	if !isDisplayed(e.sel.Get(0)) {
		return "", nil
	}
	var b strings.Builder
	collectVisibleText(e.sel.Get(0), &b)
	return normalizeText(b.String()), nil
}

// OuterHTML returns the element's markup including its own tag.
func (e *Element) OuterHTML() (string, error) {
	return goquery.OuterHtml(e.sel)
}

// Displayed reports false when the element or an ancestor is hidden by the
// hidden attribute, an inline display/visibility style, or a hidden input
// type, or is a non-rendered tag.
func (e *Element) Displayed() (bool, error) {
	return isDisplayed(e.sel.Get(0)), nil
}

// Attribute returns the attribute value, or "" when it is absent.
func (e *Element) Attribute(name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

// String returns the element's structural path, e.g.
// "html > body:nth-child(2) > ul:nth-child(1) > li:nth-child(2)".
func (e *Element) String() string {
	var parts []string
	for n := e.sel.Get(0); n != nil && n.Type == html.ElementNode; n = n.Parent {
		parts = append(parts, pathSegment(n))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func pathSegment(n *html.Node) string {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return n.Data
	}
	pos := 0
	for s := n.Parent.FirstChild; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			pos++
		}
		if s == n {
			break
		}
	}
	return fmt.Sprintf("%s:nth-child(%d)", n.Data, pos)
}

var nonRendered = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
	"title": true, "meta": true, "link": true, "noscript": true,
}

func isDisplayed(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if hiddenNode(n) {
			return false
		}
	}
	return true
}

func hiddenNode(n *html.Node) bool {
	if nonRendered[n.Data] {
		return true
	}
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "type":
			if n.Data == "input" && strings.EqualFold(a.Val, "hidden") {
				return true
			}
		case "style":
			style := strings.ToLower(strings.ReplaceAll(a.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

func collectVisibleText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if hiddenNode(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectVisibleText(c, b)
	}
}
