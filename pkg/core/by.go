package core

import (
	"fmt"
	"strings"
)

// Strategy names follow the W3C WebDriver "using" values where one exists.
const (
	StrategyCSS       = "css selector"
	StrategyXPath     = "xpath"
	StrategyID        = "id"
	StrategyName      = "name"
	StrategyClassName = "class name"
	StrategyTagName   = "tag name"
	StrategyLinkText  = "link text"
)

var strategyLabels = map[string]string{
	StrategyCSS:       "CssSelector",
	StrategyXPath:     "XPath",
	StrategyID:        "Id",
	StrategyName:      "Name",
	StrategyClassName: "ClassName",
	StrategyTagName:   "TagName",
	StrategyLinkText:  "LinkText",
}

// By is a search criterion: a strategy and the expression it interprets.
type By struct {
	Strategy string
	Value    string
}

// CSS matches elements by CSS selector.
func CSS(selector string) By { return By{Strategy: StrategyCSS, Value: selector} }

// XPath matches elements by XPath expression.
func XPath(expr string) By { return By{Strategy: StrategyXPath, Value: expr} }

// ID matches elements by id attribute.
func ID(id string) By { return By{Strategy: StrategyID, Value: id} }

// Name matches elements by name attribute.
func Name(name string) By { return By{Strategy: StrategyName, Value: name} }

// ClassName matches elements carrying a single class.
func ClassName(class string) By { return By{Strategy: StrategyClassName, Value: class} }

// TagName matches elements by tag.
func TagName(tag string) By { return By{Strategy: StrategyTagName, Value: tag} }

// LinkText matches anchors whose visible text equals text.
func LinkText(text string) By { return By{Strategy: StrategyLinkText, Value: text} }

// String returns the stable textual form, e.g. "By.CssSelector: ul > li".
func (b By) String() string {
	label, ok := strategyLabels[b.Strategy]
	if !ok {
		label = b.Strategy
	}
	return fmt.Sprintf("By.%s: %s", label, b.Value)
}

// CSSSelector translates the criterion to an equivalent CSS selector when
// one exists. XPath and link text have none.
func (b By) CSSSelector() (string, bool) {
	switch b.Strategy {
	case StrategyCSS:
		return b.Value, true
	case StrategyTagName:
		return b.Value, true
	case StrategyID:
		return `[id=` + cssString(b.Value) + `]`, true
	case StrategyName:
		return `[name=` + cssString(b.Value) + `]`, true
	case StrategyClassName:
		return `[class~=` + cssString(b.Value) + `]`, true
	default:
		return "", false
	}
}

func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
