// Package htmldoc implements a driver over a static HTML document.
//
// It answers find commands the way a browser session would, which makes it
// useful for offline checks and tests. The page can be replaced at any time
// with SetHTML to emulate the live DOM changing between resolutions.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/devicelab-dev/selene/pkg/core"
)

// ErrUnsupportedStrategy is returned for criteria the document cannot
// evaluate (XPath).
var ErrUnsupportedStrategy = errors.New("unsupported locator strategy")

// Document is a core.Driver backed by a parsed HTML page.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

var _ core.Driver = (*Document)(nil)

// Load parses a page from r.
func Load(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Parse parses a page from src.
func Parse(src string) (*Document, error) {
	return Load(strings.NewReader(src))
}

// LoadFile parses the page stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SetHTML replaces the page. Elements found before keep answering from the
// page they were found in.
func (d *Document) SetHTML(src string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	d.mu.Lock()
	d.doc = doc
	d.mu.Unlock()
	return nil
}

// Source returns the current page markup.
func (d *Document) Source() (string, error) {
	return d.root().Html()
}

func (d *Document) root() *goquery.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc.Selection
}

// FindElement returns the first element matching by.
func (d *Document) FindElement(by core.By) (core.Element, error) {
	return findOne(d.root(), by)
}

// FindElements returns every element matching by in document order.
func (d *Document) FindElements(by core.By) ([]core.Element, error) {
	return findAll(d.root(), by)
}

func (d *Document) String() string {
	return "html document"
}

func findOne(scope *goquery.Selection, by core.By) (core.Element, error) {
	found, err := query(scope, by)
	if err != nil {
		return nil, err
	}
	if found.Length() == 0 {
		return nil, core.NotFound(by, nil)
	}
	return newElement(found.First()), nil
}

func findAll(scope *goquery.Selection, by core.By) ([]core.Element, error) {
	found, err := query(scope, by)
	if err != nil {
		return nil, err
	}
	elems := make([]core.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, newElement(s))
	})
	return elems, nil
}

// query evaluates by against the descendants of scope.
func query(scope *goquery.Selection, by core.By) (*goquery.Selection, error) {
	if css, ok := by.CSSSelector(); ok {
		matcher, err := cascadia.Compile(css)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %s: %w", by, err)
		}
		return scope.FindMatcher(matcher), nil
	}

	switch by.Strategy {
	case core.StrategyLinkText:
		return scope.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return normalizeText(s.Text()) == by.Value
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, by.Strategy)
	}
}

// normalizeText collapses whitespace runs the way rendered text does.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
