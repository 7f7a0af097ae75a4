// Package selene provides the search contexts built on top of the
// locators: an Element or Collection owns a locator and adds
// wait-then-access behavior and fluent chaining.
//
//	b := selene.New(driver, selene.WithTimeout(2*time.Second))
//	item := b.All(core.CSS("ul > li")).FindBy(condition.ExactText("Banana"))
//	text, err := item.Text()
//
// Chaining never touches the browser; only resolving does.
package selene

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/selene/pkg/core"
	"github.com/devicelab-dev/selene/pkg/locator"
	"github.com/devicelab-dev/selene/pkg/wait"
)

// Browser is the entry point for one driver session.
type Browser struct {
	driver core.Driver
	ctx    context.Context
	opts   wait.Options
	log    logrus.FieldLogger
}

// Option configures a Browser.
type Option func(*Browser)

// WithTimeout sets how long ResolveAfter waits for a condition.
func WithTimeout(d time.Duration) Option {
	return func(b *Browser) { b.opts.Timeout = d }
}

// WithPollInterval sets how often a condition is re-evaluated.
func WithPollInterval(d time.Duration) Option {
	return func(b *Browser) { b.opts.Poll = d }
}

// WithLogger sets the logger used for wait diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Browser) { b.log = l }
}

// WithContext bounds every wait by ctx.
func WithContext(ctx context.Context) Option {
	return func(b *Browser) { b.ctx = ctx }
}

// New creates a Browser over driver.
func New(driver core.Driver, opts ...Option) *Browser {
	b := &Browser{
		driver: driver,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		b.log = l
	}
	return b
}

// Driver returns the underlying driver.
func (b *Browser) Driver() core.Driver {
	return b.driver
}

// Element returns a lazy context for the first element matching by.
func (b *Browser) Element(by core.By) *Element {
	return b.newElement(locator.NewDriverElement(b.driver, by))
}

// All returns a lazy context for every element matching by.
func (b *Browser) All(by core.By) *Collection {
	return b.newCollection(locator.NewDriverCollection(b.driver, by))
}

// WrapElement lifts an already found handle into a context.
func (b *Browser) WrapElement(description string, elem core.Element) *Element {
	return b.newElement(locator.NewWrappedElement(description, elem))
}

// WrapAll lifts already found handles into a collection context.
func (b *Browser) WrapAll(description string, elems []core.Element) *Collection {
	return b.newCollection(locator.NewWrappedCollection(description, elems))
}

// ElementContext implements core.ContextFactory.
func (b *Browser) ElementContext(src core.ElementSource) core.ElementContext {
	return b.newElement(src)
}

func (b *Browser) newElement(src core.ElementSource) *Element {
	return &Element{source: src, browser: b}
}

func (b *Browser) newCollection(loc locator.CollectionLocator) *Collection {
	return &Collection{locator: loc, browser: b}
}

// waitFor polls check with the browser's options, logging attempts against
// the given context description. A timeout carries the error of the last
// failed attempt as its cause; no extra resolution is made to find it.
func (b *Browser) waitFor(subject, explain string, check wait.Check) error {
	opts := b.opts
	opts.Log = b.log.WithField("locator", subject)
	return wait.Until(b.ctx, opts, subject+" to satisfy "+explain, check)
}
