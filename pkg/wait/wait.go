// Package wait polls a check until it holds or a timeout elapses.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/devicelab-dev/selene/pkg/core"
)

// Defaults applied to zero Options fields.
const (
	DefaultTimeout = 4 * time.Second
	DefaultPoll    = 100 * time.Millisecond
)

// Options configures a single wait.
type Options struct {
	Timeout time.Duration
	Poll    time.Duration
	Log     logrus.FieldLogger // nil disables attempt logging
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Poll <= 0 {
		o.Poll = DefaultPoll
	}
	return o
}

// Check reports whether the awaited state holds. A non-nil error does not
// stop the wait; the last one is attached to the timeout error.
type Check func() (bool, error)

// Until evaluates check immediately and then once per poll interval until it
// returns true. It fails with a WaitTimeout *core.Error when the timeout
// elapses or ctx is done first.
func Until(ctx context.Context, opts Options, description string, check Check) error {
	opts = opts.withDefaults()

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	// Burst of one: the first Wait returns at once.
	limiter := rate.NewLimiter(rate.Every(opts.Poll), 1)

	var lastErr error
	attempt := 0
	try := func() bool {
		attempt++
		ok, err := check()
		if ok {
			return true
		}
		if err != nil {
			lastErr = err
		}
		if opts.Log != nil {
			opts.Log.WithFields(logrus.Fields{
				"condition": description,
				"attempt":   attempt,
			}).WithError(err).Debug("wait: condition not met")
		}
		return false
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			// The limiter refuses a token that would arrive past the
			// deadline; sit out the remainder and check once more.
			if ctx.Err() == nil {
				<-ctx.Done()
				if parent.Err() == nil && try() {
					return nil
				}
			}
			if lastErr == nil && errors.Is(parent.Err(), context.Canceled) {
				lastErr = parent.Err()
			}
			break
		}
		if try() {
			return nil
		}
	}

	return &core.Error{
		Kind:    core.WaitTimeout,
		Message: fmt.Sprintf("timed out after %s waiting for %s (%d attempts)", opts.Timeout, description, attempt),
		Err:     lastErr,
	}
}
