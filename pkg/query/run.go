package query

import (
	"errors"
	"time"

	"github.com/devicelab-dev/selene/pkg/condition"
	"github.com/devicelab-dev/selene/pkg/core"
	"github.com/devicelab-dev/selene/pkg/report"
)

// Resolve resolves the target and captures what it found. Element targets
// wait for visibility; collection targets are read once.
func (t Target) Resolve() report.Result {
	start := time.Now()
	result := report.Result{Description: t.String()}

	var elems []core.Element
	var err error
	if t.Element != nil {
		var elem core.Element
		elem, err = t.Element.ResolveAfter(condition.Visible)
		if err == nil {
			elems = []core.Element{elem}
		}
	} else {
		elems, err = t.Collection.Snapshot()
	}

	if err == nil {
		for _, elem := range elems {
			var text, markup string
			if text, err = elem.Text(); err != nil {
				break
			}
			if markup, err = elem.OuterHTML(); err != nil {
				break
			}
			result.Elements = append(result.Elements, report.Element{Text: text, HTML: markup})
		}
	}

	result.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = report.StatusFailed
		result.Error = err.Error()
		if kind := core.KindOf(err); kind != 0 {
			result.ErrorKind = kind.String()
			if cause := innermostKind(err); cause != kind {
				result.CauseKind = cause.String()
			}
		}
		return result
	}
	result.Status = report.StatusPassed
	return result
}

// innermostKind returns the Kind of the deepest *core.Error in err's chain.
func innermostKind(err error) core.Kind {
	var kind core.Kind
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*core.Error); ok {
			kind = e.Kind
		}
	}
	return kind
}
