// Package executor resolves queries across independent browser sessions.
package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/selene/pkg/query"
	"github.com/devicelab-dev/selene/pkg/report"
	"github.com/devicelab-dev/selene/pkg/selene"
)

// Session is one worker's own browser session. Sessions share nothing.
type Session struct {
	ID      string
	Browser *selene.Browser
	Cleanup func()
}

// workItem is a query and its index in the original list.
type workItem struct {
	query query.Query
	index int
}

// ParallelRunner resolves queries on several sessions at once.
type ParallelRunner struct {
	sessions []Session
	log      logrus.FieldLogger
}

// formatDuration formats milliseconds as human-readable duration
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	secs := int(seconds) % 60
	return fmt.Sprintf("%dm%ds", minutes, secs)
}

// NewParallelRunner creates a runner with one worker per session.
func NewParallelRunner(sessions []Session, log logrus.FieldLogger) *ParallelRunner {
	return &ParallelRunner{sessions: sessions, log: log}
}

// Run resolves queries using a work queue; every worker pulls from the same
// queue until it is drained. Results keep the order of queries.
func (pr *ParallelRunner) Run(ctx context.Context, queries []query.Query) ([]report.Result, error) {
	if len(pr.sessions) == 0 {
		return nil, fmt.Errorf("no sessions available")
	}

	workQueue := make(chan workItem, len(queries))
	for i, q := range queries {
		workQueue <- workItem{query: q, index: i}
	}
	close(workQueue)

	results := make([]report.Result, len(queries))
	var wg sync.WaitGroup

	for i := range pr.sessions {
		wg.Add(1)
		go func(s Session) {
			defer wg.Done()
			log := pr.log.WithField("session", s.ID)

			for item := range workQueue {
				res := pr.resolve(ctx, s, item.query)
				results[item.index] = res

				entry := log.WithFields(logrus.Fields{
					"query":    item.query.Source,
					"duration": formatDuration(res.DurationMs),
				})
				if res.Status == report.StatusFailed {
					entry.WithField("kind", res.ErrorKind).Warn("query failed")
				} else {
					entry.WithField("elements", len(res.Elements)).Info("query resolved")
				}
			}
		}(pr.sessions[i])
	}

	wg.Wait()

	for i := range pr.sessions {
		if pr.sessions[i].Cleanup != nil {
			pr.sessions[i].Cleanup()
		}
	}

	return results, nil
}

func (pr *ParallelRunner) resolve(ctx context.Context, s Session, q query.Query) report.Result {
	if err := ctx.Err(); err != nil {
		return report.Result{Query: q.Source, Session: s.ID, Status: report.StatusFailed, Error: err.Error()}
	}

	target, err := q.Build(s.Browser)
	if err != nil {
		return report.Result{Query: q.Source, Session: s.ID, Status: report.StatusFailed, Error: err.Error()}
	}

	res := target.Resolve()
	res.Query = q.Source
	res.Session = s.ID
	return res
}
