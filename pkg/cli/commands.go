package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/selene/pkg/executor"
	"github.com/devicelab-dev/selene/pkg/query"
	"github.com/devicelab-dev/selene/pkg/report"
	"github.com/devicelab-dev/selene/pkg/selene"
)

var describeCommand = &cli.Command{
	Name:      "describe",
	Usage:     "Print the description of each chain without resolving it",
	ArgsUsage: "<chain>...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("describe needs at least one chain")
		}
		queries, err := parseQueries(c.Args().Slice())
		if err != nil {
			return err
		}
		// A browser without a driver: building a chain never touches it.
		b := selene.New(nil)
		for _, q := range queries {
			target, err := q.Build(b)
			if err != nil {
				return fmt.Errorf("%s: %w", q.Source, err)
			}
			fmt.Fprintln(c.App.Writer, target.String())
		}
		return nil
	},
}

var findCommand = &cli.Command{
	Name:      "find",
	Usage:     "Resolve one chain and print what it found",
	ArgsUsage: "<chain>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("find needs exactly one chain")
		}
		return run(c, c.Args().Slice(), 1)
	},
}

var batchCommand = &cli.Command{
	Name:      "batch",
	Usage:     "Resolve several chains in parallel sessions",
	ArgsUsage: "<chain>...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Number of parallel sessions per page",
			Value:   2,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("batch needs at least one chain")
		}
		workers := c.Int("workers")
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1")
		}
		return run(c, c.Args().Slice(), workers)
	},
}

func parseQueries(exprs []string) ([]query.Query, error) {
	queries := make([]query.Query, 0, len(exprs))
	for _, expr := range exprs {
		q, err := query.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", expr, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// run resolves exprs on every page with the given number of sessions per
// page, prints the results and writes the requested reports.
func run(c *cli.Context, exprs []string, workers int) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	queries, err := parseQueries(exprs)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg.Verbose)

	start := time.Now()
	var results []report.Result
	for _, page := range pages(cfg) {
		sessions, err := openSessions(cfg, page, workers, log)
		if err != nil {
			return err
		}
		pageResults, err := executor.NewParallelRunner(sessions, log).Run(c.Context, queries)
		if err != nil {
			return err
		}
		results = append(results, pageResults...)
	}
	rep := report.New(cfg.Driver, start, time.Now(), results)

	printResults(c.App.Writer, rep)

	if path := c.String("report"); path != "" {
		if err := report.WriteJSON(path, rep); err != nil {
			return err
		}
	}
	if path := c.String("junit"); path != "" {
		if err := report.WriteJUnit(path, rep); err != nil {
			return err
		}
	}

	if rep.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d queries failed", rep.Summary.Failed, rep.Summary.Total)
	}
	return nil
}

func printResults(w io.Writer, rep *report.Report) {
	for _, res := range rep.Results {
		mark := "PASS"
		if res.Status == report.StatusFailed {
			mark = "FAIL"
		}
		name := res.Description
		if name == "" {
			name = res.Query
		}
		fmt.Fprintf(w, "%s  %s  [%s]\n", mark, name, res.Session)
		if res.Error != "" {
			fmt.Fprintf(w, "      %s\n", res.Error)
			continue
		}
		for i, elem := range res.Elements {
			fmt.Fprintf(w, "  %2d. %s\n", i, elem.Text)
		}
	}
	fmt.Fprintf(w, "\n%d queries: %d passed, %d failed\n", rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed)
}
