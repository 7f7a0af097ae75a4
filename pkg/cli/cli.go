// Package cli provides the command-line interface for selene.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/selene/pkg/config"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to selene.yaml",
		EnvVars: []string{"SELENE_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "driver",
		Aliases: []string{"d"},
		Usage:   "Driver to use (html, webdriver)",
		EnvVars: []string{"SELENE_DRIVER"},
	},
	&cli.StringSliceFlag{
		Name:    "html",
		Usage:   "HTML document for the html driver (repeatable)",
		EnvVars: []string{"SELENE_HTML"},
	},
	&cli.StringFlag{
		Name:    "webdriver-url",
		Usage:   "WebDriver server URL (for webdriver driver)",
		EnvVars: []string{"SELENE_WEBDRIVER_URL"},
	},
	&cli.StringFlag{
		Name:    "url",
		Usage:   "Page to open in each webdriver session",
		EnvVars: []string{"SELENE_URL"},
	},
	&cli.IntFlag{
		Name:    "timeout",
		Usage:   "Wait timeout in milliseconds",
		EnvVars: []string{"SELENE_TIMEOUT"},
	},
	&cli.IntFlag{
		Name:    "poll-interval",
		Usage:   "Wait poll interval in milliseconds",
		EnvVars: []string{"SELENE_POLL_INTERVAL"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"SELENE_VERBOSE"},
	},
	&cli.StringFlag{
		Name:  "report",
		Usage: "Write a JSON report to this path",
	},
	&cli.StringFlag{
		Name:  "junit",
		Usage: "Write a JUnit XML report to this path",
	},
}

// NewApp builds the selene application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "selene",
		Usage:   "Resolve lazy element locators against a page",
		Version: Version,
		Description: `Selene builds lazy locator chains and resolves them against a static
HTML document or a live WebDriver session.

A chain is a list of kind:argument steps separated by ">>":
  el:<css>      first match (from the page or inside the previous element)
  all:<css>     all matches (from the page or inside the previous element)
  index:<n>     n-th element of a collection, 0-based
  text:<s>      first element whose text equals s
  has:<s>       first element whose text contains s
  filter:<s>    elements whose text contains s
  match:<re>    elements whose text matches re

Examples:
  # Describe a chain without touching any page
  selene describe "el:#fruits >> all:li >> text:Banana"

  # Resolve against a local document
  selene --html page.html find "all:ul > li >> filter:an"

  # Resolve several chains on four WebDriver sessions
  selene --driver webdriver --url https://example.org batch --workers 4 "el:h1" "all:a"`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			describeCommand,
			findCommand,
			batchCommand,
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the run configuration: defaults, then the config
// file, then SELENE_* variables, then explicitly set flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}

	if c.IsSet("driver") {
		cfg.Driver = c.String("driver")
	}
	if c.IsSet("html") {
		cfg.HTML = c.StringSlice("html")
	}
	if c.IsSet("webdriver-url") {
		cfg.WebDriverURL = c.String("webdriver-url")
	}
	if c.IsSet("url") {
		cfg.URL = c.String("url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Int("timeout")
	}
	if c.IsSet("poll-interval") {
		cfg.PollInterval = c.Int("poll-interval")
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger writes to the app's error writer; verbose enables wait
// diagnostics.
func newLogger(c *cli.Context, verbose bool) *logrus.Logger {
	var out io.Writer = os.Stderr
	if c.App.ErrWriter != nil {
		out = c.App.ErrWriter
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
