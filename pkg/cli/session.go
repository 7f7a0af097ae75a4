package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/selene/pkg/config"
	"github.com/devicelab-dev/selene/pkg/executor"
	"github.com/devicelab-dev/selene/pkg/htmldoc"
	"github.com/devicelab-dev/selene/pkg/selene"
	"github.com/devicelab-dev/selene/pkg/webdriver"
)

// pages lists what each batch of sessions is opened on: one entry per
// document for the html driver, the configured URL for webdriver.
func pages(cfg config.Config) []string {
	if cfg.Driver == config.DriverHTML {
		return cfg.HTML
	}
	return []string{cfg.URL}
}

// openSessions opens n independent sessions on page. Sessions opened before
// a failure are cleaned up.
func openSessions(cfg config.Config, page string, n int, log logrus.FieldLogger) ([]executor.Session, error) {
	sessions := make([]executor.Session, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s#%d", page, i)
		s, err := openSession(cfg, page, id, log.WithField("session", id))
		if err != nil {
			for _, opened := range sessions {
				opened.Cleanup()
			}
			return nil, fmt.Errorf("session %s: %w", id, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func openSession(cfg config.Config, page, id string, log logrus.FieldLogger) (executor.Session, error) {
	opts := []selene.Option{
		selene.WithTimeout(cfg.TimeoutDuration()),
		selene.WithPollInterval(cfg.PollDuration()),
		selene.WithLogger(log),
	}

	switch cfg.Driver {
	case config.DriverHTML:
		doc, err := htmldoc.LoadFile(page)
		if err != nil {
			return executor.Session{}, err
		}
		return executor.Session{
			ID:      id,
			Browser: selene.New(doc, opts...),
			Cleanup: func() {},
		}, nil

	case config.DriverWebDriver:
		client := webdriver.NewClient(cfg.WebDriverURL)
		if err := client.CreateSession(webdriver.Capabilities(cfg.Capabilities)); err != nil {
			return executor.Session{}, err
		}
		if page != "" {
			if err := client.Navigate(page); err != nil {
				_ = client.Close()
				return executor.Session{}, err
			}
		}
		log.WithField("webdriver", client.SessionID()).Debug("session created")
		return executor.Session{
			ID:      id,
			Browser: selene.New(client, opts...),
			Cleanup: func() {
				if err := client.Close(); err != nil {
					log.WithError(err).Warn("failed to close session")
				}
			},
		}, nil

	default:
		return executor.Session{}, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
