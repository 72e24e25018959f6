package config

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// eventLogger is a logrus hook that keeps the run's warn-and-above entries
// so the final report and the status server can surface them after the
// fact.
type eventLogger struct {
	mu         sync.Mutex
	eventStack []*logrus.Entry
}

func NewEventLogger() *eventLogger {
	return &eventLogger{}
}

func (e *eventLogger) Fire(entry *logrus.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventStack = append(e.eventStack, entry)
	return nil
}

func (e *eventLogger) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	}
}

func (e *eventLogger) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventStack = nil
}

func (e *eventLogger) GetEvents() []*logrus.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*logrus.Entry, len(e.eventStack))
	copy(out, e.eventStack)
	return out
}

// SetupLogging configures the global logrus instance from the config and
// installs the event hook. Returns the hook so callers can read back the
// buffered events.
func (c *Config) SetupLogging(verbose bool) *eventLogger {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	hook := NewEventLogger()
	logrus.AddHook(hook)
	return hook
}
