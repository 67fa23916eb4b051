package timecalc

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option is an option for evaluation.
type Option interface {
	option(config) config
}

type (
	clockopt  func() time.Time
	loggeropt struct {
		log logrus.FieldLogger
	}
)

// config holds the settings for evaluating expressions. It is also an Option.
type config struct {
	// now returns the instant for the now keyword.
	now func() time.Time
	// log receives trace messages for each token and operation. Nil means
	// no tracing.
	log logrus.FieldLogger
}

// Clock sets the function the now keyword uses to get the current instant.
// The default is time.Now.
func Clock(now func() time.Time) Option {
	return clockopt(now)
}

func (o clockopt) option(c config) config {
	c.now = o
	return c
}

// Logger sets a logger to trace evaluation at debug level. Errors are
// returned, never logged.
func Logger(log logrus.FieldLogger) Option {
	return loggeropt{log}
}

func (o loggeropt) option(c config) config {
	c.log = o.log
	return c
}

// Preset bundles several options into one that can be reused for many
// contexts. A preset panics when applied after any other option, but it is
// safe to apply other options after a preset.
func Preset(opts ...Option) Option {
	var c config
	for _, opt := range opts {
		c = opt.option(c)
	}
	return &c
}

func (o *config) option(c config) config {
	if c.now != nil || c.log != nil {
		panic("timecalc: preset applied to non-default config")
	}
	return *o
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}
