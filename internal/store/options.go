package store

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/logger"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

type options struct {
	now Clock
	log logrus.FieldLogger
}

type Option func(*options)

func WithClock(c Clock) Option {
	return func(o *options) {
		o.now = c
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
