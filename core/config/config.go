package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/Ketchio-dev/note-web-sub000/pkg/lib/logging"
)

var log = logging.Logger("noteweb-config")

const envPrefix = "NOTEWEB"

// Config carries the injected knobs of the query core. It is resolved once
// at startup and passed down; nothing in the engines reads process state.
type Config struct {
	// TimeZone is the IANA name used for calendar-date comparisons in date
	// filters and sorts.
	TimeZone string `default:"UTC"`

	// ViewCacheSize bounds the memoized results kept by a ViewBuilder.
	ViewCacheSize int `default:"64" split_words:"true"`

	// BatchDelay is how long the records batcher waits to pack rapid
	// successive pushes into one recomputation.
	BatchDelay time.Duration `default:"100ms" split_words:"true"`
}

var DefaultConfig = Config{
	TimeZone:      "UTC",
	ViewCacheSize: 64,
	BatchDelay:    100 * time.Millisecond,
}

func WithTimeZone(tz string) func(*Config) {
	return func(c *Config) {
		c.TimeZone = tz
	}
}

func WithViewCacheSize(size int) func(*Config) {
	return func(c *Config) {
		c.ViewCacheSize = size
	}
}

func WithBatchDelay(d time.Duration) func(*Config) {
	return func(c *Config) {
		c.BatchDelay = d
	}
}

// New builds a Config from defaults, the NOTEWEB_* environment and the given
// options, in that order.
func New(options ...func(*Config)) (*Config, error) {
	cfg := DefaultConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.ViewCacheSize <= 0 {
		cfg.ViewCacheSize = DefaultConfig.ViewCacheSize
	}
	return &cfg, nil
}

// Location resolves TimeZone, falling back to UTC on an unknown name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Warnf("unknown time zone %q, falling back to UTC", c.TimeZone)
		return time.UTC
	}
	return loc
}
