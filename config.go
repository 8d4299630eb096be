package rrcache

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/prometheus/client_golang/prometheus"
)

// Config is the on-disk configuration for a Facade, decoded from TOML:
// one or more files concatenated and decoded as a single document.
type Config struct {
	Title string

	MaxCacheSize  int `toml:"max-cache-size"` // 0 disables caching (routes through Noop)
	QueueCapacity int `toml:"queue-capacity"` // 0 means defaultQueueCapacity

	Logger  LoggerConfig
	Metrics MetricsConfig
}

// LoggerConfig selects and configures the Logger a Facade is built with.
type LoggerConfig struct {
	Type   string `toml:"type"` // "silent" (default), "logrus" or "syslog"
	Syslog SyslogConfig
}

// SyslogConfig configures NewSyslogLogger. Network/Address left empty
// dials the local syslog daemon.
type SyslogConfig struct {
	Network  string
	Address  string
	Tag      string
	Priority string `toml:"priority"` // e.g. "NOTICE", "LOCAL0", see ParsePriority
}

// MetricsConfig controls whether a Facade registers Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
}

// LoadConfig reads and decodes one or more TOML config files, concatenating
// them into a single document before decoding.
func LoadConfig(names ...string) (Config, error) {
	b := new(bytes.Buffer)
	var c Config
	for _, name := range names {
		if err := loadConfigFile(b, name); err != nil {
			return c, err
		}
		b.WriteString("\n")
	}
	_, err := toml.DecodeReader(b, &c)
	return c, err
}

func loadConfigFile(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// NewFromConfig builds the Service cfg describes: a Noop if
// MaxCacheSize is 0 (Open Question 1's decision), otherwise a Facade
// with the configured queue capacity, logger and metrics, started under
// ctx.
func NewFromConfig(ctx context.Context, cfg Config, source TimeSource) (Service, error) {
	if cfg.MaxCacheSize == 0 {
		return NewNoop(), nil
	}

	logger, err := cfg.Logger.BuildLogger()
	if err != nil {
		return nil, err
	}

	opts := []FacadeOption{WithLogger(logger)}
	if cfg.Metrics.Enabled {
		opts = append(opts, WithMetrics(NewMetrics(prometheus.DefaultRegisterer)))
	}
	return NewFacade(ctx, cfg.MaxCacheSize, cfg.QueueCapacity, source, opts...), nil
}

// BuildLogger turns a LoggerConfig into a Logger, per its Type.
func (c LoggerConfig) BuildLogger() (Logger, error) {
	switch c.Type {
	case "", "silent":
		return Silent{}, nil
	case "logrus":
		return NewLogrusLogger(nil, nil), nil
	case "syslog":
		return NewSyslogLogger(c.Syslog.Network, c.Syslog.Address, c.Syslog.Tag, c.Syslog.Priority)
	default:
		return Silent{}, nil
	}
}
