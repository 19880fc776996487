package numbers

import (
	"fmt"
	"log"
	"strconv"
	"time"
)

const (
	DefaultPort                 = "4000"
	DefaultConcurrency          = 5
	DefaultReportInterval       = 10 * time.Second
	DefaultShutdownPollInterval = time.Second
)

type Config struct {
	// Port to listen on. "0" picks a free port.
	Port string

	// Concurrency caps the number of connections handled at once.
	Concurrency int

	ReportInterval       time.Duration
	ShutdownPollInterval time.Duration

	// MetricsAddr serves /metrics when non-empty, e.g. ":9090".
	MetricsAddr string

	// Debug adds a queue/memory line to every report.
	Debug bool

	// Status receives the periodic report lines.
	Status *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.ReportInterval <= 0 {
		c.ReportInterval = DefaultReportInterval
	}
	if c.ShutdownPollInterval <= 0 {
		c.ShutdownPollInterval = DefaultShutdownPollInterval
	}
	if c.Status == nil {
		c.Status = log.Default()
	}
	return c
}

// ConfigFromEnv builds a Config from environment variables. Unset variables keep
// their defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        getenv("PORT"),
		MetricsAddr: getenv("METRICS_ADDR"),
	}

	if v := getenv("CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.Concurrency = n
	}

	var err error
	if cfg.ReportInterval, err = durationEnv(getenv, "REPORT_INTERVAL"); err != nil {
		return cfg, err
	}
	if cfg.ShutdownPollInterval, err = durationEnv(getenv, "SHUTDOWN_POLL_INTERVAL"); err != nil {
		return cfg, err
	}

	if v := getenv("DEBUG"); v != "" {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("DEBUG: %w", err)
		}
	}

	return cfg.withDefaults(), nil
}

func durationEnv(getenv func(string) string, key string) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, v)
	}
	return d, nil
}
