package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/robbyt/go-formlogic/options"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// LogLevel is debug, info, warn or error. ENV: FORMLOGIC_LOG_LEVEL
	LogLevel string `env:"FORMLOGIC_LOG_LEVEL,default=warn"`
	// LogFormat is text or json. ENV: FORMLOGIC_LOG_FORMAT
	LogFormat string `env:"FORMLOGIC_LOG_FORMAT,default=text"`
	// Locale is a BCP 47 tag used for display formatting. ENV: FORMLOGIC_LOCALE
	Locale string `env:"FORMLOGIC_LOCALE,default=en-US"`
	// Currency is an ISO 4217 code. ENV: FORMLOGIC_CURRENCY
	Currency string `env:"FORMLOGIC_CURRENCY,default=USD"`
	// ScaleMin and ScaleMax bound rating and scale prefill. ENV: FORMLOGIC_SCALE_MIN, FORMLOGIC_SCALE_MAX
	ScaleMin float64 `env:"FORMLOGIC_SCALE_MIN,default=1"`
	ScaleMax float64 `env:"FORMLOGIC_SCALE_MAX,default=10"`
}

// loadConfig decodes Config from the environment.
func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Handler builds the log handler writing to w.
func (c Config) Handler(w io.Writer) (slog.Handler, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("FORMLOGIC_LOG_LEVEL: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("FORMLOGIC_LOG_FORMAT: unknown format %q", c.LogFormat)
	}
}

// Options converts the configuration into evaluator options.
func (c Config) Options(handler slog.Handler) ([]options.Option, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("FORMLOGIC_LOCALE: %w", err)
	}
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return nil, fmt.Errorf("FORMLOGIC_CURRENCY: %w", err)
	}
	return []options.Option{
		options.WithLogHandler(handler),
		options.WithLocale(tag),
		options.WithCurrency(unit),
		options.WithScaleRange(c.ScaleMin, c.ScaleMax),
	}, nil
}
