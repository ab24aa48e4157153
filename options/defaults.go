package options

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/robbyt/go-formlogic/data"
)

const (
	// DefaultPassFactor bounds the calculation loop at 2 × field count.
	DefaultPassFactor = 2
	// DefaultScaleMin and DefaultScaleMax are the fallback rating range.
	DefaultScaleMin = 1.0
	DefaultScaleMax = 10.0
)

// DefaultLocale is used for display formatting when none is set.
var DefaultLocale = language.AmericanEnglish

// DefaultCurrency is used for the currency display type when none is set.
var DefaultCurrency = currency.USD

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		handler:      DefaultHandler(),
		locale:       DefaultLocale,
		currency:     DefaultCurrency,
		scaleMin:     DefaultScaleMin,
		scaleMax:     DefaultScaleMax,
		passFactor:   DefaultPassFactor,
		dataProvider: DefaultDataProvider(),
	}
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// DefaultDataProvider returns the default data provider, reading input
// stored in the context under data.EvalData
func DefaultDataProvider() data.Provider {
	return data.NewContextProvider(data.EvalData)
}

// WithDefaults applies default values to any config properties that are unset
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.dataProvider == nil {
			c.dataProvider = DefaultDataProvider()
		}
		if c.locale == language.Und {
			c.locale = DefaultLocale
		}
		if c.currency == (currency.Unit{}) {
			c.currency = DefaultCurrency
		}
		if c.passFactor == 0 {
			c.passFactor = DefaultPassFactor
		}
		if c.scaleMin == 0 && c.scaleMax == 0 {
			c.scaleMin, c.scaleMax = DefaultScaleMin, DefaultScaleMax
		}
		return nil
	}
}

// New builds a Config from the defaults, opts and a final WithDefaults pass,
// then validates it.
func New(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	if err := WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
