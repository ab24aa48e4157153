package options

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/robbyt/go-formlogic/data"
)

// Config holds all configuration for creating an evaluator
type Config struct {
	// Logger for the evaluator and its resolvers
	handler slog.Handler
	// Locale for grouped numbers, currency and dates
	locale language.Tag
	// Currency for the currency display type
	currency currency.Unit
	// Fallback range for rating and scale prefill
	scaleMin, scaleMax float64
	// Calculation pass bound is passFactor × field count
	passFactor int
	// Data provider for Eval
	dataProvider data.Provider
	// Fill unanswered fields with their prefill value before evaluating
	prefillSeeding bool
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithSlog sets the log handler from an existing logger
func WithSlog(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger != nil {
			c.handler = logger.Handler()
		}
		return nil
	}
}

// WithLocale sets the locale used for display formatting
func WithLocale(tag language.Tag) Option {
	return func(c *Config) error {
		if tag == language.Und {
			return fmt.Errorf("%w: locale is undefined", ErrInvalidOption)
		}
		c.locale = tag
		return nil
	}
}

// WithCurrency sets the currency for the currency display type
func WithCurrency(unit currency.Unit) Option {
	return func(c *Config) error {
		if unit == (currency.Unit{}) {
			return fmt.Errorf("%w: currency is undefined", ErrInvalidOption)
		}
		c.currency = unit
		return nil
	}
}

// WithScaleRange sets the fallback range for rating and scale fields
func WithScaleRange(minimum, maximum float64) Option {
	return func(c *Config) error {
		if minimum > maximum {
			return fmt.Errorf("%w: scale minimum %v is above maximum %v", ErrInvalidOption, minimum, maximum)
		}
		c.scaleMin, c.scaleMax = minimum, maximum
		return nil
	}
}

// WithPassFactor sets the calculation pass bound to factor × field count
func WithPassFactor(factor int) Option {
	return func(c *Config) error {
		if factor < 1 {
			return fmt.Errorf("%w: pass factor must be at least 1, got %d", ErrInvalidOption, factor)
		}
		c.passFactor = factor
		return nil
	}
}

// WithDataProvider sets the data provider used by Eval
func WithDataProvider(provider data.Provider) Option {
	return func(c *Config) error {
		if provider != nil {
			c.dataProvider = provider
		}
		return nil
	}
}

// WithPrefillSeeding makes prefilled values count as answers for fields the
// respondent has not answered yet
func WithPrefillSeeding(enabled bool) Option {
	return func(c *Config) error {
		c.prefillSeeding = enabled
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	var errz []error
	if c.handler == nil {
		errz = append(errz, errors.New("no logger specified"))
	}
	if c.dataProvider == nil {
		errz = append(errz, errors.New("no data provider specified"))
	}
	if c.passFactor < 1 {
		errz = append(errz, fmt.Errorf("pass factor must be at least 1, got %d", c.passFactor))
	}
	if c.scaleMin > c.scaleMax {
		errz = append(errz, fmt.Errorf("scale minimum %v is above maximum %v", c.scaleMin, c.scaleMax))
	}
	if c.locale == language.Und {
		errz = append(errz, errors.New("no locale specified"))
	}
	return errors.Join(errz...)
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetLocale returns the configured locale
func (c *Config) GetLocale() language.Tag {
	return c.locale
}

// GetCurrency returns the configured currency
func (c *Config) GetCurrency() currency.Unit {
	return c.currency
}

// GetScaleRange returns the fallback rating and scale range
func (c *Config) GetScaleRange() (float64, float64) {
	return c.scaleMin, c.scaleMax
}

// GetPassFactor returns the calculation pass factor
func (c *Config) GetPassFactor() int {
	return c.passFactor
}

// GetDataProvider returns the configured data provider
func (c *Config) GetDataProvider() data.Provider {
	return c.dataProvider
}

// SetDataProvider sets the data provider
func (c *Config) SetDataProvider(provider data.Provider) {
	c.dataProvider = provider
}

// PrefillSeeding reports whether prefilled values seed unanswered fields
func (c *Config) PrefillSeeding() bool {
	return c.prefillSeeding
}
