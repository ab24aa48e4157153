package options

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/robbyt/go-formlogic/data"
)

// MockProvider is a testify mock implementation of data.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetData(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(map[string]any)
	return d, args.Error(1)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := New()
		require.NoError(t, err)
		require.NotNil(t, cfg.GetHandler())
		require.NotNil(t, cfg.GetDataProvider())
		assert.Equal(t, DefaultLocale, cfg.GetLocale())
		assert.Equal(t, DefaultCurrency, cfg.GetCurrency())
		assert.Equal(t, DefaultPassFactor, cfg.GetPassFactor())
		minimum, maximum := cfg.GetScaleRange()
		assert.InDelta(t, DefaultScaleMin, minimum, 0)
		assert.InDelta(t, DefaultScaleMax, maximum, 0)
		assert.False(t, cfg.PrefillSeeding())
		assert.IsType(t, &data.ContextProvider{}, cfg.GetDataProvider())
	})

	t.Run("all options", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, nil)
		provider := &MockProvider{}

		cfg, err := New(
			WithLogHandler(handler),
			WithLocale(language.BritishEnglish),
			WithCurrency(currency.EUR),
			WithScaleRange(0, 5),
			WithPassFactor(4),
			WithDataProvider(provider),
			WithPrefillSeeding(true),
		)
		require.NoError(t, err)
		assert.Equal(t, handler, cfg.GetHandler())
		assert.Equal(t, language.BritishEnglish, cfg.GetLocale())
		assert.Equal(t, currency.EUR, cfg.GetCurrency())
		assert.Equal(t, 4, cfg.GetPassFactor())
		assert.Same(t, provider, cfg.GetDataProvider())
		assert.True(t, cfg.PrefillSeeding())
		minimum, maximum := cfg.GetScaleRange()
		assert.InDelta(t, 0.0, minimum, 0)
		assert.InDelta(t, 5.0, maximum, 0)
	})

	t.Run("with slog", func(t *testing.T) {
		t.Parallel()
		logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		cfg, err := New(WithSlog(logger))
		require.NoError(t, err)
		assert.Equal(t, logger.Handler(), cfg.GetHandler())
	})

	t.Run("nil values keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := New(WithLogHandler(nil), WithSlog(nil), WithDataProvider(nil))
		require.NoError(t, err)
		assert.NotNil(t, cfg.GetHandler())
		assert.NotNil(t, cfg.GetDataProvider())
	})
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{"undefined locale", WithLocale(language.Und)},
		{"undefined currency", WithCurrency(currency.Unit{})},
		{"inverted scale", WithScaleRange(10, 1)},
		{"zero pass factor", WithPassFactor(0)},
		{"negative pass factor", WithPassFactor(-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := New(tt.opt)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidOption)
			assert.Contains(t, err.Error(), "error applying option")
			assert.Nil(t, cfg)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills empty config", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		require.Error(t, cfg.Validate())
		require.NoError(t, WithDefaults()(cfg))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultPassFactor, cfg.GetPassFactor())
		assert.Equal(t, DefaultLocale, cfg.GetLocale())
	})

	t.Run("keeps values already set", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		require.NoError(t, WithPassFactor(7)(cfg))
		require.NoError(t, WithScaleRange(0, 3)(cfg))
		require.NoError(t, WithDefaults()(cfg))
		assert.Equal(t, 7, cfg.GetPassFactor())
		minimum, maximum := cfg.GetScaleRange()
		assert.InDelta(t, 0.0, minimum, 0)
		assert.InDelta(t, 3.0, maximum, 0)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()
		err := (&Config{}).Validate()
		require.Error(t, err)
		msg := err.Error()
		assert.Contains(t, msg, "no logger specified")
		assert.Contains(t, msg, "no data provider specified")
		assert.Contains(t, msg, "pass factor must be at least 1")
		assert.Contains(t, msg, "no locale specified")
	})

	t.Run("setters", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		handler := slog.NewTextHandler(&bytes.Buffer{}, nil)
		provider := data.NewStaticProvider(map[string]any{})
		cfg.SetHandler(handler)
		cfg.SetDataProvider(provider)
		assert.Equal(t, handler, cfg.GetHandler())
		assert.Same(t, provider, cfg.GetDataProvider())
		require.NoError(t, cfg.Validate())
	})
}
