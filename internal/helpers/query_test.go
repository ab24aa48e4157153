package helpers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			name: "empty query",
			in:   "",
			want: map[string]string{},
		},
		{
			name: "leading question mark",
			in:   "?name=Ada",
			want: map[string]string{"name": "Ada"},
		},
		{
			name: "values stay encoded",
			in:   "name=Ada+Lovelace&email=a%2Bb%40example.com",
			want: map[string]string{"name": "Ada+Lovelace", "email": "a%2Bb%40example.com"},
		},
		{
			name: "first occurrence wins",
			in:   "a=1&a=2",
			want: map[string]string{"a": "1"},
		},
		{
			name: "key without value",
			in:   "flag&x=1",
			want: map[string]string{"flag": "", "x": "1"},
		},
		{
			name: "encoded key is decoded",
			in:   "first%5Fname=Ada",
			want: map[string]string{"first_name": "Ada"},
		},
		{
			name: "empty pairs are skipped",
			in:   "&&a=1&",
			want: map[string]string{"a": "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RawQueryParams(tt.in))
		})
	}
}

func TestRequestQueryParams(t *testing.T) {
	t.Parallel()

	t.Run("nil request", func(t *testing.T) {
		assert.Empty(t, RequestQueryParams(nil))
	})

	t.Run("request with query", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "http://localhost:8080/f/1?utm=x&name=Ada%20L", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"utm": "x", "name": "Ada%20L"}, RequestQueryParams(req))
	})
}

func TestDecodeQueryComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plus becomes space", in: "Ada+Lovelace", want: "Ada Lovelace"},
		{name: "percent escapes", in: "a%2Bb%40example.com", want: "a+b@example.com"},
		{name: "malformed escape", in: "100%+sure", want: "100% sure"},
		{name: "plain", in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeQueryComponent(tt.in))
		})
	}
}
