package helpers

import (
	"net/http"
	"strings"
)

// RawQueryParams splits a raw URL query string into its parameters without
// decoding the values. The first occurrence of a repeated key wins. Keys are
// decoded so callers can match them against configured parameter names.
func RawQueryParams(rawQuery string) map[string]string {
	params := make(map[string]string)
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return params
	}

	for pair := range strings.SplitSeq(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = DecodeQueryComponent(key)
		if key == "" {
			continue
		}
		if _, exists := params[key]; exists {
			continue
		}
		params[key] = value
	}
	return params
}

// RequestQueryParams extracts the raw query parameters from an HTTP request.
// A nil request or a request without a URL yields an empty map.
func RequestQueryParams(r *http.Request) map[string]string {
	if r == nil || r.URL == nil {
		return make(map[string]string)
	}
	return RawQueryParams(r.URL.RawQuery)
}
