package helpers

import (
	"net/url"
	"strings"
)

// DecodeQueryComponent URL-decodes a single query component, turning '+' into
// a space. Malformed percent escapes fall back to the raw text with only the
// '+' substitution applied, so a bad link never drops the parameter.
func DecodeQueryComponent(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return strings.ReplaceAll(raw, "+", " ")
	}
	return decoded
}
