package loader

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// InferLoader picks a loader for input:
//   - string: a file:// URL or a path is read from disk, http and https are
//     rejected, anything else is inline content
//   - []byte: NewFromBytes
//   - io.Reader: FromIoReader
//   - Loader: returned as-is
func InferLoader(input any) (Loader, error) {
	switch v := input.(type) {
	case string:
		return inferFromString(v)
	case []byte:
		return NewFromBytes(v)
	case Loader:
		return v, nil
	case io.Reader:
		return NewFromIoReader(v, "inferred")
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func inferFromString(input string) (Loader, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty string input", ErrDocumentNotAvailable)
	}
	if looksLikeContent(input) {
		return NewFromString(input)
	}

	if parsed, err := url.Parse(input); err == nil && parsed.Scheme != "" && len(parsed.Scheme) > 1 {
		switch parsed.Scheme {
		case "http", "https":
			return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, parsed.Scheme)
		case "file":
			return diskLoader(parsed.Path)
		}
	}

	if looksLikePath(input) {
		return diskLoader(input)
	}
	return NewFromString(input)
}

// looksLikeContent reports whether input is an inline document rather than
// a location.
func looksLikeContent(input string) bool {
	return input[0] == '{' || input[0] == '[' || strings.ContainsAny(input, "\n\r")
}

func looksLikePath(input string) bool {
	if filepath.IsAbs(input) || strings.ContainsAny(input, `/\`) {
		return true
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func diskLoader(path string) (Loader, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve relative path %q: %w", path, err)
		}
		path = abs
	}
	return NewFromDisk(path)
}
