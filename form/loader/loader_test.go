package loader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

const jsonDocument = `{"id":"signup","fields":[{"id":"name","type":"text"},{"id":"age","type":"number"}]}`

const yamlDocument = `id: signup
fields:
  - id: name
    type: text
  - id: age
    type: number
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readContent(t *testing.T, l Loader) string {
	t.Helper()
	content, err := ReadAll(l)
	require.NoError(t, err)
	return string(content)
}

func TestNewFromString(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString("  " + jsonDocument + "\n")
		require.NoError(t, err)
		assert.Equal(t, jsonDocument, readContent(t, l))
		assert.Equal(t, "string", l.GetSourceURL().Scheme)
		assert.Equal(t, "/"+helpers.ShortChecksum([]byte(jsonDocument))+".json", l.GetSourceURL().Path)
		assert.Equal(t, form.FormatJSON, l.Format())
		assert.Equal(t, "loader.Inline{Source: string, Format: json, Bytes: 83}", l.String())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"", "  \n\t"} {
			l, err := NewFromString(in)
			require.ErrorIs(t, err, ErrDocumentNotAvailable)
			assert.Nil(t, l)
		}
	})
}

func TestNewFromBytes(t *testing.T) {
	t.Parallel()

	content := []byte(yamlDocument)
	l, err := NewFromBytes(content)
	require.NoError(t, err)
	content[0] = 'X'
	assert.Equal(t, yamlDocument, readContent(t, l), "loader keeps its own copy")
	assert.Equal(t, yamlDocument, readContent(t, l), "reader can be taken twice")
	assert.Equal(t, "bytes", l.GetSourceURL().Scheme)
	assert.Equal(t, form.FormatYAML, l.Format())
	assert.Equal(t, "bytes://inline/"+helpers.ShortChecksum([]byte(yamlDocument))+".yaml", l.GetSourceURL().String())

	_, err = NewFromBytes([]byte(" \n"))
	require.ErrorIs(t, err, ErrDocumentNotAvailable)
	_, err = NewFromBytes(nil)
	require.ErrorIs(t, err, ErrDocumentNotAvailable)
}

func TestNewFromIoReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		reader     io.Reader
		sourceName string
		wantHost   string
		wantErr    error
	}{
		{name: "named", reader: strings.NewReader(jsonDocument), sourceName: "stdin", wantHost: "stdin"},
		{name: "unnamed", reader: strings.NewReader(jsonDocument), wantHost: "unnamed"},
		{name: "nil reader", reader: nil, wantErr: ErrDocumentNotAvailable},
		{name: "blank", reader: strings.NewReader("   "), wantErr: ErrDocumentNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := NewFromIoReader(tt.reader, tt.sourceName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "reader", l.GetSourceURL().Scheme)
			assert.Equal(t, tt.wantHost, l.GetSourceURL().Host)
			assert.Equal(t, jsonDocument, readContent(t, l))
			assert.Contains(t, l.String(), "Bytes: 83")
		})
	}

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		readErr := errors.New("boom")
		_, err := NewFromIoReader(io.MultiReader(strings.NewReader("x"), errReader{readErr}), "")
		require.ErrorIs(t, err, readErr)
	})
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestNewFromDisk(t *testing.T) {
	t.Parallel()

	t.Run("valid paths", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "form.yaml", yamlDocument)
		for _, in := range []string{path, "file://" + path} {
			l, err := NewFromDisk(in)
			require.NoError(t, err)
			assert.Equal(t, path, l.Path())
			assert.Equal(t, "file", l.GetSourceURL().Scheme)
			assert.Equal(t, yamlDocument, readContent(t, l))
			assert.Contains(t, l.String(), "SHA256: "+helpers.ShortChecksum([]byte(yamlDocument)))
		}
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name    string
			path    string
			wantErr error
		}{
			{"http scheme", "http://example.com/form.json", ErrSchemeUnsupported},
			{"https scheme", "https://example.com/form.json", ErrSchemeUnsupported},
			{"relative", "form.json", ErrDocumentNotAvailable},
			{"parent", "../form.json", ErrDocumentNotAvailable},
			{"root", "/", ErrDocumentNotAvailable},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				l, err := NewFromDisk(tt.path)
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, l)
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromDisk(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		_, err = l.GetReader()
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.NotContains(t, l.String(), "SHA256")

		_, err = Load(l)
		require.ErrorIs(t, err, ErrDocumentNotAvailable)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("json and yaml", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{jsonDocument, yamlDocument} {
			l, err := NewFromString(content)
			require.NoError(t, err)
			doc, err := Load(l)
			require.NoError(t, err)
			assert.Equal(t, "signup", doc.ID)
			require.Len(t, doc.Fields, 2)
			assert.Equal(t, form.TypeNumber, doc.Fields[1].Type)
			assert.Equal(t, 1, doc.Fields[1].Order)
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString(`{"fields": 12}`)
		require.NoError(t, err)
		_, err = Load(l)
		require.ErrorIs(t, err, form.ErrDocumentInvalid)
		assert.Contains(t, err.Error(), "string://inline/")
	})

	t.Run("nil loader", func(t *testing.T) {
		t.Parallel()
		_, err := Load(nil)
		require.ErrorIs(t, err, ErrDocumentNotAvailable)
	})

	t.Run("mock loader", func(t *testing.T) {
		t.Parallel()
		m := NewMockLoaderWithContent([]byte(jsonDocument))
		for range 2 {
			doc, err := Load(m)
			require.NoError(t, err)
			assert.Len(t, doc.Fields, 2)
		}
		m.AssertNumberOfCalls(t, "GetReader", 2)
	})

	t.Run("mock loader error", func(t *testing.T) {
		t.Parallel()
		readErr := errors.New("denied")
		m := new(MockLoader)
		m.On("GetReader").Return(nil, readErr)
		_, err := Load(m)
		require.ErrorIs(t, err, ErrDocumentNotAvailable)
		require.ErrorIs(t, err, readErr)
		m.AssertExpectations(t)
	})
}

func TestInferLoader(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "form.json", jsonDocument)

	tests := []struct {
		name     string
		input    any
		wantType string
		wantErr  error
	}{
		{name: "absolute path", input: path, wantType: "*loader.FromDisk"},
		{name: "file url", input: "file://" + path, wantType: "*loader.FromDisk"},
		{name: "relative path", input: "forms/signup.yaml", wantType: "*loader.FromDisk"},
		{name: "bare file name", input: "signup.json", wantType: "*loader.FromDisk"},
		{name: "inline json", input: jsonDocument, wantType: "*loader.Inline"},
		{name: "inline json with url", input: `[{"id":"site","type":"url","label":"http://x/y"}]`, wantType: "*loader.Inline"},
		{name: "inline yaml", input: yamlDocument, wantType: "*loader.Inline"},
		{name: "http", input: "http://example.com/form.json", wantErr: ErrSchemeUnsupported},
		{name: "https", input: "https://example.com/form.json", wantErr: ErrSchemeUnsupported},
		{name: "empty", input: "  ", wantErr: ErrDocumentNotAvailable},
		{name: "bytes", input: []byte(jsonDocument), wantType: "*loader.Inline"},
		{name: "reader", input: bytes.NewBufferString(jsonDocument), wantType: "*loader.FromIoReader"},
		{name: "unsupported", input: 42, wantErr: ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := InferLoader(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, typeName(l))
		})
	}

	t.Run("loader passthrough", func(t *testing.T) {
		t.Parallel()
		m := NewMockLoaderWithContent([]byte(jsonDocument))
		l, err := InferLoader(m)
		require.NoError(t, err)
		assert.Same(t, m, l)
	})
}

func typeName(l Loader) string {
	switch l.(type) {
	case *FromDisk:
		return "*loader.FromDisk"
	case *Inline:
		return "*loader.Inline"
	case *FromIoReader:
		return "*loader.FromIoReader"
	default:
		return "unknown"
	}
}
