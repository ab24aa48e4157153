package loader

import (
	"bytes"
	"io"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockLoader is a testify mock of Loader. GetReader may be stubbed with a
// []byte document, which is served through a fresh reader on every call, or
// with an io.ReadCloser.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	u, _ := args.Get(0).(*url.URL)
	return u
}

func (m *MockLoader) GetReader() (io.ReadCloser, error) {
	args := m.Called()
	switch v := args.Get(0).(type) {
	case []byte:
		return io.NopCloser(bytes.NewReader(v)), args.Error(1)
	case io.ReadCloser:
		return v, args.Error(1)
	default:
		return nil, args.Error(1)
	}
}

// NewMockLoaderWithContent returns a MockLoader serving document from a
// mock://inline source.
func NewMockLoaderWithContent(document []byte) *MockLoader {
	m := new(MockLoader)
	m.On("GetReader").Return(document, nil)
	m.On("GetSourceURL").Return(&url.URL{Scheme: "mock", Host: "inline"})
	return m
}
