package mock

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MockProvider отдает заранее подготовленные байты; используется в тестах.
type MockProvider struct {
	mu    sync.Mutex
	data  []byte
	errs  []error
	calls int
}

func NewMockProvider(data []byte) *MockProvider {
	return &MockProvider{data: data}
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Location() string {
	return "mock://status.xlsx"
}

// SetData подменяет содержимое "файла".
func (m *MockProvider) SetData(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// FailWith задает ошибки, которые вернут следующие вызовы Open (по одной на вызов).
func (m *MockProvider) FailWith(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, errs...)
}

func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockProvider) Open(ctx context.Context) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}
