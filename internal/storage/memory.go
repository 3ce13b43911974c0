package storage

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var ErrUnavailable = errors.New("storage unavailable")

// Memory is an in-process KV. FailReads and FailWrites simulate an unavailable store.
type Memory struct {
	mu         sync.Mutex
	data       map[string]string
	FailReads  bool
	FailWrites bool
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, errors.WithStack(ErrUnavailable)
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.WithStack(ErrUnavailable)
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.WithStack(ErrUnavailable)
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
