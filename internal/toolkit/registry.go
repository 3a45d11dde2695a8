package toolkit

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupported is returned by the system registry off Windows.
var ErrUnsupported = errors.New("the Windows registry is not available on this platform")

// Registry reads and writes REG_DWORD values under HKEY_LOCAL_MACHINE.
type Registry interface {
	GetDWORD(path, name string) (uint32, error)
	SetDWORD(path, name string, value uint32) error
}

// MemoryRegistry is an in-process Registry for dry runs and tests.
type MemoryRegistry struct {
	mu     sync.Mutex
	values map[string]uint32
	// SetErr, when set, is returned by every SetDWORD.
	SetErr error
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{values: make(map[string]uint32)}
}

// NewDryRunRegistry returns a MemoryRegistry holding the Windows defaults
// the toolkit reads, so status queries answer during a dry run.
func NewDryRunRegistry() *MemoryRegistry {
	m := NewMemoryRegistry()
	m.values[terminalServerKey+`\`+denyTSConnections] = 1
	return m
}

func (m *MemoryRegistry) GetDWORD(path, name string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[path+`\`+name]
	if !ok {
		return 0, fmt.Errorf(`HKLM\%s\%s: value not found`, path, name)
	}
	return v, nil
}

func (m *MemoryRegistry) SetDWORD(path, name string, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[path+`\`+name] = value
	return nil
}
