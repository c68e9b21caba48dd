package lineio

import (
	"slices"
	"strings"
)

// Memory is an in-memory Creator used as a test double for page rendering.
// Creating an existing name replaces its content.
type Memory struct {
	files map[string]*strings.Builder
	order []string
}

// NewMemory returns an empty in-memory Creator.
func NewMemory() *Memory {
	return &Memory{files: make(map[string]*strings.Builder)}
}

// Create starts a new in-memory target.
func (m *Memory) Create(name string) (Writer, error) {
	b := &strings.Builder{}
	if _, exists := m.files[name]; !exists {
		m.order = append(m.order, name)
	}
	m.files[name] = b
	return NewWriter(b), nil
}

// File returns the content written to name.
func (m *Memory) File(name string) (string, bool) {
	b, ok := m.files[name]
	if !ok {
		return "", false
	}
	return b.String(), true
}

// Names returns target names sorted alphabetically.
func (m *Memory) Names() []string {
	names := slices.Clone(m.order)
	slices.Sort(names)
	return names
}

// Created returns target names in first-creation order.
func (m *Memory) Created() []string {
	return slices.Clone(m.order)
}
