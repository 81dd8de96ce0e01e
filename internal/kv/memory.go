package kv

import (
	"bytes"
	"sync"
)

// Memory is a process-local Storage. Its contents vanish on exit; it backs
// tests and the "memory" backend for throwaway sessions.
type Memory struct {
	mu     sync.RWMutex
	m      map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Get implements Storage.
func (s *Memory) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

// Set implements Storage.
func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.m[key] = bytes.Clone(value)
	return nil
}

// Close implements Storage.
func (s *Memory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
