package scopekit

import (
	"log/slog"
	"sync"
)

// SynchronizedManager guards every operation of a wrapped Manager with a
// single mutex, so one Manager can be shared across goroutines — for example
// by HTTP middleware setting scopes up per request. The Manager itself stays
// single-threaded; this wrapper is the external serialization its contract
// requires.
//
// Do not mix direct calls on the wrapped Manager with calls through the
// wrapper.
type SynchronizedManager struct {
	mu      sync.Mutex
	manager *Manager
}

// Synchronized wraps manager for concurrent use.
func Synchronized(manager *Manager) *SynchronizedManager {
	return &SynchronizedManager{manager: manager}
}

// HasServices calls Manager.HasServices under the lock.
func (s *SynchronizedManager) HasServices(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.HasServices(key)
}

// FindServices calls Manager.FindServices under the lock.
func (s *SynchronizedManager) FindServices(key Key) (*Services, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.FindServices(key)
}

// RootServices calls Manager.RootServices under the lock.
func (s *SynchronizedManager) RootServices() *Services {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.RootServices()
}

// SetUp calls Manager.SetUp under the lock.
func (s *SynchronizedManager) SetUp(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.SetUp(key)
}

// TearDown calls Manager.TearDown under the lock.
func (s *SynchronizedManager) TearDown(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.TearDown(key)
}

// Usages calls Manager.Usages under the lock.
func (s *SynchronizedManager) Usages() []Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Usages()
}

// LogUsage calls Manager.LogUsage under the lock.
func (s *SynchronizedManager) LogUsage(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.LogUsage(logger)
}
