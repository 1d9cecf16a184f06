package capture

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Session owns at most one open stream from its device.
type Session struct {
	device Device

	mu     sync.Mutex
	stream Stream
}

func NewSession(device Device) *Session {
	return &Session{device: device}
}

// Kind returns the kind of the session's device.
func (s *Session) Kind() Kind {
	return s.device.Kind()
}

// Start releases any stream already open and opens a new one.
func (s *Session) Start(ctx context.Context) (Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	stream, err := s.device.Open(ctx)
	if err != nil {
		log.Error("failed to open device", "kind", s.device.Kind(), "error", err)
		return nil, err
	}

	log.Debug("device opened", "kind", s.device.Kind())
	s.stream = stream
	return stream, nil
}

// Stop releases the open stream, if any. It is safe to call repeatedly.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.stream == nil {
		return
	}
	if err := s.stream.Close(); err != nil {
		log.Warn("failed to release device", "kind", s.device.Kind(), "error", err)
	}
	s.stream = nil
	log.Debug("device released", "kind", s.device.Kind())
}

// Active reports whether a stream is open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// Capture opens a stream, passes it to fn and releases it when fn returns
// or panics.
func (s *Session) Capture(ctx context.Context, fn func(Stream) error) error {
	stream, err := s.Start(ctx)
	if err != nil {
		return err
	}
	defer s.Stop()

	return fn(stream)
}
