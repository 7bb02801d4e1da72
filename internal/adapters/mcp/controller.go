package mcp

import (
	"context"
	"sync"

	"debloat/internal/application/stream"
)

// SharedController serializes tool access to the stream controller. The
// server dispatches tool calls on separate goroutines while the controller
// assumes a single caller, so every interaction runs under one mutex. Tool
// calls do not overlap on the device either: a second list_packages waits
// for the first to finish draining.
type SharedController struct {
	mu   sync.Mutex
	ctrl *stream.Controller
}

func NewSharedController(ctrl *stream.Controller) *SharedController {
	return &SharedController{ctrl: ctrl}
}

// List enumerates a device and blocks until the snapshot is complete,
// serving it from the result cache when a live entry exists.
func (s *SharedController) List(ctx context.Context, deviceID string, refresh bool) (stream.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.SetDevice(deviceID)
	token, ch, err := s.ctrl.Start(ctx, deviceID, refresh)
	if err != nil {
		return stream.State{}, err
	}
	if ch == nil {
		return s.ctrl.State(), nil
	}
	return s.ctrl.Drain(token, ch), nil
}

// ClearCache drops the cached snapshot for a device.
func (s *SharedController) ClearCache(deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.ClearCache(deviceID)
}
