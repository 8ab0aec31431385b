// Package camera models the photo capture workflow: acquiring a live stream
// from a device by walking a ladder of constraint sets, capturing a frame as
// JPEG and releasing the device. The actual hardware sits behind the Device
// interface, so the session logic is independent of any UI.
package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"sync"
	"time"
)

// Отдельные, различимые для пользователя причины отказа.
var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNoCamera         = errors.New("no camera found")
	ErrStartTimeout     = errors.New("video failed to load")
	ErrNotReady         = errors.New("camera is not ready")
)

// FacingMode selects the preferred camera on multi-camera devices.
type FacingMode string

const (
	FacingEnvironment FacingMode = "environment" // back camera
	FacingUser        FacingMode = "user"        // front camera
	FacingAny         FacingMode = ""
)

// Constraint describes one acquisition attempt.
type Constraint struct {
	Facing      FacingMode
	IdealWidth  int
	IdealHeight int
	MinWidth    int
	MinHeight   int
}

// DefaultLadder returns the constraint sets tried in order: preferred facing
// at high resolution, then any camera at high resolution, then any camera at
// all. The first success short-circuits.
func DefaultLadder(preferred FacingMode) []Constraint {
	return []Constraint{
		{Facing: preferred, IdealWidth: 1920, IdealHeight: 1080, MinWidth: 640, MinHeight: 480},
		{Facing: FacingAny, IdealWidth: 1920, IdealHeight: 1080, MinWidth: 640, MinHeight: 480},
		{Facing: FacingAny},
	}
}

// Device opens a stream for a constraint set. Implementations report
// ErrPermissionDenied and ErrNoCamera where applicable.
type Device interface {
	Open(ctx context.Context, c Constraint) (Stream, error)
}

// Stream is a live video source. It must be closed to release the hardware.
type Stream interface {
	// Frame returns the current frame at the stream's native resolution.
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Session states.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateReady
	StateFailed
)

const (
	jpegQuality         = 80
	defaultStartTimeout = 5 * time.Second
)

// Session ведёт конечный автомат захвата:
// idle → acquiring(i) → ready | failed.
// Инвариант: поток никогда не переживает сессию — Switch и Close всегда
// закрывают текущий Stream.
type Session struct {
	device       Device
	startTimeout time.Duration

	mu     sync.Mutex
	state  State
	facing FacingMode
	stream Stream
	reason error
}

func NewSession(device Device, facing FacingMode) *Session {
	if facing == FacingAny {
		facing = FacingEnvironment
	}
	return &Session{
		device:       device,
		startTimeout: defaultStartTimeout,
		facing:       facing,
	}
}

// Start walks the constraint ladder until a stream opens. Permission denial
// aborts immediately: no other constraint set can fix it. A rung that times
// out counts as "video failed to load" and also aborts, matching the bounded
// metadata wait of the workflow this models.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(ctx)
}

func (s *Session) startLocked(ctx context.Context) error {
	s.closeStreamLocked()
	s.state = StateAcquiring
	s.reason = nil

	var lastErr error
	for _, c := range DefaultLadder(s.facing) {
		attemptCtx, cancel := context.WithTimeout(ctx, s.startTimeout)
		stream, err := s.device.Open(attemptCtx, c)
		cancel()
		if err == nil {
			s.stream = stream
			s.state = StateReady
			return nil
		}

		if errors.Is(err, ErrPermissionDenied) {
			s.state = StateFailed
			s.reason = ErrPermissionDenied
			return s.reason
		}
		if errors.Is(err, context.DeadlineExceeded) {
			s.state = StateFailed
			s.reason = ErrStartTimeout
			return s.reason
		}
		lastErr = err
	}

	s.state = StateFailed
	if lastErr == nil || errors.Is(lastErr, ErrNoCamera) {
		s.reason = ErrNoCamera
	} else {
		s.reason = lastErr
	}
	return s.reason
}

// Capture снимает текущий кадр и кодирует его в JPEG с фиксированным
// качеством.
func (s *Session) Capture(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	stream := s.stream
	ready := s.state == StateReady
	s.mu.Unlock()

	if !ready || stream == nil {
		return nil, ErrNotReady
	}

	frame, err := stream.Frame(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Switch tears down the current stream and re-acquires with the opposite
// facing mode.
func (s *Session) Switch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.facing == FacingUser {
		s.facing = FacingEnvironment
	} else {
		s.facing = FacingUser
	}
	return s.startLocked(ctx)
}

// Close releases the stream and returns the session to idle. Safe to call
// multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeStreamLocked()
	s.state = StateIdle
	s.reason = nil
}

func (s *Session) closeStreamLocked() {
	if s.stream != nil {
		_ = s.stream.Close()
		s.stream = nil
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Facing() FacingMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

// FailureReason returns the classified reason after a failed Start.
func (s *Session) FailureReason() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}
