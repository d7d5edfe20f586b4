//go:build !linux

package hw

import (
	"errors"
	"time"
)

var errNotSupported = errors.New("hw: not supported on this platform (requires Linux)")

// RealLaser is not available on non-Linux platforms.
type RealLaser struct{}

// NewRealLaser returns an error on non-Linux platforms.
func NewRealLaser(pin int) (*RealLaser, error) {
	return nil, errNotSupported
}

// Set is not implemented on non-Linux platforms.
func (l *RealLaser) Set(on bool) {}

// Close is not implemented on non-Linux platforms.
func (l *RealLaser) Close() error {
	return nil
}

// OpenPWM returns an error on non-Linux platforms.
func OpenPWM() error {
	return errNotSupported
}

// ClosePWM is not implemented on non-Linux platforms.
func ClosePWM() error {
	return nil
}

// RealServo is not available on non-Linux platforms.
type RealServo struct{}

// NewRealServo returns an error on non-Linux platforms.
func NewRealServo(pin int) (*RealServo, error) {
	return nil, errNotSupported
}

// Move is not implemented on non-Linux platforms.
func (s *RealServo) Move(angle int) {}

// RealBuzzer is not available on non-Linux platforms.
type RealBuzzer struct{}

// NewRealBuzzer returns an error on non-Linux platforms.
func NewRealBuzzer(pin int) (*RealBuzzer, error) {
	return nil, errNotSupported
}

// Beep is not implemented on non-Linux platforms.
func (b *RealBuzzer) Beep(d time.Duration) {}
