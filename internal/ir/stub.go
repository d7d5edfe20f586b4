//go:build !linux

package ir

import "errors"

// Receiver is not available on non-Linux platforms.
type Receiver struct{}

// NewReceiver returns an error on non-Linux platforms.
func NewReceiver(pin int) (*Receiver, error) {
	return nil, errors.New("ir: not supported on this platform (requires Linux)")
}

// Poll is not implemented on non-Linux platforms.
func (r *Receiver) Poll() (uint32, bool) {
	return 0, false
}

// Resume is not implemented on non-Linux platforms.
func (r *Receiver) Resume() {}

// Close is not implemented on non-Linux platforms.
func (r *Receiver) Close() error {
	return nil
}
