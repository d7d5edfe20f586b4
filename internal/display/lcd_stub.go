//go:build !linux

package display

import "errors"

// LCD is not available on non-Linux platforms.
type LCD struct{}

// NewLCD returns an error on non-Linux platforms.
func NewLCD() (*LCD, error) {
	return nil, errors.New("display: lcd not supported on this platform (requires Linux)")
}

// Show is not implemented on non-Linux platforms.
func (l *LCD) Show(text string) {}

// Close is not implemented on non-Linux platforms.
func (l *LCD) Close() error {
	return nil
}
