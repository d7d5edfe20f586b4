// Package display provides the character display capability.
// The real implementation drives an HD44780 module; Console logs the text
// instead, for headless operation.
package display

import "log"

// Display shows a short status text, replacing whatever is currently shown.
type Display interface {
	Show(text string)
	Close() error
}

// Console logs shown text instead of driving hardware.
type Console struct{}

// Show logs the text.
func (Console) Show(text string) {
	log.Printf("display: %s", text)
}

// Close is a no-op.
func (Console) Close() error {
	return nil
}

// Nop discards shown text.
type Nop struct{}

// Show discards the text.
func (Nop) Show(text string) {}

// Close is a no-op.
func (Nop) Close() error {
	return nil
}

// Fake records shown texts for test assertions.
type Fake struct {
	Texts []string
}

// Show records the text.
func (f *Fake) Show(text string) {
	f.Texts = append(f.Texts, text)
}

// Close is a no-op.
func (f *Fake) Close() error {
	return nil
}
