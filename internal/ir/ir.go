// Package ir provides infrared remote input with hardware abstraction.
// The real implementation decodes NEC frames from GPIO edge events on a
// TSOP-style demodulating receiver. The fake implementation allows testing
// without hardware.
package ir

// Source is a non-blocking command source.
type Source interface {
	// Poll returns the pending command code, if any. A delivered code stays
	// pending until Resume is called; no new frame is captured meanwhile.
	Poll() (uint32, bool)

	// Resume discards the pending code and re-arms capture of the next frame.
	// Omitting it after a delivered code stalls future input.
	Resume()
}

// RepeatCode is reported for NEC repeat frames, sent while a button is held.
// It is intentionally absent from the default keymap, so the core ignores it.
const RepeatCode uint32 = 0xFFFFFFFF

// DefaultPin is the receiver data pin (BCM numbering).
const DefaultPin = 24

// Codes reported by the "Car MP3" NEC remote bundled with common hobby kits,
// as observed from hardware testing.
const (
	CodeButton1   = 0x00FF30CF
	CodeButton2   = 0x00FF18E7
	CodeButton3   = 0x00FF7A85
	CodeButton4   = 0x00FF10EF
	CodePrev      = 0x00FF22DD
	CodeNext      = 0x00FF02FD
	CodePlayPause = 0x00FFC23D
	CodeVolDown   = 0x00FFE01F
	CodeVolUp     = 0x00FFA857
)
