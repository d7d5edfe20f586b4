package ir

import "time"

// NEC timing as seen on the receiver side.
const (
	leadMark    = 9000 * time.Microsecond
	leadSpace   = 4500 * time.Microsecond
	repeatSpace = 2250 * time.Microsecond
	bitMark     = 562 * time.Microsecond
	zeroSpace   = 562 * time.Microsecond
	oneSpace    = 1687 * time.Microsecond

	frameBits = 32
)

// Decoder is a pulse-distance state machine for 32-bit NEC frames. Feed it
// successive (mark, space) pairs; each decoded frame is handed to
// FrameHandler. Bits are assembled MSB-first, matching the values hobby-kit
// firmware reports for these remotes.
type Decoder struct {
	FrameHandler func(code uint32)

	buf        uint32
	bitcount   int
	collecting bool
}

// NewDecoder creates a Decoder delivering frames to handler.
func NewDecoder(handler func(code uint32)) *Decoder {
	return &Decoder{FrameHandler: handler}
}

// HandlePulse consumes one mark and the space that followed it.
// Malformed trains reset the decoder silently: a garbled frame is
// indistinguishable from no command at all.
func (d *Decoder) HandlePulse(mark, space time.Duration) {
	if near(mark, leadMark) {
		if near(space, leadSpace) {
			// Start of frame.
			d.buf = 0
			d.bitcount = 0
			d.collecting = true
			return
		}
		if near(space, repeatSpace) {
			d.reset()
			d.FrameHandler(RepeatCode)
			return
		}
		d.reset()
		return
	}

	if !d.collecting || !near(mark, bitMark) {
		d.reset()
		return
	}

	switch {
	case near(space, oneSpace):
		d.buf = d.buf<<1 | 1
	case near(space, zeroSpace):
		d.buf = d.buf << 1
	default:
		d.reset()
		return
	}

	d.bitcount++
	if d.bitcount < frameBits {
		return
	}

	code := d.buf
	d.reset()
	d.FrameHandler(code)
}

func (d *Decoder) reset() {
	d.buf = 0
	d.bitcount = 0
	d.collecting = false
}

// near reports whether d is within ±30% of ref. Cheap receivers distort pulse
// widths considerably.
func near(d, ref time.Duration) bool {
	tol := ref * 3 / 10
	return d >= ref-tol && d <= ref+tol
}
