//go:build linux

package ir

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Receiver decodes NEC frames from a demodulating IR receiver on a GPIO line.
// The receiver output is active-low: a falling edge starts a mark.
type Receiver struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	dec  *Decoder

	mu         sync.Mutex
	pending    uint32
	hasPending bool
	listening  bool

	// Edge bookkeeping, touched only from the event goroutine.
	lastFall time.Duration
	lastRise time.Duration
	mark     time.Duration
	haveMark bool
}

// NewReceiver opens the IR input line and starts decoding edge events.
func NewReceiver(pin int) (*Receiver, error) {
	r := &Receiver{listening: true}
	r.dec = NewDecoder(r.onFrame)

	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(r.onEdge))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request IR pin %d: %w", pin, err)
	}

	r.chip = chip
	r.line = line
	return r, nil
}

// onEdge converts edge timestamps into (mark, space) pairs for the decoder.
// Runs on the gpiocdev event goroutine.
func (r *Receiver) onEdge(evt gpiocdev.LineEvent) {
	switch evt.Type {
	case gpiocdev.LineEventFallingEdge:
		if r.haveMark {
			space := evt.Timestamp - r.lastRise
			r.dec.HandlePulse(r.mark, space)
			r.haveMark = false
		}
		r.lastFall = evt.Timestamp
	case gpiocdev.LineEventRisingEdge:
		r.mark = evt.Timestamp - r.lastFall
		r.haveMark = true
		r.lastRise = evt.Timestamp
	}
}

// onFrame stores a decoded frame. Frames arriving while a code is pending or
// before Resume are dropped, per the Poll/Resume contract.
func (r *Receiver) onFrame(code uint32) {
	r.mu.Lock()
	if r.listening {
		r.pending = code
		r.hasPending = true
		r.listening = false
	}
	r.mu.Unlock()
}

// Poll returns the pending command code, if any.
func (r *Receiver) Poll() (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.hasPending
}

// Resume discards the pending code and re-arms frame capture.
func (r *Receiver) Resume() {
	r.mu.Lock()
	r.hasPending = false
	r.listening = true
	r.mu.Unlock()
}

// Close releases the GPIO line.
func (r *Receiver) Close() error {
	var errs []error
	if r.line != nil {
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close IR line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
