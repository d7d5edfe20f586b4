package hw

import "time"

// FakeLaser records laser writes.
type FakeLaser struct {
	// On is the last written state.
	On bool

	// Writes contains every written value in order.
	Writes []bool
}

// Set records the write.
func (f *FakeLaser) Set(on bool) {
	f.On = on
	f.Writes = append(f.Writes, on)
}

// FakeServo records commanded angles.
type FakeServo struct {
	// Angle is the last commanded position.
	Angle int

	// Moves contains every commanded angle in order.
	Moves []int
}

// Move records the command.
func (f *FakeServo) Move(angle int) {
	f.Angle = angle
	f.Moves = append(f.Moves, angle)
}

// FakeBuzzer records beep durations without sleeping.
type FakeBuzzer struct {
	Beeps []time.Duration
}

// Beep records the duration.
func (f *FakeBuzzer) Beep(d time.Duration) {
	f.Beeps = append(f.Beeps, d)
}
