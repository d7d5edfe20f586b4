// Package logic contains the pure control core for the laser tower: the
// mode state machine and the preset engine.
// This package has NO external dependencies (no GPIO, IR transport, or
// wall-clock reads). Time enters as monotonic millisecond samples; sleeping
// and randomness are injectable.
package logic

import "time"

// Mode is the top-level operating mode. Exactly one is active at any instant.
type Mode string

const (
	ModeAutomatic Mode = "AUTOMATIC"
	ModeManual    Mode = "MANUAL"
)

// Preset identifies a laser behavior, selectable by index 0..3.
type Preset int

const (
	PresetOff Preset = iota
	PresetOn
	PresetSlowBlink
	PresetFastBlink

	numPresets
)

// String returns the preset name used in logs and telemetry payloads.
func (p Preset) String() string {
	switch p {
	case PresetOff:
		return "OFF"
	case PresetOn:
		return "ON"
	case PresetSlowBlink:
		return "SLOW_BLINK"
	case PresetFastBlink:
		return "FAST_BLINK"
	}
	return "UNKNOWN"
}

// EventType represents a state change to be published.
type EventType string

const (
	EventModeChange   EventType = "MODE_CHANGE"
	EventPresetChange EventType = "PRESET_CHANGE"
	EventRotation     EventType = "ROTATION"
	EventSpeedChange  EventType = "SPEED_CHANGE"
)

// Event carries a state change plus a snapshot of the controller state at the
// moment it happened. The automatic sweep itself emits no events.
type Event struct {
	Type    EventType
	Mode    Mode
	Preset  Preset
	Angle   int
	Speed   int
	LaserOn bool
}

// EventCounts tracks handled commands since startup.
type EventCounts struct {
	ModeSwitches  int
	PresetChanges int
	Rotations     int
	SpeedChanges  int
	Unmapped      int
}

// Keymap maps remote command codes to actions. The values are remote-specific
// constants, configurable at startup.
type Keymap struct {
	// Preset holds the codes for buttons 1..4, selecting presets 0..3.
	Preset [4]uint32

	// Back and Forward rotate the servo in MANUAL mode.
	Back    uint32
	Forward uint32

	// PlayPause toggles between AUTOMATIC and MANUAL.
	PlayPause uint32

	// SpeedUp and SpeedDown adjust the automatic sweep speed.
	SpeedUp   uint32
	SpeedDown uint32
}

// Laser switches the beam output on or off.
type Laser interface {
	Set(on bool)
}

// Servo commands the rotational actuator to an angle in degrees.
type Servo interface {
	Move(angle int)
}

// Buzzer sounds a tone for the given duration.
type Buzzer interface {
	Beep(d time.Duration)
}

// Display replaces the currently shown text.
type Display interface {
	Show(text string)
}

// Remote is a non-blocking command source. A delivered code stays pending
// until Resume is called; no new command is captured meanwhile.
type Remote interface {
	Poll() (uint32, bool)
	Resume()
}

// Config holds the controller tunables. Use DefaultConfig as the base; the
// zero value leaves every command unmapped and every timer at zero.
type Config struct {
	// PresetInterval is the AUTOMATIC-mode preset re-draw period.
	PresetInterval time.Duration

	// SlowBlink and FastBlink are the non-blocking blink toggle thresholds.
	SlowBlink time.Duration
	FastBlink time.Duration

	// SettleDelay is the blocking wait after each automatic rotation write,
	// giving the servo time to reach the commanded angle.
	SettleDelay time.Duration

	// ManualStep is the rotation per BACK/FORWARD press, in degrees.
	ManualStep int

	// SpeedStep, MaxSpeed and InitialSpeed bound the automatic sweep speed
	// in degrees per tick.
	SpeedStep    int
	MaxSpeed     int
	InitialSpeed int

	// BeepLen is the buzzer chirp length on mode transitions.
	BeepLen time.Duration

	Keymap Keymap

	// Sleep and Rand are test hooks. Nil means time.Sleep and math/rand.
	Sleep func(d time.Duration)
	Rand  func(n int) int
}

// DefaultConfig returns the reference tunables.
func DefaultConfig() Config {
	return Config{
		PresetInterval: 5 * time.Second,
		SlowBlink:      1500 * time.Millisecond,
		FastBlink:      200 * time.Millisecond,
		SettleDelay:    250 * time.Millisecond,
		ManualStep:     30,
		SpeedStep:      5,
		MaxSpeed:       45,
		InitialSpeed:   15,
		BeepLen:        75 * time.Millisecond,
	}
}
