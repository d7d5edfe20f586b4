package logic

import (
	"math/rand"
	"time"
)

// Controller owns the tower state and advances it one tick at a time.
// All mutation happens inside Step; collaborators are referenced, not owned.
type Controller struct {
	cfg   Config
	sleep func(time.Duration)
	rand  func(int) int

	laser   Laser
	servo   Servo
	buzzer  Buzzer
	display Display
	remote  Remote

	mode    Mode
	laserOn bool
	angle   int
	speed   int
	preset  Preset

	// Checkpoint timestamps, in monotonic milliseconds.
	lastPresetDraw  uint32
	lastBlinkToggle uint32

	counts EventCounts
}

// NewController creates a controller in AUTOMATIC mode at angle 0 with
// preset 0 (constant off).
func NewController(cfg Config, laser Laser, servo Servo, buzzer Buzzer, display Display, remote Remote) *Controller {
	c := &Controller{
		cfg:     cfg,
		sleep:   cfg.Sleep,
		rand:    cfg.Rand,
		laser:   laser,
		servo:   servo,
		buzzer:  buzzer,
		display: display,
		remote:  remote,
		mode:    ModeAutomatic,
		preset:  PresetOff,
		speed:   clampSpeed(cfg.InitialSpeed, cfg.MaxSpeed),
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	if c.rand == nil {
		c.rand = rand.Intn
	}
	return c
}

// Step runs one control-loop tick. now is a monotonic millisecond sample.
// Elapsed checks use unsigned subtraction, so the 32-bit rollover (~49.7 days)
// does not break the timers.
//
// Returned events describe discrete state changes for the telemetry layer.
func (c *Controller) Step(now uint32) []Event {
	if c.mode == ModeAutomatic {
		return c.stepAutomatic(now)
	}
	return c.stepManual(now)
}

// stepAutomatic order is fixed: rotate, re-draw the preset if due, poll the
// remote, apply the preset. A PLAY/PAUSE command switches to MANUAL for the
// next tick but the current tick still applies the automatic preset.
func (c *Controller) stepAutomatic(now uint32) []Event {
	var events []Event

	// Continuous one-directional sweep: wraps, never saturates.
	c.angle = (c.angle + c.speed) % 180
	c.servo.Move(c.angle)
	if c.cfg.SettleDelay > 0 {
		c.sleep(c.cfg.SettleDelay)
	}

	if now-c.lastPresetDraw > millis(c.cfg.PresetInterval) {
		c.preset = Preset(c.rand(int(numPresets)))
		c.lastPresetDraw = now
		c.counts.PresetChanges++
		events = append(events, c.event(EventPresetChange))
	}

	if code, ok := c.remote.Poll(); ok {
		events = append(events, c.dispatchAutomatic(code)...)
		c.remote.Resume()
	}

	c.applyPreset(now)

	return events
}

// stepManual is a no-op between remote presses: rotation and presets are
// frozen until a command arrives.
func (c *Controller) stepManual(now uint32) []Event {
	code, ok := c.remote.Poll()
	if !ok {
		return nil
	}
	events := c.dispatchManual(code)
	c.remote.Resume()
	return events
}

func (c *Controller) dispatchAutomatic(code uint32) []Event {
	km := c.cfg.Keymap
	switch code {
	case km.PlayPause:
		return []Event{c.switchMode(ModeManual)}
	case km.SpeedUp:
		c.speed = clampSpeed(c.speed+c.cfg.SpeedStep, c.cfg.MaxSpeed)
		c.counts.SpeedChanges++
		return []Event{c.event(EventSpeedChange)}
	case km.SpeedDown:
		c.speed = clampSpeed(c.speed-c.cfg.SpeedStep, c.cfg.MaxSpeed)
		c.counts.SpeedChanges++
		return []Event{c.event(EventSpeedChange)}
	}
	// Unmapped codes (repeats, unused buttons) are ignored.
	c.counts.Unmapped++
	return nil
}

func (c *Controller) dispatchManual(code uint32) []Event {
	km := c.cfg.Keymap
	for i, pc := range km.Preset {
		if code == pc {
			c.preset = Preset(i)
			c.counts.PresetChanges++
			c.runManualPreset(c.preset)
			return []Event{c.event(EventPresetChange)}
		}
	}
	switch code {
	case km.Back:
		return []Event{c.rotateManual(-c.cfg.ManualStep)}
	case km.Forward:
		return []Event{c.rotateManual(c.cfg.ManualStep)}
	case km.PlayPause:
		return []Event{c.switchMode(ModeAutomatic)}
	}
	c.counts.Unmapped++
	return nil
}

// switchMode flips the operating mode, announces it on the display and chirps
// the buzzer. The active preset and servo position are deliberately left
// untouched.
func (c *Controller) switchMode(to Mode) Event {
	c.mode = to
	c.display.Show(string(to))
	c.buzzer.Beep(c.cfg.BeepLen)
	c.counts.ModeSwitches++
	return c.event(EventModeChange)
}

// rotateManual saturates at the bounds: repeated presses at a limit have no
// further effect.
func (c *Controller) rotateManual(delta int) Event {
	c.angle = clampAngle(c.angle + delta)
	c.servo.Move(c.angle)
	c.counts.Rotations++
	return c.event(EventRotation)
}

// Mode returns the active operating mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Angle returns the last commanded servo position in degrees.
func (c *Controller) Angle() int {
	return c.angle
}

// Speed returns the automatic sweep speed in degrees per tick.
func (c *Controller) Speed() int {
	return c.speed
}

// CurrentPreset returns the active preset index.
func (c *Controller) CurrentPreset() Preset {
	return c.preset
}

// LaserOn reports the mirrored laser state.
func (c *Controller) LaserOn() bool {
	return c.laserOn
}

// Counts returns the command counters.
func (c *Controller) Counts() EventCounts {
	return c.counts
}

func (c *Controller) event(t EventType) Event {
	return Event{
		Type:    t,
		Mode:    c.mode,
		Preset:  c.preset,
		Angle:   c.angle,
		Speed:   c.speed,
		LaserOn: c.laserOn,
	}
}

func clampAngle(a int) int {
	if a < 0 {
		return 0
	}
	if a > 180 {
		return 180
	}
	return a
}

func clampSpeed(s, max int) int {
	if s < 0 {
		return 0
	}
	if s > max {
		return max
	}
	return s
}

func millis(d time.Duration) uint32 {
	return uint32(d.Milliseconds())
}
