package logic

import "time"

// Manual blink animation shape: 5 on/off cycles, one phase length per preset.
const (
	blinkCycles     = 5
	manualSlowPhase = 2 * time.Second
	manualFastPhase = 500 * time.Millisecond
)

// applyPreset runs the non-blocking variant of the active preset. Called every
// AUTOMATIC tick; it must return promptly so rotation and IR polling continue.
func (c *Controller) applyPreset(now uint32) {
	switch c.preset {
	case PresetOff:
		if c.laserOn {
			c.toggleLaser()
		}
	case PresetOn:
		if !c.laserOn {
			c.toggleLaser()
		}
	case PresetSlowBlink:
		c.blinkStep(now, millis(c.cfg.SlowBlink))
	case PresetFastBlink:
		c.blinkStep(now, millis(c.cfg.FastBlink))
	}
}

func (c *Controller) blinkStep(now, threshold uint32) {
	if now-c.lastBlinkToggle > threshold {
		c.toggleLaser()
		c.lastBlinkToggle = now
	}
}

// runManualPreset runs the blocking variant used from MANUAL dispatch. The
// blink animations hold the control loop for their full length (about 20 s
// slow, 5 s fast): MANUAL dispatch happens on a discrete button press and
// nothing else needs to stay responsive during the animation.
func (c *Controller) runManualPreset(p Preset) {
	switch p {
	case PresetOff:
		if c.laserOn {
			c.toggleLaser()
		}
	case PresetOn:
		if !c.laserOn {
			c.toggleLaser()
		}
	case PresetSlowBlink:
		c.blinkAnimation(manualSlowPhase)
	case PresetFastBlink:
		c.blinkAnimation(manualFastPhase)
	}
}

func (c *Controller) blinkAnimation(phase time.Duration) {
	for i := 0; i < blinkCycles; i++ {
		if !c.laserOn {
			c.toggleLaser()
		}
		c.sleep(phase)
		c.toggleLaser()
		c.sleep(phase)
	}
}

// toggleLaser is the only mutation of the laser state, so the in-memory
// mirror always matches the last physical write.
func (c *Controller) toggleLaser() {
	c.laserOn = !c.laserOn
	c.laser.Set(c.laserOn)
}
