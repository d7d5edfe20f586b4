//go:build linux

package hw

import (
	"fmt"
	"log"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/warthog618/go-gpiocdev"
)

// RealLaser drives the laser diode through a GPIO output line.
type RealLaser struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealLaser opens the laser output line, initially low.
func NewRealLaser(pin int) (*RealLaser, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request laser pin %d: %w", pin, err)
	}

	return &RealLaser{chip: chip, line: line}, nil
}

// Set writes the laser output. Write failures are logged, not surfaced: no
// actuator condition is fatal to the control loop.
func (l *RealLaser) Set(on bool) {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		log.Printf("hw: laser write: %v", err)
	}
}

// Close drives the line low and releases it, so the beam cannot stay on after
// the daemon exits.
func (l *RealLaser) Close() error {
	var errs []error

	if l.line != nil {
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower laser pin: %w", err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close laser pin: %w", err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// OpenPWM maps the PWM peripheral. Call once before NewRealServo or
// NewRealBuzzer; pair with ClosePWM on shutdown.
func OpenPWM() error {
	return rpio.Open()
}

// ClosePWM unmaps the PWM peripheral.
func ClosePWM() error {
	return rpio.Close()
}

// Pins with hardware PWM support on Raspberry Pi boards.
var pwmPins = map[int]bool{
	12: true,
	13: true,
	18: true,
	19: true,
}

// Servo PWM shape: 50 Hz frame, 2000-tick cycle, so one tick is 10 µs and the
// 1–2 ms control pulse spans 100–200 ticks.
const (
	servoFreq  = 50
	servoCycle = 2000
)

// RealServo positions the horn through hardware PWM.
type RealServo struct {
	pin rpio.Pin
}

// NewRealServo configures the servo pin and centers the horn at 0 degrees.
func NewRealServo(pin int) (*RealServo, error) {
	if !pwmPins[pin] {
		return nil, fmt.Errorf("servo pin %d has no hardware PWM", pin)
	}

	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(servoFreq * servoCycle)

	s := &RealServo{pin: p}
	s.Move(0)
	return s, nil
}

// Move commands the given angle. Out-of-range angles are clamped to [0,180].
func (s *RealServo) Move(angle int) {
	if angle < 0 {
		angle = 0
	}
	if angle > 180 {
		angle = 180
	}
	duty := uint32(float32(angle)/180.0*100.0 + 100.0)
	s.pin.DutyCycle(duty, servoCycle)
}

const (
	buzzerFreq  = 2000
	buzzerCycle = 128
)

// RealBuzzer drives a piezo through PWM at about 2 kHz.
type RealBuzzer struct {
	pin rpio.Pin
}

// NewRealBuzzer configures the buzzer pin, silent.
func NewRealBuzzer(pin int) (*RealBuzzer, error) {
	if !pwmPins[pin] {
		return nil, fmt.Errorf("buzzer pin %d has no hardware PWM", pin)
	}

	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(buzzerFreq * buzzerCycle)
	p.DutyCycle(0, buzzerCycle)

	return &RealBuzzer{pin: p}, nil
}

// Beep sounds the tone for d, blocking for the duration. Callers only beep on
// discrete events, never inside timing-sensitive paths.
func (b *RealBuzzer) Beep(d time.Duration) {
	b.pin.DutyCycle(buzzerCycle/2, buzzerCycle)
	time.Sleep(d)
	b.pin.DutyCycle(0, buzzerCycle)
}
