// Package hw drives the tower's output actuators with hardware abstraction.
// The real implementations use the Linux GPIO character device for the laser
// and hardware PWM for the servo and buzzer. The fake implementations allow
// testing without hardware.
package hw

// Default pins (BCM numbering).
const (
	DefaultLaserPin  = 25
	DefaultServoPin  = 18 // PWM0
	DefaultBuzzerPin = 13 // PWM1
)
