//go:build linux

package display

import "github.com/the-sibyl/goLCD20x4"

// LCD drives an HD44780 20x4 character module over GPIO.
type LCD struct {
	show    func(text string)
	release func()
}

// NewLCD opens the module on the reference wiring and runs the standard
// 4-bit init sequence.
func NewLCD() (*LCD, error) {
	dev := goLCD20x4.Open(2, 3, 4, 17, 27, 22, 10, 9, 11, 0, 5)
	dev.FunctionSet(1, 1, 0)
	dev.DisplayOnOffControl(1, 0, 0)
	dev.EntryModeSet(1, 0)
	dev.ClearDisplay()

	return &LCD{
		show: func(text string) {
			dev.ClearDisplay()
			dev.WriteLine(text, 1)
		},
		release: func() {
			dev.Close()
		},
	}, nil
}

// Show clears the module and writes the text on the first line.
func (l *LCD) Show(text string) {
	l.show(text)
}

// Close releases the module's GPIO pins.
func (l *LCD) Close() error {
	l.release()
	return nil
}
