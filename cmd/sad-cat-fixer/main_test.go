package main

import (
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/pranavrao145/sad-cat-fixer/internal/display"
	"github.com/pranavrao145/sad-cat-fixer/internal/hw"
	"github.com/pranavrao145/sad-cat-fixer/internal/ir"
	"github.com/pranavrao145/sad-cat-fixer/internal/logic"
	"github.com/pranavrao145/sad-cat-fixer/internal/mqtt"
	"github.com/pranavrao145/sad-cat-fixer/internal/status"
)

// fakeClock returns a function that yields start, start+step, start+2*step, ...
// on successive calls. Not safe for concurrent use (only called from runLoop's
// goroutine).
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * step)
		n++
		return t
	}
}

// millisCounter yields 10, 20, 30, ... on successive calls, well below the
// preset re-draw interval so the automatic loop stays quiet unless a test
// scripts a command.
func millisCounter() func() uint32 {
	var n uint32
	return func() uint32 {
		n += 10
		return n
	}
}

func newLoopController(remote *ir.FakeSource) *logic.Controller {
	cfg := logic.DefaultConfig()
	cfg.SettleDelay = 0
	cfg.Sleep = func(time.Duration) {}
	cfg.Keymap = logic.Keymap{
		Preset:    [4]uint32{ir.CodeButton1, ir.CodeButton2, ir.CodeButton3, ir.CodeButton4},
		Back:      ir.CodePrev,
		Forward:   ir.CodeNext,
		PlayPause: ir.CodePlayPause,
		SpeedUp:   ir.CodeVolUp,
		SpeedDown: ir.CodeVolDown,
	}
	return logic.NewController(cfg, &hw.FakeLaser{}, &hw.FakeServo{}, &hw.FakeBuzzer{}, &display.Fake{}, remote)
}

func newLoopTracker() *status.Tracker {
	return status.NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), status.Config{
		TickMs: 25, Broker: "tcp://localhost:1883",
	})
}

// runRunLoop drives runLoop for nTicks ticks, then delivers s and returns the
// loop's error.
func runRunLoop(t *testing.T, ctrl *logic.Controller, pub mqtt.Publisher, connStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, clock func() time.Time, nTicks int, s os.Signal) error {
	t.Helper()
	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runLoop(ctrl, pub, connStatus, tracker, heartbeat, clock, millisCounter(), tick, sig)
	}()

	for i := 0; i < nTicks; i++ {
		tick <- time.Time{}
	}
	sig <- s

	return <-errCh
}

func TestRunLoopShutdownSIGTERM(t *testing.T) {
	ctrl := newLoopController(ir.NewFakeSource())
	pub := mqtt.NewFakePublisher()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	err := runRunLoop(t, ctrl, pub, pub, newLoopTracker(), 0, clock, 0, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(pub.SystemEvents))
	}
	ev := pub.SystemEvents[0]
	if ev.Event != "SHUTDOWN" {
		t.Errorf("expected SHUTDOWN event, got %q", ev.Event)
	}
	if ev.Reason != "SIGTERM" {
		t.Errorf("expected reason SIGTERM, got %q", ev.Reason)
	}
	if !ev.Retained {
		t.Error("shutdown event should be retained")
	}
	if !strings.Contains(string(ev.RawPayload), `"SHUTDOWN"`) {
		t.Errorf("raw payload should carry the event name: %s", ev.RawPayload)
	}
}

func TestRunLoopShutdownSIGINT(t *testing.T) {
	ctrl := newLoopController(ir.NewFakeSource())
	pub := mqtt.NewFakePublisher()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	err := runRunLoop(t, ctrl, pub, pub, newLoopTracker(), 0, clock, 0, syscall.SIGINT)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(pub.SystemEvents) != 1 || pub.SystemEvents[0].Reason != "SIGINT" {
		t.Fatalf("expected one SIGINT shutdown event, got %+v", pub.SystemEvents)
	}
}

func TestRunLoopPublishesEvents(t *testing.T) {
	remote := ir.NewFakeSource(ir.CodePlayPause)
	ctrl := newLoopController(remote)
	pub := mqtt.NewFakePublisher()
	tracker := newLoopTracker()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	err := runRunLoop(t, ctrl, pub, pub, tracker, 0, clock, 2, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(pub.Events) != 1 {
		t.Fatalf("expected 1 tower event, got %d", len(pub.Events))
	}
	if pub.Events[0].Type != logic.EventModeChange {
		t.Errorf("expected MODE_CHANGE, got %s", pub.Events[0].Type)
	}
	if pub.Events[0].Mode != logic.ModeManual {
		t.Errorf("expected mode MANUAL in event, got %s", pub.Events[0].Mode)
	}

	snap := tracker.Snapshot()
	if snap.Mode != logic.ModeManual {
		t.Errorf("tracker mode: got %s, want MANUAL", snap.Mode)
	}
}

func TestRunLoopTracksConnection(t *testing.T) {
	ctrl := newLoopController(ir.NewFakeSource())
	pub := mqtt.NewFakePublisher()
	pub.Connected = true
	tracker := newLoopTracker()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	err := runRunLoop(t, ctrl, pub, pub, tracker, 0, clock, 1, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if !tracker.Snapshot().MQTTConnected {
		t.Error("tracker should report MQTT connected")
	}
}

func TestRunLoopNilPublisher(t *testing.T) {
	remote := ir.NewFakeSource(ir.CodePlayPause)
	ctrl := newLoopController(remote)
	tracker := newLoopTracker()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	// Telemetry disabled: events are still processed, nothing panics.
	err := runRunLoop(t, ctrl, nil, nil, tracker, 0, clock, 2, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if tracker.Snapshot().Mode != logic.ModeManual {
		t.Errorf("tracker mode: got %s, want MANUAL", tracker.Snapshot().Mode)
	}
}

func TestRunLoopPublishError(t *testing.T) {
	remote := ir.NewFakeSource(ir.CodePlayPause)
	ctrl := newLoopController(remote)
	pub := mqtt.NewFakePublisher()
	pub.PublishError = errors.New("broker gone")
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100*time.Millisecond)

	// Publish failures must not abort the loop; shutdown still goes out.
	err := runRunLoop(t, ctrl, pub, pub, newLoopTracker(), 0, clock, 2, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	if len(pub.SystemEvents) != 1 || pub.SystemEvents[0].Event != "SHUTDOWN" {
		t.Errorf("expected shutdown event despite publish errors, got %+v", pub.SystemEvents)
	}
}

func TestRunLoopHeartbeat(t *testing.T) {
	ctrl := newLoopController(ir.NewFakeSource())
	pub := mqtt.NewFakePublisher()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 600*time.Millisecond)

	// Ticks land at +600ms, +1200ms, +1800ms against a 1s interval: the first
	// heartbeat fires on the second tick, then the timer re-arms.
	err := runRunLoop(t, ctrl, pub, pub, newLoopTracker(), time.Second, clock, 3, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	var heartbeats int
	for _, ev := range pub.SystemEvents {
		if ev.Event == "HEARTBEAT" {
			heartbeats++
			if !strings.Contains(string(ev.RawPayload), `"HEARTBEAT"`) {
				t.Errorf("heartbeat payload missing event name: %s", ev.RawPayload)
			}
		}
	}
	if heartbeats != 1 {
		t.Errorf("expected 1 heartbeat, got %d", heartbeats)
	}
	if last := pub.SystemEvents[len(pub.SystemEvents)-1]; last.Event != "SHUTDOWN" {
		t.Errorf("last system event: got %q, want SHUTDOWN", last.Event)
	}
}

func TestRunLoopHeartbeatDisabled(t *testing.T) {
	ctrl := newLoopController(ir.NewFakeSource())
	pub := mqtt.NewFakePublisher()
	clock := fakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Hour)

	err := runRunLoop(t, ctrl, pub, pub, newLoopTracker(), 0, clock, 3, syscall.SIGTERM)
	if err != nil {
		t.Fatalf("runLoop returned error: %v", err)
	}

	for _, ev := range pub.SystemEvents {
		if ev.Event == "HEARTBEAT" {
			t.Error("heartbeat published with interval 0")
		}
	}
}

func TestNewDisplay(t *testing.T) {
	if d, err := newDisplay("console"); err != nil || d == nil {
		t.Errorf("console: got (%v, %v)", d, err)
	}
	if d, err := newDisplay("off"); err != nil || d == nil {
		t.Errorf("off: got (%v, %v)", d, err)
	}
	if _, err := newDisplay("teapot"); err == nil {
		t.Error("expected error for unknown display driver")
	}
}

func TestSignalName(t *testing.T) {
	if got := signalName(syscall.SIGINT); got != "SIGINT" {
		t.Errorf("SIGINT: got %q", got)
	}
	if got := signalName(syscall.SIGTERM); got != "SIGTERM" {
		t.Errorf("SIGTERM: got %q", got)
	}
	if got := signalName(syscall.SIGHUP); got != "UNKNOWN" {
		t.Errorf("SIGHUP: got %q", got)
	}
}
