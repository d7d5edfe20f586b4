// Command sad-cat-fixer drives a motorized laser tower from an infrared
// remote or an autonomous randomized behavior loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pranavrao145/sad-cat-fixer/internal/display"
	"github.com/pranavrao145/sad-cat-fixer/internal/hw"
	"github.com/pranavrao145/sad-cat-fixer/internal/ir"
	"github.com/pranavrao145/sad-cat-fixer/internal/logic"
	"github.com/pranavrao145/sad-cat-fixer/internal/mqtt"
	"github.com/pranavrao145/sad-cat-fixer/internal/status"
	"github.com/pranavrao145/sad-cat-fixer/internal/web"
)

// appConfig gathers the flag values handed to run.
type appConfig struct {
	tick           time.Duration
	settle         time.Duration
	presetInterval time.Duration
	speed          int
	heartbeat      time.Duration
	broker         string
	httpAddr       string
	displayKind    string

	laserPin  int
	servoPin  int
	buzzerPin int
	irPin     int

	keymap logic.Keymap
}

func main() {
	tick := flag.Duration("tick", 25*time.Millisecond, "Control loop interval")
	settle := flag.Duration("settle", 250*time.Millisecond, "Servo settle delay after each automatic rotation")
	presetInterval := flag.Duration("preset-interval", 5*time.Second, "Automatic preset re-draw interval")
	speed := flag.Int("speed", 15, "Initial automatic sweep speed (degrees per tick)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" disables telemetry)`)
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	displayKind := flag.String("display", "console", "Display driver: lcd, console or off")

	laserPin := flag.Int("laser-pin", hw.DefaultLaserPin, "BCM pin for the laser")
	servoPin := flag.Int("servo-pin", hw.DefaultServoPin, "BCM pin for the servo (hardware PWM)")
	buzzerPin := flag.Int("buzzer-pin", hw.DefaultBuzzerPin, "BCM pin for the buzzer (hardware PWM)")
	irPin := flag.Int("ir-pin", ir.DefaultPin, "BCM pin for the IR receiver")

	// Remote command codes. Hex accepted (e.g. 0xFF30CF).
	codePreset1 := flag.Uint64("code-preset1", ir.CodeButton1, "IR code: select preset 1 (constant off)")
	codePreset2 := flag.Uint64("code-preset2", ir.CodeButton2, "IR code: select preset 2 (constant on)")
	codePreset3 := flag.Uint64("code-preset3", ir.CodeButton3, "IR code: select preset 3 (slow blink)")
	codePreset4 := flag.Uint64("code-preset4", ir.CodeButton4, "IR code: select preset 4 (fast blink)")
	codeBack := flag.Uint64("code-back", ir.CodePrev, "IR code: rotate -30 degrees (MANUAL)")
	codeForward := flag.Uint64("code-forward", ir.CodeNext, "IR code: rotate +30 degrees (MANUAL)")
	codePlay := flag.Uint64("code-play", ir.CodePlayPause, "IR code: toggle AUTOMATIC/MANUAL")
	codeUp := flag.Uint64("code-up", ir.CodeVolUp, "IR code: sweep speed +5 (AUTOMATIC)")
	codeDown := flag.Uint64("code-down", ir.CodeVolDown, "IR code: sweep speed -5 (AUTOMATIC)")

	flag.Parse()

	cfg := appConfig{
		tick:           *tick,
		settle:         *settle,
		presetInterval: *presetInterval,
		speed:          *speed,
		heartbeat:      *heartbeat,
		broker:         *broker,
		httpAddr:       *httpAddr,
		displayKind:    *displayKind,
		laserPin:       *laserPin,
		servoPin:       *servoPin,
		buzzerPin:      *buzzerPin,
		irPin:          *irPin,
		keymap: logic.Keymap{
			Preset:    [4]uint32{uint32(*codePreset1), uint32(*codePreset2), uint32(*codePreset3), uint32(*codePreset4)},
			Back:      uint32(*codeBack),
			Forward:   uint32(*codeForward),
			PlayPause: uint32(*codePlay),
			SpeedUp:   uint32(*codeUp),
			SpeedDown: uint32(*codeDown),
		},
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg appConfig) error {
	// Output actuators
	laser, err := hw.NewRealLaser(cfg.laserPin)
	if err != nil {
		return fmt.Errorf("init laser: %w", err)
	}
	defer laser.Close()

	if err := hw.OpenPWM(); err != nil {
		return fmt.Errorf("map pwm: %w", err)
	}
	defer hw.ClosePWM()

	servo, err := hw.NewRealServo(cfg.servoPin)
	if err != nil {
		return fmt.Errorf("init servo: %w", err)
	}
	buzzer, err := hw.NewRealBuzzer(cfg.buzzerPin)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}

	// Input source
	remote, err := ir.NewReceiver(cfg.irPin)
	if err != nil {
		return fmt.Errorf("init ir receiver: %w", err)
	}
	defer remote.Close()

	// Display
	disp, err := newDisplay(cfg.displayKind)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()

	// Telemetry
	var publisher mqtt.Publisher
	var connStatus mqtt.ConnectionStatus
	if cfg.broker != "off" {
		pub, err := mqtt.NewRealPublisher(cfg.broker)
		if err != nil {
			log.Printf("mqtt disabled: %v", err)
		} else {
			publisher = pub
			connStatus = pub
			defer pub.Close()
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:           cfg.tick.Milliseconds(),
		SettleMs:         cfg.settle.Milliseconds(),
		PresetIntervalMs: cfg.presetInterval.Milliseconds(),
		HeartbeatMs:      cfg.heartbeat.Milliseconds(),
		Broker:           cfg.broker,
		HTTPAddr:         cfg.httpAddr,
	})

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	ctrlCfg := logic.DefaultConfig()
	ctrlCfg.PresetInterval = cfg.presetInterval
	ctrlCfg.SettleDelay = cfg.settle
	ctrlCfg.InitialSpeed = cfg.speed
	ctrlCfg.Keymap = cfg.keymap

	ctrl := logic.NewController(ctrlCfg, laser, servo, buzzer, disp, remote)
	disp.Show(string(ctrl.Mode()))

	log.Printf("started: tick=%v settle=%v preset-interval=%v speed=%d broker=%s heartbeat=%v",
		cfg.tick, cfg.settle, cfg.presetInterval, cfg.speed, cfg.broker, cfg.heartbeat)

	start := time.Now()
	nowMillis := func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	}

	ticker := time.NewTicker(cfg.tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, publisher, connStatus, tracker, cfg.heartbeat, time.Now, nowMillis, ticker.C, sigCh)
}

func runLoop(ctrl *logic.Controller, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, nowMillis func() uint32, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			name := signalName(s)
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    name,
				Retained:  true,
			}
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
			snap := tracker.Snapshot()
			event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", name)
			if publisher != nil {
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			events := ctrl.Step(nowMillis())
			t := now()

			for _, event := range events {
				log.Printf("event: %s (mode=%s preset=%s angle=%d speed=%d laser=%v)",
					event.Type, event.Mode, event.Preset, event.Angle, event.Speed, event.LaserOn)
				if publisher != nil {
					if err := publisher.Publish(event, t); err != nil {
						log.Printf("publish error: %v", err)
						// Don't crash on publish failure
					}
				}
			}

			tracker.Update(ctrl.Mode(), ctrl.CurrentPreset(), ctrl.Angle(), ctrl.Speed(), ctrl.LaserOn(), ctrl.Counts())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}

			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				snap := tracker.Snapshot()
				counts := snap.Counts
				log.Printf("heartbeat: uptime=%v mode=%s switches=%d presets=%d rotations=%d",
					snap.Uptime().Truncate(time.Second), snap.Mode, counts.ModeSwitches, counts.PresetChanges, counts.Rotations)
				if publisher != nil {
					hbEvent := mqtt.SystemEvent{
						Timestamp:  t,
						Event:      "HEARTBEAT",
						RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
					}
					if err := publisher.PublishSystem(hbEvent); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}
		}
	}
}

func newDisplay(kind string) (display.Display, error) {
	switch kind {
	case "lcd":
		return display.NewLCD()
	case "console":
		return display.Console{}, nil
	case "off":
		return display.Nop{}, nil
	}
	return nil, fmt.Errorf("unknown display driver %q", kind)
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
