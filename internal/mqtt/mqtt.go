// Package mqtt provides telemetry publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/pranavrao145/sad-cat-fixer/internal/logic"
)

// Topic is the MQTT topic for tower state-change events.
const Topic = "pets/lasertower/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "pets/lasertower/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a tower event to the broker, stamped with at.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event, at time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Tower TowerPayload `json:"tower"`
}

// TowerPayload contains the tower event details.
type TowerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Mode      string `json:"mode"`
	Preset    string `json:"preset"`
	AngleDeg  int    `json:"angle_deg"`
	Speed     int    `json:"speed"`
	Laser     string `json:"laser"`
}

// FormatPayload creates the JSON payload for a tower event.
func FormatPayload(event logic.Event, at time.Time) ([]byte, error) {
	payload := Payload{
		Tower: TowerPayload{
			Timestamp: at.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Mode:      string(event.Mode),
			Preset:    event.Preset.String(),
			AngleDeg:  event.Angle,
			Speed:     event.Speed,
			Laser:     onOff(event.LaserOn),
		},
	}
	return json.Marshal(payload)
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// SystemPayload represents the MQTT message payload for simple system events
// that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
