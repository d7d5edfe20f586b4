package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Mode          string     `json:"mode"`
	Preset        string     `json:"preset"`
	AngleDeg      int        `json:"angle_deg"`
	Speed         int        `json:"speed"`
	Laser         string     `json:"laser"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"command_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of command counts.
type CountsJSON struct {
	ModeSwitches  int `json:"mode_switches"`
	PresetChanges int `json:"preset_changes"`
	Rotations     int `json:"rotations"`
	SpeedChanges  int `json:"speed_changes"`
	Unmapped      int `json:"unmapped"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs           int64  `json:"tick_ms"`
	SettleMs         int64  `json:"settle_ms"`
	PresetIntervalMs int64  `json:"preset_interval_ms"`
	HeartbeatMs      int64  `json:"heartbeat_ms"`
	Broker           string `json:"broker"`
	HTTPAddr         string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	laser := "OFF"
	if snap.LaserOn {
		laser = "ON"
	}

	return StatusInner{
		Mode:          string(snap.Mode),
		Preset:        snap.Preset.String(),
		AngleDeg:      snap.Angle,
		Speed:         snap.Speed,
		Laser:         laser,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			ModeSwitches:  snap.Counts.ModeSwitches,
			PresetChanges: snap.Counts.PresetChanges,
			Rotations:     snap.Counts.Rotations,
			SpeedChanges:  snap.Counts.SpeedChanges,
			Unmapped:      snap.Counts.Unmapped,
		},
		Config: ConfigJSON{
			TickMs:           snap.Config.TickMs,
			SettleMs:         snap.Config.SettleMs,
			PresetIntervalMs: snap.Config.PresetIntervalMs,
			HeartbeatMs:      snap.Config.HeartbeatMs,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
