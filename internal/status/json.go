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
	NextPolarity  string     `json:"next_polarity"`
	LastMinute    int        `json:"last_minute"`
	RTCValid      bool       `json:"rtc_valid"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"pulse_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of pulse counts.
type CountsJSON struct {
	Total  int `json:"total"`
	PhaseA int `json:"phase_a"`
	PhaseB int `json:"phase_b"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	PulseMs     int64  `json:"pulse_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	LEDMs       int64  `json:"led_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	I2CDevice   string `json:"i2c_device"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		NextPolarity:  snap.NextPolarity,
		LastMinute:    snap.LastMinute,
		RTCValid:      snap.RTCValid,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Total:  snap.Counts.Total,
			PhaseA: snap.Counts.PhaseA,
			PhaseB: snap.Counts.PhaseB,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			PulseMs:     snap.Config.PulseMs,
			DebounceMs:  snap.Config.DebounceMs,
			LEDMs:       snap.Config.LEDMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			I2CDevice:   snap.Config.I2CDevice,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
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
