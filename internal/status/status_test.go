package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/minute-clock/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 500, PulseMs: 1000, DebounceMs: 100, Broker: "tcp://localhost:1883", HTTPAddr: ":80"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 500 {
		t.Errorf("Config.PollMs: got %d, want 500", snap.Config.PollMs)
	}
	if snap.NextPolarity != "A" {
		t.Errorf("NextPolarity: got %q, want A", snap.NextPolarity)
	}
	if snap.LastMinute != -1 {
		t.Errorf("LastMinute: got %d, want -1 (no pulse yet)", snap.LastMinute)
	}
	if snap.RTCValid {
		t.Error("expected RTCValid=false initially")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(logic.PolarityB, 42, logic.Counts{Total: 7, PhaseA: 4, PhaseB: 3})

	snap := tr.Snapshot()
	if snap.NextPolarity != "B" {
		t.Errorf("NextPolarity: got %q, want B", snap.NextPolarity)
	}
	if snap.LastMinute != 42 {
		t.Errorf("LastMinute: got %d, want 42", snap.LastMinute)
	}
	if snap.Counts.Total != 7 {
		t.Errorf("Counts.Total: got %d, want 7", snap.Counts.Total)
	}
}

func TestUpdateSentinelMinute(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(logic.PolarityA, logic.MinuteUnset, logic.Counts{})

	if snap := tr.Snapshot(); snap.LastMinute != -1 {
		t.Errorf("LastMinute: got %d, want -1 for the sentinel", snap.LastMinute)
	}
}

func TestSetters(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetRTCValid(true)
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if !snap.RTCValid {
		t.Error("expected RTCValid=true")
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, Config{})

	up := tr.Snapshot().Uptime()
	if up < 90*time.Second || up > 91*time.Second {
		t.Errorf("uptime: got %v, want ~90s", up)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tr.Update(logic.PolarityA, uint8(n%60), logic.Counts{Total: n})
		}(i)
		go func() {
			defer wg.Done()
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{Broker: "tcp://localhost:1883", I2CDevice: "/dev/i2c-1"})
	tr.Update(logic.PolarityB, 10, logic.Counts{Total: 3, PhaseA: 2, PhaseB: 1})
	tr.SetRTCValid(true)

	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &sj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if sj.Status.NextPolarity != "B" {
		t.Errorf("next_polarity: got %q, want B", sj.Status.NextPolarity)
	}
	if sj.Status.LastMinute != 10 {
		t.Errorf("last_minute: got %d, want 10", sj.Status.LastMinute)
	}
	if !sj.Status.RTCValid {
		t.Error("expected rtc_valid=true")
	}
	if sj.Status.Counts.Total != 3 {
		t.Errorf("pulse_counts.total: got %d, want 3", sj.Status.Counts.Total)
	}
	if sj.Status.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("mqtt.broker: got %q", sj.Status.MQTT.Broker)
	}
	if sj.Status.Config.I2CDevice != "/dev/i2c-1" {
		t.Errorf("config.i2c_device: got %q", sj.Status.Config.I2CDevice)
	}
	if sj.Status.Event != "" {
		t.Errorf("web JSON should carry no event, got %q", sj.Status.Event)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var sj StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM"), &sj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if sj.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", sj.Status.Event)
	}
	if sj.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", sj.Status.Reason)
	}
}
