package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/minute-clock/internal/logic"
	"github.com/sweeney/minute-clock/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:      500,
		PulseMs:     1000,
		DebounceMs:  100,
		LEDMs:       1000,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":80",
		I2CDevice:   "/dev/i2c-1",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.PolarityB, 10, logic.Counts{Total: 5, PhaseA: 3, PhaseB: 2})
	tr.SetRTCValid(true)
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
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
	if !sj.Status.MQTT.Connected {
		t.Error("expected mqtt.connected=true")
	}
	if sj.Status.Counts.Total != 5 {
		t.Errorf("pulse_counts.total: got %d, want 5", sj.Status.Counts.Total)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.PolarityA, 42, logic.Counts{Total: 100, PhaseA: 50, PhaseB: 50})
	tr.SetRTCValid(true)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)

	for _, want := range []string{"Minute Clock", "Next polarity", "42", "Phase A", "tcp://192.168.1.200:1883"} {
		if !strings.Contains(html, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestIndexPageBeforeFirstPulse(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	// LastMinute is -1 before the first pulse; the page shows a dash.
	if !strings.Contains(string(body), "—") {
		t.Error("index page should show a dash for the unset minute")
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
