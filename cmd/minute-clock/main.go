// Command minute-clock drives a slave-clock movement with one
// alternating-polarity coil pulse per minute, synchronized to a DS3231 RTC,
// with an LED heartbeat and MQTT/HTTP status reporting.
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

	"github.com/sweeney/minute-clock/internal/gpio"
	"github.com/sweeney/minute-clock/internal/logic"
	"github.com/sweeney/minute-clock/internal/mqtt"
	"github.com/sweeney/minute-clock/internal/rtc"
	"github.com/sweeney/minute-clock/internal/status"
	"github.com/sweeney/minute-clock/internal/web"
)

// faultBlinkInterval is the on/off cadence of the startup fault blink.
const faultBlinkInterval = 200 * time.Millisecond

// loopConfig carries the timing parameters of the control loop.
type loopConfig struct {
	poll      time.Duration
	pulse     time.Duration
	debounce  time.Duration
	led       time.Duration
	heartbeat time.Duration
	waiter    logic.Waiter
}

func main() {
	poll := flag.Duration("poll", 500*time.Millisecond, "RTC polling interval")
	pulse := flag.Duration("pulse", 1000*time.Millisecond, "Coil pulse duration")
	debounce := flag.Duration("debounce", 100*time.Millisecond, "Debounce interval after each pulse")
	led := flag.Duration("led", 1000*time.Millisecond, "Heartbeat LED on-duration")
	idle := flag.Duration("idle", 10*time.Millisecond, "Control loop idle pause")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	pinA := flag.Int("pin-a", gpio.DefaultPinPhaseA, "BCM pin number for coil phase A")
	pinB := flag.Int("pin-b", gpio.DefaultPinPhaseB, "BCM pin number for coil phase B")
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the heartbeat LED")
	i2cDev := flag.String("i2c", rtc.DefaultDevice, "I2C device for the RTC")
	printTime := flag.Bool("print-time", false, "Print current RTC time and exit")

	flag.Parse()

	if err := run(*poll, *pulse, *debounce, *led, *idle, *heartbeat, *broker, *httpAddr, *pinA, *pinB, *pinLED, *i2cDev, *printTime); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll, pulse, debounce, led, idle, heartbeat time.Duration, broker, httpAddr string, pinA, pinB, pinLED int, i2cDev string, printTime bool) error {
	// Print time mode
	if printTime {
		dev, err := rtc.NewDS3231(i2cDev, rtc.DefaultAddr)
		if err != nil {
			return fmt.Errorf("init rtc: %w", err)
		}
		defer dev.Close()
		t, err := dev.Read()
		if err != nil {
			return fmt.Errorf("read rtc: %w", err)
		}
		valid, err := dev.Valid()
		if err != nil {
			return fmt.Errorf("read rtc status: %w", err)
		}
		fmt.Printf("%s (valid: %v)\n", t.Std().Format("2006-01-02 15:04:05"), valid)
		return nil
	}

	// Initialize GPIO first: the fault state needs the LED.
	outs, err := gpio.NewRealOutputs(pinA, pinB, pinLED)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer outs.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Initialize RTC. Unreachable hardware is unrecoverable: no pulse
	// logic may run without a time source.
	dev, err := rtc.NewDS3231(i2cDev, rtc.DefaultAddr)
	if err != nil {
		log.Printf("rtc unreachable: %v", err)
		return blinkFault(outs, faultBlinkInterval, sigCh)
	}
	defer dev.Close()

	valid, err := dev.Valid()
	if err != nil {
		log.Printf("rtc unreachable: %v", err)
		return blinkFault(outs, faultBlinkInterval, sigCh)
	}
	if !valid {
		// Power loss or factory-default time: reset once to the
		// reference baseline and carry on.
		log.Printf("rtc reports invalid time, resetting to %s", rtc.Reference.Std().Format("2006-01-02 15:04:05"))
		if err := dev.SetTime(rtc.Reference); err != nil {
			log.Printf("rtc set time: %v", err)
			return blinkFault(outs, faultBlinkInterval, sigCh)
		}
	}

	// Initialize MQTT (connects in the background)
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		PulseMs:     pulse.Milliseconds(),
		DebounceMs:  debounce.Milliseconds(),
		LEDMs:       led.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		I2CDevice:   i2cDev,
	})
	tracker.SetRTCValid(valid)

	// Publish startup event with full status snapshot
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

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v pulse=%v debounce=%v led=%v broker=%s heartbeat=%v", poll, pulse, debounce, led, broker, heartbeat)

	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	cfg := loopConfig{
		poll:      poll,
		pulse:     pulse,
		debounce:  debounce,
		led:       led,
		heartbeat: heartbeat,
		waiter:    logic.SleepSpinWaiter{},
	}
	coil := &gpio.Coil{Out: outs}
	lamp := &gpio.Lamp{Out: outs}
	return runLoop(dev, coil, lamp, publisher, publisher, tracker, cfg, time.Now, ticker.C, sigCh)
}

// runLoop is the single-threaded control loop. Per iteration: indicator
// expiry check, poll-interval gate, RTC read, driver tick (which blocks
// for the pulse plus debounce duration when a pulse fires).
func runLoop(dev rtc.Device, coil logic.Coil, lamp logic.Lamp, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	ind := logic.NewIndicator(lamp, cfg.led)
	driver := logic.NewDriver(coil, ind, cfg.waiter, cfg.pulse, cfg.debounce, startTime)

	var lastPoll time.Time

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			coil.Release()
			lamp.Set(false)

			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			mono := now()
			ind.Update(mono)

			if !lastPoll.IsZero() && mono.Sub(lastPoll) < cfg.poll {
				continue
			}
			lastPoll = mono

			t, err := dev.Read()
			if err != nil {
				log.Printf("rtc read error: %v", err)
				continue
			}

			if p := driver.Tick(logic.Input{Minute: t.Minute, Second: t.Second, Time: mono}); p != nil {
				log.Printf("pulse: minute=%02d polarity=%s", p.Minute, p.Polarity)
				if err := publisher.Publish(*p); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Check for heartbeat
			if hbData := driver.CheckHeartbeat(mono, cfg.heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v pulses=%d (A=%d B=%d)",
					hbData.Uptime, hbData.Counts.Total, hbData.Counts.PhaseA, hbData.Counts.PhaseB)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					pol, last := driver.CurrentState()
					tracker.Update(pol, last, driver.CountsSnapshot())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				pol, last := driver.CurrentState()
				tracker.Update(pol, last, driver.CountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// blinkFault is the terminal fault state entered when the RTC is
// unreachable at startup: blink the LED until the process is signalled.
// No pulse logic runs in this state.
func blinkFault(outs gpio.Outputs, interval time.Duration, sig <-chan os.Signal) error {
	log.Printf("entering fault state: blinking LED at %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	on := false
	for {
		select {
		case s := <-sig:
			outs.Set(gpio.LED, false)
			log.Printf("received %v in fault state, exiting", s)
			return nil
		case <-ticker.C:
			on = !on
			if err := outs.Set(gpio.LED, on); err != nil {
				log.Printf("led write error: %v", err)
			}
		}
	}
}
