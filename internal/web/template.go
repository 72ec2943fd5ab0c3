package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/minute-clock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"minuteOrDash": func(m int) string {
		if m < 0 {
			return "—"
		}
		return fmt.Sprintf("%02d", m)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Minute Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.ok { color: green; font-weight: bold; }
.bad { color: red; }
.dim { color: #888; }
</style>
</head>
<body>
<h1>Minute Clock</h1>

<h2>Movement</h2>
<table>
<tr><th>Next polarity</th><td>{{.NextPolarity}}</td></tr>
<tr><th>Last processed minute</th><td>{{minuteOrDash .LastMinute}}</td></tr>
<tr><th>RTC time valid</th><td class="{{if .RTCValid}}ok{{else}}bad{{end}}">{{if .RTCValid}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}ok{{else}}bad{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Pulse Counts</h2>
<table>
<tr><th>Total</th><td>{{.Counts.Total}}</td></tr>
<tr><th>Phase A</th><td>{{.Counts.PhaseA}}</td></tr>
<tr><th>Phase B</th><td>{{.Counts.PhaseB}}</td></tr>
</table>

<h2>Daemon</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02 15:04:05 MST"}}</td></tr>
<tr><th>Poll interval</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Pulse duration</th><td>{{.Config.PulseMs}} ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}} ms</td></tr>
<tr><th>LED duration</th><td>{{.Config.LEDMs}} ms</td></tr>
<tr><th>I2C device</th><td>{{.Config.I2CDevice}}</td></tr>
</table>

<p class="dim"><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
