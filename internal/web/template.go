package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pranavrao145/sad-cat-fixer/internal/status"
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
	"onOff": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sad Cat Fixer</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.auto { color: #06c; font-weight: bold; }
.manual { color: #c60; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Sad Cat Fixer</h1>

<h2>State</h2>
<table>
<tr><th>Mode</th><td class="{{if eq (printf "%s" .Mode) "AUTOMATIC"}}auto{{else}}manual{{end}}">{{.Mode}}</td></tr>
<tr><th>Laser</th><td class="{{if .LaserOn}}on{{else}}off{{end}}">{{onOff .LaserOn}}</td></tr>
<tr><th>Preset</th><td>{{.Preset}}</td></tr>
<tr><th>Servo angle</th><td>{{.Angle}}&deg;</td></tr>
<tr><th>Sweep speed</th><td>{{.Speed}}&deg;/tick</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Command Counts</h2>
<table>
<tr><th>Mode switches</th><td>{{.Counts.ModeSwitches}}</td></tr>
<tr><th>Preset changes</th><td>{{.Counts.PresetChanges}}</td></tr>
<tr><th>Rotations</th><td>{{.Counts.Rotations}}</td></tr>
<tr><th>Speed changes</th><td>{{.Counts.SpeedChanges}}</td></tr>
<tr><th>Unmapped codes</th><td>{{.Counts.Unmapped}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>Preset interval</th><td>{{.Config.PresetIntervalMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
