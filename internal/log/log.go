package log

import (
	"encoding/json"
	"log"
	"time"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	Method    string         `json:"method,omitempty"`
	URL       string         `json:"url,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Req carries outbound-request context for a log line.
type Req struct {
	ID      string
	Method  string
	URL     string
	Status  int
	Latency time.Duration
}

func write(level string, r *Req, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if r != nil {
		e.ReqID = r.ID
		e.Method = r.Method
		e.URL = r.URL
		e.Status = r.Status
		e.LatencyMs = r.Latency.Milliseconds()
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(r *Req, action string, fields map[string]any) { write("info", r, action, nil, fields) }
func Warn(r *Req, action string, fields map[string]any) { write("warn", r, action, nil, fields) }
func Error(r *Req, action string, err error, fields map[string]any) {
	write("error", r, action, err, fields)
}
