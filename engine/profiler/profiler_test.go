package profiler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestTickReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithInterval(time.Second), WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	start := time.Unix(100, 0)
	clock := start
	p.now = func() time.Time { return clock }
	p.lastTime = start

	frames := []float32{0.01, 0.03, 0.02}
	for i, dt := range frames {
		clock = clock.Add(300 * time.Millisecond)
		if p.Tick(dt) {
			t.Fatalf("frame %d reported before the interval elapsed", i)
		}
	}
	clock = clock.Add(100 * time.Millisecond)
	if !p.Tick(0.02) {
		t.Fatalf("Tick() did not report once the interval elapsed")
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if fps := rec["fps"].(float64); fps != 4 {
		t.Errorf("fps = %v, want 4", fps)
	}
	if mean := rec["frame_ms_mean"].(float64); mean < 19.9 || mean > 20.1 {
		t.Errorf("frame_ms_mean = %v, want 20", mean)
	}
	if worst := rec["frame_ms_max"].(float64); worst < 29.9 || worst > 30.1 {
		t.Errorf("frame_ms_max = %v, want 30", worst)
	}

	buf.Reset()
	clock = clock.Add(10 * time.Millisecond)
	if p.Tick(0.01) {
		t.Errorf("Tick() reported again right after a report")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}
