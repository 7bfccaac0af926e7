package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetTimestamps(false)
		SetOutput(os.Stderr)
		now = time.Now
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("slot %s -> %t", "motion", true) }, "[DEBUG] slot motion -> true\n"},
		{"info", func() { Info("session %d started", 7) }, "[INFO] session 7 started\n"},
		{"warn", func() { Warn("compass unavailable") }, "[WARN] compass unavailable\n"},
		{"section", func() { Section("Session") }, "\n=== Session ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := resetLogger(t)
			SetVerbose(true)

			tt.log()

			if got := buf.String(); got != tt.want {
				t.Errorf("unexpected output: %q", got)
			}
		})
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(false)

	Debug("hidden")
	Warn("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestTimestamps(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)
	SetTimestamps(true)
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC) }

	Info("stamped")

	want := "2026-01-02T03:04:05.006Z [INFO] stamped\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	resetLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
