package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"warn at info", LogInfo, func(l *log.Logger) { l.Warn("dropped drawing") }, true},
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("checked") }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("cache miss") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("opened approach.vnav")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output = %q, want a HH:MM:SS.ms prefix", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Checked 3 drawings")

	out := buf.String()
	if !strings.Contains(out, "Checked 3 drawings (") || !strings.Contains(out, "s)") {
		t.Errorf("output = %q, want message followed by elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
	got.Info("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("attached logger wrote %q", buf.String())
	}
}

func TestVerboseFlagEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--verbose", "--config", t.TempDir() + "/config.toml", "config", "path"})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
