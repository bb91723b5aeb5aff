package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// runLogged executes args against a fresh CLI whose logger writes to the
// returned buffer, and hands back the CLI so its resolved level can be read.
func runLogged(t *testing.T, args ...string) (*CLI, string) {
	t.Helper()
	var logs, out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return c, logs.String()
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVerboseFlagSelectsLevel(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		verbose   bool
		wantLevel log.Level
	}{
		{"defaults to info", "info", false, log.InfoLevel},
		{"verbose raises info to debug", "info", true, log.DebugLevel},
		{"config selects warn", "warn", false, log.WarnLevel},
		{"verbose overrides config warn", "warn", true, log.DebugLevel},
		{"config selects debug", "debug", false, log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, "log_level = \""+tt.logLevel+"\"\n[cache]\nbackend = \"none\"\n")
			args := []string{"compare", "1.0.0", "2.0.0", "--config", cfg}
			if tt.verbose {
				args = append(args, "--verbose")
			}
			c, logs := runLogged(t, args...)

			if got := c.Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			gotDebug := strings.Contains(logs, "configuration loaded")
			if wantDebug := tt.wantLevel == log.DebugLevel; gotDebug != wantDebug {
				t.Errorf("debug line logged = %v, want %v\n%s", gotDebug, wantDebug, logs)
			}
		})
	}
}

func TestVerboseShorthand(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	c, logs := runLogged(t, "check", "1.5.0", "--min", "1.2.0", "-v", "--config", cfg)

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if !strings.Contains(logs, cfg) {
		t.Errorf("debug output should name the config path %q:\n%s", cfg, logs)
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Validated 3 components")

	out := buf.String()
	if !strings.Contains(out, "Validated 3 components (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want message followed by a duration", out)
	}
}

func TestProgressSilencedAboveInfo(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Planned 2 upgrades")
	if buf.Len() != 0 {
		t.Errorf("progress at warn level wrote %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext() without a logger returned nil")
	}
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext() did not return the attached logger")
	}
	got.Info("matrix saved", "key", "default")
	if !strings.Contains(buf.String(), "matrix saved") {
		t.Errorf("attached logger output = %q", buf.String())
	}
}
