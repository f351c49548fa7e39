package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLoader(env map[string]string) *Loader {
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return NewLoader(WithEnv(NewEnvLoaderWithLookup(EnvPrefix, lookup)))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Bool(SettingGroupChanges) || !cfg.Bool(SettingClearMultipleCursors) {
		t.Error("group and clear should default to true")
	}
	if cfg.Bool(SettingDontUpdateRegister) || cfg.Bool(SettingAutoIndent) {
		t.Error("register and auto-indent settings should default to false")
	}
	if cfg.Bool("noSuchSetting") {
		t.Error("unknown settings should be false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "dotrepeat.toml", `
groupChangesWhenLeavingInsertMode = false
autoIndent = true
maxInsertionCount = 10

[log]
level = "debug"
format = "json"
`)
	cfg, err := testLoader(nil).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GroupChanges || !cfg.AutoIndent || cfg.MaxInsertionCount != 10 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.ClearMultipleCursors {
		t.Error("unset keys should keep their defaults")
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel = %v, %v", level, err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "dotrepeat.yml", `
clearMultipleCursorsOnEscapeInsertMode: false
dontUpdateRegisterOnChangeOrSubstitute: true
log:
  file: /tmp/dotrepeat.log
`)
	cfg, err := testLoader(nil).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClearMultipleCursors || !cfg.DontUpdateRegister {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.File != "/tmp/dotrepeat.log" {
		t.Errorf("log file = %q", cfg.Log.File)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "# nothing set\n")
	cfg, err := testLoader(nil).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GroupChanges {
		t.Error("empty file should keep defaults")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := testLoader(nil).Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GroupChanges || cfg.MaxInsertionCount != 100 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(error) bool
	}{
		{
			name: "unsupported extension", file: "c.json", content: "{}",
			check: func(err error) bool { return errors.Is(err, ErrUnsupportedFormat) },
		},
		{
			name: "bad toml", file: "c.toml", content: "autoIndent = \n",
			check: func(err error) bool {
				var perr *ParseError
				return errors.As(err, &perr) && perr.Line == 1
			},
		},
		{
			name: "unknown yaml key", file: "c.yaml", content: "colour: red\n",
			check: func(err error) bool {
				var perr *ParseError
				return errors.As(err, &perr)
			},
		},
		{
			name: "negative count", file: "c.toml", content: "maxInsertionCount = -1\n",
			check: func(err error) bool { return errors.Is(err, ErrValidationFailed) },
		},
		{
			name: "count above limit", file: "c.toml", content: "maxInsertionCount = 100000\n",
			check: func(err error) bool { return errors.Is(err, ErrValidationFailed) },
		},
		{
			name: "bad format", file: "c.yaml", content: "log:\n  format: xml\n",
			check: func(err error) bool { return errors.Is(err, ErrValidationFailed) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testLoader(nil).Load(writeFile(t, tt.file, tt.content))
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "c.toml", "autoIndent = false\n")
	cfg, err := testLoader(map[string]string{
		"DOTREPEAT_AUTO_INDENT":         "true",
		"DOTREPEAT_GROUP_CHANGES":       "0",
		"DOTREPEAT_MAX_INSERTION_COUNT": " 7 ",
		"DOTREPEAT_LOG_LEVEL":           "warn",
	}).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AutoIndent || cfg.GroupChanges || cfg.MaxInsertionCount != 7 || cfg.Log.Level != "warn" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestEnvCountAboveLimit(t *testing.T) {
	_, err := testLoader(map[string]string{"DOTREPEAT_MAX_INSERTION_COUNT": "101"}).Load("")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestEnvErrors(t *testing.T) {
	_, err := testLoader(map[string]string{
		"DOTREPEAT_AUTO_INDENT":         "maybe",
		"DOTREPEAT_MAX_INSERTION_COUNT": "many",
	}).Load("")

	var envErr *EnvError
	if !errors.As(err, &envErr) {
		t.Fatalf("expected EnvError, got %v", err)
	}
	if envErr.Name != "DOTREPEAT_AUTO_INDENT" {
		t.Errorf("first env error = %s", envErr.Name)
	}
}

func TestProcessEnvironment(t *testing.T) {
	t.Setenv("DOTREPEAT_DONT_UPDATE_REGISTER", "true")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DontUpdateRegister {
		t.Error("environment override not applied")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := writeFile(t, "watched.toml", "autoIndent = false\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	w := NewWatcher(path, WithDebounce(10*time.Millisecond), WithLoader(testLoader(nil)))
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(cfg *Config, err error) {
			if err == nil {
				reloaded <- cfg
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-reloaded:
			if cfg.AutoIndent {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Run: %v", err)
				}
				return
			}
		case <-tick.C:
			// Rewrite until the watcher, which may still be starting, sees it.
			if err := os.WriteFile(path, []byte("autoIndent = true\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("watcher did not reload")
		}
	}
}
