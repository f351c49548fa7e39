package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Setting names answered by Bool.
const (
	SettingGroupChanges         = "groupChangesWhenLeavingInsertMode"
	SettingClearMultipleCursors = "clearMultipleCursorsOnEscapeInsertMode"
	SettingDontUpdateRegister   = "dontUpdateRegisterOnChangeOrSubstitute"
	SettingAutoIndent           = "autoIndent"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds every dotrepeat setting.
type Config struct {
	// GroupChanges folds a whole insert session into one undo step.
	GroupChanges bool `toml:"groupChangesWhenLeavingInsertMode" yaml:"groupChangesWhenLeavingInsertMode"`

	// ClearMultipleCursors drops extra cursors when insert mode ends.
	ClearMultipleCursors bool `toml:"clearMultipleCursorsOnEscapeInsertMode" yaml:"clearMultipleCursorsOnEscapeInsertMode"`

	// DontUpdateRegister keeps change and substitute out of the registers.
	DontUpdateRegister bool `toml:"dontUpdateRegisterOnChangeOrSubstitute" yaml:"dontUpdateRegisterOnChangeOrSubstitute"`

	AutoIndent bool `toml:"autoIndent" yaml:"autoIndent"`

	// MaxInsertionCount caps counted insertion. Zero keeps the built-in cap;
	// the cap can be lowered but never raised past MaxInsertionLimit.
	MaxInsertionCount int `toml:"maxInsertionCount" yaml:"maxInsertionCount"`

	Log LogConfig `toml:"log" yaml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	File   string `toml:"file" yaml:"file"`
	Format string `toml:"format" yaml:"format"`
}

// MaxInsertionLimit is the highest accepted MaxInsertionCount.
const MaxInsertionLimit = 100

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		GroupChanges:         true,
		ClearMultipleCursors: true,
		MaxInsertionCount:    MaxInsertionLimit,
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Bool returns the boolean setting called name. Unknown names are false.
func (c *Config) Bool(name string) bool {
	switch name {
	case SettingGroupChanges:
		return c.GroupChanges
	case SettingClearMultipleCursors:
		return c.ClearMultipleCursors
	case SettingDontUpdateRegister:
		return c.DontUpdateRegister
	case SettingAutoIndent:
		return c.AutoIndent
	}
	return false
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrValidationFailed, c.Log.Level)
	}
	return level, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxInsertionCount < 0 || c.MaxInsertionCount > MaxInsertionLimit {
		return fmt.Errorf("%w: maxInsertionCount must be within [0, %d], got %d",
			ErrValidationFailed, MaxInsertionLimit, c.MaxInsertionCount)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrValidationFailed, c.Log.Format)
	}
	if c.Log.Level != "" {
		if _, err := c.LogLevel(); err != nil {
			return err
		}
	}
	return nil
}
