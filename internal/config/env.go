package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOTREPEAT_"

// EnvLoader overlays environment variables onto a Config.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader for variables starting with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading variables through lookup.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// envBinding maps a variable suffix to the field it sets.
type envBinding struct {
	suffix string
	set    func(c *Config, value string) error
}

func boolField(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func stringField(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

var envBindings = []envBinding{
	{"GROUP_CHANGES", boolField(func(c *Config) *bool { return &c.GroupChanges })},
	{"CLEAR_MULTIPLE_CURSORS", boolField(func(c *Config) *bool { return &c.ClearMultipleCursors })},
	{"DONT_UPDATE_REGISTER", boolField(func(c *Config) *bool { return &c.DontUpdateRegister })},
	{"AUTO_INDENT", boolField(func(c *Config) *bool { return &c.AutoIndent })},
	{"MAX_INSERTION_COUNT", func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		c.MaxInsertionCount = n
		return nil
	}},
	{"LOG_LEVEL", stringField(func(c *Config) *string { return &c.Log.Level })},
	{"LOG_FILE", stringField(func(c *Config) *string { return &c.Log.File })},
	{"LOG_FORMAT", stringField(func(c *Config) *string { return &c.Log.Format })},
}

// Apply overlays every set variable onto cfg. Empty values count as set.
func (l *EnvLoader) Apply(cfg *Config) error {
	var errs []error
	for _, b := range envBindings {
		name := l.prefix + b.suffix
		value, ok := l.lookup(name)
		if !ok {
			continue
		}
		if err := b.set(cfg, strings.TrimSpace(value)); err != nil {
			errs = append(errs, &EnvError{Name: name, Value: value, Err: err})
		}
	}
	return errors.Join(errs...)
}
