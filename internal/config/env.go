// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either the short or long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the FRACCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
// apply reports whether the value was accepted.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) bool
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"DECIMAL", []string{"decimal"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Decimal = parsed
		}
		return err == nil
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Workers = parsed
		}
		return err == nil
	}},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) bool {
		parsed, err := time.ParseDuration(v)
		if err == nil {
			c.Timeout = parsed
		}
		return err == nil
	}},

	{"EXPR", []string{"e", "expr"}, func(c *AppConfig, v string) bool {
		if len(c.Exprs) > 0 {
			return false
		}
		c.Exprs = []string{v}
		return true
	}},
	{"INPUT", []string{"input", "i"}, func(c *AppConfig, v string) bool {
		c.InputFile = v
		return true
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) bool {
		c.OutputFile = v
		return true
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) bool {
		c.MetricsAddr = v
		return true
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) bool {
		c.LogLevel = v
		return true
	}},
	{"CONFIG", []string{"config"}, func(c *AppConfig, v string) bool {
		c.ConfigFile = v
		return true
	}},

	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.Quiet)
	}},
	{"REPL", []string{"repl"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.REPL)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value into dst.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// dst is left untouched and false is returned if the value is not recognized.
func parseBoolEnv(val string, dst *bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		*dst = true
		return true
	case "false", "0", "no":
		*dst = false
		return true
	}
	return false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line, and returns
// the primary flag names that took their value from the environment.
//
// Supported environment variables (all prefixed with FRACCALC_):
//   - EXPR, INPUT, OUTPUT, REPL, QUIET, DECIMAL, WORKERS, TIMEOUT,
//     METRICS_ADDR, LOG_LEVEL, NO_COLOR, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) map[string]bool {
	applied := make(map[string]bool)
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if o.apply(config, val) {
				applied[o.flags[0]] = true
			}
		}
	}
	return applied
}
