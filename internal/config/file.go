package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig is the on-disk form of the settings that may be given in a
// TOML config file:
//
//	decimal      = 6
//	workers      = 4
//	timeout      = "30s"
//	quiet        = true
//	log_level    = "info"
//	metrics_addr = ":9090"
//	no_color     = true
type FileConfig struct {
	Decimal     int    `toml:"decimal"`
	Workers     int    `toml:"workers"`
	Timeout     string `toml:"timeout"`
	Quiet       bool   `toml:"quiet"`
	LogLevel    string `toml:"log_level"`
	MetricsAddr string `toml:"metrics_addr"`
	NoColor     bool   `toml:"no_color"`
}

// LoadFile decodes the TOML file at path. The returned metadata records which
// keys were present.
func LoadFile(path string) (FileConfig, toml.MetaData, error) {
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fc, md, fmt.Errorf("failed to load config file %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fc, md, fmt.Errorf("config file %q: unknown key %q", path, undecoded[0].String())
	}
	return fc, md, nil
}

// fileOverride maps a TOML key to the primary flag it backs.
type fileOverride struct {
	key   string
	flags []string
	apply func(*AppConfig, FileConfig) error
}

var fileOverrides = []fileOverride{
	{"decimal", []string{"decimal"}, func(c *AppConfig, fc FileConfig) error {
		c.Decimal = fc.Decimal
		return nil
	}},
	{"workers", []string{"workers"}, func(c *AppConfig, fc FileConfig) error {
		c.Workers = fc.Workers
		return nil
	}},
	{"timeout", []string{"timeout"}, func(c *AppConfig, fc FileConfig) error {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		c.Timeout = d
		return nil
	}},
	{"quiet", []string{"quiet", "q"}, func(c *AppConfig, fc FileConfig) error {
		c.Quiet = fc.Quiet
		return nil
	}},
	{"log_level", []string{"log-level"}, func(c *AppConfig, fc FileConfig) error {
		c.LogLevel = fc.LogLevel
		return nil
	}},
	{"metrics_addr", []string{"metrics-addr"}, func(c *AppConfig, fc FileConfig) error {
		c.MetricsAddr = fc.MetricsAddr
		return nil
	}},
	{"no_color", []string{"no-color"}, func(c *AppConfig, fc FileConfig) error {
		c.NoColor = fc.NoColor
		return nil
	}},
}

// applyFileOverrides fills in values from config.ConfigFile for keys that
// were neither set on the command line nor taken from the environment.
func applyFileOverrides(config *AppConfig, fs *flag.FlagSet, fromEnv map[string]bool) error {
	fc, md, err := LoadFile(config.ConfigFile)
	if err != nil {
		return err
	}
	for _, o := range fileOverrides {
		if !md.IsDefined(o.key) || isFlagSetAny(fs, o.flags...) || fromEnv[o.flags[0]] {
			continue
		}
		if err := o.apply(config, fc); err != nil {
			return fmt.Errorf("config file %q: %w", config.ConfigFile, err)
		}
	}
	return nil
}
