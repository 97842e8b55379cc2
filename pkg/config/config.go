// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"

	"github.com/logfocus/logfocus/pkg/base"
	"github.com/logfocus/logfocus/pkg/utilfn"
)

const (
	DefaultLogLevel   = "info"
	DefaultListenAddr = "127.0.0.1:5080"
	DefaultDebounceMs = 200
)

type Config struct {
	// SettingsPath is the project settings file; "~" is expanded
	SettingsPath string `json:"settingspath,omitempty"`
	LogLevel     string `json:"loglevel,omitempty"`
	Dev          bool   `json:"dev,omitempty"`

	// ListenAddr is the http address for the serve command
	ListenAddr string `json:"listenaddr,omitempty"`

	// DebounceMs coalesces bursts of file change notifications in watch mode
	DebounceMs int `json:"debouncems,omitempty"`
}

// getDefaultConfig returns a default configuration with the specified dev mode
func getDefaultConfig(isDev bool) *Config {
	return &Config{
		SettingsPath: base.GetDefaultSettingsPath(isDev),
		LogLevel:     DefaultLogLevel,
		Dev:          isDev,
		ListenAddr:   DefaultListenAddr,
		DebounceMs:   DefaultDebounceMs,
	}
}

// DefaultConfig returns the default configuration, honoring the dev env var
func DefaultConfig() *Config {
	return getDefaultConfig(os.Getenv(base.DevEnvName) != "")
}

// fillDefaults sets every zero field of cfg from the defaults
func (cfg *Config) fillDefaults() {
	def := getDefaultConfig(cfg.Dev || os.Getenv(base.DevEnvName) != "")
	cfg.Dev = def.Dev
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = def.SettingsPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = def.DebounceMs
	}
}

// ResolvedSettingsPath returns SettingsPath with the home directory expanded
func (cfg *Config) ResolvedSettingsPath() string {
	return utilfn.ExpandHomeDir(cfg.SettingsPath)
}
