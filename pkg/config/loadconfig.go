// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/logfocus/logfocus/pkg/base"
)

const ConfigFileName = "logfocus-config.json"

// projectRootMarkers end the upward search for a config file
var projectRootMarkers = []string{".git", "go.mod"}

// LoadConfig finds and loads the configuration, first match wins:
//  1. LOGFOCUS_CONFIG_JSON (inline json)
//  2. LOGFOCUS_CONFIG (file path, must exist)
//  3. logfocus-config.json in the cwd or a parent, up to the project root or home
//
// Nothing found returns the defaults. Every returned config has its defaults filled in.
func LoadConfig() (*Config, error) {
	cfg, err := findConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return DefaultConfig(), nil
	}
	cfg.fillDefaults()
	return cfg, nil
}

func findConfig() (*Config, error) {
	if configJson := os.Getenv(base.ConfigJsonEnvName); configJson != "" {
		return parseConfig([]byte(configJson), base.ConfigJsonEnvName)
	}
	if configFile := os.Getenv(base.ConfigFileEnvName); configFile != "" {
		cfg, err := tryLoadConfig(configFile)
		if err == nil && cfg == nil {
			err = fmt.Errorf("config file %q from %s: %w", configFile, base.ConfigFileEnvName, os.ErrNotExist)
		}
		return cfg, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return findConfigInParents(cwd)
}

func findConfigInParents(dir string) (*Config, error) {
	homeDir, _ := os.UserHomeDir()
	for {
		cfg, err := tryLoadConfig(filepath.Join(dir, ConfigFileName))
		if cfg != nil || err != nil {
			return cfg, err
		}
		parent := filepath.Dir(dir)
		if hasProjectRoot(dir) || dir == homeDir || parent == dir || parent == "/" {
			return nil, nil
		}
		dir = parent
	}
}

func hasProjectRoot(dir string) bool {
	for _, marker := range projectRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// tryLoadConfig returns nil, nil when path does not exist
func tryLoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, origin string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config from %s: %w", origin, err)
	}
	return &cfg, nil
}
