// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/logfocus/logfocus/pkg/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromJsonEnv(t *testing.T) {
	t.Setenv(base.DevEnvName, "")
	t.Setenv(base.ConfigJsonEnvName, `{"loglevel":"debug","debouncems":50}`)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.DebounceMs)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, base.GetDefaultSettingsPath(false), cfg.SettingsPath)
}

func TestLoadConfigFileEnv(t *testing.T) {
	t.Setenv(base.ConfigJsonEnvName, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"settingspath":"/tmp/x.json"}`), 0644))
	t.Setenv(base.ConfigFileEnvName, path)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", cfg.ResolvedSettingsPath())

	t.Setenv(base.ConfigFileEnvName, filepath.Join(dir, "missing.json"))
	_, err = LoadConfig()
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindConfigInParents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{"listenaddr":":9999"}`), 0644))
	child := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0755))

	cfg, err := findConfigInParents(child)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ":9999", cfg.ListenAddr)

	// the go.mod marker stops the walk before leaving the project
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "go.mod"), []byte("module y\n"), 0644))
	cfg, err = findConfigInParents(other)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestBrokenConfig(t *testing.T) {
	t.Setenv(base.ConfigJsonEnvName, `{not json`)
	_, err := LoadConfig()
	assert.Error(t, err)
}
