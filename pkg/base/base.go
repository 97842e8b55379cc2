// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package base

// Home directory paths
const LogFocusHome = "~/.config/logfocus"
const DevLogFocusHome = "~/.config/logfocus-dev"

// Settings file name (just the filename part)
const DefaultSettingsFileName = "logfocus.json"

// Environment variables
const DevEnvName = "LOGFOCUS_DEV"
const ConfigJsonEnvName = "LOGFOCUS_CONFIG_JSON"
const ConfigFileEnvName = "LOGFOCUS_CONFIG"

// FocusScheme is the scheme tag prefixed to a document location to address its focused view
const FocusScheme = "focus"

// FocusBannerText is painted on the synthetic first line of a focused document
const FocusBannerText = ">>>>>>>focus mode<<<<<<<"

// DefaultProjectName is used when a default project has to be synthesized
const DefaultProjectName = "default"

const LogFocusVersion = "v0.1.0"

// GetHome returns the appropriate home directory based on dev mode
func GetHome(isDev bool) string {
	if isDev {
		return DevLogFocusHome
	}
	return LogFocusHome
}

// GetDefaultSettingsPath returns the default settings file path (unexpanded)
func GetDefaultSettingsPath(isDev bool) string {
	return GetHome(isDev) + "/" + DefaultSettingsFileName
}
