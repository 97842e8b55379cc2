// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexflint/go-filemutex"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "settings")

var ErrBrokenSettings = errors.New("the settings file is broken")

const LockFileSuffix = ".lock"

// File is the on-disk layout of the settings file
type File struct {
	Projects []filtermodel.ProjectRecord `json:"projects"`
}

// Load reads the settings file. A missing file is created empty and yields no
// projects. A file that cannot be parsed yields an error wrapping ErrBrokenSettings.
func Load(path string) ([]filtermodel.ProjectRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("[settings] %s does not exist, creating it", path)
			return nil, Save(path, nil)
		}
		return nil, err
	}
	var raw struct {
		Projects *[]filtermodel.ProjectRecord `json:"projects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrokenSettings, err)
	}
	if raw.Projects == nil {
		return nil, fmt.Errorf("%w: missing projects", ErrBrokenSettings)
	}
	return *raw.Projects, nil
}

// Save writes the settings file atomically (temp file + rename) while holding an
// inter-process lock on <path>.lock.
func Save(path string, records []filtermodel.ProjectRecord) error {
	if records == nil {
		records = []filtermodel.ProjectRecord{}
	}
	content, err := json.MarshalIndent(File{Projects: records}, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create settings directory: %w", err)
	}
	fm, err := filemutex.New(path + LockFileSuffix)
	if err != nil {
		return fmt.Errorf("cannot open settings lock: %w", err)
	}
	defer fm.Close()
	if err := fm.Lock(); err != nil {
		return fmt.Errorf("cannot lock settings: %w", err)
	}
	defer fm.Unlock()

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
