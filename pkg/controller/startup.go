// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"errors"

	"github.com/logfocus/logfocus/pkg/base"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/logutil"
	"github.com/logfocus/logfocus/pkg/settings"
)

const BrokenSettingsMsg = "settings file is broken"

// Bootstrap loads persisted projects at startup. loadErr is the error from reading the
// settings file; a broken file is reported and treated as having no projects. With no
// projects a default one is created; a sole project is selected automatically.
func (c *Controller) Bootstrap(records []filtermodel.ProjectRecord, loadErr error) {
	ws := c.state.Workspace
	if loadErr != nil {
		if errors.Is(loadErr, settings.ErrBrokenSettings) {
			c.collab.Notifier.Error(BrokenSettingsMsg)
		} else {
			c.collab.Notifier.Error("cannot read settings: " + loadErr.Error())
		}
		records = nil
	}
	for _, err := range ws.LoadRecords(records) {
		logutil.LogfOnce("load:"+err.Error(), "[controller] skipping filter from settings: %v", err)
	}
	switch len(ws.Projects) {
	case 0:
		p := ws.AddProject(base.DefaultProjectName)
		ws.SelectProject(p.Id)
		if loadErr == nil {
			// a broken file is left alone until the next explicit change
			c.save()
		}
	case 1:
		ws.SelectProject(ws.Projects[0].Id)
	}
	log.Infof("[controller] started with %d projects, state %s", len(ws.Projects), c.State())
	c.refresh()
}
