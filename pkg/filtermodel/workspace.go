// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

import (
	"github.com/logfocus/logfocus/pkg/idgen"
	"github.com/logfocus/logfocus/pkg/utilfn"
	"golang.org/x/exp/slices"
)

// Workspace owns every project and the id index. At most one project is selected.
// It is not safe for concurrent use; callers serialize access (see controller.Loop).
type Workspace struct {
	Projects []*Project

	ids    idgen.Generator
	colors ColorGenerator
	index  *Index
}

func MakeWorkspace(ids idgen.Generator, colors ColorGenerator) *Workspace {
	return &Workspace{
		ids:    ids,
		colors: colors,
		index:  MakeIndex(),
	}
}

func (w *Workspace) newId() string {
	for {
		id := w.ids.NewId()
		if !w.index.HasId(id) {
			return id
		}
	}
}

// NewColor returns a fresh color token from the workspace's generator
func (w *Workspace) NewColor() string {
	return w.colors.NewColor()
}

func (w *Workspace) LookupProject(id string) (*Project, bool) {
	p, ok := w.index.projects[id]
	return p, ok
}

func (w *Workspace) LookupGroup(id string) (GroupRef, bool) {
	ref, ok := w.index.groups[id]
	return ref, ok
}

func (w *Workspace) LookupFilter(id string) (FilterRef, bool) {
	ref, ok := w.index.filters[id]
	return ref, ok
}

// Selected returns the selected project, if any
func (w *Workspace) Selected() (*Project, bool) {
	for _, p := range w.Projects {
		if p.IsSelected {
			return p, true
		}
	}
	return nil, false
}

// ActiveGroups returns the active rule set: the selected project's groups, or nil
func (w *Workspace) ActiveGroups() []*Group {
	p, ok := w.Selected()
	if !ok {
		return nil
	}
	return p.Groups
}

func (w *Workspace) AddProject(name string) *Project {
	p := &Project{
		Id:   w.newId(),
		Name: name,
	}
	w.Projects = append(w.Projects, p)
	w.index.addProject(p)
	return p
}

func (w *Workspace) RenameProject(id string, name string) bool {
	p, ok := w.LookupProject(id)
	if !ok {
		return false
	}
	p.Name = name
	return true
}

// DeleteProject removes a project. wasSelected reports whether the active rule set was cleared.
func (w *Workspace) DeleteProject(id string) (deleted bool, wasSelected bool) {
	p, ok := w.LookupProject(id)
	if !ok {
		return false, false
	}
	w.index.removeProject(p)
	w.Projects = slices.DeleteFunc(w.Projects, func(other *Project) bool { return other == p })
	return true, p.IsSelected
}

// SelectProject makes id the single selected project
func (w *Workspace) SelectProject(id string) SelectResult {
	p, ok := w.LookupProject(id)
	if !ok {
		return SelectNotFound
	}
	if p.IsSelected {
		return SelectAlreadySelected
	}
	for _, other := range w.Projects {
		other.IsSelected = false
	}
	p.IsSelected = true
	return SelectDone
}

// Deselect clears the selection (no active rule set)
func (w *Workspace) Deselect() {
	for _, p := range w.Projects {
		p.IsSelected = false
	}
}

// AddGroup creates an empty group (flags on) at the end of the project
func (w *Workspace) AddGroup(projectId string, name string) (*Group, bool) {
	p, ok := w.LookupProject(projectId)
	if !ok {
		return nil, false
	}
	g := &Group{
		Id:            w.newId(),
		Name:          name,
		IsHighlighted: true,
		IsShown:       true,
	}
	p.Groups = append(p.Groups, g)
	w.index.addGroup(p, g)
	return g, true
}

// AddSeededGroup creates a group and its filters with the flags carried by seed
func (w *Workspace) AddSeededGroup(projectId string, seed GroupSeed) (*Group, bool) {
	p, ok := w.LookupProject(projectId)
	if !ok {
		return nil, false
	}
	g := &Group{
		Id:            w.newId(),
		Name:          seed.Name,
		IsHighlighted: seed.IsHighlighted,
		IsShown:       seed.IsShown,
	}
	p.Groups = append(p.Groups, g)
	w.index.addGroup(p, g)
	for _, fseed := range seed.Filters {
		w.appendFilter(p, g, fseed)
	}
	return g, true
}

func (w *Workspace) RenameGroup(id string, name string) bool {
	ref, ok := w.LookupGroup(id)
	if !ok {
		return false
	}
	ref.Group.Name = name
	return true
}

// DeleteGroup removes the group and every filter it owns
func (w *Workspace) DeleteGroup(id string) bool {
	ref, ok := w.LookupGroup(id)
	if !ok {
		return false
	}
	w.index.removeGroup(ref.Group)
	ref.Project.Groups = slices.DeleteFunc(ref.Project.Groups, func(g *Group) bool { return g == ref.Group })
	return true
}

// MoveGroup moves a group to position toIdx (clamped) within its project
func (w *Workspace) MoveGroup(id string, toIdx int) bool {
	ref, ok := w.LookupGroup(id)
	if !ok {
		return false
	}
	ref.Project.Groups = moveItem(ref.Project.Groups, ref.Group, toIdx)
	return true
}

// AddFilter creates a filter at the end of the group. Highlight and shown default to on.
func (w *Workspace) AddFilter(groupId string, pattern Pattern, color string, isExclude bool) (*Filter, bool) {
	ref, ok := w.LookupGroup(groupId)
	if !ok {
		return nil, false
	}
	if color == "" {
		color = w.NewColor()
	}
	f := w.appendFilter(ref.Project, ref.Group, FilterSeed{
		Pattern:       pattern,
		Color:         color,
		IsHighlighted: true,
		IsShown:       true,
		IsExclude:     isExclude,
	})
	return f, true
}

func (w *Workspace) appendFilter(p *Project, g *Group, seed FilterSeed) *Filter {
	f := &Filter{
		Id:            w.newId(),
		Pattern:       seed.Pattern,
		Color:         seed.Color,
		IsHighlighted: seed.IsHighlighted,
		IsShown:       seed.IsShown,
		IsExclude:     seed.IsExclude,
	}
	g.Filters = append(g.Filters, f)
	w.index.addFilter(p, g, f)
	return f
}

// EditFilter replaces the filter's pattern. Callers compile the pattern first so an
// invalid pattern never reaches the model.
func (w *Workspace) EditFilter(id string, pattern Pattern) bool {
	ref, ok := w.LookupFilter(id)
	if !ok {
		return false
	}
	ref.Filter.Pattern = pattern
	return true
}

func (w *Workspace) DeleteFilter(id string) bool {
	ref, ok := w.LookupFilter(id)
	if !ok {
		return false
	}
	w.index.removeFilter(ref.Filter)
	ref.Group.Filters = slices.DeleteFunc(ref.Group.Filters, func(f *Filter) bool { return f == ref.Filter })
	return true
}

// MoveFilter moves a filter to position toIdx (clamped) within its group
func (w *Workspace) MoveFilter(id string, toIdx int) bool {
	ref, ok := w.LookupFilter(id)
	if !ok {
		return false
	}
	ref.Group.Filters = moveItem(ref.Group.Filters, ref.Filter, toIdx)
	return true
}

func (w *Workspace) SetFilterHighlighted(id string, isHighlighted bool) bool {
	ref, ok := w.LookupFilter(id)
	if !ok {
		return false
	}
	ref.Filter.IsHighlighted = isHighlighted
	return true
}

func (w *Workspace) SetFilterShown(id string, isShown bool) bool {
	ref, ok := w.LookupFilter(id)
	if !ok {
		return false
	}
	ref.Filter.IsShown = isShown
	return true
}

// SetGroupHighlighted sets the group flag and the same flag on every owned filter
func (w *Workspace) SetGroupHighlighted(id string, isHighlighted bool) bool {
	ref, ok := w.LookupGroup(id)
	if !ok {
		return false
	}
	ref.Group.IsHighlighted = isHighlighted
	for _, f := range ref.Group.Filters {
		f.IsHighlighted = isHighlighted
	}
	return true
}

// SetGroupShown sets the group flag and the same flag on every owned filter
func (w *Workspace) SetGroupShown(id string, isShown bool) bool {
	ref, ok := w.LookupGroup(id)
	if !ok {
		return false
	}
	ref.Group.IsShown = isShown
	for _, f := range ref.Group.Filters {
		f.IsShown = isShown
	}
	return true
}

// Records returns the persisted form of every project
func (w *Workspace) Records() []ProjectRecord {
	rtn := make([]ProjectRecord, 0, len(w.Projects))
	for _, p := range w.Projects {
		prec := ProjectRecord{Name: p.Name, Groups: make([]GroupRecord, 0, len(p.Groups))}
		for _, g := range p.Groups {
			grec := GroupRecord{Name: g.Name, Filters: make([]FilterRecord, 0, len(g.Filters))}
			for _, f := range g.Filters {
				grec.Filters = append(grec.Filters, FilterRecord{
					Regex:     f.Pattern.Source,
					Color:     f.Color,
					IsExclude: f.IsExclude,
				})
			}
			prec.Groups = append(prec.Groups, grec)
		}
		rtn = append(rtn, prec)
	}
	return rtn
}

// LoadRecords appends persisted projects. Loaded entities are inert: fresh ids,
// every highlight/shown flag off, nothing selected. Filters whose regex no longer
// compiles are skipped and returned as errors.
func (w *Workspace) LoadRecords(records []ProjectRecord) []error {
	var errs []error
	for _, prec := range records {
		p := w.AddProject(prec.Name)
		for _, grec := range prec.Groups {
			seed := GroupSeed{Name: grec.Name}
			for _, frec := range grec.Filters {
				pattern, err := CompilePattern(frec.Regex)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				seed.Filters = append(seed.Filters, FilterSeed{
					Pattern:   pattern,
					Color:     frec.Color,
					IsExclude: frec.IsExclude,
				})
			}
			w.AddSeededGroup(p.Id, seed)
		}
	}
	return errs
}

func moveItem[T comparable](arr []T, item T, toIdx int) []T {
	fromIdx := slices.Index(arr, item)
	if fromIdx < 0 {
		return arr
	}
	arr = slices.Delete(arr, fromIdx, fromIdx+1)
	return slices.Insert(arr, utilfn.BoundValue(toIdx, 0, len(arr)), item)
}
