// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

// Index maps ids to entities and their owners. Workspace keeps it exact on every mutation.
type Index struct {
	projects map[string]*Project
	groups   map[string]GroupRef
	filters  map[string]FilterRef
}

func MakeIndex() *Index {
	return &Index{
		projects: make(map[string]*Project),
		groups:   make(map[string]GroupRef),
		filters:  make(map[string]FilterRef),
	}
}

func (idx *Index) HasId(id string) bool {
	if _, ok := idx.projects[id]; ok {
		return true
	}
	if _, ok := idx.groups[id]; ok {
		return true
	}
	_, ok := idx.filters[id]
	return ok
}

func (idx *Index) addProject(p *Project) {
	idx.projects[p.Id] = p
	for _, g := range p.Groups {
		idx.addGroup(p, g)
	}
}

func (idx *Index) addGroup(p *Project, g *Group) {
	idx.groups[g.Id] = GroupRef{Group: g, Project: p}
	for _, f := range g.Filters {
		idx.addFilter(p, g, f)
	}
}

func (idx *Index) addFilter(p *Project, g *Group, f *Filter) {
	idx.filters[f.Id] = FilterRef{Filter: f, Group: g, Project: p}
}

func (idx *Index) removeProject(p *Project) {
	for _, g := range p.Groups {
		idx.removeGroup(g)
	}
	delete(idx.projects, p.Id)
}

func (idx *Index) removeGroup(g *Group) {
	for _, f := range g.Filters {
		delete(idx.filters, f.Id)
	}
	delete(idx.groups, g.Id)
}

func (idx *Index) removeFilter(f *Filter) {
	delete(idx.filters, f.Id)
}

func (idx *Index) NumFilters() int {
	return len(idx.filters)
}
