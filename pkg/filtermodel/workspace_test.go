// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filtermodel

import (
	"errors"
	"regexp"
	"testing"

	"github.com/logfocus/logfocus/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestWorkspace() *Workspace {
	return MakeWorkspace(idgen.NewCounter("id"), &FixedColorGenerator{Colors: []string{"#aa0000", "#00aa00"}})
}

func TestCompilePattern(t *testing.T) {
	p, err := CompilePattern("fo+")
	require.NoError(t, err)
	assert.Equal(t, "fo+", p.Source)
	assert.True(t, p.MatchString("xfoo"))
	assert.False(t, p.MatchString("bar"))

	empty, err := CompilePattern("")
	require.NoError(t, err)
	assert.True(t, empty.MatchString("anything"))
	assert.True(t, empty.MatchString(""))

	_, err = CompilePattern("(unclosed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

func TestAddFilterDefaults(t *testing.T) {
	w := makeTestWorkspace()
	p := w.AddProject("p")
	g, ok := w.AddGroup(p.Id, "g")
	require.True(t, ok)
	assert.True(t, g.IsHighlighted)
	assert.True(t, g.IsShown)

	f, ok := w.AddFilter(g.Id, MustCompilePattern("foo"), "", false)
	require.True(t, ok)
	assert.True(t, f.IsHighlighted)
	assert.True(t, f.IsShown)
	assert.False(t, f.IsExclude)
	assert.Equal(t, "#aa0000", f.Color)

	ref, ok := w.LookupFilter(f.Id)
	require.True(t, ok)
	assert.Same(t, g, ref.Group)
	assert.Same(t, p, ref.Project)

	_, ok = w.AddFilter("missing", MustCompilePattern("foo"), "", false)
	assert.False(t, ok)
}

func TestIdsUnique(t *testing.T) {
	// a generator that repeats itself must not produce duplicate ids
	w := MakeWorkspace(&repeatingGen{ids: []string{"a", "a", "b", "b", "c", "d"}}, &FixedColorGenerator{})
	p := w.AddProject("p")
	g, _ := w.AddGroup(p.Id, "g")
	f, _ := w.AddFilter(g.Id, MustCompilePattern("x"), "", false)
	assert.Equal(t, "a", p.Id)
	assert.Equal(t, "b", g.Id)
	assert.Equal(t, "c", f.Id)
}

type repeatingGen struct {
	ids []string
	pos int
}

func (g *repeatingGen) NewId() string {
	id := g.ids[g.pos]
	g.pos++
	return id
}

func TestGroupToggleCascades(t *testing.T) {
	w := makeTestWorkspace()
	p := w.AddProject("p")
	g, _ := w.AddGroup(p.Id, "g")
	f1, _ := w.AddFilter(g.Id, MustCompilePattern("a"), "", false)
	f2, _ := w.AddFilter(g.Id, MustCompilePattern("b"), "", true)

	require.True(t, w.SetGroupHighlighted(g.Id, false))
	assert.False(t, g.IsHighlighted)
	assert.False(t, f1.IsHighlighted)
	assert.False(t, f2.IsHighlighted)
	assert.True(t, f1.IsShown)

	require.True(t, w.SetGroupShown(g.Id, false))
	assert.False(t, f1.IsShown)
	assert.False(t, f2.IsShown)

	// toggling a filter leaves siblings and the group alone
	require.True(t, w.SetFilterHighlighted(f1.Id, true))
	assert.True(t, f1.IsHighlighted)
	assert.False(t, f2.IsHighlighted)
	assert.False(t, g.IsHighlighted)

	require.True(t, w.SetFilterShown(f2.Id, true))
	assert.True(t, f2.IsShown)
	assert.False(t, f1.IsShown)
	assert.False(t, g.IsShown)
}

func TestStaleIdsAreNoops(t *testing.T) {
	w := makeTestWorkspace()
	p := w.AddProject("p")
	g, _ := w.AddGroup(p.Id, "g")
	f, _ := w.AddFilter(g.Id, MustCompilePattern("a"), "", false)

	require.True(t, w.DeleteGroup(g.Id))
	_, ok := w.LookupFilter(f.Id)
	assert.False(t, ok, "filters of a deleted group leave the index")
	assert.False(t, w.DeleteFilter(f.Id))
	assert.False(t, w.SetFilterShown(f.Id, false))
	assert.False(t, w.EditFilter(f.Id, MustCompilePattern("b")))
	assert.False(t, w.RenameGroup(g.Id, "x"))
	assert.False(t, w.SetGroupHighlighted(g.Id, true))
	assert.Equal(t, SelectNotFound, w.SelectProject("nope"))
}

func TestSelectAndDeleteProject(t *testing.T) {
	w := makeTestWorkspace()
	p1 := w.AddProject("one")
	p2 := w.AddProject("two")
	g, _ := w.AddGroup(p1.Id, "g")

	assert.Nil(t, w.ActiveGroups())
	assert.Equal(t, SelectDone, w.SelectProject(p1.Id))
	assert.Equal(t, SelectAlreadySelected, w.SelectProject(p1.Id))
	require.Len(t, w.ActiveGroups(), 1)
	assert.Same(t, g, w.ActiveGroups()[0])

	deleted, wasSelected := w.DeleteProject(p2.Id)
	assert.True(t, deleted)
	assert.False(t, wasSelected)
	assert.Len(t, w.ActiveGroups(), 1)

	deleted, wasSelected = w.DeleteProject(p1.Id)
	assert.True(t, deleted)
	assert.True(t, wasSelected)
	assert.Nil(t, w.ActiveGroups())
	_, ok := w.LookupGroup(g.Id)
	assert.False(t, ok)
}

func TestMoveFilterAndGroup(t *testing.T) {
	w := makeTestWorkspace()
	p := w.AddProject("p")
	g1, _ := w.AddGroup(p.Id, "g1")
	g2, _ := w.AddGroup(p.Id, "g2")
	a, _ := w.AddFilter(g1.Id, MustCompilePattern("a"), "", false)
	b, _ := w.AddFilter(g1.Id, MustCompilePattern("b"), "", false)
	c, _ := w.AddFilter(g1.Id, MustCompilePattern("c"), "", false)

	require.True(t, w.MoveFilter(c.Id, 0))
	assert.Equal(t, []*Filter{c, a, b}, g1.Filters)
	require.True(t, w.MoveFilter(c.Id, 99))
	assert.Equal(t, []*Filter{a, b, c}, g1.Filters)

	require.True(t, w.MoveGroup(g2.Id, -5))
	assert.Equal(t, []*Group{g2, g1}, p.Groups)
}

func TestRecordsAndLoad(t *testing.T) {
	w := makeTestWorkspace()
	p := w.AddProject("p")
	g, _ := w.AddGroup(p.Id, "g")
	w.AddFilter(g.Id, MustCompilePattern("foo"), "#123456", false)
	w.AddFilter(g.Id, MustCompilePattern("bar"), "#654321", true)
	w.SelectProject(p.Id)

	records := w.Records()
	require.Len(t, records, 1)
	assert.Equal(t, ProjectRecord{
		Name: "p",
		Groups: []GroupRecord{{
			Name: "g",
			Filters: []FilterRecord{
				{Regex: "foo", Color: "#123456"},
				{Regex: "bar", Color: "#654321", IsExclude: true},
			},
		}},
	}, records[0])

	loaded := MakeWorkspace(idgen.NewCounter("l"), &FixedColorGenerator{})
	records[0].Groups[0].Filters = append(records[0].Groups[0].Filters, FilterRecord{Regex: "(bad", Color: "#000000"})
	errs := loaded.LoadRecords(records)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrInvalidPattern))

	require.Len(t, loaded.Projects, 1)
	lp := loaded.Projects[0]
	assert.False(t, lp.IsSelected)
	assert.NotEqual(t, p.Id, lp.Id)
	require.Len(t, lp.Groups, 1)
	lg := lp.Groups[0]
	assert.False(t, lg.IsHighlighted)
	assert.False(t, lg.IsShown)
	require.Len(t, lg.Filters, 2)
	for _, f := range lg.Filters {
		assert.False(t, f.IsHighlighted)
		assert.False(t, f.IsShown)
		assert.Zero(t, f.MatchCount)
	}
	assert.Equal(t, "foo", lg.Filters[0].Pattern.Source)
	assert.True(t, lg.Filters[1].IsExclude)
}

func TestRandomColorGenerator(t *testing.T) {
	gen := MakeRandomColorGenerator(42)
	colorRe := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, colorRe, gen.NewColor())
	}
}
