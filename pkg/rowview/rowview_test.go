// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package rowview

import (
	"testing"

	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterRows(t *testing.T) {
	groups := []*filtermodel.Group{{
		Id: "g", Name: "errors", IsHighlighted: true, IsShown: false,
		Filters: []*filtermodel.Filter{
			{Id: "a", Pattern: filtermodel.MustCompilePattern("ERROR"), Color: "#aa0000", IsHighlighted: true, IsShown: true, MatchCount: 3},
			{Id: "b", Pattern: filtermodel.MustCompilePattern("WARN"), IsHighlighted: true, IsShown: false, MatchCount: 2},
			{Id: "c", Pattern: filtermodel.MustCompilePattern("DEBUG"), IsHighlighted: false, IsShown: true},
			{Id: "x", Pattern: filtermodel.MustCompilePattern("health"), IsShown: true, IsExclude: true, MatchCount: 4},
			{Id: "y", Pattern: filtermodel.MustCompilePattern("ping"), IsHighlighted: true, IsExclude: true},
		},
	}}

	rows := BuildFilterRows(groups, ViewFilters)
	require.Len(t, rows, 1)
	assert.Equal(t, RowGroup, rows[0].Kind)
	assert.Equal(t, "g-lit-invisible", rows[0].ContextValue)
	require.Len(t, rows[0].Children, 3)
	a, b, c := rows[0].Children[0], rows[0].Children[1], rows[0].Children[2]
	assert.Equal(t, RowFilter, a.Kind)
	assert.Equal(t, "/ERROR/", a.Label)
	assert.Equal(t, " · 3", a.Description)
	assert.Equal(t, "lit-visible", a.ContextValue)
	assert.Equal(t, "", b.Description)
	assert.Equal(t, "lit-invisible", b.ContextValue)
	assert.Equal(t, "unlit-visible", c.ContextValue)
	assert.Equal(t, "swatch-off", c.Icon)

	exRows := BuildFilterRows(groups, ViewExFilters)
	require.Len(t, exRows[0].Children, 2)
	x, y := exRows[0].Children[0], exRows[0].Children[1]
	assert.Equal(t, "f-visible", x.ContextValue)
	assert.Equal(t, " · 4", x.Description)
	assert.Equal(t, "f-invisible", y.ContextValue)
	assert.Empty(t, y.Description)

	var kinds []RowKind
	Walk(rows, func(r Row) { kinds = append(kinds, r.Kind) })
	assert.Equal(t, []RowKind{RowGroup, RowFilter, RowFilter, RowFilter}, kinds)
}

func TestBuildProjectRows(t *testing.T) {
	rows := BuildProjectRows([]*filtermodel.Project{{Id: "1", Name: "a"}, {Id: "2", Name: "b", IsSelected: true}})
	assert.Equal(t, []ProjectRow{{Id: "1", Name: "a"}, {Id: "2", Name: "b", IsSelected: true, Icon: "arrow-small-right"}}, rows)
}
