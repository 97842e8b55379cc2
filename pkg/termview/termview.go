// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package termview renders highlight plans and focused documents for a terminal.
package termview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/logfocus/logfocus/pkg/base"
	"github.com/logfocus/logfocus/pkg/filtermodel"
	"github.com/logfocus/logfocus/pkg/focus"
)

const (
	textColor   = lipgloss.Color("#F9FAFB")
	mutedColor  = lipgloss.Color("#6B7280")
	bannerColor = lipgloss.Color("#7C3AED")
)

// Renderer styles output for one writer; color is dropped when the writer is not a terminal
type Renderer struct {
	renderer *lipgloss.Renderer
	gutter   lipgloss.Style
	banner   lipgloss.Style
	muted    lipgloss.Style
}

func MakeRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		renderer: r,
		gutter:   r.NewStyle().Foreground(mutedColor),
		banner:   r.NewStyle().Foreground(bannerColor).Bold(true),
		muted:    r.NewStyle().Foreground(mutedColor),
	}
}

func (r *Renderer) lineStyle(color string) lipgloss.Style {
	return r.renderer.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(textColor).
		TabWidth(lipgloss.NoTabConversion)
}

// Options control Render. LineNumbers gives the number shown for each line (use
// SourceLineNumbers for focused documents); nil numbers lines from 1, and a
// negative entry leaves the gutter blank. ShowGutter turns the gutter on.
type Options struct {
	ShowGutter  bool
	LineNumbers []int
}

// Render paints lines with the plan's layers; a line in several layers takes the last layer's color
func (r *Renderer) Render(lines []string, plan focus.Plan, opts Options) string {
	lineColor := make(map[int]string)
	for _, layer := range plan.Layers {
		for _, idx := range layer.Lines {
			lineColor[idx] = layer.Color
		}
	}
	gutterWidth := 0
	if opts.ShowGutter {
		gutterWidth = len(strconv.Itoa(len(lines)))
		for _, num := range opts.LineNumbers {
			// negative numbers render as a blank label
			if num >= 0 {
				gutterWidth = max(gutterWidth, len(strconv.Itoa(num)))
			}
		}
	}
	var sb strings.Builder
	for idx, line := range lines {
		if opts.ShowGutter {
			num := idx + 1
			if opts.LineNumbers != nil {
				num = opts.LineNumbers[idx]
			}
			label := ""
			if num >= 0 {
				label = strconv.Itoa(num)
			}
			sb.WriteString(r.gutter.Render(fmt.Sprintf("%*s │", gutterWidth, label)))
			sb.WriteString(" ")
		}
		switch {
		case idx == plan.BannerLine:
			sb.WriteString(r.banner.Render(base.FocusBannerText))
		case lineColor[idx] != "":
			sb.WriteString(r.lineStyle(lineColor[idx]).Render(line))
		default:
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SourceLineNumbers numbers a focused document by original line (1-based), the banner left blank
func SourceLineNumbers(survivors []int) []int {
	rtn := make([]int, 0, len(survivors)+focus.BannerLines)
	for i := 0; i < focus.BannerLines; i++ {
		rtn = append(rtn, -1)
	}
	for _, idx := range survivors {
		rtn = append(rtn, idx+1)
	}
	return rtn
}

// RenderCounts lists every filter of groups with its color swatch and current count
func (r *Renderer) RenderCounts(groups []*filtermodel.Group) string {
	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(g.Name)
		sb.WriteString("\n")
		for _, f := range g.Filters {
			swatch := r.renderer.NewStyle().Foreground(lipgloss.Color(f.Color)).Render("■")
			kind := "+"
			if f.IsExclude {
				kind = "-"
			}
			state := ""
			if !f.IsHighlighted && !f.IsExclude {
				state = r.muted.Render(" (off)")
			}
			if !f.IsShown {
				state += r.muted.Render(" (hidden)")
			}
			fmt.Fprintf(&sb, "  %s %s %s%s · %d\n", swatch, kind, f.Pattern.String(), state, f.MatchCount)
		}
	}
	return sb.String()
}
