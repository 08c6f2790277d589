// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package gantt renders computed schedules as Gantt-style artifacts: plain
// text, raster images, interactive HTML documents, and GanttProject exports.
package gantt

import "errors"

// Format identifies the kind of a rendered artifact.
type Format string

const (
	FormatText            Format = "text"
	FormatRaster          Format = "raster"
	FormatHTMLInteractive Format = "html-interactive"
	FormatGanttProject    Format = "ganttproject"
)

// Artifact is a rendered output file derived from a schedule. Artifacts never
// feed back into the schedule.
type Artifact struct {
	Path   string
	Format Format
}

// ErrRenderUnavailable indicates a renderer's backing capability is disabled
// or missing. It is non-fatal; callers fall back to the text renderer.
var ErrRenderUnavailable = errors.New("renderer unavailable")

// Capabilities records which optional renderers are enabled. It is resolved
// once at startup and injected into the render suite; the text renderer is
// always available.
type Capabilities struct {
	Raster       bool
	Interactive  bool
	GanttProject bool

	// TextWidth is the line width for the text renderer, 0 to autodetect
	// from the terminal.
	TextWidth int
}
