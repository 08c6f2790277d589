// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

const (
	// labelWidth is the fixed width of the step label column.
	labelWidth = 30

	// labelSep separates the label column from the duration bar.
	labelSep = " | "

	// maxTextWidth caps the detected terminal width.
	maxTextWidth = 150

	// defaultTextWidth is used when terminal detection fails.
	defaultTextWidth = 100
)

// TextRenderer renders a schedule as a fixed-width text chart. It is always
// available.
type TextRenderer struct {
	// Width is the target line width. When zero the width is detected from
	// stdout, capped at maxTextWidth, falling back to defaultTextWidth.
	Width int
}

// Render returns the multi-line text chart for the schedule.
//
// Each step is one line: a fixed-width label, a bar of '=' characters
// proportional to the duration in minutes with the duration overlaid when it
// fits, and a dependency annotation on the same line when it fits in the
// line width or on an indented continuation line otherwise. A schedule with no
// steps renders a "no tasks" message.
func (r *TextRenderer) Render(s *schedule.Schedule, title string) string {
	if len(s.Steps) == 0 {
		return "No tasks found in the schedule"
	}

	width := r.Width
	if width <= 0 {
		width = detectWidth()
	}
	if width > maxTextWidth {
		width = maxTextWidth
	}

	var lines []string
	lines = append(lines, strings.Repeat("=", width))
	lines = append(lines, center(title, width))
	lines = append(lines, strings.Repeat("=", width))
	lines = append(lines, "")

	// Lay out all bars first; annotation placement needs the final bar
	// positions because continuation lines shift later line indices.
	lineIdx := make([]int, len(s.Steps))
	for i, step := range s.Steps {
		lines = append(lines, formatLabel(step.Description)+labelSep+formatBar(step.DurationMinutes))
		lineIdx[i] = len(lines) - 1
	}

	byID := make(map[string]schedule.ScheduledStep, len(s.Steps))
	for _, step := range s.Steps {
		byID[step.ID] = step
	}

	for i, step := range s.Steps {
		if len(step.Dependencies) == 0 {
			continue
		}
		names := make([]string, 0, len(step.Dependencies))
		for _, dep := range step.Dependencies {
			names = append(names, dep+":"+runePrefix(byID[dep].Description, 5))
		}

		idx := lineIdx[i]
		annotation := " ⬅ " + strings.Join(names, ", ")
		if runeLen(lines[idx])+runeLen(annotation) <= width {
			lines[idx] += annotation
			continue
		}

		continuation := strings.Repeat(" ", labelWidth+len(labelSep)) + "Requires: " + strings.Join(names, ", ")
		continuation = runePrefix(continuation, width)
		lines = append(lines[:idx+1], append([]string{continuation}, lines[idx+1:]...)...)
		for j := range lineIdx {
			if lineIdx[j] > idx {
				lineIdx[j]++
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, strings.Repeat("-", width))
	lines = append(lines, fmt.Sprintf("Legend: • Each '=' represents 1 minute  • Total estimated duration: %.0f minutes", s.TotalDurationMinutes))
	lines = append(lines, "        • The 'ID:Name' notation after '⬅' marks dependencies (required prior steps)")
	lines = append(lines, strings.Repeat("=", width))

	return strings.Join(lines, "\n")
}

// formatLabel truncates a step description with an ellipsis or pads it with
// trailing spaces to exactly labelWidth characters.
func formatLabel(name string) string {
	runes := []rune(name)
	if len(runes) > labelWidth {
		return string(runes[:labelWidth-3]) + "..."
	}
	return name + strings.Repeat(" ", labelWidth-len(runes))
}

// formatBar builds the duration bar: one '=' per minute, rounded up, at least
// one character, with the duration label embedded when the bar can hold it
// plus the separator character.
func formatBar(durationMinutes float64) string {
	barLen := int(durationMinutes + 0.99)
	if barLen < 1 {
		barLen = 1
	}
	label := fmt.Sprintf("%.0fm", durationMinutes)
	if barLen >= len(label)+2 {
		return "=" + label + strings.Repeat("=", barLen-len(label)-1)
	}
	return strings.Repeat("=", barLen)
}

func center(s string, width int) string {
	pad := width - runeLen(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func runeLen(s string) int { return len([]rune(s)) }

func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func detectWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTextWidth
}
