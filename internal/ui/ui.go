// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package ui holds the terminal styling used by the cooking assistant.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// Palette — warm, kitchen-friendly, readable on dark terminals.
var (
	tomato  = lipgloss.Color("203")
	basil   = lipgloss.Color("76")
	saffron = lipgloss.Color("214")
	cream   = lipgloss.Color("230")
	dim     = lipgloss.Color("243")
	faint   = lipgloss.Color("238")
)

// Base styles available for direct use.
var (
	TitleStyle   = lipgloss.NewStyle().Foreground(tomato).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(basil)
	WarnStyle    = lipgloss.NewStyle().Foreground(saffron)
	ErrorStyle   = lipgloss.NewStyle().Foreground(tomato)
	MutedStyle   = lipgloss.NewStyle().Foreground(dim)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// Inline helpers — return styled text without newlines.

func Title(s string) string   { return TitleStyle.Render(s) }
func Bold(s string) string    { return BoldStyle.Render(s) }
func Muted(s string) string   { return MutedStyle.Render(s) }
func Success(s string) string { return SuccessStyle.Render(s) }
func Warn(s string) string    { return WarnStyle.Render(s) }

// Message helpers — single-line strings (no trailing newline).

func SuccessMsg(format string, a ...any) string {
	return SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, a...)
}

func WarnMsg(format string, a ...any) string {
	return WarnStyle.Render("!") + " " + fmt.Sprintf(format, a...)
}

func ErrorMsg(format string, a ...any) string {
	return ErrorStyle.Render("✗") + " " + fmt.Sprintf(format, a...)
}

func TimerMsg(format string, a ...any) string {
	return WarnStyle.Render("⏰") + " " + fmt.Sprintf(format, a...)
}

// Panel draws content inside a rounded, titled border, the assistant's frame
// for model replies and schedules.
func Panel(title, content string) string {
	border := faint
	if !termenv.HasDarkBackground() {
		border = dim
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	if title != "" {
		content = TitleStyle.Render(title) + "\n" + content
	}
	return box.Render(content)
}

// StepsTable renders the recipe steps with their timing metadata.
func StepsTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(tomato).
		Bold(true).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Foreground(cream).Padding(0, 1)
	oddStyle := cellStyle.Foreground(dim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}
