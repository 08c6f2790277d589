// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

func TestGanttProjectExporter_Disabled(t *testing.T) {
	e := &GanttProjectExporter{Enabled: false}
	_, err := e.Export(&schedule.Schedule{}, "ratatouille")
	if !errors.Is(err, ErrRenderUnavailable) {
		t.Fatalf("expected ErrRenderUnavailable, got %v", err)
	}
}

func TestGanttProjectExporter_Export(t *testing.T) {
	sched := computed(t, []schedule.StepRecord{
		{ID: "prep", Description: "chop vegetables", DurationMinutes: 10},
		{ID: "cook", Description: "simmer", DurationMinutes: 480, Dependencies: []string{"prep"}},
	})
	e := &GanttProjectExporter{
		Enabled: true,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	data, err := e.Export(sched, "ratatouille")
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	doc := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`company="Robotatouille"`,
		`view-date="2025-06-01"`,
		`name="chop vegetables"`,
		// 480 minutes is exactly one eight-hour working day.
		`duration="1"`,
		`<depend id="1" type="2" difference="0" hardness="Strong">`,
		`<resources>`,
		`<allocations>`,
		`<vacations>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q, got:\n%s", want, doc)
		}
	}
}
