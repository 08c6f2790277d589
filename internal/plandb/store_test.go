// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package plandb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

func buildSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	g, err := schedule.NewGraph([]schedule.StepRecord{
		{ID: "prep", Description: "chop vegetables", DurationMinutes: 5},
		{ID: "cook", Description: "simmer the sauce", DurationMinutes: 20, Dependencies: []string{"prep"}},
	})
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	anchor := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	return schedule.Compute(g, anchor)
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	sched := buildSchedule(t)

	path, err := store.Save(sched, "Ratatouille Express")
	if err != nil {
		t.Fatalf("saving plan: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("loading plan: %v", err)
	}

	if len(loaded.Steps) != len(sched.Steps) {
		t.Fatalf("expected %d steps, got %d", len(sched.Steps), len(loaded.Steps))
	}
	for i, want := range sched.Steps {
		got := loaded.Steps[i]
		if !got.Start.Equal(want.Start.UTC()) {
			t.Fatalf("step %s: expected start %v, got %v", want.ID, want.Start, got.Start)
		}
		if got.DurationMinutes != want.DurationMinutes {
			t.Fatalf("step %s: expected duration %v, got %v", want.ID, want.DurationMinutes, got.DurationMinutes)
		}
		if strings.Join(got.Dependencies, ",") != strings.Join(want.Dependencies, ",") {
			t.Fatalf("step %s: expected dependencies %v, got %v", want.ID, want.Dependencies, got.Dependencies)
		}
	}
	if !loaded.AnchorTime.Equal(sched.AnchorTime.UTC()) {
		t.Fatalf("expected anchor %v, got %v", sched.AnchorTime, loaded.AnchorTime)
	}
}

func TestStore_FreshSaveHasZeroCompletion(t *testing.T) {
	store := NewStore(t.TempDir())
	path, err := store.Save(buildSchedule(t), "ratatouille")
	if err != nil {
		t.Fatalf("saving plan: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading plan file: %v", err)
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		t.Fatalf("parsing plan file: %v", err)
	}
	for _, task := range plan.Tasks {
		if task.Complete != 0 {
			t.Fatalf("task %s: expected completion 0, got %v", task.ID, task.Complete)
		}
	}
	if plan.Resources == nil || plan.Roles == nil {
		t.Fatal("expected reserved arrays to serialize as empty, not null")
	}
}

func TestStore_FileNameSanitized(t *testing.T) {
	store := NewStore(t.TempDir())
	path, err := store.Save(buildSchedule(t), "Sauce tomate (maison)!")
	if err != nil {
		t.Fatalf("saving plan: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "Sauce_tomate__maison__") {
		t.Fatalf("expected sanitized file name, got %q", base)
	}
	if !strings.HasSuffix(base, ".json") {
		t.Fatalf("expected .json suffix, got %q", base)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("bœuf au jus 2.0"); got != "bœuf_au_jus_2_0" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
}
