// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipe

import (
	"encoding/json"
	"testing"
)

func TestStep_UnmarshalBareString(t *testing.T) {
	var r Recipe
	doc := `{"title": "Soup", "steps": ["Chop the onions", "Boil water"]}`
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	if len(r.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(r.Steps))
	}
	s := r.Steps[0]
	if s.Description != "Chop the onions" {
		t.Fatalf("unexpected description %q", s.Description)
	}
	if len(s.Dependencies) != 0 || s.ID != "" {
		t.Fatalf("expected bare step without id or dependencies, got %+v", s)
	}

	r.Normalize(0)
	if r.Steps[0].DurationMinutes != DefaultStepMinutes {
		t.Fatalf("expected default duration %d, got %v", DefaultStepMinutes, r.Steps[0].DurationMinutes)
	}
}

func TestStep_UnmarshalObject(t *testing.T) {
	var s Step
	doc := `{"id": "fry", "description": "Fry the onions", "durationMinutes": 8, "dependencies": ["chop"]}`
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	if s.ID != "fry" || s.DurationMinutes != 8 {
		t.Fatalf("unexpected step %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "chop" {
		t.Fatalf("unexpected dependencies %v", s.Dependencies)
	}
}

func TestRecipe_NormalizeMissingDurations(t *testing.T) {
	r := Recipe{
		Steps: []Step{
			{Description: "Rest the dough"},
			{Description: "Bake", DurationMinutes: 25},
		},
	}
	r.Normalize(8)
	if r.Steps[0].DurationMinutes != 8 {
		t.Fatalf("expected configured default 8, got %v", r.Steps[0].DurationMinutes)
	}
	if r.Steps[1].DurationMinutes != 25 {
		t.Fatalf("expected explicit duration preserved, got %v", r.Steps[1].DurationMinutes)
	}
}

func TestRecipe_NormalizeFallsBackToPackageDefault(t *testing.T) {
	r := Recipe{Steps: []Step{{Description: "Rest the dough"}}}
	r.Normalize(-1)
	if r.Steps[0].DurationMinutes != DefaultStepMinutes {
		t.Fatalf("expected fallback default, got %v", r.Steps[0].DurationMinutes)
	}
}

func TestRecipe_StepRecords(t *testing.T) {
	r := Recipe{
		Title: "Ratatouille",
		Steps: []Step{
			{ID: "a", Description: "chop", DurationMinutes: 5},
			{ID: "b", Description: "cook", DurationMinutes: 30, Dependencies: []string{"a"}},
		},
	}
	records := r.StepRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Dependencies[0] != "a" || records[1].DurationMinutes != 30 {
		t.Fatalf("unexpected record %+v", records[1])
	}
}
