// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package recipe holds the recipe model exchanged with the language model
// and consumed by the scheduling core.
package recipe

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

// DefaultStepMinutes is the duration assigned to steps that carry no timing
// metadata, for backward compatibility with plain-string steps.
const DefaultStepMinutes = 5

// Ingredient is one ingredient of a recipe.
type Ingredient struct {
	// Quantity is the amount as free-form text.
	Quantity string `json:"quantity"`

	// Unit is the measurement unit, if any.
	Unit string `json:"unit"`

	// Name is the name of the ingredient.
	Name string `json:"name"`

	// Preparation is any preparation note, e.g. "finely chopped".
	Preparation string `json:"preparation"`
}

// Step is one step of a recipe.
//
// The recipe source may deliver a step either as a structured object or as a
// bare instruction string; bare strings are normalized on unmarshalling to a
// record with no dependencies, so the scheduling core only ever sees the
// uniform shape. Missing durations stay zero until Recipe.Normalize applies
// the configured default.
type Step struct {
	// ID uniquely identifies the step within the recipe, when supplied.
	ID string `json:"id"`

	// Description is the instruction text.
	Description string `json:"description"`

	// DurationMinutes is the estimated duration in minutes.
	DurationMinutes float64 `json:"durationMinutes"`

	// Dependencies are IDs of steps that must finish before this one.
	Dependencies []string `json:"dependencies"`
}

// UnmarshalJSON accepts both the structured object form and a bare string.
func (s *Step) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("recipe: parsing step string: %w", err)
		}
		*s = Step{Description: text}
		return nil
	}

	type stepAlias Step
	var alias stepAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("recipe: parsing step object: %w", err)
	}
	*s = Step(alias)
	return nil
}

// Recipe is a full recipe returned by the language model.
type Recipe struct {
	// Title is the title of the recipe.
	Title string `json:"title"`

	// ServingSize is the serving size as free-form text.
	ServingSize string `json:"servingSize"`

	// Ingredients are the ingredients of the recipe.
	Ingredients []Ingredient `json:"ingredients"`

	// Steps are the steps to prepare the recipe.
	Steps []Step `json:"steps"`
}

// Normalize assigns defaultMinutes to every step without a duration, for
// backward compatibility with plain-string steps that carry no timing
// metadata. A non-positive defaultMinutes falls back to DefaultStepMinutes.
// It must run before the steps reach the scheduling core.
func (r *Recipe) Normalize(defaultMinutes float64) {
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultStepMinutes
	}
	for i := range r.Steps {
		if r.Steps[i].DurationMinutes == 0 {
			r.Steps[i].DurationMinutes = defaultMinutes
		}
	}
}

// StepRecords adapts the recipe steps to the scheduling core's input type.
func (r *Recipe) StepRecords() []schedule.StepRecord {
	records := make([]schedule.StepRecord, 0, len(r.Steps))
	for _, s := range r.Steps {
		records = append(records, schedule.StepRecord{
			ID:              s.ID,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			Dependencies:    s.Dependencies,
		})
	}
	return records
}

// Schema describes the Recipe JSON shape for structured model output.
var Schema = &genai.Schema{
	Type:        "object",
	Description: "A recipe with scheduling metadata for each step.",
	Properties: map[string]*genai.Schema{
		"title": {
			Type:        "string",
			Description: "The title of the recipe.",
		},
		"servingSize": {
			Type:        "string",
			Description: "The serving size of the recipe as free-form text.",
		},
		"ingredients": {
			Type:        "array",
			Description: "The ingredients of the recipe.",
			Items: &genai.Schema{
				Type: "object",
				Properties: map[string]*genai.Schema{
					"quantity": {
						Type:        "string",
						Description: "The amount of the ingredient as free-form text.",
					},
					"unit": {
						Type:        "string",
						Description: "The measurement unit, if any.",
					},
					"name": {
						Type:        "string",
						Description: "The name of the ingredient.",
					},
					"preparation": {
						Type:        "string",
						Description: "Any preparation note, e.g. finely chopped.",
					},
				},
				Required: []string{"name"},
			},
		},
		"steps": {
			Type:        "array",
			Description: "The steps to prepare the recipe.",
			Items: &genai.Schema{
				Type: "object",
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        "string",
						Description: "A short unique identifier for the step, e.g. task1.",
					},
					"description": {
						Type:        "string",
						Description: "The instruction text of the step.",
					},
					"durationMinutes": {
						Type:        "number",
						Description: "The estimated duration of the step in minutes.",
					},
					"dependencies": {
						Type:        "array",
						Description: "IDs of steps that must finish before this step starts.",
						Items: &genai.Schema{
							Type: "string",
						},
					},
				},
				Required: []string{"id", "description", "durationMinutes"},
			},
		},
	},
	Required: []string{"title", "steps"},
}
