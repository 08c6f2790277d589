// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package plandb persists computed schedules as flat JSON documents so they
// can be reloaded and re-rendered later.
package plandb

// TimeLayout is the timestamp format used for task start instants in
// persisted plan files.
const TimeLayout = "2006-01-02 15:04"

// Task is one scheduled step in the persisted plan document.
type Task struct {
	// ID is the step's identifier within the recipe.
	ID string `json:"id"`

	// Name is the step description.
	Name string `json:"name"`

	// Start is the absolute start instant formatted with TimeLayout.
	Start string `json:"start"`

	// Duration is the step duration in minutes.
	Duration float64 `json:"duration"`

	// Complete is the completion fraction. Always 0 at save time; the
	// format anticipates progress tracking not yet used elsewhere.
	Complete float64 `json:"complete"`

	// Predecessors are the IDs of the steps this one depends on.
	Predecessors []string `json:"predecessors"`
}

// Plan is the root of the persisted schedule document.
//
// Resources and Roles are reserved for forward compatibility and are always
// empty in the current scope.
type Plan struct {
	Tasks     []Task   `json:"tasks"`
	Resources []string `json:"resources"`
	Roles     []string `json:"roles"`
}
