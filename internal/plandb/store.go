// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package plandb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

// Store reads and writes plan documents under a single directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the schedule as a JSON plan document and returns its path.
//
// The file name is the sanitized recipe name plus a second-granularity
// timestamp. A second save for the same recipe within the same second
// overwrites the first; this is a documented limitation.
func (s *Store) Save(sched *schedule.Schedule, recipeName string) (string, error) {
	plan := &Plan{
		Tasks:     make([]Task, 0, len(sched.Steps)),
		Resources: []string{},
		Roles:     []string{},
	}
	for _, step := range sched.Steps {
		preds := step.Dependencies
		if preds == nil {
			preds = []string{}
		}
		plan.Tasks = append(plan.Tasks, Task{
			ID:           step.ID,
			Name:         step.Description,
			Start:        step.Start.Format(TimeLayout),
			Duration:     step.DurationMinutes,
			Complete:     0,
			Predecessors: preds,
		})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("plandb: creating plan directory: %w", err)
	}

	name := SanitizeName(recipeName)
	if name == "" {
		name = "plan"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, time.Now().Format("20060102_150405")))

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("plandb: marshalling plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("plandb: writing plan file: %w", err)
	}
	return path, nil
}

// Load reads a plan document and reconstructs the schedule.
//
// The plan format does not record the anchor time explicitly; it is recovered
// as the earliest task start, which for any non-empty schedule is the start
// of a step without dependencies.
func (s *Store) Load(path string) (*schedule.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plandb: reading plan file: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("plandb: parsing plan file: %w", err)
	}

	sched := &schedule.Schedule{}
	for _, task := range plan.Tasks {
		start, err := time.Parse(TimeLayout, task.Start)
		if err != nil {
			return nil, fmt.Errorf("plandb: parsing start of task %s: %w", task.ID, err)
		}
		step := schedule.ScheduledStep{
			StepRecord: schedule.StepRecord{
				ID:              task.ID,
				Description:     task.Name,
				DurationMinutes: task.Duration,
				Dependencies:    task.Predecessors,
			},
			Start: start,
			End:   start.Add(time.Duration(task.Duration * float64(time.Minute))),
		}
		sched.Steps = append(sched.Steps, step)
		sched.TotalDurationMinutes += task.Duration
		if sched.AnchorTime.IsZero() || start.Before(sched.AnchorTime) {
			sched.AnchorTime = start
		}
	}
	return sched, nil
}

// SanitizeName replaces every non-alphanumeric rune of a recipe name with an
// underscore for use in artifact file names.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
