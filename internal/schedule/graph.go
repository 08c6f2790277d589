// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package schedule

import (
	"fmt"
	"math"
)

// StepRecord is one recipe step as supplied by the recipe source.
type StepRecord struct {
	// ID uniquely identifies the step within the recipe. Steps without an
	// explicit ID are assigned a synthetic one during graph construction.
	ID string `json:"id"`

	// Description is the instruction text for the step.
	Description string `json:"description"`

	// DurationMinutes is the estimated duration of the step in minutes.
	DurationMinutes float64 `json:"durationMinutes"`

	// Dependencies are the IDs of steps that must finish before this one
	// starts.
	Dependencies []string `json:"dependencies"`
}

// Graph is an immutable, validated dependency graph over recipe steps.
//
// Steps keep their input order. Dependency IDs that do not resolve to a known
// step are dropped during construction since the recipe source is not fully
// trusted. It is safe for concurrent read access.
type Graph struct {
	steps []StepRecord
	index map[string]int
	deps  [][]int // resolved dependency indices per step
}

// NewGraph validates and normalizes a sequence of step records.
//
// Normalization assigns the synthetic ID "task<position+1>" to steps missing
// one and drops dependency references to unknown steps. Construction fails
// with ErrInvalidStep on duplicate explicit IDs or non-finite durations, and
// with ErrCyclicDependency if the dependency relation contains a cycle.
func NewGraph(records []StepRecord) (*Graph, error) {
	steps := make([]StepRecord, len(records))
	index := make(map[string]int, len(records))

	for i, rec := range records {
		if math.IsNaN(rec.DurationMinutes) || math.IsInf(rec.DurationMinutes, 0) {
			return nil, invalidf("step %d: duration is not a finite number", i+1)
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("task%d", i+1)
		}
		if _, exists := index[rec.ID]; exists {
			return nil, invalidf("duplicate step id: %q", rec.ID)
		}
		index[rec.ID] = i
		steps[i] = rec
	}

	deps := make([][]int, len(steps))
	for i, step := range steps {
		resolved := step.Dependencies[:0:0]
		for _, dep := range step.Dependencies {
			j, ok := index[dep]
			if !ok {
				continue
			}
			resolved = append(resolved, dep)
			deps[i] = append(deps[i], j)
		}
		steps[i].Dependencies = resolved
	}

	g := &Graph{steps: steps, index: index, deps: deps}
	if err := g.validateAcyclic(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of steps in the graph.
func (g *Graph) Len() int { return len(g.steps) }

// Steps returns the normalized step records in input order.
func (g *Graph) Steps() []StepRecord {
	out := make([]StepRecord, len(g.steps))
	copy(out, g.steps)
	return out
}

const (
	colorWhite = iota // unvisited
	colorGray         // on the current DFS stack
	colorBlack        // fully explored
)

// validateAcyclic runs an iterative depth-first search over the
// dependency -> step edges with a visiting marker. On a cycle it reports the
// step IDs along the closed walk.
func (g *Graph) validateAcyclic() error {
	color := make([]int, len(g.steps))

	type frame struct {
		node int
		next int
	}

	for start := range g.steps {
		if color[start] != colorWhite {
			continue
		}
		stack := []frame{{node: start}}
		color[start] = colorGray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.deps[top.node]) {
				child := g.deps[top.node][top.next]
				top.next++
				switch color[child] {
				case colorWhite:
					color[child] = colorGray
					stack = append(stack, frame{node: child})
				case colorGray:
					// child is on the stack: the walk from child back to
					// the top frame closes the cycle.
					var path []string
					inCycle := false
					for _, f := range stack {
						if f.node == child {
							inCycle = true
						}
						if inCycle {
							path = append(path, g.steps[f.node].ID)
						}
					}
					path = append(path, g.steps[child].ID)
					return cycleError(path)
				}
				continue
			}
			color[top.node] = colorBlack
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}
