// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package schedule converts flat recipe step lists into a consistent temporal
// plan: it validates the dependency graph and assigns every step a start time
// no earlier than the latest finish among its dependencies.
package schedule

import (
	"time"
)

// ScheduledStep is a step with its computed start and end instants. It is
// immutable once computed.
type ScheduledStep struct {
	StepRecord

	// Start is the instant the step begins.
	Start time.Time

	// End is Start plus the step duration.
	End time.Time
}

// Schedule is the computed plan for one recipe instance.
type Schedule struct {
	// AnchorTime is the reference instant from which all start times are
	// computed.
	AnchorTime time.Time

	// Steps are the scheduled steps in input order, not execution order.
	Steps []ScheduledStep

	// TotalDurationMinutes is the sum of the individual step durations.
	// This is a display statistic, not the critical-path makespan.
	TotalDurationMinutes float64
}

// Compute assigns start and end times to every step of the graph.
//
// Steps are processed in a topological order consistent with the dependency
// graph, ties broken by input order. Each step starts at the latest finish
// among its dependencies, or at the anchor time if it has none. An empty
// graph yields an empty schedule.
func Compute(g *Graph, anchor time.Time) *Schedule {
	n := g.Len()
	sched := &Schedule{
		AnchorTime: anchor,
		Steps:      make([]ScheduledStep, n),
	}

	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, deps := range g.deps {
		indegree[i] = len(deps)
		for _, d := range deps {
			dependents[d] = append(dependents[d], i)
		}
	}

	computed := make([]bool, n)
	for remaining := n; remaining > 0; {
		// Pick the lowest-index ready step so ties resolve by input order.
		next := -1
		for i := 0; i < n; i++ {
			if !computed[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			// Unreachable: the graph is validated acyclic on construction.
			break
		}

		step := g.steps[next]
		start := anchor
		for _, d := range g.deps[next] {
			if end := sched.Steps[d].End; end.After(start) {
				start = end
			}
		}
		sched.Steps[next] = ScheduledStep{
			StepRecord: step,
			Start:      start,
			End:        start.Add(minutes(step.DurationMinutes)),
		}
		sched.TotalDurationMinutes += step.DurationMinutes

		computed[next] = true
		for _, dep := range dependents[next] {
			indegree[dep]--
		}
		remaining--
	}

	return sched
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
