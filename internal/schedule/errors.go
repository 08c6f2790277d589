// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidStep indicates a malformed step record, such as a duplicate
	// explicit ID or a duration that is not a finite number.
	ErrInvalidStep = errors.New("invalid step record")

	// ErrCyclicDependency indicates the dependency relation contains a cycle.
	// Scheduling cannot proceed for the recipe.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// GraphError wraps a step graph validation failure.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &GraphError{Kind: ErrInvalidStep, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &GraphError{Kind: ErrCyclicDependency, Msg: msg}
}
