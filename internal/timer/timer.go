// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package timer manages named kitchen timers that ring independently of the
// conversation flow.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Timer is one running countdown.
type Timer struct {
	// ID uniquely identifies the timer.
	ID string

	// Label is the user-facing name, e.g. "pasta".
	Label string

	// Duration is the full countdown length.
	Duration time.Duration

	// Deadline is when the timer rings.
	Deadline time.Time
}

// Registry tracks active timers and invokes a callback when one expires.
// The zero value is not usable, create one with NewRegistry.
type Registry struct {
	clock  clock.Clock
	onRing func(Timer)

	mu     sync.Mutex
	active map[string]*entry
	closed bool
}

type entry struct {
	timer Timer
	stop  *clock.Timer
}

// NewRegistry returns a Registry. onRing is called from the timer goroutine
// whenever a countdown reaches zero.
func NewRegistry(clk clock.Clock, onRing func(Timer)) *Registry {
	if clk == nil {
		clk = clock.New()
	}
	return &Registry{
		clock:  clk,
		onRing: onRing,
		active: map[string]*entry{},
	}
}

// Start begins a countdown and returns the created timer.
func (r *Registry) Start(ctx context.Context, label string, d time.Duration) (Timer, error) {
	if d <= 0 {
		return Timer{}, fmt.Errorf("timer: duration must be positive, got %v", d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Timer{}, fmt.Errorf("timer: registry is closed")
	}

	t := Timer{
		ID:       uuid.NewString(),
		Label:    label,
		Duration: d,
		Deadline: r.clock.Now().Add(d),
	}
	e := &entry{timer: t}
	e.stop = r.clock.AfterFunc(d, func() {
		r.ring(t.ID)
	})
	r.active[t.ID] = e

	slog.InfoContext(ctx, "Started timer", "label", label, "duration", d)
	return t, nil
}

func (r *Registry) ring(id string) {
	r.mu.Lock()
	e, ok := r.active[id]
	if ok {
		delete(r.active, id)
	}
	r.mu.Unlock()

	if ok && r.onRing != nil {
		r.onRing(e.timer)
	}
}

// Stop cancels a timer by ID. It reports whether a timer was found.
func (r *Registry) Stop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.active[id]
	if !ok {
		return false
	}
	e.stop.Stop()
	delete(r.active, id)
	return true
}

// Active returns the running timers ordered by deadline.
func (r *Registry) Active() []Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	timers := make([]Timer, 0, len(r.active))
	for _, e := range r.active {
		timers = append(timers, e.timer)
	}
	sort.Slice(timers, func(i, j int) bool {
		return timers[i].Deadline.Before(timers[j].Deadline)
	})
	return timers
}

// Remaining returns the time left on a timer, or false if it is not running.
func (r *Registry) Remaining(id string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.active[id]
	if !ok {
		return 0, false
	}
	d := e.timer.Deadline.Sub(r.clock.Now())
	if d < 0 {
		d = 0
	}
	return d, true
}

// Close stops all timers. The registry cannot be reused afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.active {
		e.stop.Stop()
		delete(r.active, id)
	}
	r.closed = true
}

// ParseDuration understands the spoken forms users type, e.g. "10 min",
// "30 sec", "1 hour", or a bare number of minutes.
func ParseDuration(s string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return 0, fmt.Errorf("timer: empty duration")
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("timer: parsing duration %q: %w", s, err)
	}

	unit := "min"
	if len(fields) > 1 {
		unit = fields[1]
	}

	var base time.Duration
	switch {
	case strings.HasPrefix(unit, "s"):
		base = time.Second
	case strings.HasPrefix(unit, "m"):
		base = time.Minute
	case strings.HasPrefix(unit, "h"):
		base = time.Hour
	default:
		return 0, fmt.Errorf("timer: unknown unit %q in %q", unit, s)
	}

	d := time.Duration(value * float64(base))
	if d <= 0 {
		return 0, fmt.Errorf("timer: duration must be positive, got %q", s)
	}
	return d, nil
}

// FormatDuration renders a countdown compactly, e.g. "1h05m" or "9m30s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
