// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestRegistry_RingsAtDeadline(t *testing.T) {
	clk := clock.NewMock()
	var mu sync.Mutex
	var rang []Timer
	r := NewRegistry(clk, func(tm Timer) {
		mu.Lock()
		rang = append(rang, tm)
		mu.Unlock()
	})
	defer r.Close()

	tm, err := r.Start(context.Background(), "pasta", 10*time.Minute)
	if err != nil {
		t.Fatalf("starting timer: %v", err)
	}

	clk.Add(9 * time.Minute)
	mu.Lock()
	if len(rang) != 0 {
		t.Fatalf("timer rang early: %v", rang)
	}
	mu.Unlock()

	clk.Add(time.Minute)
	mu.Lock()
	defer mu.Unlock()
	if len(rang) != 1 || rang[0].ID != tm.ID {
		t.Fatalf("expected timer %s to ring once, got %v", tm.ID, rang)
	}
}

func TestRegistry_StopPreventsRing(t *testing.T) {
	clk := clock.NewMock()
	rang := false
	r := NewRegistry(clk, func(Timer) { rang = true })
	defer r.Close()

	tm, err := r.Start(context.Background(), "oven", 5*time.Minute)
	if err != nil {
		t.Fatalf("starting timer: %v", err)
	}
	if !r.Stop(tm.ID) {
		t.Fatal("expected Stop to find the timer")
	}
	if r.Stop(tm.ID) {
		t.Fatal("expected second Stop to report missing")
	}

	clk.Add(10 * time.Minute)
	if rang {
		t.Fatal("stopped timer rang")
	}
}

func TestRegistry_ActiveOrderedByDeadline(t *testing.T) {
	clk := clock.NewMock()
	r := NewRegistry(clk, nil)
	defer r.Close()

	if _, err := r.Start(context.Background(), "slow", 30*time.Minute); err != nil {
		t.Fatalf("starting timer: %v", err)
	}
	if _, err := r.Start(context.Background(), "fast", 2*time.Minute); err != nil {
		t.Fatalf("starting timer: %v", err)
	}

	active := r.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active timers, got %d", len(active))
	}
	if active[0].Label != "fast" || active[1].Label != "slow" {
		t.Fatalf("unexpected order %v", active)
	}

	clk.Add(time.Minute)
	left, ok := r.Remaining(active[0].ID)
	if !ok || left != time.Minute {
		t.Fatalf("expected 1m remaining, got %v %v", left, ok)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10 min", 10 * time.Minute},
		{"30 sec", 30 * time.Second},
		{"1 hour", time.Hour},
		{"15", 15 * time.Minute},
		{"1.5 min", 90 * time.Second},
	}
	for _, tc := range tests {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"", "abc", "-5 min", "10 lightyears"} {
		if _, err := ParseDuration(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{65 * time.Minute, "1h05m"},
		{9*time.Minute + 30*time.Second, "9m30s"},
		{10 * time.Minute, "10m"},
		{45 * time.Second, "45s"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
