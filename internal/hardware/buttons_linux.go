// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

//go:build linux

package hardware

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

type rpioButtons struct {
	pins []int

	mu        sync.Mutex
	callbacks map[int]func()
	pressed   map[int]bool
	opened    bool
}

func newButtons(pins []int) Buttons {
	b := &rpioButtons{
		pins:      pins,
		callbacks: map[int]func(){},
		pressed:   map[int]bool{},
	}
	if !isRaspberryPi() {
		return b
	}
	if err := rpio.Open(); err != nil {
		slog.Warn("Could not open GPIO, buttons disabled", "error", err)
		return b
	}
	b.opened = true
	for _, pin := range pins {
		p := rpio.Pin(pin)
		p.Input()
		p.PullUp()
	}
	return b
}

// isRaspberryPi sniffs /proc/cpuinfo for a Pi SoC.
func isRaspberryPi() bool {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return false
	}
	info := string(data)
	return strings.Contains(info, "Raspberry Pi") ||
		strings.Contains(info, "BCM") ||
		strings.Contains(info, "Broadcom")
}

func (b *rpioButtons) Available() bool {
	return b.opened
}

func (b *rpioButtons) OnPress(pin int, fn func()) bool {
	watched := false
	for _, p := range b.pins {
		if p == pin {
			watched = true
			break
		}
	}
	if !watched {
		return false
	}
	b.mu.Lock()
	b.callbacks[pin] = fn
	b.mu.Unlock()
	return true
}

func (b *rpioButtons) Start(ctx context.Context) error {
	if !b.opened {
		return nil
	}
	ticker := time.NewTicker(pollInterval * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.poll()
		}
	}
}

// poll fires callbacks on the high-to-low edge. Pull-ups mean a pressed
// button reads low.
func (b *rpioButtons) poll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, pin := range b.pins {
		down := rpio.Pin(pin).Read() == rpio.Low
		if down && !b.pressed[pin] {
			b.pressed[pin] = true
			if fn := b.callbacks[pin]; fn != nil {
				go fn()
			}
		} else if !down && b.pressed[pin] {
			b.pressed[pin] = false
		}
	}
}

func (b *rpioButtons) Close() error {
	if !b.opened {
		return nil
	}
	b.opened = false
	return rpio.Close()
}
