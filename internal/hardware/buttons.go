// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package hardware exposes the Raspberry Pi push buttons mounted on the
// assistant's enclosure. On other machines every operation is a no-op so the
// assistant runs unchanged on a laptop.
package hardware

import "context"

// Default BCM pin assignments for the enclosure buttons. PinAux is polled
// but reserved; no action is bound to it yet.
const (
	PinNext  = 6
	PinTimer = 19
	PinAux   = 0
)

const pollInterval = 100 // milliseconds

// Buttons watches GPIO push buttons and fires a callback on each press.
type Buttons interface {
	// Available reports whether real GPIO hardware is present.
	Available() bool

	// OnPress registers a callback for a pin. It reports whether the pin is
	// one of the watched buttons.
	OnPress(pin int, fn func()) bool

	// Start begins polling until the context is cancelled.
	Start(ctx context.Context) error

	// Close releases the GPIO resources.
	Close() error
}

// New returns the platform implementation for the given pins. Passing no pins
// selects the default enclosure layout.
func New(pins ...int) Buttons {
	if len(pins) == 0 {
		pins = []int{PinNext, PinTimer, PinAux}
	}
	return newButtons(pins)
}
