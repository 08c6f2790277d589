// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

//go:build !linux

package hardware

import "context"

type stubButtons struct{}

func newButtons([]int) Buttons {
	return stubButtons{}
}

func (stubButtons) Available() bool { return false }

func (stubButtons) OnPress(int, func()) bool { return false }

func (stubButtons) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stubButtons) Close() error { return nil }
