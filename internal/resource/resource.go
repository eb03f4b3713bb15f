// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package resource sequences the power rails, reset lines and clock tree
// that a PHY depends on.
package resource

import (
	"errors"

	"github.com/platinasystems/log"
)

var ErrAcquire = errors.New("resource acquisition failed")

// Rails are the PHY's analog supplies.
type Rails interface {
	Enable() error
	Disable() error
	SetLoad(name string, microamps int) error
}

// Resets are the PHY's reset lines.
type Resets interface {
	Assert() error
	Deassert() error
}

// Clocks are the PHY's input clock tree. SetRate programs a clock derived
// by the PHY for downstream consumers.
type Clocks interface {
	Enable() error
	Disable()
	SetRate(id string, hz uint64) error
}

// Clock is a single gated clock line.
type Clock interface {
	Enable() error
	Disable()
}

// Syscon writes a single register outside the PHY's own space.
type Syscon interface {
	Write(off, v uint32) error
}

const (
	StageRails         = "rails enable"
	StageResetAssert   = "reset assert"
	StageResetDeassert = "reset deassert"
	StageClocks        = "clocks enable"
)

type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string        { return e.Stage + ": " + e.Err.Error() }
func (e *Error) Unwrap() error        { return e.Err }
func (e *Error) Is(target error) bool { return target == ErrAcquire }

// Controller acquires and releases a PHY's resources in order. It is not
// safe for concurrent use; the owning PHY serializes calls.
type Controller struct {
	Name   string
	Rails  Rails
	Resets Resets
	Clocks Clocks

	acquired bool
	clocksOn bool
}

func (c *Controller) Acquired() bool { return c.acquired }

// Acquire enables the rails, pulses the resets then enables the clocks.
// A failing stage undoes the stages before it in reverse order.
func (c *Controller) Acquire() error {
	if c.acquired {
		return nil
	}
	rails, resets, clocks := c.rails(), c.resets(), c.clocks()
	if err := rails.Enable(); err != nil {
		return &Error{StageRails, err}
	}
	if err := resets.Assert(); err != nil {
		c.unwindRails(rails)
		return &Error{StageResetAssert, err}
	}
	if err := resets.Deassert(); err != nil {
		c.unwindRails(rails)
		return &Error{StageResetDeassert, err}
	}
	if err := clocks.Enable(); err != nil {
		if err := resets.Assert(); err != nil {
			log.Print("err", c.Name, ": unwind reset assert: ", err)
		}
		c.unwindRails(rails)
		return &Error{StageClocks, err}
	}
	c.acquired, c.clocksOn = true, true
	return nil
}

func (c *Controller) unwindRails(rails Rails) {
	if err := rails.Disable(); err != nil {
		log.Print("err", c.Name, ": unwind rails disable: ", err)
	}
}

// Release asserts resets, gates clocks and disables rails. Failures are
// logged; release always completes.
func (c *Controller) Release() {
	if !c.acquired {
		return
	}
	if err := c.resets().Assert(); err != nil {
		log.Print("err", c.Name, ": reset assert: ", err)
	}
	if c.clocksOn {
		c.clocks().Disable()
	}
	if err := c.rails().Disable(); err != nil {
		log.Print("err", c.Name, ": rails disable: ", err)
	}
	c.acquired, c.clocksOn = false, false
}

// GateClocks disables the clock tree while leaving rails and resets alone.
func (c *Controller) GateClocks() {
	if c.acquired && c.clocksOn {
		c.clocks().Disable()
		c.clocksOn = false
	}
}

func (c *Controller) UngateClocks() error {
	if !c.acquired || c.clocksOn {
		return nil
	}
	if err := c.clocks().Enable(); err != nil {
		return &Error{StageClocks, err}
	}
	c.clocksOn = true
	return nil
}

func (c *Controller) SetRate(id string, hz uint64) error {
	return c.clocks().SetRate(id, hz)
}

func (c *Controller) SetLoad(name string, microamps int) error {
	return c.rails().SetLoad(name, microamps)
}

func (c *Controller) rails() Rails {
	if c.Rails == nil {
		return noRails{}
	}
	return c.Rails
}

func (c *Controller) resets() Resets {
	if c.Resets == nil {
		return noResets{}
	}
	return c.Resets
}

func (c *Controller) clocks() Clocks {
	if c.Clocks == nil {
		return noClocks{}
	}
	return c.Clocks
}

type noRails struct{}

func (noRails) Enable() error             { return nil }
func (noRails) Disable() error            { return nil }
func (noRails) SetLoad(string, int) error { return nil }

type noResets struct{}

func (noResets) Assert() error   { return nil }
func (noResets) Deassert() error { return nil }

type noClocks struct{}

func (noClocks) Enable() error                { return nil }
func (noClocks) Disable()                     {}
func (noClocks) SetRate(string, uint64) error { return nil }
