// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package phy controls a Qualcomm QMP USB3/DisplayPort combo transceiver.
//
// A transceiver is brought up by acquiring its rails, resets and clocks,
// programming the analog sub-blocks from per-chip tables and polling
// status until the front end locks. Each transceiver serializes every
// lifecycle call with a single mutex. Calls block for up to InitTimeout
// per poll site; there are no internal goroutines.
package phy

import (
	"fmt"
	"sync"
	"time"

	"github.com/platinasystems/log"
	"github.com/platinasystems/qmpphy/internal/metrics"
	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/resource"
)

const (
	PollInterval = 200 * time.Microsecond
	InitTimeout  = 10 * time.Millisecond
)

// Transceiver is the lifecycle contract offered to the generic phy layer.
// Operations a variant does not implement return ErrNotSupported.
type Transceiver interface {
	Name() string
	Enable() error
	Disable() error
	SetMode(mode Mode, submode int) error
	Configure(opts LinkOptions) error
	Calibrate() error
	PowerOn() error
	PowerOff() error
	SetOrientation(o Orientation) error
	Suspend() error
	Resume() error
	State() State
	InitCount() int
}

// Resources are the collaborators owned by one transceiver.
type Resources struct {
	Rails  resource.Rails
	Resets resource.Resets
	Clocks resource.Clocks
	// high speed pipe clock, USB only
	Pipe resource.Clock
	// Syscon, ClampReg and ModeReg are optional; a nil Syscon or zero
	// offset skips the write.
	Syscon   resource.Syscon
	ClampReg uint32
	ModeReg  uint32
}

type Option func(*common)

func WithMetrics(m *metrics.Set) Option {
	return func(c *common) { c.metrics = m }
}

func WithOrientation(o Orientation) Option {
	return func(c *common) { c.orientation = o }
}

// New returns the transceiver variant selected by cfg. The register space
// holds the PHY's blocks at base.
func New(cfg Config, space reg.Space, base uint32, res Resources,
	opts ...Option) (Transceiver, error) {
	switch c := cfg.(type) {
	case *UsbConfig:
		u, err := NewUSB(c, space, base, res, opts...)
		if err != nil {
			return nil, err
		}
		return u, nil
	case *DpConfig:
		d, err := NewDP(c, space, base, res, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("%T: unknown config", cfg)
}

// lifecycle is implemented by each variant for orientation rebuilds.
type lifecycle interface {
	teardown()
	bringup() error
}

type common struct {
	mu sync.Mutex

	name        string
	res         resource.Controller
	syscon      resource.Syscon
	clampReg    uint32
	modeReg     uint32
	orientation Orientation
	initCount   int
	state       State
	metrics     *metrics.Set
	lc          lifecycle
}

func (c *common) init(name string, res Resources, lc lifecycle, opts []Option) {
	c.name = name
	c.res = resource.Controller{
		Name:   name,
		Rails:  res.Rails,
		Resets: res.Resets,
		Clocks: res.Clocks,
	}
	c.syscon = res.Syscon
	c.clampReg = res.ClampReg
	c.modeReg = res.ModeReg
	c.lc = lc
	for _, opt := range opts {
		opt(c)
	}
}

func (c *common) Name() string { return c.name }

func (c *common) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *common) InitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initCount
}

func (c *common) Orientation() Orientation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

// SetOrientation records the cable orientation. An enabled transceiver is
// torn down and rebuilt so the lanes follow the plug; the link drops for
// the duration.
func (c *common) SetOrientation(o Orientation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o == c.orientation || o == OrientationNone {
		return nil
	}
	c.orientation = o
	if c.initCount == 0 {
		return nil
	}
	c.metrics.Flipped(c.name)
	c.lc.teardown()
	if err := c.lc.bringup(); err != nil {
		log.Print("err", c.name, ": orientation ", o, ": ", err)
		return err
	}
	return nil
}

func (c *common) acquire() error {
	if err := c.res.Acquire(); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	c.state = StateResourcesAcquired
	return nil
}

func (c *common) release() {
	c.res.Release()
	c.state = StateIdle
}

// put decrements the reference count ahead of teardown.
func (c *common) put() {
	if c.initCount == 0 {
		log.Print("err", c.name, ": disable without enable")
	} else {
		c.initCount--
	}
	c.metrics.SetInitCount(c.name, c.initCount)
}

func (c *common) get() {
	c.initCount++
	c.metrics.SetInitCount(c.name, c.initCount)
}

func (c *common) writeSyscon(off, v uint32) {
	if c.syscon == nil || off == 0 {
		return
	}
	if err := c.syscon.Write(off, v); err != nil {
		log.Print("err", c.name, ": syscon ", fmt.Sprintf("%#x", off), ": ", err)
	}
}

func (c *common) wait(b reg.Block, off, mask, want uint32, site string) error {
	if err := b.Poll(off, mask, want, PollInterval, InitTimeout); err != nil {
		c.metrics.TimedOut(c.name, site)
		return &TimeoutError{Phy: c.name, Site: site}
	}
	return nil
}

func (c *common) enabled(err error) {
	c.metrics.Enabled(c.name, result(err))
}
