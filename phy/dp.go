// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import (
	"fmt"

	"github.com/platinasystems/log"
	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/resource"
)

const (
	StageLinkClock  = "link clock rate"
	StagePixelClock = "pixel clock rate"
	StageRailLoad   = "rail load"
)

type dpLayout struct {
	phy, tx, tx2, serdes reg.Block
	auxCfg               int
	opts                 LinkOptions
	powered              bool
	repower              bool // powered before an orientation teardown
}

// DP is the DisplayPort transmitter.
type DP struct {
	common
	cfg    *DpConfig
	ops    DpOps
	layout dpLayout
}

// NewDP applies the configured rail loads; the rails themselves stay off
// until Enable.
func NewDP(cfg *DpConfig, space reg.Space, base uint32, res Resources,
	opts ...Option) (*DP, error) {
	if space == nil {
		return nil, fmt.Errorf("%s: no register space", cfg.Name)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	d := &DP{cfg: cfg, ops: cfg.Ops.orDefault(DpOpsV3)}
	d.init(cfg.Name, res, d, opts)
	b := reg.Block{Space: space, Base: base}
	o := &cfg.Offsets
	d.layout = dpLayout{
		phy:    b.At(o.Phy),
		tx:     b.At(o.TxA),
		tx2:    b.At(o.TxB),
		serdes: b.At(o.Serdes),
	}
	for _, r := range cfg.Rails {
		if r.Microamps == 0 {
			continue
		}
		if err := d.res.SetLoad(r.Name, r.Microamps); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Name,
				&resource.Error{Stage: StageRailLoad, Err: err})
		}
	}
	return d, nil
}

// Enable acquires resources and initializes the aux channel. Once enabled,
// further calls return nil without touching the hardware.
func (d *DP) Enable() (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initCount > 0 {
		return nil
	}
	defer func() { d.enabled(err) }()
	if err = d.acquire(); err != nil {
		return
	}
	d.ops.AuxInit(d)
	d.get()
	return
}

func (d *DP) Disable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.put()
	d.state = StateDisabling
	d.release()
	return nil
}

// PowerOn programs the PLL and lanes for the configured link and waits
// for the PHY to report ready. A timeout leaves the resources acquired
// for Disable.
func (d *DP) PowerOn() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initCount == 0 {
		return fmt.Errorf("%s: %w", d.name, ErrNotEnabled)
	}
	return d.powerOn()
}

func (d *DP) PowerOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.res.Acquired() {
		d.powerOff()
	}
	return nil
}

// Configure records the link options. With SetVoltages the drive levels
// are applied at once if the transmitter is enabled.
func (d *DP) Configure(opts LinkOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := opts.validate(); err != nil {
		return err
	}
	if _, _, err := d.cfg.SwingLevels(opts.levels()); err != nil {
		return err
	}
	d.layout.opts = opts
	if !opts.SetVoltages {
		return nil
	}
	d.layout.opts.SetVoltages = false
	if d.initCount == 0 {
		return nil
	}
	return d.ops.ConfigureTx(d)
}

// Calibrate steps the aux channel tuning to its next setting.
func (d *DP) Calibrate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initCount == 0 {
		return fmt.Errorf("%s: %w", d.name, ErrNotEnabled)
	}
	if err := d.ops.Calibrate(d); err != nil {
		return err
	}
	d.metrics.Calibrated(d.name)
	return nil
}

func (*DP) SetMode(Mode, int) error { return ErrNotSupported }

func (d *DP) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initCount > 0 {
		d.res.GateClocks()
	}
	return nil
}

func (d *DP) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initCount == 0 {
		return nil
	}
	return d.res.UngateClocks()
}

// Options returns the cached link options.
func (d *DP) Options() LinkOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.layout.opts
}

func (d *DP) acquire() error {
	if err := d.common.acquire(); err != nil {
		return err
	}
	d.writeSyscon(d.modeReg, 1)
	return nil
}

func (d *DP) release() {
	d.writeSyscon(d.modeReg, 0)
	d.common.release()
	d.layout.powered = false
}

func (d *DP) powerOn() error {
	class, err := Classify(d.layout.opts.LinkRate)
	if err != nil {
		return err
	}
	// reserved swing/pre-emphasis pairs fail before any table is written
	if _, _, err = d.cfg.SwingLevels(d.layout.opts.levels()); err != nil {
		return err
	}
	cfg, l := d.cfg, &d.layout
	l.serdes.Apply(cfg.SerdesTable)
	l.serdes.Apply(cfg.RateTables[class])
	l.tx.ApplyLane(cfg.TxTable, 1)
	l.tx2.ApplyLane(cfg.TxTable, 2)
	d.state = StateBlocksProgrammed

	if err = d.ops.ConfigureTx(d); err != nil {
		return err
	}
	d.state = StatePollingReady
	if err = d.ops.ConfigurePhy(d); err != nil {
		log.Print("err", err)
		if _, ok := err.(*TimeoutError); ok {
			d.state = StateFailed
		}
		return err
	}
	d.state = StateActive
	l.powered = true
	return nil
}

func (d *DP) powerOff() {
	d.layout.phy.WriteFence(d.cfg.Regs.PdCtl, pdCtlPsrPwrdn)
	d.layout.powered = false
	d.state = StateResourcesAcquired
}

func (d *DP) teardown() {
	d.layout.repower = d.layout.powered
	if d.layout.powered {
		d.powerOff()
	}
	d.release()
}

func (d *DP) bringup() error {
	if err := d.acquire(); err != nil {
		return err
	}
	d.ops.AuxInit(d)
	if !d.layout.repower {
		return nil
	}
	d.layout.repower = false
	return d.powerOn()
}

// The accessors below are for DpOps implementations, which run with the
// transmitter locked.

func (d *DP) Regs() *DpRegs { return &d.cfg.Regs }

func (d *DP) PhyBlock() reg.Block    { return d.layout.phy }
func (d *DP) SerdesBlock() reg.Block { return d.layout.serdes }

// TxBlock returns the tx block of lane 1 or 2.
func (d *DP) TxBlock(lane int) reg.Block {
	if lane == 2 {
		return d.layout.tx2
	}
	return d.layout.tx
}

func (d *DP) Link() *LinkOptions { return &d.layout.opts }

func (d *DP) Reverse() bool { return d.orientation == OrientationReverse }

// Wait polls a status bit until set, returning a *TimeoutError naming site.
func (d *DP) Wait(b reg.Block, off, mask uint32, site string) error {
	return d.wait(b, off, mask, mask, site)
}
