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
	swReset = 1 << 0
	// active low
	swPwrdn = 1 << 0

	serdesStart = 1 << 0
	pcsStart    = 1 << 1

	phyStatus = 1 << 6

	arcvrDtctEn       = 1 << 0
	alfpsDtctEn       = 1 << 1
	arcvrDtctEventSel = 1 << 4

	irqClear = 1 << 0

	swPortselectVal = 1 << 0
	swPortselectMux = 1 << 1
)

const StagePipeClock = "pipe clock enable"

type usbLayout struct {
	serdes, pcs, pcsMisc reg.Block
	tx, rx, tx2, rx2     reg.Block
	mode                 Mode
	suspended            bool
}

// USB is the USB3 SuperSpeed transceiver.
type USB struct {
	common
	cfg    *UsbConfig
	pipe   resource.Clock
	layout usbLayout
}

type noClock struct{}

func (noClock) Enable() error { return nil }
func (noClock) Disable()      {}

func NewUSB(cfg *UsbConfig, space reg.Space, base uint32, res Resources,
	opts ...Option) (*USB, error) {
	if space == nil {
		return nil, fmt.Errorf("%s: no register space", cfg.Name)
	}
	u := &USB{cfg: cfg, pipe: res.Pipe}
	if u.pipe == nil {
		u.pipe = noClock{}
	}
	u.init(cfg.Name, res, u, opts)
	b := reg.Block{Space: space, Base: base}
	o := &cfg.Offsets
	u.layout = usbLayout{
		serdes:  b.At(o.Serdes),
		pcs:     b.At(o.Pcs),
		pcsMisc: b.At(o.PcsMisc),
		tx:      b.At(o.Tx),
		rx:      b.At(o.Rx),
		tx2:     b.At(o.Tx2),
		rx2:     b.At(o.Rx2),
	}
	return u, nil
}

// Enable brings the link up and takes a reference. On failure nothing is
// left acquired and the count is unchanged.
func (u *USB) Enable() (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer func() { u.enabled(err) }()
	if err = u.bringup(); err != nil {
		return
	}
	u.get()
	return
}

// Disable drops a reference and tears the link down. Teardown failures
// are logged.
func (u *USB) Disable() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.put()
	u.state = StateDisabling
	u.teardown()
	return nil
}

func (u *USB) SetMode(mode Mode, submode int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.layout.mode = mode
	return nil
}

func (u *USB) Mode() Mode {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.layout.mode
}

func (*USB) Configure(LinkOptions) error { return ErrNotSupported }
func (*USB) Calibrate() error            { return ErrNotSupported }
func (*USB) PowerOn() error              { return ErrNotSupported }
func (*USB) PowerOff() error             { return ErrNotSupported }

// Suspend arms wakeup detection and gates the clocks of an enabled link.
func (u *USB) Suspend() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.initCount == 0 || u.layout.suspended {
		return nil
	}
	u.enableAutonomous()
	u.pipe.Disable()
	u.res.GateClocks()
	u.layout.suspended = true
	return nil
}

func (u *USB) Resume() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.initCount == 0 || !u.layout.suspended {
		return nil
	}
	if err := u.res.UngateClocks(); err != nil {
		return err
	}
	if err := u.pipe.Enable(); err != nil {
		u.res.GateClocks()
		return &resource.Error{Stage: StagePipeClock, Err: err}
	}
	u.disableAutonomous()
	u.layout.suspended = false
	return nil
}

func (u *USB) bringup() error {
	if err := u.acquire(); err != nil {
		return err
	}
	if err := u.powerOn(); err != nil {
		// unlike DP, a failed link start holds nothing for Disable
		u.release()
		if _, ok := err.(*TimeoutError); ok {
			u.state = StateFailed
		}
		return err
	}
	return nil
}

func (u *USB) teardown() {
	u.powerOff()
	u.release()
	u.layout.suspended = false
}

func (u *USB) acquire() error {
	if err := u.common.acquire(); err != nil {
		return err
	}
	val := uint32(swPortselectMux)
	if u.orientation == OrientationReverse {
		val |= swPortselectVal
	}
	u.layout.pcs.SetBits(u.cfg.Regs.PowerDownControl, swPwrdn)
	u.layout.pcsMisc.WriteFence(0, val)
	return nil
}

func (u *USB) powerOn() error {
	cfg, l := u.cfg, &u.layout
	l.serdes.Apply(cfg.SerdesTable)
	if err := u.pipe.Enable(); err != nil {
		log.Print("err", u.name, ": ", StagePipeClock, ": ", err)
		return &resource.Error{Stage: StagePipeClock, Err: err}
	}
	l.tx.ApplyLane(cfg.TxTable, 1)
	l.rx.ApplyLane(cfg.RxTable, 1)
	l.tx2.ApplyLane(cfg.TxTable, 2)
	l.rx2.ApplyLane(cfg.RxTable, 2)
	l.pcs.Apply(cfg.PcsTable)
	u.state = StateBlocksProgrammed

	l.pcs.ClearBits(cfg.Regs.SwReset, swReset)
	l.pcs.SetBits(cfg.Regs.StartCtrl, serdesStart|pcsStart)
	u.state = StatePollingReady

	err := u.wait(l.pcs, cfg.Regs.PcsStatus, phyStatus, 0, "pcs status")
	if err != nil {
		log.Print("err", err)
		u.pipe.Disable()
		return err
	}
	u.state = StateActive
	return nil
}

func (u *USB) powerOff() {
	r, pcs := &u.cfg.Regs, u.layout.pcs
	// Suspend already gated the pipe clock
	if !u.layout.suspended {
		u.pipe.Disable()
	}
	pcs.SetBits(r.SwReset, swReset)
	pcs.ClearBits(r.StartCtrl, serdesStart|pcsStart)
	pcs.ClearBits(r.PowerDownControl, swPwrdn)
}

func (u *USB) enableAutonomous() {
	r, pcs := &u.cfg.Regs, u.layout.pcs
	mask := uint32(arcvrDtctEn | arcvrDtctEventSel)
	if u.layout.mode.superSpeed() {
		mask = arcvrDtctEn | alfpsDtctEn
	}
	// 1 then 0 clears the latch
	pcs.SetBits(r.LfpsRxtermIrqClear, irqClear)
	pcs.ClearBits(r.LfpsRxtermIrqClear, irqClear)
	pcs.ClearBits(r.AutonomousModeCtrl,
		arcvrDtctEn|alfpsDtctEn|arcvrDtctEventSel)
	pcs.SetBits(r.AutonomousModeCtrl, mask)
	u.writeSyscon(u.clampReg, 1)
}

func (u *USB) disableAutonomous() {
	r, pcs := &u.cfg.Regs, u.layout.pcs
	u.writeSyscon(u.clampReg, 0)
	pcs.ClearBits(r.AutonomousModeCtrl,
		arcvrDtctEn|arcvrDtctEventSel|alfpsDtctEn)
	pcs.SetBits(r.LfpsRxtermIrqClear, irqClear)
	pcs.ClearBits(r.LfpsRxtermIrqClear, irqClear)
}
