// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import (
	"fmt"

	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/resource"
)

// DP PHY power down control
const (
	pdCtlPwrdn       = 1 << 0
	pdCtlPsrPwrdn    = 1 << 1
	pdCtlAuxPwrdn    = 1 << 2
	pdCtlLane01Pwrdn = 1 << 3
	pdCtlLane23Pwrdn = 1 << 4
	pdCtlPllPwrdn    = 1 << 5
	pdCtlDpClampEn   = 1 << 6
)

const (
	comBiasEn        = 1 << 0
	comBiasEnMux     = 1 << 1
	comClkbufREn     = 1 << 2
	comClkbufLEn     = 1 << 3
	comEnSysclkTxSel = 1 << 4

	cReady    = 1 << 0
	freqDone  = 1 << 0
	pllLocked = 1 << 1
	tsyncDone = 1 << 0
	phyReady  = 1 << 1

	txDrvLvlMuxEn      = 1 << 5
	txEmpPost1LvlMuxEn = 1 << 5

	auxInterruptMask = 0x1f
	laneCtlDefault   = 0x05
)

var auxCfgV3 = [...]uint32{0x00, 0x13, 0x24, 0x00, 0x0a, 0x26, 0x0a, 0x03,
	0xbb, 0x03}

// DpOpsV3 drives the v3 generation DP PHY.
var DpOpsV3 = DpOps{
	AuxInit:      auxInitV3,
	ConfigureTx:  configureTxV3,
	ConfigurePhy: configurePhyV3,
	Calibrate:    calibrateV3,
}

func auxInitV3(d *DP) {
	r, phy := d.Regs(), d.PhyBlock()
	phy.WriteFence(r.PdCtl, pdCtlPwrdn|pdCtlAuxPwrdn|pdCtlLane01Pwrdn|
		pdCtlLane23Pwrdn|pdCtlPllPwrdn|pdCtlDpClampEn)
	// bias current for the PHY and PLL
	d.SerdesBlock().WriteFence(r.BiasEnClkbuflrEn,
		comBiasEn|comBiasEnMux|comClkbufLEn|comEnSysclkTxSel)
	for i, v := range auxCfgV3 {
		phy.WriteFence(r.AuxCfg(i), v)
	}
	d.layout.auxCfg = 0
	phy.WriteFence(r.AuxInterruptMask, auxInterruptMask)
}

func configureTxV3(d *DP) error {
	if err := d.ConfigureSwing(); err != nil {
		return err
	}
	bias, drvr := uint32(0x3f), uint32(0x10)
	if d.Link().Lanes == 1 {
		bias, drvr = 0x3e, 0x13
	}
	r := d.Regs()
	for lane := 1; lane <= 2; lane++ {
		tx := d.TxBlock(lane)
		tx.WriteFence(r.TxHighzDrvrEn, drvr)
		tx.WriteFence(r.TxTransceiverBias, bias)
	}
	return nil
}

func configurePhyV3(d *DP) error {
	if _, err := Classify(d.Link().LinkRate); err != nil {
		return err
	}
	r, phy, serdes := d.Regs(), d.PhyBlock(), d.SerdesBlock()
	d.ConfigureMode()
	phy.WriteFence(r.Tx0Tx1LaneCtl, laneCtlDefault)
	phy.WriteFence(r.Tx2Tx3LaneCtl, laneCtlDefault)
	if err := d.ConfigureClocks(); err != nil {
		return err
	}

	phy.WriteFence(r.Cfg, 0x01)
	phy.WriteFence(r.Cfg, 0x05)
	serdes.WriteFence(r.ResetsmCntrl, 0x20)
	if err := d.Wait(serdes, r.CReadyStatus, cReady, "c_ready"); err != nil {
		return err
	}
	phy.WriteFence(r.Cfg, 0x01)
	phy.WriteFence(r.Cfg, 0x09)

	for _, x := range []struct {
		b    reg.Block
		off  uint32
		mask uint32
		site string
	}{
		{serdes, r.CmnStatus, freqDone, "freq_done"},
		{serdes, r.CmnStatus, pllLocked, "pll_locked"},
		{phy, r.Status, tsyncDone, "tsync_done"},
		{phy, r.Status, phyReady, "phy_ready"},
	} {
		if err := d.Wait(x.b, x.off, x.mask, x.site); err != nil {
			return err
		}
	}
	return nil
}

func calibrateV3(d *DP) error {
	cal := d.cfg.AuxCfg1
	d.layout.auxCfg = (d.layout.auxCfg + 1) % len(cal)
	d.PhyBlock().WriteFence(d.Regs().AuxCfg(1), cal[d.layout.auxCfg])
	return nil
}

// ConfigureMode powers up the lane pairs the orientation and lane count
// use and selects the lane mapping.
func (d *DP) ConfigureMode() {
	r, phy := d.Regs(), d.PhyBlock()
	lanes, reverse := d.Link().Lanes, d.Reverse()
	v := uint32(pdCtlPwrdn | pdCtlAuxPwrdn | pdCtlPllPwrdn)
	if lanes == 4 || reverse {
		v |= pdCtlLane01Pwrdn
	}
	if lanes == 4 || !reverse {
		v |= pdCtlLane23Pwrdn
	}
	phy.WriteFence(r.PdCtl, v)
	if reverse {
		phy.WriteFence(r.Mode, 0x4c)
	} else {
		phy.WriteFence(r.Mode, 0x5c)
	}
}

// SwingLevels looks up the drive and post-cursor codes for a voltage swing
// and pre-emphasis level, with the mux enable bits set.
func (cfg *DpConfig) SwingLevels(swing, emph uint8) (drv, post uint32, err error) {
	if int(swing) >= len(cfg.Swing) || int(emph) >= len(cfg.Swing[0]) {
		err = &ConfigError{"swing/pre-emphasis", fmt.Sprint(swing, "/", emph)}
		return
	}
	s, p := cfg.Swing[swing][emph], cfg.PreEmphasis[swing][emph]
	if s == SwingReserved || p == SwingReserved {
		err = &ConfigError{"swing/pre-emphasis", fmt.Sprint(swing, "/", emph)}
		return
	}
	return uint32(s) | txDrvLvlMuxEn, uint32(p) | txEmpPost1LvlMuxEn, nil
}

// ConfigureSwing drives both tx blocks at the highest levels requested
// across the active lanes.
func (d *DP) ConfigureSwing() error {
	drv, post, err := d.cfg.SwingLevels(d.Link().levels())
	if err != nil {
		return err
	}
	r := d.Regs()
	for lane := 1; lane <= 2; lane++ {
		tx := d.TxBlock(lane)
		tx.WriteFence(r.TxDrvLvl, drv)
		tx.WriteFence(r.TxEmpPost1Lvl, post)
	}
	return nil
}

// ConfigureClocks programs the VCO divider and sets the link and pixel
// clock rates for the configured link rate.
func (d *DP) ConfigureClocks() error {
	div, link, pixel, err := ClockRates(d.Link().LinkRate)
	if err != nil {
		return err
	}
	d.PhyBlock().WriteFence(d.Regs().VcoDiv, div)
	if err = d.res.SetRate(d.cfg.LinkClock, link); err != nil {
		return &resource.Error{Stage: StageLinkClock, Err: err}
	}
	if err = d.res.SetRate(d.cfg.PixelClock, pixel); err != nil {
		return &resource.Error{Stage: StagePixelClock, Err: err}
	}
	return nil
}
