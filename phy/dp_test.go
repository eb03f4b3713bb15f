// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import (
	"errors"
	"testing"

	"github.com/platinasystems/qmpphy/internal/reg/regtest"
)

const (
	dpSerdes = 0xc00
	dpTxA    = 0x400
	dpTxB    = 0x800
)

func newDP(t *testing.T, cfg *DpConfig, opts ...Option) (*DP, *regtest.Space, *fakes) {
	s := regtest.New()
	s.Set(dpSerdes+comCReadyStatus, cReady)
	s.Set(dpSerdes+comCmnStatus, freqDone|pllLocked)
	s.Set(dpPhyStatus, tsyncDone|phyReady)
	f := newFakes(s)
	if cfg == nil {
		cfg = QCS615("dp0")
	}
	d, err := NewDP(cfg, s, 0, f.resources(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return d, s, f
}

func equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDPEnable(t *testing.T) {
	d, s, f := newDP(t, nil)
	if f.loads["vdda-phy"] != 21800 || f.loads["vdda-pll"] != 36000 {
		t.Error("loads:", f.loads)
	}
	if err := d.Enable(); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "rails+ reset+ reset- clk+" {
		t.Error("enable:", got)
	}
	if v := f.syscon[modeReg]; !equal(v, []uint32{1}) {
		t.Error("mode select:", v)
	}
	if v := s.WritesTo(dpPhyAuxCfg0 + 4); !equal(v, []uint32{0x13}) {
		t.Error("aux cfg1:", v)
	}
	if v := s.Get(dpPhyAuxInterruptMask); v != auxInterruptMask {
		t.Errorf("aux interrupt mask %#x", v)
	}
	if d.InitCount() != 1 || d.State() != StateResourcesAcquired {
		t.Error(d.InitCount(), d.State())
	}

	n := len(s.Writes())
	f.reset()
	if err := d.Enable(); err != nil {
		t.Fatal(err)
	}
	if len(s.Writes()) != n || len(f.trace) != 0 || d.InitCount() != 1 {
		t.Error("second enable touched hardware:", f)
	}

	if err := d.Disable(); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "reset+ clk- rails-" {
		t.Error("disable:", got)
	}
	if v := f.syscon[modeReg]; !equal(v, []uint32{1, 0}) {
		t.Error("mode select:", v)
	}
	if d.InitCount() != 0 || d.State() != StateIdle {
		t.Error(d.InitCount(), d.State())
	}
}

func TestDPEnableFault(t *testing.T) {
	d, s, f := newDP(t, nil)
	f.failClocks = true
	if err := d.Enable(); !errors.Is(err, ErrResource) {
		t.Fatal("unexpected err:", err)
	}
	if len(s.Writes()) != 0 || d.InitCount() != 0 || f.railsOn {
		t.Error("fault left state behind:", f)
	}
	if _, ok := f.syscon[modeReg]; ok {
		t.Error("mode selected")
	}
}

func TestDPPowerOn(t *testing.T) {
	d, s, f := newDP(t, nil)
	if err := d.PowerOn(); !errors.Is(err, ErrNotEnabled) {
		t.Error("unexpected err:", err)
	}
	if err := d.Enable(); err != nil {
		t.Fatal(err)
	}
	err := d.Configure(LinkOptions{
		LinkRate:     2700,
		Lanes:        4,
		VoltageSwing: [4]uint8{0, 1, 0, 0},
		PreEmphasis:  [4]uint8{1, 0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err = d.PowerOn(); err != nil {
		t.Fatal(err)
	}
	if d.State() != StateActive {
		t.Error(d.State())
	}
	if f.rates["dp_link"] != 270000000 || f.rates["dp_pixel"] != 1350000000 {
		t.Error("rates:", f.rates)
	}
	if v := s.Get(dpSerdes + comHsclkSel); v != 0x24 {
		t.Errorf("hsclk %#x", v)
	}
	for _, tx := range []uint32{dpTxA, dpTxB} {
		for _, x := range []struct {
			off, want uint32
		}{
			{txDrvLvl, 0x1d | txDrvLvlMuxEn},
			{txEmpPost1Lvl, 0x0a | txEmpPost1LvlMuxEn},
			{txTransceiverBiasEn, 0x3f},
			{txHighzDrvrEn, 0x10},
		} {
			if v := s.Get(tx + x.off); v != x.want {
				t.Errorf("%#x: %#x want %#x", tx+x.off, v, x.want)
			}
		}
	}
	if v := s.WritesTo(dpPhyCfg); !equal(v, []uint32{0x01, 0x05, 0x01, 0x09}) {
		t.Error("cfg:", v)
	}
	if v := s.Get(dpPhyVcoDiv); v != 1 {
		t.Error("vco div:", v)
	}
	if v := s.Get(dpPhyMode); v != 0x5c {
		t.Errorf("mode %#x", v)
	}
	want := uint32(pdCtlPwrdn | pdCtlAuxPwrdn | pdCtlPllPwrdn |
		pdCtlLane01Pwrdn | pdCtlLane23Pwrdn)
	if v := s.Get(dpPhyPdCtl); v != want {
		t.Errorf("pd ctl %#x want %#x", v, want)
	}

	if err = d.PowerOff(); err != nil {
		t.Fatal(err)
	}
	if v := s.Get(dpPhyPdCtl); v != pdCtlPsrPwrdn {
		t.Errorf("pd ctl %#x", v)
	}
}

func TestDPReverseOneLane(t *testing.T) {
	d, s, f := newDP(t, nil, WithOrientation(OrientationReverse))
	d.Enable()
	d.Configure(LinkOptions{LinkRate: 1620, Lanes: 1})
	if err := d.PowerOn(); err != nil {
		t.Fatal(err)
	}
	if v := s.Get(dpPhyMode); v != 0x4c {
		t.Errorf("mode %#x", v)
	}
	want := uint32(pdCtlPwrdn | pdCtlAuxPwrdn | pdCtlPllPwrdn |
		pdCtlLane01Pwrdn)
	if v := s.Get(dpPhyPdCtl); v != want {
		t.Errorf("pd ctl %#x want %#x", v, want)
	}
	if v := s.Get(dpTxB + txTransceiverBiasEn); v != 0x3e {
		t.Errorf("bias %#x", v)
	}
	if v := s.Get(dpTxB + txHighzDrvrEn); v != 0x13 {
		t.Errorf("drvr %#x", v)
	}
	if f.rates["dp_pixel"] != 810000000 {
		t.Error("rates:", f.rates)
	}
	if v := s.Get(dpSerdes + comHsclkSel); v != 0x2c {
		t.Errorf("hsclk %#x", v)
	}
}

func TestDPBadRate(t *testing.T) {
	d, s, _ := newDP(t, nil)
	d.Enable()
	if err := d.Configure(LinkOptions{LinkRate: 8100, Lanes: 2}); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if err := d.PowerOn(); !errors.Is(err, ErrConfig) {
		t.Fatal("unexpected err:", err)
	}
	if n := len(s.Writes()); n != 0 {
		t.Error(n, "register writes")
	}
}

func TestDPConfigure(t *testing.T) {
	d, s, _ := newDP(t, nil)
	good := LinkOptions{LinkRate: 2700, Lanes: 2}
	if err := d.Configure(good); err != nil {
		t.Fatal(err)
	}
	for _, opts := range []LinkOptions{
		{LinkRate: 2700, Lanes: 0},
		{LinkRate: 2700, Lanes: 5},
		{LinkRate: 2700, Lanes: 2, VoltageSwing: [4]uint8{0, 4}},
		{LinkRate: 2700, Lanes: 2, PreEmphasis: [4]uint8{4}},
	} {
		if err := d.Configure(opts); !errors.Is(err, ErrConfig) {
			t.Errorf("%+v: unexpected err: %v", opts, err)
		}
	}
	if d.Options() != good {
		t.Error("invalid options cached:", d.Options())
	}

	d.Enable()
	s.Clear()
	err := d.Configure(LinkOptions{
		LinkRate:     2700,
		Lanes:        2,
		VoltageSwing: [4]uint8{3, 0},
		SetVoltages:  true,
	})
	if !errors.Is(err, ErrConfig) {
		t.Fatal("unexpected err:", err)
	}
	if n := len(s.Writes()); n != 0 {
		t.Error(n, "register writes")
	}

	err = d.Configure(LinkOptions{
		LinkRate:     2700,
		Lanes:        2,
		VoltageSwing: [4]uint8{2, 0},
		PreEmphasis:  [4]uint8{0, 1},
		SetVoltages:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Get(dpTxA + txDrvLvl); v != 0x1f|txDrvLvlMuxEn {
		t.Errorf("drv %#x", v)
	}
	if v := s.Get(dpTxB + txEmpPost1Lvl); v != 0x0c|txEmpPost1LvlMuxEn {
		t.Errorf("emp %#x", v)
	}
	if d.Options().SetVoltages {
		t.Error("set voltages not cleared")
	}
}

func TestDPReservedLevels(t *testing.T) {
	d, s, f := newDP(t, nil)
	good := LinkOptions{LinkRate: 2700, Lanes: 2}
	d.Configure(good)
	if err := d.Enable(); err != nil {
		t.Fatal(err)
	}
	reserved := LinkOptions{
		LinkRate:     2700,
		Lanes:        2,
		VoltageSwing: [4]uint8{2, 2},
		PreEmphasis:  [4]uint8{2, 2},
	}
	s.Clear()
	f.reset()
	if err := d.Configure(reserved); !errors.Is(err, ErrConfig) {
		t.Fatal("unexpected err:", err)
	}
	if d.Options() != good {
		t.Error("reserved levels cached:", d.Options())
	}

	// levels already cached are checked again before the tables
	d.layout.opts = reserved
	if err := d.PowerOn(); !errors.Is(err, ErrConfig) {
		t.Fatal("unexpected err:", err)
	}
	if n := len(s.Writes()); n != 0 {
		t.Error(n, "register writes")
	}
	if len(f.trace) != 0 || len(f.rates) != 0 {
		t.Error("resources touched:", f, f.rates)
	}
	if d.State() != StateResourcesAcquired {
		t.Error(d.State())
	}
}

func TestDPTimeout(t *testing.T) {
	for _, x := range []struct {
		site string
		off  uint32
		val  uint32
	}{
		{"c_ready", dpSerdes + comCReadyStatus, 0},
		{"freq_done", dpSerdes + comCmnStatus, pllLocked},
		{"pll_locked", dpSerdes + comCmnStatus, freqDone},
		{"tsync_done", dpPhyStatus, phyReady},
		{"phy_ready", dpPhyStatus, tsyncDone},
	} {
		d, s, f := newDP(t, nil)
		s.Set(x.off, x.val)
		d.Enable()
		d.Configure(LinkOptions{LinkRate: 5400, Lanes: 2})
		err := d.PowerOn()
		var te *TimeoutError
		if !errors.As(err, &te) || !errors.Is(err, ErrTimeout) {
			t.Errorf("%s: unexpected err: %v", x.site, err)
			continue
		}
		if te.Site != x.site {
			t.Errorf("site %s want %s", te.Site, x.site)
		}
		if d.State() != StateFailed || d.InitCount() != 1 || !f.railsOn {
			t.Errorf("%s: %s %d %v", x.site, d.State(), d.InitCount(),
				f.railsOn)
		}
		d.Disable()
		if d.InitCount() != 0 || f.railsOn {
			t.Errorf("%s: disable left rails on", x.site)
		}
	}
}

func TestDPCalibrate(t *testing.T) {
	d, s, _ := newDP(t, nil)
	if err := d.Calibrate(); !errors.Is(err, ErrNotEnabled) {
		t.Error("unexpected err:", err)
	}
	d.Enable()
	s.Clear()
	for i := 0; i < 6; i++ {
		if err := d.Calibrate(); err != nil {
			t.Fatal(err)
		}
	}
	want := []uint32{0x23, 0x1d, 0x13, 0x23, 0x1d, 0x13}
	if v := s.WritesTo(dpPhyAuxCfg0 + 4); !equal(v, want) {
		t.Error("aux cfg1:", v)
	}

	d.Calibrate()
	d.Disable()
	d.Enable()
	s.Clear()
	d.Calibrate()
	if v := s.WritesTo(dpPhyAuxCfg0 + 4); !equal(v, []uint32{0x23}) {
		t.Error("aux cfg1 after enable:", v)
	}
}

func TestDPOrientation(t *testing.T) {
	d, s, f := newDP(t, nil, WithOrientation(OrientationNormal))
	d.Enable()

	// enabled but not powered: aux init only
	f.reset()
	s.Clear()
	if err := d.SetOrientation(OrientationReverse); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "reset+ clk- rails- rails+ reset+ reset- clk+" {
		t.Error("flip:", got)
	}
	if v := s.WritesTo(dpPhyMode); len(v) != 0 {
		t.Error("mode written:", v)
	}

	d.Configure(LinkOptions{LinkRate: 2700, Lanes: 2})
	if err := d.PowerOn(); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if err := d.SetOrientation(OrientationNormal); err != nil {
		t.Fatal(err)
	}
	if v := s.WritesTo(dpPhyPdCtl); len(v) == 0 || v[0] != pdCtlPsrPwrdn {
		t.Error("pd ctl:", v)
	}
	if v := s.WritesTo(dpPhyMode); !equal(v, []uint32{0x5c}) {
		t.Error("mode:", v)
	}
	if d.State() != StateActive || d.InitCount() != 1 {
		t.Error(d.State(), d.InitCount())
	}
	if v := f.syscon[modeReg]; !equal(v, []uint32{1, 0, 1, 0, 1}) {
		t.Error("mode select:", v)
	}
}

func TestDPSuspendResume(t *testing.T) {
	d, _, f := newDP(t, nil)
	d.Suspend()
	d.Resume()
	if len(f.trace) != 0 {
		t.Error("disabled suspend:", f)
	}
	d.Enable()
	f.reset()
	if err := d.Suspend(); err != nil {
		t.Fatal(err)
	}
	if err := d.Resume(); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "clk- clk+" {
		t.Error("suspend resume:", got)
	}
}

func TestDPOps(t *testing.T) {
	var steps int
	cfg := QCS615("dp1")
	cfg.Ops.Calibrate = func(d *DP) error {
		steps++
		d.PhyBlock().WriteFence(d.Regs().AuxCfg(1), 0x42)
		return nil
	}
	d, s, _ := newDP(t, cfg)
	d.Enable()
	d.Calibrate()
	d.Calibrate()
	if steps != 2 {
		t.Error("steps:", steps)
	}
	if v := s.Get(dpPhyAuxCfg0 + 4); v != 0x42 {
		t.Errorf("aux cfg1 %#x", v)
	}
}

func TestDPConfigValidate(t *testing.T) {
	cfg := QCS615("dp2")
	cfg.AuxCfg1 = nil
	if _, err := NewDP(cfg, regtest.New(), 0, Resources{}); err == nil {
		t.Error("empty calibration table accepted")
	}
	cfg = QCS615("dp3")
	cfg.RateTables[HBR2] = nil
	if _, err := NewDP(cfg, regtest.New(), 0, Resources{}); err == nil {
		t.Error("missing rate table accepted")
	}
}
