// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import (
	"fmt"

	"github.com/platinasystems/qmpphy/internal/reg"
)

type Variant int

const (
	VariantUSB Variant = iota
	VariantDP
)

func (v Variant) String() string {
	if v == VariantDP {
		return "dp"
	}
	return "usb"
}

// Config describes one transceiver. The only implementations are
// *UsbConfig and *DpConfig; neither is modified after New.
type Config interface {
	Variant() Variant
	config()
}

// UsbOffsets locate each sub-block from the PHY base.
type UsbOffsets struct {
	Serdes  uint32 `yaml:"serdes"`
	Pcs     uint32 `yaml:"pcs"`
	PcsMisc uint32 `yaml:"pcs_misc"`
	Tx      uint32 `yaml:"tx"`
	Rx      uint32 `yaml:"rx"`
	Tx2     uint32 `yaml:"tx2"`
	Rx2     uint32 `yaml:"rx2"`
}

// UsbRegs are the PCS registers whose offsets differ by generation.
type UsbRegs struct {
	SwReset            uint32 `yaml:"sw_reset"`
	StartCtrl          uint32 `yaml:"start_ctrl"`
	PcsStatus          uint32 `yaml:"pcs_status"`
	AutonomousModeCtrl uint32 `yaml:"autonomous_mode_ctrl"`
	LfpsRxtermIrqClear uint32 `yaml:"lfps_rxterm_irq_clear"`
	PowerDownControl   uint32 `yaml:"power_down_control"`
}

type UsbConfig struct {
	Name    string
	Offsets UsbOffsets
	Regs    UsbRegs

	SerdesTable reg.Table
	TxTable     reg.Table
	RxTable     reg.Table
	PcsTable    reg.Table

	Rails  []string
	Resets []string
	Clocks []string
}

func (*UsbConfig) Variant() Variant { return VariantUSB }
func (*UsbConfig) config()          {}

// DpOffsets locate each sub-block from the PHY base.
type DpOffsets struct {
	Serdes uint32 `yaml:"serdes"`
	TxA    uint32 `yaml:"txa"`
	TxB    uint32 `yaml:"txb"`
	Phy    uint32 `yaml:"phy"`
}

// DpRegs is the register map used by the DP operations. AUX_CFGn is at
// AuxCfg0 + 4n.
type DpRegs struct {
	// DP PHY block
	Cfg              uint32 `yaml:"cfg"`
	PdCtl            uint32 `yaml:"pd_ctl"`
	Mode             uint32 `yaml:"mode"`
	AuxCfg0          uint32 `yaml:"aux_cfg0"`
	AuxInterruptMask uint32 `yaml:"aux_interrupt_mask"`
	VcoDiv           uint32 `yaml:"vco_div"`
	Tx0Tx1LaneCtl    uint32 `yaml:"tx0_tx1_lane_ctl"`
	Tx2Tx3LaneCtl    uint32 `yaml:"tx2_tx3_lane_ctl"`
	Status           uint32 `yaml:"status"`

	// serdes block
	BiasEnClkbuflrEn uint32 `yaml:"bias_en_clkbuflr_en"`
	ResetsmCntrl     uint32 `yaml:"resetsm_cntrl"`
	CReadyStatus     uint32 `yaml:"c_ready_status"`
	CmnStatus        uint32 `yaml:"cmn_status"`

	// tx blocks
	TxDrvLvl          uint32 `yaml:"tx_drv_lvl"`
	TxEmpPost1Lvl     uint32 `yaml:"tx_emp_post1_lvl"`
	TxHighzDrvrEn     uint32 `yaml:"tx_highz_drvr_en"`
	TxTransceiverBias uint32 `yaml:"tx_transceiver_bias_en"`
}

func (r *DpRegs) AuxCfg(n int) uint32 { return r.AuxCfg0 + 4*uint32(n) }

// SwingTable is indexed by [voltage swing level][pre-emphasis level].
// SwingReserved marks a combination with no hardware encoding.
type SwingTable [4][4]uint8

const SwingReserved = 0xff

// Rail is a supply with the load drawn while the PHY is enabled.
type Rail struct {
	Name      string `yaml:"name"`
	Microamps int    `yaml:"load"`
}

// DpOps are the generation specific steps of DP bring-up. Each runs with
// the transceiver locked.
type DpOps struct {
	AuxInit      func(*DP)
	ConfigureTx  func(*DP) error
	ConfigurePhy func(*DP) error
	Calibrate    func(*DP) error
}

func (o DpOps) orDefault(def DpOps) DpOps {
	if o.AuxInit == nil {
		o.AuxInit = def.AuxInit
	}
	if o.ConfigureTx == nil {
		o.ConfigureTx = def.ConfigureTx
	}
	if o.ConfigurePhy == nil {
		o.ConfigurePhy = def.ConfigurePhy
	}
	if o.Calibrate == nil {
		o.Calibrate = def.Calibrate
	}
	return o
}

type DpConfig struct {
	Name    string
	Offsets DpOffsets
	Regs    DpRegs

	SerdesTable reg.Table
	TxTable     reg.Table
	// indexed by RateClass
	RateTables [NumRateClasses]reg.Table

	Swing       SwingTable
	PreEmphasis SwingTable

	// AUX_CFG1 values stepped through by Calibrate
	AuxCfg1 []uint32

	Rails  []Rail
	Resets []string
	Clocks []string

	LinkClock  string
	PixelClock string

	// nil steps fall back to DpOpsV3
	Ops DpOps
}

func (*DpConfig) Variant() Variant { return VariantDP }
func (*DpConfig) config()          {}

func (cfg *DpConfig) validate() error {
	if len(cfg.AuxCfg1) == 0 {
		return fmt.Errorf("%s: empty aux calibration table", cfg.Name)
	}
	for i, t := range cfg.RateTables {
		if len(t) == 0 {
			return fmt.Errorf("%s: no %s table", cfg.Name, RateClass(i))
		}
	}
	return nil
}

// LinkOptions are the DP link parameters negotiated by the controller.
type LinkOptions struct {
	// Mb/s per lane
	LinkRate     uint32
	Lanes        uint8
	VoltageSwing [4]uint8
	PreEmphasis  [4]uint8
	// apply swing and pre-emphasis now rather than at the next PowerOn
	SetVoltages bool
}

func (o *LinkOptions) validate() error {
	if o.Lanes < 1 || o.Lanes > 4 {
		return &ConfigError{"lanes", o.Lanes}
	}
	for i := 0; i < int(o.Lanes); i++ {
		if o.VoltageSwing[i] > 3 {
			return &ConfigError{"voltage swing", o.VoltageSwing[i]}
		}
		if o.PreEmphasis[i] > 3 {
			return &ConfigError{"pre-emphasis", o.PreEmphasis[i]}
		}
	}
	return nil
}

// levels returns the highest swing and pre-emphasis across the active
// lanes.
func (o *LinkOptions) levels() (swing, emph uint8) {
	for i := 0; i < int(o.Lanes) && i < len(o.VoltageSwing); i++ {
		if o.VoltageSwing[i] > swing {
			swing = o.VoltageSwing[i]
		}
		if o.PreEmphasis[i] > emph {
			emph = o.PreEmphasis[i]
		}
	}
	return
}

type RateClass int

const (
	RBR RateClass = iota
	HBR
	HBR2
	NumRateClasses
)

func (c RateClass) String() string {
	switch c {
	case RBR:
		return "rbr"
	case HBR:
		return "hbr"
	case HBR2:
		return "hbr2"
	}
	return fmt.Sprint("rate class ", int(c))
}

// Classify maps a link rate in Mb/s to its class.
func Classify(rate uint32) (RateClass, error) {
	switch rate {
	case 1620:
		return RBR, nil
	case 2700:
		return HBR, nil
	case 5400:
		return HBR2, nil
	}
	return 0, &ConfigError{"link rate", rate}
}

// ClockRates returns the VCO divider select and the link and pixel
// clock rates in Hz for a link rate in Mb/s.
func ClockRates(rate uint32) (vcoDiv uint32, link, pixel uint64, err error) {
	class, err := Classify(rate)
	if err != nil {
		return
	}
	hz := uint64(rate) * 1000000
	switch class {
	case RBR, HBR:
		vcoDiv, pixel = 1, hz/2
	case HBR2:
		vcoDiv, pixel = 2, hz/4
	}
	link = uint64(rate) * 100000
	return
}
