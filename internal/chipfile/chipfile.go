// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package chipfile reads the YAML description of a board's QMP PHYs.
//
// Each entry names a stock chip configuration and may override its block
// offsets, register map and init tables, then describes where the
// rails, resets, clocks and syscon registers of that PHY live.
//
//	phys:
//	- name: usb0
//	  chip: qcm2290
//	  addr: 0x1615000
//	  size: 0x1000
//	  orientation: normal
//	  rails:
//	  - {name: vdda-phy, bus: 3, addr: 0x40, page: 0}
//	  resets: [usb_phy_reset_l]
//	  clocks:
//	    addr: 0x1400000
//	    size: 0x1000
//	    branches:
//	    - {name: aux, cbcr: 0x30}
//	  syscon: {addr: 0x1b40000, size: 0x1000, clamp: 0x244}
package chipfile

import (
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/resource"
	"github.com/platinasystems/qmpphy/phy"
)

// DefaultFile is read when no file is named.
const DefaultFile = "/etc/goes/qmpphy.yaml"

type File struct {
	Phys []Phy `yaml:"phys"`
}

type Entry struct {
	Offset uint32       `yaml:"offset"`
	Value  uint32       `yaml:"value"`
	Lanes  reg.LaneMask `yaml:"lanes"`
}

type Table []Entry

func (t Table) reg() reg.Table {
	if t == nil {
		return nil
	}
	rt := make(reg.Table, len(t))
	for i, e := range t {
		rt[i] = reg.Entry{Offset: e.Offset, Value: e.Value, Lanes: e.Lanes}
	}
	return rt
}

type Tables struct {
	Serdes Table `yaml:"serdes"`
	Tx     Table `yaml:"tx"`
	Rx     Table `yaml:"rx"`
	Pcs    Table `yaml:"pcs"`
	Rbr    Table `yaml:"rbr"`
	Hbr    Table `yaml:"hbr"`
	Hbr2   Table `yaml:"hbr2"`
}

type Rail struct {
	Name string `yaml:"name"`
	Bus  int    `yaml:"bus"`
	Addr int    `yaml:"addr"`
	// nil for unpaged devices
	Page *uint8 `yaml:"page"`
}

type Branch struct {
	Name string `yaml:"name"`
	Cbcr uint32 `yaml:"cbcr"`
}

type Window struct {
	Addr uint64 `yaml:"addr"`
	Size int    `yaml:"size"`
}

type Clocks struct {
	Window `yaml:",inline"`

	Branches []Branch `yaml:"branches"`
	// pipe clock branch, USB only
	Pipe *Branch `yaml:"pipe"`
}

type Syscon struct {
	Window `yaml:",inline"`

	Clamp uint32 `yaml:"clamp"`
	Mode  uint32 `yaml:"mode"`
}

// Phy describes one transceiver.
type Phy struct {
	Window `yaml:",inline"`

	Name        string `yaml:"name"`
	Chip        string `yaml:"chip"`
	Orientation string `yaml:"orientation"`

	UsbOffsets *phy.UsbOffsets `yaml:"usb_offsets"`
	UsbRegs    *phy.UsbRegs    `yaml:"usb_regs"`
	DpOffsets  *phy.DpOffsets  `yaml:"dp_offsets"`
	DpRegs     *phy.DpRegs     `yaml:"dp_regs"`
	Tables     Tables          `yaml:"tables"`
	// per rail load in microamps, DP only
	Loads map[string]int `yaml:"loads"`

	Rails  []Rail   `yaml:"rails"`
	Resets []string `yaml:"resets"`
	Clocks *Clocks  `yaml:"clocks"`
	Syscon *Syscon  `yaml:"syscon"`
}

// Mapper maps a physical register window.
type Mapper interface {
	Map(addr uint64, size int) (reg.Space, error)
}

func Read(fn string) (*File, error) {
	if fn == "" {
		fn = DefaultFile
	}
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fn, err)
	}
	return f, nil
}

func Parse(b []byte) (*File, error) {
	f := new(File)
	if err := yaml.UnmarshalStrict(b, f); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for i := range f.Phys {
		p := &f.Phys[i]
		if p.Name == "" {
			return nil, fmt.Errorf("phys[%d]: no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%s: duplicate", p.Name)
		}
		seen[p.Name] = true
		if p.Size == 0 {
			return nil, fmt.Errorf("%s: no register window", p.Name)
		}
	}
	return f, nil
}

func (f *File) Phy(name string) (*Phy, error) {
	for i := range f.Phys {
		if f.Phys[i].Name == name {
			return &f.Phys[i], nil
		}
	}
	return nil, fmt.Errorf("%s: not found", name)
}

// Config returns the stock configuration of the named chip with this
// entry's overrides applied.
func (p *Phy) Config() (phy.Config, error) {
	t := &p.Tables
	switch strings.ToLower(p.Chip) {
	case "qcm2290", "sm6115", "sdm660", "msm8998":
		var cfg *phy.UsbConfig
		switch strings.ToLower(p.Chip) {
		case "sdm660":
			cfg = phy.SDM660(p.Name)
		case "msm8998":
			cfg = phy.MSM8998(p.Name)
		default:
			cfg = phy.QCM2290(p.Name)
		}
		if p.DpOffsets != nil || p.DpRegs != nil || t.Rbr != nil ||
			t.Hbr != nil || t.Hbr2 != nil || p.Loads != nil {
			return nil, fmt.Errorf("%s: dp settings on a usb phy", p.Name)
		}
		if p.UsbOffsets != nil {
			cfg.Offsets = *p.UsbOffsets
		}
		if p.UsbRegs != nil {
			cfg.Regs = *p.UsbRegs
		}
		override(&cfg.SerdesTable, t.Serdes)
		override(&cfg.TxTable, t.Tx)
		override(&cfg.RxTable, t.Rx)
		override(&cfg.PcsTable, t.Pcs)
		return cfg, nil
	case "qcs615", "qcs615-dp":
		cfg := phy.QCS615(p.Name)
		if p.UsbOffsets != nil || p.UsbRegs != nil || t.Rx != nil ||
			t.Pcs != nil {
			return nil, fmt.Errorf("%s: usb settings on a dp phy", p.Name)
		}
		if p.DpOffsets != nil {
			cfg.Offsets = *p.DpOffsets
		}
		if p.DpRegs != nil {
			cfg.Regs = *p.DpRegs
		}
		override(&cfg.SerdesTable, t.Serdes)
		override(&cfg.TxTable, t.Tx)
		override(&cfg.RateTables[phy.RBR], t.Rbr)
		override(&cfg.RateTables[phy.HBR], t.Hbr)
		override(&cfg.RateTables[phy.HBR2], t.Hbr2)
		if p.Loads != nil {
			rails := make([]phy.Rail, len(cfg.Rails))
			copy(rails, cfg.Rails)
			for i := range rails {
				if ua, found := p.Loads[rails[i].Name]; found {
					rails[i].Microamps = ua
				}
			}
			cfg.Rails = rails
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("%s: unknown chip %q", p.Name, p.Chip)
}

func override(dst *reg.Table, t Table) {
	if t != nil {
		*dst = t.reg()
	}
}

// Resources maps the clock controller and syscon windows and returns the
// transceiver's collaborators. Sections left out of the entry stay nil.
func (p *Phy) Resources(m Mapper) (phy.Resources, error) {
	var res phy.Resources
	if len(p.Rails) > 0 {
		rails := &resource.PmbusRails{}
		for _, r := range p.Rails {
			pr := resource.PmbusRail{Name: r.Name, Bus: r.Bus, Addr: r.Addr}
			if r.Page != nil {
				pr.Paged, pr.Page = true, *r.Page
			}
			rails.Rails = append(rails.Rails, pr)
		}
		res.Rails = rails
	}
	if len(p.Resets) > 0 {
		res.Resets = &resource.GpioResets{Names: p.Resets}
	}
	if c := p.Clocks; c != nil {
		space, err := m.Map(c.Addr, c.Size)
		if err != nil {
			return res, fmt.Errorf("%s: clocks: %v", p.Name, err)
		}
		regs := reg.Block{Space: space}
		clocks := &resource.BranchClocks{}
		for _, b := range c.Branches {
			clocks.Branches = append(clocks.Branches,
				resource.Branch{Name: b.Name, Regs: regs, Cbcr: b.Cbcr})
		}
		res.Clocks = clocks
		if c.Pipe != nil {
			res.Pipe = &resource.Branch{Name: c.Pipe.Name, Regs: regs,
				Cbcr: c.Pipe.Cbcr}
		}
	}
	if s := p.Syscon; s != nil {
		space, err := m.Map(s.Addr, s.Size)
		if err != nil {
			return res, fmt.Errorf("%s: syscon: %v", p.Name, err)
		}
		res.Syscon = &resource.RegSyscon{Regs: reg.Block{Space: space}}
		res.ClampReg, res.ModeReg = s.Clamp, s.Mode
	}
	return res, nil
}

// Options returns the construction options the entry carries.
func (p *Phy) Options() ([]phy.Option, error) {
	if p.Orientation == "" {
		return nil, nil
	}
	o, err := phy.ParseOrientation(p.Orientation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return []phy.Option{phy.WithOrientation(o)}, nil
}
