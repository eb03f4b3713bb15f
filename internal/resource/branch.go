// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package resource

import (
	"fmt"
	"sync"
	"time"

	"github.com/platinasystems/qmpphy/internal/reg"
)

const (
	cbcrEnable = 1 << 0
	cbcrOff    = 1 << 31

	branchPollInterval = 1 * time.Microsecond
	branchTimeout      = 200 * time.Microsecond
)

// Branch is a clock gated by a CBCR register in a clock controller.
type Branch struct {
	Name string
	Regs reg.Block
	Cbcr uint32
}

func (b *Branch) Enable() error {
	b.Regs.SetBits(b.Cbcr, cbcrEnable)
	err := b.Regs.PollClear(b.Cbcr, cbcrOff, branchPollInterval,
		branchTimeout)
	if err != nil {
		b.Regs.ClearBits(b.Cbcr, cbcrEnable)
		return fmt.Errorf("%s: stuck off", b.Name)
	}
	return nil
}

func (b *Branch) Disable() {
	b.Regs.ClearBits(b.Cbcr, cbcrEnable)
}

// BranchClocks is a clock tree of branch clocks enabled in order and
// disabled in reverse. Rates of PHY derived clocks are recorded for the
// consumers that read them back.
type BranchClocks struct {
	Branches []Branch

	mu    sync.Mutex
	rates map[string]uint64
}

func (c *BranchClocks) Enable() error {
	for i := range c.Branches {
		if err := c.Branches[i].Enable(); err != nil {
			for j := i - 1; j >= 0; j-- {
				c.Branches[j].Disable()
			}
			return err
		}
	}
	return nil
}

func (c *BranchClocks) Disable() {
	for i := len(c.Branches) - 1; i >= 0; i-- {
		c.Branches[i].Disable()
	}
}

func (c *BranchClocks) SetRate(id string, hz uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rates == nil {
		c.rates = make(map[string]uint64)
	}
	c.rates[id] = hz
	return nil
}

func (c *BranchClocks) Rate(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rates[id]
}

// RegSyscon writes syscon style registers in a mapped block.
type RegSyscon struct {
	Regs reg.Block
}

func (s *RegSyscon) Write(off, v uint32) error {
	s.Regs.WriteFence(off, v)
	return nil
}
