// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package resource

import (
	"fmt"

	"github.com/platinasystems/i2c"
	"github.com/platinasystems/log"
)

const (
	pmbusPage      = 0x00
	pmbusOperation = 0x01

	operationOn  = 0x80
	operationOff = 0x00
)

// PmbusRail is one regulator output behind a PMBus device.
type PmbusRail struct {
	Name  string
	Bus   int
	Addr  int
	Paged bool
	Page  uint8
}

func (r *PmbusRail) operation(v uint8) error {
	var bus i2c.Bus
	var d i2c.SMBusData

	if err := bus.Open(r.Bus); err != nil {
		return err
	}
	defer bus.Close()
	if err := bus.ForceSlaveAddress(r.Addr); err != nil {
		return err
	}
	if r.Paged {
		d[0] = r.Page
		if err := bus.Do(i2c.Write, pmbusPage, i2c.ByteData, &d); err != nil {
			return err
		}
	}
	d[0] = v
	return bus.Do(i2c.Write, pmbusOperation, i2c.ByteData, &d)
}

// PmbusRails switches a set of PMBus regulators together.
type PmbusRails struct {
	Rails []PmbusRail
}

// Enable turns the rails on in order; a failure turns the ones already on
// back off.
func (p *PmbusRails) Enable() error {
	for i := range p.Rails {
		if err := p.Rails[i].operation(operationOn); err != nil {
			for j := i - 1; j >= 0; j-- {
				if err := p.Rails[j].operation(operationOff); err != nil {
					log.Print("err", p.Rails[j].Name, ": off: ", err)
				}
			}
			return fmt.Errorf("%s: %v", p.Rails[i].Name, err)
		}
	}
	return nil
}

// Disable turns every rail off in reverse order and returns the first
// failure.
func (p *PmbusRails) Disable() error {
	var first error
	for i := len(p.Rails) - 1; i >= 0; i-- {
		err := p.Rails[i].operation(operationOff)
		if err != nil && first == nil {
			first = fmt.Errorf("%s: %v", p.Rails[i].Name, err)
		}
	}
	return first
}

// SetLoad checks the rail and logs the expected load. PMBus regulators
// pick their operating mode themselves so there is nothing to program.
func (p *PmbusRails) SetLoad(name string, microamps int) error {
	found := false
	for i := range p.Rails {
		if p.Rails[i].Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: no such rail", name)
	}
	log.Print("info", name, ": load ", microamps, "uA")
	return nil
}
