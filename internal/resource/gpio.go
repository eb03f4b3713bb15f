// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package resource

import (
	"fmt"

	"github.com/platinasystems/gpio"
)

// GpioResets are active low reset lines driven by named GPIO pins.
type GpioResets struct {
	Names []string
}

func (r *GpioResets) pins() ([]gpio.Pin, error) {
	pins := make([]gpio.Pin, 0, len(r.Names))
	for _, name := range r.Names {
		pin, found := gpio.Pins[name]
		if !found {
			return nil, fmt.Errorf("%s: not found", name)
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

func (r *GpioResets) drive(v bool) error {
	pins, err := r.pins()
	if err != nil {
		return err
	}
	for i, pin := range pins {
		if err = pin.SetValue(v); err != nil {
			return fmt.Errorf("%s: %v", r.Names[i], err)
		}
	}
	return nil
}

func (r *GpioResets) Assert() error   { return r.drive(false) }
func (r *GpioResets) Deassert() error { return r.drive(true) }
