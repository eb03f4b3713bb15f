// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/platinasystems/log"

	"github.com/platinasystems/qmpphy/internal/publish"
	"github.com/platinasystems/qmpphy/phy"
)

type request struct {
	orientation phy.Orientation
	mode        phy.Mode
	link        phy.LinkOptions
	hasMode     bool
	hasRate     bool
}

func parseRequest(byName map[string]string) (*request, error) {
	req := &request{link: phy.LinkOptions{Lanes: 4}}
	if s := byName["-orientation"]; s != "" {
		o, err := phy.ParseOrientation(s)
		if err != nil {
			return nil, err
		}
		req.orientation = o
	}
	if s := byName["-mode"]; s != "" {
		m, err := phy.ParseMode(s)
		if err != nil {
			return nil, err
		}
		req.mode, req.hasMode = m, true
	}
	if s := byName["-rate"]; s != "" {
		u, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("-rate: %v", err)
		}
		req.link.LinkRate, req.hasRate = uint32(u), true
	}
	if s := byName["-lanes"]; s != "" {
		u, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("-lanes: %v", err)
		}
		req.link.Lanes = uint8(u)
	}
	for _, x := range []struct {
		name   string
		levels *[4]uint8
	}{
		{"-swing", &req.link.VoltageSwing},
		{"-emphasis", &req.link.PreEmphasis},
	} {
		s := byName[x.name]
		if s == "" {
			continue
		}
		u, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", x.name, err)
		}
		for i := range x.levels {
			x.levels[i] = uint8(u)
		}
		req.link.SetVoltages = true
	}
	return req, nil
}

// run applies each op in turn and stops at the first failure. A disable
// that drops the last reference retracts the published keys.
func run(t phy.Transceiver, req *request, ops []string,
	pub *publish.Publisher) error {
	for _, op := range ops {
		err := do(t, req, op, os.Stdout)
		if pub != nil {
			if op == "disable" && t.InitCount() == 0 {
				pub.Delete(t.Name())
			} else {
				publishStatus(pub, t)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", t.Name(), op, err)
		}
		log.Print("info", t.Name(), ": ", op, ": ", t.State())
	}
	return nil
}

func do(t phy.Transceiver, req *request, op string, w io.Writer) error {
	switch op {
	case "enable":
		return t.Enable()
	case "disable":
		return t.Disable()
	case "configure":
		if !req.hasRate {
			return fmt.Errorf("missing -rate")
		}
		return t.Configure(req.link)
	case "power-on":
		return t.PowerOn()
	case "power-off":
		return t.PowerOff()
	case "calibrate":
		return t.Calibrate()
	case "orientation":
		if req.orientation == phy.OrientationNone {
			return fmt.Errorf("missing -orientation")
		}
		return t.SetOrientation(req.orientation)
	case "mode":
		if !req.hasMode {
			return fmt.Errorf("missing -mode")
		}
		return t.SetMode(req.mode, 0)
	case "suspend":
		return t.Suspend()
	case "resume":
		return t.Resume()
	case "status":
		status(w, t)
		return nil
	}
	return fmt.Errorf("unknown op")
}

type orientationer interface {
	Orientation() phy.Orientation
}

func orientation(t phy.Transceiver) phy.Orientation {
	if o, ok := t.(orientationer); ok {
		return o.Orientation()
	}
	return phy.OrientationNone
}

func status(w io.Writer, t phy.Transceiver) {
	fmt.Fprintf(w, "%s: %s, init count %d, orientation %s\n", t.Name(),
		t.State(), t.InitCount(), orientation(t))
	switch x := t.(type) {
	case *phy.USB:
		fmt.Fprintf(w, "\tmode %s\n", x.Mode())
	case *phy.DP:
		o := x.Options()
		fmt.Fprintf(w, "\tlink %d Mb/s x%d\n", o.LinkRate, o.Lanes)
	}
}

func publishStatus(pub *publish.Publisher, t phy.Transceiver) {
	pub.Phy(t.Name(), t.State().String(), t.InitCount(),
		orientation(t).String())
	if d, ok := t.(*phy.DP); ok {
		o := d.Options()
		pub.Link(t.Name(), o.LinkRate, o.Lanes)
	}
}
