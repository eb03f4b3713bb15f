// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// qmpphy drives a QMP USB3/DP transceiver described by the board's chip
// file.
//
//	qmpphy [-publish] [-config FILE] [-metrics FILE] [-orientation O]
//		[-mode M] [-rate MBPS] [-lanes N] [-swing S] [-emphasis E]
//		PHY OP...
//
// OPs run in order on one transceiver: enable, disable, configure,
// power-on, power-off, calibrate, orientation, mode, suspend, resume and
// status.
package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinasystems/qmpphy/internal/chipfile"
	"github.com/platinasystems/qmpphy/internal/metrics"
	"github.com/platinasystems/qmpphy/internal/publish"
	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/phy"
)

const usage = `usage: qmpphy [-publish] [-config FILE] [-metrics FILE]
	[-orientation normal|reverse] [-mode MODE] [-rate 1620|2700|5400]
	[-lanes N] [-swing LEVEL] [-emphasis LEVEL] PHY OP...`

func main() {
	if err := Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "qmpphy:", err)
		os.Exit(1)
	}
}

// mapper maps chip file windows from /dev/mem and unmaps them on close.
type mapper []*reg.Mem

func (m *mapper) Map(addr uint64, size int) (reg.Space, error) {
	mem, err := reg.Map(addr, size)
	if err != nil {
		return nil, err
	}
	*m = append(*m, mem)
	return mem, nil
}

func (m *mapper) close() {
	for _, mem := range *m {
		if err := mem.Close(); err != nil {
			log.Print("err", fmt.Sprintf("unmap %#x: ", mem.Addr), err)
		}
	}
	*m = nil
}

func Main(args ...string) error {
	flag, args := flags.New(args, "-publish", "-h", "-help")
	parm, args := parms.New(args, "-config", "-metrics", "-orientation",
		"-mode", "-rate", "-lanes", "-swing", "-emphasis")

	if flag.ByName["-h"] || flag.ByName["-help"] {
		fmt.Println(usage)
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("%s", usage)
	}
	req, err := parseRequest(parm.ByName)
	if err != nil {
		return err
	}

	f, err := chipfile.Read(parm.ByName["-config"])
	if err != nil {
		return err
	}
	p, err := f.Phy(args[0])
	if err != nil {
		return err
	}

	var m mapper
	defer m.close()

	set := metrics.New()
	registry := prometheus.NewRegistry()
	if err = set.Register(registry); err != nil {
		return err
	}

	t, err := open(p, &m, set)
	if err != nil {
		return err
	}

	var pub *publish.Publisher
	if flag.ByName["-publish"] {
		if pub, err = publish.New(); err != nil {
			return err
		}
		defer pub.Close()
	}

	err = run(t, req, args[1:], pub)

	if fn := parm.ByName["-metrics"]; fn != "" {
		if merr := prometheus.WriteToTextfile(fn, registry); merr != nil {
			log.Print("err", fn, ": ", merr)
		}
	}
	return err
}

func open(p *chipfile.Phy, m chipfile.Mapper, set *metrics.Set) (phy.Transceiver, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, phy.WithMetrics(set))
	res, err := p.Resources(m)
	if err != nil {
		return nil, err
	}
	space, err := m.Map(p.Addr, p.Size)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", p.Name, err)
	}
	log.Print("info", p.Name, ": ", p.Chip, " ", cfg.Variant(), " phy at ",
		fmt.Sprintf("%#x", p.Addr))
	return phy.New(cfg, space, 0, res, opts...)
}
