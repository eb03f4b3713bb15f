// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"testing"

	"github.com/platinasystems/qmpphy/internal/chipfile"
	"github.com/platinasystems/qmpphy/internal/metrics"
	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/reg/regtest"
	"github.com/platinasystems/qmpphy/phy"
)

type testMapper struct {
	maps []uint64
}

func (m *testMapper) Map(addr uint64, size int) (reg.Space, error) {
	m.maps = append(m.maps, addr)
	return regtest.New(), nil
}

func TestOpen(t *testing.T) {
	for _, x := range []struct {
		chip string
		dp   bool
	}{
		{"msm8998", false},
		{"qcm2290", false},
		{"qcs615", true},
	} {
		p := &chipfile.Phy{Name: "phy0", Chip: x.chip,
			Window: chipfile.Window{Addr: 0x88e9000, Size: 0x1000}}
		m := &testMapper{}
		tr, err := open(p, m, metrics.New())
		if err != nil {
			t.Fatal(x.chip, err)
		}
		if _, ok := tr.(*phy.DP); ok != x.dp {
			t.Errorf("%s: %T", x.chip, tr)
		}
		if len(m.maps) != 1 || m.maps[0] != 0x88e9000 {
			t.Error(x.chip, "maps:", m.maps)
		}
	}

	p := &chipfile.Phy{Name: "phy1", Chip: "msm8996"}
	if _, err := open(p, &testMapper{}, metrics.New()); err == nil {
		t.Error("unknown chip opened")
	}
}
