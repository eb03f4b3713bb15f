// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package reg_test

import (
	"testing"
	"time"

	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/reg/regtest"
)

func TestApplyOrderAndFence(t *testing.T) {
	s := regtest.New()
	b := reg.Block{Space: s, Base: 0x200}
	b.Apply(reg.Table{
		{Offset: 0x10, Value: 0xa},
		{Offset: 0x04, Value: 0xb},
		{Offset: 0x10, Value: 0xc},
	})
	ops := s.Ops()
	want := []regtest.Op{
		{Write: true, Off: 0x210, Val: 0xa}, {Write: false, Off: 0x210, Val: 0xa},
		{Write: true, Off: 0x204, Val: 0xb}, {Write: false, Off: 0x204, Val: 0xb},
		{Write: true, Off: 0x210, Val: 0xc}, {Write: false, Off: 0x210, Val: 0xc},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %v want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d: got %v want %v", i, ops[i], want[i])
		}
	}
}

func TestApplyLane(t *testing.T) {
	tbl := reg.Table{
		{Offset: 0x0, Value: 1},
		{Offset: 0x4, Value: 2, Lanes: reg.Lane1},
		{Offset: 0x8, Value: 3, Lanes: reg.Lane2},
		{Offset: 0xc, Value: 4, Lanes: reg.AllLanes},
	}
	for lane, want := range map[int][]uint32{
		1: {0x0, 0x4, 0xc},
		2: {0x0, 0x8, 0xc},
	} {
		s := regtest.New()
		reg.Block{Space: s}.ApplyLane(tbl, lane)
		w := s.Writes()
		if len(w) != len(want) {
			t.Fatalf("lane %d: got %v", lane, w)
		}
		for i := range want {
			if w[i].Off != want[i] {
				t.Errorf("lane %d: write %d to %#x, want %#x",
					lane, i, w[i].Off, want[i])
			}
		}
	}
}

func TestApplyLaneRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("lane 3 did not panic")
		}
	}()
	reg.Block{Space: regtest.New()}.ApplyLane(nil, 3)
}

func TestSetClearBits(t *testing.T) {
	s := regtest.New()
	b := reg.Block{Space: s, Base: 0xc00}
	s.Set(0xc08, 0x10)
	b.SetBits(0x8, 0x3)
	if v := s.Get(0xc08); v != 0x13 {
		t.Errorf("set: %#x", v)
	}
	b.ClearBits(0x8, 0x11)
	if v := s.Get(0xc08); v != 0x2 {
		t.Errorf("clear: %#x", v)
	}
	ops := s.Ops()
	if last := ops[len(ops)-1]; last.Write || last.Off != 0xc08 {
		t.Errorf("no read back after clear: %v", ops)
	}
}

func TestPoll(t *testing.T) {
	s := regtest.New()
	b := reg.Block{Space: s}
	n := 0
	s.OnRead(0x174, func(uint32) uint32 {
		n++
		if n < 3 {
			return 1 << 6
		}
		return 0
	})
	err := b.PollClear(0x174, 1<<6, 10*time.Microsecond, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Error("reads:", n)
	}
}

func TestPollTimeout(t *testing.T) {
	s := regtest.New()
	s.Set(0x178, 0)
	b := reg.Block{Space: s}
	start := time.Now()
	err := b.PollSet(0x178, 1, 200*time.Microsecond, 2*time.Millisecond)
	if err != reg.ErrTimeout {
		t.Fatal("unexpected err:", err)
	}
	if time.Since(start) < 2*time.Millisecond {
		t.Error("returned before the timeout")
	}
}
