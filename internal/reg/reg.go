// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package reg sequences writes to memory mapped PHY registers.
//
// Every write is followed by a read of the same location so that a write
// has reached the device before the next one issues, whatever the ordering
// of the bus in between.
package reg

import (
	"errors"
	"time"

	"github.com/jpillora/backoff"
)

var ErrTimeout = errors.New("timeout")

// Space is a 32 bit register space addressed by byte offset.
type Space interface {
	Read32(off uint32) uint32
	Write32(off uint32, v uint32)
}

// LaneMask selects the lanes a table entry applies to; bit 0 is lane 1.
// The zero mask applies to every lane.
type LaneMask uint8

const (
	Lane1    LaneMask = 1 << 0
	Lane2    LaneMask = 1 << 1
	AllLanes LaneMask = 0xff
)

type Entry struct {
	Offset uint32
	Value  uint32
	Lanes  LaneMask
}

// Table is an ordered init sequence; order encodes dependency between
// analog sub-blocks and must be preserved.
type Table []Entry

func (e *Entry) selects(lane LaneMask) bool {
	return e.Lanes == 0 || e.Lanes&lane != 0
}

// Block is a register sub-block at a live base address.
type Block struct {
	Space
	Base uint32
}

func (b Block) At(off uint32) Block { return Block{b.Space, b.Base + off} }

func (b Block) Read(off uint32) uint32 { return b.Read32(b.Base + off) }

// WriteFence writes v at off and reads it back.
func (b Block) WriteFence(off, v uint32) {
	b.Write32(b.Base+off, v)
	b.Read32(b.Base + off)
}

func (b Block) SetBits(off, bits uint32) {
	b.WriteFence(off, b.Read(off)|bits)
}

func (b Block) ClearBits(off, bits uint32) {
	b.WriteFence(off, b.Read(off)&^bits)
}

// Apply writes every entry of t in order.
func (b Block) Apply(t Table) {
	for i := range t {
		b.WriteFence(t[i].Offset, t[i].Value)
	}
}

// ApplyLane writes the entries of t selected for lane 1 or 2.
func (b Block) ApplyLane(t Table, lane int) {
	if lane < 1 || lane > 2 {
		panic(lane)
	}
	m := LaneMask(1) << uint(lane-1)
	for i := range t {
		if t[i].selects(m) {
			b.WriteFence(t[i].Offset, t[i].Value)
		}
	}
}

// Poll reads off every interval until v&mask == want or timeout expires.
func (b Block) Poll(off, mask, want uint32, interval, timeout time.Duration) error {
	bo := &backoff.Backoff{
		Min:    interval,
		Max:    interval,
		Factor: 1,
		Jitter: false,
	}
	start := time.Now()
	for {
		if b.Read(off)&mask == want {
			return nil
		}
		if time.Since(start) > timeout {
			// one last look; the sleep may have overrun the budget
			if b.Read(off)&mask == want {
				return nil
			}
			return ErrTimeout
		}
		time.Sleep(bo.Duration())
	}
}

// PollSet waits for every bit of mask to be set.
func (b Block) PollSet(off, mask uint32, interval, timeout time.Duration) error {
	return b.Poll(off, mask, mask, interval, timeout)
}

// PollClear waits for every bit of mask to be clear.
func (b Block) PollClear(off, mask uint32, interval, timeout time.Duration) error {
	return b.Poll(off, mask, 0, interval, timeout)
}
