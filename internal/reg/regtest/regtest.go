// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regtest provides a recording register space for tests.
package regtest

import (
	"fmt"
	"sync"
)

type Op struct {
	Write bool
	Off   uint32
	Val   uint32
}

func (op Op) String() string {
	if op.Write {
		return fmt.Sprintf("w %#x=%#x", op.Off, op.Val)
	}
	return fmt.Sprintf("r %#x=%#x", op.Off, op.Val)
}

// Space is an in-memory reg.Space that logs every access.
type Space struct {
	mu    sync.Mutex
	regs  map[uint32]uint32
	hooks map[uint32]func(uint32) uint32
	ops   []Op
}

func New() *Space {
	return &Space{
		regs:  make(map[uint32]uint32),
		hooks: make(map[uint32]func(uint32) uint32),
	}
}

func (s *Space) Read32(off uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.regs[off]
	if f := s.hooks[off]; f != nil {
		v = f(v)
	}
	s.ops = append(s.ops, Op{false, off, v})
	return v
}

func (s *Space) Write32(off uint32, v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[off] = v
	s.ops = append(s.ops, Op{true, off, v})
}

// OnRead filters the value returned by every read of off.
func (s *Space) OnRead(off uint32, f func(stored uint32) uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == nil {
		delete(s.hooks, off)
	} else {
		s.hooks[off] = f
	}
}

// Set stores v at off without logging.
func (s *Space) Set(off, v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[off] = v
}

// Get returns the stored value at off without logging.
func (s *Space) Get(off uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[off]
}

func (s *Space) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Op(nil), s.ops...)
}

func (s *Space) Writes() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	var w []Op
	for _, op := range s.ops {
		if op.Write {
			w = append(w, op)
		}
	}
	return w
}

// WritesTo returns the values written to off in order.
func (s *Space) WritesTo(off uint32) []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var v []uint32
	for _, op := range s.ops {
		if op.Write && op.Off == off {
			v = append(v, op.Val)
		}
	}
	return v
}

// Clear forgets the access log; register contents are kept.
func (s *Space) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = s.ops[:0]
}
