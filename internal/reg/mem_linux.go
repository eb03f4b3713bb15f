// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package reg

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const DevMem = "/dev/mem"

// Mem is a physical register window mapped from /dev/mem.
type Mem struct {
	Addr uint64
	Size int

	f   *os.File
	mem []byte
}

// Map maps size bytes of physical address space at addr. Both must be
// page aligned.
func Map(addr uint64, size int) (*Mem, error) {
	pg := uint64(unix.Getpagesize())
	if addr%pg != 0 || uint64(size)%pg != 0 {
		return nil, fmt.Errorf("%#x+%#x: not page aligned", addr, size)
	}
	f, err := os.OpenFile(DevMem, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(int(f.Fd()), int64(addr), size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %#x: %v", addr, err)
	}
	return &Mem{Addr: addr, Size: size, f: f, mem: mem}, nil
}

func (m *Mem) Close() error {
	var err error
	if m.mem != nil {
		err = unix.Munmap(m.mem)
		m.mem = nil
	}
	if m.f != nil {
		m.f.Close()
		m.f = nil
	}
	return err
}

func (m *Mem) word(off uint32) *uint32 {
	if off&3 != 0 || int(off)+4 > len(m.mem) {
		panic(fmt.Errorf("%#x: bad register offset", off))
	}
	return (*uint32)(unsafe.Pointer(&m.mem[off]))
}

func (m *Mem) Read32(off uint32) uint32 { return atomic.LoadUint32(m.word(off)) }

func (m *Mem) Write32(off uint32, v uint32) { atomic.StoreUint32(m.word(off), v) }
