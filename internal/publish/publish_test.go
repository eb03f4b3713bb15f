// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package publish

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

type lines []string

func (l *lines) print(args ...interface{}) {
	*l = append(*l, fmt.Sprint(args...))
}

func TestPhy(t *testing.T) {
	var out lines
	p := NewFunc(out.print)
	p.Phy("usb0", "active", 1, "normal")
	want := []string{
		"qmpphy.usb0.state: active",
		"qmpphy.usb0.init.count: 1",
		"qmpphy.usb0.orientation: normal",
	}
	if strings.Join(out, "\n") != strings.Join(want, "\n") {
		t.Errorf("got %q", out)
	}

	out = nil
	p.Phy("usb0", "active", 2, "normal")
	if len(out) != 1 || out[0] != "qmpphy.usb0.init.count: 2" {
		t.Errorf("got %q", out)
	}

	out = nil
	p.Phy("usb0", "active", 2, "normal")
	if len(out) != 0 {
		t.Errorf("unchanged values published: %q", out)
	}
}

func TestDelete(t *testing.T) {
	var out lines
	p := NewFunc(out.print)
	p.Phy("dp0", "idle", 0, "none")
	p.Link("dp0", 2700, 4)
	p.Phy("dp01", "idle", 0, "none")

	out = nil
	p.Delete("dp0")
	sort.Strings(out)
	want := []string{
		"delete: qmpphy.dp0.init.count",
		"delete: qmpphy.dp0.link.lanes",
		"delete: qmpphy.dp0.link.rate",
		"delete: qmpphy.dp0.orientation",
		"delete: qmpphy.dp0.state",
	}
	if strings.Join(out, "\n") != strings.Join(want, "\n") {
		t.Errorf("got %q", out)
	}

	// deleted keys are published again
	out = nil
	p.Phy("dp0", "idle", 0, "none")
	if len(out) != 3 {
		t.Errorf("got %q", out)
	}
	p.Close()
}
