// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilSet(t *testing.T) {
	var s *Set
	s.Enabled("usb0", "ok")
	s.TimedOut("usb0", "pcs status")
	s.Calibrated("dp0")
	s.Flipped("usb0")
	s.SetInitCount("usb0", 1)
}

func TestCounts(t *testing.T) {
	s := New()
	r := prometheus.NewRegistry()
	if err := s.Register(r); err != nil {
		t.Fatal(err)
	}
	s.Enabled("usb0", "ok")
	s.Enabled("usb0", "ok")
	s.Enabled("usb0", "timeout")
	s.TimedOut("usb0", "pcs status")
	s.Calibrated("dp0")
	s.SetInitCount("usb0", 1)

	if v := testutil.ToFloat64(s.Enables.WithLabelValues("usb0", "ok")); v != 2 {
		t.Error("ok enables:", v)
	}
	if v := testutil.ToFloat64(s.Timeouts.WithLabelValues("usb0", "pcs status")); v != 1 {
		t.Error("timeouts:", v)
	}
	if v := testutil.ToFloat64(s.InitCount.WithLabelValues("usb0")); v != 1 {
		t.Error("init count:", v)
	}
	if err := s.Register(r); err == nil {
		t.Error("registered twice")
	}
}
