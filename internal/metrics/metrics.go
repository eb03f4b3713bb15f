// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package metrics counts transceiver lifecycle events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Set is a group of collectors labelled by PHY name. A nil *Set counts
// nothing.
type Set struct {
	Enables      *prometheus.CounterVec
	Timeouts     *prometheus.CounterVec
	Calibrations *prometheus.CounterVec
	Flips        *prometheus.CounterVec
	InitCount    *prometheus.GaugeVec
}

func New() *Set {
	return &Set{
		Enables: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmpphy_enables_total",
				Help: "Number of enable attempts by result",
			},
			[]string{"phy", "result"},
		),
		Timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmpphy_poll_timeouts_total",
				Help: "Number of status polls that ran out of time",
			},
			[]string{"phy", "site"},
		),
		Calibrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmpphy_calibrations_total",
				Help: "Number of aux calibration steps",
			},
			[]string{"phy"},
		),
		Flips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmpphy_orientation_flips_total",
				Help: "Number of link rebuilds caused by cable orientation changes",
			},
			[]string{"phy"},
		),
		InitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qmpphy_init_count",
				Help: "Current enable reference count",
			},
			[]string{"phy"},
		),
	}
}

func (s *Set) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		s.Enables,
		s.Timeouts,
		s.Calibrations,
		s.Flips,
		s.InitCount,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) Enabled(phy, result string) {
	if s != nil {
		s.Enables.WithLabelValues(phy, result).Inc()
	}
}

func (s *Set) TimedOut(phy, site string) {
	if s != nil {
		s.Timeouts.WithLabelValues(phy, site).Inc()
	}
}

func (s *Set) Calibrated(phy string) {
	if s != nil {
		s.Calibrations.WithLabelValues(phy).Inc()
	}
}

func (s *Set) Flipped(phy string) {
	if s != nil {
		s.Flips.WithLabelValues(phy).Inc()
	}
}

func (s *Set) SetInitCount(phy string, n int) {
	if s != nil {
		s.InitCount.WithLabelValues(phy).Set(float64(n))
	}
}
