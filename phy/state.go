// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import "strconv"

type State int

const (
	StateIdle State = iota
	StateResourcesAcquired
	StateBlocksProgrammed
	StatePollingReady
	StateActive
	StateDisabling
	StateFailed
)

var stateNames = []string{
	StateIdle:              "idle",
	StateResourcesAcquired: "resources-acquired",
	StateBlocksProgrammed:  "blocks-programmed",
	StatePollingReady:      "polling-ready",
	StateActive:            "active",
	StateDisabling:         "disabling",
	StateFailed:            "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Orientation is the Type-C plug orientation. OrientationNone means
// unknown and never changes the recorded orientation.
type Orientation int

const (
	OrientationNone Orientation = iota
	OrientationNormal
	OrientationReverse
)

func (o Orientation) String() string {
	switch o {
	case OrientationNone:
		return "none"
	case OrientationNormal:
		return "normal"
	case OrientationReverse:
		return "reverse"
	}
	return "orientation(" + strconv.Itoa(int(o)) + ")"
}

// ParseOrientation accepts the names printed by Orientation.String.
func ParseOrientation(s string) (Orientation, error) {
	for _, o := range []Orientation{
		OrientationNone,
		OrientationNormal,
		OrientationReverse,
	} {
		if s == o.String() {
			return o, nil
		}
	}
	return OrientationNone, &ConfigError{"orientation", s}
}

type Mode int

const (
	ModeNone Mode = iota
	ModeUSBHost
	ModeUSBHostSS
	ModeUSBDevice
	ModeUSBDeviceSS
	ModeUSBOTG
	ModeDP
)

var modeNames = []string{
	ModeNone:        "none",
	ModeUSBHost:     "usb-host",
	ModeUSBHostSS:   "usb-host-ss",
	ModeUSBDevice:   "usb-device",
	ModeUSBDeviceSS: "usb-device-ss",
	ModeUSBOTG:      "usb-otg",
	ModeDP:          "dp",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return ModeNone, &ConfigError{"mode", s}
}

// superSpeed modes arm LFPS detection for autonomous wakeup.
func (m Mode) superSpeed() bool {
	return m == ModeUSBHostSS || m == ModeUSBDeviceSS
}
