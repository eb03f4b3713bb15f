// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import (
	"errors"
	"fmt"

	"github.com/platinasystems/qmpphy/internal/reg"
	"github.com/platinasystems/qmpphy/internal/resource"
)

var (
	ErrTimeout      = reg.ErrTimeout
	ErrResource     = resource.ErrAcquire
	ErrConfig       = errors.New("invalid configuration")
	ErrNotSupported = errors.New("not supported")
	ErrNotEnabled   = errors.New("not enabled")
)

// TimeoutError names the status poll that ran out of time.
type TimeoutError struct {
	Phy  string
	Site string
}

func (e *TimeoutError) Error() string {
	return e.Phy + ": " + e.Site + ": " + ErrTimeout.Error()
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// ConfigError reports a parameter with no hardware encoding.
type ConfigError struct {
	Param string
	Value interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Param, e.Value, ErrConfig)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrResource):
		return "resource"
	case errors.Is(err, ErrConfig):
		return "config"
	}
	return "error"
}
