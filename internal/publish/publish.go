// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package publish posts transceiver status to the redis hash.
package publish

import (
	"strconv"
	"strings"

	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
)

const Prefix = "qmpphy."

// Publisher prints "qmpphy.NAME.KEY: VALUE" for every value that changed
// since it was last published.
type Publisher struct {
	print func(args ...interface{})
	last  map[string]string
	pub   *publisher.Publisher
}

// New opens the publisher of a ready redis server.
func New() (*Publisher, error) {
	if err := redis.IsReady(); err != nil {
		return nil, err
	}
	pub, err := publisher.New()
	if err != nil {
		return nil, err
	}
	p := NewFunc(func(args ...interface{}) { pub.Print(args...) })
	p.pub = pub
	return p, nil
}

// NewFunc returns a Publisher that prints with f.
func NewFunc(f func(args ...interface{})) *Publisher {
	return &Publisher{
		print: f,
		last:  make(map[string]string),
	}
}

func (p *Publisher) Close() {
	if p.pub != nil {
		p.pub.Close()
		p.pub = nil
	}
}

func (p *Publisher) set(k, v string) {
	if last, found := p.last[k]; found && last == v {
		return
	}
	p.print(k, ": ", v)
	p.last[k] = v
}

// Phy publishes the state, reference count and orientation of a
// transceiver.
func (p *Publisher) Phy(name, state string, initCount int, orientation string) {
	k := Prefix + name + "."
	p.set(k+"state", state)
	p.set(k+"init.count", strconv.Itoa(initCount))
	p.set(k+"orientation", orientation)
}

// Link publishes the configured DP link.
func (p *Publisher) Link(name string, rate uint32, lanes uint8) {
	k := Prefix + name + "."
	p.set(k+"link.rate", strconv.FormatUint(uint64(rate), 10))
	p.set(k+"link.lanes", strconv.Itoa(int(lanes)))
}

// Delete drops every published key of a transceiver.
func (p *Publisher) Delete(name string) {
	prefix := Prefix + name + "."
	for k := range p.last {
		if strings.HasPrefix(k, prefix) {
			p.print("delete: ", k)
			delete(p.last, k)
		}
	}
}
