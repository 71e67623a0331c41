// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package conditional provides the arbitration component through which
// branch-guarded memory writes are routed.  A scope tracks the predicates of
// the conditional branches currently being described; when a guarded write
// commits, the scope folds those predicates into the write enable and then
// builds the single final write port.
package conditional

import (
	"fmt"

	"github.com/consensys/go-netlist/pkg/memory"
	"github.com/consensys/go-netlist/pkg/netlist"
	log "github.com/sirupsen/logrus"
)

// Scope tracks the active branch predicates of a circuit description.  It is
// an explicit handle rather than ambient state: writes captured under it name
// it directly, and nesting When calls forms a predicate conjunction.  It
// implements memory.Arbiter.
//
// A single write statement is assumed to be governed by at most one scope;
// sibling conditional writes against the same memory remain independent
// ports.
type Scope struct {
	// Netlist the guarded writes are built against
	netlist *netlist.Netlist
	// Predicates of the branches currently open, outermost first
	predicates []*netlist.Signal
}

// NewScope constructs an arbitration scope bound to the given netlist.
func NewScope(nl *netlist.Netlist) *Scope {
	return &Scope{netlist: nl}
}

// Depth returns the number of branches currently open.
func (p *Scope) Depth() uint {
	return uint(len(p.predicates))
}

// When opens a branch guarded by the given (one bit) predicate, runs the body
// describing that branch, and closes the branch again.  Guarded writes
// committed inside the body have their enables combined with this predicate —
// and with those of any enclosing branches.
func (p *Scope) When(predicate netlist.Expr, body func() error) error {
	signal, err := netlist.Coerce(p.netlist, predicate, 1, false)
	//
	if err != nil {
		return fmt.Errorf("branch predicate must be one bit: %w", err)
	}
	//
	p.predicates = append(p.predicates, signal)
	defer func() {
		p.predicates = p.predicates[:len(p.predicates)-1]
	}()
	//
	return body()
}

// BuildGuardedWrite receives the validated pieces of a conditional write from
// the memory core, conjoins the enable with every open branch predicate, and
// invokes the raw write-port builder exactly once.  A guarded write with no
// branch open is a protocol violation.
func (p *Scope) BuildGuardedWrite(ram *memory.RAM, address *netlist.Signal,
	data *netlist.Signal, enable *netlist.Signal) error {
	if len(p.predicates) == 0 {
		return fmt.Errorf("%w: conditional write to %q outside any branch",
			memory.ErrProtocol, ram.Name())
	}
	//
	combined := enable
	//
	for _, predicate := range p.predicates {
		dest := p.netlist.NewSignal(1)
		p.netlist.AddNode(netlist.NewAnd(predicate, combined, dest))
		combined = dest
	}
	//
	log.Debugf("memory %q: guarded write under %d predicate(s)", ram.Name(), len(p.predicates))
	//
	ram.BuildWritePort(address, data, combined)
	//
	return nil
}
