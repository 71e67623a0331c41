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
package memory

import (
	"github.com/consensys/go-netlist/pkg/netlist"
	log "github.com/sirupsen/logrus"
)

// RAM is a read/write random-access memory.  Reads are inferred eagerly
// through indexed-access handles; writes follow a two-phase protocol, where a
// capture (Assign / AssignGuarded) records the raw right-hand side and a
// subsequent Commit validates it and builds the write port.  Splitting the
// phases lets branch-guarded writes be folded into a single multiplexed
// enable before any node is materialised, so one source-level write yields
// exactly one write port however many mutually exclusive branches enclose it.
//
// A single write statement is assumed to be under the control of at most one
// active conditional scope; several independent writes against the same
// memory remain independent ports.
type RAM struct {
	Memory
	// Write ports built against this memory, in construction order
	writePorts []*netlist.Node
}

// NewRAM constructs a random-access memory of the given word and address
// widths against the given netlist, failing if either width is zero.  An
// empty name yields a generated one, unique within the netlist.
func NewRAM(nl *netlist.Netlist, bitwidth uint, addrwidth uint, name string) (*RAM, error) {
	base, err := newMemory(nl, bitwidth, addrwidth, name)
	//
	if err != nil {
		return nil, err
	}
	//
	ram := &RAM{Memory: base}
	ram.self = ram
	//
	return ram, nil
}

// WritePorts returns the write ports built against this memory so far.
func (p *RAM) WritePorts() []*netlist.Node {
	return p.writePorts
}

// Commit consumes a previously captured write intent, validating it and
// building (or delegating) the final write port.  Anything other than a
// fresh intent captured against this memory is a protocol violation.
func (p *RAM) Commit(v any) error {
	intent, ok := v.(*WriteIntent)
	//
	switch {
	case !ok:
		return fault(ErrProtocol, "memory %q: commit requires a captured write intent, got %T",
			p.name, v)
	case intent.consumed:
		return fault(ErrProtocol, "memory %q: write intent already committed", p.name)
	case intent.target.memory != &p.Memory:
		return fault(ErrProtocol, "memory %q: write intent captured against %q",
			p.name, intent.target.memory.name)
	}
	// The intent is spent regardless of whether the commit succeeds, since a
	// failed description must not be reused.
	intent.consumed = true
	// Re-coerce the captured address, under the same rule as reads.
	address, err := netlist.Coerce(p.netlist, intent.target.address, p.addrwidth, false)
	//
	if err != nil {
		return fault(ErrAddressWidth, "writing %q: %v", p.name, err)
	}
	//
	data, enable, err := p.splitRhs(intent.rhs)
	//
	if err != nil {
		return err
	}
	//
	if intent.IsConditional() {
		// Hand off to the arbitration component, which combines this enable
		// with the surrounding branch predicate and builds the port itself.
		return intent.arbiter.BuildGuardedWrite(p, address, data, enable)
	}
	//
	p.BuildWritePort(address, data, enable)
	//
	return nil
}

// splitRhs separates a captured right-hand side into coerced data and enable
// signals.  An EnabledWrite supplies both; anything else is treated as data
// with the implicit always-true enable.
func (p *RAM) splitRhs(rhs any) (*netlist.Signal, *netlist.Signal, error) {
	var dataExpr, enableExpr netlist.Expr
	//
	if ew, ok := rhs.(EnabledWrite); ok {
		dataExpr, enableExpr = ew.Data, ew.Enable
	} else {
		expr, err := netlist.ExprOf(rhs)
		//
		if err != nil {
			return nil, nil, fault(ErrProtocol, "memory %q: %v", p.name, err)
		}
		//
		dataExpr, enableExpr = expr, p.netlist.True()
	}
	// Enable goes first: a one-bit target either matches or rejects, never
	// extends, so a failed enable leaves the netlist untouched.
	enable, err := netlist.Coerce(p.netlist, enableExpr, 1, false)
	//
	if err != nil || enable.Width() != 1 {
		return nil, nil, fault(ErrEnableWidth, "writing %q: enable must be exactly one bit", p.name)
	}
	//
	data, err := netlist.Coerce(p.netlist, dataExpr, p.bitwidth, false)
	//
	if err != nil {
		return nil, nil, fault(ErrDataWidth, "writing %q: %v", p.name, err)
	}
	//
	if data.Width() != p.bitwidth {
		return nil, nil, fault(ErrDataWidth, "writing %q: %d bit data into %d bit words",
			p.name, data.Width(), p.bitwidth)
	}
	//
	return data, enable, nil
}

// BuildWritePort is the raw write-port constructor: a write node with
// arguments (address, data, enable) and no results, appended to this memory's
// write-port list and the netlist.  Commit calls it directly for
// unconditional writes; for conditional writes it is the callback the
// arbitration component must invoke exactly once, with the combined enable.
// All three signals are assumed already coerced.
func (p *RAM) BuildWritePort(address *netlist.Signal, data *netlist.Signal,
	enable *netlist.Signal) {
	node := netlist.NewWritePort(p.self, address, data, enable)
	//
	p.netlist.AddNode(node)
	p.writePorts = append(p.writePorts, node)
	//
	log.Debugf("memory %q: write port %d at %s", p.name, len(p.writePorts)-1, address.Name())
}

// Clone produces a structurally identical, port-empty memory bound to the
// given target netlist, for use when the enclosing netlist is duplicated or
// transformed.
func (p *RAM) Clone(target *netlist.Netlist) (*RAM, error) {
	return NewRAM(target, p.bitwidth, p.addrwidth, p.name)
}
