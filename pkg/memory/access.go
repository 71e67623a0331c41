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
)

// IndexedAccess is the transient handle produced by indexing a memory with an
// address expression.  Used as a value (i.e. resolved as an expression), it
// materialises a fresh read port.  Used as the target of an assignment, it
// captures a write intent for the owning memory to commit later.  The handle
// holds the address already coerced to the memory's address width.
type IndexedAccess struct {
	// Memory this handle indexes into
	memory *Memory
	// Address, coerced to the memory's address width
	address *netlist.Signal
}

// Memory returns the memory this handle indexes into.
func (p *IndexedAccess) Memory() *Memory {
	return p.memory
}

// Address returns the (coerced) address signal of this handle.
func (p *IndexedAccess) Address() *netlist.Signal {
	return p.address
}

// AsSignal resolves this handle as a value, eagerly materialising one read
// port.  Two resolutions of the same handle yield two independent ports.
func (p *IndexedAccess) AsSignal(nl *netlist.Netlist) (*netlist.Signal, error) {
	if p.memory.netlist != nl {
		return nil, fault(ErrProtocol, "memory %q belongs to a different netlist", p.memory.name)
	}
	//
	return p.memory.buildReadPort(p.address), nil
}

// Assign captures an unconditional write of rhs through this handle.  Nothing
// is validated and no node is built until the intent is committed; rhs may be
// any coercible expression, or an EnabledWrite pair supplying a custom enable.
func (p *IndexedAccess) Assign(rhs any) *WriteIntent {
	return &WriteIntent{target: p, rhs: rhs}
}

// AssignGuarded captures a conditional write of rhs through this handle, to be
// arbitrated by the given component at commit time.  As with Assign, capture
// itself validates nothing.
func (p *IndexedAccess) AssignGuarded(arbiter Arbiter, rhs any) *WriteIntent {
	return &WriteIntent{target: p, rhs: rhs, arbiter: arbiter}
}

// ============================================================================

// WriteIntent is the transient, single-use value produced by capturing a write
// through an indexed-access handle.  It must be consumed exactly once by the
// owning memory's Commit; it is constructible only via capture, and a consumed
// intent refuses further use.
type WriteIntent struct {
	// Handle the write was captured through
	target *IndexedAccess
	// Raw right-hand side, inspected only at commit
	rhs any
	// Arbitration component for conditional writes (nil when unconditional)
	arbiter Arbiter
	// Set once the intent has been committed
	consumed bool
}

// IsConditional determines whether or not this intent requires arbitration.
func (p *WriteIntent) IsConditional() bool {
	return p.arbiter != nil
}

// ============================================================================

// EnabledWrite pairs write data with an explicit (one bit) enable, for use as
// the right-hand side of a capture when the implicit always-true enable is not
// wanted.
type EnabledWrite struct {
	// Data to be written
	Data netlist.Expr
	// Enable gating whether the write occurs
	Enable netlist.Expr
}

// NewEnabledWrite constructs an explicit data/enable pair.
func NewEnabledWrite(data netlist.Expr, enable netlist.Expr) EnabledWrite {
	return EnabledWrite{data, enable}
}

// ============================================================================

// Arbiter abstracts the external component which combines the enable of a
// conditional write with the surrounding branch predicates.  Having done so,
// it must invoke the raw write-port builder of the given memory exactly once.
type Arbiter interface {
	// BuildGuardedWrite combines the given enable with the active branch
	// predicates and builds the final write port on ram.
	BuildGuardedWrite(ram *RAM, address *netlist.Signal, data *netlist.Signal,
		enable *netlist.Signal) error
}
