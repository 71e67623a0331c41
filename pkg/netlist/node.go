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
package netlist

import (
	"fmt"
	"math"
	"strings"
)

// NodeId captures the notion of a node index.  That is, every node registered
// in a given netlist is allocated an index starting from 0.  The purpose of
// the wrapper is to avoid confusion between uint values and things which are
// expected to identify nodes.
type NodeId struct {
	index uint
}

// NewNodeId constructs a new node ID from a given raw index.
func NewNodeId(index uint) NodeId {
	return NodeId{index}
}

// Unwrap returns the underlying node index.
func (p NodeId) Unwrap() uint {
	return p.index
}

// ============================================================================

// NodeOp captures the operation performed by a given node, such as whether it
// represents a memory read port, a memory write port, or one of the handful of
// combinatorial helpers required by signal coercion and enable arbitration.
type NodeOp struct {
	kind uint8
}

var (
	// OP_READ signals a memory read port (args=address, dests=data).
	OP_READ = NodeOp{uint8(0)}
	// OP_WRITE signals a memory write port (args=address,data,enable; no
	// dests).
	OP_WRITE = NodeOp{uint8(1)}
	// OP_ZEXT signals zero extension of a narrower signal into a wider one.
	OP_ZEXT = NodeOp{uint8(2)}
	// OP_TRUNC signals truncation of a wider signal into a narrower one.
	OP_TRUNC = NodeOp{uint8(3)}
	// OP_AND signals bitwise conjunction, used when combining write enables
	// with branch predicates.
	OP_AND = NodeOp{uint8(4)}
)

// IsPort determines whether or not this operation accesses a memory.
func (p NodeOp) IsPort() bool {
	return p == OP_READ || p == OP_WRITE
}

func (p NodeOp) String() string {
	switch p {
	case OP_READ:
		return "read"
	case OP_WRITE:
		return "write"
	case OP_ZEXT:
		return "zext"
	case OP_TRUNC:
		return "trunc"
	case OP_AND:
		return "and"
	default:
		return "???"
	}
}

// ============================================================================

// MemoryId captures the notion of a memory index.  Every memory constructed
// against a given netlist is allocated an index starting from 0, and port
// nodes refer back to their memory by this index.
type MemoryId struct {
	index uint
}

// NewMemoryId constructs a new memory ID from a given raw index.
func NewMemoryId(index uint) MemoryId {
	return MemoryId{index}
}

// NewUnusedMemoryId constructs something akin to a null reference, used by
// nodes which do not access any memory.
func NewUnusedMemoryId() MemoryId {
	return MemoryId{math.MaxUint}
}

// Unwrap returns the underlying memory index.
func (p MemoryId) Unwrap() uint {
	if p.index == math.MaxUint {
		panic("attempt to unwrap unused memory id")
	}
	//
	return p.index
}

// IsUsed checks whether this corresponds to a valid memory index.
func (p MemoryId) IsUsed() bool {
	return p.index != math.MaxUint
}

// Memory abstracts the element a port node refers back to.  The concrete
// memory types live above this package, hence ports hold them through this
// interface (along with their raw identifier) rather than by concrete type.
type Memory interface {
	// Id returns the netlist-unique identifier of this memory.
	Id() MemoryId
	// Name returns the netlist-unique name of this memory.
	Name() string
	// Bitwidth returns the width (in bits) of every stored word.
	Bitwidth() uint
	// AddressWidth returns the width (in bits) of the address bus.
	AddressWidth() uint
}

// ============================================================================

// Node represents a single operation within a netlist, connecting an ordered
// sequence of argument signals to an ordered sequence of result signals.
// Ports additionally carry the identifier of (and a back-reference to) the
// memory they access; such nodes never own the memory.
type Node struct {
	// Operation performed by this node
	op NodeOp
	// Memory identifier (unused for non-ports)
	memid MemoryId
	// Memory back-reference (nil for non-ports)
	memory Memory
	// Ordered argument signals
	args []*Signal
	// Ordered result signals (empty for write ports)
	dests []*Signal
}

// NewReadPort constructs a read port for the given memory, reading the word at
// addr into data.
func NewReadPort(mem Memory, addr *Signal, data *Signal) *Node {
	return &Node{OP_READ, mem.Id(), mem, []*Signal{addr}, []*Signal{data}}
}

// NewWritePort constructs a write port for the given memory, writing data to
// addr whenever enable holds.  Write ports produce no results.
func NewWritePort(mem Memory, addr *Signal, data *Signal, enable *Signal) *Node {
	return &Node{OP_WRITE, mem.Id(), mem, []*Signal{addr, data, enable}, nil}
}

// NewZeroExtend constructs a node zero-extending the given (narrower) source
// signal into the given (wider) destination signal.
func NewZeroExtend(source *Signal, dest *Signal) *Node {
	return &Node{OP_ZEXT, NewUnusedMemoryId(), nil, []*Signal{source}, []*Signal{dest}}
}

// NewTruncate constructs a node truncating the given (wider) source signal
// into the given (narrower) destination signal.
func NewTruncate(source *Signal, dest *Signal) *Node {
	return &Node{OP_TRUNC, NewUnusedMemoryId(), nil, []*Signal{source}, []*Signal{dest}}
}

// NewAnd constructs a node computing the bitwise conjunction of two signals of
// matching width.
func NewAnd(left *Signal, right *Signal, dest *Signal) *Node {
	return &Node{OP_AND, NewUnusedMemoryId(), nil, []*Signal{left, right}, []*Signal{dest}}
}

// Op returns the operation performed by this node.
func (p *Node) Op() NodeOp {
	return p.op
}

// MemoryId returns the identifier of the memory this port accesses, which is
// unused for non-ports.
func (p *Node) MemoryId() MemoryId {
	return p.memid
}

// Memory returns the memory this port accesses, or nil for non-ports.
func (p *Node) Memory() Memory {
	return p.memory
}

// IsPort determines whether or not this node accesses a memory.
func (p *Node) IsPort() bool {
	return p.op.IsPort()
}

// Args returns the ordered argument signals of this node.
func (p *Node) Args() []*Signal {
	return p.args
}

// Dests returns the ordered result signals of this node, which is empty for
// write ports.
func (p *Node) Dests() []*Signal {
	return p.dests
}

func (p *Node) String() string {
	var builder strings.Builder
	//
	for i, d := range p.dests {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(d.Name())
	}
	//
	if len(p.dests) != 0 {
		builder.WriteString(" = ")
	}
	//
	if p.IsPort() {
		builder.WriteString(fmt.Sprintf("%s[%s](", p.op, p.memory.Name()))
	} else {
		builder.WriteString(fmt.Sprintf("%s(", p.op))
	}
	//
	for i, a := range p.args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(a.Name())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
