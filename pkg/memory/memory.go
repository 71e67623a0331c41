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
	"math/big"

	"github.com/consensys/go-netlist/pkg/netlist"
	log "github.com/sirupsen/logrus"
)

// Memory provides construction, addressing and read-port inference common to
// both random-access memories and read-only tables.  On its own it is
// read-only: any write attempt through the base fails, such that embedding it
// cannot accidentally enable mutation of a table.  A memory is owned by the
// constructing context for the life of its netlist, whilst the port nodes it
// generates refer back to it by identifier without owning it.
type Memory struct {
	// Owning netlist
	netlist *netlist.Netlist
	// Netlist-unique identifier of this memory
	id netlist.MemoryId
	// Netlist-unique name of this memory
	name string
	// Width (in bits) of every stored word
	bitwidth uint
	// Width (in bits) of the address bus
	addrwidth uint
	// Read ports built against this memory, in construction order
	readPorts []*netlist.Node
	// Outermost memory value, as referenced by port nodes
	self netlist.Memory
}

// newMemory validates and constructs the shared portion of a memory.  Nothing
// is allocated in the netlist until validation has passed, hence a failed
// construction leaves no partial state behind.
func newMemory(nl *netlist.Netlist, bitwidth uint, addrwidth uint, name string) (Memory, error) {
	if nl == nil {
		panic("memory requires a netlist")
	}
	//
	if bitwidth == 0 {
		return Memory{}, fault(ErrConfiguration, "bitwidth must be at least 1")
	}
	//
	if addrwidth == 0 {
		return Memory{}, fault(ErrConfiguration, "address width must be at least 1")
	}
	//
	mem := Memory{
		netlist:   nl,
		id:        nl.NextMemoryId(),
		name:      nl.NextName(name),
		bitwidth:  bitwidth,
		addrwidth: addrwidth,
	}
	//
	log.Debugf("memory %q: %d bit words, %d bit addresses", mem.name, bitwidth, addrwidth)
	//
	return mem, nil
}

// Id returns the netlist-unique identifier of this memory.
func (p *Memory) Id() netlist.MemoryId {
	return p.id
}

// Name returns the netlist-unique name of this memory.
func (p *Memory) Name() string {
	return p.name
}

// Bitwidth returns the width (in bits) of every stored word.
func (p *Memory) Bitwidth() uint {
	return p.bitwidth
}

// AddressWidth returns the width (in bits) of the address bus.
func (p *Memory) AddressWidth() uint {
	return p.addrwidth
}

// Netlist returns the netlist owning this memory.
func (p *Memory) Netlist() *netlist.Netlist {
	return p.netlist
}

// ReadPorts returns the read ports built against this memory so far.
func (p *Memory) ReadPorts() []*netlist.Node {
	return p.readPorts
}

// Bound returns the first value which cannot be stored in a word of this
// memory, i.e. 2^bitwidth.
func (p *Memory) Bound() *big.Int {
	return bound(p.bitwidth)
}

// AddressBound returns the first address beyond the addressable range of this
// memory, i.e. 2^addrwidth.
func (p *Memory) AddressBound() *big.Int {
	return bound(p.addrwidth)
}

// At indexes this memory with a given address expression, yielding a handle
// which can later be read from (or, for a random-access memory, written to).
// The address is coerced to the address width here, without truncation — a
// wider address is rejected outright.  No node is built at this point.
func (p *Memory) At(address netlist.Expr) (*IndexedAccess, error) {
	coerced, err := netlist.Coerce(p.netlist, address, p.addrwidth, false)
	//
	if err != nil {
		return nil, fault(ErrAddressWidth, "indexing %q: %v", p.name, err)
	}
	//
	if coerced.Width() > p.addrwidth {
		return nil, fault(ErrAddressWidth, "indexing %q: %d bits exceeds %d bit address",
			p.name, coerced.Width(), p.addrwidth)
	}
	//
	return &IndexedAccess{memory: p, address: coerced}, nil
}

// Commit rejects any write against the memory base.  Random-access memories
// shadow this with the real commit handler; everything else (notably read-only
// tables) inherits the refusal.
func (p *Memory) Commit(any) error {
	return fault(ErrProtocol, "write to read-only memory %q", p.name)
}

// buildReadPort eagerly materialises one read of this memory at the given
// (already coerced) address.  Every call yields a fresh, independent port
// node; identical addresses are deliberately not deduplicated, since how many
// physical ports a target can offer is a later synthesis decision.
func (p *Memory) buildReadPort(address *netlist.Signal) *netlist.Signal {
	data := p.netlist.NewSignal(p.bitwidth)
	node := netlist.NewReadPort(p.self, address, data)
	//
	p.netlist.AddNode(node)
	p.readPorts = append(p.readPorts, node)
	//
	log.Debugf("memory %q: read port %d at %s", p.name, len(p.readPorts)-1, address.Name())
	//
	return data
}

// bound computes 2^width.
func bound(width uint) *big.Int {
	var (
		b = big.NewInt(2)
		e = big.NewInt(int64(width))
	)
	//
	return b.Exp(b, e, nil)
}
