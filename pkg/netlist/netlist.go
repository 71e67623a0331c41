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
	"math/big"
)

// Netlist is the container owning every signal and node of a circuit
// description.  All identifier and name allocation funnels through the
// netlist, such that identifiers are unique within it and nodes accumulate
// monotonically — this core never removes a node.  Construction is assumed
// single-threaded: should concurrent elaboration ever be required, the
// allocation methods below form the single seam to serialise.
type Netlist struct {
	// Nodes registered in this netlist, in registration order
	nodes []*Node
	// Signals allocated in this netlist, in allocation order
	signals []*Signal
	// Names already taken within this netlist
	names map[string]bool
	// Counter for generated temporary names
	tmpCounter uint
	// Counter for memory identifiers
	memCounter uint
}

// New constructs a fresh, empty netlist.
func New() *Netlist {
	return &Netlist{names: make(map[string]bool)}
}

// Nodes returns the nodes registered in this netlist, in registration order.
func (p *Netlist) Nodes() []*Node {
	return p.nodes
}

// Signals returns the signals allocated in this netlist, in allocation order.
func (p *Netlist) Signals() []*Signal {
	return p.signals
}

// AddNode registers a given node in this netlist, returning its allocated
// identifier.
func (p *Netlist) AddNode(node *Node) NodeId {
	id := NewNodeId(uint(len(p.nodes)))
	p.nodes = append(p.nodes, node)
	//
	return id
}

// NextMemoryId allocates the next available memory identifier.
func (p *Netlist) NextMemoryId() MemoryId {
	id := NewMemoryId(p.memCounter)
	p.memCounter++
	//
	return id
}

// NextName turns a requested name into one guaranteed unique within this
// netlist.  An empty hint yields a generated temporary name; a hint which is
// already taken gains a numeric suffix.
func (p *Netlist) NextName(hint string) string {
	name := hint
	//
	for name == "" || p.names[name] {
		name = fmt.Sprintf("tmp%d", p.tmpCounter)
		//
		if hint != "" {
			name = fmt.Sprintf("%s_%d", hint, p.tmpCounter)
		}
		//
		p.tmpCounter++
	}
	//
	p.names[name] = true
	//
	return name
}

// NewSignal allocates a fresh anonymous signal of the given width in this
// netlist.
func (p *Netlist) NewSignal(width uint) *Signal {
	return p.NewNamedSignal("", width)
}

// NewNamedSignal allocates a fresh signal of the given width in this netlist,
// named according to the given hint.
func (p *Netlist) NewNamedSignal(hint string, width uint) *Signal {
	if width == 0 {
		panic("signal width cannot be zero")
	}
	//
	signal := &Signal{
		netlist: p,
		id:      NewSignalId(uint(len(p.signals))),
		name:    p.NextName(hint),
		width:   width,
	}
	//
	p.signals = append(p.signals, signal)
	//
	return signal
}

// NewConst allocates a fresh constant signal of the given width carrying the
// given value, which must be representable in that width.
func (p *Netlist) NewConst(value *big.Int, width uint) (*Signal, error) {
	if width == 0 {
		panic("signal width cannot be zero")
	}
	//
	if value.Sign() < 0 || value.Cmp(widthBound(width)) >= 0 {
		return nil, fmt.Errorf("constant %s not representable in %d bits", value, width)
	}
	//
	signal := p.NewNamedSignal(fmt.Sprintf("const_%s", value), width)
	signal.value = new(big.Int).Set(value)
	//
	return signal, nil
}

// True allocates a one-bit constant signal holding 1, being the implicit
// write enable.
func (p *Netlist) True() *Signal {
	signal, err := p.NewConst(big.NewInt(1), 1)
	// Cannot fail since 1 always fits in one bit.
	if err != nil {
		panic(err)
	}
	//
	return signal
}
