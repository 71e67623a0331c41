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
)

// Source is the data source of a read-only table: either a generator function
// mapping addresses to values, or a static address-indexed table.  The
// variant is fixed at construction and dispatched when resolving.
type Source interface {
	source()
}

// Generator derives a table value from an address on demand, allowing a
// sparse or very large address space which is never materialised.  A
// generator reports its own faults by error; any panic it raises is likewise
// contained during resolution.
type Generator func(address uint64) (*big.Int, error)

func (Generator) source() {}

// Table is a static address-indexed value table.
type Table []*big.Int

func (Table) source() {}

// TableOf constructs a table source from plain unsigned values.
func TableOf(values ...uint64) Table {
	table := make(Table, len(values))
	//
	for i, v := range values {
		table[i] = new(big.Int).SetUint64(v)
	}
	//
	return table
}

// SourceOf adapts an arbitrary value into a table source: sources pass
// through, as do functions and slices of the expected shapes.  Anything else
// is rejected.
func SourceOf(value any) (Source, error) {
	switch v := value.(type) {
	case Generator:
		return v, nil
	case Table:
		return v, nil
	case func(address uint64) (*big.Int, error):
		return Generator(v), nil
	case []*big.Int:
		return Table(v), nil
	case []uint64:
		return TableOf(v...), nil
	default:
		return nil, fault(ErrInvalidSource, "%T is neither a generator nor a table", value)
	}
}

// ============================================================================

// ROM is a read-only table.  Reads are inferred exactly as for a
// random-access memory, whilst every write attempt fails by construction.
// Values are resolved on demand from the data source by downstream consumers
// (simulation, elaboration), never precomputed.
type ROM struct {
	Memory
	// Data source, fixed at construction
	data Source
}

// NewROM constructs a read-only table of the given word and address widths
// against the given netlist, backed by the given source.
func NewROM(nl *netlist.Netlist, bitwidth uint, addrwidth uint, name string,
	data Source) (*ROM, error) {
	if data == nil {
		return nil, fault(ErrInvalidSource, "read-only table requires a data source")
	}
	//
	base, err := newMemory(nl, bitwidth, addrwidth, name)
	//
	if err != nil {
		return nil, err
	}
	//
	rom := &ROM{Memory: base, data: data}
	rom.self = rom
	//
	return rom, nil
}

// Source returns the data source backing this table.
func (p *ROM) Source() Source {
	return p.data
}

// Resolve determines the value this table holds at a given address.  The
// address must lie within the addressable range and the resolved value within
// the representable range of a word; generator faults (errors and panics
// alike) are contained and reported as resolution failures.
func (p *ROM) Resolve(address uint64) (*big.Int, error) {
	var (
		value *big.Int
		err   error
	)
	//
	if new(big.Int).SetUint64(address).Cmp(p.AddressBound()) >= 0 {
		return nil, fault(ErrAddressRange, "table %q has no address %d", p.name, address)
	}
	//
	switch data := p.data.(type) {
	case Generator:
		if value, err = p.generate(data, address); err != nil {
			return nil, err
		}
	case Table:
		if address >= uint64(len(data)) {
			return nil, fault(ErrAddressRange, "table %q index %d out of range", p.name, address)
		}
		//
		value = data[address]
	default:
		return nil, fault(ErrInvalidSource, "table %q: %T is neither a generator nor a table",
			p.name, p.data)
	}
	//
	if value == nil {
		return nil, fault(ErrValueRange, "table %q has no value at address %d", p.name, address)
	}
	//
	if value.Sign() < 0 || value.Cmp(p.Bound()) >= 0 {
		return nil, fault(ErrValueRange, "table %q value at %d does not fit %d bits",
			p.name, address, p.bitwidth)
	}
	//
	return value, nil
}

// generate invokes the generator for a given address, containing any fault it
// raises.  The raw fault is wrapped, never propagated.
func (p *ROM) generate(data Generator, address uint64) (value *big.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fault(ErrResolution, "table %q generator: %v", p.name, r)
		}
	}()
	//
	if value, err = data(address); err != nil {
		return nil, fault(ErrResolution, "table %q: %v", p.name, err)
	}
	//
	return value, nil
}

// Clone produces a structurally identical, port-empty table bound to the
// given target netlist, sharing the same data source.
func (p *ROM) Clone(target *netlist.Netlist) (*ROM, error) {
	return NewROM(target, p.bitwidth, p.addrwidth, p.name, p.data)
}
