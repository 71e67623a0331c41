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

// SignalId captures the notion of a signal index within a netlist.  That is,
// every signal allocated in a given netlist is assigned an index starting from
// 0.  The purpose of the wrapper is to avoid confusion between uint values and
// things which are expected to identify signals.
type SignalId struct {
	index uint
}

// NewSignalId constructs a new signal ID from a given raw index.
func NewSignalId(index uint) SignalId {
	return SignalId{index}
}

// Unwrap returns the underlying signal index.
func (p SignalId) Unwrap() uint {
	return p.index
}

// Signal represents a fixed-width bit-vector value with stable identity inside
// a given netlist.  Signals are allocated by the owning netlist and never move
// between netlists.  A signal may optionally carry a constant value, in which
// case it is never driven by any node.
type Signal struct {
	// Owning netlist
	netlist *Netlist
	// Unique identifier within the owning netlist
	id SignalId
	// Unique name within the owning netlist
	name string
	// Width (in bits) of this signal
	width uint
	// Constant value carried by this signal (nil for non-constants)
	value *big.Int
}

// Id returns the unique identifier of this signal within its netlist.
func (p *Signal) Id() SignalId {
	return p.id
}

// Name returns the unique name of this signal within its netlist.
func (p *Signal) Name() string {
	return p.name
}

// Width returns the width (in bits) of this signal.
func (p *Signal) Width() uint {
	return p.width
}

// Netlist returns the netlist owning this signal.
func (p *Signal) Netlist() *Netlist {
	return p.netlist
}

// IsConstant determines whether or not this signal carries a constant value.
func (p *Signal) IsConstant() bool {
	return p.value != nil
}

// Value returns the constant value carried by this signal, or nil if it is not
// a constant.
func (p *Signal) Value() *big.Int {
	return p.value
}

// Bound returns the first value which cannot be represented by this signal.
// For example, the bound of an 8bit signal is 256.
func (p *Signal) Bound() *big.Int {
	return widthBound(p.width)
}

// MaxValue returns the largest value expressible in this signal (i.e. Bound() -
// 1).  For example, the max value of an 8bit signal is 255.
func (p *Signal) MaxValue() *big.Int {
	max := p.Bound()
	max.Sub(max, &one)
	//
	return max
}

// AsSignal resolves this signal within a given netlist, thus allowing signals
// to be used directly anywhere an expression is expected.  Resolving a signal
// against a foreign netlist is an error, since signal identity is only
// meaningful within the owning netlist.
func (p *Signal) AsSignal(nl *Netlist) (*Signal, error) {
	if p.netlist != nl {
		return nil, fmt.Errorf("signal %q belongs to a different netlist", p.name)
	}
	//
	return p, nil
}

func (p *Signal) String() string {
	if p.IsConstant() {
		return fmt.Sprintf("%s=%s:u%d", p.name, p.value, p.width)
	}
	//
	return fmt.Sprintf("%s:u%d", p.name, p.width)
}

// ============================================================================

// Expr is anything which can be resolved into a signal within a given netlist.
// Signals resolve to themselves; literals resolve to fresh constants; a memory
// access handle resolves by materialising a read port.  Resolution may mutate
// the netlist (e.g. by registering new nodes) and is therefore not guaranteed
// to be idempotent.
type Expr interface {
	// AsSignal resolves this expression to a signal within the given
	// netlist.
	AsSignal(nl *Netlist) (*Signal, error)
}

// Literal is an integer expression with no inherent width.  When resolved, it
// becomes a constant signal of the smallest width able to hold its value;
// coercion then widens it as required.
type Literal struct {
	value *big.Int
}

// Lit constructs a literal expression from a given unsigned value.
func Lit(value uint64) Literal {
	return Literal{new(big.Int).SetUint64(value)}
}

// LitBig constructs a literal expression from a given (non-negative) big
// integer.
func LitBig(value *big.Int) Literal {
	return Literal{new(big.Int).Set(value)}
}

// AsSignal resolves this literal into a constant signal of minimal width.
func (p Literal) AsSignal(nl *Netlist) (*Signal, error) {
	if p.value == nil || p.value.Sign() < 0 {
		return nil, fmt.Errorf("literal must be a non-negative integer")
	}
	// Determine minimal width, recalling that zero still needs one bit.
	width := max(uint(p.value.BitLen()), 1)
	//
	return nl.NewConst(p.value, width)
}

// ExprOf adapts an arbitrary value into an expression.  Expressions pass
// through unchanged, whilst integers of the various flavours become literals.
// Anything else is rejected.
func ExprOf(value any) (Expr, error) {
	switch v := value.(type) {
	case Expr:
		return v, nil
	case int:
		if v < 0 {
			return nil, fmt.Errorf("literal must be a non-negative integer")
		}
		//
		return Lit(uint64(v)), nil
	case uint:
		return Lit(uint64(v)), nil
	case uint64:
		return Lit(v), nil
	case *big.Int:
		return LitBig(v), nil
	default:
		return nil, fmt.Errorf("cannot use %T as a netlist expression", value)
	}
}

// ============================================================================

var one = *big.NewInt(1)

// widthBound computes 2^width, being the first value not representable in the
// given number of bits.
func widthBound(width uint) *big.Int {
	var (
		bound = big.NewInt(2)
		exp   = big.NewInt(int64(width))
	)
	// Compute 2^n
	return bound.Exp(bound, exp, nil)
}
