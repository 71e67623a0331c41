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

// Coerce resolves a given expression and adjusts it to the given target width.
// Signals already at the target width pass through untouched.  Narrower
// signals are always widened by zero extension; constants widen in place
// (i.e. without a node), whilst everything else gains a zext node.  Wider
// signals are rejected unless truncation was explicitly requested, in which
// case low bits are retained.  Hence, with truncating unset, a successful
// coercion never loses information.
func Coerce(nl *Netlist, expr Expr, width uint, truncating bool) (*Signal, error) {
	if width == 0 {
		panic("cannot coerce to zero width")
	}
	//
	signal, err := expr.AsSignal(nl)
	//
	if err != nil {
		return nil, err
	}
	//
	switch {
	case signal.Width() == width:
		return signal, nil
	case signal.Width() < width:
		return widen(nl, signal, width), nil
	case truncating:
		return truncate(nl, signal, width), nil
	default:
		return nil, fmt.Errorf("signal %q has %d bits but at most %d permitted",
			signal.Name(), signal.Width(), width)
	}
}

// widen zero-extends a given signal upto the target width.
func widen(nl *Netlist, signal *Signal, width uint) *Signal {
	if signal.IsConstant() {
		// Constants widen without a node, since their value is unchanged.
		wider, err := nl.NewConst(signal.Value(), width)
		// Cannot fail as the value already fit a narrower signal.
		if err != nil {
			panic(err)
		}
		//
		return wider
	}
	//
	dest := nl.NewSignal(width)
	nl.AddNode(NewZeroExtend(signal, dest))
	//
	return dest
}

// truncate cuts a given signal down to the target width, retaining low bits.
func truncate(nl *Netlist, signal *Signal, width uint) *Signal {
	if signal.IsConstant() {
		value := new(big.Int).Mod(signal.Value(), widthBound(width))
		//
		narrower, err := nl.NewConst(value, width)
		// Cannot fail since the value was reduced modulo the bound.
		if err != nil {
			panic(err)
		}
		//
		return narrower
	}
	//
	dest := nl.NewSignal(width)
	nl.AddNode(NewTruncate(signal, dest))
	//
	return dest
}
