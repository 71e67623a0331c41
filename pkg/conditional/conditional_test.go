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
package conditional

import (
	"testing"

	"github.com/consensys/go-netlist/pkg/memory"
	"github.com/consensys/go-netlist/pkg/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardedWrite(t *testing.T) {
	nl := netlist.New()
	ram, err := memory.NewRAM(nl, 8, 4, "mem")
	require.NoError(t, err)
	//
	var (
		scope = NewScope(nl)
		pred  = nl.NewNamedSignal("pred", 1)
		data  = nl.NewNamedSignal("data", 8)
	)
	//
	err = scope.When(pred, func() error {
		access, err := ram.At(netlist.Lit(3))
		//
		if err != nil {
			return err
		}
		//
		return ram.Commit(access.AssignGuarded(scope, data))
	})
	require.NoError(t, err)
	// Exactly one write port, gated by pred AND true.
	require.Len(t, ram.WritePorts(), 1)
	enable := ram.WritePorts()[0].Args()[2]
	assert.Equal(t, uint(1), enable.Width())
	assert.False(t, enable.IsConstant())
	// The netlist holds the and node plus the write port.
	var ands int
	//
	for _, node := range nl.Nodes() {
		if node.Op() == netlist.OP_AND {
			ands++
			assert.Same(t, pred, node.Args()[0])
			assert.Same(t, enable, node.Dests()[0])
		}
	}
	//
	assert.Equal(t, 1, ands)
}

func TestNestedGuardsConjoin(t *testing.T) {
	nl := netlist.New()
	ram, err := memory.NewRAM(nl, 8, 4, "mem")
	require.NoError(t, err)
	//
	var (
		scope = NewScope(nl)
		outer = nl.NewNamedSignal("outer", 1)
		inner = nl.NewNamedSignal("inner", 1)
	)
	//
	err = scope.When(outer, func() error {
		return scope.When(inner, func() error {
			assert.Equal(t, uint(2), scope.Depth())
			//
			access, err := ram.At(netlist.Lit(0))
			if err != nil {
				return err
			}
			//
			return ram.Commit(access.AssignGuarded(scope, netlist.Lit(1)))
		})
	})
	require.NoError(t, err)
	// Both predicates must appear in the enable chain.
	var ands int
	//
	for _, node := range nl.Nodes() {
		if node.Op() == netlist.OP_AND {
			ands++
		}
	}
	//
	assert.Equal(t, 2, ands)
	require.Len(t, ram.WritePorts(), 1)
	assert.Equal(t, uint(0), scope.Depth())
}

func TestGuardedWriteOutsideBranch(t *testing.T) {
	nl := netlist.New()
	ram, err := memory.NewRAM(nl, 8, 4, "mem")
	require.NoError(t, err)
	//
	scope := NewScope(nl)
	access, err := ram.At(netlist.Lit(0))
	require.NoError(t, err)
	// The scope has no open branch, hence nothing to arbitrate against.
	err = ram.Commit(access.AssignGuarded(scope, netlist.Lit(1)))
	assert.ErrorIs(t, err, memory.ErrProtocol)
	assert.Empty(t, ram.WritePorts())
}

func TestWidePredicateRejected(t *testing.T) {
	nl := netlist.New()
	scope := NewScope(nl)
	//
	pred := nl.NewNamedSignal("pred", 2)
	err := scope.When(pred, func() error { return nil })
	assert.Error(t, err)
	assert.Equal(t, uint(0), scope.Depth())
}

func TestBranchClosesOnBodyError(t *testing.T) {
	nl := netlist.New()
	scope := NewScope(nl)
	pred := nl.NewNamedSignal("pred", 1)
	//
	err := scope.When(pred, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	// The branch must be popped even on failure.
	assert.Equal(t, uint(0), scope.Depth())
}
