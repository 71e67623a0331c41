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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameAllocation(t *testing.T) {
	nl := New()
	//
	assert.Equal(t, "tmp0", nl.NextName(""))
	assert.Equal(t, "tmp1", nl.NextName(""))
	assert.Equal(t, "x", nl.NextName("x"))
	// Taken names gain a suffix rather than colliding.
	assert.Equal(t, "x_2", nl.NextName("x"))
}

func TestSignalAllocation(t *testing.T) {
	nl := New()
	//
	a := nl.NewNamedSignal("a", 8)
	b := nl.NewSignal(4)
	//
	assert.Equal(t, uint(8), a.Width())
	assert.NotEqual(t, a.Id(), b.Id())
	assert.False(t, a.IsConstant())
	assert.Equal(t, big.NewInt(256), a.Bound())
	assert.Equal(t, big.NewInt(255), a.MaxValue())
	assert.Len(t, nl.Signals(), 2)
}

func TestConstAllocation(t *testing.T) {
	nl := New()
	//
	c, err := nl.NewConst(big.NewInt(5), 3)
	require.NoError(t, err)
	assert.True(t, c.IsConstant())
	assert.Equal(t, big.NewInt(5), c.Value())
	// An over-range constant is rejected.
	_, err = nl.NewConst(big.NewInt(8), 3)
	assert.Error(t, err)
	// As is a negative one.
	_, err = nl.NewConst(big.NewInt(-1), 3)
	assert.Error(t, err)
}

func TestLiteralMinimalWidth(t *testing.T) {
	tests := []struct {
		value uint64
		width uint
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{255, 8},
		{256, 9},
	}
	//
	for _, tt := range tests {
		nl := New()
		//
		signal, err := Lit(tt.value).AsSignal(nl)
		require.NoError(t, err)
		assert.Equal(t, tt.width, signal.Width())
	}
}

func TestCoerceIdentity(t *testing.T) {
	nl := New()
	a := nl.NewSignal(8)
	//
	coerced, err := Coerce(nl, a, 8, false)
	require.NoError(t, err)
	// No adjustment needed, hence the very same signal comes back.
	assert.Same(t, a, coerced)
	assert.Empty(t, nl.Nodes())
}

func TestCoerceWidensViaZext(t *testing.T) {
	nl := New()
	a := nl.NewSignal(4)
	//
	coerced, err := Coerce(nl, a, 8, false)
	require.NoError(t, err)
	assert.Equal(t, uint(8), coerced.Width())
	// Exactly one zext node connecting source to destination.
	require.Len(t, nl.Nodes(), 1)
	node := nl.Nodes()[0]
	assert.Equal(t, OP_ZEXT, node.Op())
	assert.Equal(t, []*Signal{a}, node.Args())
	assert.Equal(t, []*Signal{coerced}, node.Dests())
}

func TestCoerceWidensConstantInPlace(t *testing.T) {
	nl := New()
	//
	coerced, err := Coerce(nl, Lit(3), 8, false)
	require.NoError(t, err)
	assert.Equal(t, uint(8), coerced.Width())
	assert.Equal(t, big.NewInt(3), coerced.Value())
	// Constants widen without nodes.
	assert.Empty(t, nl.Nodes())
}

func TestCoerceRejectsWider(t *testing.T) {
	nl := New()
	a := nl.NewSignal(16)
	//
	_, err := Coerce(nl, a, 8, false)
	assert.Error(t, err)
	assert.Empty(t, nl.Nodes())
}

func TestCoerceTruncates(t *testing.T) {
	nl := New()
	a := nl.NewSignal(16)
	//
	coerced, err := Coerce(nl, a, 8, true)
	require.NoError(t, err)
	assert.Equal(t, uint(8), coerced.Width())
	require.Len(t, nl.Nodes(), 1)
	assert.Equal(t, OP_TRUNC, nl.Nodes()[0].Op())
	// Constant truncation retains low bits, again without a node.
	coerced, err = Coerce(nl, Lit(0x1ff), 8, true)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0xff), coerced.Value())
	assert.Len(t, nl.Nodes(), 1)
}

func TestCoerceRejectsForeignSignal(t *testing.T) {
	nl, other := New(), New()
	a := other.NewSignal(8)
	//
	_, err := Coerce(nl, a, 8, false)
	assert.Error(t, err)
}

func TestExprOf(t *testing.T) {
	nl := New()
	//
	expr, err := ExprOf(7)
	require.NoError(t, err)
	signal, err := expr.AsSignal(nl)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), signal.Value())
	// Negative integers are rejected.
	_, err = ExprOf(-1)
	assert.Error(t, err)
	// As is anything which is not an expression at all.
	_, err = ExprOf("hello")
	assert.Error(t, err)
}

func TestValidateSound(t *testing.T) {
	nl := New()
	a, b := nl.NewSignal(4), nl.NewSignal(8)
	nl.AddNode(NewZeroExtend(a, b))
	//
	assert.Empty(t, Validate(nl))
}

func TestValidateDoubleDrive(t *testing.T) {
	nl := New()
	a, b, c := nl.NewSignal(4), nl.NewSignal(4), nl.NewSignal(4)
	nl.AddNode(NewAnd(a, b, c))
	nl.AddNode(NewAnd(b, a, c))
	//
	errs := Validate(nl)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "driven more than once")
}

func TestValidateDrivenConstant(t *testing.T) {
	nl := New()
	a := nl.NewSignal(4)
	c, err := nl.NewConst(big.NewInt(1), 4)
	require.NoError(t, err)
	nl.AddNode(NewZeroExtend(a, c))
	//
	errs := Validate(nl)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "constant")
}

func TestValidateForeignSignal(t *testing.T) {
	nl, other := New(), New()
	a, b := other.NewSignal(4), nl.NewSignal(4)
	nl.AddNode(NewAnd(a, b, nl.NewSignal(4)))
	//
	errs := Validate(nl)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "foreign")
}
