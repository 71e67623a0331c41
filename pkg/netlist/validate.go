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

	"github.com/bits-and-blooms/bitset"
)

// Validate performs a structural sanity check over a given netlist, returning
// every violation found (rather than stopping at the first).  Specifically:
// every signal must be driven by at most one node result; constants must never
// be driven; and every signal connected to a node must actually belong to this
// netlist.  A nil or empty result indicates a structurally sound netlist.
func Validate(nl *Netlist) []error {
	var (
		errs   []error
		driven = bitset.New(uint(len(nl.Signals())))
	)
	//
	for nid, node := range nl.Nodes() {
		for _, arg := range node.Args() {
			if err := checkMembership(nl, node, arg); err != nil {
				errs = append(errs, err)
			}
		}
		//
		for _, dest := range node.Dests() {
			if err := checkMembership(nl, node, dest); err != nil {
				errs = append(errs, err)
				continue
			}
			//
			index := dest.Id().Unwrap()
			//
			switch {
			case dest.IsConstant():
				errs = append(errs, fmt.Errorf(
					"node %d (%s) drives constant signal %q", nid, node.Op(), dest.Name()))
			case driven.Test(index):
				errs = append(errs, fmt.Errorf(
					"signal %q driven more than once", dest.Name()))
			default:
				driven.Set(index)
			}
		}
	}
	//
	return errs
}

// checkMembership confirms a signal connected to a node was allocated by the
// netlist under validation.
func checkMembership(nl *Netlist, node *Node, signal *Signal) error {
	if signal.Netlist() != nl {
		return fmt.Errorf("node %s connects foreign signal %q", node.Op(), signal.Name())
	}
	//
	return nil
}
