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
package cmd

import (
	"fmt"
	"math"
	"math/big"
	"os"

	"github.com/consensys/go-netlist/pkg/conditional"
	"github.com/consensys/go-netlist/pkg/memory"
	"github.com/consensys/go-netlist/pkg/netlist"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// demoCmd builds a worked example — a small register file plus a sine table —
// and dumps the resulting netlist.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Construct an example netlist and dump it",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		width := GetUint(cmd, "textwidth")
		//
		nl := buildDemoNetlist()
		// Report any structural violations
		for _, err := range netlist.Validate(nl) {
			fmt.Println(err)
		}
		// Dump nodes
		for i, node := range nl.Nodes() {
			fmt.Println(clip(fmt.Sprintf("%4d: %s", i, node), textWidth(width)))
		}
	},
}

// buildDemoNetlist describes a register file exercising plain, enabled and
// branch-guarded writes, along with a generator-backed sine table.
func buildDemoNetlist() *netlist.Netlist {
	nl := netlist.New()
	//
	regfile, err := memory.NewRAM(nl, 32, 5, "regfile")
	exitOnError(err)
	// Read register 1, write it back to register 2.
	src, err := regfile.At(netlist.Lit(1))
	exitOnError(err)
	dst, err := regfile.At(netlist.Lit(2))
	exitOnError(err)
	exitOnError(regfile.Commit(dst.Assign(src)))
	// Write register 3 under an explicit enable.
	we := nl.NewNamedSignal("we", 1)
	dst, err = regfile.At(netlist.Lit(3))
	exitOnError(err)
	exitOnError(regfile.Commit(dst.Assign(memory.NewEnabledWrite(netlist.Lit(42), we))))
	// Write register 4 only when supervisor mode holds.
	scope := conditional.NewScope(nl)
	mode := nl.NewNamedSignal("supervisor", 1)
	//
	err = scope.When(mode, func() error {
		dst, err := regfile.At(netlist.Lit(4))
		//
		if err != nil {
			return err
		}
		//
		return regfile.Commit(dst.AssignGuarded(scope, netlist.Lit(7)))
	})
	exitOnError(err)
	// A quarter-wave sine table, resolved on demand.
	sine, err := memory.NewROM(nl, 8, 6, "sine", memory.Generator(quarterSine))
	exitOnError(err)
	//
	phase := nl.NewNamedSignal("phase", 6)
	sample, err := sine.At(phase)
	exitOnError(err)
	_, err = sample.AsSignal(nl)
	exitOnError(err)
	//
	return nl
}

// quarterSine samples a quarter sine wave over a 6 bit phase, scaled to 8
// bits.
func quarterSine(address uint64) (*big.Int, error) {
	sample := math.Sin(float64(address) / 64 * math.Pi / 2)
	//
	return big.NewInt(int64(math.Round(sample * 255))), nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Uint("textwidth", 130, "Set maximum textwidth to use")
}
