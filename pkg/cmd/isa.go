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
	"strings"

	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var isaCmd = &cobra.Command{
	Use:   "isa",
	Short: "print the instruction set.",
	Long:  `Print the mnemonics and condition keywords of the instruction set in use, along with their encodings.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		isaTable := loadInstructionSet(cmd)
		//
		fmt.Println(renderOpcodes(isaTable))
		fmt.Println()
		fmt.Println(renderConditions(isaTable))
	},
}

func renderOpcodes(isaTable *isa.Table) string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Instructions (%s)", isaTable.Name()))
	tw.AppendHeader(table.Row{"Mnemonic", "Encoding", "Operands", "Bytes"})
	//
	for _, op := range isaTable.Opcodes() {
		tw.AppendRow(table.Row{op.Mnemonic, op.String(), op.Shape.String(), op.Size()})
	}
	//
	return tw.Render()
}

func renderConditions(isaTable *isa.Table) string {
	tw := table.NewWriter()
	tw.SetTitle("Conditions")
	tw.AppendHeader(table.Row{"Condition", "Code", "Aliases"})
	//
	for _, c := range isaTable.Conditions() {
		tw.AppendRow(table.Row{c.Name, fmt.Sprintf("%03b", c.Code), strings.Join(c.Aliases, " ")})
	}
	//
	return tw.Render()
}

func init() {
	rootCmd.AddCommand(isaCmd)
}
