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
	"os"

	"github.com/consensys/go-carbon/pkg/asm/assembler"
	"github.com/consensys/go-carbon/pkg/asm/encoder"
	"github.com/consensys/go-carbon/pkg/asm/render"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// TEXT_FORMAT is the human readable output format, consisting of one line of
// binary digits per byte with a header for each page.
const TEXT_FORMAT = "text"

// BINARY_FORMAT is the raw output format, consisting of one byte per address.
const BINARY_FORMAT = "bin"

var assembleCmd = &cobra.Command{
	Use:   "assemble [flags] file.asm",
	Short: "assemble a source file into a memory image.",
	Long: `Assemble a given source file into a memory image of 32 pages, each of
32 bytes.  The image is written either in the text format (one line of binary
digits per byte, along with any annotations) or as raw bytes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			output  = GetString(cmd, "output")
			format  = GetString(cmd, "format")
			symbols = GetFlag(cmd, "symbols")
			config  = encoder.DefaultConfig()
		)
		//
		config.Mnemonics = !GetFlag(cmd, "no-mnemonics")
		//
		runAssemble(cmd, args[0], output, format, symbols, config)
	},
}

// Assemble a given source file and write the resulting image to a given output
// file, exiting on failure.
func runAssemble(cmd *cobra.Command, filename string, output string, format string, symbols bool,
	config encoder.Config) {
	//
	if format != TEXT_FORMAT && format != BINARY_FORMAT {
		log.Errorf("unknown output format \"%s\"", format)
		atexit.Exit(2)
	}
	//
	isaTable := loadInstructionSet(cmd)
	srcfile := readSourceFile(filename)
	//
	errs, err := assembleToFile(isaTable, srcfile, output, format, config)
	// Check for errors
	if len(errs) != 0 {
		// Report errors
		for _, err := range errs {
			printSyntaxError(&err)
		}
		// Fail
		atexit.Exit(4)
	} else if err != nil {
		log.Error(err)
		atexit.Exit(3)
	}
	//
	if symbols {
		printSymbols(isaTable, srcfile)
	}
	//
	log.Debugf("wrote %s image to %s", format, output)
}

// Assemble a source file and write the resulting image to a given output file.
// Nothing is written (and any existing output is left untouched) if assembly
// fails.
func assembleToFile(isaTable *isa.Table, srcfile *source.File, output string, format string,
	config encoder.Config) ([]source.SyntaxError, error) {
	//
	image, errs := assembler.Assemble(isaTable, srcfile, config)
	if len(errs) > 0 {
		return errs, nil
	}
	//
	return nil, writeFileAtomically(output, func(f *os.File) error {
		return writeImage(f, format, image)
	})
}

func writeImage(f *os.File, format string, image *encoder.Image) error {
	if format == BINARY_FORMAT {
		return render.WriteBinary(f, image)
	}
	//
	return render.WriteText(f, image.Items())
}

// Print the address of every label declared in a given source file.  This can
// only be called on a file which is known to assemble.
func printSymbols(isaTable *isa.Table, srcfile *source.File) {
	program, _ := assembler.Parse(isaTable, srcfile)
	symbols, _ := assembler.AssignAddresses(program)
	//
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Labels (%d)", symbols.Len()))
	tw.AppendHeader(table.Row{"Label", "Address", "Page", "Offset"})
	//
	for _, label := range symbols.Labels() {
		tw.AppendRow(table.Row{label.Name, label.Address, label.Address / isa.PAGE_SIZE,
			label.Address % isa.PAGE_SIZE})
	}
	//
	fmt.Println(tw.Render())
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("output", "o", "out.b", "file to write memory image to")
	assembleCmd.Flags().String("format", TEXT_FORMAT, "output format (text or bin)")
	assembleCmd.Flags().Bool("no-mnemonics", false, "do not annotate instructions with their mnemonics")
	assembleCmd.Flags().Bool("symbols", false, "print the address of every label")
}
