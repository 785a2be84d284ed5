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
	"bytes"
	"fmt"
	"os"

	"github.com/consensys/go-carbon/pkg/asm/disasm"
	"github.com/consensys/go-carbon/pkg/asm/render"
	"github.com/consensys/go-carbon/pkg/isa"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] file.b",
	Short: "disassemble a memory image.",
	Long: `Disassemble a memory image (as produced by the assemble command) back
into instructions.  Trailing zero bytes on each page are treated as padding.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			isaTable = loadInstructionSet(cmd)
			format   = GetString(cmd, "format")
			data     []byte
		)
		//
		contents, err := os.ReadFile(args[0])
		if err != nil {
			log.Error(err)
			atexit.Exit(3)
		}
		//
		switch format {
		case TEXT_FORMAT:
			data, err = render.ReadText(bytes.NewReader(contents))
		case BINARY_FORMAT:
			data = contents
		default:
			log.Errorf("unknown input format \"%s\"", format)
			atexit.Exit(2)
		}
		//
		if err != nil {
			log.Errorf("%s: %s", args[0], err)
			atexit.Exit(3)
		}
		//
		log.Debugf("read %d bytes from %s", len(data), args[0])
		//
		lines, err := disasm.Decode(isaTable, data)
		if err != nil {
			log.Errorf("%s: %s", args[0], err)
			atexit.Exit(4)
		}
		//
		printListing(lines)
	},
}

func printListing(lines []disasm.Line) {
	var page = isa.NUM_PAGES
	//
	for _, line := range lines {
		if p := line.Address / isa.PAGE_SIZE; p != page {
			fmt.Printf("%s %d\n", render.PAGE_HEADER, p)
			page = p
		}
		//
		fmt.Println(line.String())
	}
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().String("format", TEXT_FORMAT, "input format (text or bin)")
}
