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
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-carbon/pkg/asm/assembler"
	"github.com/consensys/go-carbon/pkg/asm/encoder"
	"github.com/consensys/go-carbon/pkg/asm/render"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("dir", "testdata/asm/valid", "directory of test programs")
	rootCmd.Flags().Bool("check", false, "report stale expected outputs without writing")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen [flags] [name ...]",
	Short: "Test generation utility for go-carbon.",
	Long: `Generate the expected memory image for each valid test program.  Each
program "name.asm" is assembled with the built-in instruction set, and its image
is written (in the text format) to "name.b".  By default, every program in the
test directory is processed.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		check, _ := cmd.Flags().GetBool("check")
		//
		names := args
		if len(names) == 0 {
			names = findTestPrograms(dir)
		}
		//
		stale := 0
		//
		for _, name := range names {
			if !generate(filepath.Join(dir, name), check) {
				stale++
			}
		}
		//
		if stale > 0 {
			log.Errorf("%d expected output(s) out of date", stale)
			os.Exit(1)
		}
		//
		os.Exit(0)
	},
}

// Find the names of all test programs in a given directory.
func findTestPrograms(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.asm"))
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}
	//
	var names []string
	//
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".asm"))
	}
	//
	return names
}

// Generate the expected output for a given test program.  When checking, the
// existing output is compared instead, and false is returned if it differs.
func generate(basename string, check bool) bool {
	srcfile, err := source.ReadFile(basename + ".asm")
	if err != nil {
		log.Error(err)
		os.Exit(3)
	}
	//
	image, errs := assembler.Assemble(isa.Default(), srcfile, encoder.DefaultConfig())
	if len(errs) > 0 {
		for _, e := range errs {
			log.Errorf("%s: %s", srcfile.Filename(), e.Message())
		}
		//
		os.Exit(4)
	}
	//
	var sb strings.Builder
	//
	if err := render.WriteText(&sb, image.Items()); err != nil {
		panic(err)
	}
	//
	filename := basename + ".b"
	//
	if check {
		existing, err := os.ReadFile(filename)
		return err == nil && string(existing) == sb.String()
	}
	// Write the file
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		panic(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%d bytes used)", filename, usedBytes(image))
	//
	return true
}

func usedBytes(image *encoder.Image) uint {
	var n uint
	//
	for page := range isa.NUM_PAGES {
		n += image.Used(page)
	}
	//
	return n
}
