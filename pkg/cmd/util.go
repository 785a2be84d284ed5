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
	"path/filepath"
	"strings"

	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	"github.com/consensys/go-carbon/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Error(err)
		atexit.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Error(err)
		atexit.Exit(2)
	}

	return r
}

// Configure log level based on the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Load the instruction set to use, which is either the built-in set or one
// read from the file given by the --isa flag.
func loadInstructionSet(cmd *cobra.Command) *isa.Table {
	filename := GetString(cmd, "isa")
	//
	if filename == "" {
		return isa.Default()
	}
	//
	table, err := isa.ReadFile(filename)
	if err != nil {
		log.Error(err)
		atexit.Exit(2)
	}
	//
	log.Debugf("loaded instruction set %s from %s", table.Name(), filename)
	//
	return table
}

// Read a source file from disk, or exit if an error arises.
func readSourceFile(filename string) *source.File {
	log.Debugf("reading source file %s", filename)
	//
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		log.Error(err)
		atexit.Exit(3)
	}
	//
	return srcfile
}

// Write a file by first writing a temporary file alongside it, and then
// renaming that into place.  The temporary file is removed on failure, hence a
// failed run never leaves a partially written file behind.
func writeFileAtomically(filename string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer func() {
		// Fails harmlessly once renamed
		_ = os.Remove(tmp.Name())
	}()
	//
	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return err
	} else if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	} else if err = tmp.Close(); err != nil {
		return err
	}
	//
	return os.Rename(tmp.Name(), filename)
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	var (
		hl         = termio.NewHighlighter(int(os.Stdout.Fd()))
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length = max(0, min(line.Length()-lineOffset, span.Length()))
	)
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, hl.Bold(err.Message()))
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent, retaining tabs so the highlight lines up
	fmt.Print(indentOf(line.String(), lineOffset))
	// Print highlight (at least one caret, even for an empty span)
	fmt.Println(hl.Colour(termio.TERM_RED, strings.Repeat("^", max(1, length))))
}

// Construct whitespace matching the first n characters of a given line.
func indentOf(line string, n int) string {
	var builder strings.Builder
	//
	for i, c := range []rune(line) {
		if i >= n {
			break
		} else if c == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}
