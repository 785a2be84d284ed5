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
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/consensys/go-carbon/pkg/asm/encoder"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/assert"
	"github.com/consensys/go-carbon/pkg/util/source"
)

func Test_IndentOf_01(t *testing.T) {
	assert.Equal(t, "    ", indentOf("ADD r9", 4))
	assert.Equal(t, "\t    ", indentOf("\tADD r9", 5))
	assert.Equal(t, "", indentOf("ADD", 0))
	assert.Equal(t, "   ", indentOf("ADD", 10))
}

func Test_RenderOpcodes_01(t *testing.T) {
	text := renderOpcodes(isa.Default())
	//
	assert.True(t, strings.Contains(text, "00001xxx"))
	assert.True(t, strings.Contains(text, "11111000"))
	assert.True(t, strings.Contains(text, "branch"))
}

func Test_RenderConditions_01(t *testing.T) {
	text := renderConditions(isa.Default())
	//
	assert.True(t, strings.Contains(text, "NCOUT"))
	assert.True(t, strings.Contains(text, "!COUT LTEQ"))
	assert.True(t, strings.Contains(text, "111"))
}

// ============================================================================
// Output files
// ============================================================================

func Test_AssembleToFile_01(t *testing.T) {
	// Undefined label produces no output
	dir := t.TempDir()
	errs := checkAssembleFails(t, dir, "HLT\nBRC ZR [missing]")
	//
	assert.Equal(t, "unknown label \"missing\"", errs[0].Message())
	checkDirectory(t, dir)
}

func Test_AssembleToFile_02(t *testing.T) {
	// Existing output is left untouched on failure
	dir := t.TempDir()
	output := filepath.Join(dir, "out.b")
	//
	if err := os.WriteFile(output, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	//
	checkAssembleFails(t, dir, ">0 0 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17 18 19 20 21 22 23 24 25 26 27 28 29 30 31 32")
	checkDirectory(t, dir, "out.b")
	//
	contents, err := os.ReadFile(output)
	assert.Equal(t, nil, err)
	assert.Equal(t, "previous", string(contents))
}

func Test_AssembleToFile_03(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.b")
	srcfile := source.NewSourceFile("test.asm", []byte("HLT # stop"))
	//
	errs, err := assembleToFile(isa.Default(), srcfile, output, TEXT_FORMAT, encoder.DefaultConfig())
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, nil, err)
	checkDirectory(t, dir, "out.b")
	//
	contents, err := os.ReadFile(output)
	assert.Equal(t, nil, err)
	assert.True(t, strings.HasPrefix(string(contents), "// PAGE 0\n11111000 # HLT # stop\n00000000\n"))
}

func Test_AssembleToFile_04(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.bin")
	srcfile := source.NewSourceFile("test.asm", []byte(">1 ADD r1"))
	//
	errs, err := assembleToFile(isa.Default(), srcfile, output, BINARY_FORMAT, encoder.DefaultConfig())
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, nil, err)
	//
	contents, err := os.ReadFile(output)
	assert.Equal(t, nil, err)
	assert.Equal(t, isa.MEMORY_SIZE, len(contents))
	assert.Equal(t, 0b00001001, contents[isa.PAGE_SIZE])
}

func Test_WriteFileAtomically_01(t *testing.T) {
	var (
		dir      = t.TempDir()
		expected = errors.New("disk full")
	)
	//
	err := writeFileAtomically(filepath.Join(dir, "out.b"), func(f *os.File) error {
		if _, err := f.WriteString("partial"); err != nil {
			return err
		}
		//
		return expected
	})
	//
	assert.Equal(t, expected, err)
	checkDirectory(t, dir)
}

func checkAssembleFails(t *testing.T, dir string, input string) []source.SyntaxError {
	srcfile := source.NewSourceFile("test.asm", []byte(input))
	output := filepath.Join(dir, "out.b")
	//
	errs, err := assembleToFile(isa.Default(), srcfile, output, TEXT_FORMAT, encoder.DefaultConfig())
	//
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(errs))
	//
	return errs
}

// Check a directory contains exactly the given files (and, in particular, no
// leftover temporary files).
func checkDirectory(t *testing.T, dir string, expected ...string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	//
	var names []string
	//
	for _, e := range entries {
		names = append(names, e.Name())
	}
	//
	slices.Sort(names)
	//
	if !slices.Equal(expected, names) {
		t.Errorf("expected files %v, found %v", expected, names)
	}
}
