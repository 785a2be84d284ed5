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
package util

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-carbon/pkg/asm/assembler"
	"github.com/consensys/go-carbon/pkg/asm/encoder"
	"github.com/consensys/go-carbon/pkg/asm/render"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/google/go-cmp/cmp"
)

// CheckValid checks that a given test program assembles, and that the
// rendered image exactly matches the expected output stored alongside it
// (i.e. "test.b" for "test.asm").
func CheckValid(t *testing.T, test string) {
	var (
		srcname = fmt.Sprintf("%s/%s.asm", TestDir, test)
		outname = fmt.Sprintf("%s/%s.b", TestDir, test)
		builder strings.Builder
	)
	// Enable testing each program in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, srcname)
	//
	image, errs := assembler.Assemble(isa.Default(), srcfile, encoder.DefaultConfig())
	if len(errs) > 0 {
		t.Fatalf("Error %s should have assembled: %s", srcname, errorToString(errs[0]))
	}
	//
	if err := render.WriteText(&builder, image.Items()); err != nil {
		t.Fatal(err)
	}
	//
	expected, err := os.ReadFile(outname)
	if err != nil {
		t.Fatal(err)
	}
	//
	if diff := cmp.Diff(lines(string(expected)), lines(builder.String())); diff != "" {
		t.Errorf("Error %s output mismatch (-expected +actual):\n%s", srcname, diff)
	}
}

func lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
