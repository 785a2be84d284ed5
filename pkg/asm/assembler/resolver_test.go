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
package assembler

import (
	"strings"
	"testing"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/assert"
	"github.com/consensys/go-carbon/pkg/util/source"
	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func Test_Resolve_Forward_01(t *testing.T) {
	checkResolve(t, "BRC ZR [end]\nHLT\n.end\nINC",
		insn("BRC", cond("ZR"), ast.LiteralTarget(3)),
		insn("HLT"),
		insn("INC"))
}

func Test_Resolve_Backward_01(t *testing.T) {
	checkResolve(t, "INC\n.top\nINC\nBRC ZR [top]",
		insn("INC"),
		insn("INC"),
		insn("BRC", cond("ZR"), ast.LiteralTarget(1)))
}

func Test_Resolve_Symmetry_01(t *testing.T) {
	// Forward and backward references to the same label agree
	checkResolve(t, "BRC ZR [mid]\n.mid\nBRC NZR [mid]",
		insn("BRC", cond("ZR"), ast.LiteralTarget(2)),
		insn("BRC", cond("NZR"), ast.LiteralTarget(2)))
}

func Test_Resolve_Addresses_01(t *testing.T) {
	symbols := checkSymbols(t, "# c\n.a 1 .b [a] .c ADD r1 .d BRC ZR 0 .e",
		Label{"a", 0}, Label{"b", 1}, Label{"c", 2}, Label{"d", 3}, Label{"e", 5})
	//
	assert.Equal(t, 5, symbols.Len())
}

func Test_Resolve_Addresses_02(t *testing.T) {
	// Page directives reset the address
	checkSymbols(t, "HLT .a >2 .b HLT .c >1 .d",
		Label{"a", 1}, Label{"d", 32}, Label{"b", 64}, Label{"c", 65})
}

func Test_Resolve_RawByte_01(t *testing.T) {
	checkResolve(t, ">2 .x HLT [x]",
		&ast.PageDirective{Page: 2},
		insn("HLT"),
		&ast.RawByte{Value: 64})
}

func Test_Resolve_RawByte_02(t *testing.T) {
	// Largest address which fits in a byte
	var expected = []ast.Statement{&ast.PageDirective{Page: 7}}
	//
	for range 31 {
		expected = append(expected, &ast.RawByte{Value: 0})
	}
	//
	expected = append(expected, &ast.RawByte{Value: 255})
	//
	checkResolve(t, ">7 "+strings.Repeat("0 ", 31)+".x [x]", expected...)
}

func Test_Resolve_CrossPage_01(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	// Target keeps only its offset within page 1
	checkResolve(t, "BRC ZR [far]\n>1\nINC\n.far HLT",
		insn("BRC", cond("ZR"), ast.LiteralTarget(33)),
		&ast.PageDirective{Page: 1},
		insn("INC"),
		insn("HLT"))
	//
	assert.Equal(t, 1, len(hook.AllEntries()))
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.True(t, strings.Contains(hook.LastEntry().Message, "label far on page 1"))
}

func Test_Resolve_CrossPage_02(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	//
	checkResolve(t, ">1 BRC ZR [near] .near HLT",
		&ast.PageDirective{Page: 1},
		insn("BRC", cond("ZR"), ast.LiteralTarget(34)),
		insn("HLT"))
	//
	assert.Equal(t, 0, len(hook.AllEntries()))
}

func Test_Resolve_Comments_01(t *testing.T) {
	checkResolve(t, ".a # here\nBRC ZR [a]",
		&ast.Comment{Text: "# here"},
		insn("BRC", cond("ZR"), ast.LiteralTarget(0)))
}

func Test_Resolve_Immutable_01(t *testing.T) {
	srcfile := source.NewSourceFile("test.asm", []byte("BRC ZR [x] .x"))
	program, errs := Parse(isa.Default(), srcfile)
	assert.Equal(t, 0, len(errs))
	//
	_, _, errs = Resolve(program)
	assert.Equal(t, 0, len(errs))
	// Original program untouched
	target := program.Statements[0].(*ast.Instruction).Operands[1].(*ast.JumpTarget)
	assert.False(t, target.Resolved)
	assert.Equal(t, "x", target.Label)
}

// ============================================================================
// Errors
// ============================================================================

func Test_Resolve_Invalid_01(t *testing.T) {
	checkResolveError(t, ".a HLT .a", 7, 9, "label \"a\" already declared")
}

func Test_Resolve_Invalid_02(t *testing.T) {
	checkResolveError(t, "BRC ZR [nope]", 7, 13, "unknown label \"nope\"")
}

func Test_Resolve_Invalid_03(t *testing.T) {
	checkResolveError(t, "HLT\n[nope]", 4, 10, "unknown label \"nope\"")
}

func Test_Resolve_Invalid_04(t *testing.T) {
	// Labels are case sensitive
	checkResolveError(t, ".Loop BRC ZR [loop]", 13, 19, "unknown label \"loop\"")
}

func Test_Resolve_Invalid_05(t *testing.T) {
	// Standalone references must fit in a byte
	checkResolveError(t, ">9 .far [far]", 8, 13, "label \"far\" address 288 out of range (max 255)")
}

func Test_Resolve_Invalid_06(t *testing.T) {
	// A label after a full final page lies outside memory
	input := ">31 " + strings.Repeat("0 ", 32) + ".end"
	checkResolveError(t, input, 68, 72, "label \"end\" address 1024 out of range (max 1023)")
}

func Test_Resolve_Invalid_07(t *testing.T) {
	input := ">31 " + strings.Repeat("0 ", 32) + ".end >0 BRC ZR [end]"
	checkResolveError(t, input, 68, 72, "label \"end\" address 1024 out of range (max 1023)")
}

// ============================================================================
// Helpers
// ============================================================================

func checkResolve(t *testing.T, input string, expected ...ast.Statement) {
	program := parse(t, input)
	resolved, _, errs := Resolve(program)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	if diff := cmp.Diff(expected, resolved.Statements); diff != "" {
		t.Errorf("statements mismatch (-expected +actual):\n%s", diff)
	}
	// Resolved programs are always valid
	assert.Equal(t, 0, len(Validate(resolved)))
}

func checkSymbols(t *testing.T, input string, expected ...Label) SymbolTable {
	symbols, errs := AssignAddresses(parse(t, input))
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	if diff := cmp.Diff(expected, symbols.Labels()); diff != "" {
		t.Errorf("labels mismatch (-expected +actual):\n%s", diff)
	}
	//
	return symbols
}

func checkResolveError(t *testing.T, input string, start, end int, msg string) {
	_, _, errs := Resolve(parse(t, input))
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	//
	assert.Equal(t, msg, errs[0].Message())
	checkSpan(t, errs[0].Span(), start, end)
}

func parse(t *testing.T, input string) ast.Program {
	srcfile := source.NewSourceFile("test.asm", []byte(input))
	program, errs := Parse(isa.Default(), srcfile)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return program
}
