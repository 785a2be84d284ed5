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
	"testing"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/assert"
	"github.com/consensys/go-carbon/pkg/util/source"
	"github.com/google/go-cmp/cmp"
)

func Test_Parse_Empty(t *testing.T) {
	checkParse(t, "")
	checkParse(t, "\n\n")
}

func Test_Parse_Instruction_01(t *testing.T) {
	checkParse(t, "ADD r1\nHLT",
		insn("ADD", reg(1)),
		insn("HLT"))
}

func Test_Parse_Instruction_02(t *testing.T) {
	checkParse(t, "INC DEC ICS 3 LDI $3",
		insn("INC"),
		insn("DEC"),
		insn("ICS"),
		&ast.RawByte{Value: 3},
		insn("LDI", reg(3)))
}

func Test_Parse_Instruction_03(t *testing.T) {
	checkParse(t, "BRC COUT 5",
		insn("BRC", cond("COUT"), ast.LiteralTarget(5)))
}

func Test_Parse_Instruction_04(t *testing.T) {
	checkParse(t, "brc gt [end]",
		insn("BRC", cond("UCD"), ast.UnresolvedTarget("end")))
}

func Test_Parse_Statements_01(t *testing.T) {
	checkParse(t, "42 >1 .x [x] # c",
		&ast.RawByte{Value: 42},
		&ast.PageDirective{Page: 1},
		&ast.LabelDef{Name: "x"},
		&ast.LabelRef{Name: "x"},
		&ast.Comment{Text: "# c"})
}

func Test_Parse_Hoisting_01(t *testing.T) {
	// Comments and labels between operands precede the instruction
	checkParse(t, "BRC # first\n.here ZR // second\n 3",
		&ast.Comment{Text: "# first"},
		&ast.LabelDef{Name: "here"},
		&ast.Comment{Text: "// second"},
		insn("BRC", cond("ZR"), ast.LiteralTarget(3)))
}

func Test_Parse_Hoisting_02(t *testing.T) {
	checkParse(t, "ADD # note\n r2 # after",
		&ast.Comment{Text: "# note"},
		insn("ADD", reg(2)),
		&ast.Comment{Text: "# after"})
}

func Test_Parse_SourceMap_01(t *testing.T) {
	srcfile := source.NewSourceFile("test.asm", []byte("HLT\n  ADD r1"))
	program, errs := Parse(isa.Default(), srcfile)
	//
	assert.Equal(t, 0, len(errs))
	//
	span := program.SourceMap.Get(program.Statements[1])
	assert.Equal(t, "ADD r1", srcfile.Text(span))
}

// ============================================================================
// Errors
// ============================================================================

func Test_Parse_Invalid_01(t *testing.T) {
	checkParseError(t, "ADD", 3, 3, "expected register after ADD, found end of file")
}

func Test_Parse_Invalid_02(t *testing.T) {
	checkParseError(t, "BRC r1 3", 4, 6, "expected condition after BRC, found register")
}

func Test_Parse_Invalid_03(t *testing.T) {
	checkParseError(t, "BRC ZR r1", 7, 9, "expected immediate or label reference after BRC, found register")
}

func Test_Parse_Invalid_04(t *testing.T) {
	checkParseError(t, "r1", 0, 2, "unexpected register")
}

func Test_Parse_Invalid_05(t *testing.T) {
	checkParseError(t, "HLT ZR", 4, 6, "unexpected condition")
}

func Test_Parse_Invalid_06(t *testing.T) {
	checkParseError(t, "BRC ZR 32", 7, 9, "jump target out of range (max 31)")
}

func Test_Parse_Invalid_07(t *testing.T) {
	checkParseError(t, "ADD ADD", 4, 7, "expected register after ADD, found mnemonic")
}

func Test_Parse_Invalid_08(t *testing.T) {
	// Lexical errors are reported by the parser
	checkParseError(t, "ADD r9", 4, 6, "invalid register \"r9\"")
}

// ============================================================================
// Helpers
// ============================================================================

func checkParse(t *testing.T, input string, expected ...ast.Statement) {
	srcfile := source.NewSourceFile("test.asm", []byte(input))
	program, errs := Parse(isa.Default(), srcfile)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	if diff := cmp.Diff(expected, program.Statements); diff != "" {
		t.Errorf("statements mismatch (-expected +actual):\n%s", diff)
	}
	// Every statement has a source mapping
	for _, stmt := range program.Statements {
		assert.True(t, program.SourceMap.Has(stmt), "statement %s not mapped", stmt)
	}
}

func checkParseError(t *testing.T, input string, start, end int, msg string) {
	srcfile := source.NewSourceFile("test.asm", []byte(input))
	_, errs := Parse(isa.Default(), srcfile)
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	//
	assert.Equal(t, msg, errs[0].Message())
	checkSpan(t, errs[0].Span(), start, end)
}

func insn(mnemonic string, operands ...ast.Operand) *ast.Instruction {
	op, ok := isa.Default().Opcode(mnemonic)
	if !ok {
		panic("unknown mnemonic " + mnemonic)
	}
	//
	return &ast.Instruction{Opcode: op, Operands: operands}
}

func reg(index uint8) *ast.Register {
	return &ast.Register{Index: index}
}

func cond(name string) *ast.Condition {
	c, ok := isa.Default().Condition(name)
	if !ok {
		panic("unknown condition " + name)
	}
	//
	return &ast.Condition{Condition: c}
}
