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
	"github.com/consensys/go-carbon/pkg/util/assert"
	"github.com/consensys/go-carbon/pkg/util/source"
)

func Test_Validate_01(t *testing.T) {
	checkValidate(t, insn("ADD"), "ADD expects operands [register], found []")
}

func Test_Validate_02(t *testing.T) {
	checkValidate(t, insn("HLT", reg(1)), "HLT expects operands [], found [register]")
}

func Test_Validate_03(t *testing.T) {
	checkValidate(t, insn("ADD", reg(8)), "invalid register 8")
}

func Test_Validate_04(t *testing.T) {
	checkValidate(t, insn("BRC", cond("ZR"), ast.UnresolvedTarget("x")), "unresolved jump target [x]")
}

func Test_Validate_05(t *testing.T) {
	checkValidate(t, insn("BRC", ast.LiteralTarget(1), cond("ZR")),
		"BRC expects operands [condition jump target], found [jump target condition]")
}

func Test_Validate_06(t *testing.T) {
	checkValidate(t, &ast.LabelDef{Name: "x"}, "unresolved label .x")
	checkValidate(t, &ast.LabelRef{Name: "x"}, "unresolved label [x]")
}

func Test_Validate_07(t *testing.T) {
	checkValidate(t, &ast.PageDirective{Page: 32}, "page out of range")
}

func Test_Validate_08(t *testing.T) {
	program := ast.NewProgram(source.NewSourceFile("test.asm", nil),
		&ast.PageDirective{Page: 31},
		insn("BRC", cond("GT"), ast.LiteralTarget(31)),
		&ast.Comment{Text: "# ok"},
		&ast.RawByte{Value: 255})
	//
	assert.Equal(t, 0, len(Validate(program)))
}

func checkValidate(t *testing.T, stmt ast.Statement, msg string) {
	program := ast.NewProgram(source.NewSourceFile("test.asm", nil), stmt)
	errs := Validate(program)
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	//
	assert.Equal(t, msg, errs[0].Message())
}
