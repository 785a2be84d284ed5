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
	"fmt"
	"slices"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
)

// Validate checks that a resolved program is well-formed, and can therefore be
// encoded.  Specifically, every instruction must have operands matching the
// shape of its opcode, every jump target must be resolved, and no label
// definitions or references can remain.  Programs produced by the parser and
// resolver always pass, but programs constructed by other means may not.
func Validate(program ast.Program) []source.SyntaxError {
	var (
		srcmap = program.SourceMap
		errors []source.SyntaxError
	)
	//
	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.Instruction:
			if err := validateInstruction(stmt); err != nil {
				errors = append(errors, *srcmap.SyntaxError(stmt, err.Error()))
			}
		case *ast.LabelDef, *ast.LabelRef:
			errors = append(errors, *srcmap.SyntaxError(stmt, fmt.Sprintf("unresolved label %s", stmt)))
		case *ast.PageDirective:
			if stmt.Page >= isa.NUM_PAGES {
				errors = append(errors, *srcmap.SyntaxError(stmt, "page out of range"))
			}
		}
	}
	//
	return errors
}

// Check the operands of an instruction match its opcode's shape.
func validateInstruction(insn *ast.Instruction) error {
	var (
		shape    = insn.Opcode.Shape
		expected []string
		actual   []string
	)
	// Determine expected operands
	if shape.HasRegister() {
		expected = append(expected, "register")
	}
	//
	if shape.HasCondition() {
		expected = append(expected, "condition")
	}
	//
	if shape.HasTarget() {
		expected = append(expected, "jump target")
	}
	// Determine actual operands
	for _, operand := range insn.Operands {
		switch operand := operand.(type) {
		case *ast.Register:
			if uint(operand.Index) >= isa.NUM_REGISTERS {
				return fmt.Errorf("invalid register %d", operand.Index)
			}
			//
			actual = append(actual, "register")
		case *ast.Condition:
			actual = append(actual, "condition")
		case *ast.JumpTarget:
			if !operand.Resolved {
				return fmt.Errorf("unresolved jump target %s", operand)
			}
			//
			actual = append(actual, "jump target")
		}
	}
	//
	if !slices.Equal(expected, actual) {
		return fmt.Errorf("%s expects operands %v, found %v", insn.Opcode.Mnemonic, expected, actual)
	}
	//
	return nil
}
