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

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Resolve the labels of a given program, producing an otherwise identical
// program in which every jump target is a literal address, label definitions
// are removed, and standalone label references become raw bytes.  Resolution
// happens in two passes, since labels may be referenced before they are
// defined.
func Resolve(program ast.Program) (ast.Program, SymbolTable, []source.SyntaxError) {
	symbols, errs := AssignAddresses(program)
	//
	if len(errs) > 0 {
		return program, symbols, errs
	}
	//
	resolved, errs := Substitute(program, symbols)
	//
	return resolved, symbols, errs
}

// AssignAddresses is the first pass of label resolution.  This walks the
// program maintaining a running address, and binds each label to the address
// at which it is defined.
func AssignAddresses(program ast.Program) (SymbolTable, []source.SyntaxError) {
	var (
		symbols = NewSymbolTable()
		pc      uint
	)
	//
	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.PageDirective:
			pc = stmt.Address()
		case *ast.LabelDef:
			if pc >= isa.MEMORY_SIZE {
				msg := fmt.Sprintf("label \"%s\" address %d out of range (max %d)", stmt.Name, pc, isa.MEMORY_SIZE-1)
				return symbols, program.SourceMap.SyntaxErrors(stmt, msg)
			} else if !symbols.Declare(stmt.Name, pc) {
				msg := fmt.Sprintf("label \"%s\" already declared", stmt.Name)
				return symbols, program.SourceMap.SyntaxErrors(stmt, msg)
			}
			//
			log.Debugf("bound label %s to address %d", stmt.Name, pc)
		default:
			pc += stmt.Size()
		}
	}
	//
	return symbols, nil
}

// Substitute is the second pass of label resolution.  This replaces every
// label reference with the address bound to it by the given symbol table.  A
// standalone reference must fit in a byte.  A jump target keeps only the
// offset of its label within a page, hence a warning is logged when the label
// is on a different page from the jump.
func Substitute(program ast.Program, symbols SymbolTable) (ast.Program, []source.SyntaxError) {
	var (
		srcmap     = program.SourceMap
		statements []ast.Statement
		pc         uint
	)
	//
	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.PageDirective:
			pc = stmt.Address()
			statements = append(statements, stmt)
		case *ast.LabelDef:
			// Label definitions carry no runtime payload
			continue
		case *ast.LabelRef:
			address, ok := symbols.Lookup(stmt.Name)
			if !ok {
				return program, srcmap.SyntaxErrors(stmt, unknownLabel(stmt.Name))
			} else if address > MAX_BYTE {
				msg := fmt.Sprintf("label \"%s\" address %d out of range (max %d)", stmt.Name, address, MAX_BYTE)
				return program, srcmap.SyntaxErrors(stmt, msg)
			}
			//
			pc++
			//
			raw := &ast.RawByte{Value: uint8(address)}
			srcmap.Copy(stmt, raw)
			statements = append(statements, raw)
		case *ast.Instruction:
			insn, errs := substituteInstruction(stmt, pc, symbols, srcmap)
			if len(errs) > 0 {
				return program, errs
			}
			//
			pc += insn.Size()
			statements = append(statements, insn)
		default:
			pc += stmt.Size()
			statements = append(statements, stmt)
		}
	}
	//
	return ast.Program{Statements: statements, SourceMap: srcmap}, nil
}

// Substitute any unresolved jump targets in a given instruction located at a
// given address.  A fresh instruction is returned, leaving the original
// untouched.
func substituteInstruction(insn *ast.Instruction, pc uint, symbols SymbolTable,
	srcmap *source.Map[any]) (*ast.Instruction, []source.SyntaxError) {
	//
	var operands []ast.Operand
	//
	for _, operand := range insn.Operands {
		if target, ok := operand.(*ast.JumpTarget); ok && !target.Resolved {
			address, ok := symbols.Lookup(target.Label)
			if !ok {
				return nil, srcmap.SyntaxErrors(target, unknownLabel(target.Label))
			} else if address/isa.PAGE_SIZE != pc/isa.PAGE_SIZE {
				log.Warnf("jump from page %d to label %s on page %d keeps only offset %d", pc/isa.PAGE_SIZE,
					target.Label, address/isa.PAGE_SIZE, address%isa.PAGE_SIZE)
			}
			//
			resolved := ast.LiteralTarget(address)
			srcmap.Copy(target, resolved)
			operands = append(operands, resolved)
		} else {
			operands = append(operands, operand)
		}
	}
	//
	resolved := &ast.Instruction{Opcode: insn.Opcode, Operands: operands}
	srcmap.Copy(insn, resolved)
	//
	return resolved, nil
}

// MAX_BYTE is the largest address a standalone label reference can hold.
const MAX_BYTE uint = 255

func unknownLabel(name string) string {
	return fmt.Sprintf("unknown label \"%s\"", name)
}
