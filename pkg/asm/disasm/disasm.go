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
package disasm

import (
	"fmt"
	"strings"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
)

// Line is a single decoded statement, along with the address and bytes from
// which it was decoded.
type Line struct {
	Address   uint
	Bytes     []uint8
	Statement ast.Statement
}

func (p *Line) String() string {
	var bits = make([]string, len(p.Bytes))
	//
	for i, b := range p.Bytes {
		bits[i] = fmt.Sprintf("%08b", b)
	}
	//
	return fmt.Sprintf("%04d: %-17s %s", p.Address, strings.Join(bits, " "), p.Statement)
}

// Decode a memory image back into statements, page by page.  Trailing zero
// bytes of each page are treated as padding and omitted (unless they form the
// second byte of a jump-class instruction).  Bytes which do not correspond to
// any opcode are decoded as raw bytes.
func Decode(table *isa.Table, data []byte) ([]Line, error) {
	var lines []Line
	//
	if uint(len(data)) > isa.MEMORY_SIZE {
		return nil, fmt.Errorf("image too large (%d bytes, max %d)", len(data), isa.MEMORY_SIZE)
	}
	//
	for base := uint(0); base < uint(len(data)); base += isa.PAGE_SIZE {
		page := data[base:min(base+isa.PAGE_SIZE, uint(len(data)))]
		lines = append(lines, decodePage(table, base, page)...)
	}
	//
	return lines, nil
}

// Statements extracts the statements from a sequence of decoded lines,
// inserting page directives wherever a line starts a new page.
func Statements(lines []Line) []ast.Statement {
	var (
		stmts []ast.Statement
		page  = isa.NUM_PAGES
	)
	//
	for _, line := range lines {
		if p := line.Address / isa.PAGE_SIZE; p != page {
			stmts = append(stmts, &ast.PageDirective{Page: p})
			page = p
		}
		//
		stmts = append(stmts, line.Statement)
	}
	//
	return stmts
}

func decodePage(table *isa.Table, base uint, page []byte) []Line {
	var (
		lines []Line
		end   = len(page)
	)
	// Strip padding
	for end > 0 && page[end-1] == 0 {
		end--
	}
	//
	for i := 0; i < end; {
		var (
			b    = page[i]
			stmt ast.Statement
			size = 1
		)
		//
		if op, ok := table.Decode(b); !ok {
			stmt = &ast.RawByte{Value: b}
		} else if insn, ok := decodeInstruction(table, op, page[i:]); !ok {
			stmt = &ast.RawByte{Value: b}
		} else {
			stmt, size = insn, int(op.Size())
		}
		//
		lines = append(lines, Line{base + uint(i), page[i : i+size], stmt})
		i += size
	}
	//
	return lines
}

func decodeInstruction(table *isa.Table, op *isa.Opcode, bytes []byte) (*ast.Instruction, bool) {
	var (
		insn    = &ast.Instruction{Opcode: op}
		operand = bytes[0] & isa.OPERAND_MASK
	)
	//
	if op.Shape.HasRegister() {
		insn.Operands = append(insn.Operands, &ast.Register{Index: operand})
	} else if op.Shape.HasCondition() {
		cond, ok := table.ConditionOf(operand)
		if !ok {
			return nil, false
		}
		//
		insn.Operands = append(insn.Operands, &ast.Condition{Condition: cond})
	} else if op.Width == 5 && operand != 0 {
		// Operand bits should be clear
		return nil, false
	}
	//
	if op.Shape.HasTarget() {
		if len(bytes) < 2 || bytes[1]&isa.OPERAND_MASK != 0 {
			return nil, false
		}
		//
		insn.Operands = append(insn.Operands, ast.LiteralTarget(isa.DecodeTarget(bytes[1])))
	}
	//
	return insn, true
}
