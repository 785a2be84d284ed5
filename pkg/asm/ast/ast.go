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
package ast

import (
	"fmt"
	"strings"

	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
)

// Statement represents a single statement of an assembly program.  The set of
// statements is closed, and consists of: Instruction, RawByte, Comment,
// LabelDef, LabelRef and PageDirective.  The order of statements within a
// program is significant, as it determines the order in which bytes are
// emitted.
type Statement interface {
	fmt.Stringer
	// Size returns the number of address slots consumed by this statement.
	Size() uint
	// sealed prevents statements being declared outside this package.
	sealed()
}

// Program is an ordered sequence of statements, along with a mapping from
// those statements back to the source file from which they were parsed.
type Program struct {
	// Statements making up the program.
	Statements []Statement
	// Source map for statements (and their operands).
	SourceMap *source.Map[any]
}

// Instruction represents a mnemonic along with its (fully parsed) operands.
// The operands must match the opcode's shape.
type Instruction struct {
	Opcode   *isa.Opcode
	Operands []Operand
}

// Size of an instruction is one byte, plus one byte for every jump target.
func (p *Instruction) Size() uint {
	size := uint(1)
	//
	for _, operand := range p.Operands {
		if _, ok := operand.(*JumpTarget); ok {
			size++
		}
	}
	//
	return size
}

func (p *Instruction) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Opcode.Mnemonic)
	//
	for _, operand := range p.Operands {
		builder.WriteString(" ")
		builder.WriteString(operand.String())
	}
	//
	return builder.String()
}

// RawByte represents a literal byte to be written into memory.
type RawByte struct {
	Value uint8
}

// Size of a raw byte is always one.
func (p *RawByte) Size() uint {
	return 1
}

func (p *RawByte) String() string {
	return fmt.Sprintf("%d", p.Value)
}

// Comment represents a comment which should be carried through into the output
// as an annotation.  The text includes the comment marker.
type Comment struct {
	Text string
}

// Size of a comment is always zero.
func (p *Comment) Size() uint {
	return 0
}

func (p *Comment) String() string {
	return p.Text
}

// LabelDef binds a label to the address at which it occurs.
type LabelDef struct {
	Name string
}

// Size of a label definition is always zero.
func (p *LabelDef) Size() uint {
	return 0
}

func (p *LabelDef) String() string {
	return "." + p.Name
}

// LabelRef represents a standalone reference to a label, which is replaced by
// a raw byte holding the label's address during resolution.
type LabelRef struct {
	Name string
}

// Size of a label reference is the size of the byte it becomes.
func (p *LabelRef) Size() uint {
	return 1
}

func (p *LabelRef) String() string {
	return "[" + p.Name + "]"
}

// PageDirective moves emission to the start of a given page.
type PageDirective struct {
	Page uint
}

// Size of a page directive is always zero, since it resets the address rather
// than advancing it.
func (p *PageDirective) Size() uint {
	return 0
}

// Address returns the address at which the given page begins.
func (p *PageDirective) Address() uint {
	return p.Page * isa.PAGE_SIZE
}

func (p *PageDirective) String() string {
	return fmt.Sprintf(">%d", p.Page)
}

func (p *Instruction) sealed()   {}
func (p *RawByte) sealed()       {}
func (p *Comment) sealed()       {}
func (p *LabelDef) sealed()      {}
func (p *LabelRef) sealed()      {}
func (p *PageDirective) sealed() {}

// NewProgram constructs a program from a given sequence of statements, with an
// initially empty source map over the given file.
func NewProgram(srcfile *source.File, statements ...Statement) Program {
	return Program{statements, source.NewSourceMap[any](srcfile)}
}
