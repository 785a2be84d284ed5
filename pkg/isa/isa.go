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
package isa

import (
	"fmt"
	"strings"
)

// PAGE_SIZE determines the number of bytes held in a single page of memory.
const PAGE_SIZE uint = 32

// NUM_PAGES determines the number of pages making up the address space.
const NUM_PAGES uint = 32

// MEMORY_SIZE is the total number of addressable bytes.
const MEMORY_SIZE uint = PAGE_SIZE * NUM_PAGES

// NUM_REGISTERS is the number of registers in the register file.
const NUM_REGISTERS uint = 8

// OPERAND_BITS is the number of low bits in an instruction byte which are
// available for an operand (i.e. a register index or a condition code).
const OPERAND_BITS uint = 3

// OPERAND_MASK selects the operand bits of an instruction byte.
const OPERAND_MASK uint8 = (1 << OPERAND_BITS) - 1

// Shape describes the operands which must follow a given mnemonic.
type Shape uint8

const (
	// NONE indicates an instruction without operands.
	NONE Shape = iota
	// REGISTER indicates an instruction taking a single register.
	REGISTER
	// CONDITION indicates an instruction taking a single condition.
	CONDITION
	// JUMP indicates an instruction taking a single jump target.  Such an
	// instruction occupies two bytes.
	JUMP
	// BRANCH indicates an instruction taking a condition and then a jump
	// target.  Such an instruction occupies two bytes.
	BRANCH
)

var shapeNames = []string{"none", "register", "condition", "jump", "branch"}

// ParseShape converts the textual name of a shape (as used in instruction set
// files) into a shape.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, name) {
			return Shape(i), nil
		}
	}
	//
	return NONE, fmt.Errorf("unknown operand shape \"%s\"", name)
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	//
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// HasRegister determines whether this shape carries a register operand.
func (s Shape) HasRegister() bool {
	return s == REGISTER
}

// HasCondition determines whether this shape carries a condition operand.
func (s Shape) HasCondition() bool {
	return s == CONDITION || s == BRANCH
}

// HasTarget determines whether this shape carries a jump target, and hence
// whether instructions of this shape occupy a second byte.
func (s Shape) HasTarget() bool {
	return s == JUMP || s == BRANCH
}

// Opcode describes a single mnemonic of the instruction set.
type Opcode struct {
	// Mnemonic (in upper case) for this opcode.
	Mnemonic string
	// Pattern of fixed bits in the instruction byte.
	Pattern uint8
	// Number of (high) bits fixed by this opcode; either 5 or 8.
	Width uint
	// Operands required by this opcode.
	Shape Shape
}

// Mask returns the bits of an instruction byte which are fixed by this opcode.
func (p *Opcode) Mask() uint8 {
	return uint8(0xff << (8 - p.Width))
}

// Matches checks whether a given instruction byte was produced from this
// opcode.
func (p *Opcode) Matches(b uint8) bool {
	return b&p.Mask() == p.Pattern
}

// Size returns the number of bytes occupied by an instruction with this
// opcode.
func (p *Opcode) Size() uint {
	if p.Shape.HasTarget() {
		return 2
	}
	//
	return 1
}

// Encode constructs the first byte of an instruction from this opcode and the
// given operand bits.
func (p *Opcode) Encode(operand uint8) uint8 {
	return p.Pattern | (operand & OPERAND_MASK)
}

// String returns the bit pattern of this opcode, where operand bits are
// written as 'x'.
func (p *Opcode) String() string {
	bits := fmt.Sprintf("%08b", p.Pattern)
	//
	return bits[:p.Width] + strings.Repeat("x", int(8-p.Width))
}

// Condition describes a branch condition of the instruction set.
type Condition struct {
	// Canonical name for this condition.
	Name string
	// Three bit code for this condition (never zero).
	Code uint8
	// Alternative keywords for this condition.
	Aliases []string
}

// Keywords returns every keyword denoting this condition, starting with its
// canonical name.
func (p *Condition) Keywords() []string {
	return append([]string{p.Name}, p.Aliases...)
}

// EncodeTarget converts an address into the second byte of a jump-class
// instruction.  Only the offset within the page survives, since the lowest
// three bits are unused.
func EncodeTarget(address uint) uint8 {
	return uint8(address << OPERAND_BITS)
}

// DecodeTarget converts the second byte of a jump-class instruction back into
// the in-page offset it denotes.
func DecodeTarget(b uint8) uint {
	return uint(b >> OPERAND_BITS)
}
