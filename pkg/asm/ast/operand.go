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

	"github.com/consensys/go-carbon/pkg/isa"
)

// Operand represents an operand of an instruction.  The set of operands is
// closed, and consists of: Register, Condition and JumpTarget.
type Operand interface {
	fmt.Stringer
	// Bits returns the value this operand contributes to the low bits of the
	// instruction byte.  Jump targets contribute nothing here, since they
	// occupy their own byte.
	Bits() uint8
	// sealed prevents operands being declared outside this package.
	sealed()
}

// Register identifies one of the registers in the register file.
type Register struct {
	Index uint8
}

// Bits returns the register index.
func (p *Register) Bits() uint8 {
	return p.Index
}

func (p *Register) String() string {
	return fmt.Sprintf("r%d", p.Index)
}

// Condition identifies the condition of a branch.
type Condition struct {
	Condition *isa.Condition
}

// Bits returns the condition code.
func (p *Condition) Bits() uint8 {
	return p.Condition.Code
}

func (p *Condition) String() string {
	return p.Condition.Name
}

// JumpTarget is the target of a jump-class instruction.  This is initially
// either a literal address, or an unresolved label.  Once labels are
// resolved, every jump target is a literal address.
type JumpTarget struct {
	// Name of label being referenced (if applicable).
	Label string
	// Address of target (if resolved).
	Address uint
	// Indicates whether or not the address is known.
	Resolved bool
}

// LiteralTarget constructs a jump target for a known address.
func LiteralTarget(address uint) *JumpTarget {
	return &JumpTarget{"", address, true}
}

// UnresolvedTarget constructs a jump target for a label whose address is (as
// yet) unknown.
func UnresolvedTarget(label string) *JumpTarget {
	return &JumpTarget{label, 0, false}
}

// Bits returns zero, since the target is encoded in a separate byte.
func (p *JumpTarget) Bits() uint8 {
	return 0
}

// Byte returns the second byte of the enclosing instruction.  This requires
// the target has been resolved.
func (p *JumpTarget) Byte() uint8 {
	if !p.Resolved {
		panic(fmt.Sprintf("unresolved jump target [%s]", p.Label))
	}
	//
	return isa.EncodeTarget(p.Address)
}

func (p *JumpTarget) String() string {
	if p.Resolved {
		return fmt.Sprintf("%d", p.Address)
	}
	//
	return "[" + p.Label + "]"
}

func (p *Register) sealed()   {}
func (p *Condition) sealed()  {}
func (p *JumpTarget) sealed() {}
