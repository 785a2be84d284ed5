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

	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "# ... \n" or "// ... \n"
const COMMENT uint = 2

// PAGE signals a page directive, e.g. ">2"
const PAGE uint = 3

// LABEL_DEF signals a label definition, e.g. ".loop"
const LABEL_DEF uint = 4

// LABEL_REF signals a label reference, e.g. "[loop]"
const LABEL_REF uint = 5

// REGISTER signals a register, e.g. "$3" or "r3"
const REGISTER uint = 6

// CONDITION signals a branch condition, e.g. "ZR"
const CONDITION uint = 7

// IMMEDIATE signals a decimal number, e.g. "42"
const IMMEDIATE uint = 8

// MNEMONIC signals an instruction mnemonic, e.g. "ADD"
const MNEMONIC uint = 9

var kindNames = map[uint]string{
	END_OF:     "end of file",
	WHITESPACE: "whitespace",
	COMMENT:    "comment",
	PAGE:       "page directive",
	LABEL_DEF:  "label definition",
	LABEL_REF:  "label reference",
	REGISTER:   "register",
	CONDITION:  "condition",
	IMMEDIATE:  "immediate",
	MNEMONIC:   "mnemonic",
}

// KindName returns a human readable name for a given token kind.
func KindName(kind uint) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	//
	return fmt.Sprintf("token(%d)", kind)
}

// Token is a single lexical unit of an assembly program, along with its
// decoded payload.  Which payload field is meaningful depends upon the kind of
// token.
type Token struct {
	Kind uint
	Span source.Span
	// Opcode for a MNEMONIC.
	Opcode *isa.Opcode
	// Condition for a CONDITION.
	Condition *isa.Condition
	// Value of a REGISTER, IMMEDIATE or PAGE.
	Value uint
	// Text of a COMMENT (including marker), or name of a LABEL_DEF or
	// LABEL_REF.
	Text string
}

func (p Token) String() string {
	switch p.Kind {
	case MNEMONIC:
		return p.Opcode.Mnemonic
	case CONDITION:
		return p.Condition.Name
	case REGISTER:
		return fmt.Sprintf("r%d", p.Value)
	case IMMEDIATE:
		return fmt.Sprintf("%d", p.Value)
	case PAGE:
		return fmt.Sprintf(">%d", p.Value)
	case LABEL_DEF:
		return "." + p.Text
	case LABEL_REF:
		return "[" + p.Text + "]"
	case COMMENT:
		return p.Text
	default:
		return KindName(p.Kind)
	}
}
