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
package encoder

import (
	"fmt"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Config determines optional behaviour of the encoder.
type Config struct {
	// Mnemonics indicates whether each instruction should be annotated with
	// its mnemonic (e.g. "# ADD").
	Mnemonics bool
}

// DefaultConfig returns the default encoder configuration.
func DefaultConfig() Config {
	return Config{Mnemonics: true}
}

// Encode a resolved program into a memory image.  This fails if a page
// overflows, or if the program was not fully resolved.
func Encode(program ast.Program, config Config) (*Image, []source.SyntaxError) {
	var (
		writer = NewPageWriter()
		srcmap = program.SourceMap
	)
	//
	for _, stmt := range program.Statements {
		var err error
		//
		switch stmt := stmt.(type) {
		case *ast.PageDirective:
			err = writer.SetPage(stmt.Page)
		case *ast.RawByte:
			err = writer.Write(stmt.Value)
		case *ast.Comment:
			writer.Annotate(stmt.Text)
		case *ast.Instruction:
			err = encodeInstruction(writer, stmt, config)
		default:
			err = fmt.Errorf("cannot encode %s", stmt)
		}
		//
		if err != nil {
			return nil, srcmap.SyntaxErrors(stmt, err.Error())
		}
	}
	//
	image := writer.Image()
	//
	for page := range isa.NUM_PAGES {
		if n := image.Used(page); n > 0 {
			log.Debugf("page %d: %d/%d bytes used", page, n, isa.PAGE_SIZE)
		}
	}
	//
	return image, nil
}

// Encode a single instruction.  The opcode's pattern is combined with any
// register or condition operand to form the first byte.  A jump target causes
// this byte to be written, and then forms the second byte.
func encodeInstruction(writer *PageWriter, insn *ast.Instruction, config Config) error {
	var (
		word    = insn.Opcode.Pattern
		written = false
	)
	// Flush the working byte
	flush := func() error {
		if err := writer.Write(word); err != nil {
			return err
		} else if !written && config.Mnemonics {
			writer.Annotate("# " + insn.Opcode.Mnemonic)
		}
		//
		written = true
		//
		return nil
	}
	//
	for _, operand := range insn.Operands {
		switch operand := operand.(type) {
		case *ast.JumpTarget:
			if !operand.Resolved {
				return fmt.Errorf("unresolved jump target %s", operand)
			} else if err := flush(); err != nil {
				return err
			}
			//
			word = operand.Byte()
		default:
			word |= operand.Bits() & isa.OPERAND_MASK
		}
	}
	//
	return flush()
}
