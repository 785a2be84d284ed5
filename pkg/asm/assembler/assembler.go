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
	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/asm/encoder"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Assemble a given source file into a memory image.  This runs each stage of
// the pipeline in turn (lexing, parsing, label resolution and encoding), and
// stops at the first stage which reports an error.
func Assemble(table *isa.Table, srcfile *source.File, config encoder.Config) (*encoder.Image, []source.SyntaxError) {
	var (
		program ast.Program
		symbols SymbolTable
		errs    []source.SyntaxError
	)
	// Lex and parse
	if program, errs = Parse(table, srcfile); len(errs) > 0 {
		log.Debug("parsing failed")
		return nil, errs
	}
	// Resolve labels
	if program, symbols, errs = Resolve(program); len(errs) > 0 {
		log.Debug("label resolution failed")
		return nil, errs
	}
	//
	log.Debugf("resolved %d labels", symbols.Len())
	// Sanity check
	if errs = Validate(program); len(errs) > 0 {
		return nil, errs
	}
	// Encode
	return encoder.Encode(program, config)
}
