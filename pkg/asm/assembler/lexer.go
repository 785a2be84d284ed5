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
	"strconv"
	"strings"

	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	"github.com/consensys/go-carbon/pkg/util/source/lex"
	log "github.com/sirupsen/logrus"
)

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\n'),
	lex.Unit('\r'),
	lex.Unit('\f')))

// Any run of characters up to whitespace.
var nonWhitespace lex.Scanner[rune] = lex.Many(lex.Not(' ', '\t', '\n', '\r', '\f'))

var digits lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

var word lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Comments start with '#' or '//' and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.SequenceNullableLast(
	lex.Or(lex.Unit('#'), lex.Unit('/', '/')),
	lex.Until('\n'))

// Page directives are '>' followed by a page index.  The whole run is matched
// so that a malformed index can be reported.
var page lex.Scanner[rune] = lex.Sequence(lex.Unit('>'), nonWhitespace)

// Label definitions are '.' followed by a name.
var labelDef lex.Scanner[rune] = lex.Sequence(lex.Unit('.'), nonWhitespace)

// Label references are a name enclosed in square brackets.
var labelRef lex.Scanner[rune] = lex.Sequence(lex.Unit('['), word, lex.Unit(']'))

// Registers are either "$N" or "rN" / "RN".  Any number of digits is matched
// so that out-of-range registers can be reported.
var register lex.Scanner[rune] = lex.Or(
	lex.Sequence(lex.Unit('$'), digits),
	lex.Sequence(lex.Or(lex.Unit('r'), lex.Unit('R')), digits))

// Construct the lexing rules for a given instruction set, in order of
// decreasing priority.  Conditions depend upon the instruction set, and must
// outrank mnemonics.
func lexRules(table *isa.Table) []lex.LexRule[rune] {
	var keywords []lex.Scanner[rune]
	//
	for _, kw := range table.Keywords() {
		keywords = append(keywords, lex.Keyword(kw))
	}
	//
	return []lex.LexRule[rune]{
		lex.Rule(comment, COMMENT),
		lex.Rule(page, PAGE),
		lex.Rule(labelDef, LABEL_DEF),
		lex.Rule(labelRef, LABEL_REF),
		lex.Rule(register, REGISTER),
		lex.Rule(lex.Longest(keywords...), CONDITION),
		lex.Rule(digits, IMMEDIATE),
		lex.Rule(word, MNEMONIC),
		lex.Rule(whitespace, WHITESPACE),
		lex.Rule(lex.Eof[rune](), END_OF),
	}
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace is removed, whilst comments are
// retained.  The final token is always END_OF.
func Lex(table *isa.Table, srcfile *source.File) ([]Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), lexRules(table)...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
		result []Token
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		end := start + max(1, int(nonWhitespace(srcfile.Contents()[start:])))
		//
		return nil, srcfile.SyntaxErrors(source.NewSpan(start, end), "unknown text encountered")
	}
	//
	for _, t := range tokens {
		if t.Kind == WHITESPACE {
			continue
		}
		//
		token, errs := decode(table, srcfile, t)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		result = append(result, token)
	}
	//
	log.Debugf("lexed %d tokens from %s", len(result), srcfile.Filename())
	// Done
	return result, nil
}

// Decode the payload of a given token, producing an error if the token is
// malformed.
func decode(table *isa.Table, srcfile *source.File, t lex.Token) (Token, []source.SyntaxError) {
	var (
		text  = srcfile.Text(t.Span)
		token = Token{Kind: t.Kind, Span: t.Span}
		ok    bool
		err   error
		n     uint64
	)
	//
	switch t.Kind {
	case COMMENT:
		token.Text = strings.TrimRight(text, " \t\r\f")
	case LABEL_DEF:
		token.Text = text[1:]
	case LABEL_REF:
		token.Text = text[1 : len(text)-1]
	case PAGE:
		if n, err = strconv.ParseUint(text[1:], 10, 64); err != nil {
			return token, srcfile.SyntaxErrors(t.Span, fmt.Sprintf("invalid page \"%s\"", text[1:]))
		} else if n >= uint64(isa.NUM_PAGES) {
			return token, srcfile.SyntaxErrors(t.Span, fmt.Sprintf("page out of range (max %d)", isa.NUM_PAGES-1))
		}
		//
		token.Value = uint(n)
	case REGISTER:
		if n, err = strconv.ParseUint(text[1:], 10, 64); err != nil || n >= uint64(isa.NUM_REGISTERS) {
			return token, srcfile.SyntaxErrors(t.Span, fmt.Sprintf("invalid register \"%s\"", text))
		}
		//
		token.Value = uint(n)
	case CONDITION:
		// Cannot fail, since the scanner only accepts known keywords
		token.Condition, _ = table.Condition(text)
	case IMMEDIATE:
		if n, err = strconv.ParseUint(text, 10, 8); err != nil {
			return token, srcfile.SyntaxErrors(t.Span, fmt.Sprintf("immediate out of range (max %d)", 255))
		}
		//
		token.Value = uint(n)
	case MNEMONIC:
		if token.Opcode, ok = table.Opcode(text); !ok {
			return token, srcfile.SyntaxErrors(t.Span, fmt.Sprintf("unknown mnemonic \"%s\"", text))
		}
	}
	//
	return token, nil
}
