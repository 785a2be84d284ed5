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
	"strings"

	"github.com/consensys/go-carbon/pkg/asm/ast"
	"github.com/consensys/go-carbon/pkg/isa"
	"github.com/consensys/go-carbon/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Parse accepts a given source file representing an assembly language
// program, and parses it into a sequence of statements.  Labels are not
// resolved at this stage.
func Parse(table *isa.Table, srcfile *source.File) (ast.Program, []source.SyntaxError) {
	parser := NewParser(table, srcfile)
	// Parse statements
	return parser.Parse()
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a parser for assembly language.
type Parser struct {
	table   *isa.Table
	srcfile *source.File
	tokens  []Token
	// Source mapping
	srcmap *source.Map[any]
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(table *isa.Table, srcfile *source.File) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{table, srcfile, nil, srcmap, 0}
}

// Parse the given source file into a sequence of zero or more statements, or
// a syntax error.
func (p *Parser) Parse() (ast.Program, []source.SyntaxError) {
	var (
		program = ast.Program{SourceMap: p.srcmap}
		stmts   []ast.Statement
		errors  []source.SyntaxError
	)
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.table, p.srcfile); len(errors) > 0 {
		return program, errors
	}
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		if stmts, errors = p.parseStatement(); len(errors) > 0 {
			return program, errors
		}
		//
		program.Statements = append(program.Statements, stmts...)
	}
	//
	log.Debugf("parsed %d statements", len(program.Statements))
	//
	return program, nil
}

// Parse a single statement.  This can result in more than one statement when
// comments or labels are interleaved with the operands of an instruction.
func (p *Parser) parseStatement() ([]ast.Statement, []source.SyntaxError) {
	var (
		lookahead = p.lookahead()
		stmt      ast.Statement
	)
	//
	switch lookahead.Kind {
	case MNEMONIC:
		return p.parseInstruction()
	case IMMEDIATE:
		stmt = &ast.RawByte{Value: uint8(lookahead.Value)}
	case PAGE:
		stmt = &ast.PageDirective{Page: lookahead.Value}
	case COMMENT:
		stmt = &ast.Comment{Text: lookahead.Text}
	case LABEL_DEF:
		stmt = &ast.LabelDef{Name: lookahead.Text}
	case LABEL_REF:
		stmt = &ast.LabelRef{Name: lookahead.Text}
	default:
		return nil, p.syntaxErrors(lookahead, fmt.Sprintf("unexpected %s", KindName(lookahead.Kind)))
	}
	//
	p.index++
	// Record source mapping
	p.srcmap.Put(stmt, lookahead.Span)
	//
	return []ast.Statement{stmt}, nil
}

func (p *Parser) parseInstruction() ([]ast.Statement, []source.SyntaxError) {
	var (
		// Save current position for source mapping
		start    = p.index
		mnemonic = p.lookahead()
		opcode   = mnemonic.Opcode
		shape    = opcode.Shape
		hoisted  []ast.Statement
		operands []ast.Operand
		operand  ast.Operand
		errs     []source.SyntaxError
	)
	// Advance past mnemonic
	p.index++
	//
	if shape.HasRegister() {
		hoisted = p.parseHoisted(hoisted)
		//
		if operand, errs = p.parseRegister(opcode); len(errs) > 0 {
			return nil, errs
		}
		//
		operands = append(operands, operand)
	}
	//
	if shape.HasCondition() {
		hoisted = p.parseHoisted(hoisted)
		//
		if operand, errs = p.parseCondition(opcode); len(errs) > 0 {
			return nil, errs
		}
		//
		operands = append(operands, operand)
	}
	//
	if shape.HasTarget() {
		hoisted = p.parseHoisted(hoisted)
		//
		if operand, errs = p.parseJumpTarget(opcode); len(errs) > 0 {
			return nil, errs
		}
		//
		operands = append(operands, operand)
	}
	//
	insn := &ast.Instruction{Opcode: opcode, Operands: operands}
	// Record source mapping
	p.srcmap.Put(insn, p.spanOf(start, p.index-1))
	//
	return append(hoisted, insn), nil
}

// Parse any comments or label definitions appearing before an operand.  These
// are hoisted out of the instruction, and precede it in the statement
// sequence.
func (p *Parser) parseHoisted(hoisted []ast.Statement) []ast.Statement {
	for {
		var (
			lookahead = p.lookahead()
			stmt      ast.Statement
		)
		//
		switch lookahead.Kind {
		case COMMENT:
			stmt = &ast.Comment{Text: lookahead.Text}
		case LABEL_DEF:
			stmt = &ast.LabelDef{Name: lookahead.Text}
		default:
			return hoisted
		}
		//
		p.index++
		p.srcmap.Put(stmt, lookahead.Span)
		hoisted = append(hoisted, stmt)
	}
}

func (p *Parser) parseRegister(opcode *isa.Opcode) (ast.Operand, []source.SyntaxError) {
	tok, errs := p.expect(opcode, REGISTER)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	reg := &ast.Register{Index: uint8(tok.Value)}
	p.srcmap.Put(reg, tok.Span)
	//
	return reg, nil
}

func (p *Parser) parseCondition(opcode *isa.Opcode) (ast.Operand, []source.SyntaxError) {
	tok, errs := p.expect(opcode, CONDITION)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	cond := &ast.Condition{Condition: tok.Condition}
	p.srcmap.Put(cond, tok.Span)
	//
	return cond, nil
}

func (p *Parser) parseJumpTarget(opcode *isa.Opcode) (ast.Operand, []source.SyntaxError) {
	var (
		target *ast.JumpTarget
		tok    Token
		errs   []source.SyntaxError
	)
	//
	if tok, errs = p.expect(opcode, IMMEDIATE, LABEL_REF); len(errs) > 0 {
		return nil, errs
	} else if tok.Kind == IMMEDIATE && tok.Value >= isa.PAGE_SIZE {
		return nil, p.syntaxErrors(tok, fmt.Sprintf("jump target out of range (max %d)", isa.PAGE_SIZE-1))
	} else if tok.Kind == IMMEDIATE {
		target = ast.LiteralTarget(tok.Value)
	} else {
		target = ast.UnresolvedTarget(tok.Text)
	}
	//
	p.srcmap.Put(target, tok.Span)
	//
	return target, nil
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not one of those expected for
// an operand of the given opcode.
func (p *Parser) expect(opcode *isa.Opcode, kinds ...uint) (Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	for _, kind := range kinds {
		if lookahead.Kind == kind {
			p.index++
			return lookahead, nil
		}
	}
	//
	var names = make([]string, len(kinds))
	//
	for i, kind := range kinds {
		names[i] = KindName(kind)
	}
	//
	msg := fmt.Sprintf("expected %s after %s, found %s", strings.Join(names, " or "), opcode.Mnemonic,
		KindName(lookahead.Kind))
	//
	return lookahead, p.syntaxErrors(lookahead, msg)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token Token, msg string) []source.SyntaxError {
	return p.srcfile.SyntaxErrors(token.Span, msg)
}
