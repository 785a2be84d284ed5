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
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed carbon.yaml
var carbonYaml []byte

var (
	carbonOnce  sync.Once
	carbonTable *Table
)

// Default returns the built-in Carbon instruction set.
func Default() *Table {
	carbonOnce.Do(func() {
		var err error
		//
		if carbonTable, err = Load(carbonYaml); err != nil {
			panic(fmt.Sprintf("invalid built-in instruction set: %s", err))
		}
	})
	//
	return carbonTable
}

// Table is an instruction set, mapping mnemonics and condition keywords to
// their encodings.  Tables are immutable once constructed.
type Table struct {
	name       string
	opcodes    []*Opcode
	conditions []*Condition
	// Maps upper case mnemonics to opcodes
	mnemonics map[string]*Opcode
	// Maps upper case condition keywords (including aliases) to conditions
	keywords map[string]*Condition
}

// Name returns the name of this instruction set.
func (p *Table) Name() string {
	return p.name
}

// Opcodes returns the opcodes of this instruction set, in declaration order.
func (p *Table) Opcodes() []*Opcode {
	return p.opcodes
}

// Conditions returns the conditions of this instruction set, in declaration
// order.
func (p *Table) Conditions() []*Condition {
	return p.conditions
}

// Opcode looks up an opcode by its mnemonic, ignoring case.
func (p *Table) Opcode(mnemonic string) (*Opcode, bool) {
	op, ok := p.mnemonics[strings.ToUpper(mnemonic)]
	return op, ok
}

// Condition looks up a condition by any of its keywords, ignoring case.
func (p *Table) Condition(keyword string) (*Condition, bool) {
	cond, ok := p.keywords[strings.ToUpper(keyword)]
	return cond, ok
}

// ConditionOf looks up a condition by its three bit code.
func (p *Table) ConditionOf(code uint8) (*Condition, bool) {
	for _, c := range p.conditions {
		if c.Code == code {
			return c, true
		}
	}
	//
	return nil, false
}

// Keywords returns all condition keywords (including aliases).
func (p *Table) Keywords() []string {
	var keywords []string
	//
	for _, c := range p.conditions {
		keywords = append(keywords, c.Keywords()...)
	}
	//
	return keywords
}

// Decode determines the opcode which produced a given instruction byte, if
// any.  Eight bit patterns are checked before five bit patterns.
func (p *Table) Decode(b uint8) (*Opcode, bool) {
	for _, width := range []uint{8, 5} {
		for _, op := range p.opcodes {
			if op.Width == width && op.Matches(b) {
				return op, true
			}
		}
	}
	//
	return nil, false
}

// ReadFile reads an instruction set from a YAML file on disk.
func ReadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	table, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return table, nil
}

// Load parses an instruction set from its YAML description, and checks it is
// well-formed.
func Load(data []byte) (*Table, error) {
	var (
		file    tableFile
		decoder = yaml.NewDecoder(bytes.NewReader(data))
	)
	// Reject misspelled fields
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&file); err != nil {
		return nil, err
	}
	//
	return file.build()
}

type tableFile struct {
	Name         string          `yaml:"name"`
	Conditions   []conditionFile `yaml:"conditions"`
	Instructions []opcodeFile    `yaml:"instructions"`
}

type conditionFile struct {
	Name    string   `yaml:"name"`
	Code    uint8    `yaml:"code"`
	Aliases []string `yaml:"aliases"`
}

type opcodeFile struct {
	Mnemonic string `yaml:"mnemonic"`
	Pattern  string `yaml:"pattern"`
	Shape    string `yaml:"shape"`
}

func (p *tableFile) build() (*Table, error) {
	var (
		table = &Table{
			name:      p.Name,
			mnemonics: make(map[string]*Opcode),
			keywords:  make(map[string]*Condition),
		}
		errs []error
	)
	//
	for _, c := range p.Conditions {
		cond, err := table.addCondition(c)
		//
		if err != nil {
			errs = append(errs, err)
		} else {
			table.conditions = append(table.conditions, cond)
		}
	}
	//
	for _, o := range p.Instructions {
		op, err := table.addOpcode(o)
		//
		if err != nil {
			errs = append(errs, err)
		} else {
			table.opcodes = append(table.opcodes, op)
		}
	}
	//
	if len(table.opcodes) == 0 {
		errs = append(errs, errors.New("no instructions declared"))
	}
	//
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	//
	return table, nil
}

func (p *Table) addCondition(c conditionFile) (*Condition, error) {
	if c.Code == 0 || c.Code > OPERAND_MASK {
		return nil, fmt.Errorf("condition %s has invalid code %d", c.Name, c.Code)
	} else if other, ok := p.ConditionOf(c.Code); ok {
		return nil, fmt.Errorf("condition %s has same code as %s", c.Name, other.Name)
	}
	//
	cond := &Condition{strings.ToUpper(c.Name), c.Code, nil}
	//
	for _, alias := range c.Aliases {
		cond.Aliases = append(cond.Aliases, strings.ToUpper(alias))
	}
	//
	for _, kw := range cond.Keywords() {
		if !isKeyword(kw) {
			return nil, fmt.Errorf("invalid condition keyword \"%s\"", kw)
		} else if _, ok := p.keywords[kw]; ok {
			return nil, fmt.Errorf("duplicate condition keyword \"%s\"", kw)
		}
		//
		p.keywords[kw] = cond
	}
	//
	return cond, nil
}

func (p *Table) addOpcode(o opcodeFile) (*Opcode, error) {
	var mnemonic = strings.ToUpper(o.Mnemonic)
	//
	shape, err := ParseShape(o.Shape)
	if err != nil {
		return nil, fmt.Errorf("instruction %s: %w", mnemonic, err)
	}
	//
	pattern, err := strconv.ParseUint(o.Pattern, 2, 8)
	//
	switch {
	case !isMnemonic(mnemonic):
		return nil, fmt.Errorf("invalid mnemonic \"%s\"", o.Mnemonic)
	case err != nil || (len(o.Pattern) != 5 && len(o.Pattern) != 8):
		return nil, fmt.Errorf("instruction %s has invalid pattern \"%s\"", mnemonic, o.Pattern)
	case len(o.Pattern) == 8 && shape != NONE:
		return nil, fmt.Errorf("instruction %s has eight bit pattern but takes operands", mnemonic)
	}
	//
	if _, ok := p.mnemonics[mnemonic]; ok {
		return nil, fmt.Errorf("duplicate mnemonic \"%s\"", mnemonic)
	} else if _, ok := p.keywords[mnemonic]; ok {
		return nil, fmt.Errorf("mnemonic \"%s\" clashes with condition keyword", mnemonic)
	}
	//
	op := &Opcode{mnemonic, uint8(pattern), uint(len(o.Pattern)), shape}
	//
	if len(o.Pattern) == 5 {
		op.Pattern = op.Pattern << OPERAND_BITS
	}
	// Check patterns are distinguishable
	for _, other := range p.opcodes {
		mask := op.Mask() & other.Mask()
		//
		if op.Pattern&mask == other.Pattern&mask {
			return nil, fmt.Errorf("instruction %s overlaps with %s", mnemonic, other.Mnemonic)
		}
	}
	//
	p.mnemonics[mnemonic] = op
	//
	return op, nil
}

// Mnemonics are made up from word characters, but cannot be numbers.
func isMnemonic(s string) bool {
	return len(s) > 0 && !isNumber(s) && !slices.ContainsFunc([]rune(s), func(c rune) bool {
		return !isWordChar(c)
	})
}

// Condition keywords are made up from word characters, optionally prefixed by
// '!', but cannot be numbers.
func isKeyword(s string) bool {
	return isMnemonic(strings.TrimPrefix(s, "!"))
}

func isNumber(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func isWordChar(c rune) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
