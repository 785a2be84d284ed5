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
package lex

import (
	"slices"
	"testing"

	"github.com/consensys/go-carbon/pkg/util/assert"
	"github.com/consensys/go-carbon/pkg/util/source"
)

func TestLexer_00(t *testing.T) {
	var tokens = []Token{
		{END_OF, source.NewSpan(0, 0)},
	}

	checkLexer(t, "", 0, tokens...)
}

func TestLexer_01(t *testing.T) {
	var tokens = []Token{
		{NUMBER, source.NewSpan(0, 2)},
		{END_OF, source.NewSpan(2, 2)},
	}

	checkLexer(t, "12", 0, tokens...)
}

func TestLexer_02(t *testing.T) {
	var tokens = []Token{
		{NUMBER, source.NewSpan(0, 1)},
		{WSPACE, source.NewSpan(1, 3)},
		{WORD, source.NewSpan(3, 6)},
		{END_OF, source.NewSpan(6, 6)},
	}

	checkLexer(t, "1  add", 0, tokens...)
}

func TestLexer_03(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 1)},
	}

	checkLexer(t, "x?", 1, tokens...)
}

// Equal length matches resolve to the earliest rule.
func TestLexer_04(t *testing.T) {
	var tokens = []Token{
		{KEYWORD, source.NewSpan(0, 2)},
		{END_OF, source.NewSpan(2, 2)},
	}

	checkLexer(t, "lt", 0, tokens...)
}

// Longer matches win regardless of rule order.
func TestLexer_05(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 3)},
		{END_OF, source.NewSpan(3, 3)},
	}

	checkLexer(t, "ltx", 0, tokens...)
}

func TestLexer_06(t *testing.T) {
	var tokens = []Token{
		{KEYWORD, source.NewSpan(0, 4)},
		{WSPACE, source.NewSpan(4, 5)},
		{KEYWORD, source.NewSpan(5, 7)},
		{END_OF, source.NewSpan(7, 7)},
	}

	checkLexer(t, "LTEQ Lt", 0, tokens...)
}

// Numbers are also words, but have higher priority.
func TestLexer_07(t *testing.T) {
	var tokens = []Token{
		{NUMBER, source.NewSpan(0, 3)},
		{WSPACE, source.NewSpan(3, 4)},
		{WORD, source.NewSpan(4, 7)},
		{END_OF, source.NewSpan(7, 7)},
	}

	checkLexer(t, "123 12a", 0, tokens...)
}

const END_OF uint = 0
const WSPACE uint = 1
const KEYWORD uint = 2
const NUMBER uint = 3
const WORD uint = 4

var whitespace Scanner[rune] = Many(Or(Unit(' '), Unit('\t')))

var number Scanner[rune] = Many(Within('0', '9'))

var word Scanner[rune] = Many(Or(Within('0', '9'), Within('a', 'z'), Within('A', 'Z')))

var keyword Scanner[rune] = Longest(Keyword("lt"), Keyword("lteq"))

var rules []LexRule[rune] = []LexRule[rune]{
	Rule(whitespace, WSPACE),
	Rule(keyword, KEYWORD),
	Rule(number, NUMBER),
	Rule(word, WORD),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	items := []rune(input)
	// Construct text lexer
	lexer := NewLexer[rune](items, rules...)
	// Apply lexer
	tokens := lexer.Collect()
	// Keep scanning
	if !slices.Equal(tokens, expected) {
		t.Errorf("got %v, expected %v", tokens, expected)
	} else if lexer.Remaining() != remainder {
		n := len(items) - int(lexer.Remaining())
		t.Errorf("unmatched items: %v", items[n:])
	}
}

func TestLexerSequence(t *testing.T) {
	rule := Sequence(
		Unit('a'),
		Unit('b'),
		Unit('c'),
	)
	assert.Equal(t, 0, rule([]int32{'a', 'c', 'c'}))
	assert.Equal(t, 3, rule([]int32{'a', 'b', 'c'}))
	assert.Equal(t, 0, rule([]int32{'a', 'b'}))
}

func TestLexerSequenceNullableLast(t *testing.T) {
	rule := SequenceNullableLast(Unit('#'), Until('\n'))
	assert.Equal(t, 1, rule([]int32{'#'}))
	assert.Equal(t, 1, rule([]int32{'#', '\n'}))
	assert.Equal(t, 3, rule([]int32{'#', 'a', 'b', '\n', 'c'}))
	assert.Equal(t, 0, rule([]int32{'a', '#'}))
}

func TestLexerNot(t *testing.T) {
	rule := Many(Not(' ', '\n'))
	assert.Equal(t, 3, rule([]int32{'a', 'b', 'c', ' ', 'd'}))
	assert.Equal(t, 0, rule([]int32{'\n'}))
}
