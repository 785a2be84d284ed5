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
package termio

import (
	"fmt"

	"golang.org/x/term"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// ANSI_RESET clears all attributes.
const ANSI_RESET = "\033[0m"

// Highlighter decorates text with ANSI escapes, but only when the underlying
// output is a terminal.  Otherwise, text passes through unchanged so that
// redirected output remains clean.
type Highlighter struct {
	enabled bool
}

// NewHighlighter constructs a highlighter for a given file descriptor (e.g.
// that of stdout).
func NewHighlighter(fd int) Highlighter {
	return Highlighter{term.IsTerminal(fd)}
}

// PlainHighlighter constructs a highlighter which never decorates.
func PlainHighlighter() Highlighter {
	return Highlighter{false}
}

// Enabled indicates whether this highlighter will decorate text.
func (p Highlighter) Enabled() bool {
	return p.enabled
}

// Colour renders text in a given foreground colour.
func (p Highlighter) Colour(col uint, text string) string {
	return p.wrap(fmt.Sprintf("\033[%dm", 30+col), text)
}

// Bold renders text in bold.
func (p Highlighter) Bold(text string) string {
	return p.wrap("\033[1m", text)
}

func (p Highlighter) wrap(escape string, text string) string {
	if !p.enabled || text == "" {
		return text
	}
	//
	return escape + text + ANSI_RESET
}
