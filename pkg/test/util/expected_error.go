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
package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-carbon/pkg/util/source"
)

// ERROR_ATTRIBUTE marks a line describing an expected error.  Since this
// begins with a comment marker, such lines are ignored by the assembler.
const ERROR_ATTRIBUTE = "#error"

// Extract the expected syntax error described on a given line of the source
// file, e.g. "#error:3:5-7:unknown label".  Line and column numbers count from
// one, and the end column is exclusive.
func extractSyntaxError(lineno int, lines []source.Line, srcfile *source.File) (bool, source.SyntaxError, error) {
	var (
		line     = lines[lineno]
		contents = line.String()
	)
	//
	if !strings.HasPrefix(contents, ERROR_ATTRIBUTE) {
		return false, source.SyntaxError{}, nil
	}
	//
	errline, start, end, msg, err := parseExpectedErrorLine(contents)
	if err != nil {
		return true, source.SyntaxError{}, err
	}
	//
	span, err := determineFileSpan(errline, start, end, lines)
	//
	return true, *srcfile.SyntaxError(span, msg), err
}

func parseExpectedErrorLine(contents string) (line, start, end int, msg string, err error) {
	var splits = strings.SplitN(contents, ":", 4)
	//
	if len(splits) < 4 {
		return 0, 0, 0, "", fmt.Errorf("malformed expected error \"%s\", should be e.g. \"%s:X:Y-Z:msg\"",
			contents, ERROR_ATTRIBUTE)
	}
	// Parse line number
	if line, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (%s)", splits[1], err.Error())
	} else if line == 0 {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (lines numbered from 1)", splits[1])
	}
	// Parse span
	if start, end, err = parseExpectedErrorSpan(splits[2]); err != nil {
		return 0, 0, 0, "", err
	}
	//
	return line, start, end, splits[3], nil
}

func parseExpectedErrorSpan(span string) (start, end int, err error) {
	first, last, ok := strings.Cut(span, "-")
	//
	if !ok {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (malformed, should be X-Y)", span)
	} else if start, err = strconv.Atoi(first); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", span, err.Error())
	} else if start == 0 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (columns numbered from 1)", span)
	} else if end, err = strconv.Atoi(last); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", span, err.Error())
	} else if end < start {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (ends before it starts)", span)
	}
	//
	return start, end, nil
}

// Determine the span within the file to which a given line and column range
// corresponds.  A span may end one past the last character of its line, which
// allows errors reported at the end of a line to be described.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (non-existent line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	// Columns are numbered from 1
	start--
	end--
	//
	if start > line.Length() || end > line.Length() {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows to following line)",
			lineno, start+1, end+1)
	}
	//
	return source.NewSpan(line.Start()+start, line.Start()+end), nil
}
