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
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/go-carbon/pkg/asm/encoder"
)

// PAGE_HEADER is the prefix of the line which begins each page in the text
// format.
const PAGE_HEADER = "// PAGE"

// WriteText renders a sequence of items in the text format.  Each page begins
// with a header line "// PAGE n", and each byte is written on its own line as
// eight binary digits.  Annotations are appended (space separated) to the line
// of the item they follow.
func WriteText(w io.Writer, items []encoder.Item) error {
	var (
		writer = bufio.NewWriter(w)
		first  = true
	)
	//
	for _, item := range items {
		var err error
		//
		switch item.Kind {
		case encoder.PAGE_START:
			if !first {
				_, err = writer.WriteString("\n")
			}
			//
			if err == nil {
				_, err = fmt.Fprintf(writer, "%s %d", PAGE_HEADER, item.Page)
			}
		case encoder.BYTE:
			_, err = fmt.Fprintf(writer, "\n%08b", item.Byte)
		case encoder.ANNOTATION:
			_, err = fmt.Fprintf(writer, " %s", item.Text)
		}
		//
		if err != nil {
			return err
		}
		//
		first = false
	}
	//
	if !first {
		if _, err := writer.WriteString("\n"); err != nil {
			return err
		}
	}
	//
	return writer.Flush()
}

// WriteBinary writes the raw contents of an image, one byte per address slot.
func WriteBinary(w io.Writer, image *encoder.Image) error {
	_, err := w.Write(image.Bytes())
	return err
}

// ReadText reads back bytes from the text format.  Page headers and
// annotations are ignored, as are blank lines.
func ReadText(r io.Reader) ([]byte, error) {
	var (
		scanner = bufio.NewScanner(r)
		data    []byte
		lineno  = 0
	)
	//
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		//
		lineno++
		//
		if line == "" || strings.HasPrefix(line, PAGE_HEADER) {
			continue
		}
		//
		digits, _, _ := strings.Cut(line, " ")
		//
		if len(digits) != 8 {
			return nil, fmt.Errorf("line %d: expected eight binary digits, found \"%s\"", lineno, digits)
		}
		//
		b, err := strconv.ParseUint(digits, 2, 8)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid byte \"%s\"", lineno, digits)
		}
		//
		data = append(data, uint8(b))
	}
	//
	return data, scanner.Err()
}
