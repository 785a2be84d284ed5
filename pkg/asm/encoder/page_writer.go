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

	"github.com/consensys/go-carbon/pkg/isa"
)

// Annotation is a piece of text attached to a given slot of a given page.  A
// slot of -1 indicates the annotation is attached to the page itself, rather
// than to any byte within it.
type Annotation struct {
	Text string
	Page uint
	Slot int
}

// PageWriter lays out bytes within a fixed grid of pages.  Writing always
// happens at the cursor, which advances one slot per byte written and can be
// moved to the start of any page.
type PageWriter struct {
	image Image
	// Page on which the cursor is positioned.
	page uint
	// Offset of cursor within current page.
	offset uint
}

// NewPageWriter constructs a page writer whose cursor is positioned at the
// start of the first page, and whose pages are initially zeroed.
func NewPageWriter() *PageWriter {
	return &PageWriter{}
}

// Page returns the page at which the cursor is positioned.
func (p *PageWriter) Page() uint {
	return p.page
}

// Offset returns the offset of the cursor within the current page.
func (p *PageWriter) Offset() uint {
	return p.offset
}

// Address returns the absolute address of the cursor.
func (p *PageWriter) Address() uint {
	return p.page*isa.PAGE_SIZE + p.offset
}

// SetPage moves the cursor to the start of a given page.
func (p *PageWriter) SetPage(page uint) error {
	if page >= isa.NUM_PAGES {
		return fmt.Errorf("page %d out of range", page)
	}
	//
	p.page, p.offset = page, 0
	//
	return nil
}

// Write a byte at the cursor, and advance the cursor.  This fails if the
// current page is already full.
func (p *PageWriter) Write(value uint8) error {
	if p.offset >= isa.PAGE_SIZE {
		return fmt.Errorf("page %d overflow (max %d bytes)", p.page, isa.PAGE_SIZE)
	}
	//
	p.image.pages[p.page][p.offset] = value
	p.image.written[p.page] |= 1 << p.offset
	p.offset++
	//
	return nil
}

// Annotate the most recently written byte on the current page.  If nothing has
// been written on this page since the cursor arrived, the annotation attaches
// to the page itself.
func (p *PageWriter) Annotate(text string) {
	p.image.annotations = append(p.image.annotations, Annotation{text, p.page, int(p.offset) - 1})
}

// Image returns the memory image constructed so far.
func (p *PageWriter) Image() *Image {
	image := p.image
	image.annotations = append([]Annotation(nil), p.image.annotations...)
	//
	return &image
}
