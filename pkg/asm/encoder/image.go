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
	"math/bits"

	"github.com/consensys/go-carbon/pkg/isa"
)

// Item is an element of the flattened output of the encoder.  An item is
// either the start of a page, a byte, or an annotation attached to the item
// which precedes it.
type Item struct {
	Kind ItemKind
	// Page index (for PAGE_START items).
	Page uint
	// Value of byte (for BYTE items).
	Byte uint8
	// Text of annotation (for ANNOTATION items).
	Text string
}

// ItemKind distinguishes the different kinds of item.
type ItemKind uint8

const (
	// PAGE_START marks the beginning of a page.
	PAGE_START ItemKind = iota
	// BYTE is a byte occupying an address slot.
	BYTE
	// ANNOTATION is text attached to the preceding item.
	ANNOTATION
)

// Image is a complete memory image, consisting of a fixed number of fixed size
// pages and the annotations attached to them.
type Image struct {
	pages [isa.NUM_PAGES][isa.PAGE_SIZE]uint8
	// Bitmap of written slots for each page.
	written     [isa.NUM_PAGES]uint32
	annotations []Annotation
}

// Byte returns the byte at a given absolute address.
func (p *Image) Byte(address uint) uint8 {
	return p.pages[address/isa.PAGE_SIZE][address%isa.PAGE_SIZE]
}

// Bytes returns the contents of memory, flattened page by page.
func (p *Image) Bytes() []byte {
	var data = make([]byte, 0, isa.MEMORY_SIZE)
	//
	for _, page := range p.pages {
		data = append(data, page[:]...)
	}
	//
	return data
}

// Page returns the contents of a given page.
func (p *Image) Page(page uint) []byte {
	return p.pages[page][:]
}

// Written checks whether a given slot on a given page was written by the
// program (as opposed to being left as padding).
func (p *Image) Written(page uint, slot uint) bool {
	return p.written[page]&(1<<slot) != 0
}

// Used returns the number of slots written on a given page.
func (p *Image) Used(page uint) uint {
	return uint(bits.OnesCount32(p.written[page]))
}

// Annotations returns all annotations, in the order they were recorded.
func (p *Image) Annotations() []Annotation {
	return p.annotations
}

// Items flattens this image into a sequence of items.  Pages appear in order,
// and each begins with a PAGE_START item.  Annotations are spliced in
// immediately after the byte (or page start) to which they are attached,
// retaining the order in which they were recorded.
func (p *Image) Items() []Item {
	var (
		// Annotations indexed by page, then by slot + 1.
		attached = make(map[[2]uint][]string)
		items    = make([]Item, 0, isa.MEMORY_SIZE+isa.NUM_PAGES+uint(len(p.annotations)))
	)
	//
	for _, a := range p.annotations {
		key := [2]uint{a.Page, uint(a.Slot + 1)}
		attached[key] = append(attached[key], a.Text)
	}
	//
	for page := range isa.NUM_PAGES {
		items = append(items, Item{Kind: PAGE_START, Page: page})
		items = appendAnnotations(items, attached[[2]uint{page, 0}])
		//
		for slot := range isa.PAGE_SIZE {
			items = append(items, Item{Kind: BYTE, Byte: p.pages[page][slot]})
			items = appendAnnotations(items, attached[[2]uint{page, slot + 1}])
		}
	}
	//
	return items
}

func appendAnnotations(items []Item, texts []string) []Item {
	for _, text := range texts {
		items = append(items, Item{Kind: ANNOTATION, Text: text})
	}
	//
	return items
}
