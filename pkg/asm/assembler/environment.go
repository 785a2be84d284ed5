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
	"cmp"
	"slices"
)

// Label represents a label bound to a given address.
type Label struct {
	// Name of the label
	Name string
	// Address the label represents.
	Address uint
}

// SymbolTable maps label names to the addresses at which they are defined.  A
// symbol table is built by the first pass of label resolution, and is only read
// thereafter.
type SymbolTable struct {
	labels map[string]uint
}

// NewSymbolTable constructs an initially empty symbol table.
func NewSymbolTable() SymbolTable {
	return SymbolTable{make(map[string]uint)}
}

// Declare binds a label to a given address, returning false if the label is
// already bound.
func (p *SymbolTable) Declare(name string, address uint) bool {
	if _, ok := p.labels[name]; ok {
		return false
	}
	//
	p.labels[name] = address
	//
	return true
}

// Lookup determines the address bound to a given label (if any).
func (p *SymbolTable) Lookup(name string) (uint, bool) {
	address, ok := p.labels[name]
	return address, ok
}

// Len returns the number of labels in this table.
func (p *SymbolTable) Len() int {
	return len(p.labels)
}

// Labels returns all labels in this table, ordered by address (and then by
// name).
func (p *SymbolTable) Labels() []Label {
	var labels = make([]Label, 0, len(p.labels))
	//
	for name, address := range p.labels {
		labels = append(labels, Label{name, address})
	}
	//
	slices.SortFunc(labels, func(l, r Label) int {
		if c := cmp.Compare(l.Address, r.Address); c != 0 {
			return c
		}
		//
		return cmp.Compare(l.Name, r.Name)
	})
	//
	return labels
}
