// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity defines named character-entity tables and loads them from
// structured data files.
//
// A table maps entity names (such as the WHATWG HTML named character
// references) to the Unicode codepoints they stand for and to the rendered
// character string. Tables preserve the order in which records appear in the
// source file, which in turn keeps generated output deterministic.
package entity

import "fmt"

// Record is a single entity definition. It is immutable once added to a
// Table.
type Record struct {
	// Name is the entity's unique key, for example "AElig".
	Name string

	// Codepoints are the Unicode codepoints the entity expands to, in
	// source order. The slice may be empty.
	Codepoints []uint32

	// Characters is the rendered character string for the entity,
	// normally exactly one logical character. It may be empty.
	Characters string
}

// Table is an ordered collection of entity records. Iteration order is the
// order in which records were added, which the loader arranges to be the
// order of appearance in the source file. Names are unique within a table.
//
// A Table is not safe for concurrent mutation, but is read-only after load.
type Table struct {
	records []Record
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends a record to the table. It fails if a record with the same name
// is already present.
func (t *Table) Add(r Record) error {
	if _, ok := t.index[r.Name]; ok {
		return fmt.Errorf("duplicate entity name %q", r.Name)
	}
	t.index[r.Name] = len(t.records)
	t.records = append(t.records, r)
	return nil
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Get returns the record with the given name.
func (t *Table) Get(name string) (Record, bool) {
	i, ok := t.index[name]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// Records returns the table's records in insertion order. The returned slice
// is shared with the table and must not be modified.
func (t *Table) Records() []Record {
	return t.records
}
