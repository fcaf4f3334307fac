// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import "fmt"

// NotFoundError reports that the input path did not resolve to a readable
// file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entity: input file %q: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedDataError reports that the input file is not valid structured data
// in the expected schema. Name is the offending record's entity name when the
// failure is local to one record, and empty otherwise.
type MalformedDataError struct {
	Path string
	Name string
	Err  error
}

func (e *MalformedDataError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("entity: %s: record %q: %v", e.Path, e.Name, e.Err)
	}
	return fmt.Sprintf("entity: %s: %v", e.Path, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }
