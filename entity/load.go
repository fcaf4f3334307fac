// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// Load reads an entity table from the file at path.
//
// The expected schema is a mapping from entity name to an object with a
// "codepoints" field (sequence of non-negative integers) and a "characters"
// field (string); both fields are required, either may be empty. Unknown
// fields are ignored. Record order in the file is preserved in the table.
//
// JSON is the primary format. Files ending in .yaml or .yml are decoded as
// YAML, and a .gz suffix is stripped after transparent decompression, so
// entities.json.gz works. A UTF-16 byte-order mark is honored.
//
// Load returns *NotFoundError if the path is unreadable and
// *MalformedDataError for any parse or schema failure. The file is read in
// full before parsing begins.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &MalformedDataError{Path: path, Err: err}
		}
		if data, err = io.ReadAll(zr); err != nil {
			return nil, &MalformedDataError{Path: path, Err: err}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	// Normalize a BOM-signaled UTF-16 payload to UTF-8. Without a BOM the
	// payload passes through untouched.
	data, _, err = transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, &MalformedDataError{Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return loadYAML(path, data)
	default:
		return loadJSON(path, data)
	}
}

func loadJSON(path string, data []byte) (*Table, error) {
	// The token API observes object members in document order, which a map
	// round-trip would lose. Invalid UTF-8 in entity strings is tolerated;
	// duplicate member names are rejected by the decoder.
	dec := jsontext.NewDecoder(bytes.NewReader(data), jsontext.AllowInvalidUTF8(true))

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, &MalformedDataError{Path: path, Err: err}
	}
	if tok.Kind() != '{' {
		return nil, &MalformedDataError{Path: path, Err: errors.New("top-level value is not an object")}
	}

	table := NewTable()
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, &MalformedDataError{Path: path, Err: err}
		}
		name := tok.String()
		rec, err := readJSONRecord(dec, name)
		if err != nil {
			return nil, &MalformedDataError{Path: path, Name: name, Err: err}
		}
		if err := table.Add(rec); err != nil {
			return nil, &MalformedDataError{Path: path, Err: err}
		}
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, &MalformedDataError{Path: path, Err: err}
	}
	return table, nil
}

func readJSONRecord(dec *jsontext.Decoder, name string) (Record, error) {
	rec := Record{Name: name}
	if k := dec.PeekKind(); k != '{' {
		return rec, errors.New("record is not an object")
	}
	if _, err := dec.ReadToken(); err != nil {
		return rec, err
	}

	var hasCodepoints, hasCharacters bool
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return rec, err
		}
		switch tok.String() {
		case "codepoints":
			cps, err := readCodepoints(dec)
			if err != nil {
				return rec, err
			}
			rec.Codepoints = cps
			hasCodepoints = true
		case "characters":
			tok, err := dec.ReadToken()
			if err != nil {
				return rec, err
			}
			if tok.Kind() != '"' {
				return rec, errors.New(`"characters" is not a string`)
			}
			rec.Characters = tok.String()
			hasCharacters = true
		default:
			if err := dec.SkipValue(); err != nil {
				return rec, err
			}
		}
	}
	if _, err := dec.ReadToken(); err != nil {
		return rec, err
	}

	if !hasCodepoints {
		return rec, errors.New(`missing "codepoints" field`)
	}
	if !hasCharacters {
		return rec, errors.New(`missing "characters" field`)
	}
	return rec, nil
}

func readCodepoints(dec *jsontext.Decoder) ([]uint32, error) {
	if k := dec.PeekKind(); k != '[' {
		return nil, errors.New(`"codepoints" is not an array`)
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	cps := []uint32{}
	for dec.PeekKind() != ']' {
		v, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(string(v), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("codepoint %s: not a non-negative integer", v)
		}
		cps = append(cps, uint32(n))
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	return cps, nil
}

func loadYAML(path string, data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDataError{Path: path, Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &MalformedDataError{Path: path, Err: errors.New("top-level value is not a mapping")}
	}

	table := NewTable()
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		rec, err := yamlRecord(name, root.Content[i+1])
		if err != nil {
			return nil, &MalformedDataError{Path: path, Name: name, Err: err}
		}
		if err := table.Add(rec); err != nil {
			return nil, &MalformedDataError{Path: path, Err: err}
		}
	}
	return table, nil
}

func yamlRecord(name string, n *yaml.Node) (Record, error) {
	rec := Record{Name: name}
	if n.Kind != yaml.MappingNode {
		return rec, errors.New("record is not a mapping")
	}

	var hasCodepoints, hasCharacters bool
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "codepoints":
			if val.Kind != yaml.SequenceNode {
				return rec, errors.New(`"codepoints" is not a sequence`)
			}
			cps := []uint32{}
			for _, c := range val.Content {
				u, err := strconv.ParseUint(c.Value, 10, 32)
				if err != nil {
					return rec, fmt.Errorf("codepoint %q: not a non-negative integer", c.Value)
				}
				cps = append(cps, uint32(u))
			}
			rec.Codepoints = cps
			hasCodepoints = true
		case "characters":
			var s string
			if err := val.Decode(&s); err != nil {
				return rec, err
			}
			rec.Characters = s
			hasCharacters = true
		}
	}

	if !hasCodepoints {
		return rec, errors.New(`missing "codepoints" field`)
	}
	if !hasCharacters {
		return rec, errors.New(`missing "characters" field`)
	}
	return rec, nil
}
