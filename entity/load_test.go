// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "AElig": { "codepoints": [198], "characters": "Æ" },
  "Aopf": { "codepoints": [120120], "characters": "𝔸" },
  "acE": { "codepoints": [8766, 819], "characters": "∾̳" },
  "blank": { "codepoints": [], "characters": "" }
}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	table, err := Load(writeFile(t, "entities.json", []byte(sampleJSON)))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	// Source order is preserved.
	var names []string
	for _, rec := range table.Records() {
		names = append(names, rec.Name)
	}
	require.Equal(t, []string{"AElig", "Aopf", "acE", "blank"}, names)

	rec, ok := table.Get("AElig")
	require.True(t, ok)
	require.Equal(t, []uint32{198}, rec.Codepoints)
	require.Equal(t, "Æ", rec.Characters)

	// A surrogate-pair escape decodes to a single supplementary rune.
	rec, ok = table.Get("Aopf")
	require.True(t, ok)
	require.Equal(t, "\U0001D538", rec.Characters)

	rec, ok = table.Get("acE")
	require.True(t, ok)
	require.Equal(t, []uint32{8766, 819}, rec.Codepoints)

	// Empty codepoints and characters are valid.
	rec, ok = table.Get("blank")
	require.True(t, ok)
	require.Empty(t, rec.Codepoints)
	require.Equal(t, "", rec.Characters)
}

func TestLoadUnknownFieldsIgnored(t *testing.T) {
	src := `{"amp": {"codepoints": [38], "characters": "&", "legacy": true}}`
	table, err := Load(writeFile(t, "entities.json", []byte(src)))
	require.NoError(t, err)

	rec, ok := table.Get("amp")
	require.True(t, ok)
	require.Equal(t, []uint32{38}, rec.Codepoints)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	require.Contains(t, err.Error(), "nope.json")
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"truncated", `{"amp": {"codepoints": [38`},
		{"top level array", `[1, 2, 3]`},
		{"record not an object", `{"amp": 38}`},
		{"missing codepoints", `{"amp": {"characters": "&"}}`},
		{"missing characters", `{"amp": {"codepoints": [38]}}`},
		{"codepoints not an array", `{"amp": {"codepoints": 38, "characters": "&"}}`},
		{"characters not a string", `{"amp": {"codepoints": [38], "characters": 38}}`},
		{"negative codepoint", `{"amp": {"codepoints": [-1], "characters": "&"}}`},
		{"fractional codepoint", `{"amp": {"codepoints": [38.5], "characters": "&"}}`},
		{"duplicate names", `{"amp": {"codepoints": [38], "characters": "&"}, "amp": {"codepoints": [38], "characters": "&"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "entities.json", []byte(tt.src)))
			require.Error(t, err)

			var mde *MalformedDataError
			require.ErrorAs(t, err, &mde)
		})
	}
}

func TestLoadMalformedRecordName(t *testing.T) {
	src := `{"amp": {"codepoints": [38], "characters": "&"}, "bad": {"characters": "x"}}`
	_, err := Load(writeFile(t, "entities.json", []byte(src)))
	require.Error(t, err)

	var mde *MalformedDataError
	require.ErrorAs(t, err, &mde)
	require.Equal(t, "bad", mde.Name)
}

func TestLoadYAML(t *testing.T) {
	src := `
AElig:
  codepoints: [198]
  characters: "Æ"
amp:
  codepoints: [38]
  characters: "&"
blank:
  codepoints: []
  characters: ""
`
	table, err := Load(writeFile(t, "entities.yaml", []byte(src)))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	require.Equal(t, "AElig", table.Records()[0].Name)
	require.Equal(t, "amp", table.Records()[1].Name)

	rec, ok := table.Get("AElig")
	require.True(t, ok)
	require.Equal(t, []uint32{198}, rec.Codepoints)
	require.Equal(t, "Æ", rec.Characters)
}

func TestLoadYAMLMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"scalar document", `just a string`},
		{"missing characters", "amp:\n  codepoints: [38]\n"},
		{"codepoints not a sequence", "amp:\n  codepoints: 38\n  characters: \"&\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "entities.yaml", []byte(tt.src)))
			require.Error(t, err)

			var mde *MalformedDataError
			require.ErrorAs(t, err, &mde)
		})
	}
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sampleJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	table, err := Load(writeFile(t, "entities.json.gz", buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())
}

func TestLoadGzipCorrupt(t *testing.T) {
	_, err := Load(writeFile(t, "entities.json.gz", []byte("not gzip")))
	require.Error(t, err)

	var mde *MalformedDataError
	require.ErrorAs(t, err, &mde)
}

func TestLoadUTF16BOM(t *testing.T) {
	units := utf16.Encode([]rune(sampleJSON))
	data := make([]byte, 2+2*len(units))
	data[0], data[1] = 0xFF, 0xFE // UTF-16LE BOM
	for i, u := range units {
		binary.LittleEndian.PutUint16(data[2+2*i:], u)
	}

	table, err := Load(writeFile(t, "entities.json", data))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	rec, ok := table.Get("Aopf")
	require.True(t, ok)
	require.Equal(t, "\U0001D538", rec.Characters)
}
