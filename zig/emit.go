// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zig

import (
	"strconv"
	"strings"

	"github.com/zigent/zigent/entity"
	"github.com/zigent/zigent/internal/gen"
)

// Options configures the emitted Zig source.
type Options struct {
	// StructName is the name of the generated struct type.
	// Defaults to "HtmlEntity".
	StructName string

	// ArrayName is the name of the generated array constant.
	// Defaults to "htmlEntities".
	ArrayName string
}

func (o Options) withDefaults() Options {
	if o.StructName == "" {
		o.StructName = "HtmlEntity"
	}
	if o.ArrayName == "" {
		o.ArrayName = "htmlEntities"
	}
	return o
}

// Emit renders the table as Zig source: a struct declaration with name,
// codepoints and characters fields, followed by a comptime array literal
// holding one entry per record in table iteration order. The output is
// deterministic for a given table.
//
// Entity names are embedded verbatim in the literal; names containing quote
// or backslash characters would corrupt the output and are the caller's
// responsibility to avoid.
func Emit(table *entity.Table, opts Options) string {
	w := gen.NewCodeWriter()
	EmitTo(w, table, opts)
	return w.String()
}

// EmitTo is like Emit but assembles the source into w, so callers can reuse
// the writer's size and checksum accounting or write the result to a file.
func EmitTo(w *gen.CodeWriter, table *entity.Table, opts Options) {
	opts = opts.withDefaults()

	w.Printf("const %s = struct {\n", opts.StructName)
	w.Printf("    name: []const u8,\n")
	w.Printf("    codepoints: []const u32,\n")
	w.Printf("    characters: []const u8,\n")
	w.Printf("};\n")
	w.Printf("\n")

	w.Printf("pub const %s = comptime [_]%s{\n", opts.ArrayName, opts.StructName)
	for _, rec := range table.Records() {
		w.Printf("    .{ .name = \"%s\", .codepoints = %s, .characters = \"%s\" },\n",
			rec.Name, codepointSlice(rec.Codepoints), Escape(rec.Characters))
	}
	w.Printf("};\n")
}

// codepointSlice renders a record's codepoints as a Zig u32 slice literal,
// unchanged from source order. An empty sequence renders as &[_]u32{}.
func codepointSlice(cps []uint32) string {
	var sb strings.Builder
	sb.WriteString("&[_]u32{")
	for i, cp := range cps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(cp), 10))
	}
	sb.WriteString("}")
	return sb.String()
}

// Generate loads the entity table at path and returns the emitted Zig
// source. It is the whole pipeline in one call: any load error aborts the
// generation with no partial output.
func Generate(path string, opts Options) (string, error) {
	table, err := entity.Load(path)
	if err != nil {
		return "", err
	}
	return Emit(table, opts), nil
}
