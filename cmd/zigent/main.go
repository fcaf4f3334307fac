// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zigent generates Zig entity arrays from named character-entity tables
// such as the WHATWG entities.json.
//
// Usage:
//
//	zigent generate entities.json -o html_entities.zig
//	zigent check entities.json
package main

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zigent/zigent/entity"
	"github.com/zigent/zigent/internal/gen"
	"github.com/zigent/zigent/zig"
)

// Overridden at build time via -ldflags.
var version = "dev"

var CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit." short:"v"`
	Debug   bool             `help:"Whether to enable debug logging."`

	Generate struct {
		Input      string `arg:"" help:"Entity table file (.json, .yaml, optionally .gz-compressed)."`
		Output     string `help:"Write generated Zig source to this file instead of stdout." short:"o" type:"path"`
		StructName string `help:"Name of the generated Zig struct type." default:"HtmlEntity"`
		ArrayName  string `help:"Name of the generated array constant." default:"htmlEntities"`
	} `cmd:"" help:"Generate a Zig entity array from an entity table."`

	Check struct {
		Input string `arg:"" help:"Entity table file to validate."`
	} `cmd:"" help:"Load and validate an entity table without generating output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	// Generated source goes to stdout; keep logs on stderr.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("zigent"),
		kong.Description("a Zig entity array generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{"version": "zigent " + version})

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "generate <input>":
		if err := generateCommand(); err != nil {
			writeError(err)
		}
	case "check <input>":
		if err := checkCommand(); err != nil {
			writeError(err)
		}
	}
}

func generateCommand() error {
	table, err := entity.Load(CLI.Generate.Input)
	if err != nil {
		return err
	}
	logFallbacks(table)

	w := gen.NewCodeWriter()
	zig.EmitTo(w, table, zig.Options{
		StructName: CLI.Generate.StructName,
		ArrayName:  CLI.Generate.ArrayName,
	})
	log.Debug().
		Int("entities", table.Len()).
		Int("bytes", w.Size).
		Uint32("checksum", w.Checksum()).
		Msg("generated entity array")

	if CLI.Generate.Output != "" {
		if err := w.WriteZigFile(CLI.Generate.Output); err != nil {
			return err
		}
		log.Info().Str("output", CLI.Generate.Output).Msg("wrote generated file")
		return nil
	}
	_, err = w.WriteZig(os.Stdout)
	return err
}

func checkCommand() error {
	table, err := entity.Load(CLI.Check.Input)
	if err != nil {
		return err
	}
	logFallbacks(table)
	log.Info().
		Str("input", CLI.Check.Input).
		Int("entities", table.Len()).
		Msg("entity table is valid")
	return nil
}

// logFallbacks notes records whose rendered string is not exactly one valid
// rune. Such records are still emitted with a best-effort escape, but anyone
// relying on bit-exact output should verify them.
func logFallbacks(table *entity.Table) {
	for _, rec := range table.Records() {
		s := rec.Characters
		if s == "" || utf8.ValidString(s) && utf8.RuneCountInString(s) == 1 {
			continue
		}
		log.Debug().
			Str("name", rec.Name).
			Str("characters", fmt.Sprintf("%q", s)).
			Msg("entity is not a single character; emitting first scalar only")
	}
}
