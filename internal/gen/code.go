// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen contains helpers for assembling generated Zig source.
package gen

import (
	"bytes"
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"os"
	"strings"
)

// Header is prepended to every generated file.
const Header = "// Code generated by zigent. DO NOT EDIT.\n\n"

// CodeWriter is a utility for writing structured code. It computes the
// content hash and size of written content and normalizes trailing
// whitespace when the buffer is flushed.
type CodeWriter struct {
	buf  bytes.Buffer
	Size int
	Hash hash.Hash32 // content hash
}

// NewCodeWriter returns a new CodeWriter.
func NewCodeWriter() *CodeWriter {
	return &CodeWriter{Hash: fnv.New32()}
}

func (w *CodeWriter) Write(p []byte) (n int, err error) {
	w.Hash.Write(p)
	w.Size += len(p)
	return w.buf.Write(p)
}

// Printf formats into the buffer.
func (w *CodeWriter) Printf(f string, x ...interface{}) {
	fmt.Fprintf(w, f, x...)
}

// WriteComment writes a comment block. All line starts are prefixed with
// "//". Initial and trailing empty lines are gobbled.
func (w *CodeWriter) WriteComment(comment string, args ...interface{}) {
	s := strings.Trim(fmt.Sprintf(comment, args...), "\n")
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			w.Printf("//\n")
			continue
		}
		w.Printf("// %s\n", line)
	}
}

// Checksum returns the hash of all content written so far.
func (w *CodeWriter) Checksum() uint32 {
	return w.Hash.Sum32()
}

// String returns the buffered source text.
func (w *CodeWriter) String() string {
	return w.buf.String()
}

// WriteZig writes the buffered content to out under the generated-code
// header. The buffer is not reset.
func (w *CodeWriter) WriteZig(out io.Writer) (n int, err error) {
	return WriteZig(out, w.buf.Bytes())
}

// WriteZigFile writes the buffered content as a Zig file at filename and
// resets the buffer.
func (w *CodeWriter) WriteZigFile(filename string) error {
	err := WriteZigFile(filename, w.buf.Bytes())
	w.buf.Reset()
	return err
}

// WriteZig writes body to out, prefixed with Header, with runs of blank
// lines collapsed and exactly one trailing newline.
func WriteZig(out io.Writer, body []byte) (n int, err error) {
	return out.Write(append([]byte(Header), clean(body)...))
}

// WriteZigFile creates filename and writes body to it via WriteZig.
func WriteZigFile(filename string, body []byte) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("gen: could not create file %s: %v", filename, err)
	}
	defer f.Close()
	if _, err := WriteZig(f, body); err != nil {
		return fmt.Errorf("gen: could not write file %s: %v", filename, err)
	}
	return nil
}

// clean collapses runs of three or more newlines and guarantees a single
// trailing newline.
func clean(body []byte) []byte {
	for bytes.Contains(body, []byte("\n\n\n")) {
		body = bytes.ReplaceAll(body, []byte("\n\n\n"), []byte("\n\n"))
	}
	body = bytes.TrimRight(body, "\n")
	if len(body) == 0 {
		return nil
	}
	return append(body, '\n')
}
