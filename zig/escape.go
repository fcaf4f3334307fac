// Copyright 2025 The Zigent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zig renders entity tables as Zig source: a struct declaration and
// a comptime static array literal, with entity characters encoded as
// \u{HEX} escapes.
package zig

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Escape returns the Zig \u{...} escape for the first logical character of
// s, using uppercase hex digits without zero padding: "A" becomes `\u{41}`,
// U+1D538 becomes `\u{1D538}`. The empty string yields the empty literal.
//
// s is expected to hold exactly one logical character; extra characters are
// ignored. Escape never fails: ill-formed input degrades to a best-effort
// codepoint (see firstScalar) rather than an error.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(`\u{%X}`, firstScalar(s))
}

// firstScalar returns the Unicode scalar value of the first logical
// character of s.
//
// Go strings store supplementary characters as a single rune, so the common
// case is plain UTF-8 decoding. A lenient upstream decoder may instead hand
// us WTF-8: UTF-16 surrogate halves encoded as three-byte sequences, which
// utf8.DecodeRuneInString rejects. A leading high surrogate followed by a
// low surrogate is combined into the true supplementary scalar. A surrogate
// that cannot be paired degrades to its raw code unit value, and any other
// ill-formed sequence degrades to U+FFFD; neither case is an error.
func firstScalar(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if r != utf8.RuneError || size > 1 {
		return r
	}

	u1, n, ok := decodeSurrogate(s)
	if !ok {
		return utf8.RuneError
	}
	if u1 < surrMin+0x400 && len(s) > n { // high surrogate with trailing data
		if u2, _, ok := decodeSurrogate(s[n:]); ok {
			if r := utf16.DecodeRune(u1, u2); r != utf8.RuneError {
				return r
			}
		}
	}
	return u1
}

// Surrogate code unit range.
const (
	surrMin = 0xD800
	surrMax = 0xDFFF
)

// decodeSurrogate reads a WTF-8 encoded UTF-16 surrogate code unit from the
// start of s. Surrogates occupy three bytes, 0xED 0xA0..0xBF 0x80..0xBF.
func decodeSurrogate(s string) (r rune, size int, ok bool) {
	if len(s) < 3 {
		return 0, 0, false
	}
	b0, b1, b2 := s[0], s[1], s[2]
	if b0 != 0xED || b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
		return 0, 0, false
	}
	r = rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
	if r < surrMin || r > surrMax {
		return 0, 0, false
	}
	return r, 3, true
}
