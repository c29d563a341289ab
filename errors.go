// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "errors"

// Structural errors. A structural error means the input cannot possibly be a
// valid DEX file (or this parser's supported subset of one); parsing aborts
// and no partial model is returned.
var (
	// ErrInvalidDexSize is returned when the file is smaller than a DEX header.
	ErrInvalidDexSize = errors.New("not a dex file, smaller than header size")

	// ErrMagicNotFound is returned when the 4-byte "dex\n" magic is absent.
	ErrMagicNotFound = errors.New("dex magic not found")

	// ErrUnsupportedVersion is returned when the 3-byte version digits are not
	// recognized ASCII digits.
	ErrUnsupportedVersion = errors.New("unrecognized dex format version")

	// ErrOutsideBoundary is returned when a read would cross the end of the
	// input buffer.
	ErrOutsideBoundary = errors.New("reading data outside file boundary")

	// ErrInvalidTableOffset is returned when a header (size, offset) pair
	// would read past the end of the file.
	ErrInvalidTableOffset = errors.New("table offset plus size exceeds file length")

	// ErrULEB128Overflow is returned when a ULEB128 sequence exceeds 5 bytes
	// without terminating.
	ErrULEB128Overflow = errors.New("uleb128 sequence exceeds 5 bytes")

	// ErrTooManyClassDefs is returned when the header's class_defs_size
	// exceeds Options.MaxClassDefsCount.
	ErrTooManyClassDefs = errors.New("class_defs_size exceeds configured maximum")

	// ErrTooManyStrings is returned when the header's string_ids_size
	// exceeds Options.MaxStringsCount.
	ErrTooManyStrings = errors.New("string_ids_size exceeds configured maximum")
)
