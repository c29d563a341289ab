// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/rs/zerolog"
)

// Default limits applied when Options does not set its own, guarding
// against a maliciously-crafted header driving unbounded allocation.
const (
	MaxDefaultClassDefsCount = 1 << 20
	MaxDefaultStringsCount   = 1 << 22
)

// Options configures parsing.
type Options struct {
	// Fast parses only the header and the string, type, proto, field and
	// method tables; the class_defs table and the class bodies it points
	// at (fields, methods, code items) are left unparsed.
	Fast bool

	// MaxClassDefsCount bounds class_defs_size; 0 means
	// MaxDefaultClassDefsCount.
	MaxClassDefsCount uint32

	// MaxStringsCount bounds string_ids_size; 0 means
	// MaxDefaultStringsCount.
	MaxStringsCount uint32

	// Logger receives structural-error and best-effort-recovery events.
	// A disabled zerolog.Logger is used when nil.
	Logger *zerolog.Logger
}

// File is a parsed DEX file: the header plus the eight top-level tables
// and every class's field/method/code-item data.
type File struct {
	Header *Header

	Strings   []string
	Types     []uint32 // string_ids indices, one per type_ids entry
	Protos    []Proto
	Fields    []Field
	Methods   []Method
	ClassDefs []ClassDef

	data mmap.MMap
	f    *os.File
	opts *Options
	log  zerolog.Logger
}

func normalizeOptions(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	if opts.MaxClassDefsCount == 0 {
		opts.MaxClassDefsCount = MaxDefaultClassDefsCount
	}
	if opts.MaxStringsCount == 0 {
		opts.MaxStringsCount = MaxDefaultStringsCount
	}
	return opts
}

func loggerFor(opts *Options) zerolog.Logger {
	if opts.Logger != nil {
		return *opts.Logger
	}
	return zerolog.Nop()
}

// New memory-maps the named file and returns an unparsed File; call
// Parse to populate it.
func New(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	opts = normalizeOptions(opts)
	file := &File{
		data: data,
		f:    f,
		opts: opts,
		log:  loggerFor(opts),
	}
	return file, nil
}

// NewBytes wraps an in-memory buffer as an unparsed File; call Parse to
// populate it.
func NewBytes(data []byte, opts *Options) (*File, error) {
	opts = normalizeOptions(opts)
	file := &File{
		opts: opts,
		log:  loggerFor(opts),
	}
	file.data = mmap.MMap(data)
	return file, nil
}

// Close releases the memory mapping and closes the underlying file
// descriptor, if any.
func (f *File) Close() error {
	var err error
	if f.data != nil && f.f != nil {
		err = f.data.Unmap()
	}
	if f.f != nil {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Parse decodes the header and every top-level table. In Fast mode, the
// class_defs table is not read at all (ClassDefs stays nil), so no
// class-data (fields/methods/code) is parsed either.
func (f *File) Parse() error {
	c := NewCursor(f.data)

	h, err := ParseHeader(c)
	if err != nil {
		return err
	}
	f.Header = h

	if h.StringIDsSize > f.opts.MaxStringsCount {
		return ErrTooManyStrings
	}
	if h.ClassDefsSize > f.opts.MaxClassDefsCount {
		return ErrTooManyClassDefs
	}

	f.Strings, err = parseStrings(c, h.StringIDsOffset, h.StringIDsSize)
	if err != nil {
		return err
	}
	f.Types, err = parseTypes(c, h.TypeIDsOffset, h.TypeIDsSize)
	if err != nil {
		return err
	}
	f.Protos, err = parseProtos(c, h.ProtoIDsOffset, h.ProtoIDsSize)
	if err != nil {
		return err
	}
	f.Fields, err = parseFields(c, h.FieldIDsOffset, h.FieldIDsSize)
	if err != nil {
		return err
	}
	f.Methods, err = parseMethods(c, h.MethodIDsOffset, h.MethodIDsSize)
	if err != nil {
		return err
	}

	if f.opts.Fast {
		f.log.Debug().Msg("fast mode: skipping class_defs bodies")
		return nil
	}

	f.ClassDefs, err = parseClassDefs(c, h.ClassDefsOffset, h.ClassDefsSize)
	if err != nil {
		return err
	}
	return nil
}

// TypeDescriptorAt resolves a type_ids index to its parsed
// TypeDescriptor, reporting false for an out-of-range index.
func (f *File) TypeDescriptorAt(idx uint32) (TypeDescriptor, bool) {
	return f.typeDescriptor(idx)
}
