// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "encoding/binary"

// Cursor is a positional reader over an immutable byte slice. It owns no
// data of its own; it is created once per input buffer and discarded with
// it, mirroring the teacher's offset-based File.ReadUint*/structUnpack
// helpers but collected behind a single type since the decoder chases
// offsets constantly (table records, data-section payloads, delta-encoded
// lists) rather than reading a handful of fixed directories.
type Cursor struct {
	buf []byte
	pos uint32
}

// NewCursor returns a Cursor positioned at offset 0 of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() uint32 { return uint32(len(c.buf)) }

// Position returns the current byte offset.
func (c *Cursor) Position() uint32 { return c.pos }

// AtEnd reports whether the cursor has reached the end of the buffer.
func (c *Cursor) AtEnd() bool { return c.pos == uint32(len(c.buf)) }

// Seek moves the cursor to an absolute offset. It does not validate that
// pos is within bounds; out-of-bounds reads are caught by the read methods.
func (c *Cursor) Seek(pos uint32) { c.pos = pos }

// Skip advances the cursor by n bytes without returning anything.
func (c *Cursor) Skip(n uint32) { c.pos += n }

// Take reads the next n bytes and advances the cursor.
func (c *Cursor) Take(n uint32) ([]byte, error) {
	if n > c.Len()-c.pos || c.pos > c.Len() {
		return nil, ErrOutsideBoundary
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Next reads a single byte and advances the cursor.
func (c *Cursor) Next() (byte, error) {
	if c.pos >= c.Len() {
		return 0, ErrOutsideBoundary
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n uint32) ([]byte, error) {
	if n > c.Len()-c.pos || c.pos > c.Len() {
		return nil, ErrOutsideBoundary
	}
	return c.buf[c.pos : c.pos+n], nil
}

// Expect reads one byte and fails if it does not equal b.
func (c *Cursor) Expect(b byte) error {
	got, err := c.Next()
	if err != nil {
		return err
	}
	if got != b {
		return ErrMagicNotFound
	}
	return nil
}

// ExpectMany reads len(bs) bytes and fails on the first mismatch.
func (c *Cursor) ExpectMany(bs []byte) error {
	for _, b := range bs {
		if err := c.Expect(b); err != nil {
			return err
		}
	}
	return nil
}

// TakeUntil reads bytes up to, but not including, the first occurrence of x.
// The cursor stops on x; the caller consumes or inspects it separately.
func (c *Cursor) TakeUntil(x byte) ([]byte, error) {
	var acc []byte
	for {
		p, err := c.Peek(1)
		if err != nil {
			return nil, err
		}
		if p[0] == x {
			return acc, nil
		}
		b, err := c.Next()
		if err != nil {
			return nil, err
		}
		acc = append(acc, b)
	}
}

// ParseULEB128 reads an unsigned little-endian base-128 integer: the
// continuation bit (high bit) of each byte signals whether another byte
// follows; the low 7 bits of each byte are concatenated little-endian.
// At most 5 bytes are consumed, yielding a 32-bit unsigned value.
func (c *Cursor) ParseULEB128() (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := c.Next()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, ErrULEB128Overflow
}

// ReadUint8At reads a uint8 at an absolute offset without moving the cursor.
func (c *Cursor) ReadUint8At(offset uint32) (uint8, error) {
	if offset >= c.Len() {
		return 0, ErrOutsideBoundary
	}
	return c.buf[offset], nil
}

// ReadUint16At reads a little-endian uint16 at an absolute offset.
func (c *Cursor) ReadUint16At(offset uint32) (uint16, error) {
	if offset > c.Len()-2 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint16(c.buf[offset:]), nil
}

// ReadUint32At reads a little-endian uint32 at an absolute offset.
func (c *Cursor) ReadUint32At(offset uint32) (uint32, error) {
	if offset > c.Len()-4 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint32(c.buf[offset:]), nil
}

// ReadUint64At reads a little-endian uint64 at an absolute offset.
func (c *Cursor) ReadUint64At(offset uint32) (uint64, error) {
	if offset > c.Len()-8 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint64(c.buf[offset:]), nil
}

// ReadUint16 reads a little-endian uint16 and advances the cursor.
func (c *Cursor) ReadUint16() (uint16, error) {
	v, err := c.ReadUint16At(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32 and advances the cursor.
func (c *Cursor) ReadUint32() (uint32, error) {
	v, err := c.ReadUint32At(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return v, nil
}

// withSavedPosition runs fn with the cursor temporarily seeked to offset,
// restoring the original position afterward regardless of error. This is
// the scoped out-of-line-read helper called for whenever a record decoder
// must chase a data-section offset and return to the next in-table record.
func (c *Cursor) withSavedPosition(offset uint32, fn func() error) error {
	saved := c.pos
	c.pos = offset
	err := fn()
	c.pos = saved
	return err
}
