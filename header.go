// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// HeaderSize is the fixed size, in bytes, of the DEX header.
const HeaderSize = 0x70

// dexMagic is the fixed 4-byte prefix of every DEX file: "dex\n".
var dexMagic = [4]byte{0x64, 0x65, 0x78, 0x0a}

// endianConstant is the canonical little-endian tag stored in the header;
// the big-endian value is recognized but this package never produces it.
const (
	endianConstantLittle = 0x12345678
	endianConstantBig    = 0x78563412
)

// Endianness identifies the byte order a DEX header declares for itself.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big endian"
	}
	return "little endian"
}

// Header is the fixed-shape record at the start of every DEX file,
// followed by the (size, offset) pairs locating the eight variable-length
// tables and the shared data section.
type Header struct {
	Version    string // 3-byte ASCII, e.g. "035"
	Checksum   uint32
	SHA1       [20]byte
	FileSize   uint32
	HeaderSize uint32
	Endianness Endianness

	LinkSize   uint32
	LinkOffset uint32

	// MapOffset points at the map_list structure. This package reads it
	// for display purposes only; the map_list itself is never parsed or
	// cross-validated against the other table sizes.
	MapOffset uint32

	StringIDsSize   uint32
	StringIDsOffset uint32
	TypeIDsSize     uint32
	TypeIDsOffset   uint32
	ProtoIDsSize    uint32
	ProtoIDsOffset  uint32
	FieldIDsSize    uint32
	FieldIDsOffset  uint32
	MethodIDsSize   uint32
	MethodIDsOffset uint32
	ClassDefsSize   uint32
	ClassDefsOffset uint32

	DataSize   uint32
	DataOffset uint32
}

// SHA1String renders the header's SHA-1 signature as lowercase hex.
func (h *Header) SHA1String() string {
	return fmt.Sprintf("%x", h.SHA1)
}

// String renders the header the way the "header" CLI subcommand does.
func (h *Header) String() string {
	return fmt.Sprintf(
		`dex version        %s
checksum           %d
sha1               %s
file size          %d bytes
header size        %d bytes
endianness         %s
link size          %d bytes
link offset        %#x
map offset         %#x
string IDs size    %d entries
string IDs offset  %#x
type IDs size      %d entries
type IDs offset    %#x
proto IDs size     %d entries
proto IDs offset   %#x
field IDs size     %d entries
field IDs offset   %#x
method IDs size    %d entries
method IDs offset  %#x
class defs size    %d entries
class defs offset  %#x
data size          %d bytes
data offset        %#x`,
		h.Version, h.Checksum, h.SHA1String(), h.FileSize, h.HeaderSize,
		h.Endianness, h.LinkSize, h.LinkOffset, h.MapOffset,
		h.StringIDsSize, h.StringIDsOffset,
		h.TypeIDsSize, h.TypeIDsOffset,
		h.ProtoIDsSize, h.ProtoIDsOffset,
		h.FieldIDsSize, h.FieldIDsOffset,
		h.MethodIDsSize, h.MethodIDsOffset,
		h.ClassDefsSize, h.ClassDefsOffset,
		h.DataSize, h.DataOffset)
}

// checkTableBounds validates that a (size, offset) pair read from the
// header stays within the file. count is the header's entry count and
// recordSize the per-record size in bytes.
func (c *Cursor) checkTableBounds(offset, count, recordSize uint32) error {
	if count == 0 {
		return nil
	}
	total := offset + count*recordSize
	if total < offset || total > c.Len() {
		return ErrInvalidTableOffset
	}
	return nil
}

// ParseHeader validates the magic and version, then decodes the rest of
// the fixed 112-byte (HeaderSize) DEX header. Magic mismatch,
// truncated input, and an out-of-bounds table pair are all structural
// errors: parsing aborts with no partial Header returned.
func ParseHeader(c *Cursor) (*Header, error) {
	if c.Len() < HeaderSize {
		return nil, ErrInvalidDexSize
	}

	c.Seek(0)
	if err := c.ExpectMany(dexMagic[:]); err != nil {
		return nil, ErrMagicNotFound
	}
	versionBytes, err := c.Take(3)
	if err != nil {
		return nil, err
	}
	for _, b := range versionBytes {
		if b < '0' || b > '9' {
			return nil, ErrUnsupportedVersion
		}
	}
	if err := c.Expect(0x00); err != nil {
		return nil, ErrMagicNotFound
	}

	h := &Header{Version: string(versionBytes)}

	h.Checksum, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	sha1, err := c.Take(20)
	if err != nil {
		return nil, err
	}
	copy(h.SHA1[:], sha1)

	h.FileSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.HeaderSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}

	endianTag, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	switch endianTag {
	case endianConstantLittle:
		h.Endianness = LittleEndian
	case endianConstantBig:
		h.Endianness = BigEndian
	default:
		return nil, ErrMagicNotFound
	}

	h.LinkSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.LinkOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.MapOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}

	h.StringIDsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.StringIDsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.TypeIDsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.TypeIDsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.ProtoIDsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.ProtoIDsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.FieldIDsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.FieldIDsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.MethodIDsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.MethodIDsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.ClassDefsSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.ClassDefsOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.DataSize, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.DataOffset, err = c.ReadUint32()
	if err != nil {
		return nil, err
	}

	if err := c.checkTableBounds(h.StringIDsOffset, h.StringIDsSize, 4); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.TypeIDsOffset, h.TypeIDsSize, 4); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.ProtoIDsOffset, h.ProtoIDsSize, 12); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.FieldIDsOffset, h.FieldIDsSize, 8); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.MethodIDsOffset, h.MethodIDsSize, 8); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.ClassDefsOffset, h.ClassDefsSize, 32); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.LinkOffset, h.LinkSize, 1); err != nil {
		return nil, err
	}
	if err := c.checkTableBounds(h.DataOffset, h.DataSize, 1); err != nil {
		return nil, err
	}

	return h, nil
}
