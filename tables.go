// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "unicode/utf8"

// Proto is a method signature: a shorty summary string index, the
// return type's type_ids index, and the parameter types' type_ids indices.
type Proto struct {
	ShortyIdx      uint32
	ReturnTypeIdx  uint32
	ParameterTypes []uint32
}

// Field is one entry of the field_ids table: a defining-class type index,
// the field's own type index, and its name string index.
type Field struct {
	ClassIdx uint32
	TypeIdx  uint32
	NameIdx  uint32
}

// Method is one entry of the method_ids table: a defining-class type
// index, a ProtoIndex, and a name string index.
type Method struct {
	ClassIdx uint32
	ProtoIdx uint32
	NameIdx  uint32
}

// parseStrings decodes the string_ids table: count 4-byte data-section
// offsets, each pointing at a ULEB128 length (the UTF-16 code unit count,
// stored but unused for reconstruction) followed by a NUL-terminated byte
// run decoded as UTF-8.
func parseStrings(c *Cursor, offset, count uint32) ([]string, error) {
	out := make([]string, count)
	for i := uint32(0); i < count; i++ {
		dataOff, err := c.ReadUint32At(offset + i*4)
		if err != nil {
			return nil, err
		}
		err = c.withSavedPosition(dataOff, func() error {
			if _, err := c.ParseULEB128(); err != nil {
				return err
			}
			raw, err := c.TakeUntil(0x00)
			if err != nil {
				return err
			}
			if utf8.Valid(raw) {
				out[i] = string(raw)
			} else {
				// Invalid MUTF-8/UTF-8 yields empty string rather than
				// failing the whole parse.
				out[i] = ""
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseTypes decodes the type_ids table: count 4-byte string indices.
// The caller resolves each index's descriptor into a TypeDescriptor.
func parseTypes(c *Cursor, offset, count uint32) ([]uint32, error) {
	out := make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		v, err := c.ReadUint32At(offset + i*4)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseProtos decodes the proto_ids table: count 12-byte records
// (shorty_idx, return_type_idx, parameters_offset). When
// parameters_offset is nonzero, it points at a 4-byte count followed by
// that many 2-byte type indices; zero means an empty parameter list.
func parseProtos(c *Cursor, offset, count uint32) ([]Proto, error) {
	out := make([]Proto, count)
	for i := uint32(0); i < count; i++ {
		base := offset + i*12
		shortyIdx, err := c.ReadUint32At(base)
		if err != nil {
			return nil, err
		}
		returnTypeIdx, err := c.ReadUint32At(base + 4)
		if err != nil {
			return nil, err
		}
		paramsOffset, err := c.ReadUint32At(base + 8)
		if err != nil {
			return nil, err
		}

		p := Proto{ShortyIdx: shortyIdx, ReturnTypeIdx: returnTypeIdx}
		if paramsOffset != 0 {
			err = c.withSavedPosition(paramsOffset, func() error {
				n, err := c.ReadUint32()
				if err != nil {
					return err
				}
				p.ParameterTypes = make([]uint32, n)
				for j := uint32(0); j < n; j++ {
					v, err := c.ReadUint16()
					if err != nil {
						return err
					}
					p.ParameterTypes[j] = uint32(v)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		out[i] = p
	}
	return out, nil
}

// parseFields decodes the field_ids table: count 8-byte records
// (class_idx u16, type_idx u16, name_idx u32).
func parseFields(c *Cursor, offset, count uint32) ([]Field, error) {
	out := make([]Field, count)
	for i := uint32(0); i < count; i++ {
		base := offset + i*8
		classIdx, err := c.ReadUint16At(base)
		if err != nil {
			return nil, err
		}
		typeIdx, err := c.ReadUint16At(base + 2)
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.ReadUint32At(base + 4)
		if err != nil {
			return nil, err
		}
		out[i] = Field{ClassIdx: uint32(classIdx), TypeIdx: uint32(typeIdx), NameIdx: nameIdx}
	}
	return out, nil
}

// parseMethods decodes the method_ids table: count 8-byte records
// (class_idx u16, proto_idx u16, name_idx u32).
func parseMethods(c *Cursor, offset, count uint32) ([]Method, error) {
	out := make([]Method, count)
	for i := uint32(0); i < count; i++ {
		base := offset + i*8
		classIdx, err := c.ReadUint16At(base)
		if err != nil {
			return nil, err
		}
		protoIdx, err := c.ReadUint16At(base + 2)
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.ReadUint32At(base + 4)
		if err != nil {
			return nil, err
		}
		out[i] = Method{ClassIdx: uint32(classIdx), ProtoIdx: uint32(protoIdx), NameIdx: nameIdx}
	}
	return out, nil
}
