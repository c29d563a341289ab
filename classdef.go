// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// NoIndex is the sentinel value 0xFFFFFFFF denoting "no value" in any
// index field (e.g. ClassDef.SourceFileIdx).
const NoIndex = 0xFFFFFFFF

// ClassDef is one entry of the class_defs table, plus (when
// class_data_offset is nonzero) the class-data item it points at:
// delta-encoded lists of static/instance fields and direct/virtual
// methods.
type ClassDef struct {
	ClassIdx         uint32
	AccessFlags      AccessFlags
	SuperclassIdx    uint32
	InterfacesOffset uint32
	SourceFileIdx    uint32
	AnnotationsOffset uint32
	ClassDataOffset  uint32
	StaticValuesOffset uint32

	StaticFields    []EncodedField
	InstanceFields  []EncodedField
	DirectMethods   []EncodedMethod
	VirtualMethods  []EncodedMethod
}

// EncodedField is a field_idx (delta-decoded to an absolute FieldIndex)
// paired with its access flags.
type EncodedField struct {
	FieldIdx    uint32
	AccessFlags AccessFlags
}

// EncodedMethod is a method_idx (delta-decoded), access flags, and the
// method's CodeItem when it has one (code_offset == 0 means
// abstract/native: no CodeItem).
type EncodedMethod struct {
	MethodIdx   uint32
	AccessFlags AccessFlags
	CodeOffset  uint32
	CodeItem    *CodeItem
}

// parseClassDefs decodes the class_defs table: count 32-byte records,
// each followed (via ClassDataOffset, when nonzero) by the class-data
// item. The cursor is restored to the next class_def record after
// chasing each class's out-of-line data.
func parseClassDefs(c *Cursor, offset, count uint32) ([]ClassDef, error) {
	out := make([]ClassDef, count)
	for i := uint32(0); i < count; i++ {
		base := offset + i*32
		fields := make([]uint32, 8)
		for j := range fields {
			v, err := c.ReadUint32At(base + uint32(j)*4)
			if err != nil {
				return nil, err
			}
			fields[j] = v
		}

		cd := ClassDef{
			ClassIdx:           fields[0],
			AccessFlags:        AccessFlags(fields[1]),
			SuperclassIdx:      fields[2],
			InterfacesOffset:   fields[3],
			SourceFileIdx:      fields[4],
			AnnotationsOffset:  fields[5],
			ClassDataOffset:    fields[6],
			StaticValuesOffset: fields[7],
		}

		if cd.ClassDataOffset != 0 {
			err := c.withSavedPosition(cd.ClassDataOffset, func() error {
				return parseClassData(c, &cd)
			})
			if err != nil {
				return nil, err
			}
		}

		out[i] = cd
	}
	return out, nil
}

// parseClassData reads the four ULEB128 counts and four delta-encoded
// lists that make up a class_data_item, in the fixed order: static
// fields, instance fields, direct methods, virtual methods.
func parseClassData(c *Cursor, cd *ClassDef) error {
	staticFieldsSize, err := c.ParseULEB128()
	if err != nil {
		return err
	}
	instanceFieldsSize, err := c.ParseULEB128()
	if err != nil {
		return err
	}
	directMethodsSize, err := c.ParseULEB128()
	if err != nil {
		return err
	}
	virtualMethodsSize, err := c.ParseULEB128()
	if err != nil {
		return err
	}

	cd.StaticFields, err = parseEncodedFields(c, staticFieldsSize)
	if err != nil {
		return err
	}
	cd.InstanceFields, err = parseEncodedFields(c, instanceFieldsSize)
	if err != nil {
		return err
	}
	cd.DirectMethods, err = parseEncodedMethods(c, directMethodsSize)
	if err != nil {
		return err
	}
	cd.VirtualMethods, err = parseEncodedMethods(c, virtualMethodsSize)
	if err != nil {
		return err
	}
	return nil
}

// parseEncodedFields reads n delta-encoded (field_idx_diff, access_flags)
// pairs. Within the list, the running prior value resets to 0, so the
// first entry's absolute index equals its own diff.
func parseEncodedFields(c *Cursor, n uint32) ([]EncodedField, error) {
	out := make([]EncodedField, n)
	var prior uint32
	for i := uint32(0); i < n; i++ {
		diff, err := c.ParseULEB128()
		if err != nil {
			return nil, err
		}
		accessFlags, err := c.ParseULEB128()
		if err != nil {
			return nil, err
		}
		prior += diff
		out[i] = EncodedField{FieldIdx: prior, AccessFlags: AccessFlags(accessFlags)}
	}
	return out, nil
}

// parseEncodedMethods reads n delta-encoded (method_idx_diff,
// access_flags, code_off) triples, decoding each method's CodeItem when
// code_off is nonzero.
func parseEncodedMethods(c *Cursor, n uint32) ([]EncodedMethod, error) {
	out := make([]EncodedMethod, n)
	var prior uint32
	for i := uint32(0); i < n; i++ {
		diff, err := c.ParseULEB128()
		if err != nil {
			return nil, err
		}
		accessFlags, err := c.ParseULEB128()
		if err != nil {
			return nil, err
		}
		codeOff, err := c.ParseULEB128()
		if err != nil {
			return nil, err
		}
		prior += diff

		em := EncodedMethod{MethodIdx: prior, AccessFlags: AccessFlags(accessFlags), CodeOffset: codeOff}
		if codeOff != 0 {
			err = c.withSavedPosition(codeOff, func() error {
				item, err := parseCodeItem(c)
				if err != nil {
					return err
				}
				em.CodeItem = item
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		out[i] = em
	}
	return out, nil
}
