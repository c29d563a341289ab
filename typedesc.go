// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "strings"

// TypeKind tags the variant held by a TypeDescriptor.
type TypeKind int

const (
	KindVoid TypeKind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindClass
	KindArray
)

// TypeDescriptor is the parsed form of a type descriptor string: one of
// the eight primitives, a reference Class (raw "Lcom/foo/Bar;" with the
// leading L and trailing ; stripped), or an Array wrapping an element
// TypeDescriptor. Parsing is a trivial one-pass head-character decision;
// array nesting recurses on the tail.
type TypeDescriptor struct {
	Kind    TypeKind
	Class   string          // valid when Kind == KindClass; slash-separated, unstripped of slashes
	Element *TypeDescriptor // valid when Kind == KindArray
}

// ParseTypeDescriptor decodes a raw type descriptor string. An unknown
// leading character falls back leniently to KindVoid, per the behavior of
// the implementation this package was distilled from.
func ParseTypeDescriptor(raw string) TypeDescriptor {
	if raw == "" {
		return TypeDescriptor{Kind: KindVoid}
	}
	switch raw[0] {
	case 'V':
		return TypeDescriptor{Kind: KindVoid}
	case 'Z':
		return TypeDescriptor{Kind: KindBoolean}
	case 'B':
		return TypeDescriptor{Kind: KindByte}
	case 'S':
		return TypeDescriptor{Kind: KindShort}
	case 'C':
		return TypeDescriptor{Kind: KindChar}
	case 'I':
		return TypeDescriptor{Kind: KindInt}
	case 'J':
		return TypeDescriptor{Kind: KindLong}
	case 'F':
		return TypeDescriptor{Kind: KindFloat}
	case 'D':
		return TypeDescriptor{Kind: KindDouble}
	case 'L':
		name := raw[1:]
		name = strings.TrimSuffix(name, ";")
		return TypeDescriptor{Kind: KindClass, Class: name}
	case '[':
		elem := ParseTypeDescriptor(raw[1:])
		return TypeDescriptor{Kind: KindArray, Element: &elem}
	default:
		return TypeDescriptor{Kind: KindVoid}
	}
}

// String renders the descriptor as a Java-style dotted name: class names
// have '/' replaced with '.', arrays append one "[]" per dimension.
func (t TypeDescriptor) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindClass:
		return strings.ReplaceAll(t.Class, "/", ".")
	case KindArray:
		return t.Element.String() + "[]"
	default:
		return "void"
	}
}

// JVMDescriptor round-trips the descriptor back to its raw on-disk form
// ("L...;" / "[..." / one-letter primitive), useful for diagnostics and
// round-trip tests against the original string table entry.
func (t TypeDescriptor) JVMDescriptor() string {
	switch t.Kind {
	case KindVoid:
		return "V"
	case KindBoolean:
		return "Z"
	case KindByte:
		return "B"
	case KindShort:
		return "S"
	case KindChar:
		return "C"
	case KindInt:
		return "I"
	case KindLong:
		return "J"
	case KindFloat:
		return "F"
	case KindDouble:
		return "D"
	case KindClass:
		return "L" + t.Class + ";"
	case KindArray:
		return "[" + t.Element.JVMDescriptor()
	default:
		return "V"
	}
}

// Access flag bits, shared across classes, fields, and methods; each
// target type only ever sets a subset of these.
const (
	AccPublic               = 0x1
	AccPrivate              = 0x2
	AccProtected            = 0x4
	AccStatic               = 0x8
	AccFinal                = 0x10
	AccSynchronized         = 0x20
	AccVolatileOrBridge     = 0x40
	AccTransientOrVarArgs   = 0x80
	AccNative               = 0x100
	AccInterface            = 0x200
	AccAbstract             = 0x400
	AccStrict               = 0x800
	AccSynthetic            = 0x1000
	AccAnnotation           = 0x2000
	AccEnum                 = 0x4000
	AccConstructor          = 0x10000
	AccDeclaredSynchronized = 0x20000
)

// AccessFlags is the raw bitmask stored alongside a class, field, or
// method; Has reports whether a given bit is set.
type AccessFlags uint32

// Has reports whether bit is set in the flag set.
func (a AccessFlags) Has(bit uint32) bool {
	return uint32(a)&bit != 0
}
