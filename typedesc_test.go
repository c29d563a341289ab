// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestParseTypeDescriptor(t *testing.T) {
	tests := []struct {
		raw  string
		kind TypeKind
		str  string
	}{
		{"V", KindVoid, "void"},
		{"Z", KindBoolean, "boolean"},
		{"I", KindInt, "int"},
		{"Lcom/example/Foo;", KindClass, "com.example.Foo"},
		{"[I", KindArray, "int[]"},
		{"[[Lcom/example/Foo;", KindArray, "com.example.Foo[][]"},
		{"?", KindVoid, "void"}, // unknown leading char falls back leniently
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			td := ParseTypeDescriptor(tt.raw)
			if td.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", td.Kind, tt.kind)
			}
			if got := td.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestTypeDescriptorJVMRoundTrip(t *testing.T) {
	for _, raw := range []string{"V", "Z", "I", "Lcom/example/Foo;", "[I", "[Lcom/example/Foo;"} {
		td := ParseTypeDescriptor(raw)
		if got := td.JVMDescriptor(); got != raw {
			t.Errorf("JVMDescriptor() round-trip for %q = %q", raw, got)
		}
	}
}

func TestAccessFlagsHas(t *testing.T) {
	flags := AccessFlags(AccPublic | AccStatic | AccFinal)
	if !flags.Has(AccPublic) {
		t.Error("Has(AccPublic) = false, want true")
	}
	if flags.Has(AccPrivate) {
		t.Error("Has(AccPrivate) = true, want false")
	}
}
