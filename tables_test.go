// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestParseStrings(t *testing.T) {
	// string_ids table (1 entry) at offset 0, pointing at data offset 8.
	// Data: ULEB128 length (2 code units, unused for reconstruction) then
	// "hi" NUL-terminated.
	buf := make([]byte, 16)
	buf[0], buf[1], buf[2], buf[3] = 8, 0, 0, 0 // data offset
	buf[8] = 2                                  // uleb128 length = 2
	buf[9], buf[10], buf[11] = 'h', 'i', 0x00

	c := NewCursor(buf)
	got, err := parseStrings(c, 0, 1)
	if err != nil {
		t.Fatalf("parseStrings() error: %v", err)
	}
	if len(got) != 1 || got[0] != "hi" {
		t.Errorf("parseStrings() = %v, want [hi]", got)
	}
}

func TestParseProtosEmptyParameters(t *testing.T) {
	// One proto_ids record: shorty_idx=1, return_type_idx=2, parameters_offset=0.
	buf := make([]byte, 12)
	buf[0] = 1
	buf[4] = 2
	c := NewCursor(buf)
	got, err := parseProtos(c, 0, 1)
	if err != nil {
		t.Fatalf("parseProtos() error: %v", err)
	}
	if len(got[0].ParameterTypes) != 0 {
		t.Errorf("ParameterTypes = %v, want empty (parameters_offset == 0)", got[0].ParameterTypes)
	}
}

func TestParseProtosWithParameters(t *testing.T) {
	// proto_ids record points at parameters_offset=12: a u32 count (2)
	// followed by two u16 type indices.
	buf := make([]byte, 12+4+4)
	buf[8] = 12 // parameters_offset
	buf[12] = 2 // param count
	buf[16] = 5 // type index 0
	buf[18] = 7 // type index 1
	c := NewCursor(buf)
	got, err := parseProtos(c, 0, 1)
	if err != nil {
		t.Fatalf("parseProtos() error: %v", err)
	}
	want := []uint32{5, 7}
	if len(got[0].ParameterTypes) != 2 || got[0].ParameterTypes[0] != want[0] || got[0].ParameterTypes[1] != want[1] {
		t.Errorf("ParameterTypes = %v, want %v", got[0].ParameterTypes, want)
	}
}
