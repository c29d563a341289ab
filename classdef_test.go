// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestParseEncodedFieldsDeltaDecoding(t *testing.T) {
	// Two fields: diffs 3 and 2 -> absolute indices 3, 5.
	buf := []byte{0x03, 0x00, 0x02, 0x01}
	c := NewCursor(buf)
	got, err := parseEncodedFields(c, 2)
	if err != nil {
		t.Fatalf("parseEncodedFields() error: %v", err)
	}
	if got[0].FieldIdx != 3 {
		t.Errorf("got[0].FieldIdx = %d, want 3", got[0].FieldIdx)
	}
	if got[1].FieldIdx != 5 {
		t.Errorf("got[1].FieldIdx = %d, want 5 (3+2)", got[1].FieldIdx)
	}
	if got[1].AccessFlags != 1 {
		t.Errorf("got[1].AccessFlags = %d, want 1", got[1].AccessFlags)
	}
}

func TestParseEncodedMethodsNoCodeItem(t *testing.T) {
	// One method: diff=4, access=0, code_off=0 (abstract/native, no CodeItem).
	buf := []byte{0x04, 0x00, 0x00}
	c := NewCursor(buf)
	got, err := parseEncodedMethods(c, 1)
	if err != nil {
		t.Fatalf("parseEncodedMethods() error: %v", err)
	}
	if got[0].MethodIdx != 4 {
		t.Errorf("MethodIdx = %d, want 4", got[0].MethodIdx)
	}
	if got[0].CodeItem != nil {
		t.Error("CodeItem != nil, want nil when code_off == 0")
	}
}

func TestParseClassDataOrdering(t *testing.T) {
	// counts: 1 static field, 1 instance field, 0 direct methods, 0 virtual methods
	buf := []byte{
		0x01, 0x01, 0x00, 0x00, // counts
		0x02, 0x00, // static field: diff=2, access=0
		0x01, 0x00, // instance field: diff=1 (prior resets to 0), access=0
	}
	c := NewCursor(buf)
	var cd ClassDef
	if err := parseClassData(c, &cd); err != nil {
		t.Fatalf("parseClassData() error: %v", err)
	}
	if len(cd.StaticFields) != 1 || cd.StaticFields[0].FieldIdx != 2 {
		t.Errorf("StaticFields = %v, want [{FieldIdx:2}]", cd.StaticFields)
	}
	if len(cd.InstanceFields) != 1 || cd.InstanceFields[0].FieldIdx != 1 {
		t.Errorf("InstanceFields = %v, want [{FieldIdx:1}] (prior resets per list)", cd.InstanceFields)
	}
}
