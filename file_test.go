// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestParseMinimalFile(t *testing.T) {
	buf := buildMinimalHeader("035")
	f, err := NewBytes(buf, nil)
	if err != nil {
		t.Fatalf("NewBytes() error: %v", err)
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if f.Header.Version != "035" {
		t.Errorf("Header.Version = %q, want %q", f.Header.Version, "035")
	}
	if len(f.Strings) != 0 {
		t.Errorf("Strings = %v, want empty", f.Strings)
	}
}

func TestParseZeroMaxStringsCountMeansDefault(t *testing.T) {
	buf := buildMinimalHeader("035")
	f, err := NewBytes(buf, &Options{MaxStringsCount: 0})
	if err != nil {
		t.Fatalf("NewBytes() error: %v", err)
	}
	defer f.Close()
	if err := f.Parse(); err != nil {
		t.Fatalf("Parse() error: %v, want nil (string_ids_size is 0)", err)
	}
}

func TestParseFastModeSkipsClassDefs(t *testing.T) {
	buf := buildMinimalHeader("035")
	f, err := NewBytes(buf, &Options{Fast: true})
	if err != nil {
		t.Fatalf("NewBytes() error: %v", err)
	}
	defer f.Close()
	if err := f.Parse(); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if f.ClassDefs != nil {
		t.Errorf("ClassDefs = %v, want nil in Fast mode", f.ClassDefs)
	}
}
