// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"strings"
	"testing"
)

// TestDisassembleConstStringInvokeVirtual exercises the worked example of
// spec §8 scenario 6: const-string followed by invoke-virtual must
// resolve a quoted string comment and a "name(params) -> Return" method
// signature comment, end to end through File.Disassemble.
func TestDisassembleConstStringInvokeVirtual(t *testing.T) {
	raw := []byte{
		0x1a, 0x00, 0x00, 0x00, // const-string v0, string@0 ("hello")
		0x6e, 0x10, 0x00, 0x00, 0x00, 0x00, // invoke-virtual {v0}, method@0 (toString)
	}
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}
	if len(insns) != 2 {
		t.Fatalf("DecodeInstructions() produced %d instructions, want 2", len(insns))
	}

	f := &File{
		Strings: []string{"hello", "toString", "Ljava/lang/String;"},
		Types:   []uint32{2}, // type_ids[0] -> "Ljava/lang/String;"
		Protos: []Proto{
			{ShortyIdx: 1, ReturnTypeIdx: 0, ParameterTypes: nil},
		},
		Methods: []Method{
			{ClassIdx: 0, ProtoIdx: 0, NameIdx: 1},
		},
	}
	item := &CodeItem{Instructions: insns}

	lines := f.Disassemble(item)
	if len(lines) != 2 {
		t.Fatalf("Disassemble() produced %d lines, want 2", len(lines))
	}

	constStr := lines[0]
	if constStr.Comment != `"hello"` {
		t.Errorf("const-string Comment = %q, want %q", constStr.Comment, `"hello"`)
	}
	if !strings.HasPrefix(constStr.Text, "const-string") {
		t.Errorf("const-string Text = %q, want prefix %q", constStr.Text, "const-string")
	}
	if !strings.Contains(constStr.String(), `; "hello"`) {
		t.Errorf("const-string String() = %q, want it to contain %q", constStr.String(), `; "hello"`)
	}

	invoke := lines[1]
	wantComment := "toString() -> java.lang.String"
	if invoke.Comment != wantComment {
		t.Errorf("invoke-virtual Comment = %q, want %q", invoke.Comment, wantComment)
	}
	if !strings.Contains(invoke.String(), "; "+wantComment) {
		t.Errorf("invoke-virtual String() = %q, want it to contain %q", invoke.String(), "; "+wantComment)
	}
}

// TestDisassembleInvalidReferencesDoNotAbort verifies that an
// out-of-range table index renders a placeholder comment instead of
// panicking or aborting the rest of the disassembly.
func TestDisassembleInvalidReferencesDoNotAbort(t *testing.T) {
	raw := []byte{
		0x1a, 0x00, 0x05, 0x00, // const-string v0, string@5 (out of range)
	}
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}

	f := &File{Strings: []string{"only one"}}
	item := &CodeItem{Instructions: insns}

	lines := f.Disassemble(item)
	if len(lines) != 1 {
		t.Fatalf("Disassemble() produced %d lines, want 1", len(lines))
	}
	want := "<invalid string#5>"
	if lines[0].Comment != want {
		t.Errorf("Comment = %q, want %q", lines[0].Comment, want)
	}
}
