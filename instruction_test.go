// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"reflect"
	"testing"
)

// decodeOneInstruction is a test helper: it decodes exactly one
// instruction starting at offset 0 of raw and returns it.
func decodeOneInstruction(t *testing.T, raw []byte) Instruction {
	t.Helper()
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}
	if len(insns) != 1 {
		t.Fatalf("DecodeInstructions() produced %d instructions, want 1", len(insns))
	}
	return insns[0]
}

func TestDecodeMove(t *testing.T) {
	// move v1, v0
	in := decodeOneInstruction(t, []byte{0x01, 0x01})
	if in.Op != OpMove {
		t.Fatalf("Op = %v, want OpMove", in.Op)
	}
	if !reflect.DeepEqual(in.Regs, []uint32{1, 0}) {
		t.Errorf("Regs = %v, want [1 0]", in.Regs)
	}
}

func TestDecodeConst4(t *testing.T) {
	// const/4 v0, #3  -- high nibble 0x3, low nibble (dest) 0x0
	in := decodeOneInstruction(t, []byte{0x12, 0x30})
	if in.Op != OpConst4 {
		t.Fatalf("Op = %v, want OpConst4", in.Op)
	}
	if in.Regs[0] != 0 {
		t.Errorf("dest register = %d, want 0", in.Regs[0])
	}
	if in.Literal != 3 {
		t.Errorf("Literal = %d, want 3", in.Literal)
	}
}

func TestDecodeConst4Negative(t *testing.T) {
	// const/4 v0, #-1 -- high nibble 0xf sign-extends to -1
	in := decodeOneInstruction(t, []byte{0x12, 0xf0})
	if in.Literal != -1 {
		t.Errorf("Literal = %d, want -1", in.Literal)
	}
}

func TestDecodeConstWide(t *testing.T) {
	// const-wide v0, #0x0102030405060708
	in := decodeOneInstruction(t, []byte{
		0x18, 0x00,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	})
	if in.Op != OpConstWide {
		t.Fatalf("Op = %v, want OpConstWide", in.Op)
	}
	want := int64(0x0102030405060708)
	if in.Literal != want {
		t.Errorf("Literal = %#x, want %#x", in.Literal, want)
	}
}

func TestDecodeConstWideHigh16(t *testing.T) {
	in := decodeOneInstruction(t, []byte{0x19, 0x00, 0x34, 0x12})
	want := int64(0x1234) << 48
	if in.Literal != want {
		t.Errorf("Literal = %#x, want %#x", in.Literal, want)
	}
}

func TestDecodeGotoZeroOffsetTreatedAsOne(t *testing.T) {
	in := decodeOneInstruction(t, []byte{0x28, 0x00})
	if !in.HasOffset || in.Offset != 2 {
		t.Errorf("Offset = %d (has=%v), want 2", in.Offset, in.HasOffset)
	}
}

func TestDecodeIfEqOffsetDoubled(t *testing.T) {
	// if-eq v1, v2, +5 (code units) -> byte offset 10
	in := decodeOneInstruction(t, []byte{0x32, 0x21, 0x05, 0x00})
	if in.Op != OpIfEq {
		t.Fatalf("Op = %v, want OpIfEq", in.Op)
	}
	if !reflect.DeepEqual(in.Regs, []uint32{1, 2}) {
		t.Errorf("Regs = %v, want [1 2]", in.Regs)
	}
	if in.Offset != 10 {
		t.Errorf("Offset = %d, want 10", in.Offset)
	}
}

// These two invoke cases are verified byte-for-byte against the original
// implementation's own embedded unit tests.
func TestDecodeInvokeArgsArityOne(t *testing.T) {
	regs, idx, err := decodeInvokeArgs(NewCursor([]byte{0x10, 0xff, 0xff, 0x04, 0x00}))
	if err != nil {
		t.Fatalf("decodeInvokeArgs() error: %v", err)
	}
	if !reflect.DeepEqual(regs, []uint32{4}) {
		t.Errorf("regs = %v, want [4]", regs)
	}
	_ = idx
}

func TestDecodeInvokeArgsArityFive(t *testing.T) {
	regs, idx, err := decodeInvokeArgs(NewCursor([]byte{0x5f, 0x2c, 0x00, 0xb0, 0x5f}))
	if err != nil {
		t.Fatalf("decodeInvokeArgs() error: %v", err)
	}
	want := []uint32{0, 11, 15, 5, 15}
	if !reflect.DeepEqual(regs, want) {
		t.Errorf("regs = %v, want %v", regs, want)
	}
	if idx != 0x2c {
		t.Errorf("method index = %#x, want 0x2c", idx)
	}
}

func TestDecodeInvokeRange(t *testing.T) {
	lo, hi, idx, err := decodeInvokeRange(NewCursor([]byte{0x0a, 0x8f, 0x11, 0x04, 0x00}))
	if err != nil {
		t.Fatalf("decodeInvokeRange() error: %v", err)
	}
	if lo != 4 || hi != 13 {
		t.Errorf("range = [%d, %d], want [4, 13]", lo, hi)
	}
	if idx != 0x118f {
		t.Errorf("method index = %#x, want 0x118f", idx)
	}
}

func TestDecodeSkipsPackedSwitchPayloadAndContinues(t *testing.T) {
	raw := []byte{
		0x00, 0x01, // packed-switch-payload ident
		0x01, 0x00, // size = 1
		0x00, 0x00, 0x00, 0x00, // first_key = 0
		0x06, 0x00, 0x00, 0x00, // targets[0] = 6
		0x0e, 0x00, // return-void, right after the payload
	}
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}
	if len(insns) != 1 {
		t.Fatalf("DecodeInstructions() produced %d instructions, want 1 (payload must not emit one)", len(insns))
	}
	if insns[0].Op != OpReturnVoid {
		t.Errorf("Op = %v, want OpReturnVoid (decoding must continue past the payload)", insns[0].Op)
	}
}

func TestDecodeUnusedOpcodeAdvancesTwoBytes(t *testing.T) {
	raw := []byte{0x73, 0x00, 0x0e, 0x00} // unused opcode, then return-void
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}
	if len(insns) != 2 {
		t.Fatalf("DecodeInstructions() produced %d instructions, want 2", len(insns))
	}
	if insns[0].Op != OpUnused {
		t.Errorf("insns[0].Op = %v, want OpUnused", insns[0].Op)
	}
	if insns[1].Op != OpReturnVoid {
		t.Errorf("insns[1].Op = %v, want OpReturnVoid", insns[1].Op)
	}
}
