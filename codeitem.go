// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// CodeItem holds a method's register/parameter counts and its decoded
// instruction stream. InstructionsSize is measured in 16-bit code units,
// not bytes or instruction count.
type CodeItem struct {
	RegistersSize    uint16
	InsSize          uint16
	OutsSize         uint16
	TriesSize        uint16
	DebugInfoOffset  uint32
	InstructionsSize uint32
	Instructions     []Instruction
}

// parseCodeItem reads the fixed code_item header and then decodes the
// instruction stream that follows it.
func parseCodeItem(c *Cursor) (*CodeItem, error) {
	regSize, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	insSize, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	outsSize, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	triesSize, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	debugInfoOffset, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	instructionsSize, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	item := &CodeItem{
		RegistersSize:    regSize,
		InsSize:          insSize,
		OutsSize:         outsSize,
		TriesSize:        triesSize,
		DebugInfoOffset:  debugInfoOffset,
		InstructionsSize: instructionsSize,
	}

	start := c.Position()
	end := start + 2*instructionsSize
	insns, err := DecodeInstructions(c, start, end)
	if err != nil {
		return nil, err
	}
	item.Instructions = insns

	// Tries/handlers/debug-info tables are not decoded; leave the cursor
	// at the end of the instruction stream, matching the teacher's
	// "restore before yielding" convention for out-of-line reads.
	c.Seek(end)
	return item, nil
}
