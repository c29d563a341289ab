// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

// buildCodeItem decodes raw as a bare instruction stream (no code_item
// header) for CFG tests.
func buildCodeItem(t *testing.T, raw []byte) *CodeItem {
	t.Helper()
	c := NewCursor(raw)
	insns, err := DecodeInstructions(c, 0, uint32(len(raw)))
	if err != nil {
		t.Fatalf("DecodeInstructions() error: %v", err)
	}
	return &CodeItem{Instructions: insns}
}

func TestBuildCFGStraightLine(t *testing.T) {
	// const/4 v0, #0; return-void
	item := buildCodeItem(t, []byte{0x12, 0x00, 0x0e, 0x00})
	g := BuildCFG(item)
	if len(g.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1 (no branches => single block)", len(g.Blocks))
	}
	block := g.Blocks[g.Entry]
	if len(block.Insns) != 2 {
		t.Errorf("len(Insns) = %d, want 2", len(block.Insns))
	}
	if len(block.Succs) != 0 {
		t.Errorf("Succs = %v, want none (falls off the end after return)", block.Succs)
	}
}

func TestBuildCFGGotoBackEdge(t *testing.T) {
	// addr 0: nop
	// addr 2: goto -1 (code units -> byte offset -2, back to addr 0)
	// Nothing branches to addr 2, so the goto is not a leader and shares
	// the nop's block; the back edge is a self-loop on that block.
	item := buildCodeItem(t, []byte{0x00, 0x00, 0x28, 0xff})
	g := BuildCFG(item)
	if len(g.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(g.Blocks))
	}
	back := g.Blocks[0]
	if len(back.Succs) != 1 || back.Succs[0] != 0 {
		t.Errorf("Succs = %v, want [0] (back edge to the nop block)", back.Succs)
	}
}

func TestBuildCFGIfSplitsTwoBlocks(t *testing.T) {
	// addr 0: if-eqz v0, +3 (code units -> byte offset 6, lands on return-void)
	// addr 4: nop (the fallthrough target)
	// addr 6: return-void (the branch target)
	item := buildCodeItem(t, []byte{
		0x38, 0x00, 0x03, 0x00, // if-eqz v0, +3
		0x00, 0x00, // nop
		0x0e, 0x00, // return-void
	})
	g := BuildCFG(item)
	if len(g.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3 (if, nop, return)", len(g.Blocks))
	}
	entry := g.Blocks[g.Entry]
	if len(entry.Succs) != 2 {
		t.Fatalf("Succs = %v, want 2 edges (target + fallthrough)", entry.Succs)
	}
}

func TestBuildCFGReturnEndsBlock(t *testing.T) {
	// addr 0: return-void; addr 2: nop (unreachable, but still its own block)
	item := buildCodeItem(t, []byte{0x0e, 0x00, 0x00, 0x00})
	g := BuildCFG(item)
	if len(g.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2 (return-void must end its block)", len(g.Blocks))
	}
	entry := g.Blocks[g.Entry]
	if len(entry.Insns) != 1 || entry.Insns[0].Op != OpReturnVoid {
		t.Errorf("entry.Insns = %v, want exactly [return-void]", entry.Insns)
	}
	if len(entry.Succs) != 0 {
		t.Errorf("entry.Succs = %v, want none", entry.Succs)
	}
}

func TestBuildCFGGotoFallthroughEndsBlock(t *testing.T) {
	// addr 0: goto +2 (jumps past the nop to the return-void)
	// addr 2: nop (unreachable from the goto, must not be folded into block 0)
	// addr 4: return-void (the goto's target)
	item := buildCodeItem(t, []byte{
		0x28, 0x02, // goto +2
		0x00, 0x00, // nop
		0x0e, 0x00, // return-void
	})
	g := BuildCFG(item)
	if len(g.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3 (goto, nop, return)", len(g.Blocks))
	}
	entry := g.Blocks[g.Entry]
	if len(entry.Insns) != 1 || entry.Insns[0].Op != OpGoto {
		t.Errorf("entry.Insns = %v, want exactly [goto]", entry.Insns)
	}
}

func TestBuildCFGEmptyCodeItem(t *testing.T) {
	g := BuildCFG(&CodeItem{})
	if len(g.Blocks) != 0 {
		t.Errorf("len(Blocks) = %d, want 0 for an empty method", len(g.Blocks))
	}
}

func TestBuildCFGDanglingTargetRecorded(t *testing.T) {
	// goto/16 +1000 (code units), far past the end of the 4-byte stream
	item := buildCodeItem(t, []byte{0x29, 0x00, 0xe8, 0x03})
	g := BuildCFG(item)
	if len(g.Dangling) == 0 {
		t.Error("Dangling is empty, want the out-of-range goto target recorded")
	}
}
