// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "sort"

// branchKind classifies an opcode's effect on control flow for the
// purposes of leader computation and edge emission.
type branchKind int

const (
	branchNone branchKind = iota
	branchUnconditional
	branchConditional
	branchReturn
	branchThrow
)

func classifyBranch(op Op) branchKind {
	switch op {
	case OpGoto, OpGoto16, OpGoto32:
		return branchUnconditional
	case OpIfEq, OpIfNe, OpIfLt, OpIfGe, OpIfGt, OpIfLe,
		OpIfEqz, OpIfNez, OpIfLtz, OpIfGez, OpIfGtz, OpIfLez:
		return branchConditional
	case OpReturnVoid, OpReturn, OpReturnWide, OpReturnObject:
		return branchReturn
	case OpThrow:
		return branchThrow
	default:
		return branchNone
	}
}

// Block is one basic block of a CodeItem's control-flow graph: a maximal
// run of instructions with a single entry (the leader) and no internal
// branch targets.
type Block struct {
	Start, End uint32 // [Start, End) in byte address space
	Insns      []Instruction
	Succs      []uint32 // successor block Start addresses
}

// Graph is the control-flow graph of a single method body. Blocks are
// keyed by their Start address; Dangling records branch targets that did
// not land on any instruction address (truncated or malformed bytecode),
// kept for diagnostics rather than failing construction.
type Graph struct {
	Blocks    map[uint32]*Block
	Entry     uint32
	Dangling  []uint32
	order     []uint32 // block starts in address order, for deterministic iteration
}

// Ordered returns the graph's blocks sorted by Start address.
func (g *Graph) Ordered() []*Block {
	out := make([]*Block, 0, len(g.order))
	for _, addr := range g.order {
		out = append(out, g.Blocks[addr])
	}
	return out
}

// BuildCFG partitions a code item's instruction stream into basic blocks
// and wires successor edges. Construction never fails: unreachable target
// addresses are recorded in Graph.Dangling rather than rejected, and an
// empty instruction stream yields an empty, valid graph.
//
// Leaders are: the first instruction; the instruction immediately after
// any goto/if-*; and the target of any goto/if-*. return-* ends a block
// with no successor edge (it has a "next" leader by virtue of falling
// through to whatever instruction follows, but no edge is drawn to it,
// since control does not reach it from this block). throw is handled the
// same way: the next instruction starts a new block and no edge is drawn,
// since later instructions are not exception handlers in this model, so
// nothing is known about where control goes.
func BuildCFG(item *CodeItem) *Graph {
	g := &Graph{Blocks: make(map[uint32]*Block)}
	insns := item.Instructions
	if len(insns) == 0 {
		return g
	}

	byAddr := make(map[uint32]int, len(insns))
	for i, in := range insns {
		byAddr[in.Address] = i
	}
	instrEnd := func(i int) uint32 {
		if i+1 < len(insns) {
			return insns[i+1].Address
		}
		return insns[i].Address + uint32(len(insns[i].Raw))
	}

	leaders := map[uint32]bool{insns[0].Address: true}
	type edge struct{ from, to uint32 }
	var edges []edge

	for i, in := range insns {
		kind := classifyBranch(in.Op)
		switch kind {
		case branchUnconditional:
			target := in.Address + uint32(in.Offset)
			leaders[target] = true
			edges = append(edges, edge{in.Address, target})
			if i+1 < len(insns) {
				leaders[insns[i+1].Address] = true
			}
		case branchConditional:
			target := in.Address + uint32(in.Offset)
			leaders[target] = true
			edges = append(edges, edge{in.Address, target})
			if i+1 < len(insns) {
				fallthroughAddr := insns[i+1].Address
				leaders[fallthroughAddr] = true
				edges = append(edges, edge{in.Address, fallthroughAddr})
			}
		case branchReturn, branchThrow:
			// No outgoing edge, but the next instruction (if any) still
			// starts a new block: it is unreachable from here, so it must
			// not be folded into this block's instruction run.
			if i+1 < len(insns) {
				leaders[insns[i+1].Address] = true
			}
		}
	}

	sorted := make([]uint32, 0, len(leaders))
	for addr := range leaders {
		if _, ok := byAddr[addr]; ok {
			sorted = append(sorted, addr)
		} else {
			g.Dangling = append(g.Dangling, addr)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	sort.Slice(g.Dangling, func(i, j int) bool { return g.Dangling[i] < g.Dangling[j] })

	if len(sorted) == 0 {
		return g
	}
	g.Entry = sorted[0]

	for bi, leaderAddr := range sorted {
		startIdx := byAddr[leaderAddr]
		endIdx := len(insns)
		if bi+1 < len(sorted) {
			endIdx = byAddr[sorted[bi+1]]
		}
		block := &Block{
			Start: leaderAddr,
			End:   instrEnd(endIdx - 1),
			Insns: insns[startIdx:endIdx],
		}
		g.Blocks[leaderAddr] = block
		g.order = append(g.order, leaderAddr)
	}

	blockFor := func(addr uint32) uint32 {
		// addr is always a leader address by construction (every edge
		// target was added to the leaders set above), so a direct match
		// always exists.
		return addr
	}

	for _, e := range edges {
		srcBlock := blockForAddr(g, sorted, e.from)
		if srcBlock == nil {
			continue
		}
		if _, ok := byAddr[e.to]; !ok {
			continue // dangling target, already recorded
		}
		dest := blockFor(e.to)
		srcBlock.Succs = appendUnique(srcBlock.Succs, dest)
	}

	return g
}

// blockForAddr returns the block whose [Start, End) range contains addr.
func blockForAddr(g *Graph, sorted []uint32, addr uint32) *Block {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] > addr })
	if i == 0 {
		return nil
	}
	return g.Blocks[sorted[i-1]]
}

func appendUnique(succs []uint32, v uint32) []uint32 {
	for _, s := range succs {
		if s == v {
			return succs
		}
	}
	return append(succs, v)
}
