// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "encoding/binary"

// Instruction is a decoded Dalvik instruction: the opcode byte names the
// variant (see Op), and the operand fields below hold whichever subset
// that variant's format populates. A single struct with typed operand
// fields stands in for the ~220-variant tagged union; callers branch on
// Op rather than on a Go type switch.
type Instruction struct {
	Address uint32
	Op      Op
	Raw     []byte

	// Regs holds 0-3 plain operand registers (move, arithmetic, get/put)
	// or the 0-5 argument registers of a non-range invoke/filled-new-array.
	Regs []uint32

	// RegLo/RegHi bound an inclusive register range for /range invoke
	// forms and filled-new-array/range.
	RegLo, RegHi uint32
	HasRange     bool

	// Literal holds a signed numeric constant (const*, */lit8, */lit16).
	Literal int64

	// Index holds a string/type/field/method/proto table index referenced
	// by this instruction (const-string, new-instance, iget, invoke-*, ...).
	Index    uint32
	HasIndex bool

	// Offset holds a branch byte offset (goto/if-*, already doubled from
	// the on-disk 16-bit code-unit count) or a payload-pointer code-unit
	// offset (packed-switch, sparse-switch, fill-array-data).
	Offset    int32
	HasOffset bool
}

// Registers returns every register this instruction reads or writes, in
// encoded order, regardless of whether it is a fixed-arity or /range
// instruction. Callers that only care which registers are touched (not
// their role) can use this instead of branching on Op.
func (in *Instruction) Registers() []uint32 {
	if in.HasRange {
		out := make([]uint32, 0, in.RegHi-in.RegLo+1)
		for r := in.RegLo; r <= in.RegHi; r++ {
			out = append(out, r)
		}
		return out
	}
	return in.Regs
}

// signExtendNibble sign-extends a 4-bit value.
func signExtendNibble(n byte) int32 {
	v := int32(n)
	if v >= 8 {
		v -= 16
	}
	return v
}

// DecodeInstructions seeks c to start and consumes a 16-bit code-unit
// stream from there through end, emitting one
// Instruction per opcode dispatch and silently skipping embedded payload
// pseudo-instructions (packed-switch/sparse-switch/fill-array-data),
// which are variable-length data rather than executable instructions.
func DecodeInstructions(c *Cursor, start, end uint32) ([]Instruction, error) {
	c.Seek(start)
	var out []Instruction
	for c.Position() < end {
		addr := c.Position()
		op, err := c.Next()
		if err != nil {
			return nil, err
		}

		if op == 0x00 {
			sub, err := c.Peek(1)
			if err != nil {
				return nil, err
			}
			switch sub[0] {
			case 0x01:
				c.Skip(1)
				if err := skipPackedSwitchPayload(c); err != nil {
					return nil, err
				}
				continue
			case 0x02:
				c.Skip(1)
				if err := skipSparseSwitchPayload(c); err != nil {
					return nil, err
				}
				continue
			case 0x03:
				c.Skip(1)
				if err := skipFillArrayDataPayload(c); err != nil {
					return nil, err
				}
				continue
			default:
				c.Skip(1)
				out = append(out, Instruction{Address: addr, Op: OpNop, Raw: rawSlice(c, addr)})
				continue
			}
		}

		in, err := decodeOne(c, addr, Op(op))
		if err != nil {
			return nil, err
		}
		in.Raw = rawSlice(c, addr)
		out = append(out, in)
	}
	return out, nil
}

// rawSlice returns the bytes consumed between start and the cursor's
// current position; both are always in-bounds by construction.
func rawSlice(c *Cursor, start uint32) []byte {
	return c.buf[start:c.pos]
}

func skipPackedSwitchPayload(c *Cursor) error {
	size, err := c.ReadUint16()
	if err != nil {
		return err
	}
	if _, err := c.Take(4); err != nil { // first_key
		return err
	}
	if _, err := c.Take(4 * uint32(size)); err != nil { // targets
		return err
	}
	return nil
}

func skipSparseSwitchPayload(c *Cursor) error {
	size, err := c.ReadUint16()
	if err != nil {
		return err
	}
	if _, err := c.Take(4 * uint32(size)); err != nil { // keys
		return err
	}
	if _, err := c.Take(4 * uint32(size)); err != nil { // targets
		return err
	}
	return nil
}

func skipFillArrayDataPayload(c *Cursor) error {
	elemWidth, err := c.ReadUint16()
	if err != nil {
		return err
	}
	size, err := c.ReadUint32()
	if err != nil {
		return err
	}
	dataBytes := uint32(elemWidth) * size
	if dataBytes%2 != 0 {
		dataBytes++ // payload is padded to an even byte count
	}
	_, err = c.Take(dataBytes)
	return err
}

// decodeOne reads the operands for a single non-payload opcode. The
// opcode byte has already been consumed; the cursor sits at the start of
// its second byte (or, for formats with no second byte at all, at the
// first byte of the next instruction).
func decodeOne(c *Cursor, addr uint32, op Op) (Instruction, error) {
	in := Instruction{Address: addr, Op: op}

	switch op {
	case OpNop:
		// unreachable: handled by the caller.

	case OpMove, OpMoveWide, OpMoveObject:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}

	case OpMoveFrom16, OpMoveWideFrom16, OpMoveObjectFrom16:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		src, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest), uint32(src)}

	case OpMove16, OpMoveWide16, OpMoveObject16:
		if _, err := c.Next(); err != nil { // unused padding byte
			return in, err
		}
		dest, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		src, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest), uint32(src)}

	case OpMoveResult, OpMoveResultWide, OpMoveResultObject, OpMoveException,
		OpReturn, OpReturnWide, OpReturnObject,
		OpMonitorEnter, OpMonitorExit, OpThrow:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b)}

	case OpReturnVoid:
		if _, err := c.Next(); err != nil {
			return in, err
		}

	case OpConst4:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f)}
		in.Literal = int64(signExtendNibble((b >> 4) & 0x0f))

	case OpConst16, OpConstWide16:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		lit, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Literal = int64(int16(lit))

	case OpConst, OpConstWide32:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		lit, err := c.ReadUint32()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Literal = int64(int32(lit))

	case OpConstHigh16:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		hi, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Literal = int64(int32(uint32(hi) << 16))

	case OpConstWide:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		raw, err := c.Take(8)
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Literal = int64(binary.LittleEndian.Uint64(raw))

	case OpConstWideHigh16:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		hi, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Literal = int64(uint64(hi) << 48)

	case OpConstString:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Index, in.HasIndex = uint32(idx), true

	case OpConstStringJumbo:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint32()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest)}
		in.Index, in.HasIndex = idx, true

	case OpConstClass, OpCheckCast, OpNewInstance:
		reg, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(reg)}
		in.Index, in.HasIndex = uint32(idx), true

	case OpInstanceOf, OpNewArray:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}
		in.Index, in.HasIndex = uint32(idx), true

	case OpArrayLength:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}

	case OpFilledNewArray:
		regs, idx, err := decodeInvokeArgs(c)
		if err != nil {
			return in, err
		}
		in.Regs = regs
		in.Index, in.HasIndex = idx, true

	case OpFilledNewArrayRange:
		lo, hi, idx, err := decodeInvokeRange(c)
		if err != nil {
			return in, err
		}
		in.RegLo, in.RegHi, in.HasRange = lo, hi, true
		in.Index, in.HasIndex = idx, true

	case OpFillArrayData:
		reg, err := c.Next()
		if err != nil {
			return in, err
		}
		off, err := c.ReadUint32()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(reg)}
		in.Offset, in.HasOffset = int32(off), true

	case OpGoto:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		off := int32(int8(b))
		if off == 0 {
			off = 1
		}
		in.Offset, in.HasOffset = off*2, true

	case OpGoto16:
		if _, err := c.Next(); err != nil {
			return in, err
		}
		off, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Offset, in.HasOffset = int32(int16(off))*2, true

	case OpGoto32:
		if _, err := c.Next(); err != nil {
			return in, err
		}
		off, err := c.ReadUint32()
		if err != nil {
			return in, err
		}
		in.Offset, in.HasOffset = int32(off)*2, true

	case OpPackedSwitch, OpSparseSwitch:
		reg, err := c.Next()
		if err != nil {
			return in, err
		}
		off, err := c.ReadUint32()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(reg)}
		in.Offset, in.HasOffset = int32(off), true

	case OpCmpLFloat, OpCmpGFloat, OpCmpLDouble, OpCmpGDouble, OpCmpLong,
		OpAGet, OpAGetWide, OpAGetObject, OpAGetBoolean, OpAGetByte, OpAGetChar, OpAGetShort,
		OpAPut, OpAPutWide, OpAPutObject, OpAPutBoolean, OpAPutByte, OpAPutChar, OpAPutShort,
		OpAddInt, OpSubInt, OpMulInt, OpDivInt, OpRemInt, OpAndInt, OpOrInt, OpXorInt, OpShlInt, OpShrInt, OpUShrInt,
		OpAddLong, OpSubLong, OpMulLong, OpDivLong, OpRemLong, OpAndLong, OpOrLong, OpXorLong, OpShlLong, OpShrLong, OpUShrLong,
		OpAddFloat, OpSubFloat, OpMulFloat, OpDivFloat, OpRemFloat,
		OpAddDouble, OpSubDouble, OpMulDouble, OpDivDouble, OpRemDouble:
		a, err := c.Next()
		if err != nil {
			return in, err
		}
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		d, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(a), uint32(b), uint32(d)}

	case OpIfEq, OpIfNe, OpIfLt, OpIfGe, OpIfGt, OpIfLe:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		off, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}
		in.Offset, in.HasOffset = int32(int16(off))*2, true

	case OpIfEqz, OpIfNez, OpIfLtz, OpIfGez, OpIfGtz, OpIfLez:
		reg, err := c.Next()
		if err != nil {
			return in, err
		}
		off, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(reg)}
		in.Offset, in.HasOffset = int32(int16(off))*2, true

	case OpIGet, OpIGetWide, OpIGetObject, OpIGetBoolean, OpIGetByte, OpIGetChar, OpIGetShort,
		OpIPut, OpIPutWide, OpIPutObject, OpIPutBoolean, OpIPutByte, OpIPutChar, OpIPutShort:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}
		in.Index, in.HasIndex = uint32(idx), true

	case OpSGet, OpSGetWide, OpSGetObject, OpSGetBoolean, OpSGetByte, OpSGetChar, OpSGetShort,
		OpSPut, OpSPutWide, OpSPutObject, OpSPutBoolean, OpSPutByte, OpSPutChar, OpSPutShort:
		reg, err := c.Next()
		if err != nil {
			return in, err
		}
		idx, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(reg)}
		in.Index, in.HasIndex = uint32(idx), true

	case OpInvokeVirtual, OpInvokeSuper, OpInvokeDirect, OpInvokeStatic, OpInvokeInterface:
		regs, idx, err := decodeInvokeArgs(c)
		if err != nil {
			return in, err
		}
		in.Regs = regs
		in.Index, in.HasIndex = idx, true

	case OpInvokeVirtualRange, OpInvokeSuperRange, OpInvokeDirectRange, OpInvokeStaticRange, OpInvokeInterfaceRange:
		lo, hi, idx, err := decodeInvokeRange(c)
		if err != nil {
			return in, err
		}
		in.RegLo, in.RegHi, in.HasRange = lo, hi, true
		in.Index, in.HasIndex = idx, true

	case OpNegInt, OpNotInt, OpNegLong, OpNotLong, OpNegFloat, OpNegDouble,
		OpIntToLong, OpIntToFloat, OpIntToDouble, OpLongToInt, OpLongToFloat, OpLongToDouble,
		OpFloatToInt, OpFloatToLong, OpFloatToDouble, OpDoubleToInt, OpDoubleToLong, OpDoubleToFloat,
		OpIntToByte, OpIntToChar, OpIntToShort,
		OpAddInt2Addr, OpSubInt2Addr, OpMulInt2Addr, OpDivInt2Addr, OpRemInt2Addr,
		OpAndInt2Addr, OpOrInt2Addr, OpXorInt2Addr, OpShlInt2Addr, OpShrInt2Addr, OpUShrInt2Addr,
		OpAddLong2Addr, OpSubLong2Addr, OpMulLong2Addr, OpDivLong2Addr, OpRemLong2Addr,
		OpAndLong2Addr, OpOrLong2Addr, OpXorLong2Addr, OpShlLong2Addr, OpShrLong2Addr, OpUShrLong2Addr,
		OpAddFloat2Addr, OpSubFloat2Addr, OpMulFloat2Addr, OpDivFloat2Addr, OpRemFloat2Addr,
		OpAddDouble2Addr, OpSubDouble2Addr, OpMulDouble2Addr, OpDivDouble2Addr, OpRemDouble2Addr:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}

	case OpAddIntLit16, OpRSubIntLit16, OpMulIntLit16, OpDivIntLit16, OpRemIntLit16,
		OpAndIntLit16, OpOrIntLit16, OpXorIntLit16:
		b, err := c.Next()
		if err != nil {
			return in, err
		}
		lit, err := c.ReadUint16()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(b & 0x0f), uint32((b >> 4) & 0x0f)}
		in.Literal = int64(int16(lit))

	case OpAddIntLit8, OpRSubIntLit8, OpMulIntLit8, OpDivIntLit8, OpRemIntLit8,
		OpAndIntLit8, OpOrIntLit8, OpXorIntLit8, OpShlIntLit8, OpShrIntLit8, OpUShrIntLit8:
		dest, err := c.Next()
		if err != nil {
			return in, err
		}
		src, err := c.Next()
		if err != nil {
			return in, err
		}
		lit, err := c.Next()
		if err != nil {
			return in, err
		}
		in.Regs = []uint32{uint32(dest), uint32(src)}
		in.Literal = int64(int8(lit))

	case OpInvokePolymorphic, OpInvokePolymorphicRange:
		// Format 45cc/4rcc: one extra code unit (proto index) versus the
		// plain invoke forms. Placeholder only: skip the remaining bytes
		// of the format without resolving the proto reference.
		if _, err := c.Take(7); err != nil {
			return in, err
		}

	case OpInvokeCustom, OpInvokeCustomRange:
		// Format 35c/3rc, same length as a plain invoke. Placeholder
		// only: skip without resolving the call-site reference.
		if _, err := c.Take(5); err != nil {
			return in, err
		}

	case OpConstMethodHandle, OpConstMethodType:
		// Format 21c. Placeholder only: skip without resolving the
		// method-handle/method-type reference.
		if _, err := c.Take(3); err != nil {
			return in, err
		}

	default:
		// Unassigned opcode byte (including the deliberately unused
		// 0x73): one additional byte beyond the opcode, no operands,
		// matching the real-world 10x instruction format.
		if _, err := c.Next(); err != nil {
			return in, err
		}
		in.Op = OpUnused
	}

	return in, nil
}

// decodeInvokeArgs reads the 0-5 argument register list of a non-range
// invoke (or filled-new-array): the second byte packs (arity<<4 |
// optional 5th-register nibble), two bytes name the method/type index,
// and two bytes pack registers 1-4 as four nibbles (low nibble of each
// byte before its high nibble).
func decodeInvokeArgs(c *Cursor) ([]uint32, uint32, error) {
	firstByte, err := c.Next()
	if err != nil {
		return nil, 0, err
	}
	idx, err := c.ReadUint16()
	if err != nil {
		return nil, 0, err
	}
	argBytes, err := c.Take(2)
	if err != nil {
		return nil, 0, err
	}

	arity := (firstByte >> 4) & 0x0f
	var args []uint32
	remaining := argBytes
	packed := arity // registers 1-4 come from the two packed bytes
	if packed == 5 {
		packed = 4
	}
	if arity <= 5 {
		for i := byte(0); i < packed; i++ {
			b := remaining[0]
			if i%2 == 0 {
				args = append(args, uint32(b&0x0f))
			} else {
				args = append(args, uint32((b>>4)&0x0f))
				remaining = remaining[1:]
			}
		}
	}
	if arity == 5 {
		args = append(args, uint32(firstByte&0x0f))
	}
	return args, uint32(idx), nil
}

// decodeInvokeRange reads an invoke-*/range (or filled-new-array/range)
// operand: the second byte is the register count, two bytes name the
// method/type index, two bytes name the first register; the block spans
// first..first+count-1 inclusive.
func decodeInvokeRange(c *Cursor) (lo, hi, idx uint32, err error) {
	count, err := c.Next()
	if err != nil {
		return 0, 0, 0, err
	}
	idx16, err := c.ReadUint16()
	if err != nil {
		return 0, 0, 0, err
	}
	first, err := c.ReadUint16()
	if err != nil {
		return 0, 0, 0, err
	}
	lo = uint32(first)
	hi = lo + uint32(count) - 1
	return lo, hi, uint32(idx16), nil
}
