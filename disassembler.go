// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"fmt"
	"strings"
)

// DisassembledLine is one rendered instruction: address, raw bytes,
// mnemonic/operands, and a human-readable comment resolving any
// string/type/field/method table reference.
type DisassembledLine struct {
	Address  uint32
	Raw      []byte
	Text     string // "mnemonic operand, operand, ..."
	Comment  string // resolved reference, or "" when the instruction has none
}

// String renders the line the way the "disassemble" CLI subcommand does:
// "<hex-addr> <hex-bytes>  <mnemonic> <operands>  ; <comment>".
func (l DisassembledLine) String() string {
	hexBytes := make([]string, len(l.Raw))
	for i, b := range l.Raw {
		hexBytes[i] = fmt.Sprintf("%02x", b)
	}
	line := fmt.Sprintf("%08x  %-24s  %s", l.Address, strings.Join(hexBytes, " "), l.Text)
	if l.Comment != "" {
		line += "  ; " + l.Comment
	}
	return line
}

// Disassemble renders every instruction of a CodeItem, resolving operand
// indices against the owning File's tables. An index that falls outside
// its table renders as a placeholder ("<invalid string#N>",
// "<invalid type#N>", and so on) rather than aborting
// the whole disassembly.
func (f *File) Disassemble(item *CodeItem) []DisassembledLine {
	out := make([]DisassembledLine, 0, len(item.Instructions))
	for _, in := range item.Instructions {
		out = append(out, f.disassembleOne(in))
	}
	return out
}

func (f *File) disassembleOne(in Instruction) DisassembledLine {
	line := DisassembledLine{Address: in.Address, Raw: in.Raw}

	var operands []string
	for _, r := range in.Regs {
		operands = append(operands, fmt.Sprintf("v%d", r))
	}
	if in.HasRange {
		operands = append(operands, fmt.Sprintf("v%d..v%d", in.RegLo, in.RegHi))
	}

	switch in.Op {
	case OpConst4, OpConst16, OpConst, OpConstHigh16,
		OpConstWide16, OpConstWide32, OpConstWide, OpConstWideHigh16:
		operands = append(operands, fmt.Sprintf("#%d", in.Literal))
	case OpAddIntLit16, OpRSubIntLit16, OpMulIntLit16, OpDivIntLit16, OpRemIntLit16,
		OpAndIntLit16, OpOrIntLit16, OpXorIntLit16,
		OpAddIntLit8, OpRSubIntLit8, OpMulIntLit8, OpDivIntLit8, OpRemIntLit8,
		OpAndIntLit8, OpOrIntLit8, OpXorIntLit8, OpShlIntLit8, OpShrIntLit8, OpUShrIntLit8:
		operands = append(operands, fmt.Sprintf("#%d", in.Literal))
	}

	if in.HasOffset {
		target := int64(in.Address) + int64(in.Offset)
		operands = append(operands, fmt.Sprintf("%#x", target))
	}

	if in.HasIndex {
		operands = append(operands, fmt.Sprintf("@%d", in.Index))
		line.Comment = f.resolveComment(in)
	}

	line.Text = in.Op.Mnemonic()
	if len(operands) > 0 {
		line.Text += " " + strings.Join(operands, ", ")
	}
	return line
}

// resolveComment builds the trailing "; ..." annotation for an
// instruction that references the string/type/field/method/proto tables.
func (f *File) resolveComment(in Instruction) string {
	switch in.Op {
	case OpConstString:
		return quotedString(f, in.Index)
	case OpConstStringJumbo:
		return quotedString(f, in.Index)
	case OpConstClass, OpCheckCast, OpInstanceOf, OpNewInstance, OpNewArray,
		OpFilledNewArray, OpFilledNewArrayRange:
		return f.typeName(in.Index)
	case OpIGet, OpIGetWide, OpIGetObject, OpIGetBoolean, OpIGetByte, OpIGetChar, OpIGetShort,
		OpIPut, OpIPutWide, OpIPutObject, OpIPutBoolean, OpIPutByte, OpIPutChar, OpIPutShort,
		OpSGet, OpSGetWide, OpSGetObject, OpSGetBoolean, OpSGetByte, OpSGetChar, OpSGetShort,
		OpSPut, OpSPutWide, OpSPutObject, OpSPutBoolean, OpSPutByte, OpSPutChar, OpSPutShort:
		return f.fieldSignature(in.Index)
	case OpInvokeVirtual, OpInvokeSuper, OpInvokeDirect, OpInvokeStatic, OpInvokeInterface,
		OpInvokeVirtualRange, OpInvokeSuperRange, OpInvokeDirectRange, OpInvokeStaticRange, OpInvokeInterfaceRange:
		return f.methodSignature(in.Index)
	default:
		return ""
	}
}

func quotedString(f *File, idx uint32) string {
	if int(idx) >= len(f.Strings) {
		return fmt.Sprintf("<invalid string#%d>", idx)
	}
	return fmt.Sprintf("%q", f.Strings[idx])
}

func (f *File) typeName(idx uint32) string {
	desc, ok := f.typeDescriptor(idx)
	if !ok {
		return fmt.Sprintf("<invalid type#%d>", idx)
	}
	return desc.String()
}

// typeDescriptor resolves a type_ids index to its parsed TypeDescriptor.
func (f *File) typeDescriptor(idx uint32) (TypeDescriptor, bool) {
	if int(idx) >= len(f.Types) {
		return TypeDescriptor{}, false
	}
	stringIdx := f.Types[idx]
	if int(stringIdx) >= len(f.Strings) {
		return TypeDescriptor{}, false
	}
	return ParseTypeDescriptor(f.Strings[stringIdx]), true
}

// fieldSignature renders "name (Type)" for a field_ids index.
func (f *File) fieldSignature(idx uint32) string {
	if int(idx) >= len(f.Fields) {
		return fmt.Sprintf("<invalid field#%d>", idx)
	}
	field := f.Fields[idx]
	name := "<invalid>"
	if int(field.NameIdx) < len(f.Strings) {
		name = f.Strings[field.NameIdx]
	}
	typ, ok := f.typeDescriptor(field.TypeIdx)
	typName := "<invalid>"
	if ok {
		typName = typ.String()
	}
	return fmt.Sprintf("%s (%s)", name, typName)
}

// methodSignature renders "name(paramTypes) -> ReturnType" for a
// method_ids index.
func (f *File) methodSignature(idx uint32) string {
	if int(idx) >= len(f.Methods) {
		return fmt.Sprintf("<invalid method#%d>", idx)
	}
	method := f.Methods[idx]
	name := "<invalid>"
	if int(method.NameIdx) < len(f.Strings) {
		name = f.Strings[method.NameIdx]
	}
	if int(method.ProtoIdx) >= len(f.Protos) {
		return fmt.Sprintf("%s(?) -> ?", name)
	}
	proto := f.Protos[method.ProtoIdx]

	params := make([]string, 0, len(proto.ParameterTypes))
	for _, pt := range proto.ParameterTypes {
		if desc, ok := f.typeDescriptor(pt); ok {
			params = append(params, desc.String())
		} else {
			params = append(params, "?")
		}
	}
	ret := "?"
	if desc, ok := f.typeDescriptor(proto.ReturnTypeIdx); ok {
		ret = desc.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", name, strings.Join(params, ", "), ret)
}
