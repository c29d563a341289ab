// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Op is a Dalvik opcode byte. Unlike a classic tagged union per variant,
// the opcode byte itself already uniquely names the variant (dispatch is
// a 256-entry table keyed by this byte), so Op is kept as the raw byte
// rather than introducing a parallel enum.
type Op uint8

// Opcode constants, one per assigned opcode byte, grouped by the opcode
// range they belong to. The decoder and classifyBranch switch on these.
const (
	OpNop Op = 0x00

	OpMove             Op = 0x01
	OpMoveFrom16       Op = 0x02
	OpMove16           Op = 0x03
	OpMoveWide         Op = 0x04
	OpMoveWideFrom16   Op = 0x05
	OpMoveWide16       Op = 0x06
	OpMoveObject       Op = 0x07
	OpMoveObjectFrom16 Op = 0x08
	OpMoveObject16     Op = 0x09
	OpMoveResult       Op = 0x0a
	OpMoveResultWide   Op = 0x0b
	OpMoveResultObject Op = 0x0c
	OpMoveException    Op = 0x0d
	OpReturnVoid       Op = 0x0e
	OpReturn           Op = 0x0f
	OpReturnWide       Op = 0x10
	OpReturnObject     Op = 0x11

	OpConst4           Op = 0x12
	OpConst16          Op = 0x13
	OpConst            Op = 0x14
	OpConstHigh16      Op = 0x15
	OpConstWide16      Op = 0x16
	OpConstWide32      Op = 0x17
	OpConstWide        Op = 0x18
	OpConstWideHigh16  Op = 0x19
	OpConstString      Op = 0x1a
	OpConstStringJumbo Op = 0x1b
	OpConstClass       Op = 0x1c

	OpMonitorEnter Op = 0x1d
	OpMonitorExit  Op = 0x1e

	OpCheckCast        Op = 0x1f
	OpInstanceOf       Op = 0x20
	OpArrayLength      Op = 0x21
	OpNewInstance      Op = 0x22
	OpNewArray         Op = 0x23
	OpFilledNewArray   Op = 0x24
	OpFilledNewArrayRange Op = 0x25
	OpFillArrayData    Op = 0x26

	OpThrow Op = 0x27

	OpGoto   Op = 0x28
	OpGoto16 Op = 0x29
	OpGoto32 Op = 0x2a

	OpPackedSwitch Op = 0x2b
	OpSparseSwitch Op = 0x2c

	OpCmpLFloat  Op = 0x2d
	OpCmpGFloat  Op = 0x2e
	OpCmpLDouble Op = 0x2f
	OpCmpGDouble Op = 0x30
	OpCmpLong    Op = 0x31

	OpIfEq Op = 0x32
	OpIfNe Op = 0x33
	OpIfLt Op = 0x34
	OpIfGe Op = 0x35
	OpIfGt Op = 0x36
	OpIfLe Op = 0x37

	OpIfEqz Op = 0x38
	OpIfNez Op = 0x39
	OpIfLtz Op = 0x3a
	OpIfGez Op = 0x3b
	OpIfGtz Op = 0x3c
	OpIfLez Op = 0x3d

	OpAGet        Op = 0x44
	OpAGetWide    Op = 0x45
	OpAGetObject  Op = 0x46
	OpAGetBoolean Op = 0x47
	OpAGetByte    Op = 0x48
	OpAGetChar    Op = 0x49
	OpAGetShort   Op = 0x4a
	OpAPut        Op = 0x4b
	OpAPutWide    Op = 0x4c
	OpAPutObject  Op = 0x4d
	OpAPutBoolean Op = 0x4e
	OpAPutByte    Op = 0x4f
	OpAPutChar    Op = 0x50
	OpAPutShort   Op = 0x51

	OpIGet        Op = 0x52
	OpIGetWide    Op = 0x53
	OpIGetObject  Op = 0x54
	OpIGetBoolean Op = 0x55
	OpIGetByte    Op = 0x56
	OpIGetChar    Op = 0x57
	OpIGetShort   Op = 0x58
	OpIPut        Op = 0x59
	OpIPutWide    Op = 0x5a
	OpIPutObject  Op = 0x5b
	OpIPutBoolean Op = 0x5c
	OpIPutByte    Op = 0x5d
	OpIPutChar    Op = 0x5e
	OpIPutShort   Op = 0x5f

	OpSGet        Op = 0x60
	OpSGetWide    Op = 0x61
	OpSGetObject  Op = 0x62
	OpSGetBoolean Op = 0x63
	OpSGetByte    Op = 0x64
	OpSGetChar    Op = 0x65
	OpSGetShort   Op = 0x66
	OpSPut        Op = 0x67
	OpSPutWide    Op = 0x68
	OpSPutObject  Op = 0x69
	OpSPutBoolean Op = 0x6a
	OpSPutByte    Op = 0x6b
	OpSPutChar    Op = 0x6c
	OpSPutShort   Op = 0x6d

	OpInvokeVirtual   Op = 0x6e
	OpInvokeSuper     Op = 0x6f
	OpInvokeDirect    Op = 0x70
	OpInvokeStatic    Op = 0x71
	OpInvokeInterface Op = 0x72

	OpInvokeVirtualRange   Op = 0x74
	OpInvokeSuperRange     Op = 0x75
	OpInvokeDirectRange    Op = 0x76
	OpInvokeStaticRange    Op = 0x77
	OpInvokeInterfaceRange Op = 0x78

	OpNegInt      Op = 0x7b
	OpNotInt      Op = 0x7c
	OpNegLong     Op = 0x7d
	OpNotLong     Op = 0x7e
	OpNegFloat    Op = 0x7f
	OpNegDouble   Op = 0x80
	OpIntToLong   Op = 0x81
	OpIntToFloat  Op = 0x82
	OpIntToDouble Op = 0x83
	OpLongToInt   Op = 0x84
	OpLongToFloat Op = 0x85
	OpLongToDouble Op = 0x86
	OpFloatToInt  Op = 0x87
	OpFloatToLong Op = 0x88
	OpFloatToDouble Op = 0x89
	OpDoubleToInt Op = 0x8a
	OpDoubleToLong Op = 0x8b
	OpDoubleToFloat Op = 0x8c
	OpIntToByte   Op = 0x8d
	OpIntToChar   Op = 0x8e
	OpIntToShort  Op = 0x8f

	OpAddInt Op = 0x90
	OpSubInt Op = 0x91
	OpMulInt Op = 0x92
	OpDivInt Op = 0x93
	OpRemInt Op = 0x94
	OpAndInt Op = 0x95
	OpOrInt  Op = 0x96
	OpXorInt Op = 0x97
	OpShlInt Op = 0x98
	OpShrInt Op = 0x99
	OpUShrInt Op = 0x9a

	OpAddLong Op = 0x9b
	OpSubLong Op = 0x9c
	OpMulLong Op = 0x9d
	OpDivLong Op = 0x9e
	OpRemLong Op = 0x9f
	OpAndLong Op = 0xa0
	OpOrLong  Op = 0xa1
	OpXorLong Op = 0xa2
	OpShlLong Op = 0xa3
	OpShrLong Op = 0xa4
	OpUShrLong Op = 0xa5

	OpAddFloat Op = 0xa6
	OpSubFloat Op = 0xa7
	OpMulFloat Op = 0xa8
	OpDivFloat Op = 0xa9
	OpRemFloat Op = 0xaa

	OpAddDouble Op = 0xab
	OpSubDouble Op = 0xac
	OpMulDouble Op = 0xad
	OpDivDouble Op = 0xae
	OpRemDouble Op = 0xaf

	OpAddInt2Addr Op = 0xb0
	OpSubInt2Addr Op = 0xb1
	OpMulInt2Addr Op = 0xb2
	OpDivInt2Addr Op = 0xb3
	OpRemInt2Addr Op = 0xb4
	OpAndInt2Addr Op = 0xb5
	OpOrInt2Addr  Op = 0xb6
	OpXorInt2Addr Op = 0xb7
	OpShlInt2Addr Op = 0xb8
	OpShrInt2Addr Op = 0xb9
	OpUShrInt2Addr Op = 0xba

	OpAddLong2Addr Op = 0xbb
	OpSubLong2Addr Op = 0xbc
	OpMulLong2Addr Op = 0xbd
	OpDivLong2Addr Op = 0xbe
	OpRemLong2Addr Op = 0xbf
	OpAndLong2Addr Op = 0xc0
	OpOrLong2Addr  Op = 0xc1
	OpXorLong2Addr Op = 0xc2
	OpShlLong2Addr Op = 0xc3
	OpShrLong2Addr Op = 0xc4
	OpUShrLong2Addr Op = 0xc5

	OpAddFloat2Addr Op = 0xc6
	OpSubFloat2Addr Op = 0xc7
	OpMulFloat2Addr Op = 0xc8
	OpDivFloat2Addr Op = 0xc9
	OpRemFloat2Addr Op = 0xca

	OpAddDouble2Addr Op = 0xcb
	OpSubDouble2Addr Op = 0xcc
	OpMulDouble2Addr Op = 0xcd
	OpDivDouble2Addr Op = 0xce
	OpRemDouble2Addr Op = 0xcf

	OpAddIntLit16 Op = 0xd0
	OpRSubIntLit16 Op = 0xd1
	OpMulIntLit16 Op = 0xd2
	OpDivIntLit16 Op = 0xd3
	OpRemIntLit16 Op = 0xd4
	OpAndIntLit16 Op = 0xd5
	OpOrIntLit16  Op = 0xd6
	OpXorIntLit16 Op = 0xd7

	OpAddIntLit8  Op = 0xd8
	OpRSubIntLit8 Op = 0xd9
	OpMulIntLit8  Op = 0xda
	OpDivIntLit8  Op = 0xdb
	OpRemIntLit8  Op = 0xdc
	OpAndIntLit8  Op = 0xdd
	OpOrIntLit8   Op = 0xde
	OpXorIntLit8  Op = 0xdf
	OpShlIntLit8  Op = 0xe0
	OpShrIntLit8  Op = 0xe1
	OpUShrIntLit8 Op = 0xe2

	// Reserved placeholders: payload bytes are skipped per the format
	// table; no operand decode is attempted.
	OpInvokePolymorphic      Op = 0xfa
	OpInvokePolymorphicRange Op = 0xfb
	OpInvokeCustom           Op = 0xfc
	OpInvokeCustomRange      Op = 0xfd
	OpConstMethodHandle      Op = 0xfe
	OpConstMethodType        Op = 0xff

	// OpUnused is not a real opcode byte; it is the Op recorded for any
	// unassigned byte (including the deliberately-unused 0x73).
	OpUnused Op = 0xee
)

// mnemonics maps an opcode byte to its canonical Dalvik name. Entries left
// empty are unassigned opcode bytes; the decoder records those as Unused.
var mnemonics = map[Op]string{
	OpNop: "nop",

	OpMove: "move", OpMoveFrom16: "move/from16", OpMove16: "move/16",
	OpMoveWide: "move-wide", OpMoveWideFrom16: "move-wide/from16", OpMoveWide16: "move-wide/16",
	OpMoveObject: "move-object", OpMoveObjectFrom16: "move-object/from16", OpMoveObject16: "move-object/16",
	OpMoveResult: "move-result", OpMoveResultWide: "move-result-wide", OpMoveResultObject: "move-result-object",
	OpMoveException: "move-exception",
	OpReturnVoid:    "return-void", OpReturn: "return", OpReturnWide: "return-wide", OpReturnObject: "return-object",

	OpConst4: "const/4", OpConst16: "const/16", OpConst: "const", OpConstHigh16: "const/high16",
	OpConstWide16: "const-wide/16", OpConstWide32: "const-wide/32", OpConstWide: "const-wide", OpConstWideHigh16: "const-wide/high16",
	OpConstString: "const-string", OpConstStringJumbo: "const-string/jumbo", OpConstClass: "const-class",

	OpMonitorEnter: "monitor-enter", OpMonitorExit: "monitor-exit",

	OpCheckCast: "check-cast", OpInstanceOf: "instance-of", OpArrayLength: "array-length",
	OpNewInstance: "new-instance", OpNewArray: "new-array",
	OpFilledNewArray: "filled-new-array", OpFilledNewArrayRange: "filled-new-array/range",
	OpFillArrayData: "fill-array-data",

	OpThrow: "throw",

	OpGoto: "goto", OpGoto16: "goto/16", OpGoto32: "goto/32",

	OpPackedSwitch: "packed-switch", OpSparseSwitch: "sparse-switch",

	OpCmpLFloat: "cmpl-float", OpCmpGFloat: "cmpg-float", OpCmpLDouble: "cmpl-double",
	OpCmpGDouble: "cmpg-double", OpCmpLong: "cmp-long",

	OpIfEq: "if-eq", OpIfNe: "if-ne", OpIfLt: "if-lt", OpIfGe: "if-ge", OpIfGt: "if-gt", OpIfLe: "if-le",
	OpIfEqz: "if-eqz", OpIfNez: "if-nez", OpIfLtz: "if-ltz", OpIfGez: "if-gez", OpIfGtz: "if-gtz", OpIfLez: "if-lez",

	OpAGet: "aget", OpAGetWide: "aget-wide", OpAGetObject: "aget-object", OpAGetBoolean: "aget-boolean",
	OpAGetByte: "aget-byte", OpAGetChar: "aget-char", OpAGetShort: "aget-short",
	OpAPut: "aput", OpAPutWide: "aput-wide", OpAPutObject: "aput-object", OpAPutBoolean: "aput-boolean",
	OpAPutByte: "aput-byte", OpAPutChar: "aput-char", OpAPutShort: "aput-short",

	OpIGet: "iget", OpIGetWide: "iget-wide", OpIGetObject: "iget-object", OpIGetBoolean: "iget-boolean",
	OpIGetByte: "iget-byte", OpIGetChar: "iget-char", OpIGetShort: "iget-short",
	OpIPut: "iput", OpIPutWide: "iput-wide", OpIPutObject: "iput-object", OpIPutBoolean: "iput-boolean",
	OpIPutByte: "iput-byte", OpIPutChar: "iput-char", OpIPutShort: "iput-short",

	OpSGet: "sget", OpSGetWide: "sget-wide", OpSGetObject: "sget-object", OpSGetBoolean: "sget-boolean",
	OpSGetByte: "sget-byte", OpSGetChar: "sget-char", OpSGetShort: "sget-short",
	OpSPut: "sput", OpSPutWide: "sput-wide", OpSPutObject: "sput-object", OpSPutBoolean: "sput-boolean",
	OpSPutByte: "sput-byte", OpSPutChar: "sput-char", OpSPutShort: "sput-short",

	OpInvokeVirtual: "invoke-virtual", OpInvokeSuper: "invoke-super", OpInvokeDirect: "invoke-direct",
	OpInvokeStatic: "invoke-static", OpInvokeInterface: "invoke-interface",
	OpInvokeVirtualRange: "invoke-virtual/range", OpInvokeSuperRange: "invoke-super/range",
	OpInvokeDirectRange: "invoke-direct/range", OpInvokeStaticRange: "invoke-static/range",
	OpInvokeInterfaceRange: "invoke-interface/range",

	OpNegInt: "neg-int", OpNotInt: "not-int", OpNegLong: "neg-long", OpNotLong: "not-long",
	OpNegFloat: "neg-float", OpNegDouble: "neg-double",
	OpIntToLong: "int-to-long", OpIntToFloat: "int-to-float", OpIntToDouble: "int-to-double",
	OpLongToInt: "long-to-int", OpLongToFloat: "long-to-float", OpLongToDouble: "long-to-double",
	OpFloatToInt: "float-to-int", OpFloatToLong: "float-to-long", OpFloatToDouble: "float-to-double",
	OpDoubleToInt: "double-to-int", OpDoubleToLong: "double-to-long", OpDoubleToFloat: "double-to-float",
	OpIntToByte: "int-to-byte", OpIntToChar: "int-to-char", OpIntToShort: "int-to-short",

	OpAddInt: "add-int", OpSubInt: "sub-int", OpMulInt: "mul-int", OpDivInt: "div-int", OpRemInt: "rem-int",
	OpAndInt: "and-int", OpOrInt: "or-int", OpXorInt: "xor-int", OpShlInt: "shl-int", OpShrInt: "shr-int", OpUShrInt: "ushr-int",

	OpAddLong: "add-long", OpSubLong: "sub-long", OpMulLong: "mul-long", OpDivLong: "div-long", OpRemLong: "rem-long",
	OpAndLong: "and-long", OpOrLong: "or-long", OpXorLong: "xor-long", OpShlLong: "shl-long", OpShrLong: "shr-long", OpUShrLong: "ushr-long",

	OpAddFloat: "add-float", OpSubFloat: "sub-float", OpMulFloat: "mul-float", OpDivFloat: "div-float", OpRemFloat: "rem-float",
	OpAddDouble: "add-double", OpSubDouble: "sub-double", OpMulDouble: "mul-double", OpDivDouble: "div-double", OpRemDouble: "rem-double",

	OpAddInt2Addr: "add-int/2addr", OpSubInt2Addr: "sub-int/2addr", OpMulInt2Addr: "mul-int/2addr",
	OpDivInt2Addr: "div-int/2addr", OpRemInt2Addr: "rem-int/2addr", OpAndInt2Addr: "and-int/2addr",
	OpOrInt2Addr: "or-int/2addr", OpXorInt2Addr: "xor-int/2addr", OpShlInt2Addr: "shl-int/2addr",
	OpShrInt2Addr: "shr-int/2addr", OpUShrInt2Addr: "ushr-int/2addr",

	OpAddLong2Addr: "add-long/2addr", OpSubLong2Addr: "sub-long/2addr", OpMulLong2Addr: "mul-long/2addr",
	OpDivLong2Addr: "div-long/2addr", OpRemLong2Addr: "rem-long/2addr", OpAndLong2Addr: "and-long/2addr",
	OpOrLong2Addr: "or-long/2addr", OpXorLong2Addr: "xor-long/2addr", OpShlLong2Addr: "shl-long/2addr",
	OpShrLong2Addr: "shr-long/2addr", OpUShrLong2Addr: "ushr-long/2addr",

	OpAddFloat2Addr: "add-float/2addr", OpSubFloat2Addr: "sub-float/2addr", OpMulFloat2Addr: "mul-float/2addr",
	OpDivFloat2Addr: "div-float/2addr", OpRemFloat2Addr: "rem-float/2addr",

	OpAddDouble2Addr: "add-double/2addr", OpSubDouble2Addr: "sub-double/2addr", OpMulDouble2Addr: "mul-double/2addr",
	OpDivDouble2Addr: "div-double/2addr", OpRemDouble2Addr: "rem-double/2addr",

	OpAddIntLit16: "add-int/lit16", OpRSubIntLit16: "rsub-int/lit16", OpMulIntLit16: "mul-int/lit16",
	OpDivIntLit16: "div-int/lit16", OpRemIntLit16: "rem-int/lit16", OpAndIntLit16: "and-int/lit16",
	OpOrIntLit16: "or-int/lit16", OpXorIntLit16: "xor-int/lit16",

	OpAddIntLit8: "add-int/lit8", OpRSubIntLit8: "rsub-int/lit8", OpMulIntLit8: "mul-int/lit8",
	OpDivIntLit8: "div-int/lit8", OpRemIntLit8: "rem-int/lit8", OpAndIntLit8: "and-int/lit8",
	OpOrIntLit8: "or-int/lit8", OpXorIntLit8: "xor-int/lit8", OpShlIntLit8: "shl-int/lit8",
	OpShrIntLit8: "shr-int/lit8", OpUShrIntLit8: "ushr-int/lit8",

	OpInvokePolymorphic: "invoke-polymorphic", OpInvokePolymorphicRange: "invoke-polymorphic/range",
	OpInvokeCustom: "invoke-custom", OpInvokeCustomRange: "invoke-custom/range",
	OpConstMethodHandle: "const-method-handle", OpConstMethodType: "const-method-type",

	OpUnused: "unused",
}

// Mnemonic returns the canonical Dalvik name for op, or "unused" for any
// unassigned opcode byte.
func (op Op) Mnemonic() string {
	if m, ok := mnemonics[op]; ok {
		return m
	}
	return "unused"
}
