// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package dex parses Android Dalvik Executable (DEX) container files,
// decodes Dalvik bytecode into a typed instruction representation, and
// builds per-method control-flow graphs.
//
// The package does not verify DEX signatures or checksums, execute
// bytecode, or write DEX files. It targets DEX format version 035 and
// accepts 038.
package dex
