// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/goandroid/dex"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dexdump <file.dex>",
		Short: "Inspect and disassemble Android DEX files",
	}
	root.AddCommand(newHeaderCmd())
	root.AddCommand(newStringsCmd())
	root.AddCommand(newTypesCmd())
	root.AddCommand(newClassesCmd())
	root.AddCommand(newDisassembleCmd())
	return root
}

func openFile(path string, fast bool) (*dex.File, error) {
	f, err := dex.New(path, &dex.Options{Fast: fast})
	if err != nil {
		return nil, err
	}
	if err := f.Parse(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header <file.dex>",
		Short: "Print the DEX header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0], true)
			if err != nil {
				return err
			}
			defer f.Close()
			fmt.Println(f.Header.String())
			return nil
		},
	}
}

func newStringsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strings <file.dex>",
		Short: "Print the string_ids table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0], true)
			if err != nil {
				return err
			}
			defer f.Close()
			for i, s := range f.Strings {
				fmt.Printf("%6d  %s\n", i, s)
			}
			return nil
		},
	}
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <file.dex>",
		Short: "Print the type_ids table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0], true)
			if err != nil {
				return err
			}
			defer f.Close()
			for i := range f.Types {
				desc, ok := f.TypeDescriptorAt(uint32(i))
				if !ok {
					fmt.Printf("%6d  <invalid>\n", i)
					continue
				}
				fmt.Printf("%6d  %s\n", i, desc.String())
			}
			return nil
		},
	}
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes <file.dex>",
		Short: "Print every class_defs entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0], false)
			if err != nil {
				return err
			}
			defer f.Close()
			for _, cd := range f.ClassDefs {
				name := "<invalid>"
				if desc, ok := f.TypeDescriptorAt(cd.ClassIdx); ok {
					name = desc.String()
				}
				fmt.Printf("%s  (static=%d instance=%d direct=%d virtual=%d)\n",
					name, len(cd.StaticFields), len(cd.InstanceFields),
					len(cd.DirectMethods), len(cd.VirtualMethods))
			}
			return nil
		},
	}
}

func newDisassembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disassemble <file.dex>",
		Short: "Disassemble every direct method with a code item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0], false)
			if err != nil {
				return err
			}
			defer f.Close()
			for _, cd := range f.ClassDefs {
				className := "<invalid>"
				if desc, ok := f.TypeDescriptorAt(cd.ClassIdx); ok {
					className = desc.String()
				}
				for _, m := range cd.DirectMethods {
					if m.CodeItem == nil {
						continue
					}
					methodName := "<invalid>"
					if int(m.MethodIdx) < len(f.Methods) {
						nameIdx := f.Methods[m.MethodIdx].NameIdx
						if int(nameIdx) < len(f.Strings) {
							methodName = f.Strings[nameIdx]
						}
					}
					fmt.Printf("%s.%s:\n", className, methodName)
					for _, line := range f.Disassemble(m.CodeItem) {
						fmt.Println("  " + line.String())
					}
				}
			}
			return nil
		},
	}
}
