// Command c8dis disassembles a CHIP-8 program image.
//
// Usage:
//
//	c8dis [-base 0x200] [-raw] program.ch8
//
// Each instruction word is printed as "ADDR  WORD  MNEMONIC". A trailing odd
// byte is printed as a DB directive.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/insts"
	"github.com/sarchlab/chip8/loader"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("c8dis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseFlag := fs.String("base", "0x200", "address of the first byte")
	raw := fs.Bool("raw", false, "omit addresses and raw words")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: c8dis [options] <program.ch8>\n")
		fs.PrintDefaults()
		return 1
	}

	base, err := strconv.ParseUint(*baseFlag, 0, 16)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid base %q: %v\n", *baseFlag, err)
		return 1
	}

	prog, err := loader.LoadWithLimit(fs.Arg(0), emu.MaxMemorySize-int(base))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := disassemble(stdout, prog.Bytes(), uint16(base), *raw); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// disassemble writes one line per instruction word in code.
func disassemble(w io.Writer, code []byte, base uint16, raw bool) error {
	decoder := insts.NewDecoder()

	i := 0
	for ; i+1 < len(code); i += 2 {
		word := insts.Combine(code[i], code[i+1])
		inst := decoder.Decode(word)

		var err error
		if raw {
			_, err = fmt.Fprintln(w, inst)
		} else {
			_, err = fmt.Fprintf(w, "%03X  %04X  %s\n", int(base)+i, word, inst)
		}
		if err != nil {
			return err
		}
	}

	if i < len(code) {
		var err error
		if raw {
			_, err = fmt.Fprintf(w, "DB $%02X\n", code[i])
		} else {
			_, err = fmt.Fprintf(w, "%03X  %02X    DB $%02X\n", int(base)+i, code[i], code[i])
		}
		return err
	}
	return nil
}
