// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/m6502/emulator"
	"github.com/ezrec/m6502/translate"
)

func main() {
	var compile string
	var binary string
	var base uint
	var cycles int
	var input string
	var output string
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "Raw binary file to load")
	flag.UintVar(&base, "a", emulator.DEFAULT_ORIGIN, "Load address of the raw binary")
	flag.IntVar(&cycles, "n", 0, "Cycle budget (0 runs until the program halts)")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Language of messages (default from the locale)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	if base > 0xffff {
		log.Fatalf("%v: -a 0x%x out of range", os.Args[0], base)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := emu.Assembler()
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		err = emu.LoadBinary(uint16(base), data)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	default:
		log.Fatalf("%v: one of -c or -b is required", os.Args[0])
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if cycles > 0 {
		_, err = emu.Run(cycles)
	} else {
		for done := false; !done && err == nil; {
			done, err = emu.Step()
		}
	}

	fmt.Fprintf(os.Stderr, "%v", emu.Cpu.String())
	fmt.Fprintf(os.Stderr, "cycles: %v\n", emu.Ticks())

	if err != nil {
		log.Fatal(err)
	}

	err = emu.Close()
	if err != nil {
		log.Fatal(err)
	}
}
