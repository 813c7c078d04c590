// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// equateDepth limits how many equates may refer to each other in a chain.
const equateDepth = 16

// Assembler is a single pass macro assembler for the 6502.
//
// Operands use the usual syntax: #imm, zp, zp,X, abs,Y, (zp,X), (zp),Y and
// (abs). Numbers may be $hex, %binary, 0x-prefixed or decimal, and 'c' is a
// character. <v and >v select the low and high byte of v. $(expr) is
// evaluated as a starlark expression over the integer equates and the
// labels defined so far.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.
	Pc      int    // Address of the next generated byte.

	predefine  map[string]string   // Predefines
	Label      map[string]int      // Map of labels to addresses.
	Equate     map[string]string   // Map of equates.
	Macro      map[string](*Macro) // Map of macros.
	expansions int                 // Count of macro expansions, for '@' labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isIdent returns true if the word is a label or equate name.
func isIdent(word string) bool {
	return identRegexp.MatchString(word)
}

// valueOf returns the value of a single operand expression.
// Names that are not yet defined return ErrOperandUnknown.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	return asm.evaluate(word, 0)
}

func (asm *Assembler) evaluate(word string, depth int) (value int, err error) {
	if len(word) == 0 {
		err = ErrOperandSyntax
		return
	}

	if depth > equateDepth {
		err = ErrEquateLoop
		return
	}

	switch word[0] {
	case '<':
		value, err = asm.evaluate(word[1:], depth)
		value &= 0xff
		return
	case '>':
		value, err = asm.evaluate(word[1:], depth)
		value = (value >> 8) & 0xff
		return
	case '\'':
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word)
		return
	}

	if isIdent(word) {
		equate, ok := asm.Equate[word]
		if ok {
			return asm.evaluate(equate, depth+1)
		}
		addr, ok := asm.Label[word]
		if ok {
			value = addr
			return
		}
		err = ErrOperandUnknown
		return
	}

	var v64 int64
	var perr error
	switch word[0] {
	case '$':
		v64, perr = strconv.ParseInt(word[1:], 16, 32)
	case '%':
		v64, perr = strconv.ParseInt(word[1:], 2, 32)
	default:
		v64, perr = strconv.ParseInt(word, 0, 32)
	}
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// linkOf returns the forward reference described by an operand.
func linkOf(word string, offset int, size int) (link Link, ok bool) {
	link = Link{Offset: offset, Size: size}
	switch {
	case strings.HasPrefix(word, "<"):
		link.Truncate = true
		word = word[1:]
	case strings.HasPrefix(word, ">"):
		link.Truncate = true
		link.Shift = 8
		word = word[1:]
	}

	if !isIdent(word) {
		return
	}

	link.Label = word
	ok = true
	return
}

// parenEval evaluates a $(...) expression.
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var v int
		v, err = asm.valueOf(key)
		if err != nil {
			// Ignore non-integer equates. They may be
			// operand text for a macro.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, v := range asm.Label {
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expandExpressions replaces every $(...) in a line with its value.
func (asm *Assembler) expandExpressions(line string) (out string, err error) {
	for {
		start := strings.Index(line, "$(")
		if start < 0 {
			out += line
			return
		}

		depth := 0
		end := -1
		for n := start + 1; n < len(line) && end < 0; n++ {
			switch line[n] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = n
				}
			}
		}
		if end < 0 {
			err = ErrParseExpression(line[start+2:])
			return
		}

		var value int
		value, err = asm.parenEval(line[start+2 : end])
		if err != nil {
			return
		}

		out += line[:start] + strconv.Itoa(value)
		line = line[end+1:]
	}
}

var charRegexp = regexp.MustCompile(`'\\?[^']'`)

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charRegexp.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line, err = asm.expandExpressions(line)
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !isIdent(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !isIdent(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.Pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// Equates used as whole words; macro arguments rely on this.
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok && n > 0 {
			words[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		unique := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", unique)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.Pc = 0
	asm.expansions = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(_cpu_defines)
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 || !isIdent(words[1]) {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of forward labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		for _, link := range op.Links {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")

			addr, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
				return
			}
			value := addr >> link.Shift
			if link.Truncate {
				value &= 0xff
			}
			if link.Size == 1 && value > 0xff {
				err = ErrOperandRange
				return
			}
			op.Bytes[link.Offset] = uint8(value & 0xff)
			if link.Size == 2 {
				op.Bytes[link.Offset+1] = uint8((value >> 8) & 0xff)
			}
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// emitValue appends a size byte little-endian operand, or a link to be
// resolved at the end of the pass.
func (asm *Assembler) emitValue(bytes []byte, links []Link, word string, size int) (out []byte, linked []Link, err error) {
	out = bytes
	linked = links

	value, err := asm.valueOf(word)
	if errors.Is(err, ErrOperandUnknown) {
		link, ok := linkOf(word, len(out), size)
		if !ok {
			return
		}
		err = nil
		linked = append(linked, link)
		out = append(out, make([]byte, size)...)
		return
	}
	if err != nil {
		return
	}

	switch size {
	case 1:
		if value < -0x80 || value > 0xff {
			err = ErrOperandRange
			return
		}
		out = append(out, uint8(value&0xff))
	case 2:
		if value < 0 || value > 0xffff {
			err = ErrOperandRange
			return
		}
		out = append(out, uint8(value&0xff), uint8((value>>8)&0xff))
	}

	return
}

// parseOperand splits an operand into its addressing mode and value.
// Indexed and plain operands are returned in their absolute form.
func parseOperand(text string) (mode Mode, value string, err error) {
	upper := strings.ToUpper(text)
	switch {
	case len(text) == 0:
		mode = MODE_IMPLIED
	case strings.HasPrefix(text, "#"):
		mode = MODE_IMMEDIATE
		value = text[1:]
	case strings.HasPrefix(text, "("):
		switch {
		case strings.HasSuffix(upper, ",X)"):
			mode = MODE_INDEXED_INDIRECT
			value = text[1 : len(text)-3]
		case strings.HasSuffix(upper, "),Y"):
			mode = MODE_INDIRECT_INDEXED
			value = text[1 : len(text)-3]
		case strings.HasSuffix(upper, ")"):
			mode = MODE_INDIRECT
			value = text[1 : len(text)-1]
		default:
			err = ErrOperandSyntax
			return
		}
	case strings.HasSuffix(upper, ",X"):
		mode = MODE_ABSOLUTE_X
		value = text[:len(text)-2]
	case strings.HasSuffix(upper, ",Y"):
		mode = MODE_ABSOLUTE_Y
		value = text[:len(text)-2]
	default:
		mode = MODE_ABSOLUTE
		value = text
	}

	if mode != MODE_IMPLIED && len(value) == 0 {
		err = ErrOperandMissing
	}

	return
}

// zeroPageMode maps absolute modes to their shorter zero page forms.
var zeroPageMode = map[Mode]Mode{
	MODE_ABSOLUTE:   MODE_ZERO_PAGE,
	MODE_ABSOLUTE_X: MODE_ZERO_PAGE_X,
	MODE_ABSOLUTE_Y: MODE_ZERO_PAGE_Y,
}

// assemble encodes a single instruction.
func (asm *Assembler) assemble(inst Inst, text string) (bytes []byte, links []Link, err error) {
	mode, word, err := parseOperand(text)
	if err != nil {
		return
	}

	if mode == MODE_IMPLIED {
		code, ok := Encode(inst, MODE_IMPLIED)
		if !ok {
			err = ErrOperandMissing
			return
		}
		bytes = []byte{code}
		return
	}

	// Use the zero page form when the value is known to fit.
	short, ok := zeroPageMode[mode]
	if ok {
		value, verr := asm.valueOf(word)
		if verr == nil && value >= 0 && value <= 0xff {
			_, ok = Encode(inst, short)
			if ok {
				mode = short
			}
		}
	}

	code, ok := Encode(inst, mode)
	if !ok {
		err = ErrModeInvalid
		return
	}

	bytes = []byte{code}
	bytes, links, err = asm.emitValue(bytes, links, word, mode.Operands())

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	operand := strings.Join(words[1:], "")

	if strings.HasPrefix(words[0], ".") {
		switch words[0] {
		case ".org":
			if len(words) < 2 {
				err = ErrDirectiveSyntax
				return
			}
			var value int
			value, err = asm.valueOf(operand)
			if err != nil {
				return
			}
			if value < 0 || value > 0xffff {
				err = ErrOperandRange
				return
			}
			asm.Pc = value
			return
		case ".byte", ".word":
			if len(words) < 2 {
				err = ErrDirectiveSyntax
				return
			}
			size := 1
			if words[0] == ".word" {
				size = 2
			}
			for _, item := range strings.Split(operand, ",") {
				if len(item) == 0 {
					err = ErrDirectiveSyntax
					return
				}
				bytes, links, err = asm.emitValue(bytes, links, item, size)
				if err != nil {
					return
				}
			}
		default:
			err = ErrDirectiveInvalid
			return
		}
	} else {
		inst, ok := instNames[strings.ToUpper(words[0])]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		bytes, links, err = asm.assemble(inst, operand)
		if err != nil {
			return
		}
	}

	if asm.Pc+len(bytes) > 0x10000 {
		err = ErrOperandRange
		return
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo: lineno,
		Addr:   uint16(asm.Pc),
		Words:  words,
		Bytes:  bytes,
		Links:  links,
	})
	asm.Pc += len(bytes)

	return
}
