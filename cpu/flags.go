package cpu

// Processor status byte bit assignments.
const (
	FLAG_C      = uint8(1 << 0) // Carry
	FLAG_Z      = uint8(1 << 1) // Zero
	FLAG_I      = uint8(1 << 2) // Interrupt disable
	FLAG_D      = uint8(1 << 3) // Decimal
	FLAG_B      = uint8(1 << 4) // Break
	FLAG_UNUSED = uint8(1 << 5) // Always reads as 1
	FLAG_V      = uint8(1 << 6) // Overflow
	FLAG_N      = uint8(1 << 7) // Negative
)

// Flags is the processor status, one named boolean per flag.
type Flags struct {
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal
	B bool // Break
	V bool // Overflow
	N bool // Negative
}

// Byte packs the flags into the processor status byte.
func (fl Flags) Byte() (p uint8) {
	p = FLAG_UNUSED
	bits := [...](struct {
		set bool
		bit uint8
	}){
		{fl.C, FLAG_C},
		{fl.Z, FLAG_Z},
		{fl.I, FLAG_I},
		{fl.D, FLAG_D},
		{fl.B, FLAG_B},
		{fl.V, FLAG_V},
		{fl.N, FLAG_N},
	}
	for _, b := range bits {
		if b.set {
			p |= b.bit
		}
	}
	return
}

// SetByte unpacks the processor status byte into the flags.
func (fl *Flags) SetByte(p uint8) {
	fl.C = (p & FLAG_C) != 0
	fl.Z = (p & FLAG_Z) != 0
	fl.I = (p & FLAG_I) != 0
	fl.D = (p & FLAG_D) != 0
	fl.B = (p & FLAG_B) != 0
	fl.V = (p & FLAG_V) != 0
	fl.N = (p & FLAG_N) != 0
}

// SetZN sets Zero and Negative from a value.
func (fl *Flags) SetZN(value uint8) {
	fl.Z = value == 0
	fl.N = (value & 0x80) != 0
}

// String shows set flags in upper case, as "NV-BDIZC".
func (fl Flags) String() string {
	out := []byte("nv-bdizc")
	p := fl.Byte()
	for n := range out {
		if out[n] != '-' && (p&(0x80>>n)) != 0 {
			out[n] -= 'a' - 'A'
		}
	}
	return string(out)
}
