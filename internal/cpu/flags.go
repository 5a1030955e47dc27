package cpu

// PSW bit positions used when packing/unpacking the five condition flags
// for PUSH PSW / POP PSW. This layout is frozen by the ROM; it does not
// match the real hardware's internal bit order, only the stack encoding
// the game depends on.
const (
	pswBitZ  = 0x01
	pswBitS  = 0x02
	pswBitP  = 0x04
	pswBitCY = 0x08
	pswBitAC = 0x10
)

// parityTable[n] is true iff n has an even number of set bits. Precomputed
// once at init, ported from the table-driven approach the pack's Z80
// reference uses for its own flag tables.
var parityTable [256]bool

func init() {
	for n := 0; n < 256; n++ {
		bits := 0
		v := n
		for v != 0 {
			bits += v & 1
			v >>= 1
		}
		parityTable[n] = bits%2 == 0
	}
}

// Flags bundles the five condition-code bits of the i8080 PSW. AC is
// carried but never consulted by any instruction in this implementation,
// per spec: Space Invaders does not depend on its value.
type Flags struct {
	Z  bool
	S  bool
	P  bool
	CY bool
	AC bool
}

func parity(b byte) bool { return parityTable[b] }

func signOf(b byte) bool { return b&0x80 != 0 }

// setZSP updates Z, S and P from a result byte. Used by every instruction
// that touches those three flags together.
func (f *Flags) setZSP(result byte) {
	f.Z = result == 0
	f.S = signOf(result)
	f.P = parity(result)
}

// pack encodes the flags into the byte PUSH PSW writes below A.
func (f Flags) pack() byte {
	var b byte
	if f.Z {
		b |= pswBitZ
	}
	if f.S {
		b |= pswBitS
	}
	if f.P {
		b |= pswBitP
	}
	if f.CY {
		b |= pswBitCY
	}
	if f.AC {
		b |= pswBitAC
	}
	return b
}

// unpackFlags decodes the byte POP PSW reads, using the same bit positions pack
// writes — spec.md fixes both sides to this layout.
func unpackFlags(b byte) Flags {
	return Flags{
		Z:  b&pswBitZ != 0,
		S:  b&pswBitS != 0,
		P:  b&pswBitP != 0,
		CY: b&pswBitCY != 0,
		AC: b&pswBitAC != 0,
	}
}
