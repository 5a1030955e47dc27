package cpu

import (
	"testing"

	"github.com/dkarella/i8080-space-invaders/internal/memory"
)

func TestPushPopBCRoundTrips(t *testing.T) {
	mem := memory.New()
	c := New()
	c.SP = 0x2400
	c.B, c.C = 0x12, 0x34

	c.push(mem, c.bc())
	gotSP := c.SP
	c.setBC(0)
	c.setBC(c.pop(mem))

	if c.B != 0x12 || c.C != 0x34 {
		t.Fatalf("BC after round trip = %02X%02X, want 1234", c.B, c.C)
	}
	if c.SP != 0x2400 {
		t.Fatalf("SP after round trip = 0x%04X, want 0x2400 (net zero)", c.SP)
	}
	if gotSP != 0x23fe {
		t.Fatalf("SP immediately after push = 0x%04X, want 0x23FE", gotSP)
	}
}

func TestPushPopPSWRoundTrips(t *testing.T) {
	mem := memory.New()
	c := New()
	c.SP = 0x2400
	c.A = 0x99
	c.Flags = Flags{Z: true, S: false, P: true, CY: true, AC: false}

	c.push(mem, uint16(c.A)<<8|uint16(c.Flags.pack()))

	v := c.pop(mem)
	a := byte(v >> 8)
	f := unpackFlags(byte(v))

	if a != 0x99 {
		t.Fatalf("A after round trip = 0x%02X, want 0x99", a)
	}
	if f != (Flags{Z: true, S: false, P: true, CY: true, AC: false}) {
		t.Fatalf("flags after round trip = %+v", f)
	}
}

func TestXCHGTwiceIsIdentity(t *testing.T) {
	mem := memory.New()
	mem.AllowROMWrites = true
	c := New()
	c.H, c.L = 0x11, 0x22
	c.D, c.E = 0x33, 0x44

	mem.Write(0, 0xeb) // XCHG
	mem.Write(1, 0xeb) // XCHG
	c.Step(mem)
	c.Step(mem)

	if c.H != 0x11 || c.L != 0x22 || c.D != 0x33 || c.E != 0x44 {
		t.Fatalf("XCHG;XCHG was not the identity: H=%02X L=%02X D=%02X E=%02X", c.H, c.L, c.D, c.E)
	}
}

func TestJMPIgnoresFlags(t *testing.T) {
	mem := memory.New()
	mem.AllowROMWrites = true
	c := New()
	c.Flags = Flags{Z: true, S: true, P: true, CY: true}

	mem.Write(0, 0xc3) // JMP
	mem.Write(1, 0x34)
	mem.Write(2, 0x12)
	c.Step(mem)

	if c.PC != 0x1234 {
		t.Fatalf("PC = 0x%04X, want 0x1234", c.PC)
	}
}

// S5 — conditional return from spec.md §8.
func TestRNZConditionalReturn(t *testing.T) {
	mem := memory.New()
	mem.AllowROMWrites = true
	mem.Write(0x1000, 0x34) // low byte of return address
	mem.Write(0x1001, 0x12) // high byte

	c := New()
	c.SP = 0x1000
	c.Flags.Z = false
	mem.Write(0, 0xc0) // RNZ
	c.Step(mem)

	if c.PC != 0x1234 {
		t.Fatalf("Z=0: PC = 0x%04X, want 0x1234", c.PC)
	}
	if c.SP != 0x1002 {
		t.Fatalf("Z=0: SP = 0x%04X, want 0x1002", c.SP)
	}

	c2 := New()
	c2.SP = 0x1000
	c2.Flags.Z = true
	mem.Write(5, 0xc0)
	c2.PC = 5
	c2.Step(mem)

	if c2.PC != 6 {
		t.Fatalf("Z=1: PC = 0x%04X, want 0x0006", c2.PC)
	}
	if c2.SP != 0x1000 {
		t.Fatalf("Z=1: SP = 0x%04X, want unchanged 0x1000", c2.SP)
	}
}

func TestROMNeverMutatedByInstructions(t *testing.T) {
	mem := memory.New()
	rom := make([]byte, 0x2000)
	for i := range rom {
		rom[i] = 0xAA
	}
	rom[0] = 0x34 // INR M
	if err := mem.LoadROM(rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	c := New()
	c.setHL(0x0010) // inside ROM
	c.Step(mem)

	if got := mem.Read(0x0010); got != 0xAA {
		t.Fatalf("INR M mutated ROM: got 0x%02X, want 0xAA unchanged", got)
	}
}

// Interrupt behaves like an unconditional CALL with no operand bytes and
// additionally clears IntEnable.
func TestInterruptPushesPCAndJumps(t *testing.T) {
	mem := memory.New()
	c := New()
	c.PC = 0x0150
	c.SP = 0x2400
	c.IntEnable = true

	c.Interrupt(mem, 2)

	if c.PC != 16 {
		t.Fatalf("PC = 0x%04X, want 0x0010 (8*2)", c.PC)
	}
	if c.IntEnable {
		t.Fatal("IntEnable should be cleared on interrupt acknowledgement")
	}

	ret := c.pop(mem)
	if ret != 0x0150 {
		t.Fatalf("pushed return address = 0x%04X, want 0x0150", ret)
	}
}

func TestHLTPanicsWithHaltSignal(t *testing.T) {
	mem := memory.New()
	mem.AllowROMWrites = true
	c := New()
	mem.Write(0, 0x76) // HLT

	defer func() {
		r := recover()
		if _, ok := r.(HaltSignal); !ok {
			t.Fatalf("expected HaltSignal panic, got %v", r)
		}
	}()
	c.Step(mem)
	t.Fatal("expected HLT to panic")
}

// Reserved opcodes abort with a diagnostic instead of behaving as NOPs.
func TestReservedOpcodesAbort(t *testing.T) {
	reserved := []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xcb, 0xd9, 0xdd, 0xed, 0xfd}
	for _, opcode := range reserved {
		func() {
			mem := memory.New()
			mem.AllowROMWrites = true
			c := New()
			mem.Write(0, opcode)

			defer func() {
				if recover() == nil {
					t.Fatalf("opcode $%02X: expected a panic, got none", opcode)
				}
			}()
			c.Step(mem)
		}()
	}
}

func TestCALLPushesByteAfterOperand(t *testing.T) {
	mem := memory.New()
	mem.AllowROMWrites = true
	c := New()
	c.SP = 0x2400
	c.PC = 0x0100
	mem.Write(0x0100, 0xcd) // CALL
	mem.Write(0x0101, 0x00)
	mem.Write(0x0102, 0x02)

	c.Step(mem)

	if c.PC != 0x0200 {
		t.Fatalf("PC = 0x%04X, want 0x0200", c.PC)
	}
	ret := c.pop(mem)
	if ret != 0x0103 {
		t.Fatalf("pushed return address = 0x%04X, want 0x0103", ret)
	}
}
