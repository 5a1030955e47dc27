// Package cpu implements the Intel 8080 register file, flags, and
// instruction decoder used by the Space Invaders cabinet. It is the
// faithful core: every opcode's side effects and cycle cost are grounded
// directly on the original cabinet's C reimplementation.
package cpu

import (
	"fmt"
	"log"

	"github.com/dkarella/i8080-space-invaders/internal/memory"
)

// CPU holds the i8080 register file, flags, and interrupt-enable latch.
// Memory is owned separately (internal/memory.Memory) and passed into
// Step/Interrupt so the two components compose without either depending
// on the other's internals.
type CPU struct {
	A, B, C, D, E, H, L byte
	PC, SP              uint16

	Flags Flags

	// IntEnable is set by EI, cleared by DI and by interrupt acknowledgement.
	IntEnable bool

	// Debug logs each dispatched opcode and the PC it ran from.
	Debug bool
}

// New returns a CPU with all registers, flags and the interrupt latch
// zeroed, and PC at the reset vector $0000.
func New() *CPU {
	return &CPU{}
}

func (c *CPU) bc() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) de() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) hl() uint16 { return uint16(c.H)<<8 | uint16(c.L) }

func (c *CPU) setBC(v uint16) { c.B, c.C = byte(v>>8), byte(v) }
func (c *CPU) setDE(v uint16) { c.D, c.E = byte(v>>8), byte(v) }
func (c *CPU) setHL(v uint16) { c.H, c.L = byte(v>>8), byte(v) }

// fetch8 reads the byte immediately following the opcode (PC was already
// advanced past the opcode by the time any handler runs).
func (c *CPU) fetch8(mem *memory.Memory) byte {
	return mem.Read(c.PC)
}

// fetch16 reads a little-endian 16-bit immediate at PC, PC+1.
func (c *CPU) fetch16(mem *memory.Memory) uint16 {
	lo := mem.Read(c.PC)
	hi := mem.Read(c.PC + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// push writes a 16-bit value to the stack, high byte first, and
// decrements SP by 2. Used uniformly by PUSH, CALL and Interrupt.
func (c *CPU) push(mem *memory.Memory, v uint16) {
	mem.Write(c.SP-1, byte(v>>8))
	mem.Write(c.SP-2, byte(v))
	c.SP -= 2
}

// pop reads a 16-bit value off the stack, low byte first, and increments
// SP by 2.
func (c *CPU) pop(mem *memory.Memory) uint16 {
	lo := mem.Read(c.SP)
	hi := mem.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches the opcode at PC, advances PC past it, dispatches, and
// returns the number of cycles the instruction retires.
func (c *CPU) Step(mem *memory.Memory) uint32 {
	opcode := mem.Read(c.PC)
	c.PC++

	if c.Debug {
		log.Printf("cpu: pc=$%04X opcode=$%02X", c.PC-1, opcode)
	}

	c.execute(mem, opcode)
	return cycleTable[opcode]
}

// Interrupt services a hardware interrupt exactly like an unconditional
// CALL to 8*vector whose return address is the current PC, with no
// operand bytes to skip, plus clearing IntEnable. The caller must ensure
// IntEnable was set; Interrupt itself does not check.
func (c *CPU) Interrupt(mem *memory.Memory, vector byte) {
	c.push(mem, c.PC)
	c.PC = 8 * uint16(vector)
	c.IntEnable = false
}

func unimplemented(opcode byte, pc uint16) {
	panic(fmt.Sprintf("cpu: unimplemented opcode $%02X at pc=$%04X", opcode, pc-1))
}
