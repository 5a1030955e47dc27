package cpu

import "github.com/dkarella/i8080-space-invaders/internal/memory"

// execute dispatches a single fetched opcode. PC has already been advanced
// past the opcode byte itself by Step; handlers that read operand bytes
// advance PC past those bytes too.
func (c *CPU) execute(mem *memory.Memory, opcode byte) {
	switch opcode {
	case 0x00: // NOP
	case 0x01: // LXI B,d16
		c.setBC(c.fetch16(mem))
		c.PC += 2
	case 0x02: // STAX B
		mem.Write(c.bc(), c.A)
	case 0x03: // INX B
		c.setBC(c.bc() + 1)
	case 0x04: // INR B
		c.inr(&c.B)
	case 0x05: // DCR B
		c.dcr(&c.B)
	case 0x06: // MVI B,d8
		c.B = c.fetch8(mem)
		c.PC++
	case 0x07: // RLC
		x := c.A
		c.A = x<<1 | x>>7
		c.Flags.CY = x&0x80 != 0
	case 0x08: // unused
		unimplemented(opcode, c.PC)
	case 0x09: // DAD B
		c.dad(c.bc())
	case 0x0a: // LDAX B
		c.A = mem.Read(c.bc())
	case 0x0b: // DCX B
		c.setBC(c.bc() - 1)
	case 0x0c: // INR C
		c.inr(&c.C)
	case 0x0d: // DCR C
		c.dcr(&c.C)
	case 0x0e: // MVI C,d8
		c.C = c.fetch8(mem)
		c.PC++
	case 0x0f: // RRC
		x := c.A
		c.A = x<<7 | x>>1
		c.Flags.CY = x&0x01 != 0
	case 0x10: // unused
		unimplemented(opcode, c.PC)
	case 0x11: // LXI D,d16
		c.setDE(c.fetch16(mem))
		c.PC += 2
	case 0x12: // STAX D
		mem.Write(c.de(), c.A)
	case 0x13: // INX D
		c.setDE(c.de() + 1)
	case 0x14: // INR D
		c.inr(&c.D)
	case 0x15: // DCR D
		c.dcr(&c.D)
	case 0x16: // MVI D,d8
		c.D = c.fetch8(mem)
		c.PC++
	case 0x17: // RAL
		x := c.A
		var cyIn byte
		if c.Flags.CY {
			cyIn = 1
		}
		c.A = x<<1 | cyIn
		c.Flags.CY = x&0x80 != 0
	case 0x18: // unused
		unimplemented(opcode, c.PC)
	case 0x19: // DAD D
		c.dad(c.de())
	case 0x1a: // LDAX D
		c.A = mem.Read(c.de())
	case 0x1b: // DCX D
		c.setDE(c.de() - 1)
	case 0x1c: // INR E
		c.inr(&c.E)
	case 0x1d: // DCR E
		c.dcr(&c.E)
	case 0x1e: // MVI E,d8
		c.E = c.fetch8(mem)
		c.PC++
	case 0x1f: // RAR
		x := c.A
		var cyIn byte
		if c.Flags.CY {
			cyIn = 0x80
		}
		c.A = cyIn | x>>1
		c.Flags.CY = x&0x01 != 0
	case 0x20: // unused
		unimplemented(opcode, c.PC)
	case 0x21: // LXI H,d16
		c.setHL(c.fetch16(mem))
		c.PC += 2
	case 0x22: // SHLD addr
		addr := c.fetch16(mem)
		mem.Write(addr, c.L)
		mem.Write(addr+1, c.H)
		c.PC += 2
	case 0x23: // INX H
		c.setHL(c.hl() + 1)
	case 0x24: // INR H
		c.inr(&c.H)
	case 0x25: // DCR H
		c.dcr(&c.H)
	case 0x26: // MVI H,d8
		c.H = c.fetch8(mem)
		c.PC++
	case 0x27: // DAA (partial: main-carry path only, per spec)
		if c.A&0x0f > 9 {
			c.A += 6
		}
		if c.A&0xf0 > 0x90 {
			c.add(0x60)
		}
	case 0x28: // unused
		unimplemented(opcode, c.PC)
	case 0x29: // DAD H
		c.dad(c.hl())
	case 0x2a: // LHLD addr
		addr := c.fetch16(mem)
		c.L = mem.Read(addr)
		c.H = mem.Read(addr + 1)
		c.PC += 2
	case 0x2b: // DCX H
		c.setHL(c.hl() - 1)
	case 0x2c: // INR L
		c.inr(&c.L)
	case 0x2d: // DCR L
		c.dcr(&c.L)
	case 0x2e: // MVI L,d8
		c.L = c.fetch8(mem)
		c.PC++
	case 0x2f: // CMA
		c.A = ^c.A
	case 0x30: // unused
		unimplemented(opcode, c.PC)
	case 0x31: // LXI SP,d16
		c.SP = c.fetch16(mem)
		c.PC += 2
	case 0x32: // STA addr
		mem.Write(c.fetch16(mem), c.A)
		c.PC += 2
	case 0x33: // INX SP
		c.SP++
	case 0x34: // INR M
		hl := c.hl()
		v := mem.Read(hl)
		c.inr(&v)
		mem.Write(hl, v)
	case 0x35: // DCR M
		hl := c.hl()
		v := mem.Read(hl)
		c.dcr(&v)
		mem.Write(hl, v)
	case 0x36: // MVI M,d8
		mem.Write(c.hl(), c.fetch8(mem))
		c.PC++
	case 0x37: // STC
		c.Flags.CY = true
	case 0x38: // unused
		unimplemented(opcode, c.PC)
	case 0x39: // DAD SP
		c.dad(c.SP)
	case 0x3a: // LDA addr
		c.A = mem.Read(c.fetch16(mem))
		c.PC += 2
	case 0x3b: // DCX SP
		c.SP--
	case 0x3c: // INR A
		c.inr(&c.A)
	case 0x3d: // DCR A
		c.dcr(&c.A)
	case 0x3e: // MVI A,d8
		c.A = c.fetch8(mem)
		c.PC++
	case 0x3f: // CMC
		c.Flags.CY = !c.Flags.CY

	// 0x40-0x7F: MOV r,r' (0x76 is HLT)
	default:
		if opcode >= 0x40 && opcode <= 0x7f {
			c.execMOV(mem, opcode)
			return
		}
		c.executeHighHalf(mem, opcode)
	}
}

// execMOV handles the 64-entry MOV block, with 0x76 (MOV M,M's slot)
// special-cased as HLT per the ISA.
func (c *CPU) execMOV(mem *memory.Memory, opcode byte) {
	if opcode == 0x76 { // HLT
		panic(HaltSignal{})
	}
	dst := (opcode >> 3) & 0x7
	src := opcode & 0x7
	v := c.readReg(mem, src)
	c.writeReg(mem, dst, v)
}

// HaltSignal is the panic value raised on HLT. The scheduler recovers it
// to stop emulation cleanly rather than treating it as a crash.
type HaltSignal struct{}

// readReg/writeReg address the eight MOV/ALU register slots: B,C,D,E,H,L,M,A.
func (c *CPU) readReg(mem *memory.Memory, code byte) byte {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return mem.Read(c.hl())
	default:
		return c.A
	}
}

func (c *CPU) writeReg(mem *memory.Memory, code byte, v byte) {
	switch code {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		mem.Write(c.hl(), v)
	default:
		c.A = v
	}
}

// executeHighHalf handles 0x80-0xFF: the ALU block (0x80-0xBF) and the
// control-flow/stack/immediate block (0xC0-0xFF).
func (c *CPU) executeHighHalf(mem *memory.Memory, opcode byte) {
	if opcode >= 0x80 && opcode <= 0xbf {
		c.execALU(mem, opcode)
		return
	}

	switch opcode {
	case 0xc0: // RNZ
		c.condRet(mem, !c.Flags.Z)
	case 0xc1: // POP B
		c.setBC(c.pop(mem))
	case 0xc2: // JNZ addr
		c.condJump(mem, !c.Flags.Z)
	case 0xc3: // JMP addr
		c.PC = c.fetch16(mem)
	case 0xc4: // CNZ addr
		c.condCall(mem, !c.Flags.Z)
	case 0xc5: // PUSH B
		c.push(mem, c.bc())
	case 0xc6: // ADI d8
		c.add(uint16(c.fetch8(mem)))
		c.PC++
	case 0xc7: // RST 0
		c.rst(mem, 0)
	case 0xc8: // RZ
		c.condRet(mem, c.Flags.Z)
	case 0xc9: // RET
		c.PC = c.pop(mem)
	case 0xca: // JZ addr
		c.condJump(mem, c.Flags.Z)
	case 0xcb: // unused
		unimplemented(opcode, c.PC)
	case 0xcc: // CZ addr
		c.condCall(mem, c.Flags.Z)
	case 0xcd: // CALL addr
		c.doCall(mem)
	case 0xce: // ACI d8
		c.adc(c.fetch8(mem))
		c.PC++
	case 0xcf: // RST 1
		c.rst(mem, 1)
	case 0xd0: // RNC
		c.condRet(mem, !c.Flags.CY)
	case 0xd1: // POP D
		c.setDE(c.pop(mem))
	case 0xd2: // JNC addr
		c.condJump(mem, !c.Flags.CY)
	case 0xd3: // OUT d8 — bridged by the scheduler's IN/OUT fast path;
		// reached directly only if Step is driven without that path.
		c.PC++
	case 0xd4: // CNC addr
		c.condCall(mem, !c.Flags.CY)
	case 0xd5: // PUSH D
		c.push(mem, c.de())
	case 0xd6: // SUI d8
		c.sub(c.fetch8(mem))
		c.PC++
	case 0xd7: // RST 2
		c.rst(mem, 2)
	case 0xd8: // RC
		c.condRet(mem, c.Flags.CY)
	case 0xd9: // unused
		unimplemented(opcode, c.PC)
	case 0xda: // JC addr
		c.condJump(mem, c.Flags.CY)
	case 0xdb: // IN d8 — see OUT above.
		c.PC++
	case 0xdc: // CC addr
		c.condCall(mem, c.Flags.CY)
	case 0xdd: // unused
		unimplemented(opcode, c.PC)
	case 0xde: // SBI d8
		c.sbb(c.fetch8(mem))
		c.PC++
	case 0xdf: // RST 3
		c.rst(mem, 3)
	case 0xe0: // RPO
		c.condRet(mem, !c.Flags.P)
	case 0xe1: // POP H
		c.setHL(c.pop(mem))
	case 0xe2: // JPO addr
		c.condJump(mem, !c.Flags.P)
	case 0xe3: // XTHL
		spLo := mem.Read(c.SP)
		spHi := mem.Read(c.SP + 1)
		mem.Write(c.SP, c.L)
		mem.Write(c.SP+1, c.H)
		c.L, c.H = spLo, spHi
	case 0xe4: // CPO addr
		c.condCall(mem, !c.Flags.P)
	case 0xe5: // PUSH H
		c.push(mem, c.hl())
	case 0xe6: // ANI d8
		c.logic(c.A & c.fetch8(mem))
		c.PC++
	case 0xe7: // RST 4
		c.rst(mem, 4)
	case 0xe8: // RPE
		c.condRet(mem, c.Flags.P)
	case 0xe9: // PCHL
		c.PC = c.hl()
	case 0xea: // JPE addr
		c.condJump(mem, c.Flags.P)
	case 0xeb: // XCHG
		c.H, c.D = c.D, c.H
		c.L, c.E = c.E, c.L
	case 0xec: // CPE addr
		c.condCall(mem, c.Flags.P)
	case 0xed: // unused
		unimplemented(opcode, c.PC)
	case 0xee: // XRI d8
		c.logic(c.A ^ c.fetch8(mem))
		c.PC++
	case 0xef: // RST 5
		c.rst(mem, 5)
	case 0xf0: // RP
		c.condRet(mem, !c.Flags.S)
	case 0xf1: // POP PSW
		v := c.pop(mem)
		c.A = byte(v >> 8)
		c.Flags = unpackFlags(byte(v))
	case 0xf2: // JP addr
		c.condJump(mem, !c.Flags.S)
	case 0xf3: // DI
		c.IntEnable = false
	case 0xf4: // CP addr
		c.condCall(mem, !c.Flags.S)
	case 0xf5: // PUSH PSW
		c.push(mem, uint16(c.A)<<8|uint16(c.Flags.pack()))
	case 0xf6: // ORI d8
		c.logic(c.A | c.fetch8(mem))
		c.PC++
	case 0xf7: // RST 6
		c.rst(mem, 6)
	case 0xf8: // RM
		c.condRet(mem, c.Flags.S)
	case 0xf9: // SPHL
		c.SP = c.hl()
	case 0xfa: // JM addr
		c.condJump(mem, c.Flags.S)
	case 0xfb: // EI
		c.IntEnable = true
	case 0xfc: // CM addr
		c.condCall(mem, c.Flags.S)
	case 0xfd: // unused
		unimplemented(opcode, c.PC)
	case 0xfe: // CPI d8
		c.cmp(c.fetch8(mem))
		c.PC++
	case 0xff: // RST 7
		c.rst(mem, 7)
	default:
		unimplemented(opcode, c.PC)
	}
}

// execALU dispatches the 0x80-0xBF block: ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP
// against each of the eight register slots.
func (c *CPU) execALU(mem *memory.Memory, opcode byte) {
	op := (opcode >> 3) & 0x7
	operand := c.readReg(mem, opcode&0x7)
	switch op {
	case 0: // ADD
		c.add(uint16(operand))
	case 1: // ADC
		c.adc(operand)
	case 2: // SUB
		c.sub(operand)
	case 3: // SBB
		c.sbb(operand)
	case 4: // ANA
		c.logic(c.A & operand)
	case 5: // XRA
		c.logic(c.A ^ operand)
	case 6: // ORA
		c.logic(c.A | operand)
	case 7: // CMP
		c.cmp(operand)
	}
}

// condJump implements the conditional JMP forms: taken on cond, else the
// 2-byte operand is skipped.
func (c *CPU) condJump(mem *memory.Memory, cond bool) {
	if !cond {
		c.PC += 2
		return
	}
	c.PC = c.fetch16(mem)
}

// doCall pushes the return address (the byte after the operand) high-low
// and jumps to the 16-bit operand.
func (c *CPU) doCall(mem *memory.Memory) {
	ret := c.PC + 2
	addr := c.fetch16(mem)
	c.push(mem, ret)
	c.PC = addr
}

// condCall implements the conditional CALL forms.
func (c *CPU) condCall(mem *memory.Memory, cond bool) {
	if !cond {
		c.PC += 2
		return
	}
	c.doCall(mem)
}

// condRet implements the conditional RET forms.
func (c *CPU) condRet(mem *memory.Memory, cond bool) {
	if !cond {
		return
	}
	c.PC = c.pop(mem)
}

// rst implements RST n: CALL to 8*n. Only RST 1 and RST 2 are ever issued
// by the cabinet's hardware interrupt lines (via Interrupt, not via this
// opcode), but a guest program executing the RST opcode directly must
// still behave like any other CALL.
func (c *CPU) rst(mem *memory.Memory, n byte) {
	c.push(mem, c.PC)
	c.PC = 8 * uint16(n)
}
