package cpu

// add computes A + operand in 9 bits, setting Z/S/CY/P and storing the
// truncated result in A. Used directly by ADD/ADI and, with operand
// widened by the incoming carry, by ADC/ACI.
func (c *CPU) add(operand uint16) {
	x := uint16(c.A) + operand
	c.Flags.Z = x&0xff == 0
	c.Flags.S = signOf(byte(x))
	c.Flags.CY = x > 0xff
	c.Flags.P = parity(byte(x))
	c.A = byte(x)
}

// adc performs the ADC/ACI 9-bit carry-in addition: the carry is folded in
// before truncation, unlike the original C source's `operand + CY` which
// truncates to 8 bits first and loses the carry when operand is 0xFF.
func (c *CPU) adc(operand byte) {
	var cy uint16
	if c.Flags.CY {
		cy = 1
	}
	c.add(uint16(operand) + cy)
}

// sub computes A - operand in 8 bits, setting Z/S/P over the result and CY
// as a borrow flag (A < operand), matching the original source's sub().
func (c *CPU) sub(operand byte) byte {
	a := c.A
	x := a - operand
	c.Flags.Z = x == 0
	c.Flags.S = signOf(x)
	c.Flags.CY = a < operand
	c.Flags.P = parity(x)
	c.A = x
	return x
}

// sbb performs the SBB/SBI 9-bit carry-in subtraction: borrow is folded in
// before truncation so CY is computed against the true 9-bit difference.
func (c *CPU) sbb(operand byte) {
	var cy uint16
	if c.Flags.CY {
		cy = 1
	}
	a := uint16(c.A)
	d := uint16(operand) + cy
	x := a - d
	c.Flags.Z = byte(x) == 0
	c.Flags.S = signOf(byte(x))
	c.Flags.CY = a < d
	c.Flags.P = parity(byte(x))
	c.A = byte(x)
}

// inr increments *p, setting Z/S/P. CY is never touched.
func (c *CPU) inr(p *byte) {
	x := *p + 1
	c.Flags.setZSP(x)
	*p = x
}

// dcr decrements *p, setting Z/S/P. CY is never touched.
func (c *CPU) dcr(p *byte) {
	x := *p - 1
	c.Flags.setZSP(x)
	*p = x
}

// logic replaces A with x, setting Z/S/P and clearing CY — the shared tail
// of ANA/XRA/ORA and their immediate forms.
func (c *CPU) logic(x byte) {
	c.Flags.setZSP(x)
	c.Flags.CY = false
	c.A = x
}

// cmp performs subtraction semantics against operand but discards the
// result, leaving flags reflecting A - operand and A unchanged.
func (c *CPU) cmp(operand byte) {
	a := c.A
	c.sub(operand)
	c.A = a
}

// dad adds a 16-bit register pair into HL, affecting only CY (set iff the
// 17-bit sum overflows 0xFFFF).
func (c *CPU) dad(operand uint16) {
	sum := uint32(c.hl()) + uint32(operand)
	c.Flags.CY = sum > 0xFFFF
	c.setHL(uint16(sum))
}
