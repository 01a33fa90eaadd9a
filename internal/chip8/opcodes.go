package chip8

// execute decodes one 16-bit big-endian word and runs it. PC has
// already moved past the word, so a skip is pc += 2 and the FX0A
// busy-wait is pc -= 2.
//
// Standard Chip-8 instructions:
// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#3.0
func (c *Chip8) execute(opcode uint16) (drew bool, err error) {
	nnn := opcode & 0x0fff
	nn := uint8(opcode & 0x00ff)
	n := uint8(opcode & 0x000f)
	x := uint8((opcode >> 8) & 0x0f)
	y := uint8((opcode >> 4) & 0x0f)

	switch uint8((opcode >> 12) & 0x0f) {
	case 0x0:
		switch nn {

		// 00E0
		// Clears the screen
		case 0xe0:
			c.clearScreen()
			return true, nil

		// 00EE
		// Returns from a subroutine
		case 0xee:
			addr, err := c.stack.pop()
			if err != nil {
				return false, err
			}
			c.pc = addr

		// 0NNN ran native RCA 1802 code on the VIP. Nothing to run
		// it on here, so it decodes as unknown.
		default:
			return false, ErrUnknownOpcode
		}

	// 1NNN
	// Jumps to address NNN
	case 0x1:
		c.pc = nnn

	// 2NNN
	// Calls subroutine at NNN. The already-advanced PC is pushed
	// so 00EE lands on the following instruction.
	case 0x2:
		if err := c.stack.push(c.pc); err != nil {
			return false, err
		}
		c.pc = nnn

	// 3XNN
	// Skips the next instruction if VX equals NN
	case 0x3:
		if c.regsV[x] == nn {
			c.pc += 2
		}

	// 4XNN
	// Skips the next instruction if VX does not equal NN
	case 0x4:
		if c.regsV[x] != nn {
			c.pc += 2
		}

	// 5XY0
	// Skips the next instruction if VX equals VY
	case 0x5:
		if n != 0x0 {
			return false, ErrUnknownOpcode
		}
		if c.regsV[x] == c.regsV[y] {
			c.pc += 2
		}

	// 6XNN
	// Sets VX to NN
	case 0x6:
		c.regsV[x] = nn

	// 7XNN
	// Adds NN to VX, wrapping. The carry flag is not changed.
	case 0x7:
		c.regsV[x] += nn

	case 0x8:
		return false, c.executeALU(x, y, n)

	// 9XY0
	// Skips the next instruction if VX does not equal VY
	case 0x9:
		if n != 0x0 {
			return false, ErrUnknownOpcode
		}
		if c.regsV[x] != c.regsV[y] {
			c.pc += 2
		}

	// ANNN
	// Sets I to the address NNN
	case 0xa:
		c.regI = nnn

	// BNNN
	// Jumps to the address NNN plus V0, or plus VX with X taken
	// from the high nibble of NNN on interpreters with that quirk.
	case 0xb:
		if c.quirks.JumpReadsVX {
			c.pc = nnn + uint16(c.regsV[(nnn>>8)&0x0f])
		} else {
			c.pc = nnn + uint16(c.regsV[0])
		}

	// CXNN
	// Sets VX to a random byte masked with NN
	case 0xc:
		c.regsV[x] = c.randByte() & nn

	// DXYN
	// Draws the N-row sprite at I to coordinate (VX, VY)
	case 0xd:
		if err := c.drawSprite(x, y, n); err != nil {
			return false, err
		}
		return true, nil

	case 0xe:
		switch nn {

		// EX9E
		// Skips the next instruction if the key stored in VX is pressed
		case 0x9e:
			if c.KeyIsPressed(c.regsV[x] & 0x0f) {
				c.pc += 2
			}

		// EXA1
		// Skips the next instruction if the key stored in VX is not pressed
		case 0xa1:
			if !c.KeyIsPressed(c.regsV[x] & 0x0f) {
				c.pc += 2
			}

		default:
			return false, ErrUnknownOpcode
		}

	case 0xf:
		return false, c.executeMisc(x, nn)

	}

	return false, nil
}

// executeALU runs the 8XYN register-to-register family. Flags are
// computed from the original operands and written to VF after the
// result lands, so an instruction targeting VF leaves the flag, which
// is what ROMs expect.
func (c *Chip8) executeALU(x, y, n uint8) error {
	switch n {

	// 8XY0
	// Sets VX to the value of VY
	case 0x0:
		c.regsV[x] = c.regsV[y]

	// 8XY1
	// Sets VX to VX or VY
	case 0x1:
		c.regsV[x] |= c.regsV[y]

	// 8XY2
	// Sets VX to VX and VY
	case 0x2:
		c.regsV[x] &= c.regsV[y]

	// 8XY3
	// Sets VX to VX xor VY
	case 0x3:
		c.regsV[x] ^= c.regsV[y]

	// 8XY4
	// Adds VY to VX. VF is set to 1 when the sum overflows a byte,
	// and to 0 when it does not
	case 0x4:
		sum := uint16(c.regsV[x]) + uint16(c.regsV[y])
		c.regsV[x] = uint8(sum)
		c.regsV[0xf] = 0
		if sum > 0xff {
			c.regsV[0xf] = 1
		}

	// 8XY5
	// VY is subtracted from VX. VF is set to 0 when there is a
	// borrow, and 1 when there is not
	case 0x5:
		noBorrow := c.regsV[x] >= c.regsV[y]
		c.regsV[x] -= c.regsV[y]
		c.regsV[0xf] = 0
		if noBorrow {
			c.regsV[0xf] = 1
		}

	// 8XY6
	// Shifts VX right by one and puts the shifted-out bit in VF.
	// The VIP first copies VY into VX
	case 0x6:
		if c.quirks.ShiftReadsVY {
			c.regsV[x] = c.regsV[y]
		}
		lsb := c.regsV[x] & 0x01
		c.regsV[x] >>= 1
		c.regsV[0xf] = lsb

	// 8XY7
	// Sets VX to VY minus VX. VF is set to 0 when there is a
	// borrow, and 1 when there is not
	case 0x7:
		noBorrow := c.regsV[y] >= c.regsV[x]
		c.regsV[x] = c.regsV[y] - c.regsV[x]
		c.regsV[0xf] = 0
		if noBorrow {
			c.regsV[0xf] = 1
		}

	// 8XYE
	// Shifts VX left by one and puts the shifted-out bit in VF.
	// The VIP first copies VY into VX
	case 0xe:
		if c.quirks.ShiftReadsVY {
			c.regsV[x] = c.regsV[y]
		}
		msb := c.regsV[x] >> 7
		c.regsV[x] <<= 1
		c.regsV[0xf] = msb

	default:
		return ErrUnknownOpcode
	}

	return nil
}

// executeMisc runs the FXNN family.
func (c *Chip8) executeMisc(x, nn uint8) error {
	switch nn {

	// FX07
	// Sets VX to the value of the delay timer
	case 0x07:
		c.regsV[x] = c.delayTimer

	// FX0A
	// Waits for a key press and stores it in VX. The wait is a
	// busy loop: while nothing is held, PC moves back onto this
	// instruction so the next Step fetches it again.
	case 0x0a:
		for key := uint8(0); key < KeyPadSize; key++ {
			if c.keyPad[key] {
				c.regsV[x] = key
				return nil
			}
		}
		c.pc -= 2

	// FX15
	// Sets the delay timer to VX
	case 0x15:
		c.delayTimer = c.regsV[x]

	// FX18
	// Sets the sound timer to VX
	case 0x18:
		c.soundTimer = c.regsV[x]

	// FX1E
	// Adds VX to I. The Amiga interpreter also set VF on overflow
	// past the addressable range; nothing clears it on the way
	case 0x1e:
		c.regI += uint16(c.regsV[x])
		if c.quirks.IndexOverflowVF && c.regI > 0x0fff {
			c.regsV[0xf] = 1
		}

	// FX29
	// Sets I to the location of the font sprite for the low digit of VX
	case 0x29:
		c.regI = FontOffset + uint16(c.regsV[x]&0x0f)*FontGlyphSize

	// FX33
	// Stores the binary-coded decimal representation of VX,
	// with the hundreds digit in memory at location in I,
	// the tens digit at location I+1,
	// and the ones digit at location I+2
	case 0x33:
		if int(c.regI)+2 >= RamSizeBytes {
			return ErrAddressOutOfRange
		}
		c.ram[c.regI] = c.regsV[x] / 100
		c.ram[c.regI+1] = (c.regsV[x] / 10) % 10
		c.ram[c.regI+2] = c.regsV[x] % 10

	// FX55
	// Stores from V0 to VX (including VX) in memory, starting at
	// address I. The VIP leaves I pointing past the block
	case 0x55:
		if int(c.regI)+int(x) >= RamSizeBytes {
			return ErrAddressOutOfRange
		}
		for i := uint16(0); i <= uint16(x); i++ {
			c.ram[c.regI+i] = c.regsV[i]
		}
		if c.quirks.BulkAdvancesI {
			c.regI += uint16(x) + 1
		}

	// FX65
	// Fills from V0 to VX (including VX) with values from memory,
	// starting at address I. The VIP leaves I pointing past the block
	case 0x65:
		if int(c.regI)+int(x) >= RamSizeBytes {
			return ErrAddressOutOfRange
		}
		for i := uint16(0); i <= uint16(x); i++ {
			c.regsV[i] = c.ram[c.regI+i]
		}
		if c.quirks.BulkAdvancesI {
			c.regI += uint16(x) + 1
		}

	default:
		return ErrUnknownOpcode
	}

	return nil
}

// drawSprite XORs the n-row sprite at I into the framebuffer at
// (VX mod 64, VY mod 32) and records a collision in VF. The start
// wraps, the body does not: rows and columns past the bottom or right
// edge are clipped.
func (c *Chip8) drawSprite(x, y, n uint8) error {
	if n > 0 && int(c.regI)+int(n)-1 >= RamSizeBytes {
		return ErrAddressOutOfRange
	}

	posX := int(c.regsV[x]) % ScreenWidth
	posY := int(c.regsV[y]) % ScreenHeight
	c.regsV[0xf] = 0x0

	for row := 0; row < int(n); row++ {
		if posY+row >= ScreenHeight {
			break
		}
		spriteData := c.ram[int(c.regI)+row]

		for bit := 0; bit < 8; bit++ {
			if posX+bit >= ScreenWidth {
				break
			}
			sprPixelOn := spriteData&(0x80>>bit) > 0
			posScreen := (posY+row)*ScreenWidth + posX + bit

			// screen pixel goes from on to off, set the collision flag
			if sprPixelOn && c.screen[posScreen] {
				c.regsV[0xf] = 0x1
			}
			c.screen[posScreen] = c.screen[posScreen] != sprPixelOn
		}
	}

	return nil
}
