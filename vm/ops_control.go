package vm

// Control opcode handlers. By the time these run, the dispatcher has already
// pre-incremented s.pc (rationale, §4.1); curPC is the address of the
// instruction currently executing, used only for the forward-only checks.
//
// CALL's target is an absolute instruction index; JMPIF's target is a
// forward offset added to the pre-incremented pc. This asymmetry is
// intentional (design notes open question) and is not reconciled here.

func opCall(s *state, instr Instruction, curPC uint16) Status {
	target := instr.Arg
	if target <= curPC {
		return StatusNoLoops
	}
	if st := s.stack.ctlPush(ReturnAddressValue(s.pc)); st != StatusOK {
		return st
	}
	s.pc = target
	return StatusOK
}

func opJmpif(s *state, instr Instruction, _ uint16) Status {
	v, st := s.stack.argPop()
	if st != StatusOK {
		return st
	}
	taken, st := v.AsBool()
	if st != StatusOK {
		return st
	}
	if !taken {
		return StatusOK
	}

	offset := instr.Arg
	if offset < 2 {
		return StatusNoLoops
	}
	newPC := uint32(s.pc) + uint32(offset-1)
	if newPC > uint32(len(s.program)) {
		return StatusNoProgram
	}
	s.pc = uint16(newPC)
	return StatusOK
}

func opReturn(s *state, _ Instruction, _ uint16) Status {
	v, st := s.stack.ctlPop()
	if st != StatusOK {
		return st
	}
	pc, st := v.AsReturnAddress()
	if st != StatusOK {
		return st
	}
	s.pc = pc
	return StatusOK
}

func opHalt(s *state, _ Instruction, _ uint16) Status {
	v, st := s.stack.argPop()
	if st != StatusOK {
		return st
	}
	ok, st := v.AsBool()
	if st != StatusOK {
		return st
	}
	if ok {
		return StatusHaltTrue
	}
	return StatusHaltFalse
}
