package vm

// Stack opcode handlers: DUP, POP, ROLL, and the three typed push literals.
// The exact lower bounds below (DUP/POP accept n=1, AND/OR/EQ/ROLL do not)
// are a pinned open question (design notes) — each floor is checked inline
// rather than through one shared "min arity" helper, so a future edit can't
// accidentally generalize them together.

func opDup(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 1 {
		return StatusInvalidLiteral
	}
	return s.stack.argDup(n)
}

func opPop(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 1 {
		return StatusInvalidLiteral
	}
	for i := 0; i < n; i++ {
		if _, st := s.stack.argPop(); st != StatusOK {
			return st
		}
	}
	return StatusOK
}

func opRoll(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 2 {
		return StatusInvalidLiteral
	}
	return s.stack.argRoll(n)
}

func opPushB(s *state, instr Instruction, _ uint16) Status {
	if instr.Lit.Kind() != KindBool {
		return StatusInvalidLiteral
	}
	return s.stack.argPush(instr.Lit)
}

func opPushN(s *state, instr Instruction, _ uint16) Status {
	if instr.Lit.Kind() != KindNumber {
		return StatusInvalidLiteral
	}
	return s.stack.argPush(instr.Lit)
}

func opPushS(s *state, instr Instruction, _ uint16) Status {
	if instr.Lit.Kind() != KindStringRef {
		return StatusInvalidLiteral
	}
	idx, _ := instr.Lit.AsStringRef()
	if _, st := s.table.Get(idx); st != StatusOK {
		return st
	}
	return s.stack.argPush(instr.Lit)
}
