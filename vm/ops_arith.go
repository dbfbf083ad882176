package vm

// Arithmetic and logic opcode handlers. Kept as small top-level functions
// operating on *state, in the style of the teacher's arithAddi/logicalAnd
// helpers (vm/vm.go) that the dispatcher's switch delegates to rather than
// inlining the bit-twiddling in the switch body.

func opAdd(s *state, _ Instruction, _ uint16) Status {
	y, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	x, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	sum := x + y
	if sum < x {
		return StatusOutOfBounds
	}
	return pushNumber(s.stack, sum)
}

func opSub(s *state, _ Instruction, _ uint16) Status {
	y, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	x, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	if y > x {
		return StatusOutOfBounds
	}
	return pushNumber(s.stack, x-y)
}

func opAnd(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 2 {
		return StatusInvalidLiteral
	}
	result := true
	for i := 0; i < n; i++ {
		v, st := s.stack.argPop()
		if st != StatusOK {
			return st
		}
		b, st := v.AsBool()
		if st != StatusOK {
			return st
		}
		result = result && b
	}
	return s.stack.argPush(Bool(result))
}

func opOr(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 2 {
		return StatusInvalidLiteral
	}
	result := false
	for i := 0; i < n; i++ {
		v, st := s.stack.argPop()
		if st != StatusOK {
			return st
		}
		b, st := v.AsBool()
		if st != StatusOK {
			return st
		}
		result = result || b
	}
	return s.stack.argPush(Bool(result))
}

func opEq(s *state, instr Instruction, _ uint16) Status {
	n := int(instr.Arg)
	if n < 2 {
		return StatusInvalidLiteral
	}
	first, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	allEqual := true
	for i := 1; i < n; i++ {
		v, st := popNumber(s.stack)
		if st != StatusOK {
			return st
		}
		if v != first {
			allEqual = false
		}
	}
	return s.stack.argPush(Bool(allEqual))
}

func opLt(s *state, _ Instruction, _ uint16) Status {
	y, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	x, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	return s.stack.argPush(Bool(x < y))
}

func opGt(s *state, _ Instruction, _ uint16) Status {
	y, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	x, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	return s.stack.argPush(Bool(x > y))
}

func opNot(s *state, _ Instruction, _ uint16) Status {
	v, st := s.stack.argPop()
	if st != StatusOK {
		return st
	}
	b, st := v.AsBool()
	if st != StatusOK {
		return st
	}
	return s.stack.argPush(Bool(!b))
}

func popNumber(st *dualStack) (uint32, Status) {
	v, status := st.argPop()
	if status != StatusOK {
		return 0, status
	}
	return v.AsNumber()
}

func pushNumber(st *dualStack, n uint32) Status {
	return st.argPush(Number(n))
}
