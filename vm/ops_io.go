package vm

// I/O opcode handlers: INPUT/REWIND delegate straight to the input queue;
// OUTPUT appends one popped value per the three literal encodings; FLUSH
// delivers the accumulated output bytes to the host's EmitFunc and resets
// the queue.

func opInput(s *state, instr Instruction, _ uint16) Status {
	n, st := s.input.read(int(instr.Arg))
	if st != StatusOK {
		return st
	}
	return s.stack.argPush(Number(n))
}

func opRewind(s *state, instr Instruction, _ uint16) Status {
	return s.input.rewind(int(instr.Arg))
}

func opOutput(s *state, _ Instruction, _ uint16) Status {
	v, st := s.stack.argPop()
	if st != StatusOK {
		return st
	}
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		return s.output.appendBool(b)
	case KindNumber:
		n, _ := v.AsNumber()
		return s.output.appendNumber(n)
	case KindStringRef:
		idx, _ := v.AsStringRef()
		str, st := s.table.Get(idx)
		if st != StatusOK {
			return st
		}
		return s.output.appendString(str)
	default:
		return StatusInvalidArgument
	}
}

func opFlush(s *state, _ Instruction, _ uint16) Status {
	eventID, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	eventType, st := popNumber(s.stack)
	if st != StatusOK {
		return st
	}
	message := s.output.drain()
	if s.emit != nil {
		s.emit(eventType, eventID, message)
	}
	return StatusOK
}
