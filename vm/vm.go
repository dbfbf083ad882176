// Package vm implements the sub-Turing stack virtual machine: a typed value
// model, a dual argument/control stack, bounded input/output queues, and an
// instruction decoder/dispatcher over a fixed 23-opcode instruction set.
package vm

type handlerFunc func(s *state, instr Instruction, curPC uint16) Status

var handlers = map[Opcode]handlerFunc{
	OpAdd:    opAdd,
	OpSub:    opSub,
	OpAnd:    opAnd,
	OpOr:     opOr,
	OpEq:     opEq,
	OpLt:     opLt,
	OpGt:     opGt,
	OpNot:    opNot,
	OpDup:    opDup,
	OpPop:    opPop,
	OpRoll:   opRoll,
	OpPushB:  opPushB,
	OpPushN:  opPushN,
	OpPushS:  opPushS,
	OpCall:   opCall,
	OpJmpif:  opJmpif,
	OpReturn: opReturn,
	OpHalt:   opHalt,
	OpInput:  opInput,
	OpRewind: opRewind,
	OpOutput: opOutput,
	OpFlush:  opFlush,
}

// RunOptions are the optional host-supplied knobs accompanying a run:
// Logger for the out-of-band debug stream and Hooks for begin/end
// instrumentation. Both are optional and safe to leave zero-valued.
type RunOptions struct {
	Logger *Logger
	Hooks  Hooks
}

// Run executes program to completion against input, returning HaltTrue,
// HaltFalse, or a runtime-error Status (external interfaces, status codes).
// It is the sole public entry point described by the component design: a
// single call runs to completion before returning, single-threaded and
// synchronous (concurrency & resource model). Because a run's state lives
// entirely in a freshly allocated *state and no package-level state is
// mutated, concurrent calls to Run from multiple goroutines are safe as
// long as each supplies its own program/input pair.
func Run(program Program, input []byte, table StringTable, cfg Config, emit EmitFunc, opts RunOptions) Status {
	s := newState(program, input, table, cfg, emit, opts.Logger, opts.Hooks)

	if s.hooks.Begin != nil {
		s.hooks.Begin()
	}
	defer func() {
		if s.hooks.End != nil {
			s.hooks.End()
		}
	}()

	status := dispatchLoop(s)
	if status.IsError() {
		logAbort(s.logger, s.pc, status)
	}
	return status
}

func dispatchLoop(s *state) (status Status) {
	defer recoverToStatus(&status)

	for {
		if int(s.pc) >= len(s.program) {
			return StatusNoProgram
		}

		curPC := s.pc
		instr := s.program[s.pc]
		s.pc++

		handler, ok := handlers[instr.Op]
		if !ok {
			return StatusInvalidOpcode
		}

		status = handler(s, instr, curPC)
		if status.IsHalt() || status.IsError() {
			return status
		}
	}
}
