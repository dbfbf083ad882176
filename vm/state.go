package vm

// state is the single per-run state record replacing the source's global
// state (registers, pc, the two stacks, the two queues, the string table
// pointer — design notes): created fresh at the start of a run, owned
// exclusively by that run, and discarded at HALT or on error. It plays the
// role the teacher's VM struct plays, generalized from a byte/register
// machine to this spec's typed-value stack machine.
type state struct {
	program Program
	table   StringTable

	stack  *dualStack
	input  *inputQueue
	output *outputQueue

	pc uint16

	cfg    Config
	emit   EmitFunc
	logger *Logger
	hooks  Hooks
}

// EmitFunc is the host capability FLUSH calls into: a single callback
// carrying the event-type code, the numeric event-id, and the accumulated
// message bytes. The VM must not own the transport (design notes);
// EmitFunc is exactly that trait, expressed as a function value rather than
// an interface since it has exactly one method.
type EmitFunc func(eventType, eventID uint32, message []byte)

// Hooks are optional begin/end instrumentation callbacks a host may supply
// around a run, realizing the source's entry/exit performance markers
// without the VM embedding any transport-specific logic.
type Hooks struct {
	Begin func()
	End   func()
}

func newState(program Program, input []byte, table StringTable, cfg Config, emit EmitFunc, logger *Logger, hooks Hooks) *state {
	if logger == nil {
		logger = NewSilentLogger()
	}
	return &state{
		program: program,
		table:   table,
		stack:   newDualStack(cfg.StackCapacity),
		input:   newInputQueue(input),
		output:  newOutputQueue(cfg.MaxMessageLength),
		cfg:     cfg,
		emit:    emit,
		logger:  logger,
		hooks:   hooks,
	}
}
