package vm

import (
	"errors"
)

// Status is the single word run returns: either an intended halt outcome or a
// runtime error, per the fixed code table. It is a distinct byte type, in the
// style of the teacher's Bytecode byte enum, rather than a plain int, so a
// Status can't be mistaken for an Opcode or a raw count at a call site.
type Status byte

const (
	// StatusOK is not part of the external contract (run never returns it);
	// it exists so internal helpers can report "no error" without overloading
	// a halt code.
	StatusOK Status = 0x00

	StatusHaltTrue  Status = 0x01
	StatusHaltFalse Status = 0x02

	StatusInterpreterBug Status = 0x11
	StatusInvalidArgument Status = 0x12
	StatusInvalidLiteral  Status = 0x13
	StatusInvalidOpcode   Status = 0x14
	StatusNoLoops         Status = 0x15
	StatusNoProgram       Status = 0x16
	StatusOutOfBounds     Status = 0x17
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusHaltTrue:
		return "HaltTrue"
	case StatusHaltFalse:
		return "HaltFalse"
	case StatusInterpreterBug:
		return "InterpreterBug"
	case StatusInvalidArgument:
		return "InvalidArgument"
	case StatusInvalidLiteral:
		return "InvalidLiteral"
	case StatusInvalidOpcode:
		return "InvalidOpcode"
	case StatusNoLoops:
		return "NoLoops"
	case StatusNoProgram:
		return "NoProgram"
	case StatusOutOfBounds:
		return "OutOfBounds"
	default:
		return "?unknown?"
	}
}

// IsHalt reports whether s is one of the two program-intended outcomes.
func (s Status) IsHalt() bool {
	return s == StatusHaltTrue || s == StatusHaltFalse
}

// IsError reports whether s is a runtime error (anything but OK or a halt).
func (s Status) IsError() bool {
	return s != StatusOK && !s.IsHalt()
}

// Sentinel errors paired with each runtime-error status, following the
// teacher's package-level errors.New idiom (errProgramFinished,
// errSegmentationFault, ...) instead of ad-hoc fmt.Errorf strings at each call
// site.
var (
	ErrInterpreterBug  = errors.New("interpreter bug: invariant violated")
	ErrInvalidArgument = errors.New("invalid argument: value of wrong kind")
	ErrInvalidLiteral  = errors.New("invalid literal immediate")
	ErrInvalidOpcode   = errors.New("unknown opcode")
	ErrNoLoops         = errors.New("control-flow target is not strictly forward")
	ErrNoProgram       = errors.New("program counter out of range")
	ErrOutOfBounds     = errors.New("operation out of bounds")
)

func errForStatus(s Status) error {
	switch s {
	case StatusInterpreterBug:
		return ErrInterpreterBug
	case StatusInvalidArgument:
		return ErrInvalidArgument
	case StatusInvalidLiteral:
		return ErrInvalidLiteral
	case StatusInvalidOpcode:
		return ErrInvalidOpcode
	case StatusNoLoops:
		return ErrNoLoops
	case StatusNoProgram:
		return ErrNoProgram
	case StatusOutOfBounds:
		return ErrOutOfBounds
	default:
		return nil
	}
}

// Err returns the sentinel error paired with a runtime-error Status, or nil
// for StatusOK and the two halt statuses. Hosts that want a standard `error`
// to log or wrap (instead of switching on the raw Status byte) call this
// rather than re-deriving the mapping themselves.
func (s Status) Err() error {
	return errForStatus(s)
}
