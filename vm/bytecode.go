package vm

// Opcode is the fixed 23-instruction instruction set (external interfaces,
// opcode map). Like the teacher's Bytecode byte enum, it is a distinct byte
// type with a String() method backed by a package-level name map, plus small
// classifier methods (ImmediateKind, IsValid) for program builders and
// debug printing; the dispatcher itself looks opcodes up in its handler map.
type Opcode byte

const (
	OpAdd    Opcode = 0x01
	OpAnd    Opcode = 0x02
	OpCall   Opcode = 0x03
	OpDup    Opcode = 0x04
	OpEq     Opcode = 0x05
	OpFlush  Opcode = 0x06
	OpGt     Opcode = 0x07
	OpHalt   Opcode = 0x08
	OpJmpif  Opcode = 0x09
	OpLt     Opcode = 0x0A
	OpNot    Opcode = 0x0B
	OpOr     Opcode = 0x0C
	OpOutput Opcode = 0x0D
	OpPop    Opcode = 0x0E
	OpPushB  Opcode = 0x0F
	OpPushN  Opcode = 0x10
	OpPushS  Opcode = 0x11
	OpInput  Opcode = 0x12
	OpReturn Opcode = 0x13
	OpRewind Opcode = 0x14
	OpRoll   Opcode = 0x15
	OpSub    Opcode = 0x16
)

// ImmediateKind classifies what, if anything, an Opcode's immediate means.
// The dispatcher never inspects these directly (each opcode handler already
// knows its own shape); ImmediateKind exists for program builders and
// debug-printing, in the spirit of the teacher's NumRequiredOpArgs.
type ImmediateKind byte

const (
	ImmNone ImmediateKind = iota
	ImmRepetition
	ImmLiteral
	ImmTarget
)

var opcodeNames = map[Opcode]string{
	OpAdd:    "ADD",
	OpAnd:    "AND",
	OpCall:   "CALL",
	OpDup:    "DUP",
	OpEq:     "EQ",
	OpFlush:  "FLUSH",
	OpGt:     "GT",
	OpHalt:   "HALT",
	OpJmpif:  "JMPIF",
	OpLt:     "LT",
	OpNot:    "NOT",
	OpOr:     "OR",
	OpOutput: "OUTPUT",
	OpPop:    "POP",
	OpPushB:  "PUSHB",
	OpPushN:  "PUSHN",
	OpPushS:  "PUSHS",
	OpInput:  "INPUT",
	OpReturn: "RETURN",
	OpRewind: "REWIND",
	OpRoll:   "ROLL",
	OpSub:    "SUB",
}

var opcodeImmediateKinds = map[Opcode]ImmediateKind{
	OpAdd:    ImmNone,
	OpAnd:    ImmRepetition,
	OpCall:   ImmTarget,
	OpDup:    ImmRepetition,
	OpEq:     ImmRepetition,
	OpFlush:  ImmNone,
	OpGt:     ImmNone,
	OpHalt:   ImmNone,
	OpJmpif:  ImmTarget,
	OpLt:     ImmNone,
	OpNot:    ImmNone,
	OpOr:     ImmRepetition,
	OpOutput: ImmNone,
	OpPop:    ImmRepetition,
	OpPushB:  ImmLiteral,
	OpPushN:  ImmLiteral,
	OpPushS:  ImmLiteral,
	OpInput:  ImmRepetition,
	OpReturn: ImmNone,
	OpRewind: ImmRepetition,
	OpRoll:   ImmRepetition,
	OpSub:    ImmNone,
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "?unknown?"
}

func (op Opcode) ImmediateKind() ImmediateKind {
	if kind, ok := opcodeImmediateKinds[op]; ok {
		return kind
	}
	return ImmNone
}

// IsValid reports whether op is one of the 23 named opcodes; anything else is
// InvalidOpcode at dispatch time.
func (op Opcode) IsValid() bool {
	_, ok := opcodeNames[op]
	return ok
}
