package vm

import "fmt"

// Instruction is an opcode plus one optional immediate. Arg's interpretation
// depends on Op.ImmediateKind(): a repetition count, a literal Value's kind
// and payload packed into Lit, or a jump/call target index. Programs are
// caller-supplied decoded data (not a parsed textual assembly language, per
// the data model), so construction goes through the builder functions below
// rather than through a compiler front-end.
type Instruction struct {
	Op  Opcode
	Arg uint16 // repetition count, CALL target, or JMPIF forward offset
	Lit Value  // populated only when Op.ImmediateKind() == ImmLiteral
}

func (i Instruction) String() string {
	switch i.Op.ImmediateKind() {
	case ImmRepetition, ImmTarget:
		return fmt.Sprintf("%s %d", i.Op, i.Arg)
	case ImmLiteral:
		return fmt.Sprintf("%s %v", i.Op, i.Lit)
	default:
		return i.Op.String()
	}
}

// Program is a finite, read-only ordered sequence of instructions. Execution
// begins at index 0; the length must fit in a u16 per the data model.
type Program []Instruction

func none(op Opcode) Instruction {
	return Instruction{Op: op}
}

func repeat(op Opcode, n uint16) Instruction {
	return Instruction{Op: op, Arg: n}
}

// CallTarget builds a CALL instruction whose immediate is an absolute
// instruction index, as opposed to JumpOffset's forward-offset immediate —
// kept as two distinct builders so the CALL/JMPIF addressing asymmetry
// (design notes, open question) is visible at every call site instead of
// relying on caller convention.
func CallTarget(idx uint16) Instruction {
	return Instruction{Op: OpCall, Arg: idx}
}

// JumpOffset builds a JMPIF instruction whose immediate is a forward offset
// added to the already pre-incremented program counter.
func JumpOffset(off uint16) Instruction {
	return Instruction{Op: OpJmpif, Arg: off}
}

func Add() Instruction    { return none(OpAdd) }
func Sub() Instruction    { return none(OpSub) }
func And(n uint16) Instruction { return repeat(OpAnd, n) }
func Or(n uint16) Instruction  { return repeat(OpOr, n) }
func Eq(n uint16) Instruction  { return repeat(OpEq, n) }
func Lt() Instruction     { return none(OpLt) }
func Gt() Instruction     { return none(OpGt) }
func Not() Instruction    { return none(OpNot) }

func Dup(n uint16) Instruction  { return repeat(OpDup, n) }
func Pop(n uint16) Instruction  { return repeat(OpPop, n) }
func Roll(n uint16) Instruction { return repeat(OpRoll, n) }

func PushB(b bool) Instruction {
	return Instruction{Op: OpPushB, Lit: Bool(b)}
}

func PushN(n uint32) Instruction {
	return Instruction{Op: OpPushN, Lit: Number(n)}
}

func PushS(i uint16) Instruction {
	return Instruction{Op: OpPushS, Lit: StringRefValue(i)}
}

func Return() Instruction { return none(OpReturn) }
func Halt() Instruction   { return none(OpHalt) }

func Input(n uint16) Instruction  { return repeat(OpInput, n) }
func Rewind(n uint16) Instruction { return repeat(OpRewind, n) }
func Output() Instruction         { return none(OpOutput) }
func Flush() Instruction          { return none(OpFlush) }
