package validator

import (
	"fmt"

	"github.com/timothy-fraser/v-spells-cfs-use-case/vm"
)

// asm is a tiny label-resolving program builder used only to construct the
// fixed reference validator program below: instructions are appended in one
// forward pass, CALL/JMPIF targets are recorded as pending patches against a
// named label, and a final pass resolves every label to its instruction
// index. This mirrors the teacher's label-to-line-number resolution in
// vm/parse.go (labels map regex-replaced with line numbers after a full
// pass), adapted from a text-assembly preprocessor into a small Go-side
// instruction builder, since this package constructs its program directly as
// data rather than parsing a textual assembly language.
type asm struct {
	instrs  []vm.Instruction
	strs    []string
	labels  map[string]int
	pending []patch
}

type patchKind int

const (
	patchCall patchKind = iota
	patchJmpif
)

type patch struct {
	at    int
	label string
	kind  patchKind
}

func newAsm() *asm {
	return &asm{labels: map[string]int{}}
}

func (a *asm) emit(i vm.Instruction) int {
	a.instrs = append(a.instrs, i)
	return len(a.instrs) - 1
}

// mark records the upcoming instruction's index under name.
func (a *asm) mark(name string) {
	a.labels[name] = len(a.instrs)
}

// str interns s into the string table, returning its index.
func (a *asm) str(s string) uint16 {
	a.strs = append(a.strs, s)
	return uint16(len(a.strs) - 1)
}

// callTo emits a CALL whose target is patched to label's resolved address.
func (a *asm) callTo(label string) {
	idx := a.emit(vm.Instruction{Op: vm.OpCall})
	a.pending = append(a.pending, patch{idx, label, patchCall})
}

// jmpifTo emits a JMPIF consuming whatever Boolean is already on top of the
// argument stack, patched to a forward offset landing on label.
func (a *asm) jmpifTo(label string) {
	idx := a.emit(vm.Instruction{Op: vm.OpJmpif})
	a.pending = append(a.pending, patch{idx, label, patchJmpif})
}

// jmpTo synthesizes an unconditional forward jump: the instruction set has
// no plain JMP, so push a literal true and jump on it.
func (a *asm) jmpTo(label string) {
	a.emit(vm.PushB(true))
	a.jmpifTo(label)
}

// pad emits a stack-neutral filler pair (duplicate the top value, then
// discard the duplicate). JMPIF's offset must be >= 2 (§4.5), so a JMPIF or
// synthesized jmpTo landing on the very next instruction — offset 1 — is
// rejected with NoLoops; call pad() before a label that a jump might
// otherwise reach with nothing in between, to guarantee at least one real
// instruction separates the two. Safe wherever it's used here since the
// argument stack always holds the accumulator bank at that point.
func (a *asm) pad() {
	a.dup(1)
	a.pop(1)
}

func (a *asm) add()            { a.emit(vm.Add()) }
func (a *asm) sub()            { a.emit(vm.Sub()) }
func (a *asm) and(n int)       { a.emit(vm.And(uint16(n))) }
func (a *asm) or(n int)        { a.emit(vm.Or(uint16(n))) }
func (a *asm) eq(n int)        { a.emit(vm.Eq(uint16(n))) }
func (a *asm) lt()             { a.emit(vm.Lt()) }
func (a *asm) gt()             { a.emit(vm.Gt()) }
func (a *asm) not()            { a.emit(vm.Not()) }
func (a *asm) dup(n int)       { a.emit(vm.Dup(uint16(n))) }
func (a *asm) pop(n int)       { a.emit(vm.Pop(uint16(n))) }
func (a *asm) roll(n int)      { a.emit(vm.Roll(uint16(n))) }
func (a *asm) pushB(b bool)    { a.emit(vm.PushB(b)) }
func (a *asm) pushN(n uint32)  { a.emit(vm.PushN(n)) }
func (a *asm) pushS(i uint16)  { a.emit(vm.PushS(i)) }
func (a *asm) input(n int)     { a.emit(vm.Input(uint16(n))) }
func (a *asm) output()         { a.emit(vm.Output()) }
func (a *asm) flush()          { a.emit(vm.Flush()) }
func (a *asm) ret()            { a.emit(vm.Return()) }
func (a *asm) halt()           { a.emit(vm.Halt()) }

// dupField fetches a fresh copy of the value currently sitting at depth
// (1-indexed from the top, inclusive) without disturbing the original: it
// rotates the window until the wanted value is on top, duplicates it, then
// rotates one of the two equal copies back down to the bottom of the
// enlarged window, restoring the window's order with a fresh copy on top.
// Only one free stack slot is needed, whatever the depth.
func (a *asm) dupField(depth int) {
	if depth == 1 {
		a.dup(1)
		return
	}
	for i := 0; i < depth-1; i++ {
		a.roll(depth)
	}
	a.dup(1)
	a.roll(depth + 1)
}

// setDeepBool overwrites the Boolean currently at depth (1-indexed from the
// top) with value, preserving every other slot's relative order. depth == 1
// is just an overwrite of the top; depth > 1 rotates the old value to the
// top, discards it, pushes the new value, then rotates the new value back
// down to the bottom of that same window.
func (a *asm) setDeepBool(depth int, value bool) {
	if depth == 1 {
		a.pop(1)
		a.pushB(value)
		return
	}
	for i := 0; i < depth-1; i++ {
		a.roll(depth)
	}
	a.pop(1)
	a.pushB(value)
	a.roll(depth)
}

// incrementDeepNumber adds 1 to the Number currently at depth (1-indexed
// from the top), using the same rotate-overwrite technique as setDeepBool.
func (a *asm) incrementDeepNumber(depth int) {
	if depth == 1 {
		a.pushN(1)
		a.add()
		return
	}
	for i := 0; i < depth-1; i++ {
		a.roll(depth)
	}
	a.pushN(1)
	a.add()
	a.roll(depth)
}

// finish resolves every pending label reference and returns the assembled
// program and string table.
func (a *asm) finish() (vm.Program, vm.StringTable) {
	for _, p := range a.pending {
		target, ok := a.labels[p.label]
		if !ok {
			panic(fmt.Sprintf("validator: unresolved label %q", p.label))
		}
		switch p.kind {
		case patchCall:
			a.instrs[p.at].Arg = uint16(target)
		case patchJmpif:
			if target-p.at < 2 {
				// A jmpTo/jmpifTo landing adjacent to its own target would
				// assemble to an offset < 2, which opJmpif always rejects
				// with NoLoops (§4.5) — a silent miscompile rather than a
				// runtime error caught by a test. Fail loudly here instead:
				// insert a pad() before the target label.
				panic(fmt.Sprintf("validator: jmpif at %d has offset %d (< 2) to label %q; insert asm.pad() before its mark", p.at, target-p.at, p.label))
			}
			a.instrs[p.at].Arg = uint16(target - p.at)
		}
	}
	prog := make(vm.Program, len(a.instrs))
	copy(prog, a.instrs)
	table := make(vm.StringTable, len(a.strs))
	copy(table, a.strs)
	return prog, table
}
