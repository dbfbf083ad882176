package validator

import (
	"fmt"

	"github.com/timothy-fraser/v-spells-cfs-use-case/vm"
)

// gen wraps an asm builder with a label-uniquing counter: the same check
// template is instantiated many times (once per entry x flag x check kind),
// so every instantiation needs its own label names.
type gen struct {
	*asm
	seq int
}

func (g *gen) uniq(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s_%d", prefix, g.seq)
}

// Stack layout, bottom to top, for the whole program's lifetime:
//
//	V, I, U, sawValidUnusedBefore,
//	seenApe, seenBat, seenCat, seenDog, seenNorth, seenSouth, seenEast, seenWest
//
// processEntry is called once per table entry with the entry's 1-based
// number pushed on top of those twelve accumulators; it reads the entry's 12
// bytes from the input queue, classifies it, updates the accumulators in
// place, and returns leaving exactly the twelve accumulators behind.
//
// Depths below are all 1-indexed from the top of the argument stack and are
// only valid at the named point in the control flow they annotate.
const (
	// Top level, between the four processEntry calls and HALT: no locals.
	topAccumU = 10
	topAccumI = 11
	topAccumV = 12

	// Inside processEntry, with the 5 base locals present
	// (entryNum, parmID, padAnyNonzero, boundLow, boundHigh) and no
	// invalidSoFar local (UNUSED and PARM_ERR branches, and the tail of the
	// flag branch after invalidSoFar has been consumed by its JMPIF).
	accumU5                = 15
	accumI5                = 16
	accumV5                = 17
	accumSawValidUnused5 = 14

	// Inside a flag branch, with the 6th local (invalidSoFar) also present.
	accumSawValidUnused6 = 15
	accumSeenApe6        = 14 // seenBat=13 ... seenWest=7, see seenDepth6 below
)

// seenDepth6 returns the depth of flag slot's seen-accumulator with 6 locals
// present (inside a flag branch, before invalidSoFar is popped).
func seenDepth6(slot int) int { return accumSeenApe6 - slot }

type flagMsgs struct {
	pad, lbnd, hbnd, order, extra, redef [4]uint16
}

// buildProgram constructs the reference validator's hosted bytecode program
// and accompanying string table for the given configuration.
func buildProgram(cfg vm.Config) (vm.Program, vm.StringTable) {
	g := &gen{asm: newAsm()}
	flags := flagDefs(cfg)

	// Precompute every message string. Per-entry, per-check text is fully
	// static once the entry number and flag name are known, since both are
	// fixed at code-generation time (the program is unrolled per flag, and
	// branched per entry number at run time via a small EQ/JMPIF chain).
	parmErrMsg := messagesByEntry(g, "Table entry %d invalid Parm ID")
	zeroErrMsg := messagesByEntry(g, "Table entry %d parm Unused not zeroed")

	fm := make([]flagMsgs, len(flags))
	for i, f := range flags {
		fm[i] = flagMsgs{
			pad:   messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s padding not zeroed", f.name)),
			lbnd:  messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s invalid low bound", f.name)),
			hbnd:  messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s invalid high bound", f.name)),
			order: messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s invalid bound order", f.name)),
			extra: messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s follows an unused entry", f.name)),
			redef: messagesByEntry(g, fmt.Sprintf("Table entry %%d parm %s redefines earlier entry", f.name)),
		}
	}
	msgEntries := g.str("Table image entries: ")
	msgValid := g.str(" valid, ")
	msgInvalid := g.str(" invalid, ")
	msgUnused := g.str(" unused")

	// --- top-level program ---------------------------------------------
	g.pushN(0)     // V
	g.pushN(0)     // I
	g.pushN(0)     // U
	g.pushB(false) // sawValidUnusedBefore
	for range flags {
		g.pushB(false) // seenX, one per flag, in flags' declared order
	}

	for n := 1; n <= 4; n++ {
		g.pushN(uint32(n))
		g.callTo("processEntry")
	}

	// Summary: fetch U, I, V (in that order, so V ends up on top and is
	// consumed first) and emit VALIDATION_INF.
	g.dupField(topAccumU)
	g.dupField(topAccumI + 1)
	g.dupField(topAccumV + 2)
	g.pushS(msgEntries)
	g.output()
	g.output() // V
	g.pushS(msgValid)
	g.output()
	g.output() // I
	g.pushS(msgInvalid)
	g.output()
	g.output() // U
	g.pushS(msgUnused)
	g.output()
	g.pushN(EventInfo)
	g.pushN(EventValidationInfo)
	g.flush()

	g.dupField(topAccumI)
	g.pushN(0)
	g.eq(2)
	g.jmpifTo("success")
	g.pushB(false)
	g.halt()
	g.mark("success")
	g.pushB(true)
	g.halt()

	// --- processEntry subroutine -----------------------------------------
	g.mark("processEntry")
	g.input(1) // parmID
	g.input(1) // pad0
	g.pushN(0)
	g.gt()
	g.input(1) // pad1
	g.pushN(0)
	g.gt()
	g.input(1) // pad2
	g.pushN(0)
	g.gt()
	g.or(3)    // padAnyNonzero
	g.input(4) // boundLow
	g.input(4) // boundHigh

	// Dispatch: parmID is at depth 4 throughout (pre-dispatch baseline is
	// boundHigh(1), boundLow(2), padAnyNonzero(3), parmID(4), entryNum(5)).
	g.dupField(4)
	g.pushN(uint32(parmUnused))
	g.eq(2)
	g.jmpifTo("unused")
	for _, f := range flags {
		g.dupField(4)
		g.pushN(uint32(f.id))
		g.eq(2)
		g.jmpifTo("flag_" + f.name)
	}

	// Fallthrough: parm_id matched none of the known identifiers.
	emitMessage(g, 5, parmErrMsg, EventError, EventParmErr)
	g.incrementDeepNumber(accumI5)
	g.jmpTo("done")

	g.mark("unused")
	emitUnusedBranch(g, zeroErrMsg)
	g.jmpTo("done")

	for i, f := range flags {
		g.mark("flag_" + f.name)
		emitFlagBranch(g, f, fm[i])
		g.jmpTo("done")
	}

	// The last flag branch's jmpTo above would otherwise land directly on
	// this mark (a zero-instruction gap, which asm.finish rejects — see
	// asm.pad).
	g.pad()
	g.mark("done")
	g.pop(5)
	g.ret()

	return g.finish()
}

// messagesByEntry interns one string per entry number 1..4 from a template
// containing exactly one %d.
func messagesByEntry(g *gen, template string) [4]uint16 {
	var out [4]uint16
	for n := 1; n <= 4; n++ {
		out[n-1] = g.str(fmt.Sprintf(template, n))
	}
	return out
}

// emitMessage dispatches on the entry number (sitting at entryNumDepth,
// 1-indexed from the top) to select one of msg's four precomputed strings,
// then emits it as eventType/eventID. Stack-neutral overall.
func emitMessage(g *gen, entryNumDepth int, msg [4]uint16, eventType, eventID uint32) {
	matchLabels := make([]string, 4)
	for i := 0; i < 4; i++ {
		matchLabels[i] = g.uniq("msgmatch")
		g.dupField(entryNumDepth)
		g.pushN(uint32(i + 1))
		g.eq(2)
		g.jmpifTo(matchLabels[i])
	}
	after := g.uniq("msgdone")
	for i := 0; i < 4; i++ {
		g.mark(matchLabels[i])
		g.pushS(msg[i])
		g.output()
		g.pushN(eventType)
		g.pushN(eventID)
		g.flush()
		g.jmpTo(after)
	}
	// The last match arm's jmpTo above would otherwise land directly on
	// this mark (see asm.pad).
	g.pad()
	g.mark(after)
}

// emitUnusedBranch handles parm_id == UNUSED: valid iff pad and both bounds
// are all zero, in which case the entry counts toward U and primes the
// EXTRA_ERR check for later entries; otherwise it is ZERO_ERR and counts
// toward I. Entered and left at the 5-local baseline (entryNum, parmID,
// padAnyNonzero, boundLow, boundHigh).
func emitUnusedBranch(g *gen, zeroErrMsg [4]uint16) {
	g.dupField(3) // padAnyNonzero
	g.not()
	g.dupField(3) // boundLow, now at depth 3 once notPad sits on top
	g.pushN(0)
	g.eq(2)
	g.dupField(3) // boundHigh, now at depth 3 once lowIsZero+notPad sit on top
	g.pushN(0)
	g.eq(2)
	g.and(3)
	g.not()
	invalid := g.uniq("unused_invalid")
	g.jmpifTo(invalid)

	// valid-unused path
	g.setDeepBool(accumSawValidUnused5, true)
	g.incrementDeepNumber(accumU5)
	done := g.uniq("unused_done")
	g.jmpTo(done)

	g.mark(invalid)
	emitMessage(g, 5, zeroErrMsg, EventError, EventZeroErr)
	g.incrementDeepNumber(accumI5)
	g.mark(done)
}

// checkSimple implements one independent check whose condition is already a
// Boolean sitting at condDepth: if true, emit msg and set invalidSoFar
// (depth 1) true. Stack-neutral overall.
func checkSimple(g *gen, condDepth int, msg [4]uint16, eventID uint32) {
	g.dupField(condDepth)
	g.not()
	after := g.uniq("check_after")
	g.jmpifTo(after)
	emitMessage(g, 6, msg, EventError, eventID)
	g.setDeepBool(1, true)
	g.mark(after)
}

// checkOutsideRange implements a (b)/(c)-style check: the Number at
// valueDepth must lie in [low, high] or msg is emitted and invalidSoFar set.
func checkOutsideRange(g *gen, valueDepth int, low, high uint32, msg [4]uint16, eventID uint32) {
	g.dupField(valueDepth)
	g.pushN(low)
	g.lt()
	g.dupField(valueDepth + 1) // the first copy's LT result now sits on top
	g.pushN(high)
	g.gt()
	g.or(2)
	g.not()
	after := g.uniq("check_after")
	g.jmpifTo(after)
	emitMessage(g, 6, msg, EventError, eventID)
	g.setDeepBool(1, true)
	g.mark(after)
}

// checkOrder implements ORDER_ERR: boundLow (depth 3) must not exceed
// boundHigh (depth 2).
func checkOrder(g *gen, msg [4]uint16, eventID uint32) {
	g.dupField(3) // boundLow
	g.dupField(3) // boundHigh, shifted by the boundLow copy above it
	g.gt()
	g.not()
	after := g.uniq("check_after")
	g.jmpifTo(after)
	emitMessage(g, 6, msg, EventError, eventID)
	g.setDeepBool(1, true)
	g.mark(after)
}

// emitFlagBranch handles parm_id matching a known flag f: applies all six
// independent checks in the fixed (a)-(f) order, marks the flag seen, and
// tallies V or I. Entered and left at the 5-local baseline.
func emitFlagBranch(g *gen, f flagDef, msgs flagMsgs) {
	g.pushB(false) // invalidSoFar; now 6 locals: invalidSoFar(1) boundHigh(2) boundLow(3) padAnyNonzero(4) parmID(5) entryNum(6)

	checkSimple(g, 4, msgs.pad, EventPadErr)                          // (a)
	checkOutsideRange(g, 3, f.low, f.high, msgs.lbnd, EventLboundErr) // (b) boundLow
	checkOutsideRange(g, 2, f.low, f.high, msgs.hbnd, EventHboundErr) // (c) boundHigh
	checkOrder(g, msgs.order, EventOrderErr)                          // (d)
	checkSimple(g, accumSawValidUnused6, msgs.extra, EventExtraErr)   // (e)
	seenDepth := seenDepth6(f.seenSlot)
	checkSimple(g, seenDepth, msgs.redef, EventRedefErr) // (f)

	// Mark seen regardless of validity (6 locals still present).
	g.setDeepBool(seenDepth, true)

	invalid := g.uniq("flag_invalid")
	g.jmpifTo(invalid) // pops invalidSoFar; 5 locals remain either way
	g.incrementDeepNumber(accumV5)
	done := g.uniq("flag_done")
	g.jmpTo(done)
	g.mark(invalid)
	g.incrementDeepNumber(accumI5)
	g.mark(done)
}
