package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireStatus asserts the exact expected status the way the teacher's
// runAndEnsureSpecificShutdown asserts an exact vm.errcode.
func requireStatus(t *testing.T, got, want Status) {
	t.Helper()
	require.Equal(t, want, got, "got %s, want %s", got, want)
}

func runProgram(t *testing.T, program Program, input []byte) Status {
	t.Helper()
	return Run(program, input, nil, DefaultConfig(), nil, RunOptions{})
}

func TestHaltTrueFalse(t *testing.T) {
	requireStatus(t, runProgram(t, Program{PushB(true), Halt()}, nil), StatusHaltTrue)
	requireStatus(t, runProgram(t, Program{PushB(false), Halt()}, nil), StatusHaltFalse)
}

func TestNoProgram(t *testing.T) {
	requireStatus(t, runProgram(t, Program{}, nil), StatusNoProgram)
}

func TestStackSoundnessArithmetic(t *testing.T) {
	// push 3, push 5, add -> 8; push 2, sub -> 6; push 6, eq 2 -> true; halt
	program := Program{
		PushN(3),
		PushN(5),
		Add(),
		PushN(2),
		Sub(),
		PushN(6),
		Eq(2),
		Halt(),
	}
	requireStatus(t, runProgram(t, program, nil), StatusHaltTrue)
}

func TestSubUnderflowIsOutOfBounds(t *testing.T) {
	program := Program{PushN(1), PushN(2), Sub(), Halt()}
	requireStatus(t, runProgram(t, program, nil), StatusOutOfBounds)
}

func TestAddOverflowIsOutOfBounds(t *testing.T) {
	program := Program{PushN(^uint32(0)), PushN(1), Add(), Halt()}
	requireStatus(t, runProgram(t, program, nil), StatusOutOfBounds)
}

func TestLogicFloors(t *testing.T) {
	// AND/OR/EQ reject n < 2; DUP/POP accept n = 1; ROLL rejects n < 2.
	requireStatus(t, runProgram(t, Program{PushB(true), And(1), Halt()}, nil), StatusInvalidLiteral)
	requireStatus(t, runProgram(t, Program{PushB(true), Or(0), Halt()}, nil), StatusInvalidLiteral)
	requireStatus(t, runProgram(t, Program{PushN(1), Eq(1), Halt()}, nil), StatusInvalidLiteral)
	requireStatus(t, runProgram(t, Program{PushN(1), Dup(0), Halt()}, nil), StatusInvalidLiteral)
	requireStatus(t, runProgram(t, Program{PushN(1), Pop(0), Halt()}, nil), StatusInvalidLiteral)
	requireStatus(t, runProgram(t, Program{PushN(1), PushN(2), Roll(1), Halt()}, nil), StatusInvalidLiteral)

	// DUP 1 and POP 1 are accepted.
	requireStatus(t, runProgram(t, Program{PushN(1), Dup(1), Pop(1), PushB(true), Halt()}, nil), StatusHaltTrue)
}

func TestForwardOnlyCallRejectsBackwardTarget(t *testing.T) {
	// CALL target equal to its own address must fail NoLoops.
	program := Program{CallTarget(0), Halt()}
	requireStatus(t, runProgram(t, program, nil), StatusNoLoops)
}

func TestForwardOnlyJmpifRejectsSmallOffset(t *testing.T) {
	program := Program{PushB(true), JumpOffset(1), Halt()}
	requireStatus(t, runProgram(t, program, nil), StatusNoLoops)
}

func TestCallReturnRoundTrip(t *testing.T) {
	// 0: CALL 3      (push return addr 1, jump to 3)
	// 1: HALT        (never reached directly; RETURN lands here)
	// 2: unreachable PUSHB false would make the halt false; skip via layout
	// 3: PUSHB true
	// 4: RETURN      (-> pc 1)
	program := Program{
		CallTarget(3), // 0
		Halt(),        // 1
		PushB(false),  // 2 (unreachable)
		PushB(true),   // 3
		Return(),      // 4
	}
	requireStatus(t, runProgram(t, program, nil), StatusHaltTrue)
}

func TestControlStackUnderflowOnReturn(t *testing.T) {
	program := Program{Return()}
	requireStatus(t, runProgram(t, program, nil), StatusOutOfBounds)
}

func TestInputContainmentAndRewindRoundTrip(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	// read(2); rewind(2) should restore head, then read(2) again must yield
	// the same value both times, which EQ 2 confirms before HALT.
	program := Program{
		Input(2),
		Rewind(2),
		Input(2),
		Eq(2),
		Halt(),
	}
	requireStatus(t, runProgram(t, program, input), StatusHaltTrue)
}

func TestInputOverreadIsOutOfBounds(t *testing.T) {
	program := Program{Input(4), Halt()}
	requireStatus(t, runProgram(t, program, []byte{0x01, 0x02}), StatusOutOfBounds)
}

func TestOutputFlushDeliversTypeIDAndMessage(t *testing.T) {
	var gotType, gotID uint32
	var gotMsg []byte
	emit := func(eventType, eventID uint32, msg []byte) {
		gotType, gotID, gotMsg = eventType, eventID, msg
	}

	program := Program{
		PushN(7),
		Output(),
		PushN(0x10), // event type
		PushN(0x20), // event id
		Flush(),
		PushB(true),
		Halt(),
	}
	status := Run(program, nil, nil, DefaultConfig(), emit, RunOptions{})
	requireStatus(t, status, StatusHaltTrue)
	require.Equal(t, uint32(0x10), gotType)
	require.Equal(t, uint32(0x20), gotID)
	require.Equal(t, "7", string(gotMsg))
}

func TestOutputOverflowIsOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMessageLength = 4 // room for 3 bytes + reserved NUL
	program := Program{PushN(123456), Output(), Halt()}
	status := Run(program, nil, nil, cfg, nil, RunOptions{})
	requireStatus(t, status, StatusOutOfBounds)
}

func TestStackCapacityOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StackCapacity = 1
	program := Program{PushN(1), PushN(2), Halt()}
	status := Run(program, nil, nil, cfg, nil, RunOptions{})
	requireStatus(t, status, StatusOutOfBounds)
}

func TestStringRefOutOfRangeIsInvalidLiteral(t *testing.T) {
	program := Program{PushS(0), Halt()}
	status := Run(program, nil, StringTable{}, DefaultConfig(), nil, RunOptions{})
	requireStatus(t, status, StatusInvalidLiteral)
}

func TestStringRefOutput(t *testing.T) {
	var gotMsg []byte
	emit := func(_, _ uint32, msg []byte) { gotMsg = msg }
	program := Program{
		PushS(0),
		Output(),
		PushN(1),
		PushN(2),
		Flush(),
		PushB(true),
		Halt(),
	}
	table := StringTable{"hello"}
	status := Run(program, nil, table, DefaultConfig(), emit, RunOptions{})
	requireStatus(t, status, StatusHaltTrue)
	require.Equal(t, "hello", string(gotMsg))
}

func TestUnknownOpcodeIsInvalidOpcode(t *testing.T) {
	program := Program{{Op: Opcode(0xEE)}}
	requireStatus(t, runProgram(t, program, nil), StatusInvalidOpcode)
}
