package validator

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timothy-fraser/v-spells-cfs-use-case/vm"
)

// entry encodes one table entry: parm_id, 3 pad bytes, bound_low and
// bound_high as little-endian u32 (§6.3) — 12 bytes, matching the
// processEntry subroutine's INPUT(1,1,1,1,4,4) read sequence.
func entry(parmID, pad0, pad1, pad2 byte, boundLow, boundHigh uint32) []byte {
	b := make([]byte, 12)
	b[0] = parmID
	b[1] = pad0
	b[2] = pad1
	b[3] = pad2
	binary.LittleEndian.PutUint32(b[4:8], boundLow)
	binary.LittleEndian.PutUint32(b[8:12], boundHigh)
	return b
}

// image concatenates up to four entries into a full table image.
func image(entries ...[]byte) []byte {
	out := make([]byte, 0, 48)
	for _, e := range entries {
		out = append(out, e...)
	}
	return out
}

func TestValidateAllUnused(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltTrue, status)
	require.Len(t, events, 1)
	require.Equal(t, EventValidationInfo, events[0].ID)
	require.Equal(t, "Table image entries: 0 valid, 0 invalid, 4 unused", events[0].Message)
}

func TestValidateTwoValidTwoUnused(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmBat, 0, 0, 0, 0x10, 0x1000),
		entry(parmEast, 0, 0, 0, 0x10000, 0x1000000),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltTrue, status)
	require.Len(t, events, 1)
	require.Equal(t, EventValidationInfo, events[0].ID)
	require.Equal(t, "Table image entries: 2 valid, 0 invalid, 2 unused", events[0].Message)
}

func TestValidateExtraErrAfterValidUnused(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmBat, 0, 0, 0, 0x10, 0x1000),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmApe, 0, 0, 0, 0x10, 0x1000),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltFalse, status)
	require.Len(t, events, 2)

	require.Equal(t, EventError, events[0].Type)
	require.Equal(t, EventExtraErr, events[0].ID)
	require.Equal(t, "Table entry 4 parm Ape follows an unused entry", events[0].Message)

	require.Equal(t, EventValidationInfo, events[1].ID)
	require.Equal(t, "Table image entries: 1 valid, 1 invalid, 2 unused", events[1].Message)
}

func TestValidateOrderErr(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmSouth, 0, 0, 0, 0x10000, 0x10000),
		entry(parmApe, 0, 0, 0, 0x1000, 0x10),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltFalse, status)
	require.Len(t, events, 2)

	require.Equal(t, EventError, events[0].Type)
	require.Equal(t, EventOrderErr, events[0].ID)
	require.Equal(t, "Table entry 2 parm Ape invalid bound order", events[0].Message)

	require.Equal(t, EventValidationInfo, events[1].ID)
	require.Equal(t, "Table image entries: 1 valid, 1 invalid, 2 unused", events[1].Message)
}

func TestValidateRedefErr(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmWest, 0, 0, 0, 0x808000, 0x1000000),
		entry(parmWest, 0, 0, 0, 0x10000, 0x1000000),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmUnused, 0, 0, 0, 0, 0),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltFalse, status)
	require.Len(t, events, 2)

	require.Equal(t, EventError, events[0].Type)
	require.Equal(t, EventRedefErr, events[0].ID)
	require.Equal(t, "Table entry 2 parm West redefines earlier entry", events[0].Message)

	require.Equal(t, EventValidationInfo, events[1].ID)
	require.Equal(t, "Table image entries: 1 valid, 1 invalid, 2 unused", events[1].Message)
}

func TestValidateMultipleErrorsAcrossEntries(t *testing.T) {
	cfg := vm.DefaultConfig()
	img := image(
		entry(parmDog|parmWest, 0xFF, 0xFF, 0xFF, 0x1000001, 0x0F),
		entry(parmUnused, 0, 0, 0, 0, 0),
		entry(parmDog, 0xFF, 0xFF, 0xFF, 0x1000001, 0x0F),
		entry(parmDog, 0xFF, 0xFF, 0xFF, 0x1000001, 0x0F),
	)

	events, status := Validate(img, cfg, nil)

	require.Equal(t, vm.StatusHaltFalse, status)

	wantIDs := []uint32{
		EventParmErr,
		EventPadErr, EventLboundErr, EventHboundErr, EventOrderErr, EventExtraErr,
		EventPadErr, EventLboundErr, EventHboundErr, EventOrderErr, EventExtraErr, EventRedefErr,
		EventValidationInfo,
	}
	require.Len(t, events, len(wantIDs))
	for i, want := range wantIDs {
		require.Equalf(t, want, events[i].ID, "event %d", i)
	}

	require.Equal(t, "Table entry 1 invalid Parm ID", events[0].Message)

	require.Equal(t, "Table entry 3 parm Dog padding not zeroed", events[1].Message)
	require.Equal(t, "Table entry 3 parm Dog invalid low bound", events[2].Message)
	require.Equal(t, "Table entry 3 parm Dog invalid high bound", events[3].Message)
	require.Equal(t, "Table entry 3 parm Dog invalid bound order", events[4].Message)
	require.Equal(t, "Table entry 3 parm Dog follows an unused entry", events[5].Message)

	require.Equal(t, "Table entry 4 parm Dog padding not zeroed", events[6].Message)
	require.Equal(t, "Table entry 4 parm Dog invalid low bound", events[7].Message)
	require.Equal(t, "Table entry 4 parm Dog invalid high bound", events[8].Message)
	require.Equal(t, "Table entry 4 parm Dog invalid bound order", events[9].Message)
	require.Equal(t, "Table entry 4 parm Dog follows an unused entry", events[10].Message)
	require.Equal(t, "Table entry 4 parm Dog redefines earlier entry", events[11].Message)

	require.Equal(t, "Table image entries: 0 valid, 3 invalid, 1 unused", events[12].Message)
}
