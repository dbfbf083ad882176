// Package validator builds and runs the reference table-image validator: a
// fixed program, hosted by package vm, whose observable event sequence and
// halt status are the conformance target for any alternative validator
// implementation.
package validator

import "github.com/timothy-fraser/v-spells-cfs-use-case/vm"

// Parameter identifiers a table entry's parm_id field may carry. UNUSED
// marks a slot the table's author left empty; the eight flag identifiers
// each claim exactly one bound range.
const (
	parmUnused byte = 0x00
	parmApe    byte = 0x01
	parmBat    byte = 0x02
	parmCat    byte = 0x04
	parmDog    byte = 0x08
	parmNorth  byte = 0x10
	parmSouth  byte = 0x20
	parmEast   byte = 0x40
	parmWest   byte = 0x80
)

// flagDef binds one flag identifier to its display name and inclusive bound
// range, as read from the table image's entries (field layout, §6.3/§4.6:
// parm_id u8, pad[3], bound_low u32, bound_high u32 — 12 bytes per entry).
type flagDef struct {
	id       byte
	name     string
	low      uint32
	high     uint32
	seenSlot int // index into the seen-accumulator bank, 0..7
}

func flagDefs(cfg vm.Config) []flagDef {
	return []flagDef{
		{parmApe, "Ape", cfg.AnimalLow, cfg.AnimalHigh, 0},
		{parmBat, "Bat", cfg.AnimalLow, cfg.AnimalHigh, 1},
		{parmCat, "Cat", cfg.AnimalLow, cfg.AnimalHigh, 2},
		{parmDog, "Dog", cfg.AnimalLow, cfg.AnimalHigh, 3},
		{parmNorth, "North", cfg.DirectionLow, cfg.DirectionHigh, 4},
		{parmSouth, "South", cfg.DirectionLow, cfg.DirectionHigh, 5},
		{parmEast, "East", cfg.DirectionLow, cfg.DirectionHigh, 6},
		{parmWest, "West", cfg.DirectionLow, cfg.DirectionHigh, 7},
	}
}

// Event type and event-id catalog (§6.4). EventInfo/EventError classify the
// message severity; the *_ERR identifiers select the exact template.
const (
	EventInfo  uint32 = 0x0001
	EventError uint32 = 0x0002

	EventValidationInfo uint32 = 0x0008
	EventZeroErr        uint32 = 0x2001
	EventParmErr        uint32 = 0x2002
	EventPadErr         uint32 = 0x2004
	EventLboundErr      uint32 = 0x2008
	EventHboundErr      uint32 = 0x2010
	EventOrderErr       uint32 = 0x2020
	EventExtraErr       uint32 = 0x2040
	EventRedefErr       uint32 = 0x2080
)

// Event is one emitted validator event: a type/id pair plus its rendered
// message text, exactly as delivered by vm.EmitFunc.
type Event struct {
	Type    uint32
	ID      uint32
	Message string
}
