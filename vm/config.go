package vm

// Config carries the framework-defined constants spec.md leaves to the
// embedding framework: the maximum event-message length, the combined
// argument/control stack capacity, and the two named parameter ranges the
// reference validator checks bounds against. A zero Config is never used
// directly — callers get DefaultConfig() unless internal/config.Load
// supplies a TOML-loaded override.
type Config struct {
	MaxMessageLength int
	StackCapacity    int

	AnimalLow, AnimalHigh       uint32
	DirectionLow, DirectionHigh uint32
}

// DefaultConfig returns the literal values named in the external interfaces
// section: a 122-byte message buffer (the framework's documented testing
// default), 32 combined stack slots, and the animal/direction bound ranges.
func DefaultConfig() Config {
	return Config{
		MaxMessageLength: 122,
		StackCapacity:    32,
		AnimalLow:        0x00000010,
		AnimalHigh:       0x00001000,
		DirectionLow:     0x00010000,
		DirectionHigh:    0x01000000,
	}
}
