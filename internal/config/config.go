// Package config loads the framework-defined constants vm.Config carries
// (§6.3) from an optional TOML file, falling back to vm.DefaultConfig when
// no file is given or found.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/timothy-fraser/v-spells-cfs-use-case/vm"
)

// fileConfig mirrors vm.Config's fields under toml tags; it is decoded into
// and then copied onto a vm.DefaultConfig() base so a partial file only
// overrides the fields it names.
type fileConfig struct {
	MaxMessageLength *int `toml:"max_message_length"`
	StackCapacity    *int `toml:"stack_capacity"`

	AnimalLow  *uint32 `toml:"animal_low"`
	AnimalHigh *uint32 `toml:"animal_high"`

	DirectionLow  *uint32 `toml:"direction_low"`
	DirectionHigh *uint32 `toml:"direction_high"`
}

// Load reads path as TOML and applies any fields it sets over
// vm.DefaultConfig(). An empty path, or a path that does not exist,
// returns the default configuration unchanged.
func Load(path string) (vm.Config, error) {
	cfg := vm.DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return vm.Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.MaxMessageLength != nil {
		cfg.MaxMessageLength = *fc.MaxMessageLength
	}
	if fc.StackCapacity != nil {
		cfg.StackCapacity = *fc.StackCapacity
	}
	if fc.AnimalLow != nil {
		cfg.AnimalLow = *fc.AnimalLow
	}
	if fc.AnimalHigh != nil {
		cfg.AnimalHigh = *fc.AnimalHigh
	}
	if fc.DirectionLow != nil {
		cfg.DirectionLow = *fc.DirectionLow
	}
	if fc.DirectionHigh != nil {
		cfg.DirectionHigh = *fc.DirectionHigh
	}

	return cfg, nil
}
