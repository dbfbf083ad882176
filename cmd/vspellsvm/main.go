// Command vspellsvm runs the reference table-image validator (§4.6) against
// a table-image file and reports the events it emits plus the run's final
// status, in the teacher's root main()'s idiom: a usage message on missing
// arguments, a debug flag, and a deferred panic recovery.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/timothy-fraser/v-spells-cfs-use-case/internal/config"
	"github.com/timothy-fraser/v-spells-cfs-use-case/validator"
	"github.com/timothy-fraser/v-spells-cfs-use-case/vm"
)

var (
	debugVM    = flag.Bool("debug", false, "log the abort diagnostic line to stderr instead of discarding it")
	configPath = flag.String("config", "", "path to an optional TOML file overriding the framework's default constants")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: vspellsvm [--debug] [--config file.toml] <table-image file>")
		return
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "vspellsvm: internal error:", r)
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vspellsvm:", err)
		os.Exit(1)
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "vspellsvm:", err)
		os.Exit(1)
	}

	logger := vm.NewSilentLogger()
	if *debugVM {
		logger.SetOutput(os.Stderr)
	}

	events, status := validator.Validate(image, cfg, logger)
	for _, ev := range events {
		fmt.Printf("event type=0x%04x id=0x%04x: %s\n", ev.Type, ev.ID, ev.Message)
	}
	fmt.Println("status:", status)

	if !status.IsHalt() {
		os.Exit(1)
	} else if status == vm.StatusHaltFalse {
		os.Exit(2)
	}
}
