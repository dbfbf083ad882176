package validator

import "github.com/timothy-fraser/v-spells-cfs-use-case/vm"

// Validate runs the reference table-image validator program against a raw
// table image (per §4.6/§6.3), returning every event emitted in order and
// the run's final halt status. A non-halt Status indicates the run aborted
// on a runtime error before producing a verdict; any events emitted before
// the abort are still returned, matching the VM's guarantee that
// already-flushed events survive an abort. logger is optional and receives
// the out-of-band abort diagnostic (§7) when non-nil; pass
// vm.NewSilentLogger() to discard it.
func Validate(image []byte, cfg vm.Config, logger *vm.Logger) ([]Event, vm.Status) {
	program, table := buildProgram(cfg)

	var events []Event
	emit := func(eventType, eventID uint32, message []byte) {
		events = append(events, Event{Type: eventType, ID: eventID, Message: string(message)})
	}

	status := vm.Run(program, image, table, cfg, emit, vm.RunOptions{Logger: logger})
	return events, status
}
