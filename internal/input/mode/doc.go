// Package mode is the modal state machine insert sessions hang off.
//
// Normal is the resting mode. Insert takes text and has a "replace"
// submode that overwrites. Visual selects, with characterwise, linewise and
// blockwise submodes.
//
// Leaving a mode notifies preempting observers before the mode's own Exit
// runs. That is how an insert session learns typing has ended before the
// insert mode's exit hook moves the cursor:
//
//	d := manager.PreemptWillDeactivate(func(t mode.Transition) {
//		if !t.Leaves(mode.ModeInsert) {
//			return
//		}
//		d.Dispose()
//		// finalize the session
//	})
package mode
