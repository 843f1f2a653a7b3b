//go:build ringbufdebug

package ringbuffer

// Built with -tags ringbufdebug every mutating call re-validates the cursors.
const debugChecks = true
