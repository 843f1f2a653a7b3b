//go:build !ringbufdebug

package ringbuffer

const debugChecks = false
