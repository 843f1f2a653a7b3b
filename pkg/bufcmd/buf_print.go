package bufcmd

import (
	"encoding/hex"
	"fmt"

	"ringbuf/pkg/ringbuffer"
)

// State, capacity, cursors and counts as one tab separated line
func GetStatusString(rb *ringbuffer.RingBuffer) string {
	read, write := rb.Cursors()
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d\t%d\n", getStateString(rb), rb.Cap(), read, write, rb.Readable(), rb.Writable())
}

// Hex dump of the readable bytes in FIFO order. The buffer is not modified.
func GetDumpString(rb *ringbuffer.RingBuffer) string {
	if rb.IsEmpty() {
		return "(empty)\n"
	}
	buf := make([]byte, rb.Readable())
	n := rb.PeekBytes(buf)
	return hex.Dump(buf[:n])
}

func getStateString(rb *ringbuffer.RingBuffer) string {
	switch {
	case rb.IsEmpty():
		return "EMPTY"
	case rb.IsFull():
		return "FULL"
	}
	return "PARTIAL"
}
