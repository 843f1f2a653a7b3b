package ringbuffer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ------|----------------|--------------------|
//     read             write               size
// read == size means empty (write is then 0)
// write == size means full (read holds the oldest byte)
// read != write always

// RingBuffer adapts a caller-supplied slice into a fixed-capacity FIFO of bytes.
// It never allocates or resizes the slice, and it is not safe for concurrent use.
// The caller must not touch the slice while the RingBuffer is in use.
type RingBuffer struct {
	data []byte
	size int
	cur  cursors
}

// New wraps buf. It panics if buf is empty.
func New(buf []byte) *RingBuffer {
	if len(buf) == 0 {
		panic(errors.New("ringbuffer: backing buffer must not be empty"))
	}
	rb := &RingBuffer{data: buf, size: len(buf)}
	rb.Clear()
	return rb
}

func (rb *RingBuffer) Cap() int {
	return rb.size
}

// Cursors reports the raw read and write indexes, for inspection only.
func (rb *RingBuffer) Cursors() (read, write int) {
	return rb.cur.read, rb.cur.write
}

func (rb *RingBuffer) IsEmpty() bool {
	return rb.cur.read == rb.size
}

func (rb *RingBuffer) IsFull() bool {
	return rb.cur.write == rb.size
}

// Gets the number of bytes that can be read
func (rb *RingBuffer) Readable() int {
	switch {
	case rb.IsFull():
		return rb.size
	case rb.cur.read > rb.cur.write:
		return rb.cur.write + rb.size - rb.cur.read
	default:
		return rb.cur.write - rb.cur.read
	}
}

// Gets the number of bytes that can be written
func (rb *RingBuffer) Writable() int {
	switch {
	case rb.IsFull():
		return 0
	case rb.cur.read < rb.cur.write:
		return rb.cur.read + rb.size - rb.cur.write
	default:
		return rb.cur.read - rb.cur.write
	}
}

// ReadBytes moves up to len(dst) bytes out of the buffer into dst.
func (rb *RingBuffer) ReadBytes(dst []byte) int {
	n := rb.transfer(dst, len(dst), &rb.cur)
	rb.check()
	return n
}

// Discard drops up to count bytes. It panics if count is negative.
func (rb *RingBuffer) Discard(count int) int {
	if count < 0 {
		panic(errors.Errorf("ringbuffer: negative discard count %d", count))
	}
	n := rb.transfer(nil, count, &rb.cur)
	rb.check()
	return n
}

// PeekBytes copies up to len(dst) bytes into dst without consuming them.
func (rb *RingBuffer) PeekBytes(dst []byte) int {
	c := rb.cur
	return rb.transfer(dst, len(dst), &c)
}

// PeekBytesAt is PeekBytes starting offset bytes past the oldest byte.
// If fewer than offset bytes are readable nothing is copied and 0 is returned.
// It panics if offset is negative.
func (rb *RingBuffer) PeekBytesAt(dst []byte, offset int) int {
	if offset < 0 {
		panic(errors.Errorf("ringbuffer: negative peek offset %d", offset))
	}
	c := rb.cur
	if rb.transfer(nil, offset, &c) != offset {
		return 0
	}
	return rb.transfer(dst, len(dst), &c)
}

// WriteBytes copies up to len(src) bytes into the buffer. Unread bytes are never overwritten.
func (rb *RingBuffer) WriteBytes(src []byte) int {
	if len(src) == 0 || rb.IsFull() {
		return 0
	}

	n := 0
	// 1. data sits in the middle, fill the tail
	if rb.cur.read < rb.cur.write {
		k := copy(rb.data[rb.cur.write:], src)
		n += k
		rb.cur.write += k

		// with read at 0 there is no head space; write == size is then the full encoding
		if rb.cur.write == rb.size && rb.cur.read > 0 {
			rb.cur.write = 0
		}
	}

	// 2. free space runs from write up to read
	if rb.cur.read > rb.cur.write {
		k := copy(rb.data[rb.cur.write:rb.cur.read], src[n:])
		n += k
		rb.cur.write += k

		if rb.cur.write == rb.cur.read {
			rb.cur.write = rb.size
		}
		// was empty, the first byte just landed at 0
		if rb.cur.read == rb.size {
			rb.cur.read = 0
		}
	}

	rb.check()
	return n
}

// Clear empties the buffer. The backing memory is left as is.
func (rb *RingBuffer) Clear() {
	rb.cur = cursors{read: rb.size, write: 0}
}

func (rb *RingBuffer) String() string {
	var state string
	switch {
	case rb.IsEmpty():
		state = "empty"
	case rb.IsFull():
		state = "full"
	default:
		state = "partial"
	}
	return fmt.Sprintf("ringbuffer(%s cap=%d read=%d write=%d readable=%d writable=%d)",
		state, rb.size, rb.cur.read, rb.cur.write, rb.Readable(), rb.Writable())
}
