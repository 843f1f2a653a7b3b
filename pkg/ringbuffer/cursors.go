package ringbuffer

import "github.com/pkg/errors"

type cursors struct {
	read  int // next byte to read, size when empty
	write int // next byte to write, size when full, 0 when empty
}

// transfer moves up to count bytes starting at c.read into dst, or skips them
// when dst is nil, and advances c. Returns the number of bytes moved.
func (rb *RingBuffer) transfer(dst []byte, count int, c *cursors) int {
	if count == 0 || c.read == rb.size {
		return 0
	}

	n := 0
	// 1. readable bytes run from read to the end of the slice
	if c.read > c.write || c.write == rb.size {
		// full: the space freed by this read starts at read
		if c.write == rb.size {
			c.write = c.read
		}

		k := min(count, rb.size-c.read)
		if dst != nil {
			copy(dst, rb.data[c.read:c.read+k])
		}
		n += k
		c.read += k

		if c.read == rb.size && c.write > 0 {
			c.read = 0
		}
	}

	// 2. readable bytes run from read up to write
	if c.read < c.write {
		k := min(count-n, c.write-c.read)
		if dst != nil {
			copy(dst[n:], rb.data[c.read:c.read+k])
		}
		n += k
		c.read += k

		if c.read == c.write {
			c.read = rb.size
			c.write = 0
		}
	}

	return n
}

func (c cursors) validate(size int) error {
	switch {
	case size <= 0:
		return errors.Errorf("size %d is not positive", size)
	case c.read > size || (c.read == size && c.write != 0):
		return errors.Errorf("read cursor %d out of range for size %d (write %d)", c.read, size, c.write)
	case c.write < 0 || c.write > size:
		return errors.Errorf("write cursor %d out of range for size %d", c.write, size)
	case c.read < 0:
		return errors.Errorf("read cursor %d is negative", c.read)
	case c.read == c.write:
		return errors.Errorf("read and write cursors collide at %d", c.read)
	}
	return nil
}

func (rb *RingBuffer) check() {
	if !debugChecks {
		return
	}
	if err := rb.cur.validate(rb.size); err != nil {
		panic(errors.Wrap(err, "ringbuffer: invariant violated"))
	}
}
