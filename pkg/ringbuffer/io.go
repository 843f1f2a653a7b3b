package ringbuffer

import (
	"io"

	"github.com/pkg/errors"
)

// ErrFull is returned by the io adapters when not every byte fit.
var ErrFull = errors.New("ringbuffer: buffer is full")

var (
	_ io.Reader     = (*RingBuffer)(nil)
	_ io.Writer     = (*RingBuffer)(nil)
	_ io.ByteReader = (*RingBuffer)(nil)
	_ io.ByteWriter = (*RingBuffer)(nil)
	_ io.WriterTo   = (*RingBuffer)(nil)
)

// Read implements io.Reader. It returns io.EOF only when the buffer is empty.
func (rb *RingBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if rb.IsEmpty() {
		return 0, io.EOF
	}
	return rb.ReadBytes(p), nil
}

// Write implements io.Writer. A short write reports ErrFull.
func (rb *RingBuffer) Write(p []byte) (int, error) {
	n := rb.WriteBytes(p)
	if n < len(p) {
		return n, ErrFull
	}
	return n, nil
}

func (rb *RingBuffer) ReadByte() (byte, error) {
	var b [1]byte
	if rb.ReadBytes(b[:]) == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}

func (rb *RingBuffer) WriteByte(c byte) error {
	b := [1]byte{c}
	if rb.WriteBytes(b[:]) == 0 {
		return ErrFull
	}
	return nil
}

// WriteTo drains the buffer into w. Only the bytes w accepted are consumed.
func (rb *RingBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for !rb.IsEmpty() {
		span := rb.front()
		n, err := w.Write(span)
		if n < 0 || n > len(span) {
			return total, errors.Errorf("ringbuffer: writer returned invalid count %d", n)
		}
		rb.Discard(n)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n < len(span) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// front returns the longest contiguous readable span starting at the read cursor.
func (rb *RingBuffer) front() []byte {
	switch {
	case rb.IsEmpty():
		return nil
	case rb.cur.read < rb.cur.write:
		return rb.data[rb.cur.read:rb.cur.write]
	default:
		return rb.data[rb.cur.read:]
	}
}
