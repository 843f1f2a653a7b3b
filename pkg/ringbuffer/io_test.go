package ringbuffer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringbuf/pkg/ringbuffer"
)

func TestRingBuffer_Reader_Writer(t *testing.T) {
	rb := ringbuffer.New(make([]byte, 8))

	n, err := rb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = rb.Write([]byte("world"))
	assert.ErrorIs(t, err, ringbuffer.ErrFull)
	assert.Equal(t, 3, n)
	assert.True(t, rb.IsFull())

	n, err = rb.Read(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	out, err := io.ReadAll(rb)
	require.NoError(t, err)
	assert.Equal(t, "hellowor", string(out))

	n, err = rb.Read(make([]byte, 4))
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}

func TestRingBuffer_Byte_Reader_Writer(t *testing.T) {
	rb := ringbuffer.New(make([]byte, 2))

	require.NoError(t, rb.WriteByte('a'))
	require.NoError(t, rb.WriteByte('b'))
	assert.ErrorIs(t, rb.WriteByte('c'), ringbuffer.ErrFull)

	b, err := rb.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	// wraps to index 0
	require.NoError(t, rb.WriteByte('d'))

	for _, want := range []byte("bd") {
		b, err = rb.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}

	_, err = rb.ReadByte()
	assert.Equal(t, io.EOF, err)
}

func TestRingBuffer_WriteTo(t *testing.T) {
	rb := ringbuffer.New(make([]byte, 10))
	rb.WriteBytes([]byte("0123456789"))
	rb.Discard(6)
	rb.WriteBytes([]byte("abcd")) // wraps around

	var out bytes.Buffer
	n, err := rb.WriteTo(&out)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
	assert.Equal(t, "6789abcd", out.String())
	assert.True(t, rb.IsEmpty())

	n, err = rb.WriteTo(&out)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// limitedWriter accepts at most limit bytes in total.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
	err   error
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		p = p[:w.limit]
	}
	w.limit -= len(p)
	n, _ := w.buf.Write(p)
	return n, w.err
}

func TestRingBuffer_WriteTo_Short(t *testing.T) {
	rb := ringbuffer.New(make([]byte, 10))
	rb.WriteBytes([]byte("0123456789"))
	rb.Discard(7)
	rb.WriteBytes([]byte("abc"))

	w := &limitedWriter{limit: 5}
	n, err := rb.WriteTo(w)
	assert.Equal(t, io.ErrShortWrite, err)
	assert.EqualValues(t, 5, n)
	assert.Equal(t, "789ab", w.buf.String())

	// only what the writer took is consumed
	assert.Equal(t, 1, rb.Readable())
	rest := make([]byte, 5)
	assert.Equal(t, 1, rb.PeekBytes(rest))
	assert.Equal(t, byte('c'), rest[0])

	failing := errors.New("sink closed")
	w = &limitedWriter{limit: 0, err: failing}
	n, err = rb.WriteTo(w)
	assert.ErrorIs(t, err, failing)
	assert.Zero(t, n)
	assert.Equal(t, 1, rb.Readable())
}

func TestRingBuffer_String(t *testing.T) {
	rb := ringbuffer.New(make([]byte, 4))
	assert.Equal(t, "ringbuffer(empty cap=4 read=4 write=0 readable=0 writable=4)", rb.String())
	rb.WriteBytes([]byte("ab"))
	assert.Equal(t, "ringbuffer(partial cap=4 read=0 write=2 readable=2 writable=2)", rb.String())
	rb.WriteBytes([]byte("cd"))
	assert.Equal(t, "ringbuffer(full cap=4 read=0 write=4 readable=4 writable=0)", rb.String())
}
