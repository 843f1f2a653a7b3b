package bufcmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ringbuf/pkg/repl"
	"ringbuf/pkg/ringbuffer"
)

// MaxCount bounds the counts and offsets accepted from the command line.
const MaxCount = 1 << 30

// BufRepl builds a REPL whose commands drive rb.
func BufRepl(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) *repl.REPL {
	r := repl.NewRepl()
	r.AddCommand("w", writeHandler(rb, log), "Writes the rest of the line into the buffer. usage: w <text>")
	r.AddCommand("r", readHandler(rb, log), "Reads and removes up to n bytes. usage: r <n>")
	r.AddCommand("p", peekHandler(rb, log), "Shows up to n bytes without removing them. usage: p <n>")
	r.AddCommand("pa", peekAtHandler(rb, log), "Shows up to n bytes starting offset bytes in. usage: pa <n> <offset>")
	r.AddCommand("d", discardHandler(rb, log), "Drops up to n bytes. usage: d <n>")
	r.AddCommand("clear", clearHandler(rb, log), "Empties the buffer. usage: clear")
	r.AddCommand("s", statusHandler(rb), "Shows the buffer state. usage: s")
	r.AddCommand("dump", dumpHandler(rb), "Hex dumps the readable bytes. usage: dump")
	return r
}

func writeHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		_, text, ok := strings.Cut(input, " ")
		if !ok || text == "" {
			return fmt.Errorf("usage: w <text>")
		}
		n := rb.WriteBytes([]byte(text))
		logOp(log, rb, "write", len(text), n)
		_, err := fmt.Fprintf(config.Writer, "Wrote %d bytes\n", n)
		return errors.Wrap(err, "writeHandler cannot write to stdout")
	}
}

func readHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)
		if len(args) != 2 {
			return fmt.Errorf("usage: r <n>")
		}
		count, err := parseCount(args[1])
		if err != nil {
			return err
		}
		dst := make([]byte, min(count, rb.Cap()))
		n := rb.ReadBytes(dst)
		logOp(log, rb, "read", count, n)
		_, err = fmt.Fprintf(config.Writer, "Read %d bytes: %q\n", n, dst[:n])
		return errors.Wrap(err, "readHandler cannot write to stdout")
	}
}

func peekHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)
		if len(args) != 2 {
			return fmt.Errorf("usage: p <n>")
		}
		count, err := parseCount(args[1])
		if err != nil {
			return err
		}
		dst := make([]byte, min(count, rb.Cap()))
		n := rb.PeekBytes(dst)
		logOp(log, rb, "peek", count, n)
		_, err = fmt.Fprintf(config.Writer, "Peeked %d bytes: %q\n", n, dst[:n])
		return errors.Wrap(err, "peekHandler cannot write to stdout")
	}
}

func peekAtHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)
		if len(args) != 3 {
			return fmt.Errorf("usage: pa <n> <offset>")
		}
		count, err := parseCount(args[1])
		if err != nil {
			return err
		}
		offset, err := parseCount(args[2])
		if err != nil {
			return err
		}
		dst := make([]byte, min(count, rb.Cap()))
		n := rb.PeekBytesAt(dst, offset)
		logOp(log, rb, "peekat", count, n, logrus.Fields{"offset": offset})
		_, err = fmt.Fprintf(config.Writer, "Peeked %d bytes at %d: %q\n", n, offset, dst[:n])
		return errors.Wrap(err, "peekAtHandler cannot write to stdout")
	}
}

func discardHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)
		if len(args) != 2 {
			return fmt.Errorf("usage: d <n>")
		}
		count, err := parseCount(args[1])
		if err != nil {
			return err
		}
		n := rb.Discard(count)
		logOp(log, rb, "discard", count, n)
		_, err = fmt.Fprintf(config.Writer, "Discarded %d bytes\n", n)
		return errors.Wrap(err, "discardHandler cannot write to stdout")
	}
}

func clearHandler(rb *ringbuffer.RingBuffer, log logrus.FieldLogger) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		if len(strings.Fields(input)) != 1 {
			return fmt.Errorf("usage: clear")
		}
		dropped := rb.Readable()
		rb.Clear()
		logOp(log, rb, "clear", dropped, dropped)
		_, err := io.WriteString(config.Writer, "Cleared\n")
		return errors.Wrap(err, "clearHandler cannot write to stdout")
	}
}

func statusHandler(rb *ringbuffer.RingBuffer) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		if len(strings.Fields(input)) != 1 {
			return fmt.Errorf("usage: s")
		}
		_, err := io.WriteString(config.Writer, "State\tCap\tRead\tWrite\tReadable\tWritable\n")
		if err != nil {
			return fmt.Errorf("statusHandler cannot write the header to stdout")
		}
		_, err = io.WriteString(config.Writer, GetStatusString(rb))
		if err != nil {
			return fmt.Errorf("statusHandler cannot write the status to stdout")
		}
		return nil
	}
}

func dumpHandler(rb *ringbuffer.RingBuffer) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		if len(strings.Fields(input)) != 1 {
			return fmt.Errorf("usage: dump")
		}
		_, err := io.WriteString(config.Writer, GetDumpString(rb))
		return errors.Wrap(err, "dumpHandler cannot write to stdout")
	}
}

/**************************** helper funcs ****************************/

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid count %q", arg)
	}
	if n < 0 || n > MaxCount {
		return 0, fmt.Errorf("input %v is out of range", n)
	}
	return n, nil
}

func logOp(log logrus.FieldLogger, rb *ringbuffer.RingBuffer, op string, requested, transferred int, extra ...logrus.Fields) {
	fields := logrus.Fields{
		"op":          op,
		"requested":   requested,
		"transferred": transferred,
		"readable":    rb.Readable(),
		"writable":    rb.Writable(),
	}
	for _, f := range extra {
		for k, v := range f {
			fields[k] = v
		}
	}
	log.WithFields(fields).Debug("buffer op")
}
