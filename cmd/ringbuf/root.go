package main

import (
	"os"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ringbuf/pkg/bufcmd"
	"ringbuf/pkg/ringbuffer"
)

type options struct {
	size    int
	history string
	prompt  string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "ringbuf",
		Short: "Interactively drive a fixed-capacity ring buffer",
		Long: `ringbuf wraps a freshly allocated block of --size bytes in a ring buffer
and opens a prompt for writing, reading, peeking and discarding bytes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().IntVar(&opts.size, "size", 64, "capacity of the buffer in bytes")
	cmd.Flags().StringVar(&opts.history, "history", "", "file to keep prompt history in")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "> ", "prompt string")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log every buffer operation")
	return cmd
}

func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func (o *options) validate() error {
	if o.size <= 0 || o.size > bufcmd.MaxCount {
		return errors.Errorf("size %d must be between 1 and %d", o.size, bufcmd.MaxCount)
	}
	return nil
}

func run(opts *options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	logger := newLogger(opts.debug)

	rb := ringbuffer.New(make([]byte, opts.size))
	logger.WithField("size", opts.size).Debug("ring buffer ready")

	r := bufcmd.BufRepl(rb, logger)
	err := r.Run(&readline.Config{
		Prompt:          opts.prompt,
		HistoryFile:     opts.history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	return errors.Wrap(err, "repl failed")
}
