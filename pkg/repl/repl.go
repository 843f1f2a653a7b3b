package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// ExitCommand ends Run.
const ExitCommand = "exit"

type REPL struct {
	Commands map[string]func(string, *REPLConfig) error
	Help     map[string]string
}

type REPLConfig struct {
	Writer io.Writer
}

func NewRepl() *REPL {
	r := &REPL{make(map[string]func(string, *REPLConfig) error), make(map[string]string)}
	return r
}

// Add a command, along with its help string, to the set of commands
func (r *REPL) AddCommand(trigger string, handler func(string, *REPLConfig) error, help string) {
	if trigger == "" || trigger[0] == '.' || trigger == ExitCommand {
		return
	}
	r.Help[trigger] = help
	r.Commands[trigger] = handler
}

// Return all REPL usage information as a string, sorted by trigger
func (r *REPL) HelpString() string {
	var sb strings.Builder
	sb.WriteString("Commands\n")
	for _, k := range r.triggers() {
		sb.WriteString(fmt.Sprintf("\t%s: %s\n", k, r.Help[k]))
	}
	sb.WriteString(fmt.Sprintf("\t%s: Leaves the repl\n", ExitCommand))
	return sb.String()
}

// Exec runs a single input line against the registered commands
func (r *REPL) Exec(input string, config *REPLConfig) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	command := strings.Fields(input)[0]
	handler, ok := r.Commands[command]
	if !ok {
		io.WriteString(config.Writer, fmt.Sprintf("Invalid command: %s\n", command))
		io.WriteString(config.Writer, r.HelpString())
		return
	}
	if err := handler(input, config); err != nil {
		io.WriteString(config.Writer, fmt.Sprintf("Error: %v\n", err))
	}
}

// Run reads lines with readline until exit, EOF or an interrupt on an empty line
func (r *REPL) Run(cfg *readline.Config) error {
	if cfg.AutoComplete == nil {
		cfg.AutoComplete = r.completer()
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return errors.Wrap(err, "cannot start readline")
	}
	defer rl.Close()

	replConfig := &REPLConfig{Writer: rl.Stdout()}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "cannot read line")
		}

		if strings.TrimSpace(line) == ExitCommand {
			return nil
		}
		r.Exec(line, replConfig)
	}
}

func (r *REPL) triggers() []string {
	keys := make([]string, 0, len(r.Commands))
	for k := range r.Commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *REPL) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(r.Commands)+1)
	for _, k := range r.triggers() {
		items = append(items, readline.PcItem(k))
	}
	items = append(items, readline.PcItem(ExitCommand))
	return readline.NewPrefixCompleter(items...)
}
