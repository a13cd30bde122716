package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Executor is the connection surface the REPL drives. It is satisfied
// by *connection.Client.
type Executor interface {
	Execute(cmd string) (string, error)
	Ping() (time.Duration, error)
	Addr() string
	Close() error
}

// REPL is the interactive prompt loop.
type REPL struct {
	client    Executor
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// New creates a REPL driving the given connection.
func New(client Executor) *REPL {
	return &REPL{
		client:    client,
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// Run starts the prompt loop and blocks until exit or EOF.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: could not load history: %v\n", err)
	}
	defer r.history.Save()

	fmt.Fprintf(r.output, "Connected to %s. Type 'help' for commands, 'exit' to quit.\n", r.client.Addr())

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, "keywire> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		case "ping":
			r.ping()
			continue
		}

		// A lone mistyped token gets a suggestion instead of a trip
		// to the server.
		if !strings.Contains(line, " ") && !r.completer.Known(line) {
			if matches := r.completer.Complete(line); len(matches) > 0 {
				fmt.Fprintf(r.output, "Unknown command %q. Did you mean: %s?\n", line, strings.Join(matches, ", "))
				continue
			}
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	reply, err := r.client.Execute(line)
	if err != nil {
		// A transport error poisons the reply framing; drop the
		// connection so the next command redials.
		r.client.Close()
		return err
	}

	fmt.Fprintln(r.output, reply)
	return nil
}

func (r *REPL) ping() {
	rtt, err := r.client.Ping()
	if err != nil {
		r.client.Close()
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.output, "PONG (%s)\n", rtt.Round(time.Microsecond))
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `Commands:
  GET key         Fetch the value stored at key
  SET key value   Store value at key; the value may contain spaces
  DELETE key      Remove key; replies 1 if it existed, 0 otherwise
  ping            Measure one round trip to the server
  help            Show this help
  exit, quit      Leave the prompt
`)
}
