package command

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch the value stored at a key",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value at a key",
		ArgsUsage: "KEY VALUE...",
		Action:    setAction,
	}
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"del"},
		Usage:     "Remove a key (prints 1 if it existed, 0 otherwise)",
		ArgsUsage: "KEY",
		Action:    deleteAction,
	}
}

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Measure one round trip to the server",
		Action: pingAction,
	}
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: get KEY")
	}
	key := c.Args().First()
	if err := validateKey(key); err != nil {
		return err
	}

	return runLine(c, "GET "+key)
}

func setAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: set KEY VALUE...")
	}
	args := c.Args().Slice()
	key, value := args[0], strings.Join(args[1:], " ")
	if err := validateKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("value must be a single line")
	}

	return runLine(c, "SET "+key+" "+value)
}

func deleteAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: delete KEY")
	}
	key := c.Args().First()
	if err := validateKey(key); err != nil {
		return err
	}

	return runLine(c, "DELETE "+key)
}

func pingAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	client, err := newKVClient(flags)
	if err != nil {
		return err
	}
	defer client.Close()

	rtt, err := client.Ping()
	if err != nil {
		return fmt.Errorf("ping %s: %w", flags.Server, err)
	}

	fmt.Fprintf(c.App.Writer, "PONG (%s)\n", rtt.Round(time.Microsecond))
	return nil
}

// runLine executes one protocol line and prints the reply.
func runLine(c *cli.Context, line string) error {
	flags := ParseGlobalFlags(c)

	client, err := newKVClient(flags)
	if err != nil {
		return err
	}
	defer client.Close()

	if flags.Verbose {
		fmt.Fprintf(os.Stderr, "> %s\n", line)
	}

	reply, err := client.Execute(line)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, reply)
	return nil
}

// validateKey rejects keys the line protocol cannot carry.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if strings.ContainsAny(key, " \t\r\n\v\f") {
		return fmt.Errorf("key must not contain whitespace")
	}
	return nil
}
