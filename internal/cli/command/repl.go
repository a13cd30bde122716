package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keywire-go/internal/cli/repl"
)

// REPLCommand returns the interactive mode command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"i"},
		Usage:   "Start an interactive prompt",
		Action:  replAction,
	}
}

func replAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	client, err := newKVClient(flags)
	if err != nil {
		return err
	}
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	defer client.Close()

	return repl.New(client).Run()
}
