package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keywire-go/internal/cli/connection"
	"github.com/yndnr/keywire-go/internal/cli/output"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show server statistics from the admin API",
		Action: statsAction,
	}
}

// serverStats mirrors the admin API /stats response.
type serverStats struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Keys          int    `json:"keys"`
	Shards        int    `json:"shards"`
	Connections   int    `json:"connections"`
	Build         struct {
		Version string `json:"version"`
		Commit  string `json:"commit"`
	} `json:"build"`
}

func statsAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	client := connection.NewAdminClient(flags.Admin)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/stats")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result serverStats
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if f := output.NewFormatter(output.Format(flags.Output)); f != nil {
		return f.Format(c.App.Writer, result)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Server Statistics\n")
	fmt.Fprintf(w, "=================\n\n")
	fmt.Fprintf(w, "Status:      %s\n", result.Status)
	fmt.Fprintf(w, "Version:     %s (%s)\n", result.Build.Version, result.Build.Commit)
	fmt.Fprintf(w, "Uptime:      %s\n", time.Duration(result.UptimeSeconds)*time.Second)
	fmt.Fprintf(w, "Keys:        %d\n", result.Keys)
	fmt.Fprintf(w, "Shards:      %d\n", result.Shards)
	fmt.Fprintf(w, "Connections: %d\n", result.Connections)
	return nil
}
