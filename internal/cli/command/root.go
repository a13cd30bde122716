package command

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keywire-go/internal/cli/connection"
	"github.com/yndnr/keywire-go/internal/infra/buildinfo"
	"github.com/yndnr/keywire-go/internal/infra/tlsroots"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "keywire-cli",
		Usage:   "KeyWire command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			PingCommand(),
			StatsCommand(),
			REPLCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "KeyWire server address",
			EnvVars: []string{"KEYWIRE_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.StringFlag{
			Name:    "admin",
			Aliases: []string{"a"},
			Usage:   "Admin API address (used by stats)",
			EnvVars: []string{"KEYWIRE_ADMIN"},
			Value:   "127.0.0.1:7171",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "I/O timeout for server commands",
			Value:   5 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "tls",
			Usage: "Connect to the server over TLS",
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "CA certificate file for TLS verification (implies --tls)",
			EnvVars: []string{"KEYWIRE_CA_FILE"},
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip TLS certificate verification",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format for stats (table, json)",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Echo protocol lines to stderr",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server   string
	Admin    string
	Timeout  time.Duration
	TLS      bool
	CAFile   string
	Insecure bool
	Output   string
	Verbose  bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:   c.String("server"),
		Admin:    c.String("admin"),
		Timeout:  c.Duration("timeout"),
		TLS:      c.Bool("tls") || c.String("ca-file") != "",
		CAFile:   c.String("ca-file"),
		Insecure: c.Bool("insecure"),
		Output:   c.String("output"),
		Verbose:  c.Bool("verbose"),
	}
}

// newKVClient builds a line-protocol client from the global flags.
func newKVClient(flags *GlobalFlags) (*connection.Client, error) {
	client := connection.NewClient(flags.Server)
	client.SetTimeout(flags.Timeout)

	if flags.TLS {
		tlsConf, err := clientTLSConfig(flags)
		if err != nil {
			return nil, err
		}
		client.SetTLS(tlsConf)
	}

	return client, nil
}

// clientTLSConfig builds the TLS config for --tls connections. The
// trust pool starts from the system roots; --ca-file adds a custom CA.
func clientTLSConfig(flags *GlobalFlags) (*tls.Config, error) {
	pool, err := tlsroots.NewPool()
	if err != nil {
		return nil, fmt.Errorf("load system roots: %w", err)
	}

	if flags.CAFile != "" {
		if err := pool.AddCertFile(flags.CAFile); err != nil {
			return nil, err
		}
	}

	tlsConf := pool.TLSConfig()
	tlsConf.InsecureSkipVerify = flags.Insecure
	return tlsConf, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
