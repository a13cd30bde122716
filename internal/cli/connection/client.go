package connection

import (
	"bufio"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// ErrProtocol reports a reply that does not follow the line protocol.
var ErrProtocol = errors.New("connection: malformed reply")

// DefaultTimeout bounds dialing, sends, and reply reads.
const DefaultTimeout = 5 * time.Second

// Client is a TCP client for the KeyWire line protocol. It keeps one
// connection and reads exactly one reply line per command sent.
//
// Client is not safe for concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	tlsConf *tls.Config

	conn net.Conn
	br   *bufio.Reader
}

// NewClient creates a client for the server at addr.
func NewClient(addr string) *Client {
	return &Client{addr: addr, timeout: DefaultTimeout}
}

// SetTimeout overrides the default I/O timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// SetTLS makes the client dial over TLS with the given config.
// Passing nil reverts to plain TCP.
func (c *Client) SetTLS(cfg *tls.Config) {
	c.tlsConf = cfg
}

// Addr returns the server address the client targets.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server.
func (c *Client) Connect() error {
	var (
		conn net.Conn
		err  error
	)
	if c.tlsConf != nil {
		dialer := &net.Dialer{Timeout: c.timeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", c.addr, c.tlsConf)
	} else {
		conn, err = net.DialTimeout("tcp", c.addr, c.timeout)
	}
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	return nil
}

// Close closes the connection. Closing an unconnected client is a no-op.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.br = nil
	return err
}

// Execute sends one command line and returns the reply with the line
// terminator stripped. It connects on first use.
func (c *Client) Execute(cmd string) (string, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return "", err
		}
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", err
	}

	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}

	reply, err := c.br.ReadString('\n')
	if err != nil {
		if reply != "" {
			return "", fmt.Errorf("%w: %q is not terminated", ErrProtocol, reply)
		}
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// Ping measures one request/reply round trip. The server has no PING
// verb, so any well-formed reply (here an unknown-command error) counts
// as proof of liveness.
func (c *Client) Ping() (time.Duration, error) {
	start := time.Now()
	if _, err := c.Execute("PING"); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
