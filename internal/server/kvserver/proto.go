package kvserver

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLineLen limits the length of a single request line (64KB).
// Keys and values are expected to be small; the cap bounds per-connection
// memory and cuts off peers that never send a newline.
const MaxLineLen = 64 * 1024

// ErrLimitExceeded reports a request line over MaxLineLen.
var ErrLimitExceeded = errors.New("kvserver: limit exceeded")

// ReadCommand reads one newline-terminated request line and splits it
// into an upper-cased verb and its arguments. A blank line yields an
// empty verb and nil args.
func ReadCommand(r *bufio.Reader) (verb string, args []string, err error) {
	line, err := readLine(r, MaxLineLen)
	if err != nil {
		return "", nil, err
	}
	verb, args = ParseLine(line)
	return verb, args, nil
}

// ParseLine splits a request line on runs of whitespace. The first
// field is the verb, upper-cased; the remaining fields are returned
// verbatim.
func ParseLine(line string) (verb string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return normalizeVerb(fields[0]), fields[1:]
}

func normalizeVerb(tok string) string {
	// Uppercase ASCII without allocating for already uppercased tokens.
	if strings.ContainsAny(tok, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(tok)
	}
	return tok
}

// readLine reads until '\n', enforcing maxLen on the raw line. The
// trailing newline and any '\r' before it are stripped.
func readLine(r *bufio.Reader, maxLen int) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return "", fmt.Errorf("%w: line exceeds %d bytes", ErrLimitExceeded, maxLen)
			}
			continue
		}
		return "", err
	}

	if len(buf) > maxLen {
		return "", fmt.Errorf("%w: line exceeds %d bytes", ErrLimitExceeded, maxLen)
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

// WriteOK writes the SET acknowledgement.
func WriteOK(w *bufio.Writer) error {
	_, err := w.WriteString("OK\n")
	return err
}

// WriteValue writes a stored value reply.
func WriteValue(w *bufio.Writer, v string) error {
	_, err := w.WriteString(v + "\n")
	return err
}

// WriteNil writes the missing-key reply for GET.
func WriteNil(w *bufio.Writer) error {
	_, err := w.WriteString("(nil)\n")
	return err
}

// WriteInt writes an integer reply (DELETE's 1 or 0).
func WriteInt(w *bufio.Writer, n int) error {
	_, err := w.WriteString(strconv.Itoa(n) + "\n")
	return err
}

// WriteError writes an error reply. The message goes out verbatim
// after the "ERROR: " prefix.
func WriteError(w *bufio.Writer, msg string) error {
	_, err := w.WriteString("ERROR: " + msg + "\n")
	return err
}
