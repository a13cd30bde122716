package kvserver

import (
	"strings"
	"time"

	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
	"github.com/yndnr/keywire-go/internal/telemetry/metric"
)

// Verbs understood by the dispatch loop.
const (
	VerbGet    = "GET"
	VerbSet    = "SET"
	VerbDelete = "DELETE"
)

// unknownVerbLabel is the metric label shared by all unrecognized
// verbs, keeping label cardinality bounded.
const unknownVerbLabel = "UNKNOWN"

// CommandHandler dispatches parsed commands against the store.
type CommandHandler struct {
	store   *store.Store
	logger  logger.Logger
	metrics *metric.Metrics
}

// NewCommandHandler creates a CommandHandler over the given store.
func NewCommandHandler(st *store.Store, log logger.Logger, metrics *metric.Metrics) *CommandHandler {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.New()
	}

	return &CommandHandler{
		store:   st,
		logger:  log,
		metrics: metrics,
	}
}

// Handle executes one command and writes its reply into the connection
// buffer. The caller flushes. Replies never close the connection here;
// only I/O and protocol-limit errors in the serve loop do that.
func (h *CommandHandler) Handle(conn *Conn, verb string, args []string) {
	start := time.Now()

	label := verb
	var ok bool
	switch verb {
	case VerbGet:
		ok = h.handleGet(conn, args)
	case VerbSet:
		ok = h.handleSet(conn, args)
	case VerbDelete:
		ok = h.handleDelete(conn, args)
	default:
		// Covers unknown verbs and blank lines alike.
		label = unknownVerbLabel
		h.logger.Debug("unknown command", "verb", verb)
		_ = WriteError(conn.bw, "Unknown command")
	}

	status := metric.StatusOK
	if !ok {
		status = metric.StatusError
	}
	h.metrics.ObserveCommand(label, status, time.Since(start).Seconds())
}

// GET <key>
func (h *CommandHandler) handleGet(conn *Conn, args []string) bool {
	if len(args) != 1 {
		_ = WriteError(conn.bw, wrongArity(VerbGet))
		return false
	}

	v, found := h.store.Get(args[0])
	if !found {
		_ = WriteNil(conn.bw)
		return true
	}
	_ = WriteValue(conn.bw, v)
	return true
}

// SET <key> <value...>
//
// Everything after the key forms the value; runs of whitespace between
// value words collapse to single spaces.
func (h *CommandHandler) handleSet(conn *Conn, args []string) bool {
	if len(args) < 2 {
		_ = WriteError(conn.bw, wrongArity(VerbSet))
		return false
	}

	h.store.Set(args[0], strings.Join(args[1:], " "))
	_ = WriteOK(conn.bw)
	return true
}

// DELETE <key>
func (h *CommandHandler) handleDelete(conn *Conn, args []string) bool {
	if len(args) != 1 {
		_ = WriteError(conn.bw, wrongArity(VerbDelete))
		return false
	}

	if h.store.Delete(args[0]) {
		_ = WriteInt(conn.bw, 1)
		return true
	}
	_ = WriteInt(conn.bw, 0)
	return true
}

func wrongArity(verb string) string {
	return "wrong number of arguments for '" + verb + "'"
}
