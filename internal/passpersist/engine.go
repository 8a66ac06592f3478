package passpersist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	constants "snmpagent/config"
	"snmpagent/internal/logger"
)

// ErrUnknownMetric is returned by Query for names not in the registry
var ErrUnknownMetric = errors.New(constants.REPLY_UNKNOWN_METRIC)

// Engine dispatches parsed requests against a registry.
// It is not safe for concurrent Handle calls; the protocol is strictly
// one request, one reply.
type Engine struct {
	registry *Registry
	state    *AgentState
	log      *logger.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for request tracing and faults
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine takes ownership of reg and seals it
func NewEngine(reg *Registry, state *AgentState, opts ...Option) *Engine {
	reg.Seal()
	e := &Engine{
		registry: reg,
		state:    state,
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the engine's counters
func (e *Engine) State() *AgentState {
	return e.state
}

// Registry returns the sealed registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Handle processes one input line. The boolean is false when the line
// produces no reply.
func (e *Engine) Handle(line string) (string, bool) {
	req, ok := ParseRequest(line)
	if !ok {
		return "", false
	}
	return e.Dispatch(req), true
}

// Dispatch produces the reply for a parsed request. Provider errors and
// panics are faults: they bump the error counter and become "Error: <msg>".
func (e *Engine) Dispatch(req Request) (reply string) {
	switch req.Kind {
	case RequestPing:
		return constants.REPLY_PONG
	case RequestInvalid:
		e.log.Debug("invalid request: %q", req.Tokens)
		return constants.REPLY_INVALID_REQUEST
	}

	e.state.countRequest()

	defer func() {
		if r := recover(); r != nil {
			reply = e.fault(req, fmt.Errorf("%v", r))
		}
	}()

	var err error
	switch req.Kind {
	case RequestGet:
		reply, err = e.get(req.OID)
	case RequestSet:
		reply = e.set(req)
	}
	if err != nil {
		return e.fault(req, err)
	}

	e.log.Debug("%s %s -> %s", req.Kind, req.OID, reply)
	return reply
}

func (e *Engine) get(oid string) (string, error) {
	b, ok := e.registry.Resolve(oid)
	if !ok {
		return formatReply(oid, constants.REPLY_NO_SUCH_INSTANCE), nil
	}

	v, err := b.Get()
	if err != nil {
		return "", err
	}
	return formatReply(oid, v.String()), nil
}

func (e *Engine) set(req Request) string {
	if !req.HasValue {
		return constants.REPLY_SET_REJECTED
	}

	b, ok := e.registry.Resolve(req.OID)
	if !ok || !b.Writable() || !b.Set(req.Value) {
		return constants.REPLY_SET_REJECTED
	}

	e.log.Info("SET %s (%s) = %s", req.OID, b.Name, req.Value)
	return formatReply(req.OID, req.Value)
}

func (e *Engine) fault(req Request, err error) string {
	e.state.countError()
	e.log.Error("%s %s failed: %v", req.Kind, req.OID, err)
	return formatFault(err.Error())
}

// Query resolves a metric by name and returns its raw value, without the
// "<oid> = " prefix. It does not count as a protocol request.
func (e *Engine) Query(name string) (string, error) {
	b, ok := e.registry.Lookup(name)
	if !ok {
		return "", ErrUnknownMetric
	}

	v, err := b.Get()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Serve reads requests from r and writes replies to w until EOF or until
// ctx is cancelled. Lines are dispatched one at a time on the calling
// goroutine; a cancelled context stops the loop before the next line.
// Lines have no length limit. When r blocks, the reading goroutine outlives
// a cancelled call until r returns.
func (e *Engine) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	out := NewResponseWriter(w)
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		in := bufio.NewReader(r)
		for {
			line, err := in.ReadString('\n')
			if line != "" {
				select {
				case lines <- trimEOL(line):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read request: %w", err)
				default:
				}
				return ctx.Err()
			}

			reply, ok := e.Handle(line)
			if !ok {
				continue
			}
			if err := out.WriteLine(reply); err != nil {
				return fmt.Errorf("failed to write reply: %w", err)
			}
		}
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
