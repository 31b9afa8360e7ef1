package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/signadot/mcpline/jsonrpc"
)

const (
	// defaultQueueSize bounds the outgoing queue. A full queue suspends the
	// next sender instead of growing memory.
	defaultQueueSize = 128

	// maxLineBytes caps a single inbound message line.
	maxLineBytes = 8 << 20
)

// Client is a running JSON-RPC session. It is safe for concurrent use; any
// number of goroutines may issue requests at once.
type Client struct {
	log *slog.Logger

	rc io.ReadCloser  // peer's stdout (inbound)
	wc io.WriteCloser // peer's stdin (outbound)

	// cmd is the spawned subprocess, nil for stream sessions. It is killed
	// on Close on a best-effort basis.
	cmd    *exec.Cmd
	stderr io.Writer
	env    []string

	outgoing  chan *jsonrpc.Message
	queueSize int

	// pending maps an in-flight request id to its single-use waiter. closed
	// flips once the read loop exits; registrations after that fail fast.
	mu      sync.Mutex
	pending map[int64]chan *jsonrpc.Message
	closed  bool

	// idSeq generates request ids, strictly increasing from 1 and scoped to
	// this session.
	idSeq atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
	reapOnce  sync.Once
	wg        sync.WaitGroup
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for loop-level events (dropped lines, unmatched
// replies, write failures). Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithQueueSize sets the outgoing queue capacity. Values below 1 keep the
// default of 128.
func WithQueueSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithStderr redirects the subprocess's stderr, which is otherwise
// discarded. It has no effect on stream sessions.
func WithStderr(w io.Writer) Option {
	return func(c *Client) {
		c.stderr = w
	}
}

// WithEnv appends KEY=value entries to the subprocess's inherited
// environment. It has no effect on stream sessions.
func WithEnv(env []string) Option {
	return func(c *Client) {
		c.env = env
	}
}

// NewStream establishes a session over an already connected byte-stream
// pair: rc carries inbound messages from the peer, wc outbound messages to
// it. The client owns both halves and closes them on Close.
func NewStream(rc io.ReadCloser, wc io.WriteCloser, opts ...Option) *Client {
	c := &Client{
		rc:        rc,
		wc:        wc,
		queueSize: defaultQueueSize,
		pending:   make(map[int64]chan *jsonrpc.Message),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.outgoing = make(chan *jsonrpc.Message, c.queueSize)

	c.wg.Go(c.readLoop)
	c.wg.Go(c.writeLoop)
	return c
}

// Close tears the session down: it stops the writer, closes both stream
// halves, kills the subprocess (if any) on a best-effort basis, and waits
// for both loops. In-flight calls resolve to ErrClosed. Close is idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.wc.Close()
		c.rc.Close()
		if c.cmd != nil && c.cmd.Process != nil {
			_ = c.cmd.Process.Kill()
		}
	})
	c.wg.Wait()
	c.reapOnce.Do(func() {
		if c.cmd != nil {
			_ = c.cmd.Wait()
		}
	})
	return nil
}

// Notify enqueues a notification. There is no reply to wait for; the error
// only reports a torn-down session or ctx expiring while the queue is full.
func (c *Client) Notify(ctx context.Context, method string, params any) error {
	raw, err := marshalParams(params)
	if err != nil {
		return &MarshalError{Method: method, Err: err}
	}
	return c.enqueue(ctx, jsonrpc.NewNotification(method, raw))
}

// call sends a request and awaits the raw result addressed to its id.
func (c *Client) call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	id := c.idSeq.Add(1)
	waiter := make(chan *jsonrpc.Message, 1)

	// Register before sending so a reply that arrives immediately cannot
	// race ahead of its own registration.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = waiter
	c.mu.Unlock()

	msg := jsonrpc.NewRequest(jsonrpc.Int64ID(id), method, params)
	if err := c.enqueue(ctx, msg); err != nil {
		c.forget(id)
		return nil, err
	}

	select {
	case reply, ok := <-waiter:
		if !ok {
			// The read loop exited and swept the table.
			return nil, ErrClosed
		}
		if reply.Error != nil {
			return nil, reply.Error
		}
		return reply.Result, nil
	case <-ctx.Done():
		// The request is already on the wire. The entry stays registered so
		// a late reply can drain it through the buffered waiter; there is no
		// active expiry sweep (see the package documentation).
		return nil, ctx.Err()
	}
}

// enqueue places a message on the outgoing queue, suspending the caller
// while the queue is full.
func (c *Client) enqueue(ctx context.Context, msg *jsonrpc.Message) error {
	select {
	case c.outgoing <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// forget drops a pending entry whose request never made it onto the wire.
func (c *Client) forget(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// writeLoop is the sole consumer of the outgoing queue and the sole writer
// of the outbound stream. Each message is written as one line and reaches
// the peer immediately; pipes are unbuffered. An unencodable message is
// dropped; a failed write ends the loop, leaving the session write-dead.
func (c *Client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.outgoing:
			data, err := json.Marshal(msg)
			if err != nil {
				c.log.Error("failed to encode message", "method", msg.Method, "error", err)
				continue
			}
			if _, err := c.wc.Write(append(data, '\n')); err != nil {
				if !c.shuttingDown() {
					c.log.Error("failed to write message", "error", err)
				}
				return
			}
		}
	}
}

// readLoop is the sole reader of the inbound stream. One line is one
// message; a corrupt line is logged and skipped. Replies are routed to the
// pending table, everything else is logged. When the loop ends, remaining
// waiters are failed so no caller hangs.
func (c *Client) readLoop() {
	defer c.failPending()

	sc := bufio.NewScanner(c.rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '[' {
			// Batches are not part of the stdio transport.
			c.log.Info("dropping batch message", "line", string(line))
			continue
		}
		var msg jsonrpc.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			c.log.Error("failed to decode message", "error", err, "line", string(line))
			continue
		}
		switch msg.Kind() {
		case jsonrpc.KindResponse, jsonrpc.KindError:
			c.dispatch(&msg)
		case jsonrpc.KindNotification:
			c.log.Info("notification", "method", msg.Method)
		default:
			c.log.Info("dropping unexpected message", "kind", msg.Kind().String(), "id", msg.ID.String())
		}
	}
	if err := sc.Err(); err != nil && !c.shuttingDown() {
		c.log.Error("read error", "error", err)
	}
}

// dispatch completes the waiter registered under the reply's id.
func (c *Client) dispatch(msg *jsonrpc.Message) {
	id, ok := msg.ID.Int64()
	if !ok {
		// This client only issues integer ids, so a string id can never
		// match a pending entry.
		c.log.Warn("reply with non-integer id", "id", msg.ID.String())
		return
	}

	c.mu.Lock()
	waiter, found := c.pending[id]
	if found {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !found {
		c.log.Warn("no pending request for reply", "id", id)
		return
	}
	// Cap-1 channel: never blocks, even if the caller abandoned the call.
	waiter <- msg
}

// failPending marks the table closed and fails every remaining waiter, so
// callers observe ErrClosed instead of waiting forever. Runs exactly once,
// when the read loop exits.
func (c *Client) failPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, waiter := range c.pending {
		close(waiter)
		delete(c.pending, id)
	}
}

func (c *Client) shuttingDown() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// marshalParams encodes params for the wire. A nil value, or one that
// encodes to JSON null, yields a nil slice so the params field is omitted
// entirely rather than sent as an explicit null.
func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	return data, nil
}
