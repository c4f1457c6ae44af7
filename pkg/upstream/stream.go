package upstream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// initialLineBuffer and maxLineBytes bound how large a single NDJSON
	// line may grow before the stream is considered corrupt.
	initialLineBuffer = 64 * 1024
	maxLineBytes      = 10 * 1024 * 1024
)

// Stream is a lazy reader over the NDJSON event stream of one turn.
//
// The underlying connection is closed on every exit path: normal end of
// stream, consumer Close, context cancellation, and idle timeout. An idle
// watchdog closes the body when the upstream stalls for longer than the
// configured timeout, which surfaces as ErrTimeout from Next.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	logger  *slog.Logger

	idleTimeout  time.Duration
	lastActivity atomic.Int64 // UnixNano of the last successful read
	timedOut     atomic.Bool
	closed       atomic.Bool
	closeOnce    sync.Once
	closeErr     error
	stop         chan struct{}
	stopOnce     sync.Once
}

// activityReader feeds the line scanner through the stream's read
// bookkeeping so every read resets the idle timer.
type activityReader struct {
	s *Stream
}

func (r activityReader) Read(p []byte) (int, error) { return r.s.read(p) }

func newStream(ctx context.Context, body io.ReadCloser, idleTimeout time.Duration, logger *slog.Logger) *Stream {
	s := &Stream{
		body:        body,
		ctx:         ctx,
		logger:      logger,
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
	}
	s.lastActivity.Store(time.Now().UnixNano())

	scanner := bufio.NewScanner(activityReader{s})
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineBytes)
	s.scanner = scanner

	go s.watchContext()
	if idleTimeout > 0 {
		go s.watchIdle()
	}
	return s
}

// Next returns the next parsed event object from the stream. Non-object
// JSON values and unparseable lines are discarded; a trailing line without
// a newline is still delivered. It returns io.EOF at the normal end of the
// stream and ErrTimeout when the upstream stalled.
func (s *Stream) Next() (map[string]interface{}, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var event map[string]interface{}
		if err := json.Unmarshal(line, &event); err != nil {
			s.logger.Debug("Discarding unparseable stream line", "error", err)
			continue
		}
		if event == nil {
			// JSON null decodes into a nil map.
			continue
		}
		return event, nil
	}

	err := s.scanner.Err()
	switch {
	case s.timedOut.Load():
		return nil, fmt.Errorf("%w: no data within %s", ErrTimeout, s.idleTimeout)
	case err == nil:
		return nil, io.EOF
	case s.ctx.Err() != nil:
		return nil, fmt.Errorf("turn stream interrupted: %w", s.ctx.Err())
	default:
		return nil, fmt.Errorf("read turn stream: %w", err)
	}
}

// read tracks activity for the idle watchdog.
func (s *Stream) read(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, io.EOF
	}
	n, err := s.body.Read(p)
	if n > 0 {
		s.lastActivity.Store(time.Now().UnixNano())
	}
	return n, err
}

// watchContext closes the body when the turn context ends, unblocking any
// pending read.
func (s *Stream) watchContext() {
	select {
	case <-s.ctx.Done():
		s.closeBody()
	case <-s.stop:
	}
}

// watchIdle closes the body when the upstream stops sending for longer
// than the idle timeout. Checks run on a coarse interval rather than per
// read.
func (s *Stream) watchIdle() {
	interval := s.idleTimeout / 4
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	if interval > 30*time.Second {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			if s.closed.Load() {
				return
			}
			idle := time.Since(time.Unix(0, s.lastActivity.Load()))
			if idle > s.idleTimeout {
				s.logger.Warn("Upstream stream stalled, closing connection",
					"idle", idle.Round(time.Millisecond),
					"limit", s.idleTimeout)
				s.timedOut.Store(true)
				s.closeBody()
				return
			}
		}
	}
}

func (s *Stream) closeBody() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.body.Close()
	})
}

// Close releases the underlying connection and stops the watchdog
// goroutines. Safe to call multiple times and after Next returned an
// error.
func (s *Stream) Close() error {
	s.closeBody()
	s.stopOnce.Do(func() { close(s.stop) })
	return s.closeErr
}
