package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
)

// fakeSource is an in-memory journal. Events can be appended mid-test to
// simulate the worker journaling while a client streams.
type fakeSource struct {
	mu     sync.Mutex
	run    *ent.Run
	events []*ent.RunEvent
}

func newFakeSource(runID string) *fakeSource {
	return &fakeSource{
		run: &ent.Run{ID: runID, Status: run.StatusRunning},
	}
}

func (s *fakeSource) GetRun(_ context.Context, runID string) (*ent.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil || s.run.ID != runID {
		return nil, services.ErrNotFound
	}
	return s.run, nil
}

func (s *fakeSource) ListEvents(_ context.Context, runID string, afterSeq, _ int) ([]*ent.RunEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ent.RunEvent
	for _, ev := range s.events {
		if ev.RunID == runID && ev.Seq > afterSeq {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *fakeSource) append(seq int, eventType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, &ent.RunEvent{
		RunID:     s.run.ID,
		Seq:       seq,
		EventType: eventType,
		Payload:   map[string]interface{}{"type": eventType},
	})
}

type fakeFeed struct {
	ch     chan string
	closed atomic.Bool
}

func (f *fakeFeed) Channel() <-chan string { return f.ch }

func (f *fakeFeed) Close() error {
	f.closed.Store(true)
	return nil
}

// publish encodes a frame onto the feed the way the coordinator would.
func (f *fakeFeed) publish(t *testing.T, seq int, eventType string) {
	t.Helper()
	raw, err := models.EventFrame{
		Seq:       seq,
		EventType: eventType,
		Payload:   map[string]interface{}{"type": eventType},
	}.Encode()
	require.NoError(t, err)
	select {
	case f.ch <- raw:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out publishing to feed")
	}
}

type fakeSubscriber struct {
	feed *fakeFeed
}

func (s *fakeSubscriber) Subscribe(context.Context, string) (LiveFeed, error) {
	return s.feed, nil
}

// captureWriter records emitted frames and comments.
type captureWriter struct {
	mu       sync.Mutex
	frames   []models.EventFrame
	comments []string
}

func (w *captureWriter) WriteEvent(frame models.EventFrame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames = append(w.frames, frame)
	return nil
}

func (w *captureWriter) WriteComment(comment string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.comments = append(w.comments, comment)
	return nil
}

func (w *captureWriter) frameCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

func (w *captureWriter) seqs() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]int, len(w.frames))
	for i, f := range w.frames {
		out[i] = f.Seq
	}
	return out
}

func (w *captureWriter) commentCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.comments)
}

func newTestReader(source RunSource, feed *fakeFeed, heartbeat time.Duration) *Reader {
	return NewReader(source, &fakeSubscriber{feed: feed}, config.StreamConfig{
		HeartbeatInterval: heartbeat,
	})
}

// startStream runs Stream in the background and returns its result channel.
func startStream(ctx context.Context, r *Reader, w FrameWriter, runID string, afterSeq int) <-chan error {
	done := make(chan error, 1)
	go func() { done <- r.Stream(ctx, w, runID, afterSeq) }()
	return done
}

func awaitFrames(t *testing.T, w *captureWriter, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return w.frameCount() >= n },
		5*time.Second, 5*time.Millisecond, "waiting for %d frames", n)
}

func awaitStream(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stream to end")
		return nil
	}
}

func TestReaderReplayThenLive(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	source.append(2, "assistant.delta")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)
	awaitFrames(t, w, 2)

	// The live tail picks up exactly where the replay stopped.
	feed.publish(t, 3, "assistant.message")
	feed.publish(t, 4, models.EventRunCompleted)

	require.NoError(t, awaitStream(t, done))
	assert.Equal(t, []int{1, 2, 3, 4}, w.seqs())
	assert.True(t, feed.closed.Load(), "feed must be closed when the stream ends")
}

func TestReaderReplayedTerminalEndsStream(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.message")
	source.append(2, models.EventRunCompleted)
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	// The run is already over; the stream ends without touching the live
	// channel.
	err := r.Stream(context.Background(), w, "run-1", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, w.seqs())
	assert.True(t, feed.closed.Load())
}

func TestReaderResumesAfterSeq(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	source.append(2, "assistant.delta")
	source.append(3, "assistant.message")
	source.append(4, models.EventRunCompleted)
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	err := r.Stream(context.Background(), w, "run-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, w.seqs(), "frames at or before after_seq are not replayed")
}

func TestReaderDropsDuplicateLiveFrames(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)
	awaitFrames(t, w, 1)

	// A frame the replay already delivered arrives on the live channel.
	feed.publish(t, 1, "assistant.delta")
	feed.publish(t, 2, models.EventRunCompleted)

	require.NoError(t, awaitStream(t, done))
	assert.Equal(t, []int{1, 2}, w.seqs(), "duplicate live frames must be dropped")
}

func TestReaderHealsGapFromJournal(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)
	awaitFrames(t, w, 1)

	// The journal has moved to seq 3 but the live channel only delivers
	// seq 3: the reader must fetch 2 and 3 from the journal.
	source.append(2, "assistant.delta")
	source.append(3, "assistant.message")
	feed.publish(t, 3, "assistant.message")

	awaitFrames(t, w, 3)
	assert.Equal(t, []int{1, 2, 3}, w.seqs())

	// The healed watermark lines up with the live tail again.
	feed.publish(t, 4, models.EventRunCompleted)
	require.NoError(t, awaitStream(t, done))
	assert.Equal(t, []int{1, 2, 3, 4}, w.seqs())
}

func TestReaderHealedTerminalEndsStream(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)
	awaitFrames(t, w, 1)

	// The gap covers the run's end: the heal replays through the terminal
	// event and stops there.
	source.append(2, "assistant.message")
	source.append(3, models.EventRunCompleted)
	feed.publish(t, 3, models.EventRunCompleted)

	require.NoError(t, awaitStream(t, done))
	assert.Equal(t, []int{1, 2, 3}, w.seqs())
}

func TestReaderHeartbeat(t *testing.T) {
	source := newFakeSource("run-1")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := startStream(ctx, r, w, "run-1", 0)

	require.Eventually(t, func() bool { return w.commentCount() >= 2 },
		5*time.Second, 5*time.Millisecond, "waiting for heartbeats")

	cancel()
	require.NoError(t, awaitStream(t, done))

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.comments {
		assert.Equal(t, "ping", c)
	}
	assert.Empty(t, w.frames, "an idle run produces only heartbeats")
}

func TestReaderUnknownRun(t *testing.T) {
	source := newFakeSource("run-1")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	err := r.Stream(context.Background(), w, "no-such-run", 0)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.False(t, feed.closed.Load(), "no subscription is opened for a missing run")
}

func TestReaderClientDisconnect(t *testing.T) {
	source := newFakeSource("run-1")
	source.append(1, "assistant.delta")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := startStream(ctx, r, w, "run-1", 0)
	awaitFrames(t, w, 1)

	cancel()
	require.NoError(t, awaitStream(t, done), "disconnect is a normal end")
	assert.True(t, feed.closed.Load())
}

func TestReaderLiveChannelClosed(t *testing.T) {
	source := newFakeSource("run-1")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)

	// Give the reader a moment to enter the live loop, then drop the feed.
	time.Sleep(20 * time.Millisecond)
	close(feed.ch)

	err := awaitStream(t, done)
	require.Error(t, err, "a dead live channel ends the stream with an error so the client reconnects")
}

func TestReaderDropsUndecodableFrames(t *testing.T) {
	source := newFakeSource("run-1")
	feed := &fakeFeed{ch: make(chan string, 16)}
	w := &captureWriter{}
	r := newTestReader(source, feed, time.Hour)

	done := startStream(context.Background(), r, w, "run-1", 0)

	feed.ch <- "not json"
	feed.publish(t, 1, models.EventRunCompleted)

	require.NoError(t, awaitStream(t, done))
	assert.Equal(t, []int{1}, w.seqs(), "garbage on the live channel is skipped")
}
