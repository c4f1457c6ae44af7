// Package stream merges journal replay with the live event channel into a
// single resumable feed for one client. The journal is authoritative: live
// frames only ever fast-path what the journal already holds, and any frame
// the live channel skips or duplicates is reconciled against it.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/models"
)

// RunSource is the journal surface the reader replays and heals from.
type RunSource interface {
	GetRun(ctx context.Context, runID string) (*ent.Run, error)
	ListEvents(ctx context.Context, runID string, afterSeq, limit int) ([]*ent.RunEvent, error)
}

// LiveFeed is one live-channel subscription. Channel carries encoded event
// frames and is closed when the feed ends.
type LiveFeed interface {
	Channel() <-chan string
	Close() error
}

// Subscriber opens live feeds on a run's event channel.
type Subscriber interface {
	Subscribe(ctx context.Context, runID string) (LiveFeed, error)
}

// FrameWriter is where the reader emits. Implementations own the wire
// format (SSE data frames and comments) and must flush every write so
// frames reach the client immediately.
type FrameWriter interface {
	WriteEvent(frame models.EventFrame) error
	WriteComment(comment string) error
}

// heartbeatComment is written to idle streams so intermediaries keep the
// connection open.
const heartbeatComment = "ping"

// Reader streams a run's journal to clients: replay from a resume point,
// then the live tail, deduplicated and gap-healed by seq.
type Reader struct {
	source    RunSource
	subs      Subscriber
	heartbeat time.Duration
}

// NewReader creates a stream reader.
func NewReader(source RunSource, subs Subscriber, cfg config.StreamConfig) *Reader {
	return &Reader{
		source:    source,
		subs:      subs,
		heartbeat: cfg.HeartbeatInterval,
	}
}

// Stream drives one client session: replay journaled events with
// seq > afterSeq, then follow the live channel until a terminal event is
// delivered or ctx ends. Returns ErrNotFound from the source when the run
// does not exist; a nil return means the stream ended normally (terminal
// event or client disconnect).
func (r *Reader) Stream(ctx context.Context, w FrameWriter, runID string, afterSeq int) error {
	if _, err := r.source.GetRun(ctx, runID); err != nil {
		return err
	}

	// Subscribing before the replay closes the gap between the journal
	// read and the first live receive: anything published in between is
	// buffered on the feed and deduplicated by seq.
	feed, err := r.subs.Subscribe(ctx, runID)
	if err != nil {
		return fmt.Errorf("subscribing to run %s: %w", runID, err)
	}
	defer func() { _ = feed.Close() }()

	watermark, done, err := r.replay(ctx, w, runID, afterSeq)
	if err != nil || done {
		return err
	}

	return r.follow(ctx, w, runID, feed, watermark)
}

// replay emits the journal from afterSeq and reports the new watermark. A
// terminal event in the replayed range ends the stream: the run is already
// over and nothing further can be journaled.
func (r *Reader) replay(ctx context.Context, w FrameWriter, runID string, afterSeq int) (int, bool, error) {
	events, err := r.source.ListEvents(ctx, runID, afterSeq, 0)
	if err != nil {
		return afterSeq, false, fmt.Errorf("replaying run %s: %w", runID, err)
	}

	watermark := afterSeq
	for _, ev := range events {
		if err := w.WriteEvent(models.NewEventFrame(ev)); err != nil {
			return watermark, false, err
		}
		watermark = ev.Seq
		if models.IsTerminalEventType(ev.EventType) {
			return watermark, true, nil
		}
	}
	return watermark, false, nil
}

// follow relays the live channel, dropping frames at or below the
// watermark and healing gaps from the journal. Publishes follow journal
// commits, so a frame that outruns the watermark means the journal already
// has everything in between.
func (r *Reader) follow(ctx context.Context, w FrameWriter, runID string, feed LiveFeed, watermark int) error {
	ticker := time.NewTicker(r.heartbeat)
	defer ticker.Stop()

	log := slog.With("run_id", runID)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if err := w.WriteComment(heartbeatComment); err != nil {
				return err
			}

		case raw, ok := <-feed.Channel():
			if !ok {
				return errors.New("live channel closed")
			}
			frame, err := models.DecodeEventFrame(raw)
			if err != nil {
				log.Warn("Dropping undecodable live frame", "error", err)
				continue
			}

			switch {
			case frame.Seq <= watermark:
				// Already delivered during replay or an earlier heal.

			case frame.Seq == watermark+1:
				if err := w.WriteEvent(frame); err != nil {
					return err
				}
				watermark = frame.Seq
				if models.IsTerminalEventType(frame.EventType) {
					return nil
				}

			default:
				// The live channel skipped ahead (dropped frames or a
				// slow subscriber); resync from the journal. The frame in
				// hand is part of the healed range and is not re-emitted.
				newWatermark, done, err := r.replay(ctx, w, runID, watermark)
				if err != nil {
					return err
				}
				watermark = newWatermark
				if done {
					return nil
				}
			}
		}
	}
}
