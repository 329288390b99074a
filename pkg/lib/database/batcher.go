package database

import (
	"context"
	"time"

	"github.com/cheggaaa/mb/v3"
)

// RecordsBatcher coalesces rapid record pushes so the view pipeline
// recomputes once per burst instead of once per keystroke of every
// collaborator. Reads drain everything queued, then pause briefly to let
// the next burst pack.
type RecordsBatcher struct {
	batcher   *mb.MB[Record]
	packDelay time.Duration
}

func NewRecordsBatcher(packDelay time.Duration) *RecordsBatcher {
	return &RecordsBatcher{
		batcher:   mb.New[Record](0),
		packDelay: packDelay,
	}
}

func (r *RecordsBatcher) Add(ctx context.Context, recs ...Record) error {
	return r.batcher.Add(ctx, recs...)
}

// Read blocks until at least one record is queued and returns the whole
// batch. A nil result means the batcher was closed.
func (r *RecordsBatcher) Read(ctx context.Context) []Record {
	defer func() {
		if r.packDelay > 0 {
			time.Sleep(r.packDelay)
		}
	}()
	recs, err := r.batcher.Wait(ctx)
	if err != nil {
		return nil
	}
	return recs
}

func (r *RecordsBatcher) Close() error {
	return r.batcher.Close()
}
