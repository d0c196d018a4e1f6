package repo

import (
	"context"
	"time"

	"sellerbot/internal/platform/store"
	"sellerbot/internal/services/observer/domain"
)

const journalTable = "feedback_journal"

const journalDDL = `CREATE TABLE IF NOT EXISTS feedback_journal (
    ts          DateTime,
    place       LowCardinality(String),
    kind        LowCardinality(String),
    feedback_id String,
    product_id  String,
    question    String,
    answer      String,
    published   UInt8,
    latency_ms  UInt32,
    error       String
) ENGINE = MergeTree
ORDER BY (place, kind, ts)`

// Entry is one journal row
type Entry struct {
	At      time.Time
	Answer  domain.Answer
	Latency time.Duration
	Err     error
}

// Journal appends processed feedback to clickhouse; a nil Journal drops entries
type Journal struct {
	ch store.Clickhouse
}

// NewJournal returns nil when ch is nil
func NewJournal(ch store.Clickhouse) *Journal {
	if ch == nil {
		return nil
	}
	return &Journal{ch: ch}
}

// Ensure creates the journal table
func (j *Journal) Ensure(ctx context.Context) error {
	if j == nil {
		return nil
	}
	return j.ch.Exec(ctx, journalDDL)
}

// Record appends e
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if j == nil {
		return nil
	}
	var published uint8
	if e.Answer.Published {
		published = 1
	}
	errText := ""
	if e.Err != nil {
		errText = e.Err.Error()
	}
	return j.ch.Insert(ctx, journalTable, [][]any{{
		e.At.UTC(),
		e.Answer.Place,
		string(e.Answer.Kind),
		e.Answer.FeedbackID,
		e.Answer.ProductID,
		e.Answer.Question,
		e.Answer.Answer,
		published,
		uint32(e.Latency.Milliseconds()),
		errText,
	}})
}
