package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revoltmotors/leadclean/internal/blocklist"
)

// RunRecord summarizes one completed cleaning run for later retrieval.
type RunRecord struct {
	ID          string
	Result      Result
	TotalRows   int
	RemovedRows int
	StartedAt   time.Time
}

// Cleaner owns the ledger store and runs cleaning passes serially. Runs are
// serialized because each pass reads and rewrites the same ledger file.
type Cleaner struct {
	store      *blocklist.Store
	rules      NameRules
	classifier Classifier
	cutoff     time.Time
	now        func() time.Time

	mu   sync.Mutex
	runs map[string]*RunRecord
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithCutoff expires ledger entries dated before t.
func WithCutoff(t time.Time) Option {
	return func(c *Cleaner) { c.cutoff = t }
}

// WithNameRules overrides the stock name-cleaning fixtures.
func WithNameRules(r NameRules) Option {
	return func(c *Cleaner) { c.rules = r }
}

// WithCallsPassive makes the calls sheet filter-only.
func WithCallsPassive(passive bool) Option {
	return func(c *Cleaner) { c.classifier.CallsPassive = passive }
}

// WithClock overrides the time source. Tests pin "today" with this.
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) { c.now = now }
}

// NewCleaner builds a Cleaner over the given ledger store.
func NewCleaner(store *blocklist.Store, opts ...Option) *Cleaner {
	c := &Cleaner{
		store: store,
		rules: DefaultNameRules(),
		now:   time.Now,
		runs:  make(map[string]*RunRecord),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean loads the ledger, runs the engine over sheets, persists the updated
// ledger, and records the run. The ledger is only written back when the
// whole pass succeeds.
func (c *Cleaner) Clean(ctx context.Context, sheets []Sheet) (*RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	started := c.now()
	ledger, err := c.store.Load(truncateDay(started))
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	eng := &Engine{
		Rules:      c.rules,
		Classifier: c.classifier,
		Ledger:     ledger,
		Today:      started,
		Cutoff:     c.cutoff,
	}
	result, err := eng.Run(sheets)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	rec := &RunRecord{
		ID:        uuid.New().String(),
		Result:    result,
		StartedAt: started,
	}
	kept := 0
	for _, sh := range sheets {
		rec.TotalRows += len(sh.Rows)
	}
	for _, sh := range result.Sheets {
		kept += len(sh.Rows)
	}
	rec.RemovedRows = rec.TotalRows - kept

	c.runs[rec.ID] = rec
	return rec, nil
}

// Run returns a previously completed run by ID.
func (c *Cleaner) Run(id string) (*RunRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.runs[id]
	return rec, ok
}

// Blocklist returns the current ledger contents from disk.
func (c *Cleaner) Blocklist() ([]blocklist.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.store.Load(truncateDay(c.now()))
	if err != nil {
		return nil, err
	}
	return l.Entries(), nil
}
