// Package blocklist persists the set of mobile numbers already handed to the
// calling team, with the date each number was first seen. The ledger is a
// plain CSV so operators can inspect and hand-edit it.
package blocklist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the on-disk format of the DateAdded column.
const DateLayout = "2006-01-02"

var header = []string{"Mobile Number", "DateAdded"}

// Ledger is the in-memory blocklist for one cleaning run. It preserves
// insertion order so rewrites are stable, and counts insertions made after
// load so a run can report how many numbers it contributed.
type Ledger struct {
	entries map[string]time.Time
	order   []string
	added   int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]time.Time)}
}

// Has reports whether number is present, regardless of date.
func (l *Ledger) Has(number string) bool {
	_, ok := l.entries[number]
	return ok
}

// DateAdded returns the recorded date for number. The zero time means the
// entry exists but its date was missing or unreadable.
func (l *Ledger) DateAdded(number string) (time.Time, bool) {
	t, ok := l.entries[number]
	return t, ok
}

// Add inserts number with the given date. Re-adding an existing number is a
// no-op: the first recorded date is authoritative.
func (l *Ledger) Add(number string, date time.Time) bool {
	return l.add(number, date, true)
}

func (l *Ledger) add(number string, date time.Time, counted bool) bool {
	if number == "" {
		return false
	}
	if _, ok := l.entries[number]; ok {
		return false
	}
	l.entries[number] = date
	l.order = append(l.order, number)
	if counted {
		l.added++
	}
	return true
}

// Len returns the number of distinct entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Added returns how many entries were inserted via Add since load.
func (l *Ledger) Added() int { return l.added }

// Entry is one ledger row in insertion order.
type Entry struct {
	Number string
	Date   time.Time
}

// Entries returns all rows in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, n := range l.order {
		out = append(out, Entry{Number: n, Date: l.entries[n]})
	}
	return out
}

// Store reads and writes the ledger CSV at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store for the ledger file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file path.
func (s *Store) Path() string { return s.path }

// Load reads the ledger from disk. A missing file yields an empty ledger.
//
// Two historical formats are accepted: the current two-column form and the
// original single-column number list. Legacy rows have no date, so they are
// stamped with runDate — treating them as seen today keeps them blocking on
// every sheet without letting them match any before-today filter twice.
// Duplicate numbers keep their first row.
func (s *Store) Load(runDate time.Time) (*Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open blocklist: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	l := NewLedger()
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read blocklist %s: %w", s.path, err)
		}
		if first {
			first = false
			if isHeaderRow(rec) {
				continue
			}
		}
		if len(rec) == 0 {
			continue
		}
		number := strings.TrimSpace(rec[0])
		if number == "" {
			continue
		}

		var date time.Time
		if len(rec) > 1 {
			// Unreadable dates degrade to the zero time: the number
			// still blocks, it just never counts as before-today.
			if t, err := time.Parse(DateLayout, strings.TrimSpace(rec[1])); err == nil {
				date = t
			}
		} else {
			date = runDate
		}
		l.add(number, date, false)
	}
	return l, nil
}

// Save rewrites the ledger file in full, two columns, insertion order.
// Zero dates are written as an empty cell.
func (s *Store) Save(l *Ledger) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".blocklist-*.csv")
	if err != nil {
		return fmt.Errorf("create blocklist temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write blocklist header: %w", err)
	}
	for _, e := range l.Entries() {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(DateLayout)
		}
		if err := w.Write([]string{e.Number, date}); err != nil {
			tmp.Close()
			return fmt.Errorf("write blocklist row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush blocklist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close blocklist temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace blocklist: %w", err)
	}
	return nil
}

// isHeaderRow detects a header by letters in the first cell; data cells are
// all digits.
func isHeaderRow(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	for _, r := range rec[0] {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
