package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/revoltmotors/leadclean/internal/blocklist"
	"github.com/revoltmotors/leadclean/internal/schema"
)

// Engine runs one cleaning pass over a workbook against a loaded ledger.
// Sheets are processed in workbook order and each sheet sees every ledger
// insertion made before it, rows from its own sheet included.
type Engine struct {
	Rules      NameRules
	Classifier Classifier
	Ledger     *blocklist.Ledger

	// Today anchors the before-today suppression window. Entries dated
	// today never suppress rows on after-today sheets.
	Today time.Time

	// Cutoff, when set, expires ledger entries dated strictly before it:
	// expired numbers stop blocking everywhere. Zero-dated entries never
	// expire because there is no way to tell when they were added.
	Cutoff time.Time
}

// CutoffFromString parses an operator-supplied cutoff date. Empty or
// unparseable input disables cutoff filtering rather than failing the run.
func CutoffFromString(s string) time.Time {
	t, err := time.Parse(blocklist.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Run cleans and reconciles all sheets. The returned Result carries the
// rewritten sheets in input order; the ledger mutations are visible to the
// caller through e.Ledger.
func (e *Engine) Run(sheets []Sheet) (Result, error) {
	var res Result
	for _, sh := range sheets {
		out, diags, err := e.processSheet(sh)
		if err != nil {
			return Result{}, err
		}
		res.Sheets = append(res.Sheets, out)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	res.NewNumbers = e.Ledger.Added()
	return res, nil
}

func (e *Engine) processSheet(sh Sheet) (Sheet, []Diagnostic, error) {
	cols := ResolveColumns(sh.Headers)
	role := e.Classifier.Classify(sh.Name)

	mobileCol, hasMobile := cols[schema.FieldMobile]
	if role != RoleIgnored && !hasMobile {
		return Sheet{}, nil, fmt.Errorf("sheet %q (%s): no mobile number column found", sh.Name, role)
	}

	out := Sheet{
		Name:    sh.Name,
		Headers: CanonicalizeHeaders(sh.Headers, cols),
	}

	var diags []Diagnostic
	rows := make([][]string, len(sh.Rows))
	for i, row := range sh.Rows {
		rows[i] = e.cleanRow(sh.Name, i, row, cols, &diags)
	}

	if role == RoleIgnored {
		out.Rows = rows
		return out, diags, nil
	}

	// All of a sheet's insertions land before its filter runs, so the
	// sheet's own numbers participate in its suppression set. On calls
	// sheets that means a number is suppressed in the very run that
	// introduced it.
	if role == RoleSeedAndBlock || role == RoleSeedBlockAfterToday {
		for _, row := range rows {
			if number := cell(row, mobileCol); number != "" {
				e.Ledger.Add(number, truncateDay(e.Today))
			}
		}
	}

	for i, row := range rows {
		number := cell(row, mobileCol)
		if number == "" {
			// No usable key; the row passes through with its
			// rejection already logged by cleanRow.
			out.Rows = append(out.Rows, row)
			continue
		}
		if e.blocked(number, role) {
			diags = append(diags, Diagnostic{
				Sheet:    sh.Name,
				RowIndex: i,
				Field:    schema.FieldMobile.String(),
				Original: cell(sh.Rows[i], mobileCol),
				Cleaned:  number,
				Reason:   ReasonBlockedNumber,
			})
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, diags, nil
}

// blocked decides whether a ledger entry suppresses a row for the given
// role. Expiry via Cutoff applies first; after-today and passive sheets
// additionally require the entry to predate Today.
func (e *Engine) blocked(number string, role SheetRole) bool {
	date, ok := e.Ledger.DateAdded(number)
	if !ok {
		return false
	}
	if !e.Cutoff.IsZero() && !date.IsZero() && date.Before(e.Cutoff) {
		return false
	}
	switch role {
	case RoleSeedAndBlock:
		return true
	case RoleSeedBlockAfterToday, RolePassiveFilter:
		return !date.IsZero() && date.Before(truncateDay(e.Today))
	default:
		return false
	}
}

// cleanRow normalizes every resolved cell in place and logs rejections.
// Rejected cells are blanked so downstream consumers never see raw junk.
func (e *Engine) cleanRow(sheetName string, rowIdx int, row []string, cols ColumnMap, diags *[]Diagnostic) []string {
	out := make([]string, len(row))
	copy(out, row)

	clean := func(f schema.Field, fn func(string) (string, string)) {
		idx, ok := cols[f]
		if !ok || idx >= len(out) {
			return
		}
		orig := out[idx]
		cleaned, reason := fn(orig)
		out[idx] = cleaned
		if reason != "" {
			*diags = append(*diags, Diagnostic{
				Sheet:    sheetName,
				RowIndex: rowIdx,
				Field:    f.String(),
				Original: orig,
				Cleaned:  cleaned,
				Reason:   reason,
			})
		}
	}

	clean(schema.FieldMobile, CleanMobile)
	clean(schema.FieldCustomerName, e.Rules.CleanName)
	clean(schema.FieldTRCompletedDate, CleanDate)
	clean(schema.FieldTRScheduledActual, CleanDate)
	return out
}

// cell reads a column from a possibly ragged row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
