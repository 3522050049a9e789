// Package core implements the lead-sheet cleaning engine: field
// normalization, sheet classification, and blocklist reconciliation.
// It has no I/O dependencies; callers hand it in-memory sheets and persist
// the outputs themselves.
package core

import (
	"fmt"
	"strings"

	"github.com/revoltmotors/leadclean/internal/schema"
)

// Sheet is one tab of an uploaded workbook, header row split from data rows.
// Rows are positional and may be ragged; cells beyond a row's length read as
// empty.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// ColumnMap maps canonical fields to their column index in a sheet.
type ColumnMap map[schema.Field]int

// SheetRole decides whether a sheet seeds the blocklist and how its own
// suppression filter treats same-day insertions.
type SheetRole int

const (
	// RoleIgnored sheets pass through with cell cleaning only.
	RoleIgnored SheetRole = iota

	// RoleSeedAndBlock sheets insert new numbers and are filtered against
	// the full ledger, today's insertions included.
	RoleSeedAndBlock

	// RoleSeedBlockAfterToday sheets insert new numbers but only filter
	// entries dated strictly before today, so today's completed rides
	// still appear once in today's export.
	RoleSeedBlockAfterToday

	// RolePassiveFilter sheets never insert; they filter against
	// pre-today entries only.
	RolePassiveFilter
)

func (r SheetRole) String() string {
	switch r {
	case RoleSeedAndBlock:
		return "seed_and_block_immediately"
	case RoleSeedBlockAfterToday:
		return "seed_and_block_after_today"
	case RolePassiveFilter:
		return "passive_filter_only"
	default:
		return "ignored"
	}
}

// Reason codes attached to diagnostics. Callers match on these, so they are
// stable strings rather than error values.
const (
	ReasonEmptyInput      = "empty_or_invalid_input"
	ReasonPurelyNumeric   = "purely_numeric_after_removal"
	ReasonNoValidChars    = "no_valid_characters_after_cleaning"
	ReasonTooShort        = "too_short"
	ReasonNumeric         = "numeric"
	ReasonNoVowels        = "no_vowels"
	ReasonMobileNA        = "mobile_is_na"
	ReasonUnparseableDate = "unparseable_date"
	ReasonBlockedNumber   = "blocked_number"

	// Parameterized reasons carry their detail after the colon.
	ReasonBlacklistPrefix      = "blacklist_match:"
	ReasonTooShortDigitsPrefix = "too_short_digits:"
)

// Diagnostic records one rejected field or one suppressed row.
type Diagnostic struct {
	Sheet    string
	RowIndex int // zero-based data row index within the sheet
	Field    string
	Original string
	Cleaned  string
	Reason   string
}

// Result is what one cleaning run hands back to the caller.
type Result struct {
	Sheets      []Sheet
	Diagnostics []Diagnostic
	NewNumbers  int // ledger insertions made during this run
}

// FlaggedLog renders the diagnostics as the flat text log callers persist
// alongside the cleaned workbook.
func (r Result) FlaggedLog() string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "sheet=%s row=%d field=%s reason=%s original=%q cleaned=%q\n",
			d.Sheet, d.RowIndex, d.Field, d.Reason, d.Original, d.Cleaned)
	}
	return b.String()
}

// naTokens are spreadsheet artifacts that stand in for a missing value.
// Pandas-era exports wrote literal "nan" cells; they still show up.
var naTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"none": {},
	"null": {},
	"-":    {},
}

func isNAToken(s string) bool {
	_, ok := naTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
