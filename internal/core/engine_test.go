package core

import (
	"strings"
	"testing"
	"time"

	"github.com/revoltmotors/leadclean/internal/blocklist"
)

var testToday = time.Date(2025, time.September, 21, 10, 30, 0, 0, time.UTC)

func newTestEngine(l *blocklist.Ledger) *Engine {
	return &Engine{
		Rules:      DefaultNameRules(),
		Classifier: Classifier{},
		Ledger:     l,
		Today:      testToday,
	}
}

func callsSheet(rows ...[]string) Sheet {
	return Sheet{Name: "calls", Headers: []string{"Customer Name", "Mobile Number"}, Rows: rows}
}

func trSheet(rows ...[]string) Sheet {
	return Sheet{Name: "tr_completed", Headers: []string{"Customer Name", "Mobile Number"}, Rows: rows}
}

func mobiles(sh Sheet, col int) []string {
	var out []string
	for _, r := range sh.Rows {
		out = append(out, cell(r, col))
	}
	return out
}

// A calls sheet seeds every valid number and is then filtered against the
// full ledger, so even brand-new numbers vanish from its own output.
func TestRunCallsBlocksOwnSeeds(t *testing.T) {
	l := blocklist.NewLedger()
	l.Add("9876543210", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))

	e := newTestEngine(l)
	res, err := e.Run([]Sheet{callsSheet(
		[]string{"Suraj", "9876543210"},
		[]string{"Ramesh", "9123456780"},
	)})
	if err != nil {
		t.Fatal(err)
	}

	if got := mobiles(res.Sheets[0], 1); len(got) != 0 {
		t.Fatalf("surviving mobiles = %v, want none", got)
	}
	if !l.Has("9123456780") {
		t.Error("new number not seeded into ledger")
	}

	blocked := map[string]bool{}
	for _, d := range res.Diagnostics {
		if d.Reason == ReasonBlockedNumber {
			blocked[d.Cleaned] = true
		}
	}
	if !blocked["9876543210"] || !blocked["9123456780"] {
		t.Errorf("blocked diagnostics = %v, want both numbers", blocked)
	}
}

func TestRunAfterTodayKeepsTodaysEntries(t *testing.T) {
	l := blocklist.NewLedger()
	l.Add("9000000001", time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC))
	l.Add("9000000002", time.Date(2025, time.September, 21, 0, 0, 0, 0, time.UTC))

	e := newTestEngine(l)
	res, err := e.Run([]Sheet{trSheet(
		[]string{"Old", "9000000001"},
		[]string{"Today", "9000000002"},
		[]string{"New", "9999999999"},
	)})
	if err != nil {
		t.Fatal(err)
	}

	got := mobiles(res.Sheets[0], 1)
	want := []string{"9000000002", "9999999999"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("surviving mobiles = %v, want %v", got, want)
	}
	if !l.Has("9999999999") {
		t.Error("9999999999 not seeded")
	}
}

// A number completed today seeds the ledger from tr_completed and must then
// vanish from a calls sheet later in the same workbook.
func TestRunReadYourWritesAcrossSheets(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	res, err := e.Run([]Sheet{
		trSheet([]string{"New", "9999999999"}),
		callsSheet([]string{"Same Person", "9999999999"}),
	})
	if err != nil {
		t.Fatal(err)
	}

	if n := len(res.Sheets[0].Rows); n != 1 {
		t.Errorf("tr_completed rows = %d, want 1", n)
	}
	if n := len(res.Sheets[1].Rows); n != 0 {
		t.Errorf("calls rows = %d, want 0 (seeded earlier in run)", n)
	}
	if res.NewNumbers != 1 {
		t.Errorf("NewNumbers = %d, want 1", res.NewNumbers)
	}
}

// The reverse order: today's seed from an earlier sheet never suppresses an
// after-today sheet.
func TestRunAfterTodayIgnoresSameRunSeeds(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	res, err := e.Run([]Sheet{
		callsSheet([]string{"New", "9999999999"}),
		trSheet([]string{"Same Person", "9999999999"}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Sheets[1].Rows); n != 1 {
		t.Errorf("tr_completed rows = %d, want 1 (today's seed must not block)", n)
	}
}

func TestRunPassiveFilterNeverSeeds(t *testing.T) {
	l := blocklist.NewLedger()
	l.Add("9000000001", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))

	e := newTestEngine(l)
	e.Classifier = Classifier{CallsPassive: true}
	res, err := e.Run([]Sheet{callsSheet(
		[]string{"Old", "9000000001"},
		[]string{"New", "9123456780"},
	)})
	if err != nil {
		t.Fatal(err)
	}

	got := mobiles(res.Sheets[0], 1)
	if len(got) != 1 || got[0] != "9123456780" {
		t.Fatalf("surviving mobiles = %v, want [9123456780]", got)
	}
	if l.Has("9123456780") {
		t.Error("passive sheet seeded the ledger")
	}
}

func TestRunCutoffExpiresOldEntries(t *testing.T) {
	l := blocklist.NewLedger()
	l.Add("9000000001", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	l.Add("9000000002", time.Time{}) // zero date never expires

	e := newTestEngine(l)
	e.Cutoff = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	res, err := e.Run([]Sheet{callsSheet(
		[]string{"Expired", "9000000001"},
		[]string{"Undated", "9000000002"},
	)})
	if err != nil {
		t.Fatal(err)
	}

	got := mobiles(res.Sheets[0], 1)
	if len(got) != 1 || got[0] != "9000000001" {
		t.Fatalf("surviving mobiles = %v, want [9000000001]", got)
	}
}

func TestRunIgnoredSheetPassesThrough(t *testing.T) {
	l := blocklist.NewLedger()
	l.Add("9876543210", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))

	e := newTestEngine(l)
	sheet := Sheet{
		Name:    "summary",
		Headers: []string{"Customer Name", "Mobile Number"},
		Rows: [][]string{
			{"Suraj", "9876543210"},
			{"Ramesh", "9123456780"},
		},
	}
	res, err := e.Run([]Sheet{sheet})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Sheets[0].Rows); n != 2 {
		t.Errorf("ignored sheet rows = %d, want 2", n)
	}
	if l.Has("9123456780") {
		t.Error("ignored sheet seeded the ledger")
	}
}

func TestRunIgnoredSheetStillCleansCells(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	sheet := Sheet{
		Name:    "summary",
		Headers: []string{"Customer Name", "Mobile Number"},
		Rows:    [][]string{{"S U R A J", "+919876543210"}},
	}
	res, err := e.Run([]Sheet{sheet})
	if err != nil {
		t.Fatal(err)
	}
	row := res.Sheets[0].Rows[0]
	if row[0] != "Suraj" || row[1] != "9876543210" {
		t.Errorf("cleaned row = %v, want [Suraj 9876543210]", row)
	}
}

func TestRunMissingMobileColumn(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	_, err := e.Run([]Sheet{{
		Name:    "calls",
		Headers: []string{"Customer Name", "Dealer Code"},
		Rows:    [][]string{{"Suraj", "D01"}},
	}})
	if err == nil {
		t.Fatal("want error for calls sheet without mobile column")
	}
	if !strings.Contains(err.Error(), "calls") {
		t.Errorf("error %q does not name the sheet", err)
	}
}

func TestRunRejectedMobileKeepsRow(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	res, err := e.Run([]Sheet{callsSheet([]string{"Suraj", "12345"})})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Sheets[0].Rows); n != 1 {
		t.Fatalf("rows = %d, want 1 (unkeyed row passes through)", n)
	}
	if got := res.Sheets[0].Rows[0][1]; got != "" {
		t.Errorf("rejected mobile cell = %q, want blank", got)
	}

	var found bool
	for _, d := range res.Diagnostics {
		if d.Reason == "too_short_digits:12345" {
			found = true
		}
	}
	if !found {
		t.Error("missing too_short_digits diagnostic")
	}
}

func TestRunCanonicalizesHeaders(t *testing.T) {
	e := newTestEngine(blocklist.NewLedger())
	res, err := e.Run([]Sheet{{
		Name:    "calls",
		Headers: []string{"buyer name", "mobile_no"},
		Rows:    [][]string{{"Suraj", "9876543210"}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	h := res.Sheets[0].Headers
	if h[0] != "Customer Name" || h[1] != "Mobile Number" {
		t.Errorf("headers = %v, want [Customer Name Mobile Number]", h)
	}
}

func TestCutoffFromString(t *testing.T) {
	if got := CutoffFromString(""); !got.IsZero() {
		t.Errorf("CutoffFromString(\"\") = %v, want zero", got)
	}
	want := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	if got := CutoffFromString("2025-08-01"); !got.Equal(want) {
		t.Errorf("CutoffFromString = %v, want %v", got, want)
	}
	// Unparseable cutoff disables filtering instead of failing the run.
	if got := CutoffFromString("01/08/2025"); !got.IsZero() {
		t.Errorf("CutoffFromString(non-ISO) = %v, want zero", got)
	}
}

func TestFlaggedLog(t *testing.T) {
	res := Result{Diagnostics: []Diagnostic{{
		Sheet: "calls", RowIndex: 3, Field: "mobile_number",
		Original: "12345", Cleaned: "", Reason: "too_short_digits:12345",
	}}}
	got := res.FlaggedLog()
	want := "sheet=calls row=3 field=mobile_number reason=too_short_digits:12345 original=\"12345\" cleaned=\"\"\n"
	if got != want {
		t.Errorf("FlaggedLog = %q, want %q", got, want)
	}
}
