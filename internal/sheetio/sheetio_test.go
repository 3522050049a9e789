package sheetio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revoltmotors/leadclean/internal/core"
)

func TestReadCSV(t *testing.T) {
	input := "Customer Name,Mobile Number\nSuraj,9876543210\nRamesh,9123456780\n"
	sheets, err := Read("calls.csv", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(sheets))
	}
	sh := sheets[0]
	if sh.Name != "calls" {
		t.Errorf("sheet name = %q, want calls", sh.Name)
	}
	if len(sh.Headers) != 2 || sh.Headers[0] != "Customer Name" {
		t.Errorf("headers = %v", sh.Headers)
	}
	if len(sh.Rows) != 2 || sh.Rows[1][0] != "Ramesh" {
		t.Errorf("rows = %v", sh.Rows)
	}
}

func TestReadCSVRagged(t *testing.T) {
	input := "A,B,C\n1,2\n1,2,3,4\n"
	sheets, err := Read("x.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ragged csv rejected: %v", err)
	}
	if len(sheets[0].Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(sheets[0].Rows))
	}
}

func TestReadEmptyCSV(t *testing.T) {
	sheets, err := Read("empty.csv", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 1 || sheets[0].Headers != nil || sheets[0].Rows != nil {
		t.Errorf("sheets = %+v, want one empty sheet", sheets)
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	if _, err := Read("leads.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("want error for unsupported extension")
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	in := []core.Sheet{
		{
			Name:    "calls",
			Headers: []string{"Customer Name", "Mobile Number"},
			Rows:    [][]string{{"Suraj", "9876543210"}},
		},
		{
			Name:    "tr_completed",
			Headers: []string{"Customer Name", "Mobile Number", "trcompleteddate"},
			Rows: [][]string{
				{"Ramesh", "9123456780", "21st September"},
				{"Amit", "9000000001", ""},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatal(err)
	}

	out, err := Read("cleaned.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("sheets = %d, want 2", len(out))
	}
	if out[0].Name != "calls" || out[1].Name != "tr_completed" {
		t.Errorf("sheet names = %q, %q", out[0].Name, out[1].Name)
	}
	if out[0].Rows[0][1] != "9876543210" {
		t.Errorf("calls row = %v", out[0].Rows[0])
	}
	if out[1].Rows[0][2] != "21st September" {
		t.Errorf("date cell = %q, want text preserved", out[1].Rows[0][2])
	}
}

func TestWriteLongSheetName(t *testing.T) {
	name := strings.Repeat("tr_completed_", 5) // 65 chars
	var buf bytes.Buffer
	err := Write(&buf, []core.Sheet{{Name: name, Headers: []string{"A"}}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read("x.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].Name; len(got) != 31 {
		t.Errorf("sheet name %q has %d chars, want 31", got, len(got))
	}
}
