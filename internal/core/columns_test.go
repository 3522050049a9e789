package core

import (
	"testing"

	"github.com/revoltmotors/leadclean/internal/schema"
)

func TestResolveColumns(t *testing.T) {
	headers := []string{"Opportunity ID", "Buyer Name", "Mobile Number", "Dealer Code", "TR Completed Date"}
	cols := ResolveColumns(headers)

	want := ColumnMap{
		schema.FieldOpportunityID:   0,
		schema.FieldCustomerName:    1,
		schema.FieldMobile:          2,
		schema.FieldTRCompletedDate: 4,
	}
	if len(cols) != len(want) {
		t.Fatalf("ResolveColumns returned %d fields, want %d: %v", len(cols), len(want), cols)
	}
	for f, i := range want {
		if cols[f] != i {
			t.Errorf("cols[%v] = %d, want %d", f, cols[f], i)
		}
	}
}

func TestResolveColumnsLeftmostWins(t *testing.T) {
	headers := []string{"Mobile Number", "Phone No"}
	cols := ResolveColumns(headers)
	if got := cols[schema.FieldMobile]; got != 0 {
		t.Errorf("cols[FieldMobile] = %d, want 0", got)
	}
}

func TestCanonicalizeHeaders(t *testing.T) {
	headers := []string{"mobile_no", "buyer name", "Dealer Code", "Test Ride Date and Time Actual"}
	cols := ResolveColumns(headers)
	got := CanonicalizeHeaders(headers, cols)

	want := []string{"Mobile Number", "Customer Name", "Dealer Code", "trscheduleactual"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
