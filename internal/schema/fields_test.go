package schema

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "mobilenumber", "mobilenumber"},
		{"spaces stripped", "Mobile Number", "mobilenumber"},
		{"underscores stripped", "mobile_number", "mobilenumber"},
		{"hyphens stripped", "MOBILE-NUMBER", "mobilenumber"},
		{"mixed separators", " Test Ride_Date-and Time Actual ", "testridedateandtimeactual"},
		{"empty", "", ""},
		{"only separators", " _- ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Field
	}{
		{"mobile exact", "Mobile Number", FieldMobile},
		{"mobile synonym", "Phone No", FieldMobile},
		{"buyer name", "Buyer Name", FieldCustomerName},
		{"customer name", "CUSTOMER_NAME", FieldCustomerName},
		{"bare name", "Name", FieldCustomerName},
		{"tr completed", "TR Completed Date", FieldTRCompletedDate},
		{"tr scheduled long form", "Test Ride Date and Time Actual", FieldTRScheduledActual},
		{"opportunity", "Opportunity ID", FieldOpportunityID},
		{"unknown header", "Dealer Code", FieldUnknown},
		{"no substring match", "mobilenumberbackup", FieldUnknown},
		{"empty", "", FieldUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.header); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	if got := FieldMobile.String(); got != "mobile_number" {
		t.Errorf("FieldMobile.String() = %q, want %q", got, "mobile_number")
	}
	if got := FieldUnknown.String(); got != "unknown" {
		t.Errorf("FieldUnknown.String() = %q, want %q", got, "unknown")
	}
}
