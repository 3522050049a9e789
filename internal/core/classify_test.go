package core

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  SheetRole
	}{
		{"calls", "calls", RoleSeedAndBlock},
		{"calls uppercase", "CALLS", RoleSeedAndBlock},
		{"calls padded", " Calls ", RoleSeedAndBlock},
		{"tr completed exact", "tr_completed", RoleSeedBlockAfterToday},
		{"tr completed dated", "tr_completed_aug", RoleSeedBlockAfterToday},
		{"tr completed upper", "TR_COMPLETED", RoleSeedBlockAfterToday},
		{"unknown sheet", "Sheet1", RoleIgnored},
		{"summary sheet", "summary", RoleIgnored},
		{"near miss", "tr_complete", RoleIgnored},
		{"calls plural", "callsheet", RoleIgnored},
	}

	var c Classifier
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.sheet); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.sheet, got, tt.want)
			}
		})
	}
}

func TestClassifyCallsPassive(t *testing.T) {
	c := Classifier{CallsPassive: true}
	if got := c.Classify("calls"); got != RolePassiveFilter {
		t.Errorf("Classify(calls) with CallsPassive = %v, want RolePassiveFilter", got)
	}
	if got := c.Classify("tr_completed"); got != RoleSeedBlockAfterToday {
		t.Errorf("Classify(tr_completed) with CallsPassive = %v, want RoleSeedBlockAfterToday", got)
	}
}
