package core

import "strings"

// Classifier assigns a role to each sheet by its tab name. Tab names are the
// only signal: the CRM export tool names tabs consistently even when the
// columns inside drift.
type Classifier struct {
	// CallsPassive switches the calls sheet from seeding the ledger to
	// filtering only. Some teams dial leads more than once and want the
	// calls tab deduplicated without burning the numbers.
	CallsPassive bool
}

// Classify returns the role for a sheet name. Matching is case-insensitive
// on the trimmed name; tr_completed matches by prefix so dated variants like
// "tr_completed_aug" classify the same.
func (c Classifier) Classify(sheetName string) SheetRole {
	name := strings.ToLower(strings.TrimSpace(sheetName))
	switch {
	case name == "calls":
		if c.CallsPassive {
			return RolePassiveFilter
		}
		return RoleSeedAndBlock
	case strings.HasPrefix(name, "tr_completed"):
		return RoleSeedBlockAfterToday
	default:
		return RoleIgnored
	}
}
