// Package schema defines the canonical field roles found in lead sheets and
// the header spellings that map to them. Exports from the dealer CRM arrive
// with wildly inconsistent headers; everything downstream works against the
// canonical roles instead.
package schema

import "strings"

// Field identifies a canonical column role in a lead sheet.
type Field int

const (
	FieldUnknown Field = iota
	FieldMobile
	FieldCustomerName
	FieldTRCompletedDate
	FieldTRScheduledActual
	FieldOpportunityID
)

// String returns the machine-readable role name used in diagnostics.
func (f Field) String() string {
	switch f {
	case FieldMobile:
		return "mobile_number"
	case FieldCustomerName:
		return "customer_name"
	case FieldTRCompletedDate:
		return "tr_completed_date"
	case FieldTRScheduledActual:
		return "tr_scheduled_actual"
	case FieldOpportunityID:
		return "opportunity_id"
	default:
		return "unknown"
	}
}

// CanonicalHeader returns the display header written to cleaned output.
// The lowercase date headers match what the downstream feedback templates
// expect.
func (f Field) CanonicalHeader() string {
	switch f {
	case FieldMobile:
		return "Mobile Number"
	case FieldCustomerName:
		return "Customer Name"
	case FieldTRCompletedDate:
		return "trcompleteddate"
	case FieldTRScheduledActual:
		return "trscheduleactual"
	case FieldOpportunityID:
		return "Opportunity ID"
	default:
		return ""
	}
}

// resolvable lists the fields Match considers, in a fixed order so that a
// header matching two roles resolves the same way every run.
var resolvable = []Field{
	FieldMobile,
	FieldCustomerName,
	FieldTRCompletedDate,
	FieldTRScheduledActual,
	FieldOpportunityID,
}

// Synonyms lists the normalized header spellings accepted for each field.
// Matching is exact on the normalized form, never substring.
var Synonyms = map[Field][]string{
	FieldMobile: {
		"mobilenumber", "mobileno", "mobile",
		"phonenumber", "phoneno", "phone",
		"contactnumber", "contactno",
	},
	FieldCustomerName: {
		"customername", "buyername", "custname", "name",
	},
	FieldTRCompletedDate: {
		"trcompleteddate", "trcompleted", "testridecompleteddate",
	},
	FieldTRScheduledActual: {
		"testridedateandtimeactual", "trscheduleactual",
		"trscheduledactual", "testridescheduledactual",
	},
	FieldOpportunityID: {
		"opportunityid", "opportunityno", "oppid",
	},
}

// NormalizeHeader lowercases a raw header and strips spaces, underscores and
// hyphens, so "Mobile_Number", "mobile number" and "MOBILE-NUMBER" all
// resolve identically.
func NormalizeHeader(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case ' ', '\t', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Match returns the canonical field for a raw header, or FieldUnknown.
func Match(header string) Field {
	key := NormalizeHeader(header)
	if key == "" {
		return FieldUnknown
	}
	for _, f := range resolvable {
		for _, syn := range Synonyms[f] {
			if key == syn {
				return f
			}
		}
	}
	return FieldUnknown
}
