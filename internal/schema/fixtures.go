package schema

// DefaultJunkNames is the junk-name blacklist applied after cleaning.
// Entries match by exact equality, case-insensitive — never substring, so a
// real "Leader" or "Ramesh" is never caught by "lead" or "ram ram".
// Extend via CLEAN_EXTRA_JUNK_NAMES rather than editing in place.
var DefaultJunkNames = []string{
	// placeholders
	"na", "n a", "none", "null", "nil", "no name", "noname", "unknown",
	"abc", "abcd", "xyz", "asdf", "aaa", "bbb", "xxx",
	// test and dummy records
	"test", "testing", "test lead", "dummy", "demo", "sample",
	// lead-source markers pasted into the name field
	"lead", "new lead", "hot lead", "fresh lead", "enquiry", "inquiry",
	"customer", "user", "admin",
	// spam markers
	"spam", "fake", "wrong number", "not interested",
	// religious exclamations typed in place of a name
	"jai shree ram", "jai shri ram", "om namah shivaya", "ram ram",
	"ok", "yes", "no",
}

// DefaultModelTokens are product model codes that leak into the name field
// from ad-form autofill. Longer codes come first so "rv400 brz" is removed
// before "rv400" can split it.
var DefaultModelTokens = []string{
	"rv400 brz", "rv400brz", "rv400", "rv 400",
	"rv blazex", "blazex",
	"rv1+", "rv1",
	"revolt",
}
