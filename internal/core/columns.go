package core

import "github.com/revoltmotors/leadclean/internal/schema"

// ResolveColumns maps each recognizable field to its column index. When the
// same field appears under several headers, the leftmost column wins and the
// rest are left untouched.
func ResolveColumns(headers []string) ColumnMap {
	cols := make(ColumnMap)
	for i, h := range headers {
		f := schema.Match(h)
		if f == schema.FieldUnknown {
			continue
		}
		if _, seen := cols[f]; !seen {
			cols[f] = i
		}
	}
	return cols
}

// CanonicalizeHeaders rewrites resolved headers to their canonical display
// form, leaving unrecognized columns exactly as uploaded.
func CanonicalizeHeaders(headers []string, cols ColumnMap) []string {
	out := make([]string, len(headers))
	copy(out, headers)
	for f, i := range cols {
		if i >= 0 && i < len(out) {
			out[i] = f.CanonicalHeader()
		}
	}
	return out
}
