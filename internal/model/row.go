package model

// nullLiteral is what the admin interface prints for SQL NULL in silent mode.
const nullLiteral = "NULL"

// Row is a single result row from an admin query: positional string fields in
// the column order of the query that produced it. A field holding "NULL" or
// the empty string represents SQL NULL.
type Row []string

// Field returns the field at index i, or "" when i is out of range or the
// field is null. Callers index rows positionally, so out-of-range access must
// degrade to an empty value rather than panic.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	if r[i] == nullLiteral {
		return ""
	}
	return r[i]
}

// IsNull reports whether the field at index i is SQL NULL, empty, or absent.
func (r Row) IsNull(i int) bool {
	return r.Field(i) == ""
}
