package metaio

import "fmt"

// SchemaViolationError indicates a record that cannot be mapped to the fixed
// schema. It is raised on the encode path, before any byte is written, and
// aborts the whole batch.
type SchemaViolationError struct {
	Field string // schema field, e.g. "waveform_kwargs"
	Key   string // offending map key, if any
	Kind  Kind   // the unsupported kind encountered
}

func (e *SchemaViolationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("schema violation: field %s key %q has unsupported kind %s", e.Field, e.Key, e.Kind)
	}
	return fmt.Sprintf("schema violation: field %s", e.Field)
}

// CorruptDataError indicates a stored record that cannot be unambiguously
// reconstructed. It names the row and the offending key; the decoder never
// guesses a merge order.
type CorruptDataError struct {
	Row    int64
	Key    string
	Detail string
}

func (e *CorruptDataError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("corrupt data at row %d: key %q %s", e.Row, e.Key, e.Detail)
	}
	return fmt.Sprintf("corrupt data at row %d: %s", e.Row, e.Detail)
}

// UnsupportedVersionError indicates a file whose layout stamp does not match
// SchemaVersion, or a file carrying no stamp at all. Decoding such a file
// row by row could silently misread it, so the reader refuses up front.
type UnsupportedVersionError struct {
	Path    string
	Version string // raw stamp; empty when the file carries none
}

func (e *UnsupportedVersionError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("file %s carries no schema version stamp, want version %d", e.Path, SchemaVersion)
	}
	return fmt.Sprintf("file %s has schema version %s, want %d", e.Path, e.Version, SchemaVersion)
}

// OutOfRangeError indicates a single-row decode outside the stored table.
// It reports both the requested index and the valid bound.
type OutOfRangeError struct {
	Index int64
	Rows  int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("row index %d out of range [0, %d)", e.Index, e.Rows)
}
