package lpf

import "fmt"

// ParseError reports input that is not syntactically valid JSON.
// It is returned before any LPF shape checking happens, so a ParseError
// never overlaps with a ValidationError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lpf: invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports syntactically valid JSON that violates an
// LPF/GeoJSON shape or type invariant. Path locates the offending field,
// e.g. "features[3].geometry.coordinates".
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "lpf: " + e.Message
	}
	return fmt.Sprintf("lpf: %s: %s", e.Path, e.Message)
}

// errAt builds a ValidationError at the given path.
func errAt(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// joinPath appends a field name to a path prefix.
func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// indexPath appends an array index to a path prefix.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
