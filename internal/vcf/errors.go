package vcf

import (
	"errors"
	"fmt"
)

// StructuralError reports input whose shape invalidates the whole load: a
// malformed structured meta-line or a data row whose field count differs from
// the column header.
type StructuralError struct {
	Line    int
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("vcf structural error at line %d: %s", e.Line, e.Message)
}

// CoercionWarning records a CHROM or POS cell that did not parse as an
// integer and was stored as null.
type CoercionWarning struct {
	Line   int
	Column string
	Value  string
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("line %d: %s value %q is not an integer", w.Line, w.Column, w.Value)
}

// QueryInputError reports an invalid argument passed to a query operation.
type QueryInputError struct {
	Op      string
	Message string
}

func (e *QueryInputError) Error() string {
	return fmt.Sprintf("vcf %s: %s", e.Op, e.Message)
}

func structuralf(line int, format string, args ...any) error {
	return &StructuralError{Line: line, Message: fmt.Sprintf(format, args...)}
}

var (
	errMissingID = errors.New("first attribute must be ID")
	errEmptyID   = errors.New("ID is empty")
)

type attrError struct {
	name, value, want string
}

func (e *attrError) Error() string {
	return fmt.Sprintf("%s=%q is not %s", e.name, e.value, e.want)
}
