package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterMode selects rows by their FILTER column.
type FilterMode string

const (
	FilterPass FilterMode = "PASS"
	FilterFail FilterMode = "FAIL"
)

// ParseFilterMode converts user text (case-insensitive) into a FilterMode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch m := FilterMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case FilterPass, FilterFail:
		return m, nil
	}
	return "", &QueryInputError{Op: "filter status", Message: fmt.Sprintf("mode %q must be PASS or FAIL", s)}
}

// PositionQuery is either a Single position or an inclusive Range.
type PositionQuery interface {
	bounds() (lo, hi int64)
}

// Single matches one position.
type Single struct {
	Pos int64
}

func (q Single) bounds() (int64, int64) { return q.Pos, q.Pos }

// Range matches positions between Start and End inclusive. The bounds may be
// given in either order.
type Range struct {
	Start, End int64
}

func (q Range) bounds() (int64, int64) {
	return min(q.Start, q.End), max(q.Start, q.End)
}

// ParsePosition coerces a caller-supplied position string to an integer.
func ParsePosition(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &QueryInputError{Op: "position", Message: fmt.Sprintf("%q is not an integer", s)}
	}
	return n, nil
}

// chromMatcher compares a query chromosome against rows. Numeric queries
// match the integer-coerced CHROM so "1" and "01" agree; anything else is
// compared with the raw CHROM text, which keeps X, Y and MT queryable.
func chromMatcher(chrom string) func(name string, coerced NullInt) bool {
	chrom = strings.TrimSpace(chrom)
	if n, err := strconv.ParseInt(chrom, 10, 64); err == nil {
		return func(_ string, c NullInt) bool { return c.Valid && c.Int64 == n }
	}
	return func(name string, _ NullInt) bool { return name == chrom }
}

// ListChromosomes returns the distinct raw CHROM values in first-seen order.
func (t *Table) ListChromosomes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.rows {
		c := r.ChromName()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// FilterByChromosomes returns rows whose CHROM matches any of chroms.
func (t *Table) FilterByChromosomes(chroms ...string) *Table {
	matchers := make([]func(string, NullInt) bool, len(chroms))
	for i, c := range chroms {
		matchers[i] = chromMatcher(c)
	}
	return t.where(func(r Row) bool {
		for _, m := range matchers {
			if m(r.ChromName(), r.chrom) {
				return true
			}
		}
		return false
	})
}

// FilterSnps returns rows with a single-base (or empty) REF.
func (t *Table) FilterSnps() *Table {
	return t.where(Row.IsSNP)
}

// FilterMicrosatellites returns rows whose ID starts with "micro". This is a
// naming convention of some callers' data, not a VCF classification.
func (t *Table) FilterMicrosatellites() *Table {
	return t.where(Row.IsMicrosatellite)
}

// FilterByFilterStatus returns PASS rows, or every other row for FilterFail.
func (t *Table) FilterByFilterStatus(mode FilterMode) (*Table, error) {
	switch mode {
	case FilterPass:
		return t.where(Row.Passed), nil
	case FilterFail:
		return t.where(func(r Row) bool { return !r.Passed() }), nil
	}
	return nil, &QueryInputError{Op: "filter status", Message: fmt.Sprintf("mode %q must be PASS or FAIL", string(mode))}
}

// FilterByQuality returns rows whose QUAL is numeric and at least minQual.
// Missing ('.') qualities never match.
func (t *Table) FilterByQuality(minQual float64) *Table {
	return t.where(func(r Row) bool {
		q, err := strconv.ParseFloat(r.Qual(), 64)
		return err == nil && q >= minQual
	})
}

// GetByPosition returns rows on chrom whose POS satisfies q. Rows with a null
// POS never match.
func (t *Table) GetByPosition(chrom string, q PositionQuery) (*Table, error) {
	if strings.TrimSpace(chrom) == "" {
		return nil, &QueryInputError{Op: "position lookup", Message: "chromosome is empty"}
	}
	if q == nil {
		return nil, &QueryInputError{Op: "position lookup", Message: "no position given"}
	}
	lo, hi := q.bounds()
	out := &Table{schema: t.schema}
	for _, i := range t.index.get(t.rows).lookup(chromMatcher(chrom), lo, hi) {
		out.rows = append(out.rows, t.rows[i])
	}
	return out, nil
}

// GetByPositionRange returns rows on chrom with start <= POS <= end, in
// either bound order.
func (t *Table) GetByPositionRange(chrom string, start, end int64) (*Table, error) {
	return t.GetByPosition(chrom, Range{Start: start, End: end})
}

// PartitionByChromosome splits the table by raw CHROM value. Row order is
// preserved within each partition.
func (t *Table) PartitionByChromosome() map[string]*Table {
	out := make(map[string]*Table)
	for _, r := range t.rows {
		c := r.ChromName()
		p, ok := out[c]
		if !ok {
			p = &Table{schema: t.schema}
			out[c] = p
		}
		p.rows = append(p.rows, r)
	}
	return out
}
