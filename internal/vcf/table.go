package vcf

import (
	"strconv"
	"strings"
	"unicode"
)

// Fixed column names of the #CHROM header line.
const (
	ColChrom  = "#CHROM"
	ColPos    = "POS"
	ColID     = "ID"
	ColRef    = "REF"
	ColAlt    = "ALT"
	ColQual   = "QUAL"
	ColFilter = "FILTER"
	ColInfo   = "INFO"
)

var fixedColumns = []string{ColChrom, ColPos, ColID, ColRef, ColAlt, ColQual, ColFilter, ColInfo}

// NullInt is an integer cell that may be missing.
type NullInt struct {
	Int64 int64
	Valid bool
}

func (n NullInt) String() string {
	if !n.Valid {
		return "NA"
	}
	return strconv.FormatInt(n.Int64, 10)
}

// parseOptionalInt coerces s to an integer, returning a null value instead
// of an error when s is not one.
func parseOptionalInt(s string) NullInt {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return NullInt{}
	}
	return NullInt{Int64: n, Valid: true}
}

// Schema is the column layout taken from the #CHROM header line.
type Schema struct {
	columns []string
	index   map[string]int

	chrom, pos, id, ref, alt, qual, filter, info int
}

func newSchema(l numberedLine) (*Schema, error) {
	columns := strings.Split(l.text, "\t")
	last := len(columns) - 1
	columns[last] = strings.TrimRightFunc(columns[last], unicode.IsSpace)

	s := &Schema{columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := s.index[c]; dup {
			return nil, structuralf(l.no, "duplicate column %q", c)
		}
		s.index[c] = i
	}
	// Accept a header written without the leading '#'.
	if _, ok := s.index[ColChrom]; !ok {
		if i, ok := s.index["CHROM"]; ok {
			s.index[ColChrom] = i
		}
	}

	targets := []*int{&s.chrom, &s.pos, &s.id, &s.ref, &s.alt, &s.qual, &s.filter, &s.info}
	for i, name := range fixedColumns {
		idx, ok := s.index[name]
		if !ok {
			return nil, structuralf(l.no, "column header is missing %s", name)
		}
		*targets[i] = idx
	}
	return s, nil
}

// Columns returns the column names in file order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// SampleNames returns the columns after FORMAT, or nil if there are none.
func (s *Schema) SampleNames() []string {
	i, ok := s.index["FORMAT"]
	if !ok || i+1 >= len(s.columns) {
		return nil
	}
	return append([]string(nil), s.columns[i+1:]...)
}

// Row is one data line of a VCF file.
type Row struct {
	schema *Schema
	fields []string
	line   int
	chrom  NullInt
	pos    NullInt
}

// Field accessors return raw column text; Chrom and Pos return the
// integer-coerced cells.
func (r Row) Line() int { return r.line }
func (r Row) Chrom() NullInt { return r.chrom }
func (r Row) Pos() NullInt { return r.pos }
func (r Row) ChromName() string { return r.fields[r.schema.chrom] }
func (r Row) ID() string { return r.fields[r.schema.id] }
func (r Row) Ref() string { return r.fields[r.schema.ref] }
func (r Row) Alt() string { return r.fields[r.schema.alt] }
func (r Row) Qual() string { return r.fields[r.schema.qual] }
func (r Row) Filter() string { return r.fields[r.schema.filter] }
func (r Row) Info() string { return r.fields[r.schema.info] }
func (r Row) Fields() []string { return append([]string(nil), r.fields...) }
func (r Row) IsSNP() bool { return len(r.Ref()) < 2 }
func (r Row) IsMicrosatellite() bool { return strings.HasPrefix(r.ID(), "micro") }
func (r Row) Passed() bool { return r.Filter() == "PASS" }

// Value returns the raw text of the named column.
func (r Row) Value(column string) (string, bool) {
	i, ok := r.schema.index[column]
	if !ok {
		return "", false
	}
	return r.fields[i], true
}

// Samples returns the columns after INFO (FORMAT and samples), unparsed.
func (r Row) Samples() []string {
	i := r.schema.info + 1
	if i >= len(r.fields) {
		return nil
	}
	return append([]string(nil), r.fields[i:]...)
}

// Table is an ordered, read-only set of rows sharing one schema. Query
// operations return new tables and never modify the receiver.
type Table struct {
	schema *Schema
	rows   []Row
	index  lazyIndex
}

// Schema returns the column layout.
func (t *Table) Schema() *Schema { return t.schema }

// Columns returns the column names in file order.
func (t *Table) Columns() []string { return t.schema.Columns() }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns a copy of the rows in order.
func (t *Table) Rows() []Row { return append([]Row(nil), t.rows...) }

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	i, ok := t.schema.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.rows))
	for j, r := range t.rows {
		out[j] = r.fields[i]
	}
	return out, true
}

func (t *Table) where(keep func(Row) bool) *Table {
	out := &Table{schema: t.schema}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// parseRow splits one data line against the schema.
func parseRow(s *Schema, l numberedLine) (Row, []CoercionWarning, error) {
	fields := strings.Split(l.text, "\t")
	if len(fields) != len(s.columns) {
		return Row{}, nil, structuralf(l.no, "expected %d columns, found %d", len(s.columns), len(fields))
	}

	r := Row{
		schema: s,
		fields: fields,
		line:   l.no,
		chrom:  parseOptionalInt(fields[s.chrom]),
		pos:    parseOptionalInt(fields[s.pos]),
	}

	var warnings []CoercionWarning
	if !r.chrom.Valid {
		warnings = append(warnings, CoercionWarning{Line: l.no, Column: ColChrom, Value: fields[s.chrom]})
	}
	if !r.pos.Valid {
		warnings = append(warnings, CoercionWarning{Line: l.no, Column: ColPos, Value: fields[s.pos]})
	}
	return r, warnings, nil
}

// parseRows parses data lines sequentially.
func parseRows(s *Schema, lines []numberedLine) ([]Row, []CoercionWarning, error) {
	rows := make([]Row, 0, len(lines))
	var warnings []CoercionWarning
	for _, l := range lines {
		r, w, err := parseRow(s, l)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, r)
		warnings = append(warnings, w...)
	}
	return rows, warnings, nil
}
