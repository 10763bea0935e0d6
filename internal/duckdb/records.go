package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcfkit/internal/vcf"
)

// Record is an indexed VCF data row.
type Record struct {
	Source   string
	Line     int64
	Chrom    string
	ChromNum sql.NullInt64
	Pos      sql.NullInt64
	ID       string
	Ref      string
	Alt      string
	Qual     string
	Filter   string
	Info     string
	Samples  string // columns after INFO, tab-joined
}

// WriteTable replaces the indexed records of fp with the rows of t using the
// Appender API, then records fp's fingerprint.
func (s *Store) WriteTable(fp FileFingerprint, t *vcf.Table) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE source=?`, fp.Path); err != nil {
		return fmt.Errorf("clear source records: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "records")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if err := appender.AppendRow(
			fp.Path, int64(r.Line()), r.ChromName(), nullable(r.Chrom()), nullable(r.Pos()),
			r.ID(), r.Ref(), r.Alt(), r.Qual(), r.Filter(), r.Info(),
			strings.Join(r.Samples(), "\t"),
		); err != nil {
			appender.Close()
			return fmt.Errorf("append record: %w", err)
		}
	}
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}

	return s.recordSource(fp, t.Len())
}

func nullable(n vcf.NullInt) driver.Value {
	if !n.Valid {
		return nil
	}
	return n.Int64
}

// chromClause mirrors vcf chromosome matching: numeric queries compare the
// coerced column, anything else the raw text.
func chromClause(chrom string) (string, any) {
	chrom = strings.TrimSpace(chrom)
	if n, err := strconv.ParseInt(chrom, 10, 64); err == nil {
		return "chrom_num=?", n
	}
	return "chrom=?", chrom
}

// QueryRange returns records on chrom with POS between start and end
// inclusive, in either bound order.
func (s *Store) QueryRange(chrom string, start, end int64) ([]Record, error) {
	clause, arg := chromClause(chrom)
	rows, err := s.db.Query(`SELECT `+recordColumns+` FROM records
		WHERE `+clause+` AND pos BETWEEN ? AND ?
		ORDER BY source, line`, arg, min(start, end), max(start, end))
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// QueryFilterStatus returns PASS records, or every other record for
// vcf.FilterFail.
func (s *Store) QueryFilterStatus(mode vcf.FilterMode) ([]Record, error) {
	var cond string
	switch mode {
	case vcf.FilterPass:
		cond = "filter = 'PASS'"
	case vcf.FilterFail:
		cond = "filter <> 'PASS'"
	default:
		return nil, &vcf.QueryInputError{Op: "filter status", Message: fmt.Sprintf("mode %q must be PASS or FAIL", string(mode))}
	}

	rows, err := s.db.Query(`SELECT ` + recordColumns + ` FROM records WHERE ` + cond + ` ORDER BY source, line`)
	if err != nil {
		return nil, fmt.Errorf("query filter status: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountByChromosome returns the number of indexed records per raw CHROM.
func (s *Store) CountByChromosome() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT chrom, count(*) FROM records GROUP BY chrom`)
	if err != nil {
		return nil, fmt.Errorf("count by chromosome: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			chrom string
			n     int64
		)
		if err := rows.Scan(&chrom, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[chrom] = n
	}
	return counts, rows.Err()
}

const recordColumns = `source, line, chrom, chrom_num, pos, id, ref, alt, qual, filter, info, samples`

// scanRecords scans rows into Record slices.
func scanRecords(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.Source, &r.Line, &r.Chrom, &r.ChromNum, &r.Pos,
			&r.ID, &r.Ref, &r.Alt, &r.Qual, &r.Filter, &r.Info, &r.Samples,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
