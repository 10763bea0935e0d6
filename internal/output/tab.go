// Package output renders query results and header metadata.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vcfkit/internal/duckdb"
	"github.com/inodb/vcfkit/internal/vcf"
)

// TabWriter writes rows in tab-delimited form under their column header.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteTable writes the column header followed by every row verbatim.
func (tw *TabWriter) WriteTable(t *vcf.Table) error {
	if _, err := tw.w.WriteString(strings.Join(t.Columns(), "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range t.Rows() {
		if _, err := tw.w.WriteString(strings.Join(r.Fields(), "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecords writes indexed records with their source file and line.
func (tw *TabWriter) WriteRecords(recs []duckdb.Record) error {
	header := []string{"SOURCE", "LINE", vcf.ColChrom, vcf.ColPos, vcf.ColID, vcf.ColRef,
		vcf.ColAlt, vcf.ColQual, vcf.ColFilter, vcf.ColInfo}
	if _, err := tw.w.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range recs {
		pos := "."
		if r.Pos.Valid {
			pos = fmt.Sprintf("%d", r.Pos.Int64)
		}
		values := []string{
			r.Source, fmt.Sprintf("%d", r.Line), r.Chrom, pos, r.ID, r.Ref,
			r.Alt, r.Qual, r.Filter, r.Info,
		}
		if _, err := tw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteKeys writes the well-known key reference table.
func (tw *TabWriter) WriteKeys(keys []vcf.KeyDescription) error {
	for _, k := range keys {
		if _, err := fmt.Fprintf(tw.w, "%s\t%s\t%s\n", k.Category, k.Key, k.Description); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
