// Package vcf parses Variant Call Format text into an immutable header and
// record table, and answers queries over the records.
package vcf

import (
	"strings"

	"go.uber.org/zap"
)

// File is a fully parsed VCF file. It is immutable once Load returns and
// safe for concurrent readers.
type File struct {
	header   *Header
	records  *Table
	warnings []CoercionWarning
}

type loadConfig struct {
	logger  *zap.Logger
	workers int
}

// Option configures Load.
type Option func(*loadConfig)

// WithLogger sets the logger used for coercion warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers parses data lines on n goroutines. n <= 1 parses sequentially.
func WithWorkers(n int) Option {
	return func(c *loadConfig) { c.workers = n }
}

// Load parses the lines of a VCF file. Line terminators are optional. Any
// structural problem aborts the load and no File is returned.
func Load(lines []string, opts ...Option) (*File, error) {
	cfg := loadConfig{logger: zap.NewNop(), workers: 1}
	for _, o := range opts {
		o(&cfg)
	}

	var meta, data []numberedLine
	for i, text := range lines {
		l := numberedLine{no: i + 1, text: strings.TrimRight(text, "\r\n")}
		switch {
		case strings.HasPrefix(l.text, "##"):
			meta = append(meta, l)
		case strings.TrimSpace(l.text) == "":
			// Skip empty lines
		default:
			data = append(data, l)
		}
	}

	header, err := parseHeader(meta)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, structuralf(len(lines), "no #CHROM header line found")
	}
	schema, err := newSchema(data[0])
	if err != nil {
		return nil, err
	}

	var (
		rows     []Row
		warnings []CoercionWarning
	)
	if cfg.workers > 1 {
		rows, warnings, err = parseRowsParallel(schema, data[1:], cfg.workers)
	} else {
		rows, warnings, err = parseRows(schema, data[1:])
	}
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		cfg.logger.Debug("coerced cell to null",
			zap.Int("line", w.Line),
			zap.String("column", w.Column),
			zap.String("value", w.Value))
	}
	if len(warnings) > 0 {
		cfg.logger.Warn("non-integer CHROM/POS cells stored as null",
			zap.Int("count", len(warnings)))
	}
	cfg.logger.Debug("loaded vcf",
		zap.Int("meta_lines", len(meta)),
		zap.Int("records", len(rows)),
		zap.Int("contigs", len(header.contigs)))

	return &File{
		header:   header,
		records:  &Table{schema: schema, rows: rows},
		warnings: warnings,
	}, nil
}

// Header returns the parsed meta-information.
func (f *File) Header() *Header { return f.header }

// Records returns the full record table.
func (f *File) Records() *Table { return f.records }

// Warnings returns the CHROM/POS cells that were stored as null.
func (f *File) Warnings() []CoercionWarning {
	return append([]CoercionWarning(nil), f.warnings...)
}

// The query methods below delegate to the full record table; see Table.

func (f *File) ListChromosomes() []string { return f.records.ListChromosomes() }

func (f *File) FilterByChromosomes(chroms ...string) *Table {
	return f.records.FilterByChromosomes(chroms...)
}

func (f *File) FilterSnps() *Table { return f.records.FilterSnps() }

func (f *File) FilterMicrosatellites() *Table { return f.records.FilterMicrosatellites() }

func (f *File) FilterByFilterStatus(mode FilterMode) (*Table, error) {
	return f.records.FilterByFilterStatus(mode)
}

func (f *File) FilterByQuality(minQual float64) *Table { return f.records.FilterByQuality(minQual) }

func (f *File) GetByPosition(chrom string, q PositionQuery) (*Table, error) {
	return f.records.GetByPosition(chrom, q)
}

func (f *File) GetByPositionRange(chrom string, start, end int64) (*Table, error) {
	return f.records.GetByPositionRange(chrom, start, end)
}

// GetContigInfo returns the ##contig declaration with the given ID.
func (f *File) GetContigInfo(id int) (Contig, bool) {
	return f.header.Contig(id)
}

// LookupKeyDescription documents a well-known INFO or FORMAT key.
func (f *File) LookupKeyDescription(key string) (KeyDescription, bool) {
	return LookupKeyDescription(key)
}
